package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern is a compiled glob: a sequence of items matched left to right.
type Pattern []PatternItem

func (p Pattern) String() string {
	var b strings.Builder
	for _, item := range p {
		b.WriteString(item.String())
	}
	return b.String()
}

// PatternItem is one element of a glob.
type PatternItem interface {
	String() string
	patternItem()
}

// Literal is text matched verbatim.
type Literal struct {
	Text string
}

// Anything is "*".
type Anything struct{}

// AnyRecurse is "**", optionally limited to Depth directory levels ("**2").
type AnyRecurse struct {
	Depth int
}

// Character is "?".
type Character struct{}

// Collection is "[...]". Inverted is set for "[!...]" and "[^...]".
type Collection struct {
	Inverted bool
	Items    []CollectionItem
}

// Branch is "{a,b,c}"; each alternative is itself a pattern.
type Branch struct {
	Alternatives []Pattern
}

// Current is "%", the current file name.
type Current struct {
	Mods Modifiers
}

// Alternate is "#", the alternate file name.
type Alternate struct {
	Mods Modifiers
}

// BufName is "#N", the name of buffer N.
type BufName struct {
	Number int
	Mods   Modifiers
}

// OldFile is "#<N", entry N of the v:oldfiles list.
type OldFile struct {
	Number int
	Mods   Modifiers
}

// Home is a leading "~".
type Home struct{}

// Environment is "$NAME", or "${NAME}" when Braced.
type Environment struct {
	Name   string
	Braced bool
	Mods   Modifiers
}

// ShellSubst is "`cmd`".
type ShellSubst struct {
	Command string
}

// ExprSubst is "`=expr`".
type ExprSubst struct {
	Expr Expression
}

// CmdlineToken is one of the command-line specials such as "<cword>", or
// "##" for the argument list.
type CmdlineToken struct {
	Name string
	Mods Modifiers
}

// BufferLocal is the autocommand pattern "<buffer>", "<buffer=N>" or
// "<buffer=abuf>". Number is -1 for plain "<buffer>" and 0 for "abuf".
type BufferLocal struct {
	Number int
}

func (Literal) patternItem()      {}
func (Anything) patternItem()     {}
func (AnyRecurse) patternItem()   {}
func (Character) patternItem()    {}
func (Collection) patternItem()   {}
func (Branch) patternItem()       {}
func (Current) patternItem()      {}
func (Alternate) patternItem()    {}
func (BufName) patternItem()      {}
func (OldFile) patternItem()      {}
func (Home) patternItem()         {}
func (Environment) patternItem()  {}
func (ShellSubst) patternItem()   {}
func (ExprSubst) patternItem()    {}
func (CmdlineToken) patternItem() {}
func (BufferLocal) patternItem()  {}

func (l Literal) String() string  { return l.Text }
func (Anything) String() string   { return "*" }
func (Character) String() string  { return "?" }
func (Home) String() string       { return "~" }
func (c Current) String() string  { return "%" + c.Mods.String() }
func (a Alternate) String() string { return "#" + a.Mods.String() }

func (a AnyRecurse) String() string {
	if a.Depth > 0 {
		return "**" + strconv.Itoa(a.Depth)
	}
	return "**"
}

func (c Collection) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if c.Inverted {
		b.WriteByte('!')
	}
	for _, item := range c.Items {
		b.WriteString(item.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (br Branch) String() string {
	parts := make([]string, len(br.Alternatives))
	for i, alt := range br.Alternatives {
		parts[i] = alt.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (n BufName) String() string { return "#" + strconv.Itoa(n.Number) + n.Mods.String() }
func (n OldFile) String() string { return "#<" + strconv.Itoa(n.Number) + n.Mods.String() }

func (e Environment) String() string {
	if e.Braced {
		return "${" + e.Name + "}" + e.Mods.String()
	}
	return "$" + e.Name + e.Mods.String()
}

func (s ShellSubst) String() string  { return "`" + s.Command + "`" }
func (s ExprSubst) String() string   { return "`=" + s.Expr.Text + "`" }
func (t CmdlineToken) String() string {
	if t.Name == "##" {
		return t.Name + t.Mods.String()
	}
	return "<" + t.Name + ">" + t.Mods.String()
}

func (b BufferLocal) String() string {
	switch {
	case b.Number < 0:
		return "<buffer>"
	case b.Number == 0:
		return "<buffer=abuf>"
	default:
		return fmt.Sprintf("<buffer=%d>", b.Number)
	}
}

// CollectionItem is one member of a bracket collection.
type CollectionItem interface {
	String() string
	collectionItem()
}

// CollectionChar is a single character; Rune holds the decoded value of
// escapes such as "\t" or "\x41".
type CollectionChar struct {
	Rune rune
}

// CollectionRange is "a-z".
type CollectionRange struct {
	From, To rune
}

// CollectionClass is a POSIX class such as "[:alpha:]".
type CollectionClass struct {
	Name string
}

func (CollectionChar) collectionItem()  {}
func (CollectionRange) collectionItem() {}
func (CollectionClass) collectionItem() {}

func (c CollectionChar) String() string  { return string(c.Rune) }
func (c CollectionRange) String() string { return string(c.From) + "-" + string(c.To) }
func (c CollectionClass) String() string { return "[:" + c.Name + ":]" }

// ModifierKind enumerates the filename modifiers (:p, :h, ...).
type ModifierKind uint8

const (
	ModFullPath   ModifierKind = iota // :p
	ModRelative                       // :.
	ModHome                           // :~
	ModShort                          // :8
	ModHead                           // :h
	ModTail                           // :t
	ModExtension                      // :e
	ModRoot                           // :r
	ModSub                            // :s?pat?sub?
	ModGSub                           // :gs?pat?sub?
	ModShellEscape                    // :S
)

var modifierLetters = map[ModifierKind]string{
	ModFullPath:    "p",
	ModRelative:    ".",
	ModHome:        "~",
	ModShort:       "8",
	ModHead:        "h",
	ModTail:        "t",
	ModExtension:   "e",
	ModRoot:        "r",
	ModSub:         "s",
	ModGSub:        "gs",
	ModShellEscape: "S",
}

// FilenameModifier is one ":x" suffix. Regex and Replacement are only set for
// ModSub and ModGSub.
type FilenameModifier struct {
	Kind        ModifierKind
	Delim       byte
	Regex       Regex
	Replacement Replacement
}

func (m FilenameModifier) String() string {
	s := ":" + modifierLetters[m.Kind]
	if m.Kind == ModSub || m.Kind == ModGSub {
		d := string(m.Delim)
		s += d + m.Regex.Source + d + m.Replacement.String() + d
	}
	return s
}

// Modifiers is a chain of filename modifiers applied in order.
type Modifiers []FilenameModifier

func (ms Modifiers) String() string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(m.String())
	}
	return b.String()
}
