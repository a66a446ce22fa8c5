package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Replacement is the parsed right-hand side of a substitution.
type Replacement []ReplacementAtom

func (r Replacement) String() string {
	var b strings.Builder
	for _, a := range r {
		b.WriteString(a.String())
	}
	return b.String()
}

// ReplacementAtom is one element of a Replacement.
type ReplacementAtom interface {
	String() string
	replacementAtom()
}

// ReplLiteral is text inserted verbatim.
type ReplLiteral struct {
	Text string
}

// ReplMatched is the whole match ("&" with 'magic', "\&" without, or "\0").
type ReplMatched struct{}

// ReplGroup is a submatch "\1" .. "\9".
type ReplGroup struct {
	N int
}

// CaseKind selects one of the case-changing atoms.
type CaseKind uint8

const (
	CaseUpChar   CaseKind = iota // \u
	CaseDownChar                 // \l
	CaseUp                       // \U
	CaseDown                     // \L
	CaseEnd                      // \E or \e
)

// ReplCase changes the case of what follows.
type ReplCase struct {
	Kind CaseKind
}

// ReplExpr is "\=expr"; it always spans the whole replacement.
type ReplExpr struct {
	Expr Expression
}

// ReplPrevious is the previous replacement string ("~" with 'magic').
type ReplPrevious struct{}

// ReplEscaped is a backslash-escaped character inserted literally ("\&", "\\").
type ReplEscaped struct {
	Char byte
}

// ReplCodepoint is a control character spelled with an escape: "\n" (NUL),
// "\t", or a backslash followed by a literal carriage return.
type ReplCodepoint struct {
	Rune rune
}

// ReplNewline is a line break ("\r" or an unescaped carriage return).
type ReplNewline struct{}

func (ReplLiteral) replacementAtom()   {}
func (ReplMatched) replacementAtom()   {}
func (ReplGroup) replacementAtom()     {}
func (ReplCase) replacementAtom()      {}
func (ReplExpr) replacementAtom()      {}
func (ReplPrevious) replacementAtom()  {}
func (ReplEscaped) replacementAtom()   {}
func (ReplCodepoint) replacementAtom() {}
func (ReplNewline) replacementAtom()   {}

func (a ReplLiteral) String() string { return a.Text }
func (ReplMatched) String() string   { return "&" }
func (a ReplGroup) String() string   { return `\` + strconv.Itoa(a.N) }
func (a ReplExpr) String() string    { return `\=` + a.Expr.Text }
func (ReplPrevious) String() string  { return "~" }
func (a ReplEscaped) String() string { return `\` + string(a.Char) }
func (ReplNewline) String() string   { return `\r` }

func (a ReplCase) String() string {
	switch a.Kind {
	case CaseUpChar:
		return `\u`
	case CaseDownChar:
		return `\l`
	case CaseUp:
		return `\U`
	case CaseDown:
		return `\L`
	default:
		return `\E`
	}
}

func (a ReplCodepoint) String() string {
	switch a.Rune {
	case 0:
		return `\n`
	case '\t':
		return `\t`
	default:
		return fmt.Sprintf(`\<%d>`, a.Rune)
	}
}
