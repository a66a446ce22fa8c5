package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

type globMode uint8

const (
	// globFile is a file argument: "%", "#", "<cword>", backticks and
	// filename modifiers are recognized.
	globFile globMode = iota
	// globAutocmd is an autocommand pattern: top-level commas separate
	// alternatives and "<buffer>" is recognized.
	globAutocmd
)

// cmdlineTokens are the "<name>" specials of file arguments.
var cmdlineTokens = []string{
	"cword", "cWORD", "cexpr", "cfile", "afile", "abuf", "amatch",
	"sfile", "stack", "script", "slnum", "sflnum", "client",
}

// globScan reads one pattern. stop reports the characters that end the
// pattern at the top level.
type globScan struct {
	p    *parser
	mode globMode
	stop func(byte) bool
	// unclosed holds the offsets of "{" known to have no matching "}", so
	// nested unclosed braces are scanned once each.
	unclosed map[int]bool
}

// parseGlob reads one blank separated file argument of def.
func (p *parser) parseGlob(def *ast.Definition, mode globMode) (ast.Pattern, error) {
	g := &globScan{p: p, mode: mode, stop: func(c byte) bool {
		if isBlank(c) {
			return true
		}
		if barEnds(def) {
			return c == '|' || (c == '"' && !def.Has(ast.FlagNotRlCom))
		}
		return false
	}}
	return g.pattern()
}

// parseGlobs reads file arguments up to the end of the argument.
func (p *parser) parseGlobs(def *ast.Definition) ([]ast.Pattern, error) {
	var out []ast.Pattern
	for {
		p.skipBlanks()
		if p.atArgEnd(def) {
			return out, nil
		}
		pat, err := p.parseGlob(def, globFile)
		if err != nil {
			return nil, err
		}
		out = append(out, pat)
	}
}

// parseAutocmdPattern reads the pattern of ":autocmd", which ends at a blank.
func (p *parser) parseAutocmdPattern() (ast.Pattern, error) {
	g := &globScan{p: p, mode: globAutocmd, stop: isBlank}
	return g.pattern()
}

func (g *globScan) pattern() (ast.Pattern, error) {
	if g.mode == globFile {
		return g.items(false)
	}
	var alts []ast.Pattern
	for {
		alt, err := g.items(false)
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		if g.p.peek() != ',' {
			break
		}
		g.p.pos++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return ast.Pattern{ast.Branch{Alternatives: alts}}, nil
}

// items reads pattern items until a stop character. Inside braces "," and
// "}" also end the items.
func (g *globScan) items(inBranch bool) (ast.Pattern, error) {
	p := g.p
	var (
		out ast.Pattern
		lit strings.Builder
	)
	add := func(item ast.PatternItem) {
		if lit.Len() > 0 {
			out = append(out, ast.Literal{Text: lit.String()})
			lit.Reset()
		}
		out = append(out, item)
	}
	first := true
	for !p.atEOL() {
		c := p.peek()
		if g.stop(c) || (inBranch && (c == ',' || c == '}')) || (g.mode == globAutocmd && c == ',') {
			break
		}
		start := p.pos
		switch {
		case c == '\\':
			p.pos++
			if p.atEOL() {
				lit.WriteByte('\\')
				continue
			}
			lit.WriteByte(p.peek())
			p.pos++
		case c == '*':
			p.pos++
			if p.peek() != '*' {
				add(ast.Anything{})
				break
			}
			p.pos++
			depth := 0
			if isDigit(p.peek()) {
				depth, _ = p.number()
			}
			add(ast.AnyRecurse{Depth: depth})
		case c == '?':
			p.pos++
			add(ast.Character{})
		case c == '[':
			if coll, ok := g.collection(); ok {
				add(coll)
				break
			}
			p.pos = start + 1
			lit.WriteByte('[')
		case c == '{' && !g.unclosed[p.pos]:
			br, ok, err := g.branch()
			if err != nil {
				return nil, err
			}
			if ok {
				add(br)
				break
			}
			p.pos = start + 1
			lit.WriteByte('{')
		case c == '~' && first && !inBranch:
			p.pos++
			add(ast.Home{})
		case c == '$':
			if env, ok := g.environment(); ok {
				add(env)
				break
			}
			p.pos = start + 1
			lit.WriteByte('$')
		case g.mode == globAutocmd && c == '<' && p.hasPrefix("<buffer"):
			if bl, ok := g.bufferLocal(); ok {
				add(bl)
				break
			}
			p.pos = start + 1
			lit.WriteByte('<')
		case g.mode == globFile && (c == '%' || c == '#' || c == '<' || c == '`'):
			item, ok, err := g.special()
			if err != nil {
				return nil, err
			}
			if ok {
				add(item)
				break
			}
			p.pos = start + 1
			lit.WriteByte(c)
		default:
			lit.WriteByte(c)
			p.pos++
		}
		first = false
	}
	if lit.Len() > 0 {
		out = append(out, ast.Literal{Text: lit.String()})
	}
	return out, nil
}

// collection reads "[...]". ok is false when the bracket is not closed.
func (g *globScan) collection() (ast.Collection, bool) {
	p := g.p
	s := p.line
	i := p.pos + 1
	var coll ast.Collection
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		coll.Inverted = true
		i++
	}
	firstItem := true
	for i < len(s) {
		c := s[i]
		if c == ']' && !firstItem {
			p.pos = i + 1
			return coll, true
		}
		if g.stop(c) && c != '"' && c != '|' {
			return coll, false
		}
		firstItem = false
		if c == '[' && i+1 < len(s) && s[i+1] == ':' {
			if end := strings.Index(s[i+2:], ":]"); end >= 0 {
				coll.Items = append(coll.Items, ast.CollectionClass{Name: s[i+2 : i+2+end]})
				i += 2 + end + 2
				continue
			}
		}
		r := rune(c)
		if c == '\\' && i+1 < len(s) {
			i++
			r = rune(s[i])
		}
		i++
		if i+1 < len(s) && s[i] == '-' && s[i+1] != ']' {
			to := rune(s[i+1])
			i += 2
			if to == '\\' && i < len(s) {
				to = rune(s[i])
				i++
			}
			coll.Items = append(coll.Items, ast.CollectionRange{From: r, To: to})
			continue
		}
		coll.Items = append(coll.Items, ast.CollectionChar{Rune: r})
	}
	return coll, false
}

// branch reads "{a,b}". ok is false when the brace is not closed.
func (g *globScan) branch() (ast.Branch, bool, error) {
	p := g.p
	start := p.pos
	p.pos++
	var br ast.Branch
	for {
		alt, err := g.items(true)
		if err != nil {
			return br, false, err
		}
		br.Alternatives = append(br.Alternatives, alt)
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return br, true, nil
		default:
			if g.unclosed == nil {
				g.unclosed = make(map[int]bool)
			}
			g.unclosed[start] = true
			p.pos = start
			return br, false, nil
		}
	}
}

// environment reads "$NAME" or "${NAME}".
func (g *globScan) environment() (ast.Environment, bool) {
	p := g.p
	p.pos++
	var name string
	braced := p.peek() == '{'
	if braced {
		end := strings.IndexByte(p.line[p.pos:], '}')
		if end < 0 {
			return ast.Environment{}, false
		}
		name = p.line[p.pos+1 : p.pos+end]
		p.pos += end + 1
	} else {
		name = p.word()
	}
	if name == "" {
		return ast.Environment{}, false
	}
	env := ast.Environment{Name: name, Braced: braced}
	if g.mode == globFile {
		env.Mods = g.modifiers()
	}
	return env, true
}

// bufferLocal reads "<buffer>", "<buffer=N>" or "<buffer=abuf>".
func (g *globScan) bufferLocal() (ast.BufferLocal, bool) {
	p := g.p
	start := p.pos
	p.pos += len("<buffer")
	switch {
	case p.peek() == '>':
		p.pos++
		return ast.BufferLocal{Number: -1}, true
	case p.hasPrefix("=abuf>"):
		p.pos += len("=abuf>")
		return ast.BufferLocal{Number: 0}, true
	case p.peek() == '=':
		p.pos++
		n, ok := p.number()
		if ok && n > 0 && p.peek() == '>' {
			p.pos++
			return ast.BufferLocal{Number: n}, true
		}
	}
	p.pos = start
	return ast.BufferLocal{}, false
}

// special reads "%", "#", "#N", "#<N", "##", "<cword>" and friends with
// their modifiers, and "`cmd`" or "`=expr`".
func (g *globScan) special() (ast.PatternItem, bool, error) {
	p := g.p
	start := p.pos
	switch p.peek() {
	case '%':
		p.pos++
		return ast.Current{Mods: g.modifiers()}, true, nil
	case '#':
		p.pos++
		switch {
		case p.peek() == '#':
			p.pos++
			return ast.CmdlineToken{Name: "##", Mods: g.modifiers()}, true, nil
		case p.peek() == '<' && isDigit(p.peekAt(1)):
			p.pos++
			n, _ := p.number()
			return ast.OldFile{Number: n, Mods: g.modifiers()}, true, nil
		case isDigit(p.peek()):
			n, _ := p.number()
			return ast.BufName{Number: n, Mods: g.modifiers()}, true, nil
		}
		return ast.Alternate{Mods: g.modifiers()}, true, nil
	case '<':
		for _, name := range cmdlineTokens {
			if p.hasPrefix("<" + name + ">") {
				p.pos += len(name) + 2
				return ast.CmdlineToken{Name: name, Mods: g.modifiers()}, true, nil
			}
		}
		return nil, false, nil
	case '`':
		end := strings.IndexByte(p.line[p.pos+1:], '`')
		if end < 0 {
			return nil, false, nil
		}
		body := p.line[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		if strings.HasPrefix(body, "=") {
			e, err := p.exprFromText(body[1:], start+2, nil)
			if err != nil {
				return nil, false, err
			}
			return ast.ExprSubst{Expr: e}, true, nil
		}
		return ast.ShellSubst{Command: body}, true, nil
	}
	return nil, false, nil
}

var modifierKinds = map[byte]ast.ModifierKind{
	'p': ast.ModFullPath,
	'.': ast.ModRelative,
	'~': ast.ModHome,
	'8': ast.ModShort,
	'h': ast.ModHead,
	't': ast.ModTail,
	'e': ast.ModExtension,
	'r': ast.ModRoot,
	'S': ast.ModShellEscape,
}

// modifiers reads ":p", ":h", ":s?pat?sub?" and the other filename
// modifiers following a special.
func (g *globScan) modifiers() ast.Modifiers {
	p := g.p
	var mods ast.Modifiers
	for p.peek() == ':' {
		c := p.peekAt(1)
		if kind, ok := modifierKinds[c]; ok {
			mods = append(mods, ast.FilenameModifier{Kind: kind})
			p.pos += 2
			continue
		}
		kind, skip := ast.ModSub, 2
		if c == 'g' && p.peekAt(2) == 's' {
			kind, skip = ast.ModGSub, 3
		} else if c != 's' {
			break
		}
		delim := p.peekAt(skip)
		if delim == 0 || isBlank(delim) {
			break
		}
		save := p.pos
		p.pos += skip + 1
		re := p.scanPattern(delim, true)
		if !p.atDelim(delim) {
			p.pos = save
			break
		}
		p.pos++
		repl, err := p.parseReplacement(delim, true)
		if err != nil || !p.atDelim(delim) {
			p.pos = save
			break
		}
		p.pos++
		mods = append(mods, ast.FilenameModifier{Kind: kind, Delim: delim, Regex: re, Replacement: repl})
	}
	return mods
}
