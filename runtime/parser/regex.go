package parser

import (
	"errors"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// scanPattern reads a pattern up to an unescaped delim or end of line and
// leaves the cursor on the delimiter. A delimiter inside a bracket
// collection does not end the pattern. The source is kept as written.
func (p *parser) scanPattern(delim byte, magic bool) ast.Regex {
	start := p.pos
	p.pos = skipRegexp(p.line, p.pos, delim, magic)
	return ast.Regex{Source: p.line[start:p.pos], Pos: p.at(start)}
}

// skipRegexp returns the offset of the delimiter ending the pattern that
// starts at i, or len(s).
func skipRegexp(s string, i int, delim byte, magic bool) int {
	for i < len(s) {
		c := s[i]
		switch {
		case c == delim:
			return i
		case c == '[' && magic:
			if end := collectionEnd(s, i+1); end >= 0 {
				i = end + 1
				continue
			}
		case c == '\\' && i+1 < len(s):
			if !magic && s[i+1] == '[' {
				if end := collectionEnd(s, i+2); end >= 0 {
					i = end + 1
					continue
				}
			}
			i += 2
			continue
		}
		i++
	}
	return len(s)
}

// collectionEnd returns the offset of the "]" closing a collection whose
// body starts at i, or -1 when it is not closed and "[" is literal.
func collectionEnd(s string, i int) int {
	if i < len(s) && s[i] == '^' {
		i++
	}
	if i < len(s) && (s[i] == ']' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] != ']' {
		switch {
		case s[i] == '[' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '=' || s[i+1] == '.'):
			kind := s[i+1]
			if end := strings.Index(s[i+2:], string(kind)+"]"); end >= 0 {
				i += 2 + end + 2
				continue
			}
			i++
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		default:
			i++
		}
	}
	if i >= len(s) {
		return -1
	}
	return i
}

// parseReplacement reads the replacement part of a substitution up to an
// unescaped delim or end of line and leaves the cursor on the delimiter.
func (p *parser) parseReplacement(delim byte, magic bool) (ast.Replacement, error) {
	if p.hasPrefix(`\=`) {
		e, err := p.replacementExpr(delim)
		if err != nil {
			return nil, err
		}
		return ast.Replacement{ast.ReplExpr{Expr: e}}, nil
	}

	var (
		out ast.Replacement
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, ast.ReplLiteral{Text: lit.String()})
			lit.Reset()
		}
	}
	atom := func(a ast.ReplacementAtom) {
		flush()
		out = append(out, a)
	}

	for !p.atEOL() && !p.atDelim(delim) {
		c := p.peek()
		switch {
		case c == '\r':
			atom(ast.ReplNewline{})
			p.pos++
		case c == '&' && magic:
			atom(ast.ReplMatched{})
			p.pos++
		case c == '~' && magic:
			atom(ast.ReplPrevious{})
			p.pos++
		case c == '\\' && p.pos+1 < len(p.line):
			p.pos++
			atom(replacementEscape(p.peek(), magic))
			p.pos++
		default:
			lit.WriteByte(c)
			p.pos++
		}
	}
	flush()
	return out, nil
}

// replacementEscape decodes the character after a backslash.
func replacementEscape(c byte, magic bool) ast.ReplacementAtom {
	switch {
	case c == '0':
		return ast.ReplMatched{}
	case '1' <= c && c <= '9':
		return ast.ReplGroup{N: int(c - '0')}
	case c == '&' && !magic:
		return ast.ReplMatched{}
	case c == '~' && !magic:
		return ast.ReplPrevious{}
	case c == 'u':
		return ast.ReplCase{Kind: ast.CaseUpChar}
	case c == 'l':
		return ast.ReplCase{Kind: ast.CaseDownChar}
	case c == 'U':
		return ast.ReplCase{Kind: ast.CaseUp}
	case c == 'L':
		return ast.ReplCase{Kind: ast.CaseDown}
	case c == 'E' || c == 'e':
		return ast.ReplCase{Kind: ast.CaseEnd}
	case c == 'n':
		return ast.ReplCodepoint{Rune: 0}
	case c == 'r':
		return ast.ReplNewline{}
	case c == 't':
		return ast.ReplCodepoint{Rune: '\t'}
	case c == '\r':
		return ast.ReplCodepoint{Rune: '\r'}
	}
	return ast.ReplEscaped{Char: c}
}

// replacementExpr reads "\=expr" up to the delimiter. "\" before the
// delimiter is removed from the expression text and recorded in Skips.
func (p *parser) replacementExpr(delim byte) (ast.Expression, error) {
	p.pos += 2
	start := p.pos
	var (
		text  strings.Builder
		skips []int
	)
	for !p.atEOL() && !p.atDelim(delim) {
		if p.peek() == '\\' && p.peekAt(1) == delim && delim != 0 {
			skips = append(skips, p.pos)
			p.pos++
		}
		text.WriteByte(p.peek())
		p.pos++
	}
	return p.exprFromText(text.String(), start, skips)
}

// exprFromText runs the expression parser over text taken from the current
// line at col, with the escapes at skips removed. Error offsets are mapped
// back onto the line.
func (p *parser) exprFromText(text string, col int, skips []int) (ast.Expression, error) {
	e := ast.Expression{Text: text, Pos: p.at(col), Skips: skips}
	if strings.TrimSpace(text) == "" {
		return e, p.errorf(col, "E15: Invalid expression: %q", text)
	}
	node, end, err := p.config.exprParser.ParseExpression(text, 0)
	if err != nil {
		off := 0
		var located interface{ ErrorOffset() int }
		if errors.As(err, &located) {
			off = located.ErrorOffset()
		}
		return e, p.errorf(e.OriginalCol(off), "%s", err.Error())
	}
	if rest := strings.TrimLeft(text[end:], " \t"); rest != "" {
		return e, p.errorf(e.OriginalCol(len(text)-len(rest)), "E488: Trailing characters: %s", rest)
	}
	e.Node = node
	return e, nil
}
