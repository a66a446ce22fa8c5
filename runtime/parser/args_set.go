package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// parseSet reads the option list of ":set", ":setlocal" and ":setglobal".
func (p *parser) parseSet(node *ast.CommandNode, def *ast.Definition) error {
	sa := slot[*ast.SetArg](node, 0)
	for {
		p.skipBlanks()
		if p.atArgEnd(def) {
			return nil
		}
		opt, err := p.setOption()
		if err != nil {
			return err
		}
		sa.Options = append(sa.Options, opt)
	}
}

// setOption reads one "[no|inv]name[!|?|&|&vim|&vi|<|=value|+=value|...]".
func (p *parser) setOption() (ast.SetOption, error) {
	start := p.pos
	opt := ast.SetOption{Op: ast.SetOn, Pos: p.at(start)}

	name := p.optionName()
	if name == "" {
		return opt, p.errorf(start, "E518: Unknown option: %s", p.itemText(start))
	}
	prefixed := false
	switch {
	case strings.HasPrefix(name, "no") && len(name) > 2:
		opt.Op, name, prefixed = ast.SetOff, name[2:], true
	case strings.HasPrefix(name, "inv") && len(name) > 3:
		opt.Op, name, prefixed = ast.SetInvert, name[3:], true
	}
	opt.Name = name

	switch c := p.peek(); {
	case c == '!':
		opt.Op = ast.SetInvert
		p.pos++
	case c == '?':
		opt.Op = ast.SetShow
		p.pos++
	case c == '&':
		p.pos++
		opt.Op = ast.SetDefault
		switch {
		case p.hasPrefix("vim"):
			opt.Op = ast.SetVimDefault
			p.pos += 3
		case p.hasPrefix("vi"):
			opt.Op = ast.SetViDefault
			p.pos += 2
		}
	case c == '<':
		opt.Op = ast.SetGlobal
		p.pos++
	case c == '=' || c == ':':
		opt.Op = ast.SetAssign
		p.pos++
	case (c == '+' || c == '^' || c == '-') && p.peekAt(1) == '=':
		opt.Op = map[byte]ast.SetOp{'+': ast.SetAppend, '^': ast.SetPrepend, '-': ast.SetRemove}[c]
		p.pos += 2
	default:
		if !p.atEOL() && !isBlank(c) && c != '|' && c != '"' {
			return opt, p.errorf(start, "E518: Unknown option: %s", p.itemText(start))
		}
		return opt, nil
	}
	if prefixed {
		return opt, p.errorf(start, "E474: Invalid argument: %s", p.itemText(start))
	}
	switch opt.Op {
	case ast.SetAssign, ast.SetAppend, ast.SetPrepend, ast.SetRemove:
		opt.Value = p.optionValue()
	}
	if !p.atEOL() && !isBlank(p.peek()) && p.peek() != '|' && p.peek() != '"' {
		return opt, p.errorf(start, "E518: Unknown option: %s", p.itemText(start))
	}
	return opt, nil
}

// optionName reads a name, a "t_xx" terminal option or "<t_xx>".
func (p *parser) optionName() string {
	start := p.pos
	switch {
	case p.hasPrefix("<t_") && p.peekAt(5) == '>':
		p.pos += 6
		return p.line[start:p.pos]
	case p.hasPrefix("t_") && p.pos+4 <= len(p.line):
		p.pos += 4
		return p.line[start:p.pos]
	}
	for isAlnum(p.peek()) || p.peek() == '_' {
		p.pos++
	}
	return p.line[start:p.pos]
}

// optionValue reads a value up to an unescaped blank or "|". A backslash
// escapes the next character.
func (p *parser) optionValue() string {
	var b strings.Builder
	for !p.atEOL() {
		c := p.peek()
		if isBlank(c) || c == '|' {
			break
		}
		if c == '\\' && p.pos+1 < len(p.line) {
			p.pos++
			c = p.peek()
		}
		b.WriteByte(c)
		p.pos++
	}
	return b.String()
}

// itemText returns the blank delimited item starting at start.
func (p *parser) itemText(start int) string {
	end := start
	for end < len(p.line) && !isBlank(p.line[end]) && p.line[end] != '|' {
		end++
	}
	return p.line[start:end]
}
