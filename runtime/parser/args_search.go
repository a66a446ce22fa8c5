package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// notSubDelim lists characters that cannot delimit a substitute pattern;
// an argument starting with one of them only has flags and a count.
const notSubDelim = "0123456789cegriIp|\""

// magicFor returns the 'magic' setting in effect for node.
func (p *parser) magicFor(node *ast.CommandNode) bool {
	switch node.Type {
	case ast.CmdSmagic:
		return true
	case ast.CmdSnomagic:
		return false
	}
	return p.config.magic
}

// parseSubstitute reads "/pat/rep/[flags] [count]".
func (p *parser) parseSubstitute(node *ast.CommandNode) error {
	ra := slot[*ast.RegexArg](node, 0)
	magic := p.magicFor(node)
	c := p.peek()
	if !p.atEOL() && !isBlank(c) && strings.IndexByte(notSubDelim, c) < 0 {
		var delim byte
		switch {
		case isLetter(c):
			return p.errorf(p.pos, "E146: Regular expressions can't be delimited by letters")
		case c == '\\':
			next := p.peekAt(1)
			if next != '/' && next != '?' && next != '&' {
				return p.errorf(p.pos, `E10: \ should be followed by /, ? or &`)
			}
			delim = next
			p.pos += 2
		default:
			delim = c
			p.pos++
			re := p.scanPattern(delim, magic)
			if re.Source != "" {
				ra.Regex = &re
			}
			if !p.atDelim(delim) {
				ra.Delim = delim
				return nil
			}
			p.pos++
		}
		ra.Delim = delim
		repl, err := p.parseReplacement(delim, magic)
		if err != nil {
			return err
		}
		slot[*ast.ReplacementArg](node, 1).Replacement = repl
		if !p.atDelim(delim) {
			return nil
		}
		p.pos++
	}
	return p.parseSubFlags(node, slot[*ast.SubFlagsArg](node, 2))
}

// parseSubRepeat reads the flags and count of ":&", ":&&" and ":~".
func (p *parser) parseSubRepeat(node *ast.CommandNode) error {
	return p.parseSubFlags(node, slot[*ast.SubFlagsArg](node, 0))
}

var subFlagLetters = map[byte]ast.SubFlags{
	'c': ast.SubConfirm,
	'e': ast.SubNoError,
	'g': ast.SubGlobal,
	'i': ast.SubIgnoreCase,
	'I': ast.SubNoIgnoreCase,
	'n': ast.SubCountOnly,
	'p': ast.SubPrint,
	'#': ast.SubNumber,
	'l': ast.SubList,
	'r': ast.SubLastSearch,
}

// parseSubFlags reads "[&][cegiInp#lr] [count]". "&" is only accepted first.
func (p *parser) parseSubFlags(node *ast.CommandNode, sf *ast.SubFlagsArg) error {
	if p.peek() == '&' {
		sf.Flags |= ast.SubKeep
		p.pos++
	}
	for {
		f, ok := subFlagLetters[p.peek()]
		if !ok {
			break
		}
		sf.Flags |= f
		p.pos++
	}
	p.skipBlanks()
	if isDigit(p.peek()) {
		start := p.pos
		n, ok := p.number()
		if !ok || n == 0 {
			return p.errorf(start, "E939: Positive count required")
		}
		node.Count = &n
	}
	return nil
}

// parseGlobal reads "/pat/cmd" for ":global" and ":vglobal". The command
// runs to the end of the line; an omitted one is left nil.
func (p *parser) parseGlobal(node *ast.CommandNode) error {
	ra := slot[*ast.RegexArg](node, 0)
	c := p.peek()
	switch {
	case p.atEOL():
		return p.errorf(p.pos, "E148: Regular expression missing from :global")
	case c == '\\':
		next := p.peekAt(1)
		if next != '/' && next != '?' && next != '&' {
			return p.errorf(p.pos, `E10: \ should be followed by /, ? or &`)
		}
		ra.Delim = next
		p.pos += 2
	case isLetter(c):
		return p.errorf(p.pos, "E146: Regular expressions can't be delimited by letters")
	default:
		p.pos++
		re := p.scanPattern(c, p.config.magic)
		if re.Source != "" {
			ra.Regex = &re
		}
		ra.Delim = c
		p.skipDelim(c)
	}
	cmd, err := p.nestedChain()
	if err != nil {
		return err
	}
	slot[*ast.CommandArg](node, 1).Command = cmd
	return nil
}

// parseVimgrep reads "/pat/[gjf] {file} ..." or "pat {file} ...".
func (p *parser) parseVimgrep(node *ast.CommandNode, def *ast.Definition) error {
	ra := slot[*ast.RegexArg](node, 0)
	c := p.peek()
	if isWord(c) {
		start := p.pos
		for !p.atEOL() && !isBlank(p.peek()) {
			p.pos++
		}
		ra.Regex = &ast.Regex{Source: p.line[start:p.pos], Pos: p.at(start)}
	} else {
		p.pos++
		re := p.scanPattern(c, p.config.magic)
		ra.Regex, ra.Delim = &re, c
		p.skipDelim(c)
		fa := slot[*ast.FlagsArg](node, 1)
		for strings.IndexByte("gjf", p.peek()) >= 0 && !p.atEOL() {
			fa.Flags = append(fa.Flags, string(p.peek()))
			p.pos++
		}
	}
	p.skipBlanks()
	files, err := p.parseGlobs(def)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return p.errorf(p.pos, "E683: File name missing or invalid pattern")
	}
	slot[*ast.GlobListArg](node, 2).Patterns = files
	return nil
}

// sortNumeric holds the mutually exclusive number kinds of ":sort".
const sortNumeric = "bfnox"

// parseSort reads ":sort" flags and the optional "/pat/".
func (p *parser) parseSort(node *ast.CommandNode) error {
	fa := slot[*ast.FlagsArg](node, 0)
	ra := slot[*ast.RegexArg](node, 1)
	numeric := false
	for {
		p.skipBlanks()
		c := p.peek()
		switch {
		case p.atEOL() || c == '|' || c == '"':
			return nil
		case strings.IndexByte("bfinorux", c) >= 0:
			if strings.IndexByte(sortNumeric, c) >= 0 {
				if numeric {
					return p.errorf(p.pos, "E474: Invalid argument")
				}
				numeric = true
			}
			fa.Flags = append(fa.Flags, string(c))
			p.pos++
		case !isAlnum(c) && !isBlank(c) && c != '\\':
			p.pos++
			re := p.scanPattern(c, p.config.magic)
			if !p.atDelim(c) {
				return p.errorf(p.pos, "E474: Invalid argument")
			}
			p.pos++
			if re.Source != "" {
				ra.Regex = &re
			}
			ra.Delim = c
		default:
			return p.errorf(p.pos, "E474: Invalid argument")
		}
	}
}

// parseMatch reads ":match {group} /pat/" or ":match none".
func (p *parser) parseMatch(node *ast.CommandNode) error {
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		return nil
	}
	start := p.pos
	for !p.atEOL() && !isBlank(p.peek()) && !p.atBar() {
		p.pos++
	}
	group := p.line[start:p.pos]
	slot[*ast.StringArg](node, 0).Value = group
	if strings.EqualFold(group, "none") {
		return nil
	}
	p.skipBlanks()
	if p.atEOL() {
		return p.errorf(p.pos, "E475: Invalid argument: %s", group)
	}
	delim := p.peek()
	p.pos++
	re := p.scanPattern(delim, p.config.magic)
	if !p.atDelim(delim) {
		return p.errorf(start, "E475: Invalid argument: %s", p.line[start:])
	}
	p.pos++
	ra := slot[*ast.RegexArg](node, 1)
	ra.Regex, ra.Delim = &re, delim
	return nil
}
