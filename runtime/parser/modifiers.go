package parser

import (
	"github.com/aledsdavies/exparse/core/ast"
)

// parseModifier parses the rest of a command modifier such as ":silent!" or
// ":filter /pat/" and the command it wraps. The wrapped command ends at "|".
func (p *parser) parseModifier(node *ast.CommandNode, def *ast.Definition) (*ast.CommandNode, error) {
	if len(node.Range) > 0 {
		if n, ok := plainCount(node.Range); ok && def.Has(ast.FlagCount) {
			node.Count = &n
			node.Range = nil
		} else if !def.Has(ast.FlagRange) {
			return nil, p.errorf(node.Pos.Col, "E481: No range allowed")
		}
	}
	if p.peek() == '!' {
		if !def.Has(ast.FlagBang) {
			return nil, p.errorf(p.pos, "E477: No ! allowed")
		}
		node.Bang = true
		p.pos++
	}
	p.skipBlanks()

	if def.Type == ast.CmdHide && (p.atEOL() || p.atBar()) {
		node.End = p.at(p.pos)
		return node, nil
	}
	cmdSlot := 0
	if def.Parser == ast.ParseFilter {
		if p.atEOL() || p.atBar() {
			return nil, p.errorf(p.pos, "E471: Argument required")
		}
		re, delim := p.filterPattern()
		ra := slot[*ast.RegexArg](node, 0)
		ra.Regex, ra.Delim = &re, delim
		p.skipBlanks()
		cmdSlot = 1
	}

	if p.atEOL() || p.atBar() {
		return nil, p.errorf(p.pos, "E471: Argument required")
	}
	wrapped, err := p.nestedCommand()
	if err != nil {
		return nil, err
	}
	if wrapped == nil {
		return nil, p.errorf(p.pos, "E471: Argument required")
	}
	slot[*ast.CommandArg](node, cmdSlot).Command = wrapped
	node.End = wrapped.End
	checkSlots(node, def)
	return node, nil
}

// filterPattern reads the pattern of ":filter": "/pat/" with any non-word
// delimiter, or a bare word ending at a blank.
func (p *parser) filterPattern() (ast.Regex, byte) {
	c := p.peek()
	if isWord(c) || c == '"' {
		start := p.pos
		word := p.bigWord()
		return ast.Regex{Source: word, Pos: p.at(start)}, 0
	}
	p.pos++
	re := p.scanPattern(c, p.config.magic)
	p.skipDelim(c)
	return re, c
}

// plainCount reports a range made of one line number with no adjustments,
// which modifiers such as ":verbose" take as a count.
func plainCount(rng ast.Range) (int, bool) {
	if len(rng) != 1 {
		return 0, false
	}
	f, ok := rng[0].Address.(ast.FixedAddress)
	if !ok || len(f.Chain) > 0 {
		return 0, false
	}
	return f.Line, true
}
