package parser

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// signProps lists the properties each ":sign" sub-command accepts.
var signProps = map[string][]string{
	"define":   {"icon", "linehl", "text", "texthl", "culhl", "numhl", "priority"},
	"undefine": nil,
	"list":     nil,
	"place":    {"line", "name", "file", "buffer", "group", "priority"},
	"unplace":  {"file", "buffer", "group"},
	"jump":     {"file", "buffer", "group"},
}

// parseSign reads ":sign {sub} ..." in its define, undefine, list, place,
// unplace and jump forms.
func (p *parser) parseSign(node *ast.CommandNode) error {
	sa := slot[*ast.SignArg](node, 0)
	start := p.pos
	sub := p.signWord()
	allowed, ok := signProps[sub]
	if !ok {
		return p.errorf(start, "E160: Unknown sign command: %s", sub)
	}
	sa.Sub = sub
	p.skipBlanks()

	switch sub {
	case "define", "undefine":
		if p.signEnd() {
			return p.errorf(p.pos, "E156: Missing sign name")
		}
		sa.Name = p.signWord()
	case "list":
		if !p.signEnd() {
			sa.Name = p.signWord()
		}
		return nil
	case "place", "unplace", "jump":
		switch {
		case p.peek() == '*' && sub == "unplace":
			p.pos++
			sa.ID = -1
		case isDigit(p.peek()):
			idStart := p.pos
			id, ok := p.number()
			if !ok || id == 0 {
				return p.errorf(idStart, "E474: Invalid argument")
			}
			sa.ID = id
		}
	}

	for {
		p.skipBlanks()
		if p.signEnd() {
			return nil
		}
		propStart := p.pos
		word := p.signWord()
		key, value, hasValue := strings.Cut(word, "=")
		if sub == "unplace" && word == "*" {
			sa.Props = append(sa.Props, ast.KeyValue{Key: "*"})
			continue
		}
		if !hasValue || !contains(allowed, key) {
			return p.errorf(propStart, "E475: Invalid argument: %s", word)
		}
		if key == "line" || key == "buffer" || key == "priority" {
			if _, err := strconv.Atoi(value); err != nil {
				return p.errorf(propStart, "E474: Invalid argument")
			}
		}
		sa.Props = append(sa.Props, ast.KeyValue{Key: key, Value: value})
	}
}

func (p *parser) signEnd() bool {
	return p.atEOL() || p.atBar()
}

func (p *parser) signWord() string {
	start := p.pos
	for !p.signEnd() && !isBlank(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos]
}
