package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// userCommandAttrs maps each ":command" attribute to whether it takes a
// value: always, never, or optionally.
var userCommandAttrs = map[string]attrValue{
	"nargs":      valueRequired,
	"complete":   valueRequired,
	"addr":       valueRequired,
	"range":      valueOptional,
	"count":      valueOptional,
	"bang":       valueNone,
	"bar":        valueNone,
	"register":   valueNone,
	"buffer":     valueNone,
	"keepscript": valueNone,
}

type attrValue uint8

const (
	valueNone attrValue = iota
	valueOptional
	valueRequired
)

// parseUserCommand reads ":command [-attr...] {Name} {replacement}".
func (p *parser) parseUserCommand(node *ast.CommandNode) error {
	ua := slot[*ast.UserCommandArg](node, 0)
	for p.peek() == '-' {
		start := p.pos
		p.pos++
		word := p.bigWord()
		name, value, hasValue := strings.Cut(word, "=")
		kind, ok := userCommandAttrs[name]
		switch {
		case !ok:
			return p.errorf(start, "E181: Invalid attribute: -%s", word)
		case kind == valueNone && hasValue:
			return p.errorf(start, "E181: Invalid attribute: -%s", word)
		case kind == valueRequired && (!hasValue || value == ""):
			if name == "nargs" {
				return p.errorf(start, "E176: Invalid number of arguments")
			}
			return p.errorf(start, "E179: argument required for -%s", name)
		}
		if err := p.checkAttrValue(start, name, value, hasValue); err != nil {
			return err
		}
		ua.Attrs = append(ua.Attrs, ast.UserCommandAttr{Name: name, Value: value})
		p.skipBlanks()
	}
	if p.atEOL() {
		return nil
	}

	start := p.pos
	name := p.word()
	switch {
	case name == "":
		return p.errorf(start, "E182: Invalid command name")
	case !isUpper(name[0]):
		return p.errorf(start, "E183: User defined commands must start with an uppercase letter")
	case strings.Contains(name, "_"):
		return p.errorf(start, "E182: Invalid command name")
	}
	if !p.atEOL() && !isBlank(p.peek()) {
		return p.errorf(start, "E182: Invalid command name")
	}
	ua.Name = name
	p.skipBlanks()
	ua.Replacement = trimRightBlanks(p.rest())
	p.pos = len(p.line)
	return nil
}

// checkAttrValue validates the values of -nargs, -range and -count.
func (p *parser) checkAttrValue(col int, name, value string, hasValue bool) error {
	switch name {
	case "nargs":
		if len(value) != 1 || !strings.Contains("01*?+", value) {
			return p.errorf(col, "E176: Invalid number of arguments")
		}
	case "range":
		if hasValue && value != "%" && !allDigits(value) {
			return p.errorf(col, "E178: Invalid default value for count")
		}
	case "count":
		if hasValue && !allDigits(value) {
			return p.errorf(col, "E178: Invalid default value for count")
		}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
