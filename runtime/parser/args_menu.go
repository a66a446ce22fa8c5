package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/aledsdavies/exparse/core/ast"
)

var menuFlags = []string{"<silent>", "<special>", "<script>"}

// parseMenu reads "[flags] [icon=x] [pri] [enable|disable] {path} {rhs}".
// The right-hand side takes the rest of the line.
func (p *parser) parseMenu(node *ast.CommandNode) error {
	p.parseMapFlags(slot[*ast.FlagsArg](node, 0), menuFlags)
	mp := slot[*ast.MenuPathArg](node, 2)

	if p.hasPrefix("icon=") {
		p.pos += len("icon=")
		mp.Icon = p.menuText()
		p.skipBlanks()
	}
	if isDigit(p.peek()) || (p.peek() == '.' && isDigit(p.peekAt(1))) {
		na := slot[*ast.NumbersArg](node, 1)
		for isDigit(p.peek()) || p.peek() == '.' {
			n := 0
			if isDigit(p.peek()) {
				n, _ = p.number()
			}
			na.Values = append(na.Values, n)
			if p.peek() != '.' {
				break
			}
			p.pos++
		}
		p.skipBlanks()
	}
	for _, action := range []string{"enable", "disable"} {
		if p.hasWord(action) {
			mp.Action = action
			p.pos += len(action)
			p.skipBlanks()
		}
	}
	if p.atEOL() {
		return nil
	}
	start := p.pos
	items, err := p.menuPath()
	if err != nil {
		return err
	}
	mp.Items = items
	p.skipBlanks()
	if p.atEOL() {
		return nil
	}
	if mp.Action != "" {
		return p.errorf(start, "E475: Invalid argument: %s", p.line[start:])
	}
	slot[*ast.StringArg](node, 3).Value = p.rest()
	p.pos = len(p.line)
	return nil
}

// menuText reads up to an unescaped blank; "\" escapes the next character.
func (p *parser) menuText() string {
	var b strings.Builder
	for !p.atEOL() && !isBlank(p.peek()) {
		if p.peek() == '\\' && p.pos+1 < len(p.line) {
			p.pos++
		}
		b.WriteByte(p.peek())
		p.pos++
	}
	return b.String()
}

// menuPath reads a dot separated menu path ending at an unescaped blank.
// "&x" marks the shortcut, "&&" is a literal "&" and "<Tab>" or "\t"
// starts the right-aligned text of the last item.
func (p *parser) menuPath() ([]ast.MenuItem, error) {
	var (
		items []ast.MenuItem
		name  strings.Builder
		text  strings.Builder
		item  ast.MenuItem
		inTab bool
	)
	push := func() {
		item.Name, item.Text = name.String(), text.String()
		items = append(items, item)
		item, inTab = ast.MenuItem{}, false
		name.Reset()
		text.Reset()
	}
	cur := func() *strings.Builder {
		if inTab {
			return &text
		}
		return &name
	}
	for !p.atEOL() && !isBlank(p.peek()) && !p.atBar() {
		c := p.peek()
		switch {
		case c == '\\' && p.peekAt(1) == 't':
			inTab = true
			p.pos += 2
		case c == '\\' && p.pos+1 < len(p.line):
			p.pos++
			cur().WriteByte(p.peek())
			p.pos++
		case c == '.':
			p.pos++
			push()
		case p.hasPrefix("<Tab>") || p.hasPrefix("<tab>"):
			inTab = true
			p.pos += len("<Tab>")
		case c == '&' && p.peekAt(1) == '&':
			cur().WriteByte('&')
			p.pos += 2
		case c == '&' && !inTab && p.pos+1 < len(p.line) && !isBlank(p.peekAt(1)):
			p.pos++
			r, size := utf8.DecodeRuneInString(p.rest())
			item.Shortcut = r
			cur().WriteString(p.line[p.pos : p.pos+size])
			p.pos += size
		default:
			cur().WriteByte(c)
			p.pos++
		}
	}
	push()
	for _, it := range items {
		if it.Name == "" {
			return nil, p.errorf(p.pos, "E792: Empty menu name")
		}
	}
	return items, nil
}

// parseUnmenu reads the menu path of the unmenu commands.
func (p *parser) parseUnmenu(node *ast.CommandNode, def *ast.Definition) error {
	if p.atArgEnd(def) {
		return p.errorf(p.pos, "E471: Argument required")
	}
	mp := slot[*ast.MenuPathArg](node, 0)
	if p.peek() == '*' {
		p.pos++
		mp.Items = []ast.MenuItem{{Name: "*"}}
		return nil
	}
	items, err := p.menuPath()
	if err != nil {
		return err
	}
	mp.Items = items
	return nil
}

// parseMenutranslate reads "clear" or an "{english} {translation}" pair.
func (p *parser) parseMenutranslate(node *ast.CommandNode, def *ast.Definition) error {
	sa := slot[*ast.StringsArg](node, 0)
	for {
		p.skipBlanks()
		if p.atArgEnd(def) {
			break
		}
		sa.Values = append(sa.Values, p.menuText())
	}
	switch {
	case len(sa.Values) == 1 && sa.Values[0] == "clear":
	case len(sa.Values) == 2:
	default:
		return p.errorf(node.Pos.Col, "E474: Invalid argument")
	}
	return nil
}
