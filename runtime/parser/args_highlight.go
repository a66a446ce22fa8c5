package parser

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

type hlKeyKind uint8

const (
	hlAttrList hlKeyKind = iota
	hlColor
	hlValue
)

var highlightKeys = map[string]hlKeyKind{
	"term":      hlAttrList,
	"cterm":     hlAttrList,
	"gui":       hlAttrList,
	"start":     hlValue,
	"stop":      hlValue,
	"ctermfg":   hlColor,
	"ctermbg":   hlColor,
	"ctermul":   hlColor,
	"ctermfont": hlValue,
	"guifg":     hlColor,
	"guibg":     hlColor,
	"guisp":     hlColor,
	"font":      hlValue,
}

var highlightAttrNames = map[string]bool{
	"bold": true, "underline": true, "undercurl": true, "underdouble": true,
	"underdotted": true, "underdashed": true, "strikethrough": true,
	"reverse": true, "inverse": true, "italic": true, "standout": true,
	"nocombine": true, "NONE": true,
}

// parseHighlight reads the forms of ":highlight".
func (p *parser) parseHighlight(node *ast.CommandNode, def *ast.Definition) error {
	ha := slot[*ast.HighlightArg](node, 0)

	p.skipBlanks()
	if p.hasWord("default") {
		ha.Default = true
		p.pos += len("default")
		p.skipBlanks()
	}
	switch {
	case p.atArgEnd(def):
		ha.Action = ast.HighlightList
		return nil
	case p.hasWord("clear"):
		p.pos += len("clear")
		ha.Action = ast.HighlightClear
		start := p.pos
		ws := p.words(def)
		switch len(ws) {
		case 0:
		case 1:
			ha.Group = ws[0]
		default:
			return p.errorf(start, "E413: Too many arguments: \":highlight clear %s\"", strings.Join(ws, " "))
		}
		return nil
	case p.hasWord("link"):
		p.pos += len("link")
		ha.Action = ast.HighlightLink
		start := p.pos
		ws := p.words(def)
		switch {
		case len(ws) < 2:
			return p.errorf(start, "E412: Not enough arguments: \":highlight link %s\"", strings.Join(ws, " "))
		case len(ws) > 2:
			return p.errorf(start, "E413: Too many arguments: \":highlight link %s\"", strings.Join(ws, " "))
		}
		ha.Group, ha.LinkTo = ws[0], ws[1]
		return nil
	}

	start := p.pos
	for !p.atArgEnd(def) && !isBlank(p.peek()) {
		p.pos++
	}
	ha.Group = p.line[start:p.pos]
	ha.Action = ast.HighlightList
	for {
		p.skipBlanks()
		if p.atArgEnd(def) {
			return nil
		}
		ha.Action = ast.HighlightDefine
		attr, err := p.highlightAttr(def)
		if err != nil {
			return err
		}
		ha.Attrs = append(ha.Attrs, attr)
	}
}

// hasWord reports whether w is at the cursor followed by a blank or the end
// of the argument.
func (p *parser) hasWord(w string) bool {
	if !p.hasPrefix(w) {
		return false
	}
	c := p.peekAt(len(w))
	return c == 0 || isBlank(c) || c == '|' || c == '"'
}

// highlightAttr reads one "key=value" item.
func (p *parser) highlightAttr(def *ast.Definition) (ast.HighlightAttr, error) {
	start := p.pos
	for isAlnum(p.peek()) {
		p.pos++
	}
	key := p.line[start:p.pos]
	if p.peek() != '=' {
		return ast.HighlightAttr{}, p.errorf(start, "E416: Missing equal sign: %s", p.itemText(start))
	}
	kind, ok := highlightKeys[strings.ToLower(key)]
	if !ok {
		return ast.HighlightAttr{}, p.errorf(start, "E423: Illegal argument: %s", key)
	}
	p.pos++
	valStart := p.pos
	var value string
	if p.peek() == '\'' {
		end := strings.IndexByte(p.line[p.pos+1:], '\'')
		if end < 0 {
			return ast.HighlightAttr{}, p.errorf(valStart, "E475: Invalid argument: %s", p.rest())
		}
		value = p.line[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
	} else {
		for !p.atArgEnd(def) && !isBlank(p.peek()) {
			p.pos++
		}
		value = p.line[valStart:p.pos]
	}
	if value == "" {
		return ast.HighlightAttr{}, p.errorf(start, "E417: Missing argument: %s", key)
	}

	attr := ast.HighlightAttr{Key: key}
	switch kind {
	case hlAttrList:
		for _, name := range strings.Split(value, ",") {
			if !highlightAttrNames[name] {
				return attr, p.errorf(valStart, "E418: Illegal value: %s", name)
			}
			attr.Names = append(attr.Names, name)
		}
	case hlColor:
		c, ok := parseColor(value)
		if !ok {
			return attr, p.errorf(valStart, "E421: Color name or number not recognized: %s", value)
		}
		attr.Color = &c
	default:
		attr.Value = value
	}
	return attr, nil
}

// parseColor decodes "NONE", "fg", "bg", a color number, "#rrggbb" or a
// color name.
func parseColor(s string) (ast.Color, bool) {
	switch strings.ToLower(s) {
	case "none":
		return ast.Color{Kind: ast.ColorNone}, true
	case "fg", "foreground":
		return ast.Color{Kind: ast.ColorFg}, true
	case "bg", "background":
		return ast.Color{Kind: ast.ColorBg}, true
	}
	if s[0] == '#' {
		if len(s) != 7 {
			return ast.Color{}, false
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return ast.Color{}, false
		}
		return ast.Color{Kind: ast.ColorRGB, RGB: uint32(v)}, true
	}
	if isDigit(s[0]) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return ast.Color{}, false
		}
		return ast.Color{Kind: ast.ColorIndex, Index: n}, true
	}
	return ast.Color{Kind: ast.ColorName, Name: s}, true
}
