package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aledsdavies/exparse/core/ast"
)

const ctrlV = 0x16

var mapFlags = []string{"<buffer>", "<nowait>", "<silent>", "<special>", "<script>", "<expr>", "<unique>"}

// specialKeys maps lower-cased key names to their canonical spelling.
var specialKeys = func() map[string]string {
	names := []string{
		"Nul", "BS", "Tab", "NL", "CR", "Return", "Enter", "Esc", "Space", "lt",
		"Bslash", "Bar", "Del", "CSI", "xCSI", "EOL", "Ignore", "NOP",
		"Up", "Down", "Left", "Right", "Help", "Undo", "Insert", "Home", "End",
		"PageUp", "PageDown", "kUp", "kDown", "kLeft", "kRight", "kHome", "kEnd",
		"kOrigin", "kPageUp", "kPageDown", "kDel", "kPlus", "kMinus",
		"kMultiply", "kDivide", "kPoint", "kComma", "kEqual", "kEnter",
		"Leader", "LocalLeader", "Plug", "SID", "ScriptCmd", "Cmd", "SNR",
		"Char", "Mouse", "LeftMouse", "RightMouse", "MiddleMouse",
		"LeftDrag", "LeftRelease", "RightDrag", "RightRelease",
		"MiddleDrag", "MiddleRelease", "ScrollWheelUp", "ScrollWheelDown",
		"ScrollWheelLeft", "ScrollWheelRight", "X1Mouse", "X2Mouse",
		"FocusGained", "FocusLost", "Paste", "PasteStart", "PasteEnd",
	}
	m := make(map[string]string, len(names)+37)
	for _, n := range names {
		m[strings.ToLower(n)] = n
	}
	for i := 1; i <= 37; i++ {
		n := "F" + strconv.Itoa(i)
		m[strings.ToLower(n)] = n
	}
	return m
}()

// keyRunes are the key names that stand for a plain character.
var keyRunes = map[string]rune{"lt": '<', "Bar": '|', "Bslash": '\\', "Space": ' '}

// translateKeys turns the raw text of a mapping side into keys.
func translateKeys(raw string) []ast.Key {
	var keys []ast.Key
	for i := 0; i < len(raw); {
		c := raw[i]
		if c == ctrlV && i+1 < len(raw) {
			r, size := utf8.DecodeRuneInString(raw[i+1:])
			keys = append(keys, ast.Key{Rune: r})
			i += 1 + size
			continue
		}
		if c == '<' {
			if k, n, ok := specialKey(raw[i:]); ok {
				keys = append(keys, k)
				i += n
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(raw[i:])
		keys = append(keys, ast.Key{Rune: r})
		i += size
	}
	return keys
}

// specialKey decodes "<Name>" or "<Mods-Name>" at the start of s and returns
// its length.
func specialKey(s string) (ast.Key, int, bool) {
	end := strings.IndexByte(s[1:], '>')
	if end <= 0 {
		return ast.Key{}, 0, false
	}
	body := s[1 : end+1]
	var mods strings.Builder
	for len(body) > 2 && body[1] == '-' && strings.IndexByte("CSMADTcsmadt", body[0]) >= 0 {
		mods.WriteByte(upper(body[0]))
		body = body[2:]
	}
	n := end + 2
	if mods.Len() > 0 && utf8.RuneCountInString(body) == 1 {
		r, _ := utf8.DecodeRuneInString(body)
		return ast.Key{Name: string(r), Mods: mods.String()}, n, true
	}
	name, ok := specialKeys[strings.ToLower(body)]
	if !ok {
		return ast.Key{}, 0, false
	}
	if r, ok := keyRunes[name]; ok && mods.Len() == 0 {
		return ast.Key{Rune: r}, n, true
	}
	return ast.Key{Name: name, Mods: mods.String()}, n, true
}

func upper(c byte) byte {
	if isLower(c) {
		return c - 'a' + 'A'
	}
	return c
}

// isUnmap reports the commands that only take a left-hand side.
func isUnmap(t ast.CommandType) bool {
	switch t {
	case ast.CmdUnmap, ast.CmdNunmap, ast.CmdIunmap, ast.CmdCunmap, ast.CmdOunmap,
		ast.CmdSunmap, ast.CmdTunmap, ast.CmdVunmap, ast.CmdXunmap, ast.CmdLunmap,
		ast.CmdUnabbreviate, ast.CmdIunabbrev, ast.CmdCunabbrev:
		return true
	}
	return false
}

// parseMapFlags reads the "<buffer>", "<silent>", ... prefixes.
func (p *parser) parseMapFlags(fa *ast.FlagsArg, allowed []string) {
	for {
		found := false
		for _, f := range allowed {
			if p.hasPrefix(f) {
				fa.Flags = append(fa.Flags, f)
				p.pos += len(f)
				p.skipBlanks()
				found = true
			}
		}
		if !found {
			return
		}
	}
}

// parseMap reads "[flags] {lhs} [{rhs}]" for the map and abbreviation
// commands. The right-hand side ends at an unescaped "|" and keeps '"'.
func (p *parser) parseMap(node *ast.CommandNode, def *ast.Definition) error {
	p.parseMapFlags(slot[*ast.FlagsArg](node, 0), mapFlags)
	ma := slot[*ast.MappingArg](node, 1)
	if p.atEOL() || p.atBar() {
		return nil
	}

	var lhs strings.Builder
	for !p.atEOL() && !p.atBar() && !isBlank(p.peek()) {
		p.mapChar(&lhs)
	}
	ma.LHS = ast.KeyString{Raw: lhs.String(), Keys: translateKeys(lhs.String())}
	p.skipBlanks()
	if p.atEOL() || p.atBar() {
		return nil
	}
	if isUnmap(def.Type) {
		return p.errorf(p.pos, "E474: Invalid argument")
	}

	var rhs strings.Builder
	for !p.atEOL() && !p.atBar() {
		p.mapChar(&rhs)
	}
	ma.RHS = ast.KeyString{Raw: rhs.String(), Keys: translateKeys(rhs.String())}
	ma.HasRHS = true
	return nil
}

// mapChar copies one character of a mapping side. CTRL-V is kept with the
// character it quotes, and "\|" becomes "|".
func (p *parser) mapChar(b *strings.Builder) {
	c := p.peek()
	switch {
	case c == ctrlV && p.pos+1 < len(p.line):
		b.WriteByte(c)
		p.pos++
		c = p.peek()
	case c == '\\' && p.peekAt(1) == '|':
		p.pos++
		c = '|'
	}
	b.WriteByte(c)
	p.pos++
}

// parseMapclear reads the optional "<buffer>" of the mapclear commands.
func (p *parser) parseMapclear(node *ast.CommandNode, def *ast.Definition) error {
	p.parseMapFlags(slot[*ast.FlagsArg](node, 0), []string{"<buffer>"})
	if !p.atArgEnd(def) {
		return p.errorf(p.pos, "E474: Invalid argument")
	}
	return nil
}
