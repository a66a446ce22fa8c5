package parser

import (
	"strconv"

	"github.com/aledsdavies/exparse/core/ast"
)

// ASCII character lookup tables. Use with an inline bounds check:
//
//	if c < 128 && isLetter[c] { ... }
//
// Bytes >= 128 are never special in the Ex grammar and classify as false.
var (
	isBlankTable  [128]bool // Space and tab
	isLetterTable [128]bool // a-z, A-Z
	isDigitTable  [128]bool // 0-9
	isWordTable   [128]bool // Letter, digit or _
	isHexTable    [128]bool // 0-9, a-f, A-F
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isBlankTable[i] = ch == ' ' || ch == '\t'
		isLetterTable[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigitTable[i] = '0' <= ch && ch <= '9'
		isWordTable[i] = isLetterTable[i] || isDigitTable[i] || ch == '_'
		isHexTable[i] = isDigitTable[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
	}
}

func isBlank(c byte) bool  { return c < 128 && isBlankTable[c] }
func isLetter(c byte) bool { return c < 128 && isLetterTable[c] }
func isDigit(c byte) bool  { return c < 128 && isDigitTable[c] }
func isAlnum(c byte) bool  { return c < 128 && (isLetterTable[c] || isDigitTable[c]) }
func isWord(c byte) bool   { return c < 128 && isWordTable[c] }
func isHex(c byte) bool    { return c < 128 && isHexTable[c] }
func isUpper(c byte) bool  { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool  { return 'a' <= c && c <= 'z' }

func (p *parser) peek() byte {
	if p.pos < len(p.line) {
		return p.line[p.pos]
	}
	return 0
}

func (p *parser) peekAt(n int) byte {
	if i := p.pos + n; i >= 0 && i < len(p.line) {
		return p.line[i]
	}
	return 0
}

func (p *parser) atEOL() bool {
	return p.pos >= len(p.line)
}

// atDelim reports whether the cursor is on the delimiter c. Unlike peek it
// is false at end of line, so a NUL delimiter never matches there.
func (p *parser) atDelim(c byte) bool {
	return p.pos < len(p.line) && p.line[p.pos] == c
}

// skipDelim steps over the delimiter c when the cursor is on it.
func (p *parser) skipDelim(c byte) {
	if p.atDelim(c) {
		p.pos++
	}
}

func (p *parser) rest() string {
	if p.pos >= len(p.line) {
		return ""
	}
	return p.line[p.pos:]
}

func (p *parser) skipBlanks() {
	for p.pos < len(p.line) && isBlank(p.line[p.pos]) {
		p.pos++
	}
}

// skipColons skips the blanks and ':' that may precede a command.
func (p *parser) skipColons() {
	for p.pos < len(p.line) && (isBlank(p.line[p.pos]) || p.line[p.pos] == ':') {
		p.pos++
	}
}

// atBar reports whether the cursor is on a "|" command separator.
func (p *parser) atBar() bool {
	return p.peek() == '|'
}

// atArgEnd reports whether no argument text remains: end of line, or a
// separator or comment for commands that honor them.
func (p *parser) atArgEnd(def *ast.Definition) bool {
	if p.atEOL() {
		return true
	}
	if !barEnds(def) {
		return false
	}
	c := p.peek()
	return c == '|' || (c == '"' && !def.Has(ast.FlagNotRlCom))
}

func (p *parser) hasPrefix(s string) bool {
	return len(p.line)-p.pos >= len(s) && p.line[p.pos:p.pos+len(s)] == s
}

// number scans a decimal number. ok is false when no digit is present or the
// value overflows.
func (p *parser) number() (int, bool) {
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.line[start:p.pos])
	return n, err == nil
}

// word scans [A-Za-z0-9_]*.
func (p *parser) word() string {
	start := p.pos
	for isWord(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos]
}

// bigWord scans up to the next blank or end of line.
func (p *parser) bigWord() string {
	start := p.pos
	for p.pos < len(p.line) && !isBlank(p.line[p.pos]) {
		p.pos++
	}
	return p.line[start:p.pos]
}

func (p *parser) at(col int) ast.Position {
	return ast.Position{Line: p.lineNo, Col: col}
}

func trimRightBlanks(s string) string {
	end := len(s)
	for end > 0 && isBlank(s[end-1]) {
		end--
	}
	return s[:end]
}
