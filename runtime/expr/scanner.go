// Package expr finds the extent of Vim script expressions.
//
// The parser hands every expression argument to an expression parser. This
// package is the default one: it tokenizes the expression far enough to know
// where it ends (balanced brackets, strings, operators between operands) and
// returns the tokens as the expression node. It does not evaluate anything.
package expr

import (
	"fmt"
)

// TokenKind classifies a token.
type TokenKind uint8

const (
	Number   TokenKind = iota // 42, 0x1f, 1.5e3, 0zFF
	String                    // "text" or 'text'
	Name                      // g:var, s:Func, dict, foo#bar
	Option                    // &opt, &l:opt
	Env                       // $HOME
	Register                  // @a
	Operator                  // + == =~# ! -> ...
	Punct                     // ( ) [ ] { } , : ;
)

var kindNames = [...]string{
	Number:   "number",
	String:   "string",
	Name:     "name",
	Option:   "option",
	Env:      "env",
	Register: "register",
	Operator: "operator",
	Punct:    "punct",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one lexical element. Offset is the byte offset in the scanned line.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Tokens is the node produced for an expression.
type Tokens []Token

// Error is an expression syntax error. Offset is the byte offset in the
// scanned line.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorOffset reports where the error was found.
func (e *Error) ErrorOffset() int {
	return e.Offset
}

// Scanner is the default expression parser.
type Scanner struct{}

// ParseExpression scans the expression that starts at line[col]. It returns
// the tokens and the offset just past the last token. An empty expression
// returns end == col and no error; the caller decides whether one was
// required.
func (Scanner) ParseExpression(line string, col int) (any, int, error) {
	s := &scanner{src: line, pos: col}
	s.skipSpace()
	if s.atEnd() {
		return Tokens(nil), col, nil
	}
	if err := s.expr(); err != nil {
		return nil, col, err
	}
	return s.toks, s.end, nil
}

type scanner struct {
	src  string
	pos  int
	end  int
	toks Tokens
}

func (s *scanner) peek() byte {
	if s.pos < len(s.src) {
		return s.src[s.pos]
	}
	return 0
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// atEnd reports whether the expression cannot continue here: end of line or
// a "|" command separator.
func (s *scanner) atEnd() bool {
	return s.pos >= len(s.src) || (s.peek() == '|' && s.peekAt(1) != '|')
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) emit(kind TokenKind, start int) {
	s.toks = append(s.toks, Token{Kind: kind, Text: s.src[start:s.pos], Offset: start})
	s.end = s.pos
}

func (s *scanner) errorf(offset int, format string, args ...any) error {
	return &Error{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (s *scanner) invalid(offset int) error {
	return s.errorf(offset, "E15: Invalid expression: %q", s.src[offset:])
}

// expr scans operand (binop operand)*, with "a ? b : c" handled inline.
func (s *scanner) expr() error {
	for {
		if err := s.unary(); err != nil {
			return err
		}
		save := s.pos
		s.skipSpace()
		n := s.binaryOperator()
		if n == 0 {
			s.pos = save
			return nil
		}
		ternary := n == 1 && s.peek() == '?'
		start := s.pos
		s.pos += n
		s.emit(Operator, start)
		s.skipSpace()
		if ternary {
			if err := s.expr(); err != nil {
				return err
			}
			s.skipSpace()
			if s.peek() != ':' {
				return s.errorf(s.pos, "E109: Missing ':' after '?'")
			}
			start := s.pos
			s.pos++
			s.emit(Operator, start)
			s.skipSpace()
		}
	}
}

var comparisons = []string{"==", "!=", ">=", "<=", "=~", "!~", ">", "<"}

// binaryOperator returns the length of the binary operator at the cursor.
func (s *scanner) binaryOperator() int {
	rest := s.src[s.pos:]
	if len(rest) == 0 {
		return 0
	}
	for _, op := range []string{"||", "&&", "??", ".."} {
		if len(rest) >= 2 && rest[:2] == op {
			return 2
		}
	}
	for _, op := range comparisons {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			return len(op) + caseSuffix(rest[len(op):])
		}
	}
	for _, word := range []string{"isnot", "is"} {
		if len(rest) >= len(word) && rest[:len(word)] == word {
			after := rest[len(word):]
			n := caseSuffix(after)
			if len(after) > n && isNameChar(after[n]) {
				continue
			}
			return len(word) + n
		}
	}
	switch rest[0] {
	case '-':
		if len(rest) > 1 && rest[1] == '>' {
			return 0
		}
		return 1
	case '+', '*', '/', '%', '.', '?':
		return 1
	}
	return 0
}

func caseSuffix(s string) int {
	if len(s) > 0 && (s[0] == '#' || s[0] == '?') {
		return 1
	}
	return 0
}

func (s *scanner) unary() error {
	for {
		c := s.peek()
		if c != '!' && c != '-' && c != '+' {
			break
		}
		start := s.pos
		s.pos++
		s.emit(Operator, start)
		s.skipSpace()
	}
	if err := s.operand(); err != nil {
		return err
	}
	return s.postfix()
}

func (s *scanner) operand() error {
	start := s.pos
	c := s.peek()
	switch {
	case s.atEnd():
		return s.invalid(start)
	case isDigit(c):
		s.number()
		s.emit(Number, start)
	case c == '"':
		return s.doubleQuoted()
	case c == '\'':
		return s.singleQuoted()
	case c == '&':
		s.pos++
		if (s.peek() == 'l' || s.peek() == 'g') && s.peekAt(1) == ':' {
			s.pos += 2
		}
		if !s.word() {
			return s.invalid(start)
		}
		s.emit(Option, start)
	case c == '$':
		s.pos++
		if !s.word() {
			return s.invalid(start)
		}
		s.emit(Env, start)
	case c == '@':
		s.pos++
		if s.pos >= len(s.src) {
			s.emit(Register, start)
			return nil
		}
		s.pos++
		s.emit(Register, start)
	case c == '(':
		return s.bracketed('(', ')')
	case c == '[':
		return s.bracketed('[', ']')
	case c == '{':
		return s.bracketed('{', '}')
	case c == '#' && s.peekAt(1) == '{':
		s.pos++
		return s.bracketed('{', '}')
	case c == '<' && hasPrefixFold(s.src[s.pos:], "<SID>"):
		s.pos += len("<SID>")
		s.name()
		s.emit(Name, start)
	case isNameStart(c):
		s.name()
		s.emit(Name, start)
	default:
		return s.invalid(start)
	}
	return nil
}

func (s *scanner) postfix() error {
	for {
		start := s.pos
		switch c := s.peek(); {
		case c == '[':
			if err := s.bracketed('[', ']'); err != nil {
				return err
			}
		case c == '(':
			if err := s.bracketed('(', ')'); err != nil {
				return err
			}
		case c == '.' && s.peekAt(1) != '.' && isNameStart(s.peekAt(1)):
			s.pos++
			s.emit(Punct, start)
			start = s.pos
			s.word()
			s.emit(Name, start)
		case c == '-' && s.peekAt(1) == '>':
			s.pos += 2
			s.emit(Operator, start)
			switch n := s.peek(); {
			case n == '(':
				if err := s.bracketed('(', ')'); err != nil {
					return err
				}
			case isNameStart(n):
				nameStart := s.pos
				s.name()
				s.emit(Name, nameStart)
				if s.peek() != '(' {
					return s.errorf(s.pos, "E107: Missing parentheses: %s", s.src[nameStart:s.pos])
				}
				if err := s.bracketed('(', ')'); err != nil {
					return err
				}
			default:
				return s.invalid(start)
			}
		default:
			return nil
		}
	}
}

// bracketed scans a parenthesized group, list, dictionary or lambda. Items
// are separated by ",", ":", ";" or "->".
func (s *scanner) bracketed(open, close byte) error {
	start := s.pos
	s.pos++
	s.emit(Punct, start)
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return s.missingClose(open, start)
		}
		c := s.peek()
		if c == close {
			at := s.pos
			s.pos++
			s.emit(Punct, at)
			return nil
		}
		if c == ',' || c == ':' || c == ';' {
			at := s.pos
			s.pos++
			s.emit(Punct, at)
			continue
		}
		if c == '-' && s.peekAt(1) == '>' {
			at := s.pos
			s.pos += 2
			s.emit(Operator, at)
			continue
		}
		if c == '|' && s.peekAt(1) != '|' {
			return s.missingClose(open, start)
		}
		before := s.pos
		if err := s.expr(); err != nil {
			return err
		}
		if s.pos == before {
			return s.invalid(before)
		}
	}
}

func (s *scanner) missingClose(open byte, at int) error {
	switch open {
	case '(':
		return s.errorf(at, "E110: Missing ')'")
	case '[':
		return s.errorf(at, "E697: Missing end of List ']': %s", s.src[at:])
	}
	return s.errorf(at, "E723: Missing end of Dictionary '}': %s", s.src[at:])
}

func (s *scanner) doubleQuoted() error {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '"':
			s.pos++
			s.emit(String, start)
			return nil
		}
		s.pos++
	}
	return s.errorf(start, "E114: Missing double quote: %s", s.src[start:])
}

func (s *scanner) singleQuoted() error {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		if s.src[s.pos] == '\'' {
			if s.peekAt(1) == '\'' {
				s.pos += 2
				continue
			}
			s.pos++
			s.emit(String, start)
			return nil
		}
		s.pos++
	}
	return s.errorf(start, "E115: Missing single quote: %s", s.src[start:])
}

func (s *scanner) number() {
	if s.peek() == '0' {
		switch s.peekAt(1) {
		case 'x', 'X', 'b', 'B', 'o', 'O', 'z', 'Z':
			s.pos += 2
			for s.pos < len(s.src) && (isHexDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
				s.pos++
			}
			return
		}
	}
	for isDigit(s.peek()) {
		s.pos++
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.pos++
		for isDigit(s.peek()) {
			s.pos++
		}
		if e := s.peek(); e == 'e' || e == 'E' {
			n := 1
			if sign := s.peekAt(1); sign == '+' || sign == '-' {
				n = 2
			}
			if isDigit(s.peekAt(n)) {
				s.pos += n
				for isDigit(s.peek()) {
					s.pos++
				}
			}
		}
	}
}

// name scans a variable or function name, including a scope prefix such as
// "g:" and autoload "#" separators.
func (s *scanner) name() {
	if len(s.src)-s.pos >= 2 && s.src[s.pos+1] == ':' && isScope(s.src[s.pos]) {
		s.pos += 2
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isNameChar(c) || c == '#':
		case c == '{':
			depth := 0
			for s.pos < len(s.src) {
				if s.src[s.pos] == '{' {
					depth++
				} else if s.src[s.pos] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				s.pos++
			}
			if s.pos >= len(s.src) {
				return
			}
		default:
			return
		}
		s.pos++
	}
}

func (s *scanner) word() bool {
	start := s.pos
	for s.pos < len(s.src) && isNameChar(s.src[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

func isScope(c byte) bool {
	switch c {
	case 'g', 'b', 'w', 't', 's', 'l', 'a', 'v':
		return true
	}
	return false
}

func isDigit(c byte) bool    { return '0' <= c && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F') }
func isNameStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) }

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
