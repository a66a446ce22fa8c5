package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// parseName resolves the command word at the cursor. Besides the type it
// returns the name of a user command and the print flags folded into the
// name (":dl" is ":delete" with the "l" flag).
func (p *parser) parseName() (ast.CommandType, string, ast.ExFlags, error) {
	start := p.pos
	c := p.peek()

	switch {
	case c == 'k' && (p.peekAt(1) != 'e' || p.peekAt(2) != 'e'):
		p.pos++
		return ast.CmdK, "", 0, nil
	case c == 's' && isSubstituteShorthand(p.line[p.pos:]):
		p.pos++
		return ast.CmdSubstitute, "", 0, nil
	case isUpper(c):
		for isAlnum(p.peek()) {
			p.pos++
		}
		return ast.CmdUser, p.line[start:p.pos], 0, nil
	case isLetter(c):
		for isLetter(p.peek()) {
			p.pos++
		}
		if strings.HasPrefix(p.line[start:], "py") {
			for isAlnum(p.peek()) {
				p.pos++
			}
		}
	default:
		if t, ok := ast.FindSymbol(c); ok {
			p.pos++
			return t, "", 0, nil
		}
		return ast.CmdNone, "", 0, p.notACommand(start)
	}

	word := p.line[start:p.pos]
	if t, flags, ok := deleteWithFlag(word); ok {
		return t, "", flags, nil
	}
	t, ok := ast.Find(word)
	if !ok {
		return ast.CmdNone, "", 0, p.notACommand(start)
	}
	return t, "", 0, nil
}

func (p *parser) notACommand(start int) error {
	return p.errorf(start, "E492: Not an editor command: %s", trimRightBlanks(p.line[start:]))
}

// isSubstituteShorthand reports whether s starts with one of the ":s"
// forms that take substitute flags directly, such as ":sg" or ":sI", as
// opposed to commands like ":scriptnames", ":sign" or ":silent".
func isSubstituteShorthand(s string) bool {
	at := func(i int) byte {
		if i < len(s) {
			return s[i]
		}
		return 0
	}
	switch at(1) {
	case 'c':
		return at(2) != 's' && at(2) != 'r' && (at(3) != 'i' || at(4) != 'p')
	case 'g', 'I':
		return true
	case 'i':
		return at(2) != 'm' && at(2) != 'l' && at(2) != 'g'
	case 'r':
		return at(2) != 'e'
	}
	return false
}

// deleteWithFlag folds ":dl", ":dell", ":deletep" and friends into
// ":delete" with the list or print flag. ":del" itself stays ":delete".
func deleteWithFlag(word string) (ast.CommandType, ast.ExFlags, bool) {
	if len(word) < 2 || word[0] != 'd' {
		return ast.CmdNone, 0, false
	}
	last := word[len(word)-1]
	if last != 'l' && last != 'p' {
		return ast.CmdNone, 0, false
	}
	n := len(word) - 1
	if !strings.HasPrefix("delete", word[:n]) || (n < len("delete") && "delete"[n] == last) {
		return ast.CmdNone, 0, false
	}
	if last == 'l' {
		return ast.CmdDelete, ast.ExList, true
	}
	return ast.CmdDelete, ast.ExPrint, true
}
