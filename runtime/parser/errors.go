package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// ErrResourceExhausted is the only fatal parse failure: the source produced
// more lines than allowed, or commands nested deeper than the limit.
var ErrResourceExhausted = errors.New("resource exhausted")

// ParseError mirrors one SyntaxError node of the tree.
type ParseError struct {
	Pos     ast.Position // Col is a 0-based byte offset into Line
	Line    string
	Message string
}

// Error returns the message followed by a Rust/Clang style snippet
func (e ParseError) Error() string {
	snippet := e.createCodeSnippet()
	if snippet == "" {
		return e.Message
	}
	return e.Message + "\n" + snippet
}

// createCodeSnippet creates a code snippet showing the error location
func (e ParseError) createCodeSnippet() string {
	if e.Pos.Line == 0 {
		return ""
	}
	col := e.Pos.Col + 1

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %d:%d\n", e.Pos.Line, col))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Pos.Line, e.Line))
	snippet.WriteString("   | ")
	if col <= len(e.Line)+1 {
		snippet.WriteString(strings.Repeat(" ", caretIndent(e.Line, e.Pos.Col)) + "^")
	}
	return snippet.String()
}

// caretIndent counts runes, so a multi-byte character before the error
// takes one column.
func caretIndent(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	return len([]rune(line[:col]))
}

// syntaxError is a recoverable error raised while parsing one command. It
// unwinds to the command boundary, where it becomes a SyntaxError node.
type syntaxError struct {
	col int
	msg string
}

func (e *syntaxError) Error() string {
	return e.msg
}

// errorf returns a syntaxError at byte col of the current line.
func (p *parser) errorf(col int, format string, args ...any) error {
	return &syntaxError{col: col, msg: fmt.Sprintf(format, args...)}
}

// fatalf wraps ErrResourceExhausted.
func fatalf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrResourceExhausted)
}

// errorNode synthesizes the SyntaxError node for an error on line lineNo and
// records it in the error list. The offset is clamped to the line.
func (p *parser) errorNode(lineNo int, line string, col int, msg string) *ast.CommandNode {
	col = max(0, min(col, len(line)))
	node := &ast.CommandNode{
		Type: ast.CmdSyntaxError,
		Pos:  ast.Position{Line: lineNo, Col: col},
		End:  ast.Position{Line: lineNo, Col: len(line)},
		Args: []ast.Arg{&ast.ErrorArg{Line: line, Message: msg, Offset: col}},
	}
	p.errors = append(p.errors, ParseError{Pos: node.Pos, Line: line, Message: msg})
	p.logger.Debug("syntax error", "line", lineNo, "col", col, "message", msg)
	return node
}

// exprError converts an error from the expression parser. Errors that know
// their offset keep it; others point at the start of the expression.
func (p *parser) exprError(err error, start int) error {
	var se *syntaxError
	if errors.As(err, &se) {
		return se
	}
	col := start
	var located interface{ ErrorOffset() int }
	if errors.As(err, &located) {
		col = located.ErrorOffset()
	}
	return p.errorf(col, "%s", err.Error())
}
