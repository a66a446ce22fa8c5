// Package render prints parse trees and diagnostics for the CLI.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/runtime/parser"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// FormatTree renders the commands of tree under a "name:" header, one
// command per branch, with block bodies nested below their opener.
func FormatTree(w io.Writer, name string, tree *parser.ParseTree, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s:\n", name)

	cmds := tree.Commands.Siblings()
	if len(cmds) == 0 {
		_, _ = fmt.Fprintf(w, "(no commands)\n")
		return
	}
	renderBranch(w, cmds, "", useColor)
}

// renderBranch renders sibling commands with tree characters
func renderBranch(w io.Writer, cmds []*ast.CommandNode, indent string, useColor bool) {
	for i, n := range cmds {
		prefix, childIndent := "├─ ", "│  "
		if i == len(cmds)-1 {
			prefix, childIndent = "└─ ", "   "
		}
		_, _ = fmt.Fprintf(w, "%s%s%s\n", indent, prefix, renderCommand(n, useColor))

		if body := ast.Body(n); len(body) > 0 {
			renderBranch(w, body, indent+childIndent, useColor)
		}
	}
}

// renderCommand renders one command with its name highlighted
func renderCommand(n *ast.CommandNode, useColor bool) string {
	text := ast.FormatOne(n)
	name, rest, hasRest := strings.Cut(text, " ")

	color := ColorBlue
	switch n.Type {
	case ast.CmdSyntaxError:
		color = ColorRed
	case ast.CmdComment:
		color = ColorGray
	case ast.CmdUser:
		color = ColorCyan
	}
	s := Colorize(name, color, useColor)
	if hasRest {
		s += " " + rest
	}
	return s
}

// FormatDiagnostics writes every syntax error of tree as a caret snippet
// located in file, followed by a summary line.
func FormatDiagnostics(w io.Writer, file string, tree *parser.ParseTree, useColor bool) {
	for _, e := range tree.Errors {
		msg, snippet, _ := strings.Cut(e.Error(), "\n")
		_, _ = fmt.Fprintf(w, "%s: %s\n", Colorize("error", ColorRed, useColor), msg)
		if snippet != "" {
			snippet = strings.Replace(snippet, "  --> ", "  --> "+file+":", 1)
			_, _ = fmt.Fprintf(w, "%s\n", snippet)
		} else {
			_, _ = fmt.Fprintf(w, "  --> %s\n", file)
		}
		if h := hint(e.Message); h != "" {
			_, _ = fmt.Fprintf(w, "   = %s %s\n", Colorize("help:", ColorCyan, useColor), h)
		}
	}
	switch n := len(tree.Errors); n {
	case 0:
		_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("ok", ColorGreen, useColor), file)
	case 1:
		_, _ = fmt.Fprintf(w, "%s: 1 error\n", file)
	default:
		_, _ = fmt.Fprintf(w, "%s: %d errors\n", file, n)
	}
}
