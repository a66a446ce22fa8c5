package parser

import (
	"errors"
	"fmt"

	"github.com/aledsdavies/exparse/core/ast"
)

// ValidationError is a structural defect found in a parse tree. A tree
// returned by Parse never has one; trees built or edited by hand may.
type ValidationError struct {
	Pos     ast.Position
	Command string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Command, e.Message)
}

// blockOwners are the commands whose Children hold a block body.
var blockOwners = map[ast.CommandType]bool{
	ast.CmdIf:       true,
	ast.CmdElseif:   true,
	ast.CmdElse:     true,
	ast.CmdWhile:    true,
	ast.CmdFor:      true,
	ast.CmdTry:      true,
	ast.CmdCatch:    true,
	ast.CmdFinally:  true,
	ast.CmdFunction: true,
}

// Validate checks the tree against the shape Parse guarantees: positions
// inside the recorded lines, argument slots matching each definition, bodies
// only under block commands and one ParseError per SyntaxError node. Every
// defect is reported, joined into one error.
func (t *ParseTree) Validate() error {
	v := &validator{tree: t}
	for n := t.Commands; n != nil; n = n.Next {
		v.node(n)
	}
	if v.syntaxErrors != len(t.Errors) {
		v.report(ast.Position{}, "", "%d SyntaxError nodes but %d recorded errors", v.syntaxErrors, len(t.Errors))
	}
	return errors.Join(v.errs...)
}

type validator struct {
	tree         *ParseTree
	errs         []error
	syntaxErrors int
}

func (v *validator) report(pos ast.Position, cmd, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Pos: pos, Command: cmd, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) node(n *ast.CommandNode) {
	name := n.CommandName()
	def := n.Definition()
	if def == nil {
		v.report(n.Pos, name, "unknown command type %d", n.Type)
		return
	}
	v.position(n, n.Pos, "start")
	v.position(n, n.End, "end")
	if n.End.Line == n.Pos.Line && n.End.Col < n.Pos.Col {
		v.report(n.Pos, name, "ends at %s before it starts", n.End)
	}

	if n.Type == ast.CmdSyntaxError {
		v.syntaxErrors++
		if e := n.SyntaxError(); e == nil {
			v.report(n.Pos, name, "no error payload")
		} else if e.Offset < 0 || e.Offset > len(e.Line) {
			v.report(n.Pos, name, "offset %d outside %q", e.Offset, e.Line)
		}
		return
	}

	if len(n.Args) != len(def.Args) {
		v.report(n.Pos, name, "%d argument slots, want %d", len(n.Args), len(def.Args))
	} else {
		for i, a := range n.Args {
			if a == nil || a.Kind() != def.Args[i] {
				v.report(n.Pos, name, "slot %d holds %T", i, a)
			}
		}
	}

	if len(n.Children) > 0 && !blockOwners[n.Type] {
		v.report(n.Pos, name, "has a body but is not a block command")
	}
	for _, child := range n.Children {
		if child.Next != nil {
			v.report(child.Pos, child.CommandName(), "block body entry linked through Next")
		}
		v.node(child)
	}
	for _, a := range n.Args {
		if ca, ok := a.(*ast.CommandArg); ok {
			for c := ca.Command; c != nil; c = c.Next {
				v.node(c)
			}
		}
	}
}

// position checks that pos falls on a recorded line.
func (v *validator) position(n *ast.CommandNode, pos ast.Position, what string) {
	if pos.Line < 1 || pos.Line > len(v.tree.Lines) {
		v.report(pos, n.CommandName(), "%s line %d outside 1..%d", what, pos.Line, len(v.tree.Lines))
		return
	}
	if line := v.tree.Lines[pos.Line-1]; pos.Col < 0 || pos.Col > len(line) {
		v.report(pos, n.CommandName(), "%s column %d outside %q", what, pos.Col, line)
	}
}
