package ast

// CommandNode is one parsed command. Top-level commands and nested command
// chains are linked through Next; the body of a block command is held in
// Children, whose nodes leave Next nil.
type CommandNode struct {
	Type CommandType
	Name string // user-defined commands only
	Pos  Position
	End  Position

	Range    Range
	Bang     bool
	Count    *int
	Register *Register
	Flags    ExFlags
	Args     []Arg

	Children []*CommandNode
	Next     *CommandNode
}

// Register is a register operand. For the expression register '=' Expr holds
// the expression.
type Register struct {
	Name byte
	Expr *Expression
}

// ExFlags are the print flags accepted after some commands (":d l", ":s//#").
type ExFlags uint8

const (
	ExList   ExFlags = 1 << iota // l
	ExNumber                     // #
	ExPrint                      // p
)

// Has reports whether every flag in f2 is set.
func (f ExFlags) Has(f2 ExFlags) bool { return f&f2 == f2 }

// Definition returns the static definition of the node's command.
func (n *CommandNode) Definition() *Definition {
	return Lookup(n.Type)
}

// CommandName is the canonical name of the command, or the user command name.
func (n *CommandNode) CommandName() string {
	if n.Type == CmdUser {
		return n.Name
	}
	return n.Type.String()
}

// SyntaxError returns the error payload of a SyntaxError node, or nil.
func (n *CommandNode) SyntaxError() *ErrorArg {
	if n.Type != CmdSyntaxError || len(n.Args) == 0 {
		return nil
	}
	e, _ := n.Args[0].(*ErrorArg)
	return e
}

// Arg returns the slot at index i, or nil if the node has fewer slots.
func (n *CommandNode) Arg(i int) Arg {
	if i < 0 || i >= len(n.Args) {
		return nil
	}
	return n.Args[i]
}

// Siblings returns the node and every node reachable through Next.
func (n *CommandNode) Siblings() []*CommandNode {
	var out []*CommandNode
	for c := n; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// Walk calls fn for n, its siblings, their children and every command nested
// in an argument slot, depth first. Returning false from fn skips the node's
// children and nested commands.
func Walk(n *CommandNode, fn func(*CommandNode) bool) {
	for c := n; c != nil; c = c.Next {
		walkNode(c, fn)
	}
}

func walkNode(n *CommandNode, fn func(*CommandNode) bool) {
	if !fn(n) {
		return
	}
	for _, arg := range n.Args {
		if ca, ok := arg.(*CommandArg); ok && ca.Command != nil {
			Walk(ca.Command, fn)
		}
	}
	for _, child := range n.Children {
		walkNode(child, fn)
	}
}
