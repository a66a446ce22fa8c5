package ast

import "fmt"

// Position is a location in the consumed source lines.
// Line is the 1-based index into ParseTree.Lines; Col is a 0-based byte
// offset into that line.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Add returns the position n bytes further along the same line.
func (p Position) Add(n int) Position {
	return Position{Line: p.Line, Col: p.Col + n}
}

// Expression is an argument handed to the external expression parser.
//
// Text is the expression source after escape removal. Skips lists, in
// ascending order, the original-line offsets of every escape character that
// was removed while building Text, so offsets reported against Text can be
// mapped back onto the line the user wrote (see OriginalCol).
type Expression struct {
	Text  string
	Pos   Position
	Skips []int

	// Node is the evaluator's own representation, if it produced one.
	Node any
}

func (e Expression) String() string {
	return e.Text
}

// OriginalCol maps an offset into Text onto a column of the source line.
func (e Expression) OriginalCol(offset int) int {
	col := e.Pos.Col + offset
	for _, s := range e.Skips {
		if s > col {
			break
		}
		col++
	}
	return col
}

// End is the source column just past the expression.
func (e Expression) End() int {
	return e.OriginalCol(len(e.Text))
}
