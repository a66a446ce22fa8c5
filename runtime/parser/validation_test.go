package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/core/ast"
)

func TestValidateParsedTrees(t *testing.T) {
	inputs := []string{
		"",
		"set ic | g/x/s/a/b/",
		"if 1\n  while 0\n    break\n  endwhile\nelse\nendif",
		"silent! if 1\nendif",
		"foo\nendif\nif",
		"let x =<< END\na\nEND",
	}
	for _, input := range inputs {
		if err := mustParseNoValidate(t, input).Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", input, err)
		}
	}
}

func TestValidateReportsDefects(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		break_ func(*ParseTree)
		want   string
	}{
		{
			name:  "end past the line",
			input: "set ic",
			break_: func(tr *ParseTree) {
				tr.Commands.End.Col = 40
			},
			want: "end column 40",
		},
		{
			name:  "line outside the source",
			input: "set ic",
			break_: func(tr *ParseTree) {
				tr.Commands.Pos.Line = 3
			},
			want: "start line 3 outside 1..1",
		},
		{
			name:  "missing slots",
			input: "set ic",
			break_: func(tr *ParseTree) {
				tr.Commands.Args = nil
			},
			want: "0 argument slots, want 1",
		},
		{
			name:  "wrong slot kind",
			input: "set ic",
			break_: func(tr *ParseTree) {
				tr.Commands.Args[0] = &ast.StringArg{}
			},
			want: "slot 0 holds *ast.StringArg",
		},
		{
			name:  "body under a plain command",
			input: "set ic\nset hls",
			break_: func(tr *ParseTree) {
				second := tr.Commands.Next
				tr.Commands.Next = nil
				tr.Commands.Children = []*ast.CommandNode{second}
			},
			want: "has a body but is not a block command",
		},
		{
			name:  "body entry linked through Next",
			input: "if 1\n  set ic\nendif\nset hls",
			break_: func(tr *ParseTree) {
				tr.Commands.Children[0].Next = tr.Commands.Next
			},
			want: "block body entry linked through Next",
		},
		{
			name:  "error count mismatch",
			input: "foo",
			break_: func(tr *ParseTree) {
				tr.Errors = nil
			},
			want: "1 SyntaxError nodes but 0 recorded errors",
		},
		{
			name:  "error offset out of bounds",
			input: "foo",
			break_: func(tr *ParseTree) {
				tr.Commands.SyntaxError().Offset = 9
			},
			want: `offset 9 outside "foo"`,
		},
		{
			name:  "defect inside a nested command",
			input: "silent set ic",
			break_: func(tr *ParseTree) {
				ca, _ := slotOf[*ast.CommandArg](tr.Commands)
				ca.Command.Args = nil
			},
			want: "set: 0 argument slots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParseNoValidate(t, tt.input)
			tt.break_(tree)
			err := tree.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want an error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error %T does not hold a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	e := &ValidationError{Pos: ast.Position{Line: 2, Col: 4}, Command: "set", Message: "bad"}
	if got, want := e.Error(), "2:4: set: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	e.Command = ""
	if got, want := e.Error(), "2:4: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func mustParseNoValidate(t *testing.T, input string) *ParseTree {
	t.Helper()
	tree, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", input, err)
	}
	return tree
}

// A NUL byte is a valid pattern delimiter; at end of line it must not be
// mistaken for the closing one.
func TestNulDelimiterAtEndOfLine(t *testing.T) {
	for _, input := range []string{
		"s\x00a",
		"s\x00a\x00b",
		"g\x00x",
		"sort \x00",
		"vimgrep \x00x",
		"filter \x00x",
		"1;/x/\x00",
	} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			tree := mustParseNoValidate(t, input)
			if err := tree.Validate(); err != nil {
				t.Errorf("invalid tree:\n%v", err)
			}
		})
	}

	got := ast.Format(mustParse(t, "s\x00a\x00b\x00g").Commands)
	if diff := cmp.Diff("substitute re(a) repl(\"b\") subflags(g)\n", got); diff != "" {
		t.Errorf("closed NUL delimiters mismatch (-want +got):\n%s", diff)
	}
}
