package expr_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/runtime/expr"
)

func TestExpressionExtent(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want string
	}{
		{"number", "1", 0, "1"},
		{"binary chain", "a + b * 3", 0, "a + b * 3"},
		{"stops at bar", "x == 1 | echo 2", 0, "x == 1"},
		{"logical or is not a bar", "a || b", 0, "a || b"},
		{"stops before next operand", `"a" "b"`, 0, `"a"`},
		{"starts mid line", "if exists('g:x') && g:x", 3, "exists('g:x') && g:x"},
		{"nested brackets", "map([1, 2], {k, v -> v * 2})", 0, "map([1, 2], {k, v -> v * 2})"},
		{"dictionary", "#{a: 1, b: [2, 3]}", 0, "#{a: 1, b: [2, 3]}"},
		{"ternary", "a ? b : c", 0, "a ? b : c"},
		{"method call", "list->len() > 0", 0, "list->len() > 0"},
		{"member access", "s:dict.key", 0, "s:dict.key"},
		{"options and registers", "&l:tw + @a + $HOME", 0, "&l:tw + @a + $HOME"},
		{"case suffix", "name =~# '^x' ", 0, "name =~# '^x'"},
		{"isnot", "a isnot b", 0, "a isnot b"},
		{"single quote doubling", "'it''s'", 0, "'it''s'"},
		{"float", "1.5e-3 + 0x1F", 0, "1.5e-3 + 0x1F"},
		{"unary", "!empty(x)", 0, "!empty(x)"},
		{"sid function", "<SID>Helper(1)", 0, "<SID>Helper(1)"},
		{"empty", "   ", 0, ""},
		{"stops at comment", `x " comment`, 0, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, end, err := expr.Scanner{}.ParseExpression(tt.line, tt.col)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			start := tt.col
			for start < end && tt.line[start] == ' ' {
				start++
			}
			got := tt.line[start:end]
			if tt.want == "" {
				got = tt.line[tt.col:end]
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extent mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpressionTokens(t *testing.T) {
	node, _, err := expr.Scanner{}.ParseExpression("g:x[0] .. 'y'", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := expr.Tokens{
		{Kind: expr.Name, Text: "g:x", Offset: 0},
		{Kind: expr.Punct, Text: "[", Offset: 3},
		{Kind: expr.Number, Text: "0", Offset: 4},
		{Kind: expr.Punct, Text: "]", Offset: 5},
		{Kind: expr.Operator, Text: "..", Offset: 7},
		{Kind: expr.String, Text: "'y'", Offset: 10},
	}
	if diff := cmp.Diff(want, node); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		offset int
		msg    string
	}{
		{"missing double quote", `"abc`, 0, `E114: Missing double quote: "abc`},
		{"missing single quote", `'abc`, 0, `E115: Missing single quote: 'abc`},
		{"missing paren", "F(1, 2", 1, "E110: Missing ')'"},
		{"missing bracket", "[1, 2", 0, "E697: Missing end of List ']': [1, 2"},
		{"missing brace", "{'a': 1", 0, "E723: Missing end of Dictionary '}': {'a': 1"},
		{"dangling operator", "1 +", 3, `E15: Invalid expression: ""`},
		{"missing colon", "a ? b", 5, "E109: Missing ':' after '?'"},
		{"bar inside list", "[1 | 2]", 0, "E697: Missing end of List ']': [1 | 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := expr.Scanner{}.ParseExpression(tt.line, 0)
			var exprErr *expr.Error
			if !errors.As(err, &exprErr) {
				t.Fatalf("expected *expr.Error, got %v", err)
			}
			if exprErr.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", exprErr.Offset, tt.offset)
			}
			if diff := cmp.Diff(tt.msg, exprErr.Message); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
