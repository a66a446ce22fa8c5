package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/core/ast"
)

// editPattern parses ":edit input" and returns its file argument.
func editPattern(t *testing.T, input string) ast.Pattern {
	t.Helper()
	tree := mustParse(t, "edit "+input)
	cmd := tree.Commands
	if cmd == nil || cmd.Next != nil {
		t.Fatalf("edit %s: want exactly one command, got %d", input, len(cmd.Siblings()))
	}
	arg, ok := cmd.Args[2].(*ast.GlobArg)
	if !ok {
		t.Fatalf("edit %s: slot 2 holds %T", input, cmd.Args[2])
	}
	return arg.Pattern
}

func TestFilePatterns(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Pattern
	}{
		{"foo.txt", ast.Pattern{ast.Literal{Text: "foo.txt"}}},
		{"*.c", ast.Pattern{ast.Anything{}, ast.Literal{Text: ".c"}}},
		{"a?b", ast.Pattern{ast.Literal{Text: "a"}, ast.Character{}, ast.Literal{Text: "b"}}},
		{"**2/x", ast.Pattern{ast.AnyRecurse{Depth: 2}, ast.Literal{Text: "/x"}}},
		{"**/x", ast.Pattern{ast.AnyRecurse{}, ast.Literal{Text: "/x"}}},
		{`\*`, ast.Pattern{ast.Literal{Text: "*"}}},
		{"[!a-z]x", ast.Pattern{
			ast.Collection{Inverted: true, Items: []ast.CollectionItem{ast.CollectionRange{From: 'a', To: 'z'}}},
			ast.Literal{Text: "x"},
		}},
		{"[]a]", ast.Pattern{
			ast.Collection{Items: []ast.CollectionItem{ast.CollectionChar{Rune: ']'}, ast.CollectionChar{Rune: 'a'}}},
		}},
		{"[[:digit:]]", ast.Pattern{
			ast.Collection{Items: []ast.CollectionItem{ast.CollectionClass{Name: "digit"}}},
		}},
		{"[abc", ast.Pattern{ast.Literal{Text: "[abc"}}},
		{"*.{c,h}", ast.Pattern{
			ast.Anything{},
			ast.Literal{Text: "."},
			ast.Branch{Alternatives: []ast.Pattern{{ast.Literal{Text: "c"}}, {ast.Literal{Text: "h"}}}},
		}},
		{"{a,b", ast.Pattern{ast.Literal{Text: "{a,b"}}},
		{"{{a,b}", ast.Pattern{
			ast.Literal{Text: "{"},
			ast.Branch{Alternatives: []ast.Pattern{{ast.Literal{Text: "a"}}, {ast.Literal{Text: "b"}}}},
		}},
		{"~/x", ast.Pattern{ast.Home{}, ast.Literal{Text: "/x"}}},
		{"a~", ast.Pattern{ast.Literal{Text: "a~"}}},
		{"$HOME/x", ast.Pattern{ast.Environment{Name: "HOME"}, ast.Literal{Text: "/x"}}},
		{"${X}y", ast.Pattern{ast.Environment{Name: "X", Braced: true}, ast.Literal{Text: "y"}}},
		{"${X}:t", ast.Pattern{ast.Environment{Name: "X", Braced: true, Mods: ast.Modifiers{{Kind: ast.ModTail}}}}},
		{"$", ast.Pattern{ast.Literal{Text: "$"}}},
		{"%:p:h", ast.Pattern{ast.Current{Mods: ast.Modifiers{{Kind: ast.ModFullPath}, {Kind: ast.ModHead}}}}},
		{"#", ast.Pattern{ast.Alternate{}}},
		{"#3:t", ast.Pattern{ast.BufName{Number: 3, Mods: ast.Modifiers{{Kind: ast.ModTail}}}}},
		{"#<2", ast.Pattern{ast.OldFile{Number: 2}}},
		{"##", ast.Pattern{ast.CmdlineToken{Name: "##"}}},
		{"<cfile>:r.bak", ast.Pattern{
			ast.CmdlineToken{Name: "cfile", Mods: ast.Modifiers{{Kind: ast.ModRoot}}},
			ast.Literal{Text: ".bak"},
		}},
		{"<nope>", ast.Pattern{ast.Literal{Text: "<nope>"}}},
		{"`ls`", ast.Pattern{ast.ShellSubst{Command: "ls"}}},
		{"`ls", ast.Pattern{ast.Literal{Text: "`ls"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := editPattern(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("pattern mismatch (-want +got):\n%s", diff)
			}
			if s := got.String(); s != tt.input && tt.input != `\*` {
				t.Errorf("String() = %q, want %q", s, tt.input)
			}
		})
	}
}

func TestFileModifierSubstitution(t *testing.T) {
	got := editPattern(t, "%:gs?a?b?:t")
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	cur, ok := got[0].(ast.Current)
	if !ok {
		t.Fatalf("item is %T, want ast.Current", got[0])
	}
	if len(cur.Mods) != 2 {
		t.Fatalf("got %d modifiers, want 2", len(cur.Mods))
	}
	sub := cur.Mods[0]
	if sub.Kind != ast.ModGSub || sub.Delim != '?' || sub.Regex.Source != "a" {
		t.Errorf("substitution modifier = %+v", sub)
	}
	if cur.Mods[1].Kind != ast.ModTail {
		t.Errorf("second modifier kind = %v, want ModTail", cur.Mods[1].Kind)
	}
	if s := got.String(); s != "%:gs?a?b?:t" {
		t.Errorf("String() = %q", s)
	}
}

func TestExpressionSubstitution(t *testing.T) {
	got := editPattern(t, "`=expand('x')`")
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	sub, ok := got[0].(ast.ExprSubst)
	if !ok {
		t.Fatalf("item is %T, want ast.ExprSubst", got[0])
	}
	if sub.Expr.Text != "expand('x')" {
		t.Errorf("expression text = %q", sub.Expr.Text)
	}
}

func TestFileListPatterns(t *testing.T) {
	tree := mustParse(t, "args a.c *.h | echo 1")
	list, ok := tree.Commands.Args[2].(*ast.GlobListArg)
	if !ok {
		t.Fatalf("slot 2 holds %T", tree.Commands.Args[2])
	}
	var got []string
	for _, p := range list.Patterns {
		got = append(got, p.String())
	}
	if diff := cmp.Diff([]string{"a.c", "*.h"}, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if n := len(tree.Commands.Siblings()); n != 2 {
		t.Errorf("bar should end the file list, got %d commands", n)
	}
}

func TestAutocmdPatterns(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Pattern
	}{
		{"*.c", ast.Pattern{ast.Anything{}, ast.Literal{Text: ".c"}}},
		{"*.c,*.h", ast.Pattern{ast.Branch{Alternatives: []ast.Pattern{
			{ast.Anything{}, ast.Literal{Text: ".c"}},
			{ast.Anything{}, ast.Literal{Text: ".h"}},
		}}}},
		{"<buffer>", ast.Pattern{ast.BufferLocal{Number: -1}}},
		{"<buffer=3>", ast.Pattern{ast.BufferLocal{Number: 3}}},
		{"<buffer=abuf>", ast.Pattern{ast.BufferLocal{Number: 0}}},
		{"<buffer=0>", ast.Pattern{ast.Literal{Text: "<buffer=0>"}}},
		// Autocommand patterns have no file specials.
		{"%", ast.Pattern{ast.Literal{Text: "%"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustParse(t, "autocmd BufRead "+tt.input+" echo 1")
			arg, ok := tree.Commands.Args[2].(*ast.PatternArg)
			if !ok {
				t.Fatalf("slot 2 holds %T", tree.Commands.Args[2])
			}
			if diff := cmp.Diff(tt.want, arg.Pattern); diff != "" {
				t.Errorf("pattern mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Unclosed braces are literal text, and deep nesting must not rescan the
// rest of the line once per enclosing brace.
func TestUnclosedBracesAreLiteral(t *testing.T) {
	for _, prefix := range []string{"", "x", "{a}"} {
		input := prefix + strings.Repeat("{", 200) + "a"
		got := editPattern(t, input)
		want := ast.Pattern{ast.Literal{Text: input}}
		if prefix == "{a}" {
			want = ast.Pattern{
				ast.Branch{Alternatives: []ast.Pattern{{ast.Literal{Text: "a"}}}},
				ast.Literal{Text: strings.Repeat("{", 200) + "a"},
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%.10s...: pattern mismatch (-want +got):\n%s", input, diff)
		}
	}

	tree := mustParse(t, "au BufRead "+strings.Repeat("{", 200)+"x echo 1")
	arg := tree.Commands.Args[2].(*ast.PatternArg)
	if diff := cmp.Diff(ast.Pattern{ast.Literal{Text: strings.Repeat("{", 200) + "x"}}, arg.Pattern); diff != "" {
		t.Errorf("autocmd pattern mismatch (-want +got):\n%s", diff)
	}
}
