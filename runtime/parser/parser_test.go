package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/runtime/linesource"
)

// mustParse parses input and fails the test on a fatal error.
func mustParse(t *testing.T, input string, opts ...ParserOpt) *ParseTree {
	t.Helper()
	tree, err := ParseString(input, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", input, err)
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("ParseString(%q) produced an invalid tree:\n%v", input, err)
	}
	return tree
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "substitute over the whole file",
			input: "%s/foo/bar/g",
			want:  lines(`substitute range=1,$ re(foo) repl("bar") subflags(g)`),
		},
		{
			name:  "delete a line range",
			input: ":3,5d",
			want:  lines("delete range=3,5"),
		},
		{
			name:  "delete with the list flag folded into the name",
			input: "dl",
			want:  lines("delete exflags=l"),
		},
		{
			name:  "del stays delete",
			input: "del",
			want:  lines("delete"),
		},
		{
			name:  "set with invert suffix",
			input: "se ic!",
			want:  lines("set set(ic!)"),
		},
		{
			name:  "set several options",
			input: "set nowrap sw=4 tw+=2",
			want:  lines("set set(nowrap sw=4 tw+=2)"),
		},
		{
			name:  "bar separated commands",
			input: "set ic | set hls",
			want:  lines("set set(ic)", "set set(hls)"),
		},
		{
			name:  "autocmd with comma separated pattern",
			input: "au BufRead *.c,*.h set ft=c",
			want:  lines("autocmd events(BufRead) pat({*.c,*.h}) {set set(ft=c)}"),
		},
		{
			name:  "global runs a nested command",
			input: "g/x/d",
			want:  lines("global re(x) {delete}"),
		},
		{
			name:  "semicolon range",
			input: "1;/x/d",
			want:  lines("delete range=1;/x/"),
		},
		{
			name:  "user command keeps its argument",
			input: "Foo bar baz",
			want:  lines("Foo str(bar baz)"),
		},
		{
			name:  "modifier wraps a command",
			input: "silent! normal gg",
			want:  lines("silent! {normal str(gg)}"),
		},
		{
			name:  "let assignment",
			input: "let x = 1",
			want:  lines("let let(x = 1)"),
		},
		{
			name:  "let heredoc",
			input: "let x =<< trim END\n  a\n  b\n  END",
			want:  lines("let let(x =<<) lines(END:2)"),
		},
		{
			name:  "append reads lines up to a dot",
			input: "append\nfoo\n.\necho 1",
			want:  lines("append lines(.:1)", "echo exprs(1)"),
		},
		{
			name:  "continuation lines are joined",
			input: "let x = [1,\n      \\ 2]",
			want:  lines("let let(x = [1, 2])"),
		},
		{
			name:  "mapping with flags",
			input: "nnoremap <silent> <leader>x :echo 1<CR>",
			want:  lines("nnoremap flags(<silent>) map(<leader>x => :echo 1<CR>)"),
		},
		{
			name:  "star is the visual range",
			input: "*d",
			want:  lines("delete range='<,'>"),
		},
		{
			name:  "bare range is a goto",
			input: "42",
			want:  lines("Goto range=42"),
		},
		{
			name:  "empty lines and colons produce nothing",
			input: "\n  ::\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
			if tree.HasErrors() {
				t.Errorf("unexpected errors: %v", tree.Errors)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "if with body",
			input: "if x\n  echo 'a'\nendif",
			want:  lines("if expr(x)", "  echo exprs('a')", "endif"),
		},
		{
			name:  "if on one line",
			input: "if 1 | echo 2 | endif",
			want:  lines("if expr(1)", "  echo exprs(2)", "endif"),
		},
		{
			name:  "if elseif else",
			input: "if a\necho 1\nelseif b\necho 2\nelse\necho 3\nendif",
			want: lines(
				"if expr(a)",
				"  echo exprs(1)",
				"elseif expr(b)",
				"  echo exprs(2)",
				"else",
				"  echo exprs(3)",
				"endif",
			),
		},
		{
			name:  "for loop",
			input: "for x in [1, 2]\n  echo x\nendfor",
			want:  lines("for for(x in [1, 2])", "  echo exprs(x)", "endfor"),
		},
		{
			name:  "try catch finally",
			input: "try\n  call F()\ncatch /E123/\nfinally\nendtry",
			want:  lines("try", "  call expr(F())", "catch re(E123)", "finally", "endtry"),
		},
		{
			name:  "function definition",
			input: "function! Foo(a, b = 1, ...) abort\n  return a\nendfunction",
			want:  lines("function! func(Foo(a, b=1, ...) abort)", "  return expr(a)", "endfunction"),
		},
		{
			name:  "function listing does not open a block",
			input: "function Foo\necho 1",
			want:  lines("function func(Foo())", "echo exprs(1)"),
		},
		{
			name:  "nested blocks",
			input: "while 1\n  if 2\n    break\n  endif\nendwhile",
			want:  lines("while expr(1)", "  if expr(2)", "    break", "  endif", "endwhile"),
		},
		{
			name:  "modifier in front of a block",
			input: "silent! if 1\necho 2\nendif",
			want:  lines("silent! {if expr(1)}", "  echo exprs(2)", "endif"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
			if tree.HasErrors() {
				t.Errorf("unexpected errors: %v", tree.Errors)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantErrors []string
	}{
		{
			name:       "endif without if",
			input:      "endif",
			want:       lines("SyntaxError error(0: E580: :endif without :if)"),
			wantErrors: []string{"E580: :endif without :if"},
		},
		{
			name:       "else without if",
			input:      "else",
			want:       lines("SyntaxError error(0: E581: :else without :if)"),
			wantErrors: []string{"E581: :else without :if"},
		},
		{
			name:       "unknown command drops the rest of the line",
			input:      "foo | echo 1\necho 2",
			want:       lines("SyntaxError error(0: E492: Not an editor command: foo | echo 1)", "echo exprs(2)"),
			wantErrors: []string{"E492: Not an editor command: foo | echo 1"},
		},
		{
			name:       "range on a command without one",
			input:      "3,5set",
			want:       lines("SyntaxError error(0: E481: No range allowed)"),
			wantErrors: []string{"E481: No range allowed"},
		},
		{
			name:       "error in a nested command replaces the outer command",
			input:      "g/x/foo",
			want:       lines("SyntaxError error(4: E492: Not an editor command: foo)"),
			wantErrors: []string{"E492: Not an editor command: foo"},
		},
		{
			name:  "missing ends are reported innermost first",
			input: "if 1\nwhile 1",
			want: lines(
				"if expr(1)",
				"  while expr(1)",
				"  SyntaxError error(0: E170: Missing :endwhile)",
				"SyntaxError error(0: E171: Missing :endif)",
			),
			wantErrors: []string{"E170: Missing :endwhile", "E171: Missing :endif"},
		},
		{
			name:       "endfor closing a while",
			input:      "while 1\nendfor",
			want:       lines("while expr(1)", "SyntaxError error(0: E732: Using :endfor with :while)"),
			wantErrors: []string{"E732: Using :endfor with :while"},
		},
		{
			name:  "multiple else",
			input: "if 1\nelse\nelse\nendif",
			want: lines(
				"if expr(1)",
				"else",
				"  SyntaxError error(0: E583: Multiple :else)",
				"endif",
			),
			wantErrors: []string{"E583: Multiple :else"},
		},
		{
			name:       "substitute delimited by a letter",
			input:      "s afooabara",
			want:       lines("SyntaxError error(2: E146: Regular expressions can't be delimited by letters)"),
			wantErrors: []string{"E146: Regular expressions can't be delimited by letters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
			var got []string
			for _, e := range tree.Errors {
				got = append(got, e.Message)
			}
			if diff := cmp.Diff(tt.wantErrors, got); diff != "" {
				t.Errorf("Errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorPositions(t *testing.T) {
	tree := mustParse(t, "echo 1\n  while 1")
	want := []ParseError{
		{Pos: ast.Position{Line: 2, Col: 2}, Line: "  while 1", Message: "E170: Missing :endwhile"},
	}
	if diff := cmp.Diff(want, tree.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRangeAddressCount(t *testing.T) {
	inputs := []string{
		"1,2d",
		"1;2;3d",
		",d",
		"1,d",
		".,$d",
		"'a,'bd",
		"/x/;/y/d",
		"+3d",
		"$-1,.+2d",
		"\\/,\\?d",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tree := mustParse(t, input)
			if tree.HasErrors() {
				t.Fatalf("unexpected errors: %v", tree.Errors)
			}
			prefix := strings.TrimSuffix(input, "d")
			seps := strings.Count(prefix, ",") + strings.Count(prefix, ";")
			if got := len(tree.Commands.Range); got != seps+1 {
				t.Errorf("%q: got %d addresses, want %d", input, got, seps+1)
			}
		})
	}
}

func TestRangeSetPos(t *testing.T) {
	tree := mustParse(t, "1;/x/,5d")
	var got []bool
	for _, e := range tree.Commands.Range {
		got = append(got, e.SetPos)
	}
	if diff := cmp.Diff([]bool{true, false, false}, got); diff != "" {
		t.Errorf("SetPos mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressFollowups(t *testing.T) {
	tree := mustParse(t, "/a/?b?+2-d")
	want := ast.Range{{Address: ast.SearchAddress{
		Regex: ast.Regex{Source: "a", Pos: ast.Position{Line: 1, Col: 1}},
		Chain: ast.Chain{
			ast.PatternFollowup{Backward: true, Regex: ast.Regex{Source: "b", Pos: ast.Position{Line: 1, Col: 4}}},
			ast.ShiftFollowup{Amount: 2},
			ast.ShiftFollowup{Amount: -1},
		},
	}}}
	if diff := cmp.Diff(want, tree.Commands.Range); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}
}

func TestEarlyReturn(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantLines int
	}{
		{
			name:      "stops after the first command",
			input:     "echo 1\necho 2",
			want:      lines("echo exprs(1)"),
			wantLines: 1,
		},
		{
			name:      "a block completes at its end",
			input:     "if 1\necho 2\nendif\necho 3",
			want:      lines("if expr(1)", "  echo exprs(2)", "endif"),
			wantLines: 3,
		},
		{
			name:      "comments do not count",
			input:     "\" note\necho 1\necho 2",
			want:      lines(`" str( note)`, "echo exprs(1)"),
			wantLines: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input, WithEarlyReturn())
			if diff := cmp.Diff(tt.want, ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
			if len(tree.Lines) != tt.wantLines {
				t.Errorf("read %d lines, want %d", len(tree.Lines), tt.wantLines)
			}
		})
	}
}

func TestStarRangeDisabled(t *testing.T) {
	tree := mustParse(t, "*a", WithStarRange(false))
	if diff := cmp.Diff(lines("* reg=a"), ast.Format(tree.Commands)); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceLimits(t *testing.T) {
	t.Run("line limit", func(t *testing.T) {
		tree, err := ParseString("echo 1\necho 2\necho 3", WithMaxLines(2))
		if !errors.Is(err, ErrResourceExhausted) {
			t.Fatalf("got error %v, want ErrResourceExhausted", err)
		}
		if tree != nil {
			t.Errorf("got a tree alongside a fatal error")
		}
	})

	t.Run("command nesting", func(t *testing.T) {
		_, err := ParseString("silent silent silent echo 1", WithMaxNesting(2))
		if !errors.Is(err, ErrResourceExhausted) {
			t.Fatalf("got error %v, want ErrResourceExhausted", err)
		}
	})

	t.Run("block nesting is a syntax error", func(t *testing.T) {
		tree := mustParse(t, "if 1\nif 2\nendif\nendif", WithMaxNesting(1))
		want := lines(
			"if expr(1)",
			"  SyntaxError error(0: E579: :if nesting too deep)",
			"endif",
			"SyntaxError error(0: E580: :endif without :if)",
		)
		if diff := cmp.Diff(want, ast.Format(tree.Commands)); diff != "" {
			t.Errorf("Format mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSourceSeesBlockDepth(t *testing.T) {
	input := []string{"if 1", "while 1", "endwhile", "endif"}
	var depths []int
	i := 0
	src := linesource.Func(func(cont byte, depth int) (string, bool) {
		if i >= len(input) {
			return "", false
		}
		depths = append(depths, depth)
		i++
		return input[i-1], true
	})
	if _, err := Parse(src); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1}, depths); diff != "" {
		t.Errorf("depth mismatch (-want +got):\n%s", diff)
	}
}

func TestTelemetry(t *testing.T) {
	tree := mustParse(t, "if 1\n  g/x/d\nendif\nfoo", WithTelemetryBasic())
	if tree.Telemetry == nil {
		t.Fatal("telemetry not collected")
	}
	want := ParseTelemetry{LineCount: 4, CommandCount: 5, ErrorCount: 1, MaxDepth: 1}
	if diff := cmp.Diff(want, *tree.Telemetry); diff != "" {
		t.Errorf("Telemetry mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeterministic(t *testing.T) {
	input := "if x\n  %s/a\\(b\\)/\\1/g | echo 'x'\nelse\n  au! BufRead *.go set ft=go\nendif\nfoo"
	first := ast.Format(mustParse(t, input).Commands)
	for i := 0; i < 5; i++ {
		if got := ast.Format(mustParse(t, input).Commands); got != first {
			t.Fatalf("run %d differs (-first +got):\n%s", i, cmp.Diff(first, got))
		}
	}
}
