package linesource_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/runtime/linesource"
)

func drain(src linesource.Source, cont byte) []string {
	var out []string
	for {
		line, ok := src.NextLine(cont, 0)
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

func TestContinuationJoining(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain lines",
			input: "set ic\necho 1\n",
			want:  []string{"set ic", "echo 1"},
		},
		{
			name:  "backslash continuation",
			input: "let x = [1,\n      \\ 2,\n      \\ 3]\necho x",
			want:  []string{"let x = [1, 2, 3]", "echo x"},
		},
		{
			name:  "comment inside continuation",
			input: "call F(1,\n  \"\\ the second argument\n  \\ 2)",
			want:  []string{"call F(1, 2)"},
		},
		{
			name:  "crlf endings",
			input: "echo 1\r\necho 2\r\n",
			want:  []string{"echo 1", "echo 2"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "empty lines kept",
			input: "echo 1\n\necho 2",
			want:  []string{"echo 1", "", "echo 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromString := drain(linesource.FromString(tt.input), linesource.Command)
			if diff := cmp.Diff(tt.want, fromString); diff != "" {
				t.Errorf("FromString mismatch (-want +got):\n%s", diff)
			}
			fromReader := drain(linesource.FromReader(strings.NewReader(tt.input)), linesource.Command)
			if diff := cmp.Diff(tt.want, fromReader); diff != "" {
				t.Errorf("FromReader mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRawLinesAreNotJoined(t *testing.T) {
	input := "python << EOF\nprint(1)\n  \\ not a continuation\nEOF"
	for name, src := range map[string]linesource.Source{
		"lines":  linesource.FromString(input),
		"reader": linesource.FromReader(strings.NewReader(input)),
	} {
		t.Run(name, func(t *testing.T) {
			first, _ := src.NextLine(linesource.Command, 0)
			if first != "python << EOF" {
				t.Fatalf("first line = %q", first)
			}
			got := drain(src, linesource.Raw)
			want := []string{"print(1)", `  \ not a continuation`, "EOF"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("raw lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFuncAdapter(t *testing.T) {
	var gotDepth int
	src := linesource.Func(func(cont byte, depth int) (string, bool) {
		gotDepth = depth
		return "echo 1", cont == linesource.Command
	})
	line, ok := src.NextLine(linesource.Command, 3)
	if !ok || line != "echo 1" || gotDepth != 3 {
		t.Errorf("NextLine = %q, %v (depth %d)", line, ok, gotDepth)
	}
	if _, ok := src.NextLine(linesource.Raw, 0); ok {
		t.Error("expected end of input for raw request")
	}
}

func TestReaderErrorEndsInput(t *testing.T) {
	boom := errors.New("boom")
	r := linesource.FromReader(iotest.ErrReader(boom))
	if _, ok := r.NextLine(linesource.Command, 0); ok {
		t.Fatal("expected end of input")
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("Err() = %v, want %v", r.Err(), boom)
	}
}
