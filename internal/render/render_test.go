package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/exparse/runtime/parser"
)

func parse(t *testing.T, input string, opts ...parser.ParserOpt) *parser.ParseTree {
	t.Helper()
	tree, err := parser.ParseString(input, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", input, err)
	}
	return tree
}

func TestFormatTree(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty script",
			input: "",
			want:  "a.vim:\n(no commands)\n",
		},
		{
			name:  "blocks nest under their opener",
			input: "if x\n  while 1\n    break\n  endwhile\n  echo 1\nendif\nset ic",
			want: "a.vim:\n" +
				"├─ if expr(x)\n" +
				"│  ├─ while expr(1)\n" +
				"│  │  └─ break\n" +
				"│  ├─ endwhile\n" +
				"│  └─ echo exprs(1)\n" +
				"├─ endif\n" +
				"└─ set set(ic)\n",
		},
		{
			name:  "modifier bodies",
			input: "silent! if 1\necho 2\nendif",
			want: "a.vim:\n" +
				"├─ silent! {if expr(1)}\n" +
				"│  └─ echo exprs(2)\n" +
				"└─ endif\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTree(&buf, "a.vim", parse(t, tt.input), false)
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("FormatTree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTreeColors(t *testing.T) {
	var buf bytes.Buffer
	FormatTree(&buf, "a.vim", parse(t, "foo\nset ic"), true)
	out := buf.String()
	if !strings.Contains(out, ColorRed+"SyntaxError"+ColorReset) {
		t.Errorf("error node not red:\n%q", out)
	}
	if !strings.Contains(out, ColorBlue+"set"+ColorReset+" set(ic)") {
		t.Errorf("command name not blue:\n%q", out)
	}
}

func TestFormatDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	FormatDiagnostics(&buf, "a.vim", parse(t, "set ic\nendif"), false)
	want := "error: E580: :endif without :if\n" +
		"  --> a.vim:2:1\n" +
		"   |\n" +
		" 2 | endif\n" +
		"   | ^\n" +
		"a.vim: 1 error\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("FormatDiagnostics mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	FormatDiagnostics(&buf, "b.vim", parse(t, "set ic"), false)
	if diff := cmp.Diff("ok b.vim\n", buf.String()); diff != "" {
		t.Errorf("clean file mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReport(t *testing.T) {
	tree := parse(t, "3,5d a\nif x\n  silent! put =y\nendif\nfoo", parser.WithTelemetryBasic())
	r := NewReport("a.vim", tree)
	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", r.RunID, err)
	}
	r.RunID = ""
	if len(r.SourceHash) != 64 {
		t.Errorf("SourceHash %q is not a hex BLAKE2b-256 digest", r.SourceHash)
	}

	want := &Report{
		File:       "a.vim",
		SourceHash: SourceHash([]string{"3,5d a", "if x", "  silent! put =y", "endif", "foo"}),
		Lines:      5,
		Commands: []Command{
			{Name: "delete", Pos: "1:0", Range: "3,5", Register: "a"},
			{
				Name: "if", Pos: "2:0", Args: []string{"expr(x)"},
				Body: []Command{{
					Name: "silent", Bang: true, Pos: "3:2",
					Nested: []Command{{Name: "put", Pos: "3:10", Register: "=y"}},
				}},
			},
			{Name: "endif", Pos: "4:0"},
			{Name: "SyntaxError", Pos: "5:0", Error: "E492: Not an editor command: foo"},
		},
		Errors: []Diagnostic{
			{Pos: "5:0", Message: "E492: Not an editor command: foo", Line: "foo"},
		},
		Telemetry: &Telemetry{Commands: 6, Errors: 1, MaxDepth: 1},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("NewReport mismatch (-want +got):\n%s", diff)
	}

	if other := NewReport("a.vim", tree); other.RunID == "" {
		t.Error("second report has no run ID")
	}
}

func TestWriteYAML(t *testing.T) {
	r := NewReport("a.vim", parse(t, "s/a/b/g"))
	var buf bytes.Buffer
	if err := WriteYAML(&buf, r, r); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	dec := yaml.NewDecoder(&buf)
	var docs []Report
	for {
		var got Report
		if err := dec.Decode(&got); err != nil {
			break
		}
		docs = append(docs, got)
	}
	if len(docs) != 2 {
		t.Fatalf("decoded %d documents, want 2", len(docs))
	}
	if diff := cmp.Diff(*r, docs[0]); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceHash(t *testing.T) {
	a := SourceHash([]string{"set ic", "set hls"})
	if a != SourceHash([]string{"set ic", "set hls"}) {
		t.Error("hash is not deterministic")
	}
	if a == SourceHash([]string{"set ic set hls"}) {
		t.Error("line breaks do not change the hash")
	}
}

func TestWriteCBOR(t *testing.T) {
	r := NewReport("a.vim", parse(t, "if x\n  echo 1\nendif\nfoo"))
	var first, second bytes.Buffer
	if err := WriteCBOR(&first, r); err != nil {
		t.Fatalf("WriteCBOR() error = %v", err)
	}
	if err := WriteCBOR(&second, r); err != nil {
		t.Fatalf("WriteCBOR() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("canonical encoding differs between runs")
	}

	var got Report
	if err := cbor.Unmarshal(first.Bytes(), &got); err != nil {
		t.Fatalf("cbor.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(*r, got); diff != "" {
		t.Errorf("CBOR round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"sustitute", "substitute"},
		{"endfuction", "endfunction"},
		{"hilight", "highlight"},
		{"stinsrt", "stopinsert"},
		{"foo", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Suggest(tt.word); got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestFormatDiagnosticsHint(t *testing.T) {
	var buf bytes.Buffer
	FormatDiagnostics(&buf, "a.vim", parse(t, "hilight Normal"), false)
	want := "error: E492: Not an editor command: hilight Normal\n" +
		"  --> a.vim:1:1\n" +
		"   |\n" +
		" 1 | hilight Normal\n" +
		"   | ^\n" +
		"   = help: did you mean :highlight?\n" +
		"a.vim: 1 error\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("FormatDiagnostics mismatch (-want +got):\n%s", diff)
	}

	r := NewReport("a.vim", parse(t, "hilight Normal"))
	if len(r.Errors) != 1 || r.Errors[0].Hint != "did you mean :highlight?" {
		t.Errorf("report errors = %+v, want one with a highlight hint", r.Errors)
	}
}
