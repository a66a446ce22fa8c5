package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/internal/render"
)

// run executes the command line in a scratch directory.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	chdir(t, t.TempDir())
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeScript(t, "a.vim", "if x\n  set ic\nendif\n")
	out, _, err := run(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := path + ":\n" +
		"├─ if expr(x)\n" +
		"│  └─ set set(ic)\n" +
		"└─ endif\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("parse output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStdinYAML(t *testing.T) {
	out, _, err := run(t, "%s/a/b/g\n", "parse", "--format", "yaml", "-")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{"file: <stdin>", "name: substitute", "range: 1,$", "- re(a)", "run_id: "} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCBOR(t *testing.T) {
	out, _, err := run(t, "set ic\n", "parse", "--format", "cbor", "-")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var got render.Report
	if err := cbor.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a CBOR report: %v", err)
	}
	if got.File != "<stdin>" || len(got.Commands) != 1 || got.Commands[0].Name != "set" {
		t.Errorf("decoded report = %+v", got)
	}
	if got.SourceHash != render.SourceHash([]string{"set ic"}) {
		t.Errorf("source hash = %q", got.SourceHash)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{"early return", []string{"--early-return"}, "set ic\nset hls\n", "<stdin>:\n└─ set set(ic)\n"},
		{"no star range", []string{"--no-star-range"}, "*\n", "<stdin>:\n└─ *\n"},
		{"nomagic", []string{"--nomagic"}, "s/a/&/\n", "<stdin>:\n└─ substitute re(a) repl(\"&\")\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"parse", "--no-color"}, tt.args...)
			out, _, err := run(t, tt.input, append(args, "-")...)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	good := writeScript(t, "good.vim", "set ic\n")
	bad := writeScript(t, "bad.vim", "set ic\nfoo\n")

	out, _, err := run(t, "", "check", good)
	if err != nil {
		t.Fatalf("check of a clean file failed: %v", err)
	}
	if diff := cmp.Diff("ok "+good+"\n", out); diff != "" {
		t.Errorf("clean output mismatch (-want +got):\n%s", diff)
	}

	out, _, err = run(t, "", "check", good, bad)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("check error = %v, want exit status 1", err)
	}
	want := "ok " + good + "\n" +
		"error: E492: Not an editor command: foo\n" +
		"  --> " + bad + ":2:1\n" +
		"   |\n" +
		" 2 | foo\n" +
		"   | ^\n" +
		bad + ": 1 error\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("check output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckSuggestsCommand(t *testing.T) {
	bad := writeScript(t, "typo.vim", "sustitute/a/b/\n")
	out, _, err := run(t, "", "check", "--no-color", bad)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("check error = %v, want an exit status", err)
	}
	if !strings.Contains(out, "= help: did you mean :substitute?") {
		t.Errorf("check output has no suggestion:\n%s", out)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeScript(t, "exparse.toml", "[output]\nformat = \"yaml\"\n")
	out, _, err := run(t, "echo 1\n", "--config", cfg, "parse", "-")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(out, "name: echo") {
		t.Errorf("config format not applied:\n%s", out)
	}

	// Flags override the file.
	out, _, err = run(t, "echo 1\n", "--config", cfg, "--format", "tree", "parse", "-")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if diff := cmp.Diff("<stdin>:\n└─ echo exprs(1)\n", out); diff != "" {
		t.Errorf("override mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		typ  string
	}{
		{"missing file", []string{"parse", "/nonexistent/a.vim"}, "input"},
		{"bad format", []string{"--format", "json", "parse", "-"}, "config"},
		{"missing config", []string{"--config", "/nonexistent/x.toml", "parse", "-"}, "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			var cliErr *CLIError
			if !errors.As(err, &cliErr) {
				t.Fatalf("error = %v, want a CLIError", err)
			}
			if cliErr.Type != tt.typ {
				t.Errorf("error type = %q, want %q", cliErr.Type, tt.typ)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "cli error",
			err:  &CLIError{Message: "cannot open a.vim", Details: "no such file", Hint: "check the path"},
			want: "Error: cannot open a.vim\n  no such file\nHint: check the path\n",
		},
		{"exit error is silent", &ExitError{Code: 1}, ""},
		{"plain error", errors.New("boom"), "Error: boom\n"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatError(&buf, tt.err, false)
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("FormatError mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	if ShouldUseColor(&buf, false, true) {
		t.Error("a buffer is not a terminal")
	}
	if ShouldUseColor(os.Stdout, true, true) {
		t.Error("--no-color must disable color")
	}
	if ShouldUseColor(os.Stdout, false, false) {
		t.Error("color = false in config must disable color")
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
