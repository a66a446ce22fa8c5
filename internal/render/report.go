package render

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/runtime/parser"
)

// Report is the machine-readable result of parsing one file.
type Report struct {
	RunID      string       `yaml:"run_id" cbor:"run_id"`
	File       string       `yaml:"file" cbor:"file"`
	SourceHash string       `yaml:"source_hash" cbor:"source_hash"`
	Lines      int          `yaml:"lines" cbor:"lines"`
	Commands   []Command    `yaml:"commands,omitempty" cbor:"commands,omitempty"`
	Errors     []Diagnostic `yaml:"errors,omitempty" cbor:"errors,omitempty"`
	Telemetry  *Telemetry   `yaml:"telemetry,omitempty" cbor:"telemetry,omitempty"`
}

// Command is one command node. Nested holds the commands of argument slots
// (":global", modifiers); Body holds a block body.
type Command struct {
	Name     string    `yaml:"name" cbor:"name"`
	Bang     bool      `yaml:"bang,omitempty" cbor:"bang,omitempty"`
	Pos      string    `yaml:"pos" cbor:"pos"`
	Range    string    `yaml:"range,omitempty" cbor:"range,omitempty"`
	Count    *int      `yaml:"count,omitempty" cbor:"count,omitempty"`
	Register string    `yaml:"register,omitempty" cbor:"register,omitempty"`
	Args     []string  `yaml:"args,omitempty" cbor:"args,omitempty"`
	Error    string    `yaml:"error,omitempty" cbor:"error,omitempty"`
	Nested   []Command `yaml:"nested,omitempty" cbor:"nested,omitempty"`
	Body     []Command `yaml:"body,omitempty" cbor:"body,omitempty"`
}

// Diagnostic is one syntax error.
type Diagnostic struct {
	Pos     string `yaml:"pos" cbor:"pos"`
	Message string `yaml:"message" cbor:"message"`
	Line    string `yaml:"line" cbor:"line"`
	Hint    string `yaml:"hint,omitempty" cbor:"hint,omitempty"`
}

// Telemetry is the parser telemetry, when it was collected.
type Telemetry struct {
	Commands  int    `yaml:"commands" cbor:"commands"`
	Errors    int    `yaml:"errors" cbor:"errors"`
	MaxDepth  int    `yaml:"max_depth" cbor:"max_depth"`
	TotalTime string `yaml:"total_time,omitempty" cbor:"total_time,omitempty"`
}

// NewReport builds the report of tree under a fresh run ID.
func NewReport(file string, tree *parser.ParseTree) *Report {
	r := &Report{
		RunID:      uuid.NewString(),
		File:       file,
		SourceHash: SourceHash(tree.Lines),
		Lines:      len(tree.Lines),
		Commands:   commands(tree.Commands),
	}
	for _, e := range tree.Errors {
		r.Errors = append(r.Errors, Diagnostic{
			Pos:     e.Pos.String(),
			Message: e.Message,
			Line:    e.Line,
			Hint:    hint(e.Message),
		})
	}
	if t := tree.Telemetry; t != nil {
		r.Telemetry = &Telemetry{
			Commands: t.CommandCount,
			Errors:   t.ErrorCount,
			MaxDepth: t.MaxDepth,
		}
		if t.TotalTime > 0 {
			r.Telemetry.TotalTime = t.TotalTime.String()
		}
	}
	return r
}

// SourceHash returns the hex BLAKE2b-256 digest of lines joined by newlines.
// Reports of the same script share it across runs.
func SourceHash(lines []string) string {
	sum := blake2b.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func commands(head *ast.CommandNode) []Command {
	var out []Command
	for n := head; n != nil; n = n.Next {
		out = append(out, command(n))
	}
	return out
}

func command(n *ast.CommandNode) Command {
	c := Command{
		Name:  n.CommandName(),
		Bang:  n.Bang,
		Pos:   n.Pos.String(),
		Range: n.Range.String(),
		Count: n.Count,
	}
	if r := n.Register; r != nil {
		if r.Expr != nil {
			c.Register = "=" + r.Expr.Text
		} else {
			c.Register = string(r.Name)
		}
	}
	if e := n.SyntaxError(); e != nil {
		c.Error = e.Message
		return c
	}
	for _, a := range n.Args {
		if ca, ok := a.(*ast.CommandArg); ok {
			c.Nested = append(c.Nested, commands(ca.Command)...)
			continue
		}
		if s := ast.FormatArg(a); s != "" {
			c.Args = append(c.Args, s)
		}
	}
	for _, child := range n.Children {
		c.Body = append(c.Body, command(child))
	}
	return c
}

// WriteYAML writes each report as its own YAML document.
func WriteYAML(w io.Writer, reports ...*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report for %s: %w", r.File, err)
		}
	}
	return enc.Close()
}

// WriteCBOR writes each report as one canonical CBOR data item, so identical
// reports encode to identical bytes.
func WriteCBOR(w io.Writer, reports ...*Report) error {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	enc := encMode.NewEncoder(w)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report for %s: %w", r.File, err)
		}
	}
	return nil
}
