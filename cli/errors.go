package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/exparse/internal/render"
	"github.com/aledsdavies/exparse/runtime/parser"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "input", "config", "parse"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// ExitError carries a process exit code without a message of its own; the
// output explaining it has already been written.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// parseFailure turns a fatal parse error of file into a CLIError.
func parseFailure(file string, err error) error {
	if errors.Is(err, parser.ErrResourceExhausted) {
		return &CLIError{
			Type:    "parse",
			Message: fmt.Sprintf("cannot parse %s", file),
			Details: err.Error(),
			Hint:    "raise parser.max_lines or parser.max_nesting in .exparse.toml",
		}
	}
	return &CLIError{Type: "input", Message: fmt.Sprintf("cannot read %s", file), Details: err.Error()}
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		formatCLIError(w, cliErr, useColor)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", render.Colorize("Error: ", render.ColorRed, useColor), err.Error())
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", render.Colorize("Error: ", render.ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "%s\n", render.Colorize("  "+err.Details, render.ColorGray, useColor))
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", render.Colorize("Hint: ", render.ColorYellow, useColor), err.Hint)
	}
}
