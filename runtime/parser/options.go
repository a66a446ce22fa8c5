package parser

import (
	"io"
	"log/slog"
	"time"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/runtime/expr"
)

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Line, command and error counts
	TelemetryTiming                      // Counts + wall time
)

// Defaults for the resource limits.
const (
	DefaultMaxNesting = 50
	DefaultMaxLines   = 1 << 20
)

// ExpressionParser parses the expression that starts at line[col] and returns
// its node and the offset just past it. An empty expression returns end ==
// col. Errors may implement ErrorOffset() int to point at the offending byte.
type ExpressionParser interface {
	ParseExpression(line string, col int) (node any, end int, err error)
}

// ParserConfig holds parser configuration
type ParserConfig struct {
	earlyReturn bool
	starRange   bool
	magic       bool
	maxNesting  int
	maxLines    int
	exprParser  ExpressionParser
	logger      *slog.Logger
	telemetry   TelemetryMode
}

func newConfig(opts []ParserOpt) *ParserConfig {
	c := &ParserConfig{
		starRange:  true,
		magic:      true,
		maxNesting: DefaultMaxNesting,
		maxLines:   DefaultMaxLines,
		exprParser: expr.Scanner{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEarlyReturn stops parsing after the first complete top-level command.
// A block command counts as complete once its end has been read.
func WithEarlyReturn() ParserOpt {
	return func(c *ParserConfig) {
		c.earlyReturn = true
	}
}

// WithStarRange controls whether a leading "*" means the visual area
// ("'<,'>"). When disabled, ":*" is the execute-register command.
func WithStarRange(enabled bool) ParserOpt {
	return func(c *ParserConfig) {
		c.starRange = enabled
	}
}

// WithMagic sets the 'magic' mode used to scan patterns and replacements.
func WithMagic(enabled bool) ParserOpt {
	return func(c *ParserConfig) {
		c.magic = enabled
	}
}

// WithMaxNesting bounds block nesting and nested-command recursion.
func WithMaxNesting(n int) ParserOpt {
	return func(c *ParserConfig) {
		if n > 0 {
			c.maxNesting = n
		}
	}
}

// WithMaxLines bounds the number of lines pulled from the source.
func WithMaxLines(n int) ParserOpt {
	return func(c *ParserConfig) {
		if n > 0 {
			c.maxLines = n
		}
	}
}

// WithExpressionParser replaces the default expression scanner.
func WithExpressionParser(ep ExpressionParser) ParserOpt {
	return func(c *ParserConfig) {
		if ep != nil {
			c.exprParser = ep
		}
	}
}

// WithLogger enables debug tracing through logger.
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTelemetryBasic enables basic telemetry (counts only)
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + wall time)
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// ParseTelemetry holds parser metrics
type ParseTelemetry struct {
	TotalTime    time.Duration // Wall time of the parse
	LineCount    int           // Lines pulled from the source
	CommandCount int           // Commands produced, nested ones included
	ErrorCount   int           // SyntaxError nodes produced
	MaxDepth     int           // Deepest block nesting seen
}

// countCommands counts every node reachable from head.
func countCommands(head *ast.CommandNode) int {
	n := 0
	ast.Walk(head, func(*ast.CommandNode) bool {
		n++
		return true
	})
	return n
}
