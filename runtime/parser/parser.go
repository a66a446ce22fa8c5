// Package parser turns Ex command lines into a tree of ast.CommandNode.
//
// The parser never stops at a user error: a command that fails to parse is
// replaced by a SyntaxError node carrying the line, the message and the byte
// offset, and parsing continues with the next line. The only failure that
// aborts a parse is resource exhaustion (ErrResourceExhausted).
package parser

import (
	"errors"
	"log/slog"
	"time"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/core/invariant"
	"github.com/aledsdavies/exparse/runtime/linesource"
)

// ParseTree is the result of a parse.
type ParseTree struct {
	Commands  *ast.CommandNode // first top-level command, siblings via Next
	Lines     []string         // every line pulled from the source
	Errors    []ParseError     // one per SyntaxError node, in creation order
	Telemetry *ParseTelemetry  // nil unless telemetry was enabled
}

// HasErrors reports whether any SyntaxError node was produced.
func (t *ParseTree) HasErrors() bool {
	return len(t.Errors) > 0
}

// Parse reads lines from src until it is exhausted and returns the command
// tree. The returned error is non-nil only for ErrResourceExhausted, in which
// case the tree is nil.
func Parse(src linesource.Source, opts ...ParserOpt) (*ParseTree, error) {
	invariant.NotNil(src, "src")
	config := newConfig(opts)

	var startTotal time.Time
	if config.telemetry >= TelemetryTiming {
		startTotal = time.Now()
	}

	p := &parser{
		config: config,
		logger: config.logger,
		src:    src,
		errors: make([]ParseError, 0, 4),
	}
	root := &chain{}
	m := p.newMatcher(root)
	if err := p.run(m); err != nil {
		p.logger.Debug("parse aborted", "error", err)
		return nil, err
	}
	m.finish()

	tree := &ParseTree{
		Commands: root.head,
		Lines:    p.lines,
		Errors:   p.errors,
	}
	if config.telemetry >= TelemetryBasic {
		tree.Telemetry = &ParseTelemetry{
			LineCount:    len(p.lines),
			CommandCount: countCommands(root.head),
			ErrorCount:   len(p.errors),
			MaxDepth:     p.maxBlockDepth,
		}
		if config.telemetry >= TelemetryTiming {
			tree.Telemetry.TotalTime = time.Since(startTotal)
		}
	}
	return tree, nil
}

// ParseString parses text split into lines.
func ParseString(text string, opts ...ParserOpt) (*ParseTree, error) {
	return Parse(linesource.FromString(text), opts...)
}

// ParseLine parses a single line, as ":execute" does. Commands that read
// further lines (":append", heredocs) see end of input.
func ParseLine(line string, opts ...ParserOpt) (*ParseTree, error) {
	return Parse(linesource.FromLines([]string{line}), opts...)
}

type parser struct {
	config *ParserConfig
	logger *slog.Logger
	src    linesource.Source
	lines  []string
	errors []ParseError

	// Current command line. Lines read as command bodies do not replace it.
	line   string
	lineNo int
	pos    int

	depth         int // nested command recursion
	blockDepth    int // open blocks, passed to the source as a prompt hint
	maxBlockDepth int
}

func (p *parser) run(m *matcher) error {
	for {
		ok, err := p.nextLine()
		if err != nil || !ok {
			return err
		}
		done, err := p.parseLine(m)
		if err != nil || done {
			return err
		}
	}
}

// nextLine makes the next command line current.
func (p *parser) nextLine() (bool, error) {
	line, ok, err := p.pull(linesource.Command)
	if err != nil || !ok {
		return false, err
	}
	p.line, p.lineNo, p.pos = line, len(p.lines), 0
	return true, nil
}

// pull reads one line from the source and records it.
func (p *parser) pull(cont byte) (string, bool, error) {
	line, ok := p.src.NextLine(cont, p.blockDepth)
	if !ok {
		return "", false, nil
	}
	if len(p.lines) >= p.config.maxLines {
		return "", false, fatalf("more than %d lines", p.config.maxLines)
	}
	p.lines = append(p.lines, line)
	return line, true, nil
}

// parseLine parses every "|" separated command of the current line. done
// reports that early return is satisfied.
func (p *parser) parseLine(m *matcher) (bool, error) {
	for {
		node, err := p.parseOne()
		if err != nil {
			return false, err
		}
		if node != nil {
			m.add(node)
			if p.config.earlyReturn && m.completed() {
				return true, nil
			}
		}
		if p.atBar() {
			p.pos++
			continue
		}
		invariant.Postcondition(p.atEOL(), "command ended at %d of %q", p.pos, p.line)
		return false, nil
	}
}

// parseOne parses the command at the cursor. A recoverable error replaces the
// command with a SyntaxError node and drops the rest of the line. It returns
// nil for an empty command.
func (p *parser) parseOne() (*ast.CommandNode, error) {
	lineNo, line := p.lineNo, p.line
	node, err := p.parseCommand()
	if err == nil {
		if node != nil {
			p.logger.Debug("command", "line", lineNo, "name", node.CommandName())
		}
		return node, nil
	}
	var se *syntaxError
	if !errors.As(err, &se) {
		return nil, err
	}
	p.pos = len(p.line)
	return p.errorNode(lineNo, line, se.col, se.msg), nil
}

// parseCommand parses one command: range, name, bang and arguments. It
// leaves the cursor at end of line or on the "|" that ends the command.
func (p *parser) parseCommand() (*ast.CommandNode, error) {
	p.skipColons()
	if p.atEOL() || p.atBar() {
		return nil, nil
	}
	start := p.pos
	if p.peek() == '"' {
		node := p.newNode(ast.CmdComment, start)
		slot[*ast.StringArg](node, 0).Value = p.line[p.pos+1:]
		p.pos = len(p.line)
		node.End = p.at(p.pos)
		return node, nil
	}

	rng, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	p.skipColons()
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		if len(rng) == 0 {
			p.pos = len(p.line)
			return nil, nil
		}
		node := p.newNode(ast.CmdGoto, start)
		node.Range = rng
		node.End = p.at(p.pos)
		if p.peek() == '"' {
			p.pos = len(p.line)
		}
		return node, nil
	}

	t, name, exFlags, err := p.parseName()
	if err != nil {
		return nil, err
	}
	def := ast.Lookup(t)
	node := p.newNode(t, start)
	node.Name = name
	node.Range = rng
	node.Flags = exFlags

	if def.IsModifier() {
		return p.parseModifier(node, def)
	}
	if len(rng) > 0 && !def.Has(ast.FlagRange) {
		return nil, p.errorf(start, "E481: No range allowed")
	}
	if p.peek() == '!' && !bangIsDelimiter(t) {
		if !def.Has(ast.FlagBang) {
			return nil, p.errorf(p.pos, "E477: No ! allowed")
		}
		node.Bang = true
		p.pos++
	}
	p.skipBlanks()

	if err := p.parsePrelude(node, def); err != nil {
		return nil, err
	}
	if def.Has(ast.FlagNeedArg) && p.atArgEnd(def) {
		return nil, p.errorf(p.pos, "E471: Argument required")
	}
	argStart := p.pos
	if err := p.parseArgs(node, def); err != nil {
		return nil, err
	}
	invariant.Invariant(p.pos >= argStart, "%s argument parser moved the cursor back", def.Name)
	checkSlots(node, def)
	return node, p.finish(node, def)
}

// finish checks what follows the arguments: end of line, a "|" separator or
// a comment for commands that allow them.
func (p *parser) finish(node *ast.CommandNode, def *ast.Definition) error {
	end := p.pos
	p.skipBlanks()
	node.End = p.at(end)
	if p.atEOL() {
		return nil
	}
	if barEnds(def) {
		switch p.peek() {
		case '|':
			return nil
		case '"':
			if !def.Has(ast.FlagNotRlCom) {
				p.pos = len(p.line)
				return nil
			}
		}
	}
	return p.errorf(p.pos, "E488: Trailing characters: %s", p.rest())
}

// selfDelimited lists argument grammars that find their own end, so a "|" or
// comment after them ends the command even without FlagTrlBar.
var selfDelimited = map[ast.ArgParser]bool{
	ast.ParseExpr:       true,
	ast.ParseOptExpr:    true,
	ast.ParseExprs:      true,
	ast.ParseLet:        true,
	ast.ParseLvals:      true,
	ast.ParseFor:        true,
	ast.ParseFunction:   true,
	ast.ParseCatch:      true,
	ast.ParseSubstitute: true,
	ast.ParseSubRepeat:  true,
	ast.ParseSort:       true,
	ast.ParseMatch:      true,
	ast.ParseSyntax:     true,
	ast.ParseSign:       true,
}

func barEnds(def *ast.Definition) bool {
	return def.Has(ast.FlagTrlBar) || selfDelimited[def.Parser]
}

// bangIsDelimiter reports commands where "!" right after the name starts the
// argument instead of being a bang.
func bangIsDelimiter(t ast.CommandType) bool {
	switch t {
	case ast.CmdSubstitute, ast.CmdSmagic, ast.CmdSnomagic:
		return true
	}
	return false
}

// enter guards one level of nested command parsing.
func (p *parser) enter() error {
	p.depth++
	if p.depth > p.config.maxNesting {
		return fatalf("commands nested deeper than %d", p.config.maxNesting)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// nestedCommand parses the single command at the cursor, as wrapped by a
// modifier or given as "+cmd".
func (p *parser) nestedCommand() (*ast.CommandNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseCommand()
}

// nestedChain parses the rest of the line as a "|" separated chain with its
// own block matching, as run by ":global" or ":autocmd".
func (p *parser) nestedChain() (*ast.CommandNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	c := &chain{}
	m := p.newMatcher(c)
	for {
		node, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if node != nil {
			m.add(node)
		}
		if !p.atBar() {
			break
		}
		p.pos++
	}
	m.finish()
	return c.head, nil
}

func (p *parser) newNode(t ast.CommandType, start int) *ast.CommandNode {
	def := ast.Lookup(t)
	invariant.NotNil(def, "command definition")
	node := &ast.CommandNode{Type: t, Pos: p.at(start)}
	if len(def.Args) > 0 {
		node.Args = make([]ast.Arg, len(def.Args))
		for i, kind := range def.Args {
			node.Args[i] = newSlot(kind)
		}
	}
	return node
}

func newSlot(kind ast.ArgKind) ast.Arg {
	switch kind {
	case ast.ArgError:
		return &ast.ErrorArg{}
	case ast.ArgExpr:
		return &ast.ExprArg{}
	case ast.ArgExprs:
		return &ast.ExprListArg{}
	case ast.ArgLet:
		return &ast.LetArg{}
	case ast.ArgFor:
		return &ast.ForArg{}
	case ast.ArgFunction:
		return &ast.FunctionArg{}
	case ast.ArgRegex:
		return &ast.RegexArg{}
	case ast.ArgReplacement:
		return &ast.ReplacementArg{}
	case ast.ArgSubFlags:
		return &ast.SubFlagsArg{}
	case ast.ArgCommand:
		return &ast.CommandArg{}
	case ast.ArgGlob:
		return &ast.GlobArg{}
	case ast.ArgGlobs:
		return &ast.GlobListArg{}
	case ast.ArgPattern:
		return &ast.PatternArg{}
	case ast.ArgFileOpts:
		return &ast.FileOptsArg{}
	case ast.ArgRedir:
		return &ast.RedirArg{}
	case ast.ArgSetOptions:
		return &ast.SetArg{}
	case ast.ArgHighlight:
		return &ast.HighlightArg{}
	case ast.ArgSyntax:
		return &ast.SyntaxArg{}
	case ast.ArgSign:
		return &ast.SignArg{}
	case ast.ArgUserCommand:
		return &ast.UserCommandArg{}
	case ast.ArgEvents:
		return &ast.EventsArg{}
	case ast.ArgFlags:
		return &ast.FlagsArg{}
	case ast.ArgMapping:
		return &ast.MappingArg{}
	case ast.ArgMenuPath:
		return &ast.MenuPathArg{}
	case ast.ArgNumbers:
		return &ast.NumbersArg{}
	case ast.ArgNumber:
		return &ast.NumberArg{}
	case ast.ArgString:
		return &ast.StringArg{}
	case ast.ArgStrings:
		return &ast.StringsArg{}
	case ast.ArgLines:
		return &ast.LinesArg{}
	case ast.ArgAddress:
		return &ast.AddressArg{}
	case ast.ArgChar:
		return &ast.CharArg{}
	}
	invariant.Invariant(false, "unknown argument kind %d", kind)
	return nil
}

// slot returns argument slot i of n as T.
func slot[T ast.Arg](n *ast.CommandNode, i int) T {
	a, ok := n.Arg(i).(T)
	invariant.Invariant(ok, "slot %d of %s holds %T", i, n.CommandName(), n.Arg(i))
	return a
}

// slotOf returns the first slot of n holding a T.
func slotOf[T ast.Arg](n *ast.CommandNode) (T, bool) {
	for _, a := range n.Args {
		if t, ok := a.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// checkSlots asserts the filled slots still match the definition.
func checkSlots(n *ast.CommandNode, def *ast.Definition) {
	invariant.Postcondition(len(n.Args) == len(def.Args),
		"%s has %d slots, definition lists %d", def.Name, len(n.Args), len(def.Args))
	for i, a := range n.Args {
		invariant.Postcondition(a != nil && a.Kind() == def.Args[i],
			"%s slot %d holds %v, definition lists %v", def.Name, i, a, def.Args[i])
	}
}
