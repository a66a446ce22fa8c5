package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/core/invariant"
	"github.com/aledsdavies/exparse/runtime/linesource"
)

// expression runs the expression parser at the cursor. It returns nil when no
// expression is present and required is false.
func (p *parser) expression(required bool) (*ast.Expression, error) {
	p.skipBlanks()
	return p.expressionIn(p.line, required)
}

// expressionIn parses an expression from line, a prefix of the current line,
// so a caller can stop the parser at a known boundary.
func (p *parser) expressionIn(line string, required bool) (*ast.Expression, error) {
	start := p.pos
	node, end, err := p.config.exprParser.ParseExpression(line, start)
	if err != nil {
		return nil, p.exprError(err, start)
	}
	invariant.Postcondition(end <= len(line), "expression end %d past line length %d", end, len(line))
	if end <= start {
		if required {
			return nil, p.errorf(start, "E15: Invalid expression: %q", trimRightBlanks(p.rest()))
		}
		return nil, nil
	}
	p.pos = end
	return &ast.Expression{Text: p.line[start:end], Pos: p.at(start), Node: node}, nil
}

func (p *parser) parseExprArg(node *ast.CommandNode, required bool) error {
	e, err := p.expression(required)
	if err != nil {
		return err
	}
	slot[*ast.ExprArg](node, 0).Expr = e
	return nil
}

// parseExprList reads the blank separated expressions of ":echo" and
// ":execute".
func (p *parser) parseExprList(node *ast.CommandNode) error {
	el := slot[*ast.ExprListArg](node, 0)
	for {
		e, err := p.expression(false)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		el.Exprs = append(el.Exprs, *e)
	}
}

// parseLvals reads the variable list of ":unlet", ":lockvar" and
// ":unlockvar". The lock commands accept a leading depth.
func (p *parser) parseLvals(node *ast.CommandNode) error {
	el := slot[*ast.ExprListArg](node, 0)
	for {
		p.skipBlanks()
		if p.atEOL() || p.atBar() || p.peek() == '"' {
			return nil
		}
		e, err := p.lvalue()
		if err != nil {
			return err
		}
		el.Exprs = append(el.Exprs, *e)
	}
}

// lvalue reads an assignable reference: a name with subscripts, "&opt",
// "$ENV", "@r" or a "[a, b]" list.
func (p *parser) lvalue() (*ast.Expression, error) {
	start := p.pos
	end := scanLvalue(p.line, start)
	if end == start {
		return nil, p.errorf(start, "E475: Invalid argument: %s", trimRightBlanks(p.rest()))
	}
	e, err := p.expressionIn(p.line[:end], true)
	if err != nil {
		return nil, err
	}
	if p.pos != end {
		return nil, p.errorf(p.pos, "E488: Trailing characters: %s", p.line[p.pos:end])
	}
	return e, nil
}

// scanLvalue returns the end of the variable reference starting at i.
func scanLvalue(s string, i int) int {
	start := i
	if i >= len(s) {
		return i
	}
	switch c := s[i]; {
	case c == '[':
		return balanced(s, i)
	case c == '&':
		i++
		if i+1 < len(s) && (s[i] == 'l' || s[i] == 'g') && s[i+1] == ':' {
			i += 2
		}
		for i < len(s) && isWord(s[i]) {
			i++
		}
		return i
	case c == '$':
		i++
		for i < len(s) && isWord(s[i]) {
			i++
		}
		return i
	case c == '@':
		if i+1 < len(s) {
			return i + 2
		}
		return i + 1
	}
	if strings.HasPrefix(s[i:], "<SID>") {
		i += len("<SID>")
	}
	i = scanName(s, i, start)
	if i == start {
		return i
	}
	for i < len(s) {
		switch {
		case s[i] == '[':
			i = balanced(s, i)
		case s[i] == '.' && i+1 < len(s) && isWord(s[i+1]):
			i++
			for i < len(s) && isWord(s[i]) {
				i++
			}
		default:
			return i
		}
	}
	return i
}

// scanName reads name characters, a scope prefix, autoload "#" separators
// and "{expr}" parts.
func scanName(s string, i, start int) int {
	for i < len(s) {
		c := s[i]
		switch {
		case isWord(c) || c == '#':
			i++
		case c == ':' && i > start && i+1 < len(s) && isWord(s[i+1]):
			i++
		case c == '{':
			i = balanced(s, i)
		default:
			return i
		}
	}
	return i
}

// balanced returns the offset after the bracket closing the one at i,
// skipping quoted strings, or len(s) when it is not closed.
func balanced(s string, i int) int {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\'':
			if end := strings.IndexByte(s[i+1:], '\''); end >= 0 {
				i += end + 1
			}
		case '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			i = j
		}
		i++
	}
	return len(s)
}

var letOperators = []string{"..=", "=<<", "+=", "-=", "*=", "/=", "%=", ".=", "="}

// parseLet reads ":let" in all its forms: listing, assignment with an
// operator, list unpacking and heredocs.
func (p *parser) parseLet(node *ast.CommandNode) error {
	la := slot[*ast.LetArg](node, 0)
	p.skipBlanks()
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		return nil
	}
	target, err := p.lvalue()
	if err != nil {
		return err
	}
	la.Target = target
	p.skipBlanks()

	for _, op := range letOperators {
		if !p.hasPrefix(op) {
			continue
		}
		la.Op = op
		p.pos += len(op)
		if op == "=<<" {
			return p.parseHeredoc(node)
		}
		value, err := p.expression(true)
		if err != nil {
			return err
		}
		la.Value = value
		return nil
	}

	// ":let a b c" lists several variables.
	end := p.pos
	for !p.atEOL() && !p.atBar() && p.peek() != '"' {
		if _, err := p.lvalue(); err != nil {
			return err
		}
		end = p.pos
		p.skipBlanks()
	}
	if end > target.Pos.Col+len(target.Text) {
		la.Target = &ast.Expression{
			Text: p.line[target.Pos.Col:end],
			Pos:  target.Pos,
		}
	}
	return nil
}

// parseHeredoc reads "=<< [trim] [eval] MARKER" and the lines up to the
// marker.
func (p *parser) parseHeredoc(node *ast.CommandNode) error {
	lines := slot[*ast.LinesArg](node, 1)
	for {
		p.skipBlanks()
		switch {
		case p.hasPrefix("trim") && !isWord(p.peekAt(4)):
			lines.Trim = true
			p.pos += 4
			continue
		case p.hasPrefix("eval") && !isWord(p.peekAt(4)):
			lines.Eval = true
			p.pos += 4
			continue
		}
		break
	}
	start := p.pos
	if p.atEOL() || p.peek() == '"' {
		return p.errorf(start, "E172: Missing marker")
	}
	marker := p.bigWord()
	if isLower(marker[0]) {
		return p.errorf(start, "E221: Marker cannot start with lower case letter")
	}
	lines.Marker = marker

	indent := ""
	first := true
	for {
		line, ok, err := p.pull(linesource.Raw)
		if err != nil {
			return err
		}
		if !ok {
			return p.errorf(start, "E990: Missing end marker '%s'", marker)
		}
		check := line
		if lines.Trim {
			check = strings.TrimLeft(line, " \t")
		}
		if check == marker {
			return nil
		}
		if lines.Trim {
			if first {
				indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			}
			line = strings.TrimPrefix(line, indent)
		}
		first = false
		lines.Lines = append(lines.Lines, line)
	}
}

// parseFor reads ":for {var} in {list}".
func (p *parser) parseFor(node *ast.CommandNode) error {
	fa := slot[*ast.ForArg](node, 0)
	p.skipBlanks()
	target, err := p.lvalue()
	if err != nil {
		return err
	}
	fa.Target = *target
	p.skipBlanks()
	if !p.hasPrefix("in") || (p.peekAt(2) != 0 && !isBlank(p.peekAt(2))) {
		return p.errorf(p.pos, `E690: Missing "in" after :for`)
	}
	p.pos += 2
	list, err := p.expression(true)
	if err != nil {
		return err
	}
	fa.List = *list
	return nil
}

var functionAttrs = map[string]bool{"range": true, "abort": true, "dict": true, "closure": true}

// parseFunction reads a ":function" header. Without a parameter list it
// only lists the function.
func (p *parser) parseFunction(node *ast.CommandNode) error {
	fa := slot[*ast.FunctionArg](node, 0)
	p.skipBlanks()
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		return nil
	}
	if p.peek() == '/' {
		p.pos++
		re := p.scanPattern('/', p.config.magic)
		if p.peek() == '/' {
			p.pos++
		}
		fa.Pattern = &re
		return nil
	}

	start := p.pos
	end := scanLvalue(p.line, start)
	if end == start {
		return p.errorf(start, "E129: Function name required")
	}
	name := p.line[start:end]
	p.pos = end
	if !validFunctionName(name) {
		return p.errorf(start, "E128: Function name must start with a capital or \"s:\": %s", name)
	}
	fa.Name = name
	p.skipBlanks()
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		return nil
	}
	if p.peek() != '(' {
		return p.errorf(p.pos, "E124: Missing '(': %s", p.rest())
	}
	p.pos++
	fa.Define = true
	if err := p.parseParams(fa); err != nil {
		return err
	}

	for {
		p.skipBlanks()
		if p.atEOL() || p.atBar() || p.peek() == '"' {
			return nil
		}
		attrStart := p.pos
		attr := p.word()
		if !functionAttrs[attr] {
			p.pos = attrStart
			return p.errorf(attrStart, "E475: Invalid argument: %s", p.rest())
		}
		fa.Attrs = append(fa.Attrs, attr)
	}
}

// validFunctionName accepts names with a scope, an autoload "#", a
// dictionary member, a curly brace part or a capital first letter.
func validFunctionName(name string) bool {
	switch {
	case strings.HasPrefix(name, "<SID>"), strings.HasPrefix(name, "s:"),
		strings.HasPrefix(name, "g:"), strings.HasPrefix(name, "b:"),
		strings.HasPrefix(name, "w:"), strings.HasPrefix(name, "t:"),
		strings.HasPrefix(name, "l:"):
		return true
	case strings.ContainsAny(name, "#.{["):
		return true
	}
	return isUpper(name[0])
}

// parseParams reads "a, b = default, ..." up to the closing ")".
func (p *parser) parseParams(fa *ast.FunctionArg) error {
	for {
		p.skipBlanks()
		if p.peek() == ')' {
			p.pos++
			return nil
		}
		if fa.Varargs {
			return p.errorf(p.pos, "E125: Illegal argument: %s", p.rest())
		}
		start := p.pos
		if p.hasPrefix("...") {
			p.pos += 3
			fa.Varargs = true
		} else {
			name := p.word()
			if name == "" || isDigit(name[0]) {
				p.pos = start
				return p.errorf(start, "E125: Illegal argument: %s", p.rest())
			}
			param := ast.Param{Name: name}
			p.skipBlanks()
			if p.peek() == '=' {
				p.pos++
				def, err := p.expression(true)
				if err != nil {
					return err
				}
				param.Default = def
			}
			fa.Params = append(fa.Params, param)
		}
		p.skipBlanks()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
		default:
			if p.atEOL() {
				return p.errorf(p.pos, "E126: Missing :endfunction")
			}
			return p.errorf(p.pos, "E125: Illegal argument: %s", p.rest())
		}
	}
}

// parseCatch reads the optional pattern of ":catch": "/pat/" with any
// non-word delimiter, or bare text.
func (p *parser) parseCatch(node *ast.CommandNode) error {
	ra := slot[*ast.RegexArg](node, 0)
	p.skipBlanks()
	if p.atEOL() || p.atBar() || p.peek() == '"' {
		return nil
	}
	c := p.peek()
	if isAlnum(c) {
		start := p.pos
		for !p.atEOL() && !p.atBar() && !isBlank(p.peek()) {
			p.pos++
		}
		ra.Regex = &ast.Regex{Source: p.line[start:p.pos], Pos: p.at(start)}
		return nil
	}
	p.pos++
	re := p.scanPattern(c, p.config.magic)
	if !p.atDelim(c) {
		return p.errorf(p.pos, "E654: missing delimiter after search pattern: %s", re.Source)
	}
	p.pos++
	ra.Regex, ra.Delim = &re, c
	return nil
}
