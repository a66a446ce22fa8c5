package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
	"github.com/aledsdavies/exparse/core/invariant"
	"github.com/aledsdavies/exparse/runtime/linesource"
)

// parsePrelude reads what may sit between the command name and its
// argument: shift repeats, "++opt", "+cmd", a register, a count and print
// flags, in that order.
func (p *parser) parsePrelude(node *ast.CommandNode, def *ast.Definition) error {
	if def.Parser == ast.ParseShift {
		shift := byte('>')
		if def.Type == ast.CmdShiftLeft {
			shift = '<'
		}
		amount := 1
		for p.peek() == shift {
			amount++
			p.pos++
		}
		slot[*ast.NumberArg](node, 0).Value = &amount
		p.skipBlanks()
	}

	if def.Has(ast.FlagArgOpt) {
		if err := p.parseFileOpts(node); err != nil {
			return err
		}
	}

	if def.Has(ast.FlagEditCmd) && p.peek() == '+' && p.peekAt(1) != '+' {
		if err := p.parseEditCmd(node); err != nil {
			return err
		}
	}

	switch {
	case node.Type == ast.CmdAt || node.Type == ast.CmdStar:
		if !p.atEOL() && !p.atBar() {
			node.Register = &ast.Register{Name: p.peek()}
			p.pos++
			p.skipBlanks()
		}
	case def.Has(ast.FlagRegStr) && !p.atArgEnd(def) && !(isDigit(p.peek()) && def.Has(ast.FlagCount)):
		if err := p.parseRegister(node); err != nil {
			return err
		}
	}

	if def.Has(ast.FlagCount) && isDigit(p.peek()) && countInPrelude(def) {
		start := p.pos
		n, ok := p.number()
		if !ok {
			return p.errorf(start, "E488: Trailing characters: %s", p.line[start:])
		}
		if n == 0 {
			return p.errorf(start, "E939: Positive count required")
		}
		node.Count = &n
		p.skipBlanks()
	}

	if def.Has(ast.FlagExFlags) && def.Parser != ast.ParseAddress && node.Type != ast.CmdZ {
		p.parseExFlags(node)
	}
	return nil
}

// countInPrelude excludes grammars that read their own count.
func countInPrelude(def *ast.Definition) bool {
	switch def.Parser {
	case ast.ParseSubstitute, ast.ParseSubRepeat, ast.ParseUser:
		return false
	}
	return true
}

func (p *parser) parseExFlags(node *ast.CommandNode) {
	for {
		switch p.peek() {
		case 'l':
			node.Flags |= ast.ExList
		case '#':
			node.Flags |= ast.ExNumber
		case 'p':
			node.Flags |= ast.ExPrint
		default:
			p.skipBlanks()
			return
		}
		p.pos++
	}
}

var fileOptNames = map[string]string{
	"ff":         "ff",
	"fileformat": "ff",
	"enc":        "enc",
	"encoding":   "enc",
	"bin":        "bin",
	"binary":     "bin",
	"nobin":      "nobin",
	"nobinary":   "nobin",
	"bad":        "bad",
	"edit":       "edit",
	"p":          "p",
}

// fileOptTakesValue lists the "++opt" names that require "=value".
var fileOptTakesValue = map[string]bool{"ff": true, "enc": true, "bad": true}

// parseFileOpts reads "++opt[=value]" arguments.
func (p *parser) parseFileOpts(node *ast.CommandNode) error {
	fo, ok := slotOf[*ast.FileOptsArg](node)
	invariant.Invariant(ok, "%s accepts ++opt without a slot", node.CommandName())
	for p.hasPrefix("++") {
		start := p.pos
		p.pos += 2
		word := p.word()
		name, known := fileOptNames[word]
		if !known {
			return p.errorf(start, "E474: Invalid argument")
		}
		opt := ast.FileOpt{Name: name}
		if p.peek() == '=' {
			p.pos++
			opt.Value = p.bigWord()
		}
		if fileOptTakesValue[name] != (opt.Value != "") {
			return p.errorf(start, "E474: Invalid argument")
		}
		fo.Opts = append(fo.Opts, opt)
		p.skipBlanks()
	}
	return nil
}

// parseEditCmd reads "+cmd" up to an unescaped blank. "+" alone jumps to the
// last line and "+N" or "+/pat" to a line; anything else is a command.
func (p *parser) parseEditCmd(node *ast.CommandNode) error {
	ca, ok := slotOf[*ast.CommandArg](node)
	invariant.Invariant(ok, "%s accepts +cmd without a slot", node.CommandName())
	p.pos++
	start := p.pos
	end := start
	var text strings.Builder
	for end < len(p.line) && !isBlank(p.line[end]) {
		if p.line[end] == '\\' && end+1 < len(p.line) && isBlank(p.line[end+1]) {
			end++
		}
		text.WriteByte(p.line[end])
		end++
	}
	if text.Len() == 0 {
		ca.Command = &ast.CommandNode{
			Type:  ast.CmdGoto,
			Pos:   p.at(start - 1),
			End:   p.at(start),
			Range: ast.Range{{Address: ast.EndAddress{}}},
		}
		p.skipBlanks()
		return nil
	}

	saved := p.line
	p.line = saved[:start] + text.String()
	cmd, err := p.nestedCommand()
	if err == nil && !p.atEOL() {
		err = p.errorf(p.pos, "E488: Trailing characters: %s", p.rest())
	}
	p.line = saved
	if err != nil {
		return err
	}
	ca.Command = cmd
	p.pos = end
	p.skipBlanks()
	return nil
}

// parseRegister reads the register name of ":put", ":delete" and ":yank".
// ":put" may name the expression register, which takes the rest of the
// line as its expression.
func (p *parser) parseRegister(node *ast.CommandNode) error {
	c := p.peek()
	reading := node.Type == ast.CmdPut
	if !validRegister(c, reading) {
		return nil
	}
	p.pos++
	reg := &ast.Register{Name: c}
	if c == '=' {
		e, err := p.expression(true)
		if err != nil {
			return err
		}
		reg.Expr = e
	}
	node.Register = reg
	p.skipBlanks()
	return nil
}

// validRegister reports whether c names a register. Read-only registers are
// only accepted when reading.
func validRegister(c byte, reading bool) bool {
	if isAlnum(c) {
		return true
	}
	switch c {
	case '#', '"', '-', '_', '*', '+':
		return true
	case '/', '.', '%', ':', '=':
		return reading
	}
	return false
}

// parseArgs runs the argument grammar of def.
func (p *parser) parseArgs(node *ast.CommandNode, def *ast.Definition) error {
	switch def.Parser {
	case ast.ParseNone, ast.ParseShift:
		return nil
	case ast.ParseUser:
		slot[*ast.StringArg](node, 0).Value = trimRightBlanks(p.rest())
		p.pos = len(p.line)
		return nil
	case ast.ParseText:
		slot[*ast.StringArg](node, 0).Value = p.argText(def)
		return nil
	case ast.ParseBuffer:
		slot[*ast.StringArg](node, 1).Value = p.argText(def)
		return nil
	case ast.ParseName:
		return p.parseNameArg(node, def)
	case ast.ParseWords:
		slot[*ast.StringsArg](node, 0).Values = p.words(def)
		return nil
	case ast.ParseNumber:
		return p.parseNumberArg(node, def)
	case ast.ParseLines:
		return p.parseLinesArg(node)
	case ast.ParseMark:
		return p.parseMark(node, def)
	case ast.ParseAddress:
		return p.parseAddressArg(node)
	case ast.ParseScript:
		return p.parseScript(node)
	case ast.ParseCommand:
		cmd, err := p.nestedChain()
		if err != nil {
			return err
		}
		slot[*ast.CommandArg](node, 0).Command = cmd
		return nil
	case ast.ParseExpr:
		return p.parseExprArg(node, true)
	case ast.ParseOptExpr:
		return p.parseExprArg(node, false)
	case ast.ParseExprs:
		return p.parseExprList(node)
	case ast.ParseLet:
		return p.parseLet(node)
	case ast.ParseLvals:
		return p.parseLvals(node)
	case ast.ParseFor:
		return p.parseFor(node)
	case ast.ParseFunction:
		return p.parseFunction(node)
	case ast.ParseCatch:
		return p.parseCatch(node)
	case ast.ParseSubstitute:
		return p.parseSubstitute(node)
	case ast.ParseSubRepeat:
		return p.parseSubRepeat(node)
	case ast.ParseGlobal:
		return p.parseGlobal(node)
	case ast.ParseVimgrep:
		return p.parseVimgrep(node, def)
	case ast.ParseSort:
		return p.parseSort(node)
	case ast.ParseMatch:
		return p.parseMatch(node)
	case ast.ParseFiles:
		return p.parseFilesArg(node, def)
	case ast.ParseFile:
		return p.parseFileArg(node, def)
	case ast.ParseWrite:
		return p.parseWrite(node, def)
	case ast.ParseRead:
		return p.parseRead(node, def)
	case ast.ParseSet:
		return p.parseSet(node, def)
	case ast.ParseHighlight:
		return p.parseHighlight(node, def)
	case ast.ParseSyntax:
		return p.parseSyntax(node)
	case ast.ParseSign:
		return p.parseSign(node)
	case ast.ParseUserCommand:
		return p.parseUserCommand(node)
	case ast.ParseAutocmd:
		return p.parseAutocmd(node)
	case ast.ParseDoautocmd:
		return p.parseDoautocmd(node, def)
	case ast.ParseMap:
		return p.parseMap(node, def)
	case ast.ParseMapclear:
		return p.parseMapclear(node, def)
	case ast.ParseMenu:
		return p.parseMenu(node)
	case ast.ParseUnmenu:
		return p.parseUnmenu(node, def)
	case ast.ParseMenutranslate:
		return p.parseMenutranslate(node, def)
	}
	invariant.Invariant(false, "no argument parser for %s", def.Name)
	return nil
}

// argText reads raw text up to the end of the argument. With FlagTrlBar it
// stops at an unescaped "|", and at '"' unless the command keeps comments
// in its argument; the escaping backslash is removed.
func (p *parser) argText(def *ast.Definition) string {
	if !barEnds(def) {
		s := trimRightBlanks(p.rest())
		p.pos = len(p.line)
		return s
	}
	commentEnds := !def.Has(ast.FlagNotRlCom)
	var b strings.Builder
	for !p.atEOL() {
		c := p.peek()
		if c == '|' || (c == '"' && commentEnds) {
			break
		}
		if c == '\\' && (p.peekAt(1) == '|' || (p.peekAt(1) == '"' && commentEnds)) {
			p.pos++
			c = p.peek()
		}
		b.WriteByte(c)
		p.pos++
	}
	return trimRightBlanks(b.String())
}

// words reads blank separated words up to the end of the argument.
func (p *parser) words(def *ast.Definition) []string {
	var out []string
	for {
		p.skipBlanks()
		if p.atArgEnd(def) {
			return out
		}
		start := p.pos
		for !p.atArgEnd(def) && !isBlank(p.peek()) {
			p.pos++
		}
		out = append(out, p.line[start:p.pos])
	}
}

// parseNameArg reads one optional name such as an augroup or a color scheme.
func (p *parser) parseNameArg(node *ast.CommandNode, def *ast.Definition) error {
	start := p.pos
	for !p.atArgEnd(def) && !isBlank(p.peek()) {
		p.pos++
	}
	name := p.line[start:p.pos]
	p.skipBlanks()
	if !p.atArgEnd(def) {
		return p.errorf(p.pos, "E488: Trailing characters: %s", p.rest())
	}
	slot[*ast.StringArg](node, 0).Value = name
	return nil
}

// parseNumberArg reads an optional number (":retab 4", ":center 72").
func (p *parser) parseNumberArg(node *ast.CommandNode, def *ast.Definition) error {
	if p.atArgEnd(def) {
		return nil
	}
	start := p.pos
	n, ok := p.number()
	if !ok {
		return p.errorf(start, "E474: Invalid argument")
	}
	slot[*ast.NumberArg](node, 0).Value = &n
	return nil
}

// parseLinesArg reads the text of ":append", ":insert" and ":change": the
// following lines up to one that is exactly ".".
func (p *parser) parseLinesArg(node *ast.CommandNode) error {
	la := slot[*ast.LinesArg](node, 0)
	la.Marker = "."
	for {
		line, ok, err := p.pull(linesource.Raw)
		if err != nil {
			return err
		}
		if !ok || line == "." {
			return nil
		}
		la.Lines = append(la.Lines, line)
	}
}

// parseMark reads the single mark name of ":mark" and ":k".
func (p *parser) parseMark(node *ast.CommandNode, def *ast.Definition) error {
	if p.atArgEnd(def) {
		return p.errorf(p.pos, "E471: Argument required")
	}
	c := p.peek()
	if !isLetter(c) && c != '\'' && c != '`' {
		return p.errorf(p.pos, "E191: Argument must be a letter or forward/backward quote")
	}
	p.pos++
	if !p.atArgEnd(def) && !isBlank(p.peek()) {
		return p.errorf(p.pos, "E488: Trailing characters: %s", p.rest())
	}
	slot[*ast.CharArg](node, 0).Char = c
	return nil
}

// parseAddressArg reads the destination of ":copy", ":move" and ":t",
// followed by print flags.
func (p *parser) parseAddressArg(node *ast.CommandNode) error {
	p.skipBlanks()
	rng, err := p.parseSingleAddress()
	if err != nil {
		return err
	}
	slot[*ast.AddressArg](node, 0).Range = rng
	p.skipBlanks()
	if node.Definition().Has(ast.FlagExFlags) {
		p.parseExFlags(node)
	}
	return nil
}

// parseScript reads inline code or a "<< [trim] [MARKER]" block for the
// script interface commands.
func (p *parser) parseScript(node *ast.CommandNode) error {
	if !p.hasPrefix("<<") {
		slot[*ast.StringArg](node, 0).Value = trimRightBlanks(p.rest())
		p.pos = len(p.line)
		return nil
	}
	p.pos += 2
	p.skipBlanks()
	la := slot[*ast.LinesArg](node, 1)
	if p.hasPrefix("trim") && (p.peekAt(4) == 0 || isBlank(p.peekAt(4))) {
		la.Trim = true
		p.pos += 4
		p.skipBlanks()
	}
	la.Marker = "."
	if !p.atEOL() {
		la.Marker = trimRightBlanks(p.rest())
		p.pos = len(p.line)
	}
	for {
		line, ok, err := p.pull(linesource.Raw)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		check := line
		if la.Trim {
			check = strings.TrimLeft(line, " \t")
		}
		if check == la.Marker {
			return nil
		}
		la.Lines = append(la.Lines, line)
	}
}
