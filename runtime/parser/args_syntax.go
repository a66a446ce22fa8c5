package parser

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

// synSettingValues lists the single-value sub-commands and the values they
// accept; a nil list accepts any value. Without a value they show the
// current setting.
var synSettingValues = map[string][]string{
	"on":        {},
	"off":       {},
	"enable":    {},
	"reset":     {},
	"manual":    {},
	"case":      {"match", "ignore"},
	"spell":     {"toplevel", "notoplevel", "default"},
	"conceal":   {"on", "off"},
	"iskeyword": nil,
	"foldlevel": {"start", "minimum"},
}

// synEnd reports the end of a :syntax argument: end of line or "|".
func (p *parser) synEnd() bool {
	return p.atEOL() || p.atBar()
}

// synWord reads up to a blank or the end of the argument.
func (p *parser) synWord() string {
	start := p.pos
	for !p.synEnd() && !isBlank(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos]
}

// parseSyntax reads a ":syntax" sub-command.
func (p *parser) parseSyntax(node *ast.CommandNode) error {
	sa := slot[*ast.SyntaxArg](node, 0)
	p.skipBlanks()
	if p.synEnd() {
		return nil
	}
	start := p.pos
	sub := p.synWord()
	p.skipBlanks()

	if allowed, ok := synSettingValues[sub]; ok {
		setting := &ast.SynSetting{Name: sub}
		if !p.synEnd() {
			valStart := p.pos
			setting.Value = trimRightBlanks(p.synRest())
			if allowed != nil && !contains(allowed, setting.Value) {
				return p.errorf(valStart, "E390: Illegal argument: %s", setting.Value)
			}
		}
		sa.Command = setting
		return nil
	}

	var (
		cmd ast.SyntaxCommand
		err error
	)
	switch sub {
	case "list", "clear":
		g := &ast.SynGroups{Action: sub}
		for p.skipBlanks(); !p.synEnd(); p.skipBlanks() {
			g.Groups = append(g.Groups, p.synWord())
		}
		cmd = g
	case "keyword":
		cmd, err = p.synKeyword()
	case "match":
		cmd, err = p.synMatch()
	case "region":
		cmd, err = p.synRegion()
	case "cluster":
		cmd, err = p.synCluster()
	case "sync":
		cmd, err = p.synSync()
	case "include":
		cmd, err = p.synInclude()
	default:
		return p.errorf(start, "E410: Invalid :syntax subcommand: %s", sub)
	}
	if err != nil {
		return err
	}
	sa.Command = cmd
	return nil
}

// synRest consumes the rest of the argument.
func (p *parser) synRest() string {
	start := p.pos
	for !p.synEnd() {
		p.pos++
	}
	return p.line[start:p.pos]
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// synGroupName reads the group name that follows a sub-command.
func (p *parser) synGroupName(sub string) (string, error) {
	p.skipBlanks()
	if p.synEnd() {
		return "", p.errorf(p.pos, "E399: Not enough arguments: syntax %s", sub)
	}
	return p.synWord(), nil
}

// synFlag sets the boolean option name and reports whether it exists.
func synFlag(o *ast.SynOptions, name string) bool {
	fields := map[string]*bool{
		"contained": &o.Contained, "oneline": &o.Oneline, "fold": &o.Fold,
		"display": &o.Display, "extend": &o.Extend, "concealends": &o.Concealends,
		"conceal": &o.Conceal, "transparent": &o.Transparent, "skipwhite": &o.SkipWhite,
		"skipnl": &o.SkipNL, "skipempty": &o.SkipEmpty, "keepend": &o.KeepEnd,
		"excludenl": &o.ExcludeNL,
	}
	f, ok := fields[name]
	if ok {
		*f = true
	}
	return ok
}

// synOption reads one option at the cursor if there is one. It reports
// false, consuming nothing, for anything else.
func (p *parser) synOption(o *ast.SynOptions) (bool, error) {
	start := p.pos
	word := p.synWord()
	key, value, hasValue := strings.Cut(word, "=")
	if !hasValue {
		if synFlag(o, word) {
			return true, nil
		}
		p.pos = start
		return false, nil
	}
	switch key {
	case "cchar":
		o.Cchar = value
	case "contains":
		o.Contains = groupList(value)
	case "containedin":
		o.ContainedIn = groupList(value)
	case "nextgroup":
		o.NextGroup = groupList(value)
	default:
		p.pos = start
		return false, nil
	}
	if value == "" {
		return false, p.errorf(start, "E406: Empty argument: %s", key)
	}
	return true, nil
}

// groupList parses "ALL", "ALLBUT,a,b", "TOP,...", "CONTAINED,..." or a
// plain comma separated list.
func groupList(s string) *ast.GroupList {
	parts := strings.Split(s, ",")
	g := &ast.GroupList{}
	switch parts[0] {
	case "ALL":
		g.Kind = ast.GroupsAll
	case "ALLBUT":
		g.Kind = ast.GroupsAllBut
	case "TOP":
		g.Kind = ast.GroupsTop
	case "CONTAINED":
		g.Kind = ast.GroupsContained
	default:
		g.Groups = parts
		return g
	}
	if len(parts) > 1 {
		g.Groups = parts[1:]
	}
	return g
}

// synOptions reads options until something else follows.
func (p *parser) synOptions(o *ast.SynOptions) error {
	for {
		p.skipBlanks()
		if p.synEnd() {
			return nil
		}
		ok, err := p.synOption(o)
		if err != nil || !ok {
			return err
		}
	}
}

func (p *parser) synKeyword() (ast.SyntaxCommand, error) {
	group, err := p.synGroupName("keyword")
	if err != nil {
		return nil, err
	}
	kw := &ast.SynKeyword{Group: group}
	for {
		if err := p.synOptions(&kw.Options); err != nil {
			return nil, err
		}
		if p.synEnd() {
			break
		}
		kw.Keywords = append(kw.Keywords, p.synWord())
	}
	if len(kw.Keywords) == 0 {
		return nil, p.errorf(p.pos, "E399: Not enough arguments: syntax keyword %s", group)
	}
	return kw, nil
}

func (p *parser) synMatch() (ast.SyntaxCommand, error) {
	group, err := p.synGroupName("match")
	if err != nil {
		return nil, err
	}
	m := &ast.SynMatch{Group: group}
	if err := p.synOptions(&m.Options); err != nil {
		return nil, err
	}
	if p.synEnd() {
		return nil, p.errorf(p.pos, "E399: Not enough arguments: syntax match %s", group)
	}
	pat, err := p.synPattern(ast.SynPatMatch)
	if err != nil {
		return nil, err
	}
	m.Pattern = pat
	if err := p.synOptions(&m.Options); err != nil {
		return nil, err
	}
	if !p.synEnd() {
		return nil, p.errorf(p.pos, "E390: Illegal argument: %s", p.synWord())
	}
	return m, nil
}

func (p *parser) synRegion() (ast.SyntaxCommand, error) {
	group, err := p.synGroupName("region")
	if err != nil {
		return nil, err
	}
	r := &ast.SynRegion{Group: group}
	matchGroup := ""
	haveStart, haveEnd := false, false
	for {
		if err := p.synOptions(&r.Options); err != nil {
			return nil, err
		}
		if p.synEnd() {
			break
		}
		start := p.pos
		switch {
		case p.hasPrefix("matchgroup="):
			p.pos += len("matchgroup=")
			matchGroup = p.synWord()
			if matchGroup == "NONE" {
				matchGroup = ""
			}
			continue
		case p.hasPrefix("start="):
			p.pos += len("start=")
			haveStart = true
			if err := p.addRegionPattern(r, ast.SynPatStart, matchGroup); err != nil {
				return nil, err
			}
		case p.hasPrefix("skip="):
			p.pos += len("skip=")
			if err := p.addRegionPattern(r, ast.SynPatSkip, ""); err != nil {
				return nil, err
			}
		case p.hasPrefix("end="):
			p.pos += len("end=")
			haveEnd = true
			if err := p.addRegionPattern(r, ast.SynPatEnd, matchGroup); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(start, "E390: Illegal argument: %s", p.synWord())
		}
	}
	if !haveStart || !haveEnd {
		return nil, p.errorf(p.pos, "E399: Not enough arguments: syntax region %s", group)
	}
	return r, nil
}

func (p *parser) addRegionPattern(r *ast.SynRegion, kind ast.SynPatternKind, matchGroup string) error {
	pat, err := p.synPattern(kind)
	if err != nil {
		return err
	}
	pat.MatchGroup = matchGroup
	r.Patterns = append(r.Patterns, pat)
	return nil
}

// synPattern reads a delimited pattern and its offsets. Syntax patterns
// always use 'magic'.
func (p *parser) synPattern(kind ast.SynPatternKind) (ast.SynPattern, error) {
	start := p.pos
	delim := p.peek()
	if delim == 0 || isWord(delim) || isBlank(delim) {
		return ast.SynPattern{}, p.errorf(start, "E401: Pattern delimiter not found: %s", p.itemText(start))
	}
	p.pos++
	re := p.scanPattern(delim, true)
	if !p.atDelim(delim) {
		return ast.SynPattern{}, p.errorf(start, "E401: Pattern delimiter not found: %s", p.line[start:])
	}
	p.pos++
	pat := ast.SynPattern{Kind: kind, Delim: delim, Regex: re}
	for !p.synEnd() && !isBlank(p.peek()) {
		off, err := p.synOffset()
		if err != nil {
			return pat, err
		}
		pat.Offsets = append(pat.Offsets, off)
		if p.peek() == ',' {
			p.pos++
		}
	}
	return pat, nil
}

var synOffsetNames = map[string]bool{"ms": true, "me": true, "hs": true, "he": true, "rs": true, "re": true, "lc": true}

// synOffset reads "ms=s+1", "he=e-2" or "lc=3".
func (p *parser) synOffset() (ast.SynOffset, error) {
	start := p.pos
	name := p.line[p.pos:min(p.pos+2, len(p.line))]
	if !synOffsetNames[name] || p.peekAt(2) != '=' {
		return ast.SynOffset{}, p.errorf(start, "E402: Garbage after pattern: %s", p.itemText(start))
	}
	p.pos += 3
	off := ast.SynOffset{Name: name}
	if name != "lc" {
		base := p.peek()
		if base != 's' && base != 'e' && base != 'b' {
			return off, p.errorf(start, "E402: Garbage after pattern: %s", p.itemText(start))
		}
		off.Base = base
		p.pos++
	}
	sign := 1
	switch p.peek() {
	case '+':
		p.pos++
	case '-':
		sign = -1
		p.pos++
	}
	if isDigit(p.peek()) {
		n, _ := p.number()
		off.Delta = sign * n
	} else if name == "lc" {
		return off, p.errorf(start, "E402: Garbage after pattern: %s", p.itemText(start))
	}
	return off, nil
}

func (p *parser) synCluster() (ast.SyntaxCommand, error) {
	name, err := p.synGroupName("cluster")
	if err != nil {
		return nil, err
	}
	c := &ast.SynCluster{Name: name}
	for p.skipBlanks(); !p.synEnd(); p.skipBlanks() {
		start := p.pos
		key, value, ok := strings.Cut(p.synWord(), "=")
		if !ok {
			return nil, p.errorf(start, "E400: No cluster specified")
		}
		switch key {
		case "contains":
			c.Contains = groupList(value)
		case "add":
			c.Add = groupList(value)
		case "remove":
			c.Remove = groupList(value)
		default:
			return nil, p.errorf(start, "E400: No cluster specified")
		}
	}
	return c, nil
}

// synSync reads ":syntax sync" items.
func (p *parser) synSync() (ast.SyntaxCommand, error) {
	s := &ast.SynSync{}
	for p.skipBlanks(); !p.synEnd(); p.skipBlanks() {
		start := p.pos
		word := p.synWord()
		key, value, hasValue := strings.Cut(word, "=")
		item := ast.SynSyncItem{Key: key, Value: value}
		switch {
		case hasValue:
			switch key {
			case "lines", "minlines", "maxlines", "linebreaks":
				if _, err := strconv.Atoi(value); err != nil {
					return nil, p.errorf(start, "E404: Illegal arguments: %s", word)
				}
			default:
				return nil, p.errorf(start, "E404: Illegal arguments: %s", word)
			}
		case key == "ccomment" || key == "clear":
			p.skipBlanks()
			if !p.synEnd() {
				item.Group = p.synWord()
			}
		case key == "fromstart":
		case key == "linecont":
			p.skipBlanks()
			pat, err := p.synPattern(ast.SynPatMatch)
			if err != nil {
				return nil, err
			}
			item.Regex = &pat.Regex
		case key == "match" || key == "region":
			p.skipBlanks()
			group, err := p.synGroupName("sync " + key)
			if err != nil {
				return nil, err
			}
			item.Group = group
			p.skipBlanks()
			for p.hasPrefix("grouphere") || p.hasPrefix("groupthere") {
				p.synWord()
				p.skipBlanks()
				p.synWord()
				p.skipBlanks()
			}
			if !p.synEnd() {
				pat, err := p.synPattern(ast.SynPatMatch)
				if err != nil {
					return nil, err
				}
				item.Regex = &pat.Regex
			}
		default:
			return nil, p.errorf(start, "E404: Illegal arguments: %s", word)
		}
		s.Items = append(s.Items, item)
	}
	return s, nil
}

func (p *parser) synInclude() (ast.SyntaxCommand, error) {
	inc := &ast.SynInclude{}
	p.skipBlanks()
	if p.peek() == '@' {
		p.pos++
		inc.Cluster = p.synWord()
		p.skipBlanks()
	}
	if p.synEnd() {
		return nil, p.errorf(p.pos, "E399: Not enough arguments: syntax include")
	}
	g := &globScan{p: p, mode: globFile, stop: func(c byte) bool { return isBlank(c) || c == '|' }}
	file, err := g.pattern()
	if err != nil {
		return nil, err
	}
	inc.File = file
	return inc, nil
}
