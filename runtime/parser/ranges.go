package parser

import (
	"github.com/aledsdavies/exparse/core/ast"
)

// parseRange parses the addresses in front of a command. The result has one
// entry per address, so a range with n "," or ";" separators has n+1
// entries; "%" and "*" each expand to two.
func (p *parser) parseRange() (ast.Range, error) {
	var rng ast.Range
	p.skipBlanks()
	switch {
	case p.peek() == '%':
		p.pos++
		rng = ast.Range{
			{Address: ast.FixedAddress{Line: 1}},
			{Address: ast.EndAddress{}},
		}
		return p.continueRange(rng)
	case p.peek() == '*' && p.config.starRange:
		p.pos++
		rng = ast.Range{
			{Address: ast.MarkAddress{Mark: '<'}},
			{Address: ast.MarkAddress{Mark: '>'}},
		}
		return p.continueRange(rng)
	}
	return p.continueRange(nil)
}

// continueRange reads addresses until no separator follows. rng holds the
// entries parsed so far; a non-empty rng means a separator may follow.
func (p *parser) continueRange(rng ast.Range) (ast.Range, error) {
	if len(rng) > 0 {
		p.skipBlanks()
		if !p.separator(rng) {
			return rng, nil
		}
	}
	for {
		p.skipBlanks()
		addr, present, err := p.parseAddress()
		if err != nil {
			return nil, err
		}
		p.skipBlanks()
		sepFollows := p.peek() == ',' || p.peek() == ';'
		if !present && !sepFollows && len(rng) == 0 {
			return nil, nil
		}
		rng = append(rng, ast.RangeEntry{Address: addr})
		if !p.separator(rng) {
			return rng, nil
		}
	}
}

// separator consumes a "," or ";" after the last entry of rng. A ";" makes
// that entry the current line for the addresses after it.
func (p *parser) separator(rng ast.Range) bool {
	switch p.peek() {
	case ';':
		rng[len(rng)-1].SetPos = true
	case ',':
	default:
		return false
	}
	p.pos++
	return true
}

// parseAddress reads one address and its followups. present is false when
// neither a base address nor a followup was found.
func (p *parser) parseAddress() (ast.Address, bool, error) {
	start := p.pos
	var base ast.Address
	switch c := p.peek(); {
	case c == '.':
		p.pos++
		base = ast.CurrentAddress{}
	case c == '$':
		p.pos++
		base = ast.EndAddress{}
	case c == '\'':
		p.pos++
		m := p.peek()
		if !isMarkChar(m) {
			return nil, false, p.errorf(start, "E78: Unknown mark")
		}
		p.pos++
		base = ast.MarkAddress{Mark: m}
	case c == '/' || c == '?':
		p.pos++
		re := p.scanPattern(c, p.config.magic)
		p.skipDelim(c)
		base = ast.SearchAddress{Backward: c == '?', Regex: re}
	case c == '\\':
		p.pos++
		var kind ast.PrevSearchKind
		switch p.peek() {
		case '/':
			kind = ast.PrevSearchForward
		case '?':
			kind = ast.PrevSearchBackward
		case '&':
			kind = ast.PrevSearchSubstitute
		default:
			return nil, false, p.errorf(start, `E10: \ should be followed by /, ? or &`)
		}
		p.pos++
		base = ast.PrevSearchAddress{Kind: kind}
	case isDigit(c):
		n, ok := p.number()
		if !ok {
			return nil, false, p.errorf(start, "E16: Invalid range")
		}
		base = ast.FixedAddress{Line: n}
	}

	chain, err := p.followups(base != nil)
	if err != nil {
		return nil, false, err
	}
	if base == nil {
		if chain == nil {
			return ast.MissingAddress{}, false, nil
		}
		return ast.MissingAddress{Chain: chain}, true, nil
	}
	return withChain(base, chain), true, nil
}

// followups reads "+N", "-N", a bare number after blanks, "/re/" and "?re?"
// adjustments. Patterns only follow directly after an address.
func (p *parser) followups(hasBase bool) (ast.Chain, error) {
	var chain ast.Chain
	for {
		save := p.pos
		c := p.peek()
		if (c == '/' || c == '?') && (hasBase || len(chain) > 0) {
			p.pos++
			re := p.scanPattern(c, p.config.magic)
			p.skipDelim(c)
			chain = append(chain, ast.PatternFollowup{Backward: c == '?', Regex: re})
			continue
		}
		p.skipBlanks()
		c = p.peek()
		switch {
		case c == '+' || c == '-':
			p.pos++
			amount := 1
			if isDigit(p.peek()) {
				n, ok := p.number()
				if !ok {
					return nil, p.errorf(save, "E16: Invalid range")
				}
				amount = n
			}
			if c == '-' {
				amount = -amount
			}
			chain = append(chain, ast.ShiftFollowup{Amount: amount})
		case isDigit(c) && (hasBase || len(chain) > 0):
			n, ok := p.number()
			if !ok {
				return nil, p.errorf(save, "E16: Invalid range")
			}
			chain = append(chain, ast.ShiftFollowup{Amount: n})
		default:
			p.pos = save
			return chain, nil
		}
	}
}

func withChain(a ast.Address, chain ast.Chain) ast.Address {
	switch a := a.(type) {
	case ast.FixedAddress:
		a.Chain = chain
		return a
	case ast.CurrentAddress:
		a.Chain = chain
		return a
	case ast.EndAddress:
		a.Chain = chain
		return a
	case ast.MarkAddress:
		a.Chain = chain
		return a
	case ast.SearchAddress:
		a.Chain = chain
		return a
	case ast.PrevSearchAddress:
		a.Chain = chain
		return a
	}
	return a
}

// isMarkChar reports the characters that can follow "'" in an address.
func isMarkChar(c byte) bool {
	if isAlnum(c) {
		return true
	}
	switch c {
	case '\'', '`', '"', '^', '.', '<', '>', '[', ']':
		return true
	}
	return false
}

// parseSingleAddress reads the destination of ":copy" and ":move".
func (p *parser) parseSingleAddress() (ast.Range, error) {
	start := p.pos
	if p.peek() == '%' {
		return nil, p.errorf(start, "E14: Invalid address")
	}
	addr, present, err := p.parseAddress()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, p.errorf(start, "E14: Invalid address")
	}
	return ast.Range{{Address: addr}}, nil
}
