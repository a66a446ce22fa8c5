package parser

import (
	"github.com/aledsdavies/exparse/core/ast"
)

// chain is a "|" or line separated list of commands linked through Next.
type chain struct {
	head, tail *ast.CommandNode
}

func (c *chain) push(n *ast.CommandNode) {
	if c.head == nil {
		c.head = n
	} else {
		c.tail.Next = n
	}
	c.tail = n
}

type blockKind uint8

const (
	blockIf blockKind = iota
	blockWhile
	blockFor
	blockTry
	blockFunction
)

// Messages per block kind for a block left open at end of input and for
// nesting past the limit.
var blockMessages = [...]struct {
	missing string
	tooDeep string
}{
	blockIf:       {missing: "E171: Missing :endif", tooDeep: "E579: :if nesting too deep"},
	blockWhile:    {missing: "E170: Missing :endwhile", tooDeep: "E585: :while/:for nesting too deep"},
	blockFor:      {missing: "E170: Missing :endfor", tooDeep: "E585: :while/:for nesting too deep"},
	blockTry:      {missing: "E600: Missing :endtry", tooDeep: "E601: :try nesting too deep"},
	blockFunction: {missing: "E126: Missing :endfunction", tooDeep: "E1058: Function nesting too deep"},
}

// frame is one open block. target receives the commands of the current
// branch: the opener, or the latest :elseif, :else, :catch or :finally.
type frame struct {
	opener     *ast.CommandNode
	kind       blockKind
	target     *ast.CommandNode
	sawElse    bool
	sawFinally bool
}

// matcher attaches commands to the innermost open block, or to its chain
// when no block is open.
type matcher struct {
	p     *parser
	out   *chain
	stack []frame

	// completed is set once a top-level command other than a comment or an
	// error has been attached with no block open.
	done bool
}

func (p *parser) newMatcher(c *chain) *matcher {
	return &matcher{p: p, out: c}
}

func (m *matcher) completed() bool {
	return m.done
}

// attach appends n to the current branch, or to the chain.
func (m *matcher) attach(n *ast.CommandNode) {
	if len(m.stack) == 0 {
		m.out.push(n)
		if n.Type != ast.CmdSyntaxError && n.Type != ast.CmdComment {
			m.done = true
		}
		return
	}
	f := &m.stack[len(m.stack)-1]
	f.target.Children = append(f.target.Children, n)
}

// attachSibling appends a separator or end next to the opener of the top
// frame, so ":if", ":else" and ":endif" end up in the same list.
func (m *matcher) attachSibling(n *ast.CommandNode) {
	if len(m.stack) == 1 {
		m.out.push(n)
		return
	}
	parent := &m.stack[len(m.stack)-2]
	parent.target.Children = append(parent.target.Children, n)
}

func (m *matcher) push(opener *ast.CommandNode, kind blockKind) {
	m.stack = append(m.stack, frame{opener: opener, kind: kind, target: opener})
	m.setDepth(+1)
}

func (m *matcher) pop() {
	m.stack = m.stack[:len(m.stack)-1]
	m.setDepth(-1)
}

func (m *matcher) setDepth(delta int) {
	m.p.blockDepth += delta
	m.p.maxBlockDepth = max(m.p.maxBlockDepth, m.p.blockDepth)
}

// innermost unwraps command modifiers, so "silent if" opens a block.
func innermost(n *ast.CommandNode) *ast.CommandNode {
	for n != nil {
		def := n.Definition()
		if def == nil || !def.IsModifier() {
			return n
		}
		ca, ok := slotOf[*ast.CommandArg](n)
		if !ok || ca.Command == nil {
			return n
		}
		n = ca.Command
	}
	return n
}

func (m *matcher) add(n *ast.CommandNode) {
	inner := innermost(n)
	switch inner.Type {
	case ast.CmdIf:
		m.open(n, inner, blockIf)
	case ast.CmdWhile:
		m.open(n, inner, blockWhile)
	case ast.CmdFor:
		m.open(n, inner, blockFor)
	case ast.CmdTry:
		m.open(n, inner, blockTry)
	case ast.CmdFunction:
		if fa, ok := slotOf[*ast.FunctionArg](inner); ok && fa.Define {
			m.open(n, inner, blockFunction)
			return
		}
		m.attach(n)
	case ast.CmdElseif, ast.CmdElse:
		m.ifBranch(n, inner)
	case ast.CmdEndif:
		m.end(n, blockIf, "E580: :endif without :if")
	case ast.CmdEndwhile:
		m.endLoop(n, blockWhile)
	case ast.CmdEndfor:
		m.endLoop(n, blockFor)
	case ast.CmdCatch, ast.CmdFinally:
		m.tryBranch(n, inner)
	case ast.CmdEndtry:
		m.end(n, blockTry, "E602: :endtry without :try")
	case ast.CmdEndfunction:
		m.end(n, blockFunction, "E193: :endfunction not inside a function")
	default:
		m.attach(n)
	}
}

// open attaches n and makes inner the target of a new frame.
func (m *matcher) open(n, inner *ast.CommandNode, kind blockKind) {
	if m.depthOf(kind) >= m.p.config.maxNesting {
		m.attach(m.errorAt(n, blockMessages[kind].tooDeep))
		return
	}
	m.attach(n)
	m.push(inner, kind)
	// A top-level block counts as one command once its end is seen.
	if len(m.stack) == 1 {
		m.done = false
	}
}

// depthOf counts the open frames that share kind's nesting limit.
func (m *matcher) depthOf(kind blockKind) int {
	n := 0
	for _, f := range m.stack {
		if f.kind == kind || (isLoop(kind) && isLoop(f.kind)) {
			n++
		}
	}
	return n
}

func isLoop(k blockKind) bool {
	return k == blockWhile || k == blockFor
}

// find pops frames until one accepted by ok is on top, reporting every popped
// frame as unterminated. It returns false, popping nothing, when no frame
// qualifies.
func (m *matcher) find(ok func(blockKind) bool) bool {
	i := len(m.stack) - 1
	for i >= 0 && !ok(m.stack[i].kind) {
		i--
	}
	if i < 0 {
		return false
	}
	for len(m.stack)-1 > i {
		m.unterminated()
	}
	return true
}

// unterminated pops the top frame and reports its missing end next to the
// opener.
func (m *matcher) unterminated() {
	f := m.stack[len(m.stack)-1]
	e := m.errorAt(f.opener, blockMessages[f.kind].missing)
	m.attachSibling(e)
	m.pop()
}

func (m *matcher) ifBranch(n, inner *ast.CommandNode) {
	isElse := inner.Type == ast.CmdElse
	if !m.find(func(k blockKind) bool { return k == blockIf }) {
		msg := "E582: :elseif without :if"
		if isElse {
			msg = "E581: :else without :if"
		}
		m.attach(m.errorAt(n, msg))
		return
	}
	f := &m.stack[len(m.stack)-1]
	switch {
	case f.sawElse && isElse:
		m.attach(m.errorAt(n, "E583: Multiple :else"))
		return
	case f.sawElse:
		m.attach(m.errorAt(n, "E584: :elseif after :else"))
		return
	}
	f.sawElse = isElse
	f.target = inner
	m.attachSibling(n)
}

func (m *matcher) tryBranch(n, inner *ast.CommandNode) {
	isFinally := inner.Type == ast.CmdFinally
	if !m.find(func(k blockKind) bool { return k == blockTry }) {
		msg := "E603: :catch without :try"
		if isFinally {
			msg = "E606: :finally without :try"
		}
		m.attach(m.errorAt(n, msg))
		return
	}
	f := &m.stack[len(m.stack)-1]
	switch {
	case f.sawFinally && isFinally:
		m.attach(m.errorAt(n, "E607: multiple :finally"))
		return
	case f.sawFinally:
		m.attach(m.errorAt(n, "E604: :catch after :finally"))
		return
	}
	f.sawFinally = isFinally
	f.target = inner
	m.attachSibling(n)
}

// end closes the innermost frame of kind.
func (m *matcher) end(n *ast.CommandNode, kind blockKind, without string) {
	if !m.find(func(k blockKind) bool { return k == kind }) {
		m.attach(m.errorAt(n, without))
		return
	}
	m.closeTop(n)
}

// endLoop closes a :while or :for. A loop closed by the other loop's end is
// reported and still popped.
func (m *matcher) endLoop(n *ast.CommandNode, kind blockKind) {
	if !m.find(isLoop) {
		msg := "E588: :endwhile without :while"
		if kind == blockFor {
			msg = "E588: :endfor without :for"
		}
		m.attach(m.errorAt(n, msg))
		return
	}
	if top := m.stack[len(m.stack)-1]; top.kind != kind {
		msg := "E733: Using :endwhile with :for"
		if kind == blockFor {
			msg = "E732: Using :endfor with :while"
		}
		m.attachSibling(m.errorAt(n, msg))
		m.pop()
		m.markDone()
		return
	}
	m.closeTop(n)
}

func (m *matcher) closeTop(n *ast.CommandNode) {
	m.attachSibling(n)
	m.pop()
	m.markDone()
}

// markDone records a finished top-level block.
func (m *matcher) markDone() {
	if len(m.stack) == 0 {
		m.done = true
	}
}

// finish reports every block still open, innermost first.
func (m *matcher) finish() {
	for len(m.stack) > 0 {
		m.unterminated()
	}
}

// errorAt builds a SyntaxError node positioned at n.
func (m *matcher) errorAt(n *ast.CommandNode, msg string) *ast.CommandNode {
	line := ""
	if i := n.Pos.Line - 1; i >= 0 && i < len(m.p.lines) {
		line = m.p.lines[i]
	}
	return m.p.errorNode(n.Pos.Line, line, n.Pos.Col, msg)
}
