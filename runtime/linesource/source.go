// Package linesource supplies input lines to the parser.
//
// A Source hands out one logical line per call. Sources built by this package
// join Vim continuation lines: a line whose first non-blank character is a
// backslash is appended to the previous line, and a line starting with
// `"\ ` is a comment inside such a continuation and is dropped.
package linesource

import (
	"bufio"
	"io"
	"strings"
)

// Continuation characters passed to NextLine.
const (
	// Raw asks for the next physical line without continuation joining.
	// Heredoc and :append bodies are read this way.
	Raw byte = 0
	// Command asks for the next command line.
	Command byte = ':'
)

// Source is the parser's line supplier. It returns false at end of input;
// a source that fails reports that as end of input too.
//
// cont is Command or Raw; depth is the current block nesting depth, which an
// interactive source can use to indent its prompt.
type Source interface {
	NextLine(cont byte, depth int) (string, bool)
}

// Func adapts an ordinary function to the Source interface.
type Func func(cont byte, depth int) (string, bool)

// NextLine calls f.
func (f Func) NextLine(cont byte, depth int) (string, bool) {
	return f(cont, depth)
}

// Lines serves lines from memory.
type Lines struct {
	lines []string
	next  int
}

// FromLines returns a Source over lines.
func FromLines(lines []string) *Lines {
	return &Lines{lines: lines}
}

// FromString splits text on newlines. A trailing newline does not produce
// an extra empty line, and "\r\n" endings are accepted.
func FromString(text string) *Lines {
	if text == "" {
		return FromLines(nil)
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return FromLines(lines)
}

// NextLine implements Source.
func (s *Lines) NextLine(cont byte, _ int) (string, bool) {
	if s.next >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.next]
	s.next++
	if cont == Raw {
		return line, true
	}
	for s.next < len(s.lines) {
		rest, kind := continuation(s.lines[s.next])
		if kind == notContinued {
			break
		}
		s.next++
		if kind == joined {
			line += rest
		}
	}
	return line, true
}

// Reader serves lines read from an io.Reader.
type Reader struct {
	sc      *bufio.Scanner
	pending *string
	err     error
}

// FromReader returns a Source reading lines from r.
func FromReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

// Err returns the first read error, if any. A failed read ends the input.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) physical() (string, bool) {
	if r.pending != nil {
		line := *r.pending
		r.pending = nil
		return line, true
	}
	if !r.sc.Scan() {
		r.err = r.sc.Err()
		return "", false
	}
	return strings.TrimSuffix(r.sc.Text(), "\r"), true
}

// NextLine implements Source.
func (r *Reader) NextLine(cont byte, _ int) (string, bool) {
	line, ok := r.physical()
	if !ok || cont == Raw {
		return line, ok
	}
	for {
		next, ok := r.physical()
		if !ok {
			return line, true
		}
		rest, kind := continuation(next)
		switch kind {
		case notContinued:
			r.pending = &next
			return line, true
		case joined:
			line += rest
		}
	}
}

type contKind uint8

const (
	notContinued contKind = iota
	joined
	comment
)

func continuation(line string) (string, contKind) {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, `\`):
		return trimmed[1:], joined
	case strings.HasPrefix(trimmed, `"\ `):
		return "", comment
	}
	return "", notContinued
}
