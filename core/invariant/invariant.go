// Package invariant provides contract assertions for the Ex parser.
//
// Violations are programming errors in the parser itself, never user input
// errors: malformed scripts are reported as syntax-error nodes, while a broken
// invariant panics so the bug surfaces at its origin.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
//
// Example:
//
//	func (p *parser) skipTo(col int) {
//	    invariant.Precondition(col >= p.col, "cannot move cursor backwards")
//	    p.col = col
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during function execution.
//
// Example:
//
//	prev := p.col
//	p.parseAddress()
//	invariant.Invariant(p.col >= prev, "address parser moved backwards")
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil or a typed nil pointer.
func NotNil(value any, name string) {
	if value == nil || isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// InRange panics if value is outside [minVal, maxVal].
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// Advanced panics unless a scanning loop made progress.
//
// Example:
//
//	for !p.atEnd() {
//	    start := p.col
//	    p.parseItem()
//	    invariant.Advanced(start, p.col, "glob item")
//	}
func Advanced(before, after int, what string) {
	if after <= before {
		fail("INVARIANT", "%s must consume input (cursor %d -> %d)", what, before, after)
	}
}

func isNilValue(value any) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// fail panics with a formatted message and the violating call site.
func fail(kind, format string, args ...any) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
