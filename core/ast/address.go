package ast

import (
	"strconv"
	"strings"
)

// Range is the ordered list of addresses in front of a command.
// An empty Range means no range was given.
type Range []RangeEntry

// RangeEntry is one address of a range. SetPos is true when the address was
// followed by a ';' separator: later addresses of the same range are then
// evaluated relative to this one instead of the cursor line.
type RangeEntry struct {
	Address Address
	SetPos  bool
}

func (r Range) String() string {
	var b strings.Builder
	for i, e := range r {
		b.WriteString(e.Address.String())
		if i < len(r)-1 {
			if e.SetPos {
				b.WriteByte(';')
			} else {
				b.WriteByte(',')
			}
		}
	}
	return b.String()
}

// Address is one line specifier. Concrete types: MissingAddress, FixedAddress,
// CurrentAddress, EndAddress, MarkAddress, SearchAddress, PrevSearchAddress.
type Address interface {
	String() string
	Followups() []Followup
	address()
}

// Followup adjusts an address: ShiftFollowup or PatternFollowup.
type Followup interface {
	String() string
	followup()
}

// ShiftFollowup is "+N" or "-N". A bare "+" or "-" is a shift of one.
type ShiftFollowup struct {
	Amount int
}

// PatternFollowup is "/re/" (Backward=false) or "?re?" applied after an address.
type PatternFollowup struct {
	Backward bool
	Regex    Regex
}

func (ShiftFollowup) followup()   {}
func (PatternFollowup) followup() {}

func (f ShiftFollowup) String() string {
	if f.Amount >= 0 {
		return "+" + strconv.Itoa(f.Amount)
	}
	return strconv.Itoa(f.Amount)
}

func (f PatternFollowup) String() string {
	if f.Backward {
		return "?" + f.Regex.Source + "?"
	}
	return "/" + f.Regex.Source + "/"
}

// Chain carries the followups shared by every address type.
type Chain []Followup

// Followups returns the chain in application order.
func (c Chain) Followups() []Followup { return c }

func (c Chain) suffix() string {
	var b strings.Builder
	for _, f := range c {
		b.WriteString(f.String())
	}
	return b.String()
}

// MissingAddress stands for an omitted address, as in ",5" or a bare "+3".
type MissingAddress struct{ Chain }

// FixedAddress is a line number.
type FixedAddress struct {
	Line int
	Chain
}

// CurrentAddress is ".".
type CurrentAddress struct{ Chain }

// EndAddress is "$".
type EndAddress struct{ Chain }

// MarkAddress is "'x".
type MarkAddress struct {
	Mark byte
	Chain
}

// SearchAddress is "/re/" or, with Backward set, "?re?".
type SearchAddress struct {
	Backward bool
	Regex    Regex
	Chain
}

// PrevSearchKind tells which previously used pattern an address reuses.
type PrevSearchKind uint8

const (
	PrevSearchForward    PrevSearchKind = iota // \/
	PrevSearchBackward                         // \?
	PrevSearchSubstitute                       // \&
)

// PrevSearchAddress is one of "\/", "\?" or "\&".
type PrevSearchAddress struct {
	Kind PrevSearchKind
	Chain
}

func (MissingAddress) address()    {}
func (FixedAddress) address()      {}
func (CurrentAddress) address()    {}
func (EndAddress) address()        {}
func (MarkAddress) address()       {}
func (SearchAddress) address()     {}
func (PrevSearchAddress) address() {}

func (a MissingAddress) String() string { return a.suffix() }
func (a FixedAddress) String() string   { return strconv.Itoa(a.Line) + a.suffix() }
func (a CurrentAddress) String() string { return "." + a.suffix() }
func (a EndAddress) String() string     { return "$" + a.suffix() }
func (a MarkAddress) String() string    { return "'" + string(a.Mark) + a.suffix() }

func (a SearchAddress) String() string {
	if a.Backward {
		return "?" + a.Regex.Source + "?" + a.suffix()
	}
	return "/" + a.Regex.Source + "/" + a.suffix()
}

func (a PrevSearchAddress) String() string {
	var s string
	switch a.Kind {
	case PrevSearchForward:
		s = `\/`
	case PrevSearchBackward:
		s = `\?`
	default:
		s = `\&`
	}
	return s + a.suffix()
}

// Regex is a search pattern kept as source text. Compiling it is left to the
// consumer of the tree.
type Regex struct {
	Source string
	Pos    Position
}

func (r Regex) String() string { return r.Source }
