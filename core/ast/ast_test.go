package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFind(t *testing.T) {
	tests := []struct {
		word string
		want CommandType
		ok   bool
	}{
		{"s", CmdSubstitute, true},
		{"substitute", CmdSubstitute, true},
		{"se", CmdSet, true},
		{"set", CmdSet, true},
		{"fu", CmdFunction, true},
		{"endf", CmdEndfunction, true},
		{"au", CmdAutocmd, true},
		{"python3", CmdPython3, true},
		{"tc", CmdTcd, true},
		{"sa", CmdSargument, true},
		{"sav", CmdSaveas, true},
		{"substitutex", CmdNone, false},
		{"zzz", CmdNone, false},
		{"", CmdNone, false},
		{"é", CmdNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := Find(tt.word)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Find(%q) = %v, %v; want %v, %v", tt.word, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			t.Errorf("Names() lists %q twice", name)
		}
		seen[name] = true
		if got, ok := FindExact(name); !ok || got.String() != name {
			t.Errorf("FindExact(%q) = %v, %v", name, got, ok)
		}
	}
	for _, name := range []string{"substitute", "highlight", "endfunction"} {
		if !seen[name] {
			t.Errorf("Names() is missing %q", name)
		}
	}
	if seen["&"] || seen["!"] {
		t.Error("Names() lists symbol commands")
	}
}

func TestEditCmdHasCommandSlot(t *testing.T) {
	for i := range definitions {
		d := &definitions[i]
		if !d.Has(FlagEditCmd) {
			continue
		}
		found := false
		for _, k := range d.Args {
			if k == ArgCommand {
				found = true
			}
		}
		if !found {
			t.Errorf("%s accepts +cmd but has no command slot: %v", d.Name, d.Args)
		}
	}
}

func TestFindSymbol(t *testing.T) {
	tests := []struct {
		c    byte
		want CommandType
		ok   bool
	}{
		{'&', CmdAnd, true},
		{'!', CmdBang, true},
		{'#', CmdNumber, true},
		{'x', CmdNone, false},
	}
	for _, tt := range tests {
		got, ok := FindSymbol(tt.c)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FindSymbol(%q) = %v, %v; want %v, %v", tt.c, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefinitions(t *testing.T) {
	if Lookup(CmdNone) != nil {
		t.Error("Lookup(CmdNone) should be nil")
	}
	if got := CmdNone.String(); got != "none" {
		t.Errorf("CmdNone.String() = %q, want none", got)
	}
	d := Lookup(CmdSubstitute)
	if d.Name != "substitute" || d.MinLen != 1 {
		t.Errorf("substitute definition = %q/%d, want substitute/1", d.Name, d.MinLen)
	}
	if diff := cmp.Diff([]ArgKind{ArgRegex, ArgReplacement, ArgSubFlags}, d.Args); diff != "" {
		t.Errorf("substitute slots mismatch (-want +got):\n%s", diff)
	}
	for _, m := range CommandModifiers() {
		if !m.IsModifier() || !m.Has(FlagModifier) {
			t.Errorf("%s listed as a modifier without the flag", m.Name)
		}
	}
	if t2, ok := FindExact("delete"); !ok || t2 != CmdDelete {
		t.Errorf("FindExact(delete) = %v, %v", t2, ok)
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		name string
		rng  Range
		want string
	}{
		{"empty", nil, ""},
		{"whole file", Range{{Address: FixedAddress{Line: 1}}, {Address: EndAddress{}}}, "1,$"},
		{
			name: "set position",
			rng: Range{
				{Address: FixedAddress{Line: 1}, SetPos: true},
				{Address: SearchAddress{Regex: Regex{Source: "x"}}},
			},
			want: "1;/x/",
		},
		{
			name: "followups",
			rng: Range{{Address: CurrentAddress{Chain: Chain{
				ShiftFollowup{Amount: 2},
				PatternFollowup{Backward: true, Regex: Regex{Source: "b"}},
				ShiftFollowup{Amount: -1},
			}}}},
			want: ".+2?b?-1",
		},
		{"mark", Range{{Address: MarkAddress{Mark: '<'}}, {Address: MarkAddress{Mark: '>'}}}, "'<,'>"},
		{"previous search", Range{{Address: PrevSearchAddress{Kind: PrevSearchSubstitute}}}, `\&`},
		{"missing with shift", Range{{Address: MissingAddress{Chain: Chain{ShiftFollowup{Amount: 3}}}}}, "+3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.rng.String()); diff != "" {
				t.Errorf("String() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpressionOriginalCol(t *testing.T) {
	// `a\|b` written at column 10, with the backslash at 11 removed.
	e := Expression{Text: "a|b", Pos: Position{Line: 1, Col: 10}, Skips: []int{11}}
	tests := []struct {
		offset int
		want   int
	}{
		{0, 10},
		{1, 12},
		{2, 13},
	}
	for _, tt := range tests {
		if got := e.OriginalCol(tt.offset); got != tt.want {
			t.Errorf("OriginalCol(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
	if got := e.End(); got != 14 {
		t.Errorf("End() = %d, want 14", got)
	}
}

func TestWalkOrder(t *testing.T) {
	nested := &CommandNode{Type: CmdSet}
	child := &CommandNode{Type: CmdEcho}
	head := &CommandNode{
		Type:     CmdIf,
		Args:     []Arg{&CommandArg{Command: nested}},
		Children: []*CommandNode{child},
		Next:     &CommandNode{Type: CmdEndif},
	}

	var got []CommandType
	Walk(head, func(n *CommandNode) bool {
		got = append(got, n.Type)
		return true
	})
	if diff := cmp.Diff([]CommandType{CmdIf, CmdSet, CmdEcho, CmdEndif}, got); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}

	got = nil
	Walk(head, func(n *CommandNode) bool {
		got = append(got, n.Type)
		return n.Type != CmdIf
	})
	if diff := cmp.Diff([]CommandType{CmdIf, CmdEndif}, got); diff != "" {
		t.Errorf("pruned Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatIndentsBodies(t *testing.T) {
	one := 1
	head := &CommandNode{
		Type: CmdWhile,
		Args: []Arg{&ExprArg{Expr: &Expression{Text: "1"}}},
		Children: []*CommandNode{
			{Type: CmdDelete, Count: &one, Flags: ExList | ExPrint},
			{Type: CmdUser, Name: "Foo", Bang: true},
		},
		Next: &CommandNode{Type: CmdEndwhile},
	}
	want := "while expr(1)\n" +
		"  delete count=1 exflags=lp\n" +
		"  Foo!\n" +
		"endwhile\n"
	if diff := cmp.Diff(want, Format(head)); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestExFlags(t *testing.T) {
	f := ExList | ExNumber
	if !f.Has(ExList) || !f.Has(ExList|ExNumber) || f.Has(ExPrint) {
		t.Errorf("ExFlags(%b).Has gave the wrong answer", f)
	}
}
