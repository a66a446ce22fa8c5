package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a command chain as indented text, one command per line,
// with block bodies indented under their opener. Empty argument slots are
// omitted. The output is stable and meant for diagnostics and tests.
func Format(head *CommandNode) string {
	var b strings.Builder
	for n := head; n != nil; n = n.Next {
		formatNode(&b, n, 0)
	}
	return b.String()
}

func formatNode(b *strings.Builder, n *CommandNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(FormatOne(n))
	b.WriteByte('\n')
	for _, child := range Body(n) {
		formatNode(b, child, depth+1)
	}
}

// Body returns the block body of n, looking through command modifiers so
// that "silent! if" shows the body of its ":if".
func Body(n *CommandNode) []*CommandNode {
	for len(n.Children) == 0 {
		def := n.Definition()
		if def == nil || !def.IsModifier() {
			return nil
		}
		var inner *CommandNode
		for _, a := range n.Args {
			if ca, ok := a.(*CommandArg); ok {
				inner = ca.Command
			}
		}
		if inner == nil {
			return nil
		}
		n = inner
	}
	return n.Children
}

// FormatOne renders a single command on one line, without its children.
func FormatOne(n *CommandNode) string {
	var parts []string
	name := n.CommandName()
	if n.Bang {
		name += "!"
	}
	parts = append(parts, name)
	if len(n.Range) > 0 {
		parts = append(parts, "range="+n.Range.String())
	}
	if n.Count != nil {
		parts = append(parts, "count="+strconv.Itoa(*n.Count))
	}
	if n.Register != nil {
		if n.Register.Expr != nil {
			parts = append(parts, "reg==("+n.Register.Expr.Text+")")
		} else {
			parts = append(parts, "reg="+string(n.Register.Name))
		}
	}
	if n.Flags != 0 {
		parts = append(parts, "exflags="+formatExFlags(n.Flags))
	}
	for _, arg := range n.Args {
		if s := FormatArg(arg); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func formatExFlags(f ExFlags) string {
	var s string
	if f.Has(ExList) {
		s += "l"
	}
	if f.Has(ExNumber) {
		s += "#"
	}
	if f.Has(ExPrint) {
		s += "p"
	}
	return s
}

// FormatArg renders one argument slot, or "" for an empty slot.
func FormatArg(arg Arg) string {
	switch a := arg.(type) {
	case *ErrorArg:
		return fmt.Sprintf("error(%d: %s)", a.Offset, a.Message)
	case *ExprArg:
		if a.Expr == nil {
			return ""
		}
		return "expr(" + a.Expr.Text + ")"
	case *ExprListArg:
		if len(a.Exprs) == 0 {
			return ""
		}
		texts := make([]string, len(a.Exprs))
		for i, e := range a.Exprs {
			texts[i] = e.Text
		}
		return "exprs(" + strings.Join(texts, "; ") + ")"
	case *LetArg:
		if a.Target == nil {
			return ""
		}
		if a.Value == nil {
			if a.Op != "" {
				return "let(" + a.Target.Text + " " + a.Op + ")"
			}
			return "let(" + a.Target.Text + ")"
		}
		return "let(" + a.Target.Text + " " + a.Op + " " + a.Value.Text + ")"
	case *ForArg:
		return "for(" + a.Target.Text + " in " + a.List.Text + ")"
	case *FunctionArg:
		return formatFunction(a)
	case *RegexArg:
		if a.Regex == nil {
			return ""
		}
		return "re(" + a.Regex.Source + ")"
	case *ReplacementArg:
		return formatReplacement(a.Replacement)
	case *SubFlagsArg:
		if a.Flags == 0 {
			return ""
		}
		return "subflags(" + formatSubFlags(a.Flags) + ")"
	case *CommandArg:
		if a.Command == nil {
			return ""
		}
		var cmds []string
		for c := a.Command; c != nil; c = c.Next {
			cmds = append(cmds, FormatOne(c))
		}
		return "{" + strings.Join(cmds, " | ") + "}"
	case *GlobArg:
		if len(a.Pattern) == 0 {
			return ""
		}
		return "glob(" + a.Pattern.String() + ")"
	case *GlobListArg:
		if len(a.Patterns) == 0 {
			return ""
		}
		texts := make([]string, len(a.Patterns))
		for i, p := range a.Patterns {
			texts[i] = p.String()
		}
		return "globs(" + strings.Join(texts, " ") + ")"
	case *PatternArg:
		if len(a.Pattern) == 0 {
			return ""
		}
		return "pat(" + a.Pattern.String() + ")"
	case *FileOptsArg:
		if len(a.Opts) == 0 {
			return ""
		}
		texts := make([]string, len(a.Opts))
		for i, o := range a.Opts {
			texts[i] = "++" + o.Name
			if o.Value != "" {
				texts[i] += "=" + o.Value
			}
		}
		return "opts(" + strings.Join(texts, " ") + ")"
	case *RedirArg:
		return formatRedir(a)
	case *SetArg:
		return formatSet(a)
	case *HighlightArg:
		return formatHighlight(a)
	case *SyntaxArg:
		return formatSyntax(a)
	case *SignArg:
		s := "sign(" + a.Sub
		if a.Name != "" {
			s += " " + a.Name
		}
		if a.ID != 0 {
			s += " id=" + strconv.Itoa(a.ID)
		}
		return s + formatProps(a.Props) + ")"
	case *UserCommandArg:
		var attrs []string
		for _, at := range a.Attrs {
			if at.Value != "" {
				attrs = append(attrs, "-"+at.Name+"="+at.Value)
			} else {
				attrs = append(attrs, "-"+at.Name)
			}
		}
		s := "usercmd(" + strings.Join(append(attrs, a.Name), " ")
		if a.Replacement != "" {
			s += " => " + a.Replacement
		}
		return s + ")"
	case *EventsArg:
		if len(a.Events) == 0 {
			return ""
		}
		return "events(" + strings.Join(a.Events, ",") + ")"
	case *FlagsArg:
		if len(a.Flags) == 0 {
			return ""
		}
		return "flags(" + strings.Join(a.Flags, " ") + ")"
	case *MappingArg:
		if a.LHS.Raw == "" {
			return ""
		}
		if !a.HasRHS {
			return "map(" + a.LHS.Raw + ")"
		}
		return "map(" + a.LHS.Raw + " => " + a.RHS.Raw + ")"
	case *MenuPathArg:
		return formatMenuPath(a)
	case *NumbersArg:
		if len(a.Values) == 0 {
			return ""
		}
		texts := make([]string, len(a.Values))
		for i, v := range a.Values {
			texts[i] = strconv.Itoa(v)
		}
		return "nums(" + strings.Join(texts, ".") + ")"
	case *NumberArg:
		if a.Value == nil {
			return ""
		}
		return "num(" + strconv.Itoa(*a.Value) + ")"
	case *StringArg:
		if a.Value == "" {
			return ""
		}
		return "str(" + a.Value + ")"
	case *StringsArg:
		if len(a.Values) == 0 {
			return ""
		}
		return "words(" + strings.Join(a.Values, " ") + ")"
	case *LinesArg:
		if a.Marker == "" && len(a.Lines) == 0 {
			return ""
		}
		return fmt.Sprintf("lines(%s:%d)", a.Marker, len(a.Lines))
	case *AddressArg:
		return "addr(" + a.Range.String() + ")"
	case *CharArg:
		return "char(" + string(a.Char) + ")"
	}
	return ""
}

func formatFunction(a *FunctionArg) string {
	if a.Pattern != nil {
		return "func(/" + a.Pattern.Source + "/)"
	}
	if a.Name == "" {
		return ""
	}
	params := make([]string, 0, len(a.Params)+1)
	for _, p := range a.Params {
		if p.Default != nil {
			params = append(params, p.Name+"="+p.Default.Text)
		} else {
			params = append(params, p.Name)
		}
	}
	if a.Varargs {
		params = append(params, "...")
	}
	s := "func(" + a.Name + "(" + strings.Join(params, ", ") + ")"
	if len(a.Attrs) > 0 {
		s += " " + strings.Join(a.Attrs, " ")
	}
	return s + ")"
}

func formatReplacement(r Replacement) string {
	atoms := make([]string, len(r))
	for i, a := range r {
		switch a := a.(type) {
		case ReplLiteral:
			atoms[i] = strconv.Quote(a.Text)
		default:
			atoms[i] = a.String()
		}
	}
	return "repl(" + strings.Join(atoms, " ") + ")"
}

var subFlagLetters = []struct {
	flag SubFlags
	c    byte
}{
	{SubKeep, '&'}, {SubConfirm, 'c'}, {SubNoError, 'e'}, {SubGlobal, 'g'},
	{SubIgnoreCase, 'i'}, {SubNoIgnoreCase, 'I'}, {SubCountOnly, 'n'},
	{SubPrint, 'p'}, {SubNumber, '#'}, {SubList, 'l'}, {SubLastSearch, 'r'},
}

func formatSubFlags(f SubFlags) string {
	var b strings.Builder
	for _, l := range subFlagLetters {
		if f.Has(l.flag) {
			b.WriteByte(l.c)
		}
	}
	return b.String()
}

func formatRedir(a *RedirArg) string {
	switch {
	case a.Filter:
		return "filter(" + a.Shell + ")"
	case a.Append:
		return "append(" + a.File.String() + ")"
	case len(a.File) > 0:
		return "file(" + a.File.String() + ")"
	}
	return ""
}

var setOpSuffix = map[SetOp]string{
	SetInvert:     "!",
	SetShow:       "?",
	SetDefault:    "&",
	SetVimDefault: "&vim",
	SetViDefault:  "&vi",
	SetGlobal:     "<",
	SetAssign:     "=",
	SetAppend:     "+=",
	SetPrepend:    "^=",
	SetRemove:     "-=",
}

func formatSet(a *SetArg) string {
	if len(a.Options) == 0 {
		return ""
	}
	items := make([]string, len(a.Options))
	for i, o := range a.Options {
		switch o.Op {
		case SetOn:
			items[i] = o.Name
		case SetOff:
			items[i] = "no" + o.Name
		default:
			items[i] = o.Name + setOpSuffix[o.Op] + o.Value
		}
	}
	return "set(" + strings.Join(items, " ") + ")"
}

func formatHighlight(a *HighlightArg) string {
	var parts []string
	if a.Default {
		parts = append(parts, "default")
	}
	switch a.Action {
	case HighlightClear:
		parts = append(parts, "clear")
	case HighlightLink:
		parts = append(parts, "link")
	}
	if a.Group != "" {
		parts = append(parts, a.Group)
	}
	if a.LinkTo != "" {
		parts = append(parts, a.LinkTo)
	}
	for _, at := range a.Attrs {
		switch {
		case at.Color != nil:
			parts = append(parts, at.Key+"="+FormatColor(*at.Color))
		case at.Names != nil:
			parts = append(parts, at.Key+"="+strings.Join(at.Names, ","))
		default:
			parts = append(parts, at.Key+"="+at.Value)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "hl(" + strings.Join(parts, " ") + ")"
}

// FormatColor renders a highlight color the way it is written.
func FormatColor(c Color) string {
	switch c.Kind {
	case ColorIndex:
		return strconv.Itoa(c.Index)
	case ColorRGB:
		return fmt.Sprintf("#%06x", c.RGB)
	case ColorNone:
		return "NONE"
	case ColorFg:
		return "fg"
	case ColorBg:
		return "bg"
	}
	return c.Name
}

func formatSyntax(a *SyntaxArg) string {
	switch c := a.Command.(type) {
	case *SynKeyword:
		return "syn(keyword " + c.Group + formatSynOptions(c.Options) + " " + strings.Join(c.Keywords, " ") + ")"
	case *SynMatch:
		return "syn(match " + c.Group + formatSynOptions(c.Options) + " " + formatSynPattern(c.Pattern) + ")"
	case *SynRegion:
		s := "syn(region " + c.Group + formatSynOptions(c.Options)
		for _, p := range c.Patterns {
			s += " " + formatSynPattern(p)
		}
		return s + ")"
	case *SynCluster:
		s := "syn(cluster " + c.Name
		if c.Contains != nil {
			s += " contains=" + FormatGroupList(*c.Contains)
		}
		if c.Add != nil {
			s += " add=" + FormatGroupList(*c.Add)
		}
		if c.Remove != nil {
			s += " remove=" + FormatGroupList(*c.Remove)
		}
		return s + ")"
	case *SynSync:
		items := make([]string, 0, len(c.Items))
		for _, it := range c.Items {
			s := it.Key
			if it.Value != "" {
				s += "=" + it.Value
			}
			if it.Group != "" {
				s += ":" + it.Group
			}
			if it.Regex != nil {
				s += "/" + it.Regex.Source + "/"
			}
			items = append(items, s)
		}
		return "syn(sync " + strings.Join(items, " ") + ")"
	case *SynGroups:
		return "syn(" + strings.Join(append([]string{c.Action}, c.Groups...), " ") + ")"
	case *SynInclude:
		s := "syn(include "
		if c.Cluster != "" {
			s += "@" + c.Cluster + " "
		}
		return s + c.File.String() + ")"
	case *SynSetting:
		if c.Value != "" {
			return "syn(" + c.Name + " " + c.Value + ")"
		}
		return "syn(" + c.Name + ")"
	}
	return ""
}

func formatSynOptions(o SynOptions) string {
	var s string
	flags := []struct {
		on   bool
		name string
	}{
		{o.Contained, "contained"}, {o.Oneline, "oneline"}, {o.Fold, "fold"},
		{o.Display, "display"}, {o.Extend, "extend"}, {o.Concealends, "concealends"},
		{o.Conceal, "conceal"}, {o.Transparent, "transparent"}, {o.SkipWhite, "skipwhite"},
		{o.SkipNL, "skipnl"}, {o.SkipEmpty, "skipempty"}, {o.KeepEnd, "keepend"},
		{o.ExcludeNL, "excludenl"},
	}
	for _, f := range flags {
		if f.on {
			s += " " + f.name
		}
	}
	if o.Cchar != "" {
		s += " cchar=" + o.Cchar
	}
	if o.Contains != nil {
		s += " contains=" + FormatGroupList(*o.Contains)
	}
	if o.ContainedIn != nil {
		s += " containedin=" + FormatGroupList(*o.ContainedIn)
	}
	if o.NextGroup != nil {
		s += " nextgroup=" + FormatGroupList(*o.NextGroup)
	}
	return s
}

func formatSynPattern(p SynPattern) string {
	var s string
	switch p.Kind {
	case SynPatStart:
		s = "start="
	case SynPatSkip:
		s = "skip="
	case SynPatEnd:
		s = "end="
	}
	if p.MatchGroup != "" {
		s = "matchgroup=" + p.MatchGroup + " " + s
	}
	d := string(p.Delim)
	s += d + p.Regex.Source + d
	for i, off := range p.Offsets {
		if i > 0 {
			s += ","
		}
		s += off.Name + "="
		if off.Base != 0 {
			s += string(off.Base)
			if off.Delta > 0 {
				s += "+"
			}
			if off.Delta != 0 {
				s += strconv.Itoa(off.Delta)
			}
		} else {
			s += strconv.Itoa(off.Delta)
		}
	}
	return s
}

// FormatGroupList renders a syntax group list.
func FormatGroupList(g GroupList) string {
	var head []string
	switch g.Kind {
	case GroupsAll:
		head = []string{"ALL"}
	case GroupsAllBut:
		head = []string{"ALLBUT"}
	case GroupsTop:
		head = []string{"TOP"}
	case GroupsContained:
		head = []string{"CONTAINED"}
	}
	return strings.Join(append(head, g.Groups...), ",")
}

func formatProps(props []KeyValue) string {
	var s string
	for _, p := range props {
		s += " " + p.Key + "=" + p.Value
	}
	return s
}

func formatMenuPath(a *MenuPathArg) string {
	if len(a.Items) == 0 && a.Action == "" {
		return ""
	}
	names := make([]string, len(a.Items))
	for i, it := range a.Items {
		names[i] = it.Name
		if it.Text != "" {
			names[i] += "<Tab>" + it.Text
		}
	}
	s := "menu("
	if a.Action != "" {
		s += a.Action + " "
	}
	if a.Icon != "" {
		s += "icon=" + a.Icon + " "
	}
	return s + strings.Join(names, ".") + ")"
}
