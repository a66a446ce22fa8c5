package ast

// SetOp is the operation applied to one :set option.
type SetOp uint8

const (
	SetOn       SetOp = iota // name
	SetOff                   // noname
	SetInvert                // invname, name!
	SetShow                  // name?
	SetDefault               // name&
	SetVimDefault            // name&vim
	SetViDefault             // name&vi
	SetGlobal                // name<
	SetAssign                // name=value, name:value
	SetAppend                // name+=value
	SetPrepend               // name^=value
	SetRemove                // name-=value
)

// SetOption is one item of a :set command.
type SetOption struct {
	Name  string
	Op    SetOp
	Value string
	Pos   Position
}

// SetArg holds the option list of :set, :setlocal and :setglobal. An empty
// list shows the options that differ from their defaults.
type SetArg struct {
	Options []SetOption
}

// HighlightAction is the form of a :highlight command.
type HighlightAction uint8

const (
	HighlightList   HighlightAction = iota // :hi [group]
	HighlightDefine                        // :hi group key=val ...
	HighlightClear                         // :hi clear [group]
	HighlightLink                          // :hi link from to
)

// ColorKind is the spelling of a highlight color value.
type ColorKind uint8

const (
	ColorName  ColorKind = iota // "Red", "DarkBlue"
	ColorIndex                  // "123"
	ColorRGB                    // "#rrggbb"
	ColorNone                   // "NONE"
	ColorFg                     // "fg"
	ColorBg                     // "bg"
)

// Color is a parsed highlight color.
type Color struct {
	Kind  ColorKind
	Name  string
	Index int
	RGB   uint32
}

// HighlightAttr is one "key=value" item of :highlight. Attributes such as
// "cterm=bold,underline" fill Names; color keys fill Color; others fill Value.
type HighlightAttr struct {
	Key   string
	Names []string
	Color *Color
	Value string
}

// HighlightArg is a parsed :highlight command.
type HighlightArg struct {
	Action  HighlightAction
	Default bool
	Group   string
	LinkTo  string
	Attrs   []HighlightAttr
}

// GroupListKind selects the special forms of a syntax group list.
type GroupListKind uint8

const (
	GroupsExplicit  GroupListKind = iota
	GroupsAll                     // ALL
	GroupsAllBut                  // ALLBUT,...
	GroupsTop                     // TOP[,...]
	GroupsContained               // CONTAINED[,...]
)

// GroupList is the value of contains=, containedin=, nextgroup= and the
// cluster lists. Groups holds the explicit names (also after ALLBUT/TOP).
type GroupList struct {
	Kind   GroupListKind
	Groups []string
}

// SynOptions are the flags accepted by :syntax keyword, match and region.
type SynOptions struct {
	Contained   bool
	Oneline     bool
	Fold        bool
	Display     bool
	Extend      bool
	Concealends bool
	Conceal     bool
	Transparent bool
	SkipWhite   bool
	SkipNL      bool
	SkipEmpty   bool
	KeepEnd     bool
	ExcludeNL   bool
	Cchar       string
	Contains    *GroupList
	ContainedIn *GroupList
	NextGroup   *GroupList
}

// SynPatternKind is the role of a pattern in :syntax match/region.
type SynPatternKind uint8

const (
	SynPatMatch SynPatternKind = iota
	SynPatStart
	SynPatSkip
	SynPatEnd
)

// SynOffset is a pattern offset such as "ms=s+1" or "lc=2". Base is 's',
// 'e' or 'b', and zero for "lc".
type SynOffset struct {
	Name  string
	Base  byte
	Delta int
}

// SynPattern is a delimited syntax pattern with its offsets.
type SynPattern struct {
	Kind       SynPatternKind
	MatchGroup string
	Delim      byte
	Regex      Regex
	Offsets    []SynOffset
}

// SyntaxCommand is one :syntax sub-command.
type SyntaxCommand interface {
	syntaxCommand()
}

// SynKeyword is ":syntax keyword {group} [options] {keyword} ...".
type SynKeyword struct {
	Group    string
	Options  SynOptions
	Keywords []string
}

// SynMatch is ":syntax match {group} [options] {pattern} [options]".
type SynMatch struct {
	Group   string
	Options SynOptions
	Pattern SynPattern
}

// SynRegion is ":syntax region {group} [options] start=... [skip=...] end=...".
type SynRegion struct {
	Group    string
	Options  SynOptions
	Patterns []SynPattern
}

// SynCluster is ":syntax cluster {name} [contains=..] [add=..] [remove=..]".
type SynCluster struct {
	Name     string
	Contains *GroupList
	Add      *GroupList
	Remove   *GroupList
}

// SynSyncItem is one argument of ":syntax sync".
type SynSyncItem struct {
	Key   string
	Value string
	Group string
	Regex *Regex
}

// SynSync is ":syntax sync ...".
type SynSync struct {
	Items []SynSyncItem
}

// SynGroups is ":syntax list [groups]" or ":syntax clear [groups]".
type SynGroups struct {
	Action string
	Groups []string
}

// SynInclude is ":syntax include [@cluster] {file}".
type SynInclude struct {
	Cluster string
	File    Pattern
}

// SynSetting covers the single-word sub-commands with an optional value:
// "on", "off", "enable", "reset", "manual", "case", "spell", "conceal",
// "iskeyword" and "foldlevel".
type SynSetting struct {
	Name  string
	Value string
}

func (*SynKeyword) syntaxCommand() {}
func (*SynMatch) syntaxCommand()   {}
func (*SynRegion) syntaxCommand()  {}
func (*SynCluster) syntaxCommand() {}
func (*SynSync) syntaxCommand()    {}
func (*SynGroups) syntaxCommand()  {}
func (*SynInclude) syntaxCommand() {}
func (*SynSetting) syntaxCommand() {}

// SyntaxArg wraps the parsed :syntax sub-command. Command is nil for a bare
// ":syntax", which lists everything.
type SyntaxArg struct {
	Command SyntaxCommand
}

// KeyValue is a "key=value" property.
type KeyValue struct {
	Key   string
	Value string
}

// SignArg is a parsed :sign command. ID is 0 when absent and -1 for "*".
type SignArg struct {
	Sub   string
	Name  string
	ID    int
	Props []KeyValue
}

// UserCommandAttr is one "-name[=value]" attribute of :command.
type UserCommandAttr struct {
	Name  string
	Value string
}

// UserCommandArg is a :command definition. Without Name it lists commands.
type UserCommandArg struct {
	Attrs       []UserCommandAttr
	Name        string
	Replacement string
}

// Key is one translated key of a mapping. Plain characters set Rune; special
// keys such as "<CR>" or "<C-a>" set Name and Mods.
type Key struct {
	Rune rune
	Name string
	Mods string
}

func (k Key) String() string {
	if k.Name == "" {
		return string(k.Rune)
	}
	if k.Mods != "" {
		return "<" + k.Mods + "-" + k.Name + ">"
	}
	return "<" + k.Name + ">"
}

// KeyString is the LHS or RHS of a mapping, raw and translated.
type KeyString struct {
	Raw  string
	Keys []Key
}

// MappingArg is the body of the :map and :abbreviate families.
type MappingArg struct {
	LHS    KeyString
	RHS    KeyString
	HasRHS bool
}

// MenuItem is one dot-separated component of a menu path.
type MenuItem struct {
	Name     string
	Shortcut rune
	Text     string
}

// MenuPathArg is a menu path; Action is "enable" or "disable" when the
// command toggles an existing item, and Icon is set by "icon=".
type MenuPathArg struct {
	Action string
	Icon   string
	Items  []MenuItem
}
