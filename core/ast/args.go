package ast

// ArgKind tags the shape of one argument slot. The slots a command carries are
// fixed by its Definition and never inferred from the input.
type ArgKind uint8

const (
	ArgError       ArgKind = iota // *ErrorArg
	ArgExpr                       // *ExprArg
	ArgExprs                      // *ExprListArg
	ArgLet                        // *LetArg
	ArgFor                        // *ForArg
	ArgFunction                   // *FunctionArg
	ArgRegex                      // *RegexArg
	ArgReplacement                // *ReplacementArg
	ArgSubFlags                   // *SubFlagsArg
	ArgCommand                    // *CommandArg
	ArgGlob                       // *GlobArg
	ArgGlobs                      // *GlobListArg
	ArgPattern                    // *PatternArg
	ArgFileOpts                   // *FileOptsArg
	ArgRedir                      // *RedirArg
	ArgSetOptions                 // *SetArg
	ArgHighlight                  // *HighlightArg
	ArgSyntax                     // *SyntaxArg
	ArgSign                       // *SignArg
	ArgUserCommand                // *UserCommandArg
	ArgEvents                     // *EventsArg
	ArgFlags                      // *FlagsArg
	ArgMapping                    // *MappingArg
	ArgMenuPath                   // *MenuPathArg
	ArgNumbers                    // *NumbersArg
	ArgNumber                     // *NumberArg
	ArgString                     // *StringArg
	ArgStrings                    // *StringsArg
	ArgLines                      // *LinesArg
	ArgAddress                    // *AddressArg
	ArgChar                       // *CharArg
)

var argKindNames = [...]string{
	ArgError:       "error",
	ArgExpr:        "expr",
	ArgExprs:       "exprs",
	ArgLet:         "let",
	ArgFor:         "for",
	ArgFunction:    "function",
	ArgRegex:       "regex",
	ArgReplacement: "replacement",
	ArgSubFlags:    "subflags",
	ArgCommand:     "command",
	ArgGlob:        "glob",
	ArgGlobs:       "globs",
	ArgPattern:     "pattern",
	ArgFileOpts:    "fileopts",
	ArgRedir:       "redir",
	ArgSetOptions:  "options",
	ArgHighlight:   "highlight",
	ArgSyntax:      "syntax",
	ArgSign:        "sign",
	ArgUserCommand: "usercommand",
	ArgEvents:      "events",
	ArgFlags:       "flags",
	ArgMapping:     "mapping",
	ArgMenuPath:    "menupath",
	ArgNumbers:     "numbers",
	ArgNumber:      "number",
	ArgString:      "string",
	ArgStrings:     "strings",
	ArgLines:       "lines",
	ArgAddress:     "address",
	ArgChar:        "char",
}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "unknown"
}

// Arg is the value stored in one argument slot.
type Arg interface {
	Kind() ArgKind
}

// ErrorArg is the only slot of a SyntaxError node.
type ErrorArg struct {
	Line    string
	Message string
	Offset  int
}

// ExprArg holds one expression; Expr is nil when the optional expression of
// commands like :return was omitted.
type ExprArg struct {
	Expr *Expression
}

// ExprListArg holds a whitespace separated list of expressions (:echo) or
// variable references (:unlet).
type ExprListArg struct {
	Exprs []Expression
}

// LetArg is ":let {target} {op} {value}". Target is nil for a bare ":let";
// Value is nil when only the variable was named (":let var" lists it).
type LetArg struct {
	Target *Expression
	Op     string
	Value  *Expression
}

// ForArg is ":for {target} in {list}".
type ForArg struct {
	Target Expression
	List   Expression
}

// Param is one declared function parameter.
type Param struct {
	Name    string
	Default *Expression
}

// FunctionArg is a ":function" header. A header with neither Name nor Pattern
// lists all functions; Pattern is set for ":function /re". Define is set when
// the header has a parameter list and so opens a function body.
type FunctionArg struct {
	Define  bool
	Name    string
	Pattern *Regex
	Params  []Param
	Varargs bool
	Attrs   []string
}

// RegexArg holds an optional search pattern; nil means "use the last one".
type RegexArg struct {
	Regex *Regex
	Delim byte
}

// ReplacementArg is the right-hand side of a substitution.
type ReplacementArg struct {
	Replacement Replacement
}

// SubFlags is the set of substitute flags.
type SubFlags uint16

const (
	SubKeep         SubFlags = 1 << iota // &
	SubConfirm                           // c
	SubNoError                           // e
	SubGlobal                            // g
	SubIgnoreCase                        // i
	SubNoIgnoreCase                      // I
	SubCountOnly                         // n
	SubPrint                             // p
	SubNumber                            // #
	SubList                              // l
	SubLastSearch                        // r
)

// Has reports whether every flag in f2 is set.
func (f SubFlags) Has(f2 SubFlags) bool { return f&f2 == f2 }

// SubFlagsArg carries the trailing flags of :substitute and its repeats.
type SubFlagsArg struct {
	Flags SubFlags
}

// CommandArg holds a nested command chain (":global", modifiers, ":autocmd").
// Command is nil when the nested command was omitted.
type CommandArg struct {
	Command *CommandNode
}

// GlobArg is a single optional file argument.
type GlobArg struct {
	Pattern Pattern
}

// GlobListArg is a list of file arguments.
type GlobListArg struct {
	Patterns []Pattern
}

// PatternArg is an autocommand pattern.
type PatternArg struct {
	Pattern Pattern
}

// FileOpt is one "++name=value" argument.
type FileOpt struct {
	Name  string
	Value string
}

// FileOptsArg holds the "++opt" arguments of file commands.
type FileOptsArg struct {
	Opts []FileOpt
}

// RedirArg is the target of :write and :read: a file, an append (">>") or a
// shell filter ("!cmd").
type RedirArg struct {
	Append bool
	Filter bool
	Shell  string
	File   Pattern
}

// EventsArg lists autocommand event names; "*" is kept verbatim.
type EventsArg struct {
	Events []string
}

// FlagsArg lists named flags such as "<buffer>" or "++nested".
type FlagsArg struct {
	Flags []string
}

// Has reports whether flag is present.
func (f *FlagsArg) Has(flag string) bool {
	for _, x := range f.Flags {
		if x == flag {
			return true
		}
	}
	return false
}

// NumbersArg holds a list of integers (menu priorities).
type NumbersArg struct {
	Values []int
}

// NumberArg holds one optional integer.
type NumberArg struct {
	Value *int
}

// StringArg holds raw text.
type StringArg struct {
	Value string
}

// StringsArg holds whitespace separated words.
type StringsArg struct {
	Values []string
}

// LinesArg holds lines consumed from the line source after the command:
// :append bodies and heredocs. Marker is the terminating line.
type LinesArg struct {
	Marker string
	Trim   bool
	Eval   bool
	Lines  []string
}

// AddressArg is the destination address of :copy and :move.
type AddressArg struct {
	Range Range
}

// CharArg is a single character argument such as a mark name.
type CharArg struct {
	Char byte
}

func (*ErrorArg) Kind() ArgKind       { return ArgError }
func (*ExprArg) Kind() ArgKind        { return ArgExpr }
func (*ExprListArg) Kind() ArgKind    { return ArgExprs }
func (*LetArg) Kind() ArgKind         { return ArgLet }
func (*ForArg) Kind() ArgKind         { return ArgFor }
func (*FunctionArg) Kind() ArgKind    { return ArgFunction }
func (*RegexArg) Kind() ArgKind       { return ArgRegex }
func (*ReplacementArg) Kind() ArgKind { return ArgReplacement }
func (*SubFlagsArg) Kind() ArgKind    { return ArgSubFlags }
func (*CommandArg) Kind() ArgKind     { return ArgCommand }
func (*GlobArg) Kind() ArgKind        { return ArgGlob }
func (*GlobListArg) Kind() ArgKind    { return ArgGlobs }
func (*PatternArg) Kind() ArgKind     { return ArgPattern }
func (*FileOptsArg) Kind() ArgKind    { return ArgFileOpts }
func (*RedirArg) Kind() ArgKind       { return ArgRedir }
func (*SetArg) Kind() ArgKind         { return ArgSetOptions }
func (*HighlightArg) Kind() ArgKind   { return ArgHighlight }
func (*SyntaxArg) Kind() ArgKind      { return ArgSyntax }
func (*SignArg) Kind() ArgKind        { return ArgSign }
func (*UserCommandArg) Kind() ArgKind { return ArgUserCommand }
func (*EventsArg) Kind() ArgKind      { return ArgEvents }
func (*FlagsArg) Kind() ArgKind       { return ArgFlags }
func (*MappingArg) Kind() ArgKind     { return ArgMapping }
func (*MenuPathArg) Kind() ArgKind    { return ArgMenuPath }
func (*NumbersArg) Kind() ArgKind     { return ArgNumbers }
func (*NumberArg) Kind() ArgKind      { return ArgNumber }
func (*StringArg) Kind() ArgKind      { return ArgString }
func (*StringsArg) Kind() ArgKind     { return ArgStrings }
func (*LinesArg) Kind() ArgKind       { return ArgLines }
func (*AddressArg) Kind() ArgKind     { return ArgAddress }
func (*CharArg) Kind() ArgKind        { return ArgChar }
