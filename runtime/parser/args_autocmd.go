package parser

import (
	"strings"

	"github.com/aledsdavies/exparse/core/ast"
)

var eventNames = []string{
	"BufAdd", "BufCreate", "BufDelete", "BufEnter", "BufFilePost", "BufFilePre",
	"BufHidden", "BufLeave", "BufModifiedSet", "BufNew", "BufNewFile", "BufRead",
	"BufReadCmd", "BufReadPost", "BufReadPre", "BufUnload", "BufWinEnter",
	"BufWinLeave", "BufWipeout", "BufWrite", "BufWriteCmd", "BufWritePost",
	"BufWritePre", "CmdUndefined", "CmdlineChanged", "CmdlineEnter",
	"CmdlineLeave", "CmdwinEnter", "CmdwinLeave", "ColorScheme",
	"ColorSchemePre", "CompleteChanged", "CompleteDone", "CompleteDonePre",
	"CursorHold", "CursorHoldI", "CursorMoved", "CursorMovedI", "DiffUpdated",
	"DirChanged", "DirChangedPre", "EncodingChanged", "ExitPre", "FileAppendCmd",
	"FileAppendPost", "FileAppendPre", "FileChangedRO", "FileChangedShell",
	"FileChangedShellPost", "FileEncoding", "FileReadCmd", "FileReadPost",
	"FileReadPre", "FileType", "FileWriteCmd", "FileWritePost", "FileWritePre",
	"FilterReadPost", "FilterReadPre", "FilterWritePost", "FilterWritePre",
	"FocusGained", "FocusLost", "FuncUndefined", "GUIEnter", "GUIFailed",
	"InsertChange", "InsertCharPre", "InsertEnter", "InsertLeave",
	"InsertLeavePre", "MenuPopup", "ModeChanged", "OptionSet", "QuickFixCmdPost",
	"QuickFixCmdPre", "QuitPre", "RemoteReply", "SafeState", "SafeStateAgain",
	"SessionLoadPost", "SessionWritePost", "ShellCmdPost", "ShellFilterPost",
	"SigUSR1", "SourceCmd", "SourcePost", "SourcePre", "SpellFileMissing",
	"StdinReadPost", "StdinReadPre", "SwapExists", "Syntax", "TabClosed",
	"TabEnter", "TabLeave", "TabNew", "TermChanged", "TermResponse",
	"TerminalOpen", "TerminalWinOpen", "TextChanged", "TextChangedI",
	"TextChangedP", "TextChangedT", "TextYankPost", "User", "VimEnter",
	"VimLeave", "VimLeavePre", "VimResized", "VimResume", "VimSuspend",
	"WinClosed", "WinEnter", "WinLeave", "WinNew", "WinResized", "WinScrolled",
}

// eventsByLower maps lower-cased event names to their canonical spelling.
var eventsByLower = func() map[string]string {
	m := make(map[string]string, len(eventNames))
	for _, name := range eventNames {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// parseEvents splits a comma separated event list. ok is false when any
// entry is not an event; bad holds the first such entry.
func parseEvents(word string) (events []string, bad string, ok bool) {
	if word == "" {
		return nil, "", false
	}
	if word == "*" {
		return []string{"*"}, "", true
	}
	for _, name := range strings.Split(word, ",") {
		canon, known := eventsByLower[strings.ToLower(name)]
		if !known {
			return nil, name, false
		}
		events = append(events, canon)
	}
	return events, "", true
}

// autocmdWord reads up to a blank, "|" or the end of the line.
func (p *parser) autocmdWord() string {
	start := p.pos
	for !p.atEOL() && !p.atBar() && !isBlank(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos]
}

// groupAndEvents reads "[group] {events}". The first word is a group when it
// is not a valid event list.
func (p *parser) groupAndEvents(groupArg *ast.StringArg, eventsArg *ast.EventsArg) error {
	p.skipBlanks()
	word := p.autocmdWord()
	if word == "" {
		return nil
	}
	if events, _, ok := parseEvents(word); ok {
		eventsArg.Events = events
		return nil
	}
	groupArg.Value = word
	p.skipBlanks()
	start := p.pos
	word = p.autocmdWord()
	if word == "" {
		return nil
	}
	events, bad, ok := parseEvents(word)
	if !ok {
		return p.errorf(start, "E216: No such event: %s", bad)
	}
	eventsArg.Events = events
	return nil
}

// parseAutocmd reads ":autocmd[!] [group] {event} {pat} [++once] [++nested]
// {cmd}". The command takes the rest of the line, "|" included.
func (p *parser) parseAutocmd(node *ast.CommandNode) error {
	groupArg := slot[*ast.StringArg](node, 0)
	eventsArg := slot[*ast.EventsArg](node, 1)
	if err := p.groupAndEvents(groupArg, eventsArg); err != nil {
		return err
	}
	p.skipBlanks()
	if len(eventsArg.Events) == 0 || p.atEOL() || p.atBar() {
		return nil
	}

	pat, err := p.parseAutocmdPattern()
	if err != nil {
		return err
	}
	slot[*ast.PatternArg](node, 2).Pattern = pat

	flags := slot[*ast.FlagsArg](node, 3)
	for {
		p.skipBlanks()
		start := p.pos
		switch w := p.autocmdWord(); w {
		case "++once", "++nested", "nested":
			if flags.Has(w) {
				return p.errorf(start, "E983: Duplicate argument: %s", w)
			}
			flags.Flags = append(flags.Flags, w)
			continue
		}
		p.pos = start
		break
	}
	if p.atEOL() || p.atBar() {
		return nil
	}
	cmd, err := p.nestedChain()
	if err != nil {
		return err
	}
	slot[*ast.CommandArg](node, 4).Command = cmd
	return nil
}

// parseDoautocmd reads ":doautocmd [<nomodeline>] [group] {event} [fname]".
func (p *parser) parseDoautocmd(node *ast.CommandNode, def *ast.Definition) error {
	flags := slot[*ast.FlagsArg](node, 0)
	if p.hasPrefix("<nomodeline>") {
		p.pos += len("<nomodeline>")
		flags.Flags = append(flags.Flags, "<nomodeline>")
	}
	if err := p.groupAndEvents(slot[*ast.StringArg](node, 1), slot[*ast.EventsArg](node, 2)); err != nil {
		return err
	}
	p.skipBlanks()
	if p.atArgEnd(def) {
		return nil
	}
	file, err := p.parseGlob(def, globFile)
	if err != nil {
		return err
	}
	slot[*ast.GlobArg](node, 3).Pattern = file
	return nil
}
