package ast

import "strings"

// CmdFlags describes what a command accepts.
type CmdFlags uint32

const (
	FlagRange    CmdFlags = 1 << iota // accepts a range
	FlagBang                          // accepts "!" right after the name
	FlagExtra                         // accepts arguments
	FlagXFile                         // arguments are file names
	FlagTrlBar                        // "|" ends the command and '"' starts a comment
	FlagCount                         // accepts a count after the name
	FlagZeroR                         // line zero is a valid address
	FlagRegStr                        // accepts a register name
	FlagEditCmd                       // accepts "+cmd"
	FlagArgOpt                        // accepts "++opt"
	FlagExFlags                       // accepts print flags "l", "#", "p"
	FlagModifier                      // command modifier
	FlagNeedArg                       // argument is required
	FlagNotRlCom                      // '"' is part of the argument
	FlagFile1                         // exactly one file argument
)

const fileFlags = FlagBang | FlagXFile | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar

// ArgParser names the argument grammar of a command. The parser package maps
// each value to its implementation; Slots gives the slot layout it fills.
type ArgParser uint8

const (
	ParseNone ArgParser = iota
	ParseError
	ParseComment
	ParseUser
	ParseText
	ParseBuffer
	ParseName
	ParseWords
	ParseNumber
	ParseLines
	ParseExpr
	ParseOptExpr
	ParseExprs
	ParseLet
	ParseLvals
	ParseFor
	ParseFunction
	ParseCatch
	ParseSubstitute
	ParseSubRepeat
	ParseGlobal
	ParseVimgrep
	ParseSort
	ParseMatch
	ParseFiles
	ParseFile
	ParseWrite
	ParseRead
	ParseSet
	ParseHighlight
	ParseSyntax
	ParseSign
	ParseUserCommand
	ParseAutocmd
	ParseDoautocmd
	ParseMap
	ParseMapclear
	ParseMenu
	ParseUnmenu
	ParseMenutranslate
	ParseCommand
	ParseModifier
	ParseFilter
	ParseMark
	ParseAddress
	ParseShift
	ParseScript

	parserCount
)

var parserSlots = [parserCount][]ArgKind{
	ParseNone:          nil,
	ParseError:         {ArgError},
	ParseComment:       {ArgString},
	ParseUser:          {ArgString},
	ParseText:          {ArgString},
	ParseBuffer:        {ArgCommand, ArgString},
	ParseName:          {ArgString},
	ParseWords:         {ArgStrings},
	ParseNumber:        {ArgNumber},
	ParseLines:         {ArgLines},
	ParseExpr:          {ArgExpr},
	ParseOptExpr:       {ArgExpr},
	ParseExprs:         {ArgExprs},
	ParseLet:           {ArgLet, ArgLines},
	ParseLvals:         {ArgExprs},
	ParseFor:           {ArgFor},
	ParseFunction:      {ArgFunction},
	ParseCatch:         {ArgRegex},
	ParseSubstitute:    {ArgRegex, ArgReplacement, ArgSubFlags},
	ParseSubRepeat:     {ArgSubFlags},
	ParseGlobal:        {ArgRegex, ArgCommand},
	ParseVimgrep:       {ArgRegex, ArgFlags, ArgGlobs},
	ParseSort:          {ArgFlags, ArgRegex},
	ParseMatch:         {ArgString, ArgRegex},
	ParseFiles:         {ArgFileOpts, ArgCommand, ArgGlobs},
	ParseFile:          {ArgFileOpts, ArgCommand, ArgGlob},
	ParseWrite:         {ArgFileOpts, ArgRedir},
	ParseRead:          {ArgFileOpts, ArgRedir},
	ParseSet:           {ArgSetOptions},
	ParseHighlight:     {ArgHighlight},
	ParseSyntax:        {ArgSyntax},
	ParseSign:          {ArgSign},
	ParseUserCommand:   {ArgUserCommand},
	ParseAutocmd:       {ArgString, ArgEvents, ArgPattern, ArgFlags, ArgCommand},
	ParseDoautocmd:     {ArgFlags, ArgString, ArgEvents, ArgGlob},
	ParseMap:           {ArgFlags, ArgMapping},
	ParseMapclear:      {ArgFlags},
	ParseMenu:          {ArgFlags, ArgNumbers, ArgMenuPath, ArgString},
	ParseUnmenu:        {ArgMenuPath},
	ParseMenutranslate: {ArgStrings},
	ParseCommand:       {ArgCommand},
	ParseModifier:      {ArgCommand},
	ParseFilter:        {ArgRegex, ArgCommand},
	ParseMark:          {ArgChar},
	ParseAddress:       {ArgAddress},
	ParseShift:         {ArgNumber},
	ParseScript:        {ArgString, ArgLines},
}

// Slots returns the argument layout filled by parser p.
func (p ArgParser) Slots() []ArgKind {
	return parserSlots[p]
}

// Definition is the static description of one command.
type Definition struct {
	Type   CommandType
	Name   string // canonical full name
	MinLen int    // shortest accepted abbreviation
	Flags  CmdFlags
	Parser ArgParser
	Args   []ArgKind

	spec string
}

// Has reports whether the command accepts every feature in f.
func (d *Definition) Has(f CmdFlags) bool {
	return d.Flags&f == f
}

// IsModifier reports whether the command prefixes another command.
func (d *Definition) IsModifier() bool {
	return d.Flags&FlagModifier != 0
}

// CommandType identifies a builtin command, or one of the pseudo commands
// produced by the parser (SyntaxError, Comment, Goto, User).
type CommandType uint16

const (
	CmdNone CommandType = iota
	CmdSyntaxError             // positioned parse error
	CmdUser                    // user-defined command; see CommandNode.Name
	CmdComment                 // "comment line
	CmdGoto                    // bare range: jump to line
	CmdBang                    // !{cmd}
	CmdAnd                     // & (repeat :s)
	CmdTilde                   // ~ (repeat :s with last search)
	CmdShiftLeft               // <
	CmdShiftRight              // >
	CmdEqual                   // =
	CmdAt                      // @{reg}
	CmdStar                    // *{reg}
	CmdAppend
	CmdAbbreviate
	CmdAbclear
	CmdAboveleft
	CmdAll
	CmdAmenu
	CmdAnoremenu
	CmdArgadd
	CmdArgdelete
	CmdArgdo
	CmdArgedit
	CmdArgs
	CmdArgument
	CmdAugroup
	CmdAunmenu
	CmdAutocmd
	CmdBadd
	CmdBdelete
	CmdBelowright
	CmdBnext
	CmdBotright
	CmdBprevious
	CmdBreak
	CmdBrowse
	CmdBuffer
	CmdBufdo
	CmdBuffers
	CmdBwipeout
	CmdCabbrev
	CmdCabclear
	CmdCall
	CmdCatch
	CmdCd
	CmdCdo
	CmdCenter
	CmdCfdo
	CmdChange
	CmdChdir
	CmdClist
	CmdClose
	CmdCmap
	CmdCmapclear
	CmdCmenu
	CmdCnext
	CmdCnoreabbrev
	CmdCnoremap
	CmdCnoremenu
	CmdColorscheme
	CmdComclear
	CmdCommand
	CmdCompiler
	CmdConfirm
	CmdContinue
	CmdCopen
	CmdCopy
	CmdCprevious
	CmdCquit
	CmdCunabbrev
	CmdCunmap
	CmdCunmenu
	CmdDelcommand
	CmdDelete
	CmdDelfunction
	CmdDelmarks
	CmdDiffupdate
	CmdDisplay
	CmdDoautoall
	CmdDoautocmd
	CmdEcho
	CmdEchoerr
	CmdEchohl
	CmdEchomsg
	CmdEchon
	CmdEdit
	CmdElse
	CmdElseif
	CmdEndfor
	CmdEndfunction
	CmdEndif
	CmdEndtry
	CmdEndwhile
	CmdEnew
	CmdExecute
	CmdExit
	CmdFile
	CmdFiletype
	CmdFilter
	CmdFinally
	CmdFind
	CmdFinish
	CmdFold
	CmdFoldclose
	CmdFolddoclosed
	CmdFolddoopen
	CmdFoldopen
	CmdFor
	CmdFunction
	CmdGlobal
	CmdGotoByte
	CmdHelp
	CmdHelptags
	CmdHide
	CmdHighlight
	CmdHistory
	CmdIabbrev
	CmdIabclear
	CmdIf
	CmdImap
	CmdImapclear
	CmdImenu
	CmdInoreabbrev
	CmdInoremap
	CmdInoremenu
	CmdInsert
	CmdIunabbrev
	CmdIunmap
	CmdIunmenu
	CmdJoin
	CmdJumps
	CmdK
	CmdKeepalt
	CmdKeepjumps
	CmdKeepmarks
	CmdKeeppatterns
	CmdLanguage
	CmdLcd
	CmdLchdir
	CmdLdo
	CmdLeft
	CmdLeftabove
	CmdLet
	CmdLfdo
	CmdList
	CmdLmap
	CmdLnoremap
	CmdLockmarks
	CmdLockvar
	CmdLs
	CmdLua
	CmdLunmap
	CmdLvimgrep
	CmdLvimgrepadd
	CmdMake
	CmdMap
	CmdMapclear
	CmdMark
	CmdMarks
	CmdMatch
	CmdMenu
	CmdMenutranslate
	CmdMessages
	CmdMove
	CmdNew
	CmdNext
	CmdNmap
	CmdNmapclear
	CmdNmenu
	CmdNnoremap
	CmdNnoremenu
	CmdNoautocmd
	CmdNohlsearch
	CmdNoreabbrev
	CmdNoremap
	CmdNoremenu
	CmdNormal
	CmdNoswapfile
	CmdNumber
	CmdNunmap
	CmdNunmenu
	CmdOmap
	CmdOmenu
	CmdOnly
	CmdOnoremap
	CmdOnoremenu
	CmdOunmap
	CmdOunmenu
	CmdPackadd
	CmdPerl
	CmdPrevious
	CmdPrint
	CmdPut
	CmdPwd
	CmdPython
	CmdPython3
	CmdQall
	CmdQuit
	CmdQuitall
	CmdRead
	CmdRedir
	CmdRedo
	CmdRedraw
	CmdRegisters
	CmdRetab
	CmdReturn
	CmdRewind
	CmdRight
	CmdRightbelow
	CmdRuby
	CmdRuntime
	CmdSandbox
	CmdSaveas
	CmdSargument
	CmdSbuffer
	CmdScriptnames
	CmdSet
	CmdSetfiletype
	CmdSetglobal
	CmdSetlocal
	CmdSfind
	CmdShell
	CmdSign
	CmdSilent
	CmdSleep
	CmdSmagic
	CmdSmap
	CmdSmapclear
	CmdSmenu
	CmdSnomagic
	CmdSnoremap
	CmdSnoremenu
	CmdSort
	CmdSource
	CmdSplit
	CmdStartinsert
	CmdStopinsert
	CmdSubstitute
	CmdSunmap
	CmdSunmenu
	CmdSuspend
	CmdSyntax
	CmdT
	CmdTab
	CmdTabclose
	CmdTabdo
	CmdTabedit
	CmdTabnew
	CmdTabnext
	CmdTabprevious
	CmdTcd
	CmdTerminal
	CmdThrow
	CmdTlmenu
	CmdTlnoremenu
	CmdTlunmenu
	CmdTmap
	CmdTnoremap
	CmdTopleft
	CmdTry
	CmdTunmap
	CmdUnabbreviate
	CmdUndo
	CmdUndojoin
	CmdUnhide
	CmdUnlet
	CmdUnlockvar
	CmdUnmap
	CmdUnmenu
	CmdUnsilent
	CmdUpdate
	CmdVglobal
	CmdVerbose
	CmdVertical
	CmdView
	CmdVimgrep
	CmdVimgrepadd
	CmdVisual
	CmdVmap
	CmdVmapclear
	CmdVmenu
	CmdVnew
	CmdVnoremap
	CmdVnoremenu
	CmdVsplit
	CmdVunmap
	CmdVunmenu
	CmdWall
	CmdWhile
	CmdWincmd
	CmdWindo
	CmdWnext
	CmdWq
	CmdWqall
	CmdWrite
	CmdXall
	CmdXit
	CmdXmap
	CmdXmenu
	CmdXnoremap
	CmdXnoremenu
	CmdXunmap
	CmdXunmenu
	CmdYank
	CmdZ

	cmdCount
)

var definitions = [cmdCount]Definition{
	CmdSyntaxError:   {spec: "SyntaxError", Parser: ParseError},
	CmdUser:          {spec: "User", Flags: FlagRange | FlagBang | FlagCount | FlagExtra | FlagNotRlCom, Parser: ParseUser},
	CmdComment:       {spec: "\"", Flags: FlagExtra | FlagNotRlCom, Parser: ParseComment},
	CmdGoto:          {spec: "Goto", Flags: FlagRange | FlagTrlBar, Parser: ParseNone},
	CmdBang:          {spec: "!", Flags: FlagRange | FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseText},
	CmdAnd:           {spec: "&", Flags: FlagRange | FlagExtra | FlagTrlBar | FlagCount, Parser: ParseSubRepeat},
	CmdTilde:         {spec: "~", Flags: FlagRange | FlagExtra | FlagTrlBar | FlagCount, Parser: ParseSubRepeat},
	CmdShiftLeft:     {spec: "<", Flags: FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseShift},
	CmdShiftRight:    {spec: ">", Flags: FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseShift},
	CmdEqual:         {spec: "=", Flags: FlagRange | FlagTrlBar | FlagExFlags, Parser: ParseNone},
	CmdAt:            {spec: "@", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseNone},
	CmdStar:          {spec: "*", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseNone},
	CmdAppend:        {spec: "a[ppend]", Flags: FlagRange | FlagBang | FlagZeroR | FlagTrlBar, Parser: ParseLines},
	CmdAbbreviate:    {spec: "ab[breviate]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdAbclear:       {spec: "abc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdAboveleft:     {spec: "abo[veleft]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdAll:           {spec: "al[l]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdAmenu:         {spec: "am[enu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdAnoremenu:     {spec: "an[oremenu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdArgadd:        {spec: "arga[dd]", Flags: FlagBang | FlagRange | FlagZeroR | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFiles},
	CmdArgdelete:     {spec: "argd[elete]", Flags: FlagBang | FlagRange | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFiles},
	CmdArgdo:         {spec: "argdo", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdArgedit:       {spec: "arge[dit]", Flags: fileFlags | FlagRange | FlagZeroR, Parser: ParseFiles},
	CmdArgs:          {spec: "ar[gs]", Flags: fileFlags, Parser: ParseFiles},
	CmdArgument:      {spec: "argu[ment]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFiles},
	CmdAugroup:       {spec: "aug[roup]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdAunmenu:       {spec: "aun[menu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdAutocmd:       {spec: "au[tocmd]", Flags: FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseAutocmd},
	CmdBadd:          {spec: "bad[d]", Flags: FlagNeedArg | FlagXFile | FlagExtra | FlagTrlBar | FlagEditCmd, Parser: ParseFile},
	CmdBdelete:       {spec: "bd[elete]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdBelowright:    {spec: "bel[owright]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdBnext:         {spec: "bn[ext]", Flags: FlagBang | FlagRange | FlagCount | FlagEditCmd | FlagTrlBar, Parser: ParseFiles},
	CmdBotright:      {spec: "bo[tright]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdBprevious:     {spec: "bp[revious]", Flags: FlagBang | FlagRange | FlagCount | FlagEditCmd | FlagTrlBar, Parser: ParseFiles},
	CmdBreak:         {spec: "brea[k]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdBrowse:        {spec: "bro[wse]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdBuffer:        {spec: "b[uffer]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagEditCmd | FlagTrlBar, Parser: ParseBuffer},
	CmdBufdo:         {spec: "bufdo", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdBuffers:       {spec: "buffers", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdBwipeout:      {spec: "bw[ipeout]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdCabbrev:       {spec: "ca[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCabclear:      {spec: "cabc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdCall:          {spec: "cal[l]", Flags: FlagRange | FlagNeedArg | FlagExtra, Parser: ParseExpr},
	CmdCatch:         {spec: "cat[ch]", Flags: FlagExtra, Parser: ParseCatch},
	CmdCd:            {spec: "cd", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdCdo:           {spec: "cdo", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdCenter:        {spec: "ce[nter]", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseNumber},
	CmdCfdo:          {spec: "cfd[o]", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdChange:        {spec: "c[hange]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseLines},
	CmdChdir:         {spec: "chd[ir]", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdClist:         {spec: "cl[ist]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdClose:         {spec: "clo[se]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdCmap:          {spec: "cm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCmapclear:     {spec: "cmapc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdCmenu:         {spec: "cme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdCnext:         {spec: "cn[ext]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdCnoreabbrev:   {spec: "cnorea[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCnoremap:      {spec: "cno[remap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCnoremenu:     {spec: "cnoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdColorscheme:   {spec: "colo[rscheme]", Flags: FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdComclear:      {spec: "comc[lear]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdCommand:       {spec: "com[mand]", Flags: FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseUserCommand},
	CmdCompiler:      {spec: "comp[iler]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdConfirm:       {spec: "conf[irm]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdContinue:      {spec: "con[tinue]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdCopen:         {spec: "cope[n]", Flags: FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdCopy:          {spec: "co[py]", Flags: FlagRange | FlagExtra | FlagExFlags | FlagTrlBar, Parser: ParseAddress},
	CmdCprevious:     {spec: "cp[revious]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdCquit:         {spec: "cq[uit]", Flags: FlagBang | FlagRange | FlagCount | FlagZeroR | FlagTrlBar, Parser: ParseNone},
	CmdCunabbrev:     {spec: "cuna[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCunmap:        {spec: "cu[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdCunmenu:       {spec: "cunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdDelcommand:    {spec: "delc[ommand]", Flags: FlagBang | FlagNeedArg | FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdDelete:        {spec: "d[elete]", Flags: FlagRange | FlagRegStr | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseNone},
	CmdDelfunction:   {spec: "delf[unction]", Flags: FlagBang | FlagNeedArg | FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdDelmarks:      {spec: "delm[arks]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdDiffupdate:    {spec: "dif[fupdate]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdDisplay:       {spec: "di[splay]", Flags: FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdDoautoall:     {spec: "doautoa[ll]", Flags: FlagExtra | FlagTrlBar, Parser: ParseDoautocmd},
	CmdDoautocmd:     {spec: "do[autocmd]", Flags: FlagExtra | FlagTrlBar, Parser: ParseDoautocmd},
	CmdEcho:          {spec: "ec[ho]", Flags: FlagExtra, Parser: ParseExprs},
	CmdEchoerr:       {spec: "echoe[rr]", Flags: FlagExtra, Parser: ParseExprs},
	CmdEchohl:        {spec: "echoh[l]", Flags: FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdEchomsg:       {spec: "echom[sg]", Flags: FlagExtra, Parser: ParseExprs},
	CmdEchon:         {spec: "echon", Flags: FlagExtra, Parser: ParseExprs},
	CmdEdit:          {spec: "e[dit]", Flags: fileFlags, Parser: ParseFile},
	CmdElse:          {spec: "el[se]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdElseif:        {spec: "elsei[f]", Flags: FlagExtra | FlagNeedArg, Parser: ParseExpr},
	CmdEndfor:        {spec: "endfo[r]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdEndfunction:   {spec: "endf[unction]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdEndif:         {spec: "en[dif]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdEndtry:        {spec: "endt[ry]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdEndwhile:      {spec: "endw[hile]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdEnew:          {spec: "ene[w]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdExecute:       {spec: "exe[cute]", Flags: FlagExtra | FlagNeedArg, Parser: ParseExprs},
	CmdExit:          {spec: "exi[t]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdFile:          {spec: "f[ile]", Flags: FlagRange | FlagZeroR | FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdFiletype:      {spec: "filet[ype]", Flags: FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdFilter:        {spec: "filt[er]", Flags: FlagBang | FlagModifier | FlagNeedArg | FlagExtra, Parser: ParseFilter},
	CmdFinally:       {spec: "fina[lly]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdFind:          {spec: "fin[d]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdFinish:        {spec: "fini[sh]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdFold:          {spec: "fo[ld]", Flags: FlagRange | FlagTrlBar, Parser: ParseNone},
	CmdFoldclose:     {spec: "foldc[lose]", Flags: FlagRange | FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdFolddoclosed:  {spec: "folddoc[losed]", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdFolddoopen:    {spec: "foldd[oopen]", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdFoldopen:      {spec: "foldo[pen]", Flags: FlagRange | FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdFor:           {spec: "for", Flags: FlagExtra | FlagNeedArg, Parser: ParseFor},
	CmdFunction:      {spec: "fu[nction]", Flags: FlagExtra | FlagBang, Parser: ParseFunction},
	CmdGlobal:        {spec: "g[lobal]", Flags: FlagRange | FlagBang | FlagExtra | FlagZeroR, Parser: ParseGlobal},
	CmdGotoByte:      {spec: "go[to]", Flags: FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdHelp:          {spec: "h[elp]", Flags: FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseText},
	CmdHelptags:      {spec: "helpt[ags]", Flags: FlagNeedArg | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFiles},
	CmdHide:          {spec: "hid[e]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagModifier, Parser: ParseModifier},
	CmdHighlight:     {spec: "hi[ghlight]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseHighlight},
	CmdHistory:       {spec: "his[tory]", Flags: FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdIabbrev:       {spec: "ia[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdIabclear:      {spec: "iabc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdIf:            {spec: "if", Flags: FlagExtra | FlagNeedArg, Parser: ParseExpr},
	CmdImap:          {spec: "im[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdImapclear:     {spec: "imapc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdImenu:         {spec: "ime[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdInoreabbrev:   {spec: "inorea[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdInoremap:      {spec: "ino[remap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdInoremenu:     {spec: "inoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdInsert:        {spec: "i[nsert]", Flags: FlagBang | FlagRange | FlagTrlBar, Parser: ParseLines},
	CmdIunabbrev:     {spec: "iuna[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdIunmap:        {spec: "iu[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdIunmenu:       {spec: "iunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdJoin:          {spec: "j[oin]", Flags: FlagBang | FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseNone},
	CmdJumps:         {spec: "ju[mps]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdK:             {spec: "k", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseMark},
	CmdKeepalt:       {spec: "keepa[lt]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdKeepjumps:     {spec: "keepj[umps]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdKeepmarks:     {spec: "kee[pmarks]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdKeeppatterns:  {spec: "keepp[atterns]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdLanguage:      {spec: "lan[guage]", Flags: FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdLcd:           {spec: "lc[d]", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdLchdir:        {spec: "lch[dir]", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdLdo:           {spec: "ld[o]", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdLeft:          {spec: "le[ft]", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseNumber},
	CmdLeftabove:     {spec: "lefta[bove]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdLet:           {spec: "let", Flags: FlagExtra, Parser: ParseLet},
	CmdLfdo:          {spec: "lfdo", Flags: FlagBang | FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdList:          {spec: "l[ist]", Flags: FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseNone},
	CmdLmap:          {spec: "lm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdLnoremap:      {spec: "ln[oremap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdLockmarks:     {spec: "loc[kmarks]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdLockvar:       {spec: "lockv[ar]", Flags: FlagBang | FlagExtra | FlagNeedArg, Parser: ParseLvals},
	CmdLs:            {spec: "ls", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdLua:           {spec: "lua", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseScript},
	CmdLunmap:        {spec: "lu[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdLvimgrep:      {spec: "lv[imgrep]", Flags: FlagRange | FlagBang | FlagNeedArg | FlagExtra | FlagXFile | FlagTrlBar, Parser: ParseVimgrep},
	CmdLvimgrepadd:   {spec: "lvimgrepa[dd]", Flags: FlagRange | FlagBang | FlagNeedArg | FlagExtra | FlagXFile | FlagTrlBar, Parser: ParseVimgrep},
	CmdMake:          {spec: "mak[e]", Flags: FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseText},
	CmdMap:           {spec: "map", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdMapclear:      {spec: "mapc[lear]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdMark:          {spec: "ma[rk]", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseMark},
	CmdMarks:         {spec: "marks", Flags: FlagExtra | FlagTrlBar, Parser: ParseWords},
	CmdMatch:         {spec: "mat[ch]", Flags: FlagRange | FlagExtra, Parser: ParseMatch},
	CmdMenu:          {spec: "me[nu]", Flags: FlagRange | FlagZeroR | FlagBang | FlagExtra, Parser: ParseMenu},
	CmdMenutranslate: {spec: "menut[ranslate]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMenutranslate},
	CmdMessages:      {spec: "mes[sages]", Flags: FlagExtra | FlagTrlBar | FlagRange, Parser: ParseText},
	CmdMove:          {spec: "m[ove]", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseAddress},
	CmdNew:           {spec: "new", Flags: FlagBang | FlagXFile | FlagRange | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdNext:          {spec: "n[ext]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFiles},
	CmdNmap:          {spec: "nm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdNmapclear:     {spec: "nmapc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdNmenu:         {spec: "nme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdNnoremap:      {spec: "nn[oremap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdNnoremenu:     {spec: "nnoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdNoautocmd:     {spec: "noa[utocmd]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdNohlsearch:    {spec: "noh[lsearch]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdNoreabbrev:    {spec: "norea[bbrev]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdNoremap:       {spec: "no[remap]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdNoremenu:      {spec: "noreme[nu]", Flags: FlagRange | FlagZeroR | FlagBang | FlagExtra, Parser: ParseMenu},
	CmdNormal:        {spec: "norm[al]", Flags: FlagRange | FlagBang | FlagExtra | FlagNeedArg | FlagNotRlCom, Parser: ParseText},
	CmdNoswapfile:    {spec: "nos[wapfile]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdNumber:        {spec: "nu[mber]", Flags: FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseNone},
	CmdNunmap:        {spec: "nun[map]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdNunmenu:       {spec: "nunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdOmap:          {spec: "om[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdOmenu:         {spec: "ome[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdOnly:          {spec: "on[ly]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdOnoremap:      {spec: "ono[remap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdOnoremenu:     {spec: "onoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdOunmap:        {spec: "ou[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdOunmenu:       {spec: "ounme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdPackadd:       {spec: "pa[ckadd]", Flags: FlagBang | FlagNeedArg | FlagExtra | FlagTrlBar, Parser: ParseName},
	CmdPerl:          {spec: "pe[rl]", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseScript},
	CmdPrevious:      {spec: "prev[ious]", Flags: FlagExtra | FlagRange | FlagCount | FlagBang | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFiles},
	CmdPrint:         {spec: "p[rint]", Flags: FlagRange | FlagCount | FlagExFlags | FlagTrlBar, Parser: ParseNone},
	CmdPut:           {spec: "pu[t]", Flags: FlagRange | FlagBang | FlagRegStr | FlagZeroR | FlagTrlBar, Parser: ParseNone},
	CmdPwd:           {spec: "pw[d]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdPython:        {spec: "py[thon]", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseScript},
	CmdPython3:       {spec: "py3", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseScript},
	CmdQall:          {spec: "qa[ll]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdQuit:          {spec: "q[uit]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdQuitall:       {spec: "quita[ll]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdRead:          {spec: "r[ead]", Flags: FlagBang | FlagRange | FlagZeroR | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseRead},
	CmdRedir:         {spec: "redi[r]", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdRedo:          {spec: "red[o]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdRedraw:        {spec: "redr[aw]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdRegisters:     {spec: "reg[isters]", Flags: FlagExtra | FlagNotRlCom | FlagTrlBar, Parser: ParseText},
	CmdRetab:         {spec: "ret[ab]", Flags: FlagTrlBar | FlagRange | FlagBang | FlagExtra, Parser: ParseNumber},
	CmdReturn:        {spec: "retu[rn]", Flags: FlagExtra, Parser: ParseOptExpr},
	CmdRewind:        {spec: "rew[ind]", Flags: FlagExtra | FlagBang | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFiles},
	CmdRight:         {spec: "ri[ght]", Flags: FlagRange | FlagExtra | FlagTrlBar, Parser: ParseNumber},
	CmdRightbelow:    {spec: "rightb[elow]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdRuby:          {spec: "rub[y]", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseScript},
	CmdRuntime:       {spec: "ru[ntime]", Flags: FlagBang | FlagNeedArg | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFiles},
	CmdSandbox:       {spec: "san[dbox]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdSaveas:        {spec: "sav[eas]", Flags: FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdSargument:     {spec: "sa[rgument]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFiles},
	CmdSbuffer:       {spec: "sb[uffer]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagEditCmd | FlagTrlBar, Parser: ParseBuffer},
	CmdScriptnames:   {spec: "scr[iptnames]", Flags: FlagBang | FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdSet:           {spec: "se[t]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseSet},
	CmdSetfiletype:   {spec: "setf[iletype]", Flags: FlagTrlBar | FlagExtra | FlagNeedArg, Parser: ParseName},
	CmdSetglobal:     {spec: "setg[lobal]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseSet},
	CmdSetlocal:      {spec: "setl[ocal]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseSet},
	CmdSfind:         {spec: "sf[ind]", Flags: FlagBang | FlagXFile | FlagRange | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdShell:         {spec: "sh[ell]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdSign:          {spec: "sig[n]", Flags: FlagNeedArg | FlagRange | FlagExtra | FlagNotRlCom, Parser: ParseSign},
	CmdSilent:        {spec: "sil[ent]", Flags: FlagNeedArg | FlagExtra | FlagBang | FlagModifier, Parser: ParseModifier},
	CmdSleep:         {spec: "sl[eep]", Flags: FlagBang | FlagRange | FlagCount | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdSmagic:        {spec: "sm[agic]", Flags: FlagRange | FlagExtra | FlagCount, Parser: ParseSubstitute},
	CmdSmap:          {spec: "smap", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdSmapclear:     {spec: "smapc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdSmenu:         {spec: "sme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdSnomagic:      {spec: "sno[magic]", Flags: FlagRange | FlagExtra | FlagCount, Parser: ParseSubstitute},
	CmdSnoremap:      {spec: "snor[emap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdSnoremenu:     {spec: "snoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdSort:          {spec: "sor[t]", Flags: FlagRange | FlagBang | FlagExtra, Parser: ParseSort},
	CmdSource:        {spec: "so[urce]", Flags: FlagBang | FlagFile1 | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdSplit:         {spec: "sp[lit]", Flags: FlagBang | FlagXFile | FlagRange | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdStartinsert:   {spec: "star[tinsert]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdStopinsert:    {spec: "stopi[nsert]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdSubstitute:    {spec: "s[ubstitute]", Flags: FlagRange | FlagExtra | FlagCount, Parser: ParseSubstitute},
	CmdSunmap:        {spec: "sunm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdSunmenu:       {spec: "sunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdSuspend:       {spec: "sus[pend]", Flags: FlagTrlBar | FlagBang, Parser: ParseNone},
	CmdSyntax:        {spec: "sy[ntax]", Flags: FlagExtra | FlagNotRlCom, Parser: ParseSyntax},
	CmdT:             {spec: "t", Flags: FlagRange | FlagExtra | FlagExFlags | FlagTrlBar, Parser: ParseAddress},
	CmdTab:           {spec: "tab", Flags: FlagModifier | FlagNeedArg | FlagRange | FlagCount | FlagZeroR, Parser: ParseModifier},
	CmdTabclose:      {spec: "tabc[lose]", Flags: FlagBang | FlagRange | FlagCount | FlagZeroR | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdTabdo:         {spec: "tabdo", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdTabedit:       {spec: "tabe[dit]", Flags: FlagBang | FlagXFile | FlagRange | FlagZeroR | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdTabnew:        {spec: "tabnew", Flags: FlagBang | FlagXFile | FlagRange | FlagZeroR | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdTabnext:       {spec: "tabn[ext]", Flags: FlagRange | FlagZeroR | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdTabprevious:   {spec: "tabp[revious]", Flags: FlagRange | FlagZeroR | FlagExtra | FlagTrlBar, Parser: ParseText},
	CmdTcd:           {spec: "tc[d]", Flags: FlagBang | FlagXFile | FlagExtra | FlagTrlBar, Parser: ParseFile},
	CmdTerminal:      {spec: "ter[minal]", Flags: FlagRange | FlagBang | FlagExtra | FlagNotRlCom, Parser: ParseText},
	CmdThrow:         {spec: "th[row]", Flags: FlagExtra | FlagNeedArg, Parser: ParseExpr},
	CmdTlmenu:        {spec: "tlm[enu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdTlnoremenu:    {spec: "tln[oremenu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdTlunmenu:      {spec: "tlu[nmenu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdTmap:          {spec: "tma[p]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdTnoremap:      {spec: "tno[remap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdTopleft:       {spec: "to[pleft]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdTry:           {spec: "try", Flags: FlagTrlBar, Parser: ParseNone},
	CmdTunmap:        {spec: "tunma[p]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdUnabbreviate:  {spec: "una[bbreviate]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdUndo:          {spec: "u[ndo]", Flags: FlagRange | FlagCount | FlagZeroR | FlagTrlBar, Parser: ParseNone},
	CmdUndojoin:      {spec: "undoj[oin]", Flags: FlagTrlBar, Parser: ParseNone},
	CmdUnhide:        {spec: "unh[ide]", Flags: FlagRange | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdUnlet:         {spec: "unl[et]", Flags: FlagBang | FlagExtra | FlagNeedArg, Parser: ParseLvals},
	CmdUnlockvar:     {spec: "unlo[ckvar]", Flags: FlagBang | FlagExtra | FlagNeedArg, Parser: ParseLvals},
	CmdUnmap:         {spec: "unm[ap]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdUnmenu:        {spec: "unme[nu]", Flags: FlagBang | FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdUnsilent:      {spec: "uns[ilent]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdUpdate:        {spec: "up[date]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdVglobal:       {spec: "v[global]", Flags: FlagRange | FlagExtra | FlagZeroR, Parser: ParseGlobal},
	CmdVerbose:       {spec: "verb[ose]", Flags: FlagModifier | FlagNeedArg | FlagRange | FlagCount | FlagZeroR | FlagExtra, Parser: ParseModifier},
	CmdVertical:      {spec: "vert[ical]", Flags: FlagModifier | FlagNeedArg, Parser: ParseModifier},
	CmdView:          {spec: "vie[w]", Flags: fileFlags, Parser: ParseFile},
	CmdVimgrep:       {spec: "vim[grep]", Flags: FlagRange | FlagBang | FlagNeedArg | FlagExtra | FlagXFile | FlagTrlBar, Parser: ParseVimgrep},
	CmdVimgrepadd:    {spec: "vimgrepa[dd]", Flags: FlagRange | FlagBang | FlagNeedArg | FlagExtra | FlagXFile | FlagTrlBar, Parser: ParseVimgrep},
	CmdVisual:        {spec: "vi[sual]", Flags: fileFlags, Parser: ParseFile},
	CmdVmap:          {spec: "vm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdVmapclear:     {spec: "vmapc[lear]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMapclear},
	CmdVmenu:         {spec: "vme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdVnew:          {spec: "vne[w]", Flags: FlagBang | FlagXFile | FlagRange | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdVnoremap:      {spec: "vn[oremap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdVnoremenu:     {spec: "vnoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdVsplit:        {spec: "vs[plit]", Flags: FlagBang | FlagXFile | FlagRange | FlagExtra | FlagEditCmd | FlagArgOpt | FlagTrlBar, Parser: ParseFile},
	CmdVunmap:        {spec: "vu[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdVunmenu:       {spec: "vunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdWall:          {spec: "wa[ll]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdWhile:         {spec: "wh[ile]", Flags: FlagExtra | FlagNeedArg, Parser: ParseExpr},
	CmdWincmd:        {spec: "winc[md]", Flags: FlagNeedArg | FlagExtra | FlagRange | FlagCount, Parser: ParseText},
	CmdWindo:         {spec: "windo", Flags: FlagRange | FlagExtra | FlagNeedArg, Parser: ParseCommand},
	CmdWnext:         {spec: "wn[ext]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdWq:            {spec: "wq", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdWqall:         {spec: "wqa[ll]", Flags: FlagBang | FlagArgOpt | FlagTrlBar, Parser: ParseNone},
	CmdWrite:         {spec: "w[rite]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdXall:          {spec: "xa[ll]", Flags: FlagBang | FlagTrlBar, Parser: ParseNone},
	CmdXit:           {spec: "x[it]", Flags: FlagRange | FlagBang | FlagXFile | FlagExtra | FlagArgOpt | FlagTrlBar, Parser: ParseWrite},
	CmdXmap:          {spec: "xm[ap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdXmenu:         {spec: "xme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdXnoremap:      {spec: "xn[oremap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdXnoremenu:     {spec: "xnoreme[nu]", Flags: FlagRange | FlagZeroR | FlagExtra, Parser: ParseMenu},
	CmdXunmap:        {spec: "xu[nmap]", Flags: FlagExtra | FlagTrlBar, Parser: ParseMap},
	CmdXunmenu:       {spec: "xunme[nu]", Flags: FlagExtra | FlagTrlBar, Parser: ParseUnmenu},
	CmdYank:          {spec: "y[ank]", Flags: FlagRange | FlagRegStr | FlagCount | FlagTrlBar, Parser: ParseNone},
	CmdZ:             {spec: "z", Flags: FlagRange | FlagExtra | FlagExFlags | FlagTrlBar, Parser: ParseText},
}

// aliases are spellings that do not follow the "abbrev[rest]" rule.
var aliases = map[string]CommandType{
	"python3": CmdPython3,
	"#":       CmdNumber,
}

var (
	byFirstLetter [128][]*Definition
	byName        = make(map[string]CommandType, cmdCount)
)

func init() {
	for i := range definitions {
		d := &definitions[i]
		if d.spec == "" {
			continue
		}
		d.Type = CommandType(i)
		d.Name, d.MinLen = splitSpec(d.spec)
		d.Args = d.Parser.Slots()
		byName[d.Name] = d.Type
		c := d.Name[0]
		if c < 128 && isLetter(c) && d.Type > CmdGoto {
			byFirstLetter[c] = append(byFirstLetter[c], d)
		}
	}
}

// splitSpec turns "s[ubstitute]" into ("substitute", 1).
func splitSpec(spec string) (string, int) {
	open := strings.IndexByte(spec, '[')
	if open < 0 {
		return spec, len(spec)
	}
	return spec[:open] + strings.Trim(spec[open:], "[]"), open
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Lookup returns the definition of t. It returns nil for CmdNone and for
// out-of-range values.
func Lookup(t CommandType) *Definition {
	if t == CmdNone || int(t) >= len(definitions) {
		return nil
	}
	return &definitions[t]
}

// Find resolves a typed command word to a builtin command. The word matches a
// command when it is a prefix of the full name at least MinLen long; the first
// match in table order wins.
func Find(word string) (CommandType, bool) {
	if t, ok := aliases[word]; ok {
		return t, true
	}
	if word == "" || word[0] >= 128 {
		return CmdNone, false
	}
	for _, d := range byFirstLetter[word[0]] {
		if len(word) >= d.MinLen && strings.HasPrefix(d.Name, word) {
			return d.Type, true
		}
	}
	return CmdNone, false
}

// FindSymbol resolves the single-character commands such as "!" or "&".
func FindSymbol(c byte) (CommandType, bool) {
	if t, ok := aliases[string(c)]; ok {
		return t, true
	}
	switch c {
	case '!', '&', '~', '<', '>', '=', '@', '*':
		return byName[string(c)], true
	}
	return CmdNone, false
}

// FindExact returns the command whose canonical name is name.
func FindExact(name string) (CommandType, bool) {
	t, ok := byName[name]
	return t, ok
}

// Names returns the canonical names of the builtin commands that start with
// a letter, in table order.
func Names() []string {
	var out []string
	for i := range definitions {
		d := &definitions[i]
		if d.Name != "" && isLetter(d.Name[0]) && d.Type > CmdGoto {
			out = append(out, d.Name)
		}
	}
	return out
}

// CommandModifiers returns the definitions of every command modifier.
func CommandModifiers() []*Definition {
	var out []*Definition
	for i := range definitions {
		if definitions[i].IsModifier() {
			out = append(out, &definitions[i])
		}
	}
	return out
}

// String returns the canonical command name.
func (t CommandType) String() string {
	if d := Lookup(t); d != nil && d.Name != "" {
		return d.Name
	}
	return "none"
}
