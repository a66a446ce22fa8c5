package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/exparse/core/ast"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Substitution
		{"substitute with another delimiter", "s#a/b#c#", `substitute re(a/b) repl("c")`},
		{"substitute replacement atoms", `s/\(a\)/\1&~\u/`, `substitute re(\(a\)) repl(\1 & ~ \u)`},
		{"substitute expression", `s/a/\=submatch(0)*2/`, `substitute re(a) repl(\=submatch(0)*2)`},
		{"substitute with the last pattern", "s//x/", `substitute repl("x")`},
		{"substitute count", "s/x/y/ 3", `substitute count=3 re(x) repl("y")`},
		{"snomagic keeps tilde literal", "snomagic/a~/b~/", `snomagic re(a~) repl("b~")`},
		{"repeat with flags", "&&", "& subflags(&)"},
		{"substitute then another command", "s/a/b/g | echo 1", `substitute re(a) repl("b") subflags(g)` + "\necho exprs(1)"},

		// Global and pattern commands
		{"inverted global", "g!/x/s/a/b/", `global! re(x) {substitute re(a) repl("b")}`},
		{"vglobal", "v/^$/d", "vglobal re(^$) {delete}"},
		{"vimgrep", "vimgrep /foo/gj **/*.go", "vimgrep re(foo) flags(g j) globs(**/*.go)"},
		{"sort", `sort! n /\d\+/`, `sort! flags(n) re(\d\+)`},

		// Files
		{"edit with a line command", "edit +42 foo.txt", "edit {Goto range=42} glob(foo.txt)"},
		{"edit with options and modifiers", "e ++enc=utf-8 %:p:h", "edit opts(++enc=utf-8) glob(%:p:h)"},
		{"write appending", "w >> log.txt", "write append(log.txt)"},
		{"write to a command", "w !sort", "write filter(sort)"},
		{"read from a command", "r !ls", "read filter(ls)"},
		{"read bang is a filter", "3r!ls", "read range=3 filter(ls)"},
		{"buffer jump to the last line", "b+", "buffer {Goto range=$}"},
		{"sbuffer with a line command and a count", "sb +42 3", "sbuffer count=3 {Goto range=42}"},
		{"buffer by name", "b foo.c", "buffer str(foo.c)"},

		// Options and highlighting
		{"comment after set", `set ic " case`, "set set(ic)"},
		{"highlight define", "highlight Comment ctermfg=12 guifg=#ff0000 gui=bold,italic", "highlight hl(Comment ctermfg=12 guifg=#ff0000 gui=bold,italic)"},
		{"highlight link", "hi! default link Foo Bar", "highlight! hl(default link Foo Bar)"},
		{"highlight clear", "hi clear", "highlight hl(clear)"},

		// Syntax and signs
		{"syntax keyword", "syn keyword vimTodo contained TODO FIXME", "syntax syn(keyword vimTodo contained TODO FIXME)"},
		{"syntax region", "syn region xString matchgroup=xQuote start=+'+ end=+'+ oneline", "syntax syn(region xString oneline matchgroup=xQuote start=+'+ matchgroup=xQuote end=+'+)"},
		{"syntax setting without a value", "syntax case", "syntax syn(case)"},
		{"sign define", "sign define foo text=>> texthl=Error", "sign sign(define foo text=>> texthl=Error)"},
		{"sign place", "sign place 10 line=3 name=foo file=a.c", "sign sign(place id=10 line=3 name=foo file=a.c)"},

		// User commands, autocommands, mappings and menus
		{"user command definition", "command! -nargs=* -bang Foo echo <q-args>", "command! usercmd(-nargs=* -bang Foo => echo <q-args>)"},
		{"augroup", "augroup foo", "augroup str(foo)"},
		{"autocmd with group and flag", "autocmd! foo BufWritePre *.go ++once call Fmt()", "autocmd! str(foo) events(BufWritePre) pat(*.go) flags(++once) {call expr(Fmt())}"},
		{"doautocmd", "doautocmd <nomodeline> BufRead x.c", "doautocmd flags(<nomodeline>) events(BufRead) glob(x.c)"},
		{"buffer mapping", "nmap <buffer> <F5> :make<CR>", "nmap flags(<buffer>) map(<F5> => :make<CR>)"},
		{"unmap", "nunmap <F5>", "nunmap map(<F5>)"},
		{"menu", "menu <silent> 10.20 &File.&Save<Tab>:w :w<CR>", "menu flags(<silent>) nums(10.20) menu(File.Save<Tab>:w) str(:w<CR>)"},
		{"unmenu everything", "unmenu *", "unmenu menu(*)"},

		// Variables and expressions
		{"let unpacking", "let [a, b] = [1, 2]", "let let([a, b] = [1, 2])"},
		{"let listing", "let a b c", "let let(a b c)"},
		{"let with operator", "let g:x .= 'y'", "let let(g:x .= 'y')"},
		{"unlet several", "unlet! g:a b:c", "unlet! exprs(g:a; b:c)"},
		{"call then echo", "call F(1, 2) | echo 3", "call expr(F(1, 2))\necho exprs(3)"},
		{"execute several", "execute 'normal' 'x'", "execute exprs('normal'; 'x')"},
		{"echo nothing", "echo", "echo"},

		// Registers, counts and addresses
		{"put a register", "put a", "put reg=a"},
		{"put the expression register", "put =range(3)", "put reg==(range(3))"},
		{"yank register and count", "3y a 2", "yank range=3 count=2 reg=a"},
		{"delete count", "d 3", "delete count=3"},
		{"copy to line zero", "copy 0", "copy addr(0)"},
		{"t to the current line", "t.", "t addr(.)"},
		{"move to the end", "m$", "move addr($)"},
		{"repeated shift", ">>> 2", "> count=2 num(3)"},
		{"k mark", "ka", "k char(a)"},
		{"mark", "mark b", "mark char(b)"},

		// Modifiers and text arguments
		{"normal keeps bars", "normal! dd|x", "normal! str(dd|x)"},
		{"filter", "filter! /x/ set", "filter! re(x) {set}"},
		{"verbose count", "2verbose set ic", "verbose count=2 {set set(ic)}"},
		{"script heredoc", "py3 << EOF\nprint(1)\nEOF", "py3 lines(EOF:1)"},
		{"inline script", "lua print(1)", "lua str(print(1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want+"\n", ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
			if tree.HasErrors() {
				t.Errorf("unexpected errors: %v", tree.Errors)
			}
		})
	}
}

func TestMagicOption(t *testing.T) {
	tests := []struct {
		name  string
		magic bool
		want  string
	}{
		{"magic", true, `substitute re(a) repl(& "x")`},
		{"nomagic", false, `substitute re(a) repl("&x")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, "s/a/&x/", WithMagic(tt.magic))
			if diff := cmp.Diff(tt.want+"\n", ast.Format(tree.Commands)); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMenuShortcut(t *testing.T) {
	tree := mustParse(t, "amenu &Edit.&&Copy y")
	mp, ok := slotOf[*ast.MenuPathArg](tree.Commands)
	if !ok {
		t.Fatal("no menu path slot")
	}
	want := []ast.MenuItem{
		{Name: "Edit", Shortcut: 'E'},
		{Name: "&Copy"},
	}
	if diff := cmp.Diff(want, mp.Items); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingKeys(t *testing.T) {
	tree := mustParse(t, "inoremap <C-x><lt>a <Esc>")
	ma, ok := slotOf[*ast.MappingArg](tree.Commands)
	if !ok {
		t.Fatal("no mapping slot")
	}
	if diff := cmp.Diff("<C-x><lt>a", ma.LHS.Raw); diff != "" {
		t.Errorf("LHS mismatch (-want +got):\n%s", diff)
	}
	if len(ma.LHS.Keys) != 3 {
		t.Errorf("got %d LHS keys, want 3: %+v", len(ma.LHS.Keys), ma.LHS.Keys)
	}
	if len(ma.RHS.Keys) != 1 || ma.RHS.Keys[0].Name != "Esc" {
		t.Errorf("got RHS keys %+v, want a single Esc", ma.RHS.Keys)
	}
}

func TestHeredocTrim(t *testing.T) {
	tree := mustParse(t, "let x =<< trim eval END\n    a\n      b\n  END")
	la := slot[*ast.LinesArg](tree.Commands, 1)
	want := &ast.LinesArg{Marker: "END", Trim: true, Eval: true, Lines: []string{"a", "  b"}}
	if diff := cmp.Diff(want, la); diff != "" {
		t.Errorf("LinesArg mismatch (-want +got):\n%s", diff)
	}
}
