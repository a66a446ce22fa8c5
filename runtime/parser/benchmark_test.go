package parser

import (
	"fmt"
	"strings"
	"testing"
)

// vimrc builds a script of n repetitions of a typical configuration block.
func vimrc(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\" section %d\n", i)
		b.WriteString("set nocompatible ts=4 sw=4 et\n")
		b.WriteString("augroup ft\n  au! BufRead,BufNewFile *.go setlocal noet | let b:x = 1\naugroup END\n")
		fmt.Fprintf(&b, "function! F%d(a, ...) abort\n", i)
		b.WriteString("  for x in a:000\n    if x > 1\n      call add(l, x)\n    endif\n  endfor\n")
		b.WriteString("  return l\nendfunction\n")
		b.WriteString("nnoremap <silent> <leader>f :call F(1)<CR>\n")
		b.WriteString("%s/\\s\\+$//e\n")
		b.WriteString("hi Comment ctermfg=12 guifg=#888888\n")
	}
	return b.String()
}

func BenchmarkParse(b *testing.B) {
	sizes := []int{1, 10, 100}
	for _, n := range sizes {
		src := vimrc(n)
		b.Run(fmt.Sprintf("blocks=%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ParseString(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseTelemetry(b *testing.B) {
	src := vimrc(10)
	modes := []struct {
		name string
		opts []ParserOpt
	}{
		{"off", nil},
		{"basic", []ParserOpt{WithTelemetryBasic()}},
		{"timing", []ParserOpt{WithTelemetryTiming()}},
	}
	for _, m := range modes {
		b.Run(m.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ParseString(src, m.opts...); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseLine(b *testing.B) {
	lines := []string{
		"%s/foo/bar/g",
		"set ic hls is",
		"g/^$/d",
		"call F(1, [2, 3], {'a': 4})",
	}
	for _, line := range lines {
		b.Run(line, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ParseLine(line); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
