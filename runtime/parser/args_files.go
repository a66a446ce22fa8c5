package parser

import (
	"github.com/aledsdavies/exparse/core/ast"
)

// parseFilesArg reads a list of file arguments.
func (p *parser) parseFilesArg(node *ast.CommandNode, def *ast.Definition) error {
	files, err := p.parseGlobs(def)
	if err != nil {
		return err
	}
	slot[*ast.GlobListArg](node, 2).Patterns = files
	return nil
}

// parseFileArg reads at most one file argument.
func (p *parser) parseFileArg(node *ast.CommandNode, def *ast.Definition) error {
	start := p.pos
	files, err := p.parseGlobs(def)
	if err != nil {
		return err
	}
	switch len(files) {
	case 0:
	case 1:
		slot[*ast.GlobArg](node, 2).Pattern = files[0]
	default:
		return p.errorf(start, "E172: Only one file name allowed")
	}
	return nil
}

// parseWrite reads the target of ":write" and friends: ">> [file]",
// "!cmd" or a file.
func (p *parser) parseWrite(node *ast.CommandNode, def *ast.Definition) error {
	ra := slot[*ast.RedirArg](node, 1)
	switch {
	case p.hasPrefix(">>"):
		p.pos += 2
		p.skipBlanks()
		ra.Append = true
	case p.peek() == '!':
		p.pos++
		ra.Filter = true
		ra.Shell = trimRightBlanks(p.rest())
		p.pos = len(p.line)
		return nil
	}
	return p.redirFile(ra, def)
}

// parseRead reads the source of ":read": "!cmd" or a file. ":read!cmd"
// filters as well.
func (p *parser) parseRead(node *ast.CommandNode, def *ast.Definition) error {
	ra := slot[*ast.RedirArg](node, 1)
	if node.Bang || p.peek() == '!' {
		if !node.Bang {
			p.pos++
		}
		node.Bang = false
		ra.Filter = true
		ra.Shell = trimRightBlanks(p.rest())
		p.pos = len(p.line)
		return nil
	}
	return p.redirFile(ra, def)
}

func (p *parser) redirFile(ra *ast.RedirArg, def *ast.Definition) error {
	start := p.pos
	files, err := p.parseGlobs(def)
	if err != nil {
		return err
	}
	switch len(files) {
	case 0:
	case 1:
		ra.File = files[0]
	default:
		return p.errorf(start, "E172: Only one file name allowed")
	}
	return nil
}
