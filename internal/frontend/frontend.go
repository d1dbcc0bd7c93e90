// Package frontend runs the lex and parse stages over one source file.
package frontend

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"tlang/internal/ast"
	"tlang/internal/lexer"
	"tlang/internal/limits"
	"tlang/internal/parser"
	"tlang/internal/token"
)

var log = commonlog.GetLogger("tlang.frontend")

type Options struct {
	MaxDepth int // 0 disables the nesting guard
}

func DefaultOptions() Options {
	return Options{MaxDepth: limits.DefaultMaxDepth}
}

// Unit is one source file after the front end. Tokens is set once lexing
// succeeds; Program only when parsing does too.
type Unit struct {
	Path     string
	Source   string
	Tokens   []token.Token
	Comments []lexer.Comment
	Classes  []string
	Program  *ast.Program
}

// Lex runs the lexer only.
func Lex(path, src string) (*Unit, error) {
	u := &Unit{Path: path, Source: src}
	l := lexer.New(src)
	toks, err := l.Tokenize()
	if err != nil {
		log.Debugf("%s: lex failed: %s", path, err)
		return u, err
	}
	u.Tokens = toks
	u.Comments = l.Comments()
	u.Classes = l.Classes().Names()
	log.Debugf("%s: %d tokens, %d classes", path, len(toks), len(u.Classes))
	return u, nil
}

// Run lexes and parses src. The returned Unit is never nil, so callers can
// still report against its Source on error.
func Run(path, src string, opt Options) (*Unit, error) {
	u, err := Lex(path, src)
	if err != nil {
		return u, err
	}
	p := parser.New(u.Tokens, parser.WithMaxDepth(opt.MaxDepth))
	prog, err := p.ProduceAST()
	if err != nil {
		log.Debugf("%s: parse failed: %s", path, err)
		return u, err
	}
	u.Program = prog
	log.Debugf("%s: %d top-level statements", path, len(prog.Body))
	return u, nil
}

// Load reads path and runs it through the front end.
func Load(path string, opt Options) (*Unit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Run(path, string(b), opt)
}
