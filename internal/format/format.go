package format

import (
	"bytes"
	"strings"

	"tlang/internal/lexer"
	"tlang/internal/token"
)

type Options struct {
	Format string // FormatText or FormatYAML; Render only
	Indent string // "  " or "\t"
}

// Source reprints src from its token stream: one statement per line, braces
// indent, at most one blank line kept between statements. Line comments are
// carried over. The token stream of the output equals that of the input.
func Source(src string, opt Options) (string, error) {
	if opt.Indent == "" {
		opt.Indent = "  "
	}

	l := lexer.New(src)
	toks, err := l.Tokenize()
	if err != nil {
		return "", err
	}
	comments := l.Comments()

	var out bytes.Buffer
	indent := 0
	atLineStart := true
	pendingBreak := false

	emitIndent := func() {
		if atLineStart {
			for i := 0; i < indent; i++ {
				out.WriteString(opt.Indent)
			}
			atLineStart = false
		}
	}

	newline := func() {
		out.WriteByte('\n')
		atLineStart = true
	}

	write := func(s string) {
		emitIndent()
		out.WriteString(s)
	}

	// breakLine ends the current line, adding one blank line when the source
	// had a gap before nextLine.
	breakLine := func(lastLine, nextLine int) {
		if !atLineStart {
			newline()
		}
		if lastLine > 0 && nextLine-lastLine > 1 {
			newline()
		}
		pendingBreak = false
	}

	var (
		prev           token.Token
		prevText       string
		hasPrev        bool
		prevUnaryMinus bool
		lastLine       int
		ci             int
	)

	flushComments := func(before int) {
		for ; ci < len(comments) && comments[ci].Line < before; ci++ {
			c := comments[ci]
			if hasPrev && c.Line == lastLine && !atLineStart {
				write(" //" + c.Text)
			} else {
				breakLine(lastLine, c.Line)
				write("//" + c.Text)
			}
			pendingBreak = true
			lastLine = c.Line
		}
	}

	for _, tok := range toks {
		if tok.Type == token.EOF {
			break
		}
		flushComments(tok.Line)

		if tok.Type == token.RBRACE && indent > 0 {
			indent--
		}

		emptyBlock := tok.Type == token.RBRACE && hasPrev && prev.Type == token.LBRACE && tok.Line == prev.Line
		switch {
		case emptyBlock:
			pendingBreak = false
		case pendingBreak, tok.Type == token.RBRACE && !atLineStart:
			breakLine(lastLine, tok.Line)
		}

		text := tokenText(tok)
		if !atLineStart && !emptyBlock && (spaceBefore(prev, tok, prevUnaryMinus) || fuses(prevText, text)) {
			out.WriteByte(' ')
		}
		write(text)

		switch tok.Type {
		case token.SEMICOLON, token.RBRACE:
			pendingBreak = true
		case token.LBRACE:
			indent++
			pendingBreak = true
		case token.COLON:
			if prev.Type.IsAccessSpecifier() {
				pendingBreak = true
			}
		}

		prevUnaryMinus = tok.Type == token.MINUS && (!hasPrev || !isOperandEnd(prev.Type))
		prev, prevText, hasPrev = tok, text, true
		// a char literal may hold a raw newline
		lastLine = tok.Line + strings.Count(text, "\n")
	}
	flushComments(int(^uint(0) >> 1))

	s := strings.TrimRight(out.String(), " \t\n")
	if s == "" {
		return "", nil
	}
	return s + "\n", nil
}

func tokenText(tok token.Token) string {
	switch tok.Type {
	case token.STRING:
		return `"` + tok.Lexeme + `"`
	case token.CHAR:
		return "'" + tok.Lexeme + "'"
	}
	return tok.Lexeme
}

// spaceBefore is the layout rule; fuses overrides it where gluing two
// tokens would change how they lex.
func spaceBefore(prev, tok token.Token, prevUnaryMinus bool) bool {
	switch prev.Type {
	case token.LPAREN, token.DOT, token.SCOPE, token.NOT, token.INC, token.DEC:
		return false
	case token.MINUS:
		if prevUnaryMinus {
			return false
		}
	}
	switch tok.Type {
	case token.RPAREN, token.COMMA, token.SEMICOLON, token.DOT, token.SCOPE,
		token.REFERENCE, token.POINTER, token.COLON:
		return false
	case token.LPAREN:
		return prev.Type != token.IDENT
	case token.INC, token.DEC:
		return !isOperandEnd(prev.Type)
	}
	return true
}

func isOperandEnd(t token.Type) bool {
	switch t {
	case token.IDENT, token.INT, token.NEGINT, token.FLOAT, token.STRING,
		token.CHAR, token.BOOL, token.RPAREN:
		return true
	}
	return false
}

// fuses reports whether writing b directly after a would lex differently.
func fuses(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	x, y := a[len(a)-1], b[0]
	switch {
	case isWord(x) && isWord(y):
		return true
	case isDigit(x) && y == '.', x == '.' && isDigit(y):
		return true
	case x == '-' && (isDigit(y) || y == '.'):
		return true
	case x == '/' && y == '/':
		return true
	case strings.IndexByte("=<>+*:&|-!", x) >= 0 && strings.IndexByte("=<>+*:&|->", y) >= 0:
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isWord(ch byte) bool {
	return isDigit(ch) || ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
