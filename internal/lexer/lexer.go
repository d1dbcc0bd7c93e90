package lexer

import (
	"errors"
	"fmt"
	"strings"

	"tlang/internal/diag"
	"tlang/internal/token"
)

// ErrConsumed is returned when Tokenize is called twice on the same Lexer.
var ErrConsumed = errors.New("lexer: source already tokenized")

// Error is a lexical failure. Tokenize never returns tokens alongside it.
type Error struct {
	Line    int
	Col     int
	Char    byte
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Code:     diag.CodeLex,
		Message:  e.Message,
		Severity: diag.SeverityError,
		Range:    diag.Range{Line: e.Line, Col: e.Col, Length: 1},
	}
}

// Comment is a line comment. Comments never reach the token stream; they are
// kept on the side for tools that reprint source.
type Comment struct {
	Line int
	Col  int
	Text string // without the leading "//"
}

type Lexer struct {
	input string

	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	eof          bool

	line int // 1-based
	col  int // 1-based column of current char

	tokens   []token.Token
	comments []Comment
	last     token.Type
	classes  *ClassRegistry
	done     bool
}

func New(input string) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0, // readChar() will advance to col=1 for first char
		last:    token.EOF,
		classes: NewClassRegistry(),
	}
	l.readChar()
	return l
}

// Tokenize lexes input with a fresh Lexer.
func Tokenize(input string) ([]token.Token, error) {
	return New(input).Tokenize()
}

// Classes exposes the class names seen so far.
func (l *Lexer) Classes() *ClassRegistry { return l.classes }

// Comments returns the line comments seen so far, in source order.
func (l *Lexer) Comments() []Comment { return l.comments }

// Tokenize scans the whole input and returns the token sequence terminated by
// exactly one EOF token. On failure it returns a *Error and no tokens.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	if l.done {
		return nil, ErrConsumed
	}
	l.done = true

	for !l.atEnd() {
		if err := l.scan(); err != nil {
			l.tokens = nil
			return nil, err
		}
	}
	l.emit(token.EOF, "", l.line, l.col)
	return l.tokens, nil
}

func (l *Lexer) scan() error {
	line, col := l.line, l.col

	switch l.ch {
	case ' ', '\t', '\n', '\r':
		l.readChar()
	case ';':
		l.single(token.SEMICOLON, line, col)
	case ',':
		l.single(token.COMMA, line, col)
	case '(':
		l.single(token.LPAREN, line, col)
	case ')':
		l.single(token.RPAREN, line, col)
	case '{':
		l.single(token.LBRACE, line, col)
	case '}':
		l.single(token.RBRACE, line, col)
	case '~':
		l.single(token.REFERENCE, line, col)
	case '%':
		l.single(token.PERCENT, line, col)
	case '<':
		l.pair(token.SHL, token.LT, line, col)
	case '>':
		l.pair(token.SHR, token.GT, line, col)
	case '+':
		l.pair(token.INC, token.PLUS, line, col)
	case '*':
		l.pair(token.POW, token.STAR, line, col)
	case ':':
		l.pair(token.SCOPE, token.COLON, line, col)
	case '&':
		l.pair(token.AND, token.AMP, line, col)
	case '|':
		l.pair(token.OR, token.PIPE, line, col)
	case '=':
		l.pair(token.EQ, token.ASSIGN, line, col)
	case '!':
		if l.peekChar() == '=' {
			l.double(token.NE, line, col)
			return nil
		}
		l.single(token.NOT, line, col)
	case '-':
		l.scanMinus(line, col)
	case '/':
		if l.peekChar() == '/' {
			l.skipLineComment(line, col)
			return nil
		}
		l.single(token.SLASH, line, col)
	case '.':
		if isDigit(l.peekChar()) {
			l.readNumber(line, col)
			return nil
		}
		l.single(token.DOT, line, col)
	case '"':
		return l.readString(line, col)
	case '\'':
		return l.readCharLiteral(line, col)
	default:
		switch {
		case isDigit(l.ch):
			l.readNumber(line, col)
		case isLetter(l.ch):
			l.readIdentifier(line, col)
		default:
			return &Error{Line: line, Col: col, Char: l.ch, Message: fmt.Sprintf("unrecognized character %q", l.ch)}
		}
	}
	return nil
}

func (l *Lexer) scanMinus(line, col int) {
	switch {
	case l.peekChar() == '>':
		l.double(token.POINTER, line, col)
	case l.peekChar() == '-':
		l.double(token.DEC, line, col)
	case l.inSignContext() && l.minusStartsNumber():
		l.readNumber(line, col)
	default:
		l.single(token.MINUS, line, col)
	}
}

// inSignContext reports whether the previous token admits a signed literal:
// after a binary operator, '=', '(' or ','. Never true for the first token.
func (l *Lexer) inSignContext() bool {
	return l.last.IsBinaryOperator() || l.last == token.ASSIGN || l.last == token.LPAREN || l.last == token.COMMA
}

func (l *Lexer) minusStartsNumber() bool {
	next := l.peekChar()
	return isDigit(next) || (next == '.' && isDigit(l.peekSecondChar()))
}

// readNumber consumes [-]digits[.digits]. A trailing '.' with no fraction
// digits still yields a float literal.
func (l *Lexer) readNumber(line, col int) {
	start := l.position
	negative := l.ch == '-'
	if negative {
		l.readChar()
	}
	for isDigit(l.ch) && !l.atEnd() {
		l.readChar()
	}

	if l.ch == '.' && !l.atEnd() {
		l.readChar()
		for isDigit(l.ch) && !l.atEnd() {
			l.readChar()
		}
		l.emit(token.FLOAT, l.input[start:l.position], line, col)
		return
	}

	if negative {
		l.emit(token.NEGINT, l.input[start:l.position], line, col)
		return
	}
	l.emit(token.INT, l.input[start:l.position], line, col)
}

func (l *Lexer) readString(line, col int) error {
	l.readChar() // move past opening quote
	start := l.position
	for {
		if l.atEnd() {
			return &Error{Line: line, Col: col, Char: '"', Message: "unterminated string literal"}
		}
		switch l.ch {
		case '"':
			lit := l.input[start:l.position]
			l.readChar() // consume closing quote
			l.emit(token.STRING, lit, line, col)
			return nil
		case '\n', '\r':
			return &Error{Line: line, Col: col, Char: l.ch, Message: "newline in string literal"}
		}
		l.readChar()
	}
}

// readCharLiteral takes one character, or a backslash plus the character after
// it, then skips one more byte as the closing quote without checking it.
func (l *Lexer) readCharLiteral(line, col int) error {
	l.readChar() // move past opening quote
	if l.atEnd() {
		return &Error{Line: line, Col: col, Char: '\'', Message: "unterminated character literal"}
	}
	start := l.position
	escaped := l.ch == '\\'
	l.readChar()
	if escaped && !l.atEnd() {
		l.readChar()
	}
	lit := l.input[start:l.position]
	if !l.atEnd() {
		l.readChar()
	}
	l.emit(token.CHAR, lit, line, col)
	return nil
}

func (l *Lexer) readIdentifier(line, col int) {
	start := l.position
	for isIdentPart(l.ch) && !l.atEnd() {
		l.readChar()
	}
	ident := l.input[start:l.position]
	l.emit(l.classify(ident), ident, line, col)
}

func (l *Lexer) classify(ident string) token.Type {
	if ident == "true" || ident == "false" {
		return token.BOOL
	}
	if tt, ok := token.LookupKeyword(ident); ok {
		return tt
	}
	if token.IsBuiltinType(ident) {
		if ident == token.ClassString {
			return token.CLASSTYPE
		}
		return token.PRIMITIVE
	}
	if l.last == token.CLASS {
		l.classes.Add(ident)
		return token.CLASSTYPE
	}
	if l.classes.Has(ident) {
		return token.CLASSTYPE
	}
	return token.IDENT
}

func (l *Lexer) skipLineComment(line, col int) {
	start := l.position + 2
	for l.ch != '\n' && !l.atEnd() {
		l.readChar()
	}
	text := l.input[start:l.position]
	text = strings.TrimSuffix(text, "\r")
	l.comments = append(l.comments, Comment{Line: line, Col: col, Text: text})
}

func (l *Lexer) single(t token.Type, line, col int) {
	lit := string(l.ch)
	l.readChar()
	l.emit(t, lit, line, col)
}

func (l *Lexer) double(t token.Type, line, col int) {
	lit := l.input[l.position : l.position+2]
	l.readChar()
	l.readChar()
	l.emit(t, lit, line, col)
}

// pair emits double when the next char repeats the current one, else single.
func (l *Lexer) pair(double, single token.Type, line, col int) {
	if l.peekChar() == l.ch {
		l.double(double, line, col)
		return
	}
	l.single(single, line, col)
}

func (l *Lexer) emit(t token.Type, lit string, line, col int) {
	l.tokens = append(l.tokens, token.Token{Type: t, Lexeme: lit, Line: line, Col: col})
	l.last = t
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		if !l.eof {
			l.eof = true
			l.col++
		}
		l.ch = 0
		l.position = len(l.input)
		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++

	// Track line/col for current char
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) peekSecondChar() byte {
	if l.readPosition+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
