package parser

import (
	"errors"
	"fmt"

	"tlang/internal/ast"
	"tlang/internal/diag"
	"tlang/internal/lexer"
	"tlang/internal/limits"
	"tlang/internal/numlit"
	"tlang/internal/token"
)

// ErrConsumed is returned when ProduceAST is called twice on the same Parser.
var ErrConsumed = errors.New("parser: tokens already parsed")

// Error is a grammar violation. The parse stops at the first one.
type Error struct {
	Token   token.Token
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Col, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Diagnostic() diag.Diagnostic {
	code := diag.CodeSyntax
	var depthErr limits.MaxDepthError
	if errors.As(e.Err, &depthErr) {
		code = diag.CodeNestingMax
	}
	length := len(e.Token.Lexeme)
	if length == 0 {
		length = 1
	}
	return diag.Diagnostic{
		Code:     code,
		Message:  e.Message,
		Severity: diag.SeverityError,
		Range:    diag.Range{Line: e.Token.Line, Col: e.Token.Col, Length: length},
	}
}

type Option func(*Parser)

// WithMaxDepth bounds statement and expression nesting. Zero disables the
// limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.depth = limits.NewDepth(n) }
}

type Parser struct {
	tokens []token.Token
	pos    int
	depth  *limits.Depth
	done   bool
}

// New wraps a token sequence. A trailing EOF token is appended when the
// sequence does not already end with one.
func New(tokens []token.Token, opts ...Option) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != token.EOF {
		eof := token.Token{Type: token.EOF, Line: 1, Col: 1}
		if n > 0 {
			last := tokens[n-1]
			eof.Line, eof.Col = last.Line, last.Col+len(last.Lexeme)
		}
		tokens = append(tokens[:n:n], eof)
	}
	p := &Parser{
		tokens: tokens,
		depth:  limits.NewDepth(limits.DefaultMaxDepth),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource tokenizes src and parses the result.
func ParseSource(src string, opts ...Option) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens, opts...).ProduceAST()
}

/* -------------------- program -------------------- */

// ProduceAST parses every statement up to EOF. On failure it returns a
// *Error and no tree.
func (p *Parser) ProduceAST() (*ast.Program, error) {
	if p.done {
		return nil, ErrConsumed
	}
	p.done = true

	program := &ast.Program{Body: []ast.Statement{}}
	for !p.atEOF() {
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}
	return program, nil
}

/* -------------------- statements -------------------- */

// parseStatement dispatches on the first token. allowDecls is false only for
// the body of an if statement without braces.
func (p *Parser) parseStatement(allowDecls bool) (ast.Statement, error) {
	if err := p.depth.Enter(); err != nil {
		return nil, p.wrap(p.peek(), err)
	}
	defer p.depth.Leave()

	var (
		expr ast.Expression
		err  error
	)
	switch tok := p.peek(); tok.Type {
	case token.IF:
		expr, err = p.parseIfStatement()
	case token.NAMESPACE:
		if !allowDecls {
			return nil, p.errorf(tok, "cannot declare a namespace inside an if statement body without braces")
		}
		expr, err = p.parseNamespaceDeclaration()
	case token.CLASS:
		if !allowDecls {
			return nil, p.errorf(tok, "cannot declare a class inside an if statement body without braces")
		}
		expr, err = p.parseClassDeclaration()
	case token.PRIMITIVE, token.CLASSTYPE:
		expr, err = p.handleType()
	case token.MUTABLE:
		expr, err = p.handleMutable()
	case token.LBRACE:
		return p.parseScope()
	default:
		// identifiers land here too: assignment or plain expression
		expr, err = p.parseTopExpression()
	}
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

func (p *Parser) parseScope() (ast.Statement, error) {
	scope := &ast.Scope{Token: p.eat(), Statements: []ast.Statement{}}
	for p.peek().Type != token.RBRACE {
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		scope.Statements = append(scope.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE, "'}' to close scope"); err != nil {
		return nil, err
	}
	return scope, nil
}

func (p *Parser) parseIfStatement() (ast.Expression, error) {
	stmt := &ast.IfStatement{Token: p.eat(), Body: []ast.Statement{}}

	if _, err := p.expect(token.LPAREN, "'(' to start if condition"); err != nil {
		return nil, err
	}
	start := p.peek()
	cond, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	switch cond.Kind() {
	case ast.KindBinaryExpression, ast.KindBoolLiteral, ast.KindNumericLiteral:
	default:
		return nil, p.errorf(start, "invalid if condition: %s is not a binary expression, bool literal or numeric literal", cond.Kind())
	}
	stmt.Condition = cond

	if _, err := p.expect(token.RPAREN, "')' after if condition"); err != nil {
		return nil, err
	}

	if p.peek().Type != token.LBRACE {
		body, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		stmt.Body = append(stmt.Body, body)
		return stmt, nil
	}

	p.eat()
	for p.peek().Type != token.RBRACE {
		body, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		stmt.Body = append(stmt.Body, body)
	}
	if _, err := p.expect(token.RBRACE, "'}' to close if statement body"); err != nil {
		return nil, err
	}
	return stmt, nil
}

/* -------------------- expressions -------------------- */

// Binary precedence levels, loosest first. Assignment sits above them all.
const (
	levelEquality = iota
	levelAdditive
	levelMultiplicative
	levelExponent
	levelDot
)

var binaryLevels = [...][]token.Type{
	levelEquality:       {token.EQ, token.NE},
	levelAdditive:       {token.PLUS, token.MINUS},
	levelMultiplicative: {token.STAR, token.SLASH, token.PERCENT},
	levelExponent:       {token.POW},
	levelDot:            {token.DOT},
}

// parseTopExpression parses an expression statement. A type, '~' or '->' in
// second position means the statement is really a variable declaration.
func (p *Parser) parseTopExpression() (ast.Expression, error) {
	switch p.peekNext().Type {
	case token.CLASSTYPE, token.PRIMITIVE, token.REFERENCE, token.POINTER:
		return p.parseVariableDeclaration()
	}
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';' to end statement"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseBinary(levelEquality)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != token.ASSIGN {
		return left, nil
	}
	tok := p.eat()
	if err := p.depth.Enter(); err != nil {
		return nil, p.wrap(tok, err)
	}
	defer p.depth.Leave()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Token: tok, Left: left, Right: right}, nil
}

// parseBinary folds a left-associative chain of the operators at level.
func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parsePrimary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.atLevel(level) {
		op := p.eat()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Lexeme, Right: right}
	}
	return left, nil
}

func (p *Parser) atLevel(level int) bool {
	t := p.peek().Type
	for _, op := range binaryLevels[level] {
		if t == op {
			return true
		}
	}
	return false
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	if err := p.depth.Enter(); err != nil {
		return nil, p.wrap(tok, err)
	}
	defer p.depth.Leave()

	switch tok.Type {
	case token.IDENT:
		if p.peekNext().Type == token.LPAREN {
			return p.parseFunctionCall()
		}
		p.eat()
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}, nil
	case token.NEGINT:
		p.eat()
		v, err := numlit.ParseSigned(tok.Lexeme)
		if err != nil {
			return nil, p.wrap(tok, err)
		}
		return &ast.NumericLiteral{Token: tok, Type: ast.Int64, Int: v}, nil
	case token.INT:
		p.eat()
		v, err := numlit.ParseUnsigned(tok.Lexeme)
		if err != nil {
			return nil, p.wrap(tok, err)
		}
		return &ast.NumericLiteral{Token: tok, Type: ast.Uint64, Uint: v}, nil
	case token.FLOAT:
		p.eat()
		v, err := numlit.ParseFloat(tok.Lexeme)
		if err != nil {
			return nil, p.wrap(tok, err)
		}
		return &ast.NumericLiteral{Token: tok, Type: ast.Float64, Float: v}, nil
	case token.STRING:
		p.eat()
		return &ast.StringLiteral{Token: tok, Value: tok.Lexeme}, nil
	case token.CHAR:
		p.eat()
		return &ast.CharacterLiteral{Token: tok, Value: tok.Lexeme}, nil
	case token.BOOL:
		p.eat()
		return &ast.BoolLiteral{Token: tok, Value: tok.Lexeme == "true"}, nil
	case token.LPAREN:
		p.eat()
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')' to close parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf(tok, "unexpected %s in expression", describe(tok))
}

// parseFunctionCall parses NAME '(' ARGS ')'. Arguments are additive-level
// expressions separated by exactly one comma.
func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	nameTok := p.eat()
	call := &ast.FunctionCall{
		Name: &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		Args: []ast.Expression{},
	}
	p.eat() // '('

	if p.peek().Type != token.RPAREN {
		for {
			arg, err := p.parseBinary(levelAdditive)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.peek().Type != token.COMMA {
				break
			}
			p.eat()
		}
	}
	if _, err := p.expect(token.RPAREN, fmt.Sprintf("')' to close call to %s", nameTok.Lexeme)); err != nil {
		return nil, err
	}
	return call, nil
}

/* -------------------- cursor -------------------- */

func (p *Parser) peek() token.Token { return p.peekAt(p.pos) }

func (p *Parser) peekNext() token.Token { return p.peekAt(p.pos + 1) }

// peekAt clamps out-of-range indexes to the final token.
func (p *Parser) peekAt(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// eat returns the current token and advances, never past EOF.
func (p *Parser) eat() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool { return p.peek().Type == token.EOF }

func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, p.errorf(tok, "expected %s, got %s", what, describe(tok))
	}
	return p.eat(), nil
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) error {
	return &Error{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) wrap(tok token.Token, err error) error {
	return &Error{Token: tok, Message: err.Error(), Err: err}
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}
