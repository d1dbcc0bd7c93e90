package parser

import (
	"fmt"

	"tlang/internal/ast"
	"tlang/internal/token"
)

// handleType routes a statement starting with a type name: TYPE [~|->] NAME
// followed by '(' is a function, anything else a variable.
func (p *Parser) handleType() (ast.Expression, error) {
	return p.declarationAfterType(p.pos)
}

func (p *Parser) handleMutable() (ast.Expression, error) {
	if next := p.peekNext(); !next.Type.IsTypeName() {
		return nil, p.errorf(next, "expected type after 'mutable', got %s", describe(next))
	}
	return p.declarationAfterType(p.pos + 1)
}

func (p *Parser) declarationAfterType(typeIdx int) (ast.Expression, error) {
	idx := typeIdx + 1
	if p.peekAt(idx).Type.IsRefOrPtr() {
		idx++
	}
	if name := p.peekAt(idx); name.Type != token.IDENT {
		return nil, p.errorf(name, "expected identifier after type, got %s", describe(name))
	}
	if p.peekAt(idx+1).Type == token.LPAREN {
		return p.parseFunctionDeclaration()
	}
	return p.parseVariableDeclaration()
}

func (p *Parser) eatIfMutable() bool {
	if p.peek().Type == token.MUTABLE {
		p.eat()
		return true
	}
	return false
}

// parseTypeName reads TYPE [~|->].
func (p *Parser) parseTypeName(mutable bool, what string) (*ast.TypeName, error) {
	tok := p.peek()
	if !tok.Type.IsTypeName() {
		return nil, p.errorf(tok, "expected %s, got %s", what, describe(tok))
	}
	p.eat()

	var ref, ptr bool
	switch p.peek().Type {
	case token.REFERENCE:
		ref = true
		p.eat()
	case token.POINTER:
		ptr = true
		p.eat()
	}

	tn, err := ast.NewTypeName(tok.Lexeme, mutable, ref, ptr)
	if err != nil {
		return nil, p.wrap(tok, err)
	}
	tn.Token = tok
	return tn, nil
}

func (p *Parser) parseIdentifier(what string) (*ast.Identifier, error) {
	tok, err := p.expect(token.IDENT, what)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}, nil
}

// parseVariableDeclaration parses [mutable] TYPE [~|->] NAME (';' | '=' EXPR ';').
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	mutable := p.eatIfMutable()
	typ, err := p.parseTypeName(mutable, "type in variable declaration")
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier("identifier for a variable")
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{IsMutable: mutable, Type: typ, Name: name}

	if p.peek().Type == token.SEMICOLON {
		p.eat()
		return decl, nil
	}
	if _, err := p.expect(token.ASSIGN, fmt.Sprintf("'=' or ';' after %s", name.Value)); err != nil {
		return nil, err
	}
	decl.Value, err = p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';' to end variable declaration"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) atParameterStart() bool {
	t := p.peek().Type
	return t.IsTypeName() || t == token.MUTABLE
}

// parseFunctionDeclaration parses [mutable] TYPE [~|->] NAME '(' PARAMS ')'
// '{' BODY '}'. A return statement ends the body: the next token must be '}'.
func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	mutable := p.eatIfMutable()
	ret, err := p.parseTypeName(mutable, "function return type")
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier("function name")
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDeclaration{
		ReturnType: ret,
		Name:       name,
		Params:     []*ast.Parameter{},
		Body:       []ast.Statement{},
	}

	if _, err := p.expect(token.LPAREN, "'(' to start parameter list"); err != nil {
		return nil, err
	}
	for p.atParameterStart() {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)

		switch tok := p.peek(); tok.Type {
		case token.COMMA:
			p.eat()
			if !p.atParameterStart() {
				next := p.peek()
				return nil, p.errorf(next, "invalid parameter list for function %s: expected parameter after ',', got %s", name.Value, describe(next))
			}
		case token.RPAREN:
		default:
			return nil, p.errorf(tok, "invalid parameter list for function %s: unexpected %s", name.Value, describe(tok))
		}
	}
	if _, err := p.expect(token.RPAREN, "')' to close parameter list"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{' to open function body"); err != nil {
		return nil, err
	}

	for p.peek().Type != token.RBRACE {
		if p.peek().Type == token.RETURN {
			ret, err := p.parseReturnStatement()
			if err != nil {
				return nil, err
			}
			fn.Body = append(fn.Body, &ast.ExpressionStatement{Expression: ret})
			break
		}
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, stmt)
	}
	if _, err := p.expect(token.RBRACE, fmt.Sprintf("'}' to close function %s", name.Value)); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	mutable := p.eatIfMutable()
	typ, err := p.parseTypeName(mutable, "parameter type")
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier("parameter name")
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{Type: typ, Name: name}, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	tok := p.eat()
	value, err := p.parseStatement(true)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: tok, Value: value}, nil
}

func (p *Parser) parseNamespaceDeclaration() (*ast.NamespaceDeclaration, error) {
	ns := &ast.NamespaceDeclaration{Token: p.eat(), Body: []ast.Statement{}}
	name, err := p.parseIdentifier("namespace name")
	if err != nil {
		return nil, err
	}
	ns.Name = name

	if _, err := p.expect(token.LBRACE, "'{' to open namespace body"); err != nil {
		return nil, err
	}
	for p.peek().Type != token.RBRACE {
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		ns.Body = append(ns.Body, stmt)
	}
	if _, err := p.expect(token.RBRACE, fmt.Sprintf("'}' to close namespace %s", name.Value)); err != nil {
		return nil, err
	}
	return ns, nil
}

var accessSpecifiers = map[token.Type]ast.AccessSpecifier{
	token.PUBLIC:    ast.Public,
	token.PROTECTED: ast.Protected,
	token.PRIVATE:   ast.Private,
}

// parseClassDeclaration parses 'class' NAME '{' MEMBER* '}'. An access
// specifier clause applies to every following member until replaced.
func (p *Parser) parseClassDeclaration() (*ast.ClassDeclaration, error) {
	decl := &ast.ClassDeclaration{
		Token:   p.eat(),
		Fields:  []*ast.FieldDeclaration{},
		Methods: []*ast.MethodDeclaration{},
	}
	typeTok, err := p.expect(token.CLASSTYPE, "class name after 'class'")
	if err != nil {
		return nil, err
	}
	decl.Type = &ast.TypeName{Token: typeTok, Name: typeTok.Lexeme}

	if _, err := p.expect(token.LBRACE, "'{' to open class body"); err != nil {
		return nil, err
	}

	access := ast.Public
	for p.peek().Type != token.RBRACE {
		tok := p.peek()
		if tok.Type.IsAccessSpecifier() {
			p.eat()
			access = accessSpecifiers[tok.Type]
			if _, err := p.expect(token.COLON, "':' after access specifier"); err != nil {
				return nil, err
			}
			continue
		}

		idx := p.pos
		if tok.Type == token.MUTABLE {
			idx++
		}
		if typ := p.peekAt(idx); !typ.Type.IsTypeName() {
			return nil, p.errorf(typ, "class member requires a type name, got %s", describe(typ))
		}
		idx++
		if p.peekAt(idx).Type.IsRefOrPtr() {
			idx++
		}

		if p.peekAt(idx+1).Type == token.LPAREN {
			fn, err := p.parseFunctionDeclaration()
			if err != nil {
				return nil, err
			}
			decl.Methods = append(decl.Methods, &ast.MethodDeclaration{Func: fn, Access: access})
			continue
		}
		v, err := p.parseVariableDeclaration()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, &ast.FieldDeclaration{Var: v, Access: access})
	}
	if _, err := p.expect(token.RBRACE, fmt.Sprintf("'}' to close class %s", typeTok.Lexeme)); err != nil {
		return nil, err
	}
	return decl, nil
}
