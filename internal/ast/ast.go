package ast

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"tlang/internal/token"
)

type Node interface {
	TokenLiteral() string
	String() string
	// Pos is the 1-based line and column of the node's first token.
	Pos() (line, col int)
}

// Statement is one of *ExpressionStatement, *Program or *Scope.
type Statement interface {
	Node
	StatementKind() StatementKind
	statementNode()
}

// Expression is a closed set of variants discriminated by Kind.
type Expression interface {
	Node
	Kind() ExprKind
	expressionNode()
}

type StatementKind uint8

const (
	StmtExpression StatementKind = iota
	StmtProgram
	StmtScope
)

type ExprKind uint8

const (
	KindIdentifier ExprKind = iota
	KindNumericLiteral
	KindStringLiteral
	KindCharacterLiteral
	KindBoolLiteral
	KindBinaryExpression
	KindUnaryExpression
	KindAssignmentExpression
	KindVariableDeclaration
	KindFunctionDeclaration
	KindParameter
	KindFieldDeclaration
	KindMethodDeclaration
	KindClassDeclaration
	KindFunctionCall
	KindReturnStatement
	KindNamespaceDeclaration
	KindIfStatement
	KindTypeName
)

func tokPos(t token.Token) (int, int) { return t.Line, t.Col }

/* -------------------- Statements -------------------- */

type Program struct {
	Body []Statement
}

func (*Program) statementNode()                 {}
func (*Program) StatementKind() StatementKind { return StmtProgram }
func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() (int, int) {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return 1, 1
}
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(statementText(s))
		out.WriteString("\n")
	}
	return out.String()
}

type ExpressionStatement struct {
	Expression Expression
}

func (*ExpressionStatement) statementNode()                 {}
func (*ExpressionStatement) StatementKind() StatementKind { return StmtExpression }
func (es *ExpressionStatement) TokenLiteral() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.TokenLiteral()
}
func (es *ExpressionStatement) Pos() (int, int) {
	if es.Expression == nil {
		return 0, 0
	}
	return es.Expression.Pos()
}
func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String()
}

// Scope is an ordered, brace-delimited statement list.
type Scope struct {
	Token      token.Token // '{'
	Statements []Statement
}

func (*Scope) statementNode()                 {}
func (*Scope) StatementKind() StatementKind { return StmtScope }
func (s *Scope) TokenLiteral() string         { return s.Token.Lexeme }
func (s *Scope) Pos() (int, int)              { return tokPos(s.Token) }
func (s *Scope) String() string {
	return "{ " + joinStatements(s.Statements, " ") + " }"
}

/* -------------------- Type names -------------------- */

type Modifier uint8

const (
	ModNone Modifier = iota
	ModReference
	ModPointer
)

// ErrRefAndPointer is returned when a type is asked to be both a reference
// and a pointer.
var ErrRefAndPointer = errors.New("type cannot be both reference and pointer")

type TypeName struct {
	Token     token.Token // PRIMITIVE or CLASSTYPE
	Name      string
	IsMutable bool
	Modifier  Modifier
}

// NewTypeName builds a TypeName from independent ref/pointer flags.
func NewTypeName(name string, mutable, ref, ptr bool) (*TypeName, error) {
	if ref && ptr {
		return nil, ErrRefAndPointer
	}
	tn := &TypeName{Name: name, IsMutable: mutable}
	switch {
	case ref:
		tn.Modifier = ModReference
	case ptr:
		tn.Modifier = ModPointer
	}
	return tn, nil
}

func (*TypeName) expressionNode()        {}
func (*TypeName) Kind() ExprKind         { return KindTypeName }
func (tn *TypeName) TokenLiteral() string { return tn.Token.Lexeme }
func (tn *TypeName) Pos() (int, int)      { return tokPos(tn.Token) }
func (tn *TypeName) String() string {
	var out strings.Builder
	if tn.IsMutable {
		out.WriteString("mutable ")
	}
	out.WriteString(tn.Name)
	out.WriteString(tn.Modifier.String())
	return out.String()
}

/* -------------------- Literals and names -------------------- */

type Identifier struct {
	Token token.Token // IDENT
	Value string
}

func (*Identifier) expressionNode()        {}
func (*Identifier) Kind() ExprKind         { return KindIdentifier }
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) Pos() (int, int)      { return tokPos(i.Token) }
func (i *Identifier) String() string       { return i.Value }

type NumericType uint8

const (
	Int64 NumericType = iota
	Uint64
	Float64
)

// NumericLiteral holds exactly one of Int, Uint or Float, selected by Type.
type NumericLiteral struct {
	Token token.Token // NEGINT, INT or FLOAT
	Type  NumericType
	Int   int64
	Uint  uint64
	Float float64
}

func (*NumericLiteral) expressionNode()         {}
func (*NumericLiteral) Kind() ExprKind          { return KindNumericLiteral }
func (nl *NumericLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumericLiteral) Pos() (int, int)      { return tokPos(nl.Token) }
func (nl *NumericLiteral) String() string       { return nl.ValueString() }

// ValueString formats the held value independently of the source lexeme.
func (nl *NumericLiteral) ValueString() string {
	switch nl.Type {
	case Int64:
		return strconv.FormatInt(nl.Int, 10)
	case Uint64:
		return strconv.FormatUint(nl.Uint, 10)
	default:
		return strconv.FormatFloat(nl.Float, 'g', -1, 64)
	}
}

type StringLiteral struct {
	Token token.Token // STRING
	Value string
}

func (*StringLiteral) expressionNode()         {}
func (*StringLiteral) Kind() ExprKind          { return KindStringLiteral }
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) Pos() (int, int)      { return tokPos(sl.Token) }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

// CharacterLiteral keeps the raw lexeme, so an escape stays two characters.
type CharacterLiteral struct {
	Token token.Token // CHAR
	Value string
}

func (*CharacterLiteral) expressionNode()         {}
func (*CharacterLiteral) Kind() ExprKind          { return KindCharacterLiteral }
func (cl *CharacterLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharacterLiteral) Pos() (int, int)      { return tokPos(cl.Token) }
func (cl *CharacterLiteral) String() string       { return "'" + cl.Value + "'" }

type BoolLiteral struct {
	Token token.Token // BOOL
	Value bool
}

func (*BoolLiteral) expressionNode()         {}
func (*BoolLiteral) Kind() ExprKind          { return KindBoolLiteral }
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BoolLiteral) Pos() (int, int)      { return tokPos(bl.Token) }
func (bl *BoolLiteral) String() string       { return strconv.FormatBool(bl.Value) }

/* -------------------- Operators -------------------- */

type BinaryExpression struct {
	Token    token.Token // operator
	Left     Expression
	Operator string
	Right    Expression
}

func (*BinaryExpression) expressionNode()         {}
func (*BinaryExpression) Kind() ExprKind          { return KindBinaryExpression }
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BinaryExpression) Pos() (int, int)      { return be.Left.Pos() }
func (be *BinaryExpression) String() string {
	if be.Operator == "." {
		return be.Left.String() + "." + be.Right.String()
	}
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

type UnaryExpression struct {
	Token    token.Token // operator
	Operator string
	Operand  Expression
	Prefix   bool
}

func (*UnaryExpression) expressionNode()         {}
func (*UnaryExpression) Kind() ExprKind          { return KindUnaryExpression }
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Lexeme }
func (ue *UnaryExpression) Pos() (int, int) {
	if ue.Prefix || ue.Operand == nil {
		return tokPos(ue.Token)
	}
	return ue.Operand.Pos()
}
func (ue *UnaryExpression) String() string {
	if ue.Prefix {
		return "(" + ue.Operator + ue.Operand.String() + ")"
	}
	return "(" + ue.Operand.String() + ue.Operator + ")"
}

// AssignmentExpression is right-associative: a = b = c nests in Right.
type AssignmentExpression struct {
	Token token.Token // '='
	Left  Expression
	Right Expression
}

func (*AssignmentExpression) expressionNode()         {}
func (*AssignmentExpression) Kind() ExprKind          { return KindAssignmentExpression }
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AssignmentExpression) Pos() (int, int)      { return ae.Left.Pos() }
func (ae *AssignmentExpression) String() string {
	return ae.Left.String() + " = " + ae.Right.String()
}

/* -------------------- Declarations -------------------- */

type VariableDeclaration struct {
	IsMutable bool
	Type      *TypeName
	Name      *Identifier
	Value     Expression // nil when declared without an initializer
}

func (*VariableDeclaration) expressionNode()         {}
func (*VariableDeclaration) Kind() ExprKind          { return KindVariableDeclaration }
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Type.TokenLiteral() }
func (vd *VariableDeclaration) Pos() (int, int)      { return vd.Type.Pos() }
func (vd *VariableDeclaration) String() string {
	var out strings.Builder
	out.WriteString(vd.Type.String())
	out.WriteString(" ")
	out.WriteString(vd.Name.String())
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

type Parameter struct {
	Type *TypeName
	Name *Identifier
}

func (*Parameter) expressionNode()        {}
func (*Parameter) Kind() ExprKind         { return KindParameter }
func (p *Parameter) TokenLiteral() string { return p.Type.TokenLiteral() }
func (p *Parameter) Pos() (int, int)      { return p.Type.Pos() }
func (p *Parameter) String() string       { return p.Type.String() + " " + p.Name.String() }

type FunctionDeclaration struct {
	ReturnType *TypeName
	Name       *Identifier
	Params     []*Parameter
	Body       []Statement
}

func (*FunctionDeclaration) expressionNode()         {}
func (*FunctionDeclaration) Kind() ExprKind          { return KindFunctionDeclaration }
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.ReturnType.TokenLiteral() }
func (fd *FunctionDeclaration) Pos() (int, int)      { return fd.ReturnType.Pos() }
func (fd *FunctionDeclaration) String() string {
	var out strings.Builder
	out.WriteString(fd.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(fd.Name.String())
	out.WriteString("(")
	for i, p := range fd.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(") { ")
	out.WriteString(joinStatements(fd.Body, " "))
	out.WriteString(" }")
	return out.String()
}

type AccessSpecifier uint8

const (
	Public AccessSpecifier = iota
	Protected
	Private
)

type FieldDeclaration struct {
	Var    *VariableDeclaration
	Access AccessSpecifier
}

func (*FieldDeclaration) expressionNode()         {}
func (*FieldDeclaration) Kind() ExprKind          { return KindFieldDeclaration }
func (fd *FieldDeclaration) TokenLiteral() string { return fd.Var.TokenLiteral() }
func (fd *FieldDeclaration) Pos() (int, int)      { return fd.Var.Pos() }
func (fd *FieldDeclaration) String() string       { return fd.Access.String() + ": " + fd.Var.String() }

type MethodDeclaration struct {
	Func   *FunctionDeclaration
	Access AccessSpecifier
}

func (*MethodDeclaration) expressionNode()         {}
func (*MethodDeclaration) Kind() ExprKind          { return KindMethodDeclaration }
func (md *MethodDeclaration) TokenLiteral() string { return md.Func.TokenLiteral() }
func (md *MethodDeclaration) Pos() (int, int)      { return md.Func.Pos() }
func (md *MethodDeclaration) String() string       { return md.Access.String() + ": " + md.Func.String() }

// ClassDeclaration keeps fields and methods in separate lists, each in
// source order.
type ClassDeclaration struct {
	Token   token.Token // 'class'
	Type    *TypeName
	Fields  []*FieldDeclaration
	Methods []*MethodDeclaration
}

func (*ClassDeclaration) expressionNode()         {}
func (*ClassDeclaration) Kind() ExprKind          { return KindClassDeclaration }
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDeclaration) Pos() (int, int)      { return tokPos(cd.Token) }
func (cd *ClassDeclaration) String() string {
	var out strings.Builder
	out.WriteString("class ")
	out.WriteString(cd.Type.Name)
	out.WriteString(" {")
	for _, f := range cd.Fields {
		out.WriteString(" ")
		out.WriteString(f.String())
	}
	for _, m := range cd.Methods {
		out.WriteString(" ")
		out.WriteString(m.String())
	}
	out.WriteString(" }")
	return out.String()
}

type FunctionCall struct {
	Name *Identifier
	Args []Expression
}

func (*FunctionCall) expressionNode()         {}
func (*FunctionCall) Kind() ExprKind          { return KindFunctionCall }
func (fc *FunctionCall) TokenLiteral() string { return fc.Name.TokenLiteral() }
func (fc *FunctionCall) Pos() (int, int)      { return fc.Name.Pos() }
func (fc *FunctionCall) String() string {
	args := make([]string, 0, len(fc.Args))
	for _, a := range fc.Args {
		args = append(args, a.String())
	}
	return fc.Name.String() + "(" + strings.Join(args, ", ") + ")"
}

// ReturnStatement wraps the statement that follows the return keyword.
type ReturnStatement struct {
	Token token.Token // 'return'
	Value Statement
}

func (*ReturnStatement) expressionNode()         {}
func (*ReturnStatement) Kind() ExprKind          { return KindReturnStatement }
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) Pos() (int, int)      { return tokPos(rs.Token) }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + statementText(rs.Value)
}

type NamespaceDeclaration struct {
	Token token.Token // 'namespace'
	Name  *Identifier
	Body  []Statement
}

func (*NamespaceDeclaration) expressionNode()         {}
func (*NamespaceDeclaration) Kind() ExprKind          { return KindNamespaceDeclaration }
func (nd *NamespaceDeclaration) TokenLiteral() string { return nd.Token.Lexeme }
func (nd *NamespaceDeclaration) Pos() (int, int)      { return tokPos(nd.Token) }
func (nd *NamespaceDeclaration) String() string {
	return "namespace " + nd.Name.String() + " { " + joinStatements(nd.Body, " ") + " }"
}

type IfStatement struct {
	Token     token.Token // 'if'
	Condition Expression
	Body      []Statement
}

func (*IfStatement) expressionNode()         {}
func (*IfStatement) Kind() ExprKind          { return KindIfStatement }
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) Pos() (int, int)      { return tokPos(is.Token) }
func (is *IfStatement) String() string {
	return "if (" + is.Condition.String() + ") { " + joinStatements(is.Body, " ") + " }"
}

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, statementText(s))
	}
	return strings.Join(parts, sep)
}

// statementText renders a body statement, terminating bare expressions.
func statementText(s Statement) string {
	es, ok := s.(*ExpressionStatement)
	if !ok || es.Expression == nil {
		return s.String()
	}
	switch es.Expression.Kind() {
	case KindVariableDeclaration, KindFunctionDeclaration, KindClassDeclaration,
		KindNamespaceDeclaration, KindIfStatement, KindReturnStatement:
		return s.String()
	}
	return s.String() + ";"
}
