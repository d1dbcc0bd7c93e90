package token

import (
	"fmt"
	"sort"
)

// Type is the lexical category of a token. The declaration order is part of
// the contract: IsBinaryOperator and IsUnaryOperator classify by range.
type Type uint8

type Token struct {
	Type   Type
	Lexeme string
	Line   int // 1-based
	Col    int // 1-based byte column
}

const (
	// Binary operators
	ASSIGN  Type = iota // =
	EQ                  // ==
	NE                  // !=
	GT                  // >
	LT                  // <
	SHL                 // <<
	SHR                 // >>
	PLUS                // +
	MINUS               // -
	SLASH               // /
	STAR                // *
	POW                 // **
	PERCENT             // %
	AMP                 // &
	AND                 // &&
	PIPE                // |
	OR                  // ||
	DOT                 // .
	SCOPE               // ::

	// Unary operators
	DEC // --
	NOT // !
	INC // ++

	// Other
	POINTER   // ->
	REFERENCE // ~
	STRING
	CHAR
	BOOL
	SEMICOLON
	COLON
	COMMA
	INT
	NEGINT
	FLOAT
	IDENT
	KEYWORD // reserved slot, never produced by the lexer

	FOR
	WHILE
	PUBLIC
	PRIVATE
	PROTECTED
	CAST
	RETURN
	NULL
	IN
	IF
	CONSTEXPR
	NAMESPACE

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	MUTABLE

	CLASS
	CLASSTYPE
	PRIMITIVE

	EOF
)

var names = [...]string{
	ASSIGN:    "=",
	EQ:        "==",
	NE:        "!=",
	GT:        ">",
	LT:        "<",
	SHL:       "<<",
	SHR:       ">>",
	PLUS:      "+",
	MINUS:     "-",
	SLASH:     "/",
	STAR:      "*",
	POW:       "**",
	PERCENT:   "%",
	AMP:       "&",
	AND:       "&&",
	PIPE:      "|",
	OR:        "||",
	DOT:       ".",
	SCOPE:     "::",
	DEC:       "--",
	NOT:       "!",
	INC:       "++",
	POINTER:   "->",
	REFERENCE: "~",
	STRING:    "STRING",
	CHAR:      "CHAR",
	BOOL:      "BOOL",
	SEMICOLON: ";",
	COLON:     ":",
	COMMA:     ",",
	INT:       "INT",
	NEGINT:    "NEGINT",
	FLOAT:     "FLOAT",
	IDENT:     "IDENT",
	KEYWORD:   "KEYWORD",
	FOR:       "FOR",
	WHILE:     "WHILE",
	PUBLIC:    "PUBLIC",
	PRIVATE:   "PRIVATE",
	PROTECTED: "PROTECTED",
	CAST:      "CAST",
	RETURN:    "RETURN",
	NULL:      "NULL",
	IN:        "IN",
	IF:        "IF",
	CONSTEXPR: "CONSTEXPR",
	NAMESPACE: "NAMESPACE",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	MUTABLE:   "MUTABLE",
	CLASS:     "CLASS",
	CLASSTYPE: "CLASSTYPE",
	PRIMITIVE: "PRIMITIVE",
	EOF:       "EOF",
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// IsBinaryOperator reports whether t lies in the binary operator range (= through ::).
func (t Type) IsBinaryOperator() bool { return t < DEC }

// IsUnaryOperator reports whether t lies in the unary operator range (-- through ++).
func (t Type) IsUnaryOperator() bool { return t >= DEC && t <= INC }

func (t Type) IsAccessSpecifier() bool {
	return t == PUBLIC || t == PRIVATE || t == PROTECTED
}

// IsTypeName reports whether t names a type: a built-in primitive or a class type.
func (t Type) IsTypeName() bool { return t == PRIMITIVE || t == CLASSTYPE }

func (t Type) IsRefOrPtr() bool { return t == REFERENCE || t == POINTER }

func (t Type) IsKeyword() bool {
	return (t >= FOR && t <= NAMESPACE) || t == MUTABLE || t == CLASS
}

func (t Type) IsLiteral() bool {
	switch t {
	case STRING, CHAR, BOOL, INT, NEGINT, FLOAT:
		return true
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
}

var keywords = map[string]Type{
	"class":     CLASS,
	"private":   PRIVATE,
	"public":    PUBLIC,
	"protected": PROTECTED,
	"mutable":   MUTABLE,
	"cast":      CAST,
	"return":    RETURN,
	"for":       FOR,
	"while":     WHILE,
	"in":        IN,
	"if":        IF,
	"null":      NULL,
	"namespace": NAMESPACE,
	"constexpr": CONSTEXPR,
}

// ClassString is the one built-in type name that lexes as a class type.
const ClassString = "String"

var builtinTypes = map[string]struct{}{
	"auto":   {},
	"char":   {},
	"int8":   {},
	"int16":  {},
	"int32":  {},
	"int64":  {},
	"uint8":  {},
	"uint16": {},
	"uint32": {},
	"uint64": {},
	"float":  {},
	"double": {},
	"bool":   {},
	"String": {},
	"void":   {},
}

// LookupKeyword returns the keyword category for ident, if it is reserved.
func LookupKeyword(ident string) (Type, bool) {
	t, ok := keywords[ident]
	return t, ok
}

func IsBuiltinType(ident string) bool {
	_, ok := builtinTypes[ident]
	return ok
}

// Keywords lists the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuiltinTypes lists the built-in type names in sorted order.
func BuiltinTypes() []string {
	out := make([]string, 0, len(builtinTypes))
	for k := range builtinTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
