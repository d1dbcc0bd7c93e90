package token

import (
	"sort"
	"testing"
)

func TestOperatorRanges(t *testing.T) {
	binary := []Type{ASSIGN, EQ, NE, GT, LT, SHL, SHR, PLUS, MINUS, SLASH, STAR, POW, PERCENT, AMP, AND, PIPE, OR, DOT, SCOPE}
	for _, tt := range binary {
		if !tt.IsBinaryOperator() || tt.IsUnaryOperator() {
			t.Errorf("%s: want binary only", tt)
		}
	}
	for _, tt := range []Type{DEC, NOT, INC} {
		if !tt.IsUnaryOperator() || tt.IsBinaryOperator() {
			t.Errorf("%s: want unary only", tt)
		}
	}
	for _, tt := range []Type{POINTER, REFERENCE, IDENT, INT, SEMICOLON, EOF} {
		if tt.IsBinaryOperator() || tt.IsUnaryOperator() {
			t.Errorf("%s: classified as an operator", tt)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		typ                               Type
		access, typeName, refPtr, kw, lit bool
	}{
		{PUBLIC, true, false, false, true, false},
		{PRIVATE, true, false, false, true, false},
		{PROTECTED, true, false, false, true, false},
		{PRIMITIVE, false, true, false, false, false},
		{CLASSTYPE, false, true, false, false, false},
		{REFERENCE, false, false, true, false, false},
		{POINTER, false, false, true, false, false},
		{MUTABLE, false, false, false, true, false},
		{CLASS, false, false, false, true, false},
		{RETURN, false, false, false, true, false},
		{NEGINT, false, false, false, false, true},
		{CHAR, false, false, false, false, true},
		{IDENT, false, false, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsAccessSpecifier(); got != tt.access {
			t.Errorf("%s.IsAccessSpecifier() = %v", tt.typ, got)
		}
		if got := tt.typ.IsTypeName(); got != tt.typeName {
			t.Errorf("%s.IsTypeName() = %v", tt.typ, got)
		}
		if got := tt.typ.IsRefOrPtr(); got != tt.refPtr {
			t.Errorf("%s.IsRefOrPtr() = %v", tt.typ, got)
		}
		if got := tt.typ.IsKeyword(); got != tt.kw {
			t.Errorf("%s.IsKeyword() = %v", tt.typ, got)
		}
		if got := tt.typ.IsLiteral(); got != tt.lit {
			t.Errorf("%s.IsLiteral() = %v", tt.typ, got)
		}
	}
}

func TestStrings(t *testing.T) {
	if got := SCOPE.String(); got != "::" {
		t.Fatalf("SCOPE.String() = %q", got)
	}
	if got := Type(250).String(); got != "Type(250)" {
		t.Fatalf("out of range = %q", got)
	}
	tok := Token{Type: IDENT, Lexeme: "x"}
	if got := tok.String(); got != `IDENT("x")` {
		t.Fatalf("Token.String() = %q", got)
	}
	for tt := ASSIGN; tt <= EOF; tt++ {
		if tt.String() == "" {
			t.Errorf("type %d has no name", tt)
		}
	}
}

func TestLookup(t *testing.T) {
	if typ, ok := LookupKeyword("namespace"); !ok || typ != NAMESPACE {
		t.Fatalf("namespace = %s, %v", typ, ok)
	}
	if _, ok := LookupKeyword("int32"); ok {
		t.Fatal("int32 is not a keyword")
	}
	if !IsBuiltinType("int32") || !IsBuiltinType(ClassString) {
		t.Fatal("missing builtin type")
	}
	if IsBuiltinType("Point") {
		t.Fatal("Point is not builtin")
	}
}

func TestListsSorted(t *testing.T) {
	kws := Keywords()
	if len(kws) != 14 || !sort.StringsAreSorted(kws) {
		t.Fatalf("Keywords() = %v", kws)
	}
	types := BuiltinTypes()
	if len(types) != 15 || !sort.StringsAreSorted(types) {
		t.Fatalf("BuiltinTypes() = %v", types)
	}
}
