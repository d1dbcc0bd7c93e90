package ast

import (
	"errors"
	"testing"

	"tlang/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Type: token.IDENT, Lexeme: name}, Value: name}
}

func uintLit(v uint64) *NumericLiteral {
	return &NumericLiteral{Type: Uint64, Uint: v}
}

func TestNewTypeName(t *testing.T) {
	tn, err := NewTypeName("int32", true, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.Modifier != ModPointer || tn.String() != "mutable int32->" {
		t.Fatalf("got %q (modifier %d)", tn.String(), tn.Modifier)
	}
	if _, err := NewTypeName("int32", false, true, true); !errors.Is(err, ErrRefAndPointer) {
		t.Fatalf("expected ErrRefAndPointer, got %v", err)
	}
}

func TestProgramString(t *testing.T) {
	typ, _ := NewTypeName("int32", false, true, false)
	program := &Program{
		Body: []Statement{
			&ExpressionStatement{Expression: &VariableDeclaration{
				Type:  typ,
				Name:  ident("x"),
				Value: &BinaryExpression{Left: uintLit(3), Operator: "+", Right: uintLit(4)},
			}},
			&ExpressionStatement{Expression: &AssignmentExpression{
				Left:  ident("x"),
				Right: &FunctionCall{Name: ident("f"), Args: []Expression{ident("a"), uintLit(1)}},
			}},
		},
	}
	want := "int32~ x = (3 + 4);\nx = f(a, 1);\n"
	if got := program.String(); got != want {
		t.Fatalf("program.String() wrong.\nwant=%q\ngot=%q", want, got)
	}
}

func TestNumericLiteralValueString(t *testing.T) {
	tests := []struct {
		lit  *NumericLiteral
		want string
	}{
		{&NumericLiteral{Type: Int64, Int: -12}, "-12"},
		{&NumericLiteral{Type: Uint64, Uint: 18446744073709551615}, "18446744073709551615"},
		{&NumericLiteral{Type: Float64, Float: 0.5}, "0.5"},
	}
	for _, tt := range tests {
		if got := tt.lit.ValueString(); got != tt.want {
			t.Fatalf("ValueString() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	if KindNamespaceDeclaration.String() != "NamespaceDeclaration" {
		t.Fatalf("got %q", KindNamespaceDeclaration.String())
	}
	if StmtScope.String() != "Scope" {
		t.Fatalf("got %q", StmtScope.String())
	}
	if Private.String() != "private" || Protected.String() != "protected" || Public.String() != "public" {
		t.Fatal("unexpected access specifier names")
	}
	if ExprKind(200).String() != "ExprKind(200)" {
		t.Fatalf("got %q", ExprKind(200).String())
	}
}

func TestWalkOrder(t *testing.T) {
	typ, _ := NewTypeName("int32", false, false, false)
	fn := &FunctionDeclaration{
		ReturnType: typ,
		Name:       ident("f"),
		Params:     []*Parameter{{Type: typ, Name: ident("a")}},
		Body: []Statement{
			&ExpressionStatement{Expression: &ReturnStatement{
				Value: &ExpressionStatement{Expression: ident("a")},
			}},
		},
	}
	var kinds []string
	Walk(fn, func(n Node) bool {
		if e, ok := n.(Expression); ok {
			kinds = append(kinds, e.Kind().String())
		}
		return true
	})
	want := []string{
		"FunctionDeclaration", "TypeName", "Identifier",
		"Parameter", "TypeName", "Identifier",
		"ReturnStatement", "Identifier",
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	expr := &BinaryExpression{Left: uintLit(1), Operator: "*", Right: uintLit(2)}
	count := 0
	Walk(expr, func(n Node) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("visited %d nodes, want 1", count)
	}
}
