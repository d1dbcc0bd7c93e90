package ast

import "fmt"

var exprKindNames = [...]string{
	KindIdentifier:           "Identifier",
	KindNumericLiteral:       "NumericLiteral",
	KindStringLiteral:        "StringLiteral",
	KindCharacterLiteral:     "CharacterLiteral",
	KindBoolLiteral:          "BoolLiteral",
	KindBinaryExpression:     "BinaryExpression",
	KindUnaryExpression:      "UnaryExpression",
	KindAssignmentExpression: "AssignmentExpression",
	KindVariableDeclaration:  "VariableDeclaration",
	KindFunctionDeclaration:  "FunctionDeclaration",
	KindParameter:            "Parameter",
	KindFieldDeclaration:     "FieldDeclaration",
	KindMethodDeclaration:    "MethodDeclaration",
	KindClassDeclaration:     "ClassDeclaration",
	KindFunctionCall:         "FunctionCall",
	KindReturnStatement:      "ReturnStatement",
	KindNamespaceDeclaration: "NamespaceDeclaration",
	KindIfStatement:          "IfStatement",
	KindTypeName:             "TypeName",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", uint8(k))
}

func (k StatementKind) String() string {
	switch k {
	case StmtExpression:
		return "ExpressionStatement"
	case StmtProgram:
		return "Program"
	case StmtScope:
		return "Scope"
	}
	return fmt.Sprintf("StatementKind(%d)", uint8(k))
}

// String is the source suffix for the modifier: "", "~" or "->".
func (m Modifier) String() string {
	switch m {
	case ModReference:
		return "~"
	case ModPointer:
		return "->"
	}
	return ""
}

func (a AccessSpecifier) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return fmt.Sprintf("AccessSpecifier(%d)", uint8(a))
}

func (t NumericType) String() string {
	switch t {
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("NumericType(%d)", uint8(t))
}
