package astfmt

import (
	"strconv"
	"strings"

	"tlang/internal/ast"
)

// printer carries only the output and the indent unit. Depth travels as an
// argument so nothing leaks from one call to the next.
type printer struct {
	out    *strings.Builder
	indent string
}

func (p printer) line(depth int, parts ...string) {
	for i := 0; i < depth; i++ {
		p.out.WriteString(p.indent)
	}
	p.out.WriteString(strings.Join(parts, " "))
	p.out.WriteByte('\n')
}

func (p printer) statements(stmts []ast.Statement, depth int) {
	for _, s := range stmts {
		p.node(s, depth)
	}
}

func (p printer) node(n ast.Node, depth int) {
	switch n := n.(type) {
	case nil:
		p.line(depth, "<nil>")

	case *ast.Program:
		p.line(depth, "Program")
		p.statements(n.Body, depth+1)
	case *ast.ExpressionStatement:
		if n.Expression == nil {
			p.line(depth, "<nil>")
			return
		}
		p.node(n.Expression, depth)
	case *ast.Scope:
		p.line(depth, "Scope")
		p.statements(n.Statements, depth+1)

	case *ast.Identifier:
		p.line(depth, "Identifier", n.Value)
	case *ast.NumericLiteral:
		p.line(depth, "NumericLiteral", n.Type.String(), n.ValueString())
	case *ast.StringLiteral:
		p.line(depth, "StringLiteral", strconv.Quote(n.Value))
	case *ast.CharacterLiteral:
		p.line(depth, "CharacterLiteral", "'"+n.Value+"'")
	case *ast.BoolLiteral:
		p.line(depth, "BoolLiteral", strconv.FormatBool(n.Value))
	case *ast.TypeName:
		p.line(depth, "TypeName", n.String())

	case *ast.BinaryExpression:
		p.line(depth, "BinaryExpression", n.Operator)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *ast.UnaryExpression:
		fix := "(post)"
		if n.Prefix {
			fix = "(pre)"
		}
		p.line(depth, "UnaryExpression", n.Operator, fix)
		p.node(n.Operand, depth+1)
	case *ast.AssignmentExpression:
		p.line(depth, "AssignmentExpression")
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)

	case *ast.VariableDeclaration:
		if n.IsMutable {
			p.line(depth, "VariableDeclaration", n.Name.Value, "(mutable)")
		} else {
			p.line(depth, "VariableDeclaration", n.Name.Value)
		}
		p.node(n.Type, depth+1)
		if n.Value != nil {
			p.node(n.Value, depth+1)
		}
	case *ast.Parameter:
		p.line(depth, "Parameter", n.Name.Value)
		p.node(n.Type, depth+1)
	case *ast.FunctionDeclaration:
		p.line(depth, "FunctionDeclaration", n.Name.Value)
		p.node(n.ReturnType, depth+1)
		p.line(depth+1, "Parameters")
		for _, param := range n.Params {
			p.node(param, depth+2)
		}
		p.line(depth+1, "Body")
		p.statements(n.Body, depth+2)
	case *ast.FieldDeclaration:
		p.line(depth, "FieldDeclaration", n.Access.String())
		p.node(n.Var, depth+1)
	case *ast.MethodDeclaration:
		p.line(depth, "MethodDeclaration", n.Access.String())
		p.node(n.Func, depth+1)
	case *ast.ClassDeclaration:
		p.line(depth, "ClassDeclaration", n.Type.Name)
		for _, f := range n.Fields {
			p.node(f, depth+1)
		}
		for _, m := range n.Methods {
			p.node(m, depth+1)
		}
	case *ast.FunctionCall:
		p.line(depth, "FunctionCall", n.Name.Value)
		for _, arg := range n.Args {
			p.node(arg, depth+1)
		}
	case *ast.ReturnStatement:
		p.line(depth, "ReturnStatement")
		if n.Value != nil {
			p.node(n.Value, depth+1)
		}
	case *ast.NamespaceDeclaration:
		p.line(depth, "NamespaceDeclaration", n.Name.Value)
		p.statements(n.Body, depth+1)
	case *ast.IfStatement:
		p.line(depth, "IfStatement")
		p.line(depth+1, "Condition")
		p.node(n.Condition, depth+2)
		p.line(depth+1, "Body")
		p.statements(n.Body, depth+2)

	default:
		p.line(depth, "<unknown>")
	}
}
