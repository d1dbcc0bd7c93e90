// Package astyaml exports a syntax tree as YAML. Every node is a mapping whose
// first key is its snake_case kind; the remaining keys follow the node's
// field order.
package astyaml

import (
	"bytes"
	"strconv"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"tlang/internal/ast"
)

const DefaultIndent = 2

func Marshal(node ast.Node) ([]byte, error) {
	return MarshalIndent(node, DefaultIndent)
}

func MarshalIndent(node ast.Node, indent int) ([]byte, error) {
	if indent < 1 {
		indent = DefaultIndent
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(Node(node)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Kind is the YAML kind key of n, e.g. "binary_expression".
func Kind(n ast.Node) string {
	switch n := n.(type) {
	case ast.Expression:
		return strcase.ToSnake(n.Kind().String())
	case ast.Statement:
		return strcase.ToSnake(n.StatementKind().String())
	}
	return "unknown"
}

type mapping struct{ node *yaml.Node }

func newMapping(n ast.Node) *mapping {
	m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	m.add("kind", str(Kind(n)))
	return m
}

func (m *mapping) add(key string, v *yaml.Node) *mapping {
	m.node.Content = append(m.node.Content, str(key), v)
	return m
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func boolean(v bool) *yaml.Node { return scalar("!!bool", strconv.FormatBool(v)) }

func null() *yaml.Node { return scalar("!!null", "null") }

func seq(items []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func statements(stmts []ast.Statement) *yaml.Node {
	items := make([]*yaml.Node, 0, len(stmts))
	for _, s := range stmts {
		items = append(items, Node(s))
	}
	return seq(items)
}

func expressions(exprs []ast.Expression) *yaml.Node {
	items := make([]*yaml.Node, 0, len(exprs))
	for _, e := range exprs {
		items = append(items, Node(e))
	}
	return seq(items)
}

// Node converts n into a yaml.Node tree.
func Node(n ast.Node) *yaml.Node {
	if n == nil {
		return null()
	}
	m := newMapping(n)

	switch n := n.(type) {
	case *ast.Program:
		m.add("body", statements(n.Body))
	case *ast.ExpressionStatement:
		if n.Expression == nil {
			return null()
		}
		return Node(n.Expression)
	case *ast.Scope:
		m.add("statements", statements(n.Statements))

	case *ast.Identifier:
		m.add("name", str(n.Value))
	case *ast.NumericLiteral:
		m.add("type", str(n.Type.String()))
		switch n.Type {
		case ast.Float64:
			m.add("value", scalar("!!float", n.ValueString()))
		default:
			m.add("value", scalar("!!int", n.ValueString()))
		}
	case *ast.StringLiteral:
		m.add("value", str(n.Value))
	case *ast.CharacterLiteral:
		m.add("value", str(n.Value))
	case *ast.BoolLiteral:
		m.add("value", boolean(n.Value))
	case *ast.TypeName:
		m.add("name", str(n.Name))
		m.add("mutable", boolean(n.IsMutable))
		m.add("modifier", str(modifierName(n.Modifier)))

	case *ast.BinaryExpression:
		m.add("operator", str(n.Operator))
		m.add("left", Node(n.Left))
		m.add("right", Node(n.Right))
	case *ast.UnaryExpression:
		m.add("operator", str(n.Operator))
		m.add("prefix", boolean(n.Prefix))
		m.add("operand", Node(n.Operand))
	case *ast.AssignmentExpression:
		m.add("left", Node(n.Left))
		m.add("right", Node(n.Right))

	case *ast.VariableDeclaration:
		m.add("name", str(n.Name.Value))
		m.add("mutable", boolean(n.IsMutable))
		m.add("type", Node(n.Type))
		if n.Value != nil {
			m.add("value", Node(n.Value))
		} else {
			m.add("value", null())
		}
	case *ast.Parameter:
		m.add("name", str(n.Name.Value))
		m.add("type", Node(n.Type))
	case *ast.FunctionDeclaration:
		m.add("name", str(n.Name.Value))
		m.add("return_type", Node(n.ReturnType))
		params := make([]*yaml.Node, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, Node(p))
		}
		m.add("params", seq(params))
		m.add("body", statements(n.Body))
	case *ast.FieldDeclaration:
		m.add("access", str(n.Access.String()))
		m.add("variable", Node(n.Var))
	case *ast.MethodDeclaration:
		m.add("access", str(n.Access.String()))
		m.add("function", Node(n.Func))
	case *ast.ClassDeclaration:
		m.add("name", str(n.Type.Name))
		fields := make([]*yaml.Node, 0, len(n.Fields))
		for _, f := range n.Fields {
			fields = append(fields, Node(f))
		}
		methods := make([]*yaml.Node, 0, len(n.Methods))
		for _, md := range n.Methods {
			methods = append(methods, Node(md))
		}
		m.add("fields", seq(fields))
		m.add("methods", seq(methods))
	case *ast.FunctionCall:
		m.add("name", str(n.Name.Value))
		m.add("args", expressions(n.Args))
	case *ast.ReturnStatement:
		m.add("value", Node(n.Value))
	case *ast.NamespaceDeclaration:
		m.add("name", str(n.Name.Value))
		m.add("body", statements(n.Body))
	case *ast.IfStatement:
		m.add("condition", Node(n.Condition))
		m.add("body", statements(n.Body))
	}
	return m.node
}

func modifierName(mod ast.Modifier) string {
	switch mod {
	case ast.ModReference:
		return "reference"
	case ast.ModPointer:
		return "pointer"
	}
	return "none"
}
