package ast

// Children returns the direct children of n in source order. Nil slots
// (a variable without an initializer) are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c == nil {
			return
		}
		out = append(out, c)
	}
	addStmts := func(stmts []Statement) {
		for _, s := range stmts {
			add(s)
		}
	}

	switch n := n.(type) {
	case *Program:
		addStmts(n.Body)
	case *Scope:
		addStmts(n.Statements)
	case *ExpressionStatement:
		if n.Expression != nil {
			add(n.Expression)
		}
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		if n.Operand != nil {
			add(n.Operand)
		}
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *VariableDeclaration:
		add(n.Type)
		add(n.Name)
		if n.Value != nil {
			add(n.Value)
		}
	case *Parameter:
		add(n.Type)
		add(n.Name)
	case *FunctionDeclaration:
		add(n.ReturnType)
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		addStmts(n.Body)
	case *FieldDeclaration:
		add(n.Var)
	case *MethodDeclaration:
		add(n.Func)
	case *ClassDeclaration:
		add(n.Type)
		for _, f := range n.Fields {
			add(f)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *FunctionCall:
		add(n.Name)
		for _, a := range n.Args {
			add(a)
		}
	case *ReturnStatement:
		if n.Value != nil {
			add(n.Value)
		}
	case *NamespaceDeclaration:
		add(n.Name)
		addStmts(n.Body)
	case *IfStatement:
		add(n.Condition)
		addStmts(n.Body)
	}
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
