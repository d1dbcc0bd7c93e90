package lsp

import (
	"fmt"
	"strings"

	"tlang/internal/ast"
	"tlang/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocIndex holds the declarations of one document. Defs maps a declared
// name to its first declaration; Symbols is the outline.
type DocIndex struct {
	Defs    map[string]Def
	Symbols []protocol.DocumentSymbol
}

type Def struct {
	Name     string
	Kind     protocol.SymbolKind
	Detail   string
	Location protocol.Location
}

func BuildIndex(uri string, text string, prog *ast.Program) *DocIndex {
	ix := &DocIndex{
		Defs:    map[string]Def{},
		Symbols: []protocol.DocumentSymbol{},
	}
	if prog == nil {
		return ix
	}

	symbol := func(name string, tok token.Token, kind protocol.SymbolKind, detail string) protocol.DocumentSymbol {
		r := tokenRange(text, tok)
		if _, ok := ix.Defs[name]; !ok {
			ix.Defs[name] = Def{
				Name:     name,
				Kind:     kind,
				Detail:   detail,
				Location: protocol.Location{URI: protocol.DocumentUri(uri), Range: r},
			}
		}
		sym := protocol.DocumentSymbol{
			Name:           name,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		}
		if detail != "" {
			sym.Detail = ptrString(detail)
		}
		return sym
	}

	// Scopes and statement wrappers are descended into; a declaration is
	// recorded and its subtree skipped.
	var indexStatements func([]ast.Statement) []protocol.DocumentSymbol
	indexStatements = func(stmts []ast.Statement) []protocol.DocumentSymbol {
		out := []protocol.DocumentSymbol{}
		visit := func(n ast.Node) bool {
			switch e := n.(type) {
			case *ast.Scope, *ast.ExpressionStatement:
				return true
			case *ast.NamespaceDeclaration:
				sym := symbol(e.Name.Value, e.Name.Token, protocol.SymbolKindNamespace, "")
				sym.Children = indexStatements(e.Body)
				out = append(out, sym)
			case *ast.ClassDeclaration:
				out = append(out, classSymbol(text, e, symbol))
			case *ast.FunctionDeclaration:
				out = append(out, symbol(e.Name.Value, e.Name.Token, protocol.SymbolKindFunction, Signature(e)))
			case *ast.VariableDeclaration:
				out = append(out, symbol(e.Name.Value, e.Name.Token, protocol.SymbolKindVariable, e.Type.String()))
			}
			return false
		}
		for _, st := range stmts {
			ast.Walk(st, visit)
		}
		return out
	}

	ix.Symbols = indexStatements(prog.Body)
	return ix
}

type symbolFunc func(name string, tok token.Token, kind protocol.SymbolKind, detail string) protocol.DocumentSymbol

// classSymbol lists fields and methods as children. Members are not added
// to Defs: they are only reachable through a value.
func classSymbol(text string, decl *ast.ClassDeclaration, symbol symbolFunc) protocol.DocumentSymbol {
	sym := symbol(decl.Type.Name, decl.Type.Token, protocol.SymbolKindClass, "class")
	members := []protocol.DocumentSymbol{}
	for _, f := range decl.Fields {
		r := tokenRange(text, f.Var.Name.Token)
		members = append(members, protocol.DocumentSymbol{
			Name:           f.Var.Name.Value,
			Detail:         ptrString(f.Access.String() + " " + f.Var.Type.String()),
			Kind:           protocol.SymbolKindField,
			Range:          r,
			SelectionRange: r,
		})
	}
	for _, m := range decl.Methods {
		r := tokenRange(text, m.Func.Name.Token)
		members = append(members, protocol.DocumentSymbol{
			Name:           m.Func.Name.Value,
			Detail:         ptrString(m.Access.String() + " " + Signature(m.Func)),
			Kind:           protocol.SymbolKindMethod,
			Range:          r,
			SelectionRange: r,
		})
	}
	sym.Children = members
	return sym
}

// Signature renders a function head, e.g. "int32 add(int32 a, int32 b)".
func Signature(fn *ast.FunctionDeclaration) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Type.String()+" "+p.Name.Value)
	}
	return fmt.Sprintf("%s %s(%s)", fn.ReturnType.String(), fn.Name.Value, strings.Join(params, ", "))
}
