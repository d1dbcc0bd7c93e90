package astfmt

import (
	"strings"

	"tlang/internal/ast"
)

const DefaultIndent = "  "

// Dump renders node as an indented tree, one node per line, starting at
// depth. The output depends only on the node and depth.
func Dump(node ast.Node, depth int) string {
	return DumpIndent(node, depth, DefaultIndent)
}

// DumpIndent is Dump with an explicit indent unit.
func DumpIndent(node ast.Node, depth int, indent string) string {
	if indent == "" {
		indent = DefaultIndent
	}
	if depth < 0 {
		depth = 0
	}
	var b strings.Builder
	p := printer{out: &b, indent: indent}
	p.node(node, depth)
	return b.String()
}
