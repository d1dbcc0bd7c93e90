package format

import (
	"fmt"
	"strings"

	"tlang/internal/ast"
	"tlang/internal/format/astfmt"
	"tlang/internal/format/astyaml"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Render serializes node in the requested format. An empty Format means text.
func Render(node ast.Node, opt Options) (string, error) {
	switch opt.Format {
	case "", FormatText:
		return astfmt.DumpIndent(node, 0, opt.Indent), nil
	case FormatYAML:
		out, err := astyaml.MarshalIndent(node, yamlIndent(opt.Indent))
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("unknown output format %q (want %s or %s)", opt.Format, FormatText, FormatYAML)
}

func yamlIndent(indent string) int {
	if indent == "" || strings.Trim(indent, " ") != "" {
		return astyaml.DefaultIndent
	}
	return len(indent)
}
