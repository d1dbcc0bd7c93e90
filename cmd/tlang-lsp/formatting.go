package main

import (
	"strings"

	"tlang/internal/format"
	"tlang/internal/lsp"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !lsp.IsSourceURI(uri) {
		return []protocol.TextEdit{}, nil
	}

	doc, ok := store.Get(uri)
	if !ok {
		return []protocol.TextEdit{}, nil
	}

	indent := formatIndentFromOptions(params.Options)
	formatted, err := format.Source(doc.Text, format.Options{Indent: indent})
	if err != nil || formatted == doc.Text {
		return []protocol.TextEdit{}, nil
	}

	edit := protocol.TextEdit{
		Range:   lsp.FullDocumentRange(doc.Text),
		NewText: formatted,
	}
	return []protocol.TextEdit{edit}, nil
}

// formatIndentFromOptions honours the client's settings, falling back to
// the manifest's [fmt] section when the client sends none.
func formatIndentFromOptions(opts protocol.FormattingOptions) string {
	_, hasSpaces := opts[protocol.FormattingOptionInsertSpaces]
	_, hasSize := opts[protocol.FormattingOptionTabSize]
	if indent := workspace.formatIndent(); !hasSpaces && !hasSize && indent != "" {
		return indent
	}

	insertSpaces := true
	if v, ok := opts[protocol.FormattingOptionInsertSpaces]; ok {
		if b, ok := v.(bool); ok {
			insertSpaces = b
		}
	}

	tabSize := 2
	if v, ok := opts[protocol.FormattingOptionTabSize]; ok {
		switch n := v.(type) {
		case int:
			tabSize = n
		case int32:
			tabSize = int(n)
		case int64:
			tabSize = int(n)
		case uint32:
			tabSize = int(n)
		case float64:
			tabSize = int(n)
		}
	}
	if tabSize <= 0 {
		tabSize = 2
	}

	if insertSpaces {
		return strings.Repeat(" ", tabSize)
	}
	return "\t"
}
