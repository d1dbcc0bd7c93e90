package lsp

import (
	"fmt"
	"sort"
	"strings"

	"tlang/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func HoverAt(doc *Document, pos protocol.Position) (*protocol.Hover, error) {
	tok, ok := documentTokenAt(doc, pos)
	if !ok {
		return nil, nil
	}

	var lines []string
	switch {
	case tok.Type == token.PRIMITIVE:
		lines = append(lines, "builtin type: "+tok.Lexeme)
	case tok.Type == token.CLASSTYPE && tok.Lexeme == token.ClassString:
		lines = append(lines, "builtin class: "+tok.Lexeme)
	case tok.Type == token.CLASSTYPE:
		lines = append(lines, "class: "+tok.Lexeme)
		if def, ok := doc.Index.Defs[tok.Lexeme]; ok {
			lines = append(lines, declaredAt(def))
		}
	case tok.Type == token.IDENT:
		def, ok := doc.Index.Defs[tok.Lexeme]
		if !ok {
			lines = append(lines, "identifier: "+tok.Lexeme)
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", kindLabelFor(def.Kind), def.Name))
		if def.Detail != "" {
			lines = append(lines, "```\n"+def.Detail+"\n```")
		}
		lines = append(lines, declaredAt(def))
	case tok.Type.IsKeyword() || tok.Type == token.BOOL:
		lines = append(lines, "keyword: "+tok.Lexeme)
	case tok.Type.IsLiteral():
		lines = append(lines, fmt.Sprintf("%s literal: %s", literalLabel(tok.Type), sourceText(tok)))
	case tok.Type.IsBinaryOperator():
		lines = append(lines, "binary operator: "+tok.Lexeme)
	case tok.Type.IsUnaryOperator():
		lines = append(lines, "unary operator: "+tok.Lexeme)
	case tok.Type.IsRefOrPtr():
		lines = append(lines, "type modifier: "+tok.Lexeme)
	default:
		return nil, nil
	}

	r := tokenRange(doc.Text, tok)
	contents := protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: strings.Join(lines, "\n\n")}
	return &protocol.Hover{Contents: contents, Range: &r}, nil
}

// DefinitionAt resolves a name by its first top-level or namespace
// declaration. Names are matched textually.
func DefinitionAt(doc *Document, pos protocol.Position) []protocol.Location {
	tok, ok := documentTokenAt(doc, pos)
	if !ok || (tok.Type != token.IDENT && tok.Type != token.CLASSTYPE) {
		return nil
	}
	def, ok := doc.Index.Defs[tok.Lexeme]
	if !ok {
		return nil
	}
	return []protocol.Location{def.Location}
}

func documentTokenAt(doc *Document, pos protocol.Position) (token.Token, bool) {
	if doc == nil || doc.Unit == nil || doc.Unit.Tokens == nil {
		return token.Token{}, false
	}
	p, ok := positionToByte(doc.Text, pos)
	if !ok {
		return token.Token{}, false
	}
	tok, _, ok := tokenAt(doc.Unit.Tokens, p)
	return tok, ok
}

func declaredAt(def Def) string {
	start := def.Location.Range.Start
	return fmt.Sprintf("declared at %d:%d", start.Line+1, start.Character+1)
}

func literalLabel(t token.Type) string {
	switch t {
	case token.STRING:
		return "string"
	case token.CHAR:
		return "character"
	case token.BOOL:
		return "bool"
	case token.FLOAT:
		return "float"
	case token.NEGINT:
		return "signed integer"
	default:
		return "integer"
	}
}

func sourceText(tok token.Token) string {
	switch tok.Type {
	case token.STRING:
		return `"` + tok.Lexeme + `"`
	case token.CHAR:
		return "'" + tok.Lexeme + "'"
	}
	return tok.Lexeme
}

type completionKind int

const (
	compDecl completionKind = iota
	compClass
	compBuiltinType
	compKeyword
)

type completionCandidate struct {
	name   string
	kind   completionKind
	symbol protocol.SymbolKind
	detail string
}

// CompletionItems offers the document's declarations, its classes, the
// builtin types and the keywords, in that order, filtered by the word left
// of the cursor. Classes come from the lexer, so they survive a parse error.
func CompletionItems(doc *Document, pos protocol.Position) []protocol.CompletionItem {
	if doc == nil {
		return nil
	}
	prefix := wordBefore(doc.Text, pos)
	items := []completionCandidate{}
	seen := map[string]bool{}
	add := func(c completionCandidate) {
		if c.name == "" || seen[c.name] || !strings.HasPrefix(c.name, prefix) {
			return
		}
		seen[c.name] = true
		items = append(items, c)
	}

	if doc.Index != nil {
		for name, def := range doc.Index.Defs {
			if def.Kind == protocol.SymbolKindClass {
				continue
			}
			add(completionCandidate{name: name, kind: compDecl, symbol: def.Kind, detail: def.Detail})
		}
	}
	if doc.Unit != nil {
		for _, name := range doc.Unit.Classes {
			add(completionCandidate{name: name, kind: compClass})
		}
	}
	for _, name := range token.BuiltinTypes() {
		add(completionCandidate{name: name, kind: compBuiltinType})
	}
	for _, kw := range token.Keywords() {
		add(completionCandidate{name: kw, kind: compKeyword})
	}
	for _, lit := range []string{"true", "false"} {
		add(completionCandidate{name: lit, kind: compKeyword})
	}

	return buildCompletionItems(items)
}

func wordBefore(text string, pos protocol.Position) string {
	p, ok := positionToByte(text, pos)
	if !ok {
		return ""
	}
	line := splitLines(text)[p.Line-1]
	end := min(p.Col-1, len(line))
	start := end
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:end]
}

func isWordByte(ch byte) bool {
	return ch == '_' || (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func buildCompletionItems(items []completionCandidate) []protocol.CompletionItem {
	sort.Slice(items, func(i, j int) bool {
		if items[i].kind != items[j].kind {
			return items[i].kind < items[j].kind
		}
		return items[i].name < items[j].name
	})

	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		ci := protocol.CompletionItem{
			Label: it.name,
			Kind:  completionItemKindPtr(it),
		}
		if it.detail != "" {
			ci.Detail = ptrString(it.detail)
		}
		out = append(out, ci)
	}
	return out
}

func completionItemKind(it completionCandidate) protocol.CompletionItemKind {
	switch it.kind {
	case compClass, compBuiltinType:
		return protocol.CompletionItemKindClass
	case compKeyword:
		return protocol.CompletionItemKindKeyword
	}
	switch it.symbol {
	case protocol.SymbolKindFunction:
		return protocol.CompletionItemKindFunction
	case protocol.SymbolKindNamespace:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindVariable
	}
}

func completionItemKindPtr(it completionCandidate) *protocol.CompletionItemKind {
	k := completionItemKind(it)
	return &k
}

func kindLabelFor(kind protocol.SymbolKind) string {
	switch kind {
	case protocol.SymbolKindFunction:
		return "function"
	case protocol.SymbolKindNamespace:
		return "namespace"
	case protocol.SymbolKindClass:
		return "class"
	case protocol.SymbolKindVariable:
		return "variable"
	default:
		return "symbol"
	}
}
