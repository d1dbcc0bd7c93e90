package lsp

import (
	"strings"
	"testing"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"tlang/internal/frontend"
)

const shapesDoc = `class Rect { private: int32 w; public: int32 area() { return w; } }
namespace geo {
  Rect unit;
  int32 twice(int32 n) { return n * 2; }
}
String label = "x";
x = twice(3);
`

func testDoc(t *testing.T, text string) *Document {
	t.Helper()
	return Analyze("file:///shapes.t", text, frontend.DefaultOptions())
}

func TestHoverFunction(t *testing.T) {
	doc := testDoc(t, shapesDoc)
	hover, err := HoverAt(doc, protocol.Position{Line: 6, Character: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hover == nil {
		t.Fatalf("expected hover")
	}
	value := hover.Contents.(protocol.MarkupContent).Value
	for _, want := range []string{"function: twice", "int32 twice(int32 n)", "declared at 4:9"} {
		if !strings.Contains(value, want) {
			t.Fatalf("hover %q does not contain %q", value, want)
		}
	}
	if hover.Range == nil || hover.Range.Start.Character != 4 || hover.Range.End.Character != 9 {
		t.Fatalf("unexpected hover range %+v", hover.Range)
	}
}

func TestHoverTokens(t *testing.T) {
	doc := testDoc(t, shapesDoc)
	tests := []struct {
		pos  protocol.Position
		want string
	}{
		{protocol.Position{Line: 0, Character: 0}, "keyword: class"},
		{protocol.Position{Line: 0, Character: 8}, "class: Rect"},
		{protocol.Position{Line: 0, Character: 22}, "builtin type: int32"},
		{protocol.Position{Line: 5, Character: 0}, "builtin class: String"},
		{protocol.Position{Line: 5, Character: 15}, `string literal: "x"`},
		{protocol.Position{Line: 6, Character: 2}, "binary operator: ="},
		{protocol.Position{Line: 6, Character: 0}, "identifier: x"},
	}
	for _, tt := range tests {
		hover, err := HoverAt(doc, tt.pos)
		if err != nil || hover == nil {
			t.Fatalf("hover at %+v: %v %v", tt.pos, hover, err)
		}
		if value := hover.Contents.(protocol.MarkupContent).Value; !strings.Contains(value, tt.want) {
			t.Fatalf("hover at %+v = %q, want %q", tt.pos, value, tt.want)
		}
	}

	if hover, _ := HoverAt(doc, protocol.Position{Line: 0, Character: 5}); hover != nil {
		t.Fatalf("expected no hover on whitespace, got %+v", hover)
	}
}

func TestDefinitionAt(t *testing.T) {
	doc := testDoc(t, shapesDoc)
	locs := DefinitionAt(doc, protocol.Position{Line: 2, Character: 3})
	if len(locs) != 1 {
		t.Fatalf("expected one location, got %v", locs)
	}
	r := locs[0].Range
	if r.Start.Line != 0 || r.Start.Character != 6 || r.End.Character != 10 {
		t.Fatalf("unexpected class location %+v", r)
	}

	if locs := DefinitionAt(doc, protocol.Position{Line: 6, Character: 0}); locs != nil {
		t.Fatalf("undeclared name should not resolve: %v", locs)
	}
}

func TestCompletionPrefix(t *testing.T) {
	text, pos := extractPos(t, strings.Replace(shapesDoc, "x = twice(3);", "x = tw|ice(3);", 1))
	doc := testDoc(t, text)
	items := CompletionItems(doc, pos)
	if len(items) != 1 || items[0].Label != "twice" {
		t.Fatalf("unexpected completions %v", labels(items))
	}
	if items[0].Kind == nil || *items[0].Kind != protocol.CompletionItemKindFunction {
		t.Fatalf("unexpected kind %v", items[0].Kind)
	}
}

func TestCompletionOrdering(t *testing.T) {
	text, pos := extractPos(t, shapesDoc+"|")
	doc := testDoc(t, text)
	items := CompletionItems(doc, pos)
	idxDecl := indexOfCompletion(items, "geo")
	idxClass := indexOfCompletion(items, "Rect")
	idxBuiltin := indexOfCompletion(items, "int32")
	idxKeyword := indexOfCompletion(items, "return")
	if idxDecl == -1 || idxClass == -1 || idxBuiltin == -1 || idxKeyword == -1 {
		t.Fatalf("missing expected completions: %v", labels(items))
	}
	if !(idxDecl < idxClass && idxClass < idxBuiltin && idxBuiltin < idxKeyword) {
		t.Fatalf("unexpected completion ordering: decl=%d class=%d builtin=%d keyword=%d", idxDecl, idxClass, idxBuiltin, idxKeyword)
	}
	if indexOfCompletion(items, "w") != -1 {
		t.Fatalf("class members should not be offered at top level")
	}
}

func TestCompletionAfterParseError(t *testing.T) {
	text, pos := extractPos(t, "class Box { }\nBox b = ;\nB|")
	doc := testDoc(t, text)
	if doc.Err == nil {
		t.Fatalf("expected a parse error")
	}
	items := CompletionItems(doc, pos)
	if indexOfCompletion(items, "Box") == -1 {
		t.Fatalf("expected lexer classes to be offered: %v", labels(items))
	}
}

func TestDiagnostics(t *testing.T) {
	doc := testDoc(t, "x = ;")
	ds := Diagnostics(doc)
	if len(ds) != 1 {
		t.Fatalf("expected one diagnostic, got %v", ds)
	}
	d := ds[0]
	if d.Code == nil || d.Code.Value != "TP0001" || d.Source == nil || *d.Source != "tlang" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 4 || d.Range.End.Character != 5 {
		t.Fatalf("unexpected range %+v", d.Range)
	}

	doc = testDoc(t, "s = \"π\" $")
	ds = Diagnostics(doc)
	if len(ds) != 1 || ds[0].Code.Value != "TL0001" {
		t.Fatalf("unexpected diagnostics %v", ds)
	}
	if ds[0].Range.Start.Character != 8 || ds[0].Range.End.Character != 9 {
		t.Fatalf("expected UTF-16 range 8..9, got %+v", ds[0].Range)
	}

	if ds := Diagnostics(testDoc(t, shapesDoc)); len(ds) != 0 {
		t.Fatalf("expected no diagnostics, got %v", ds)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(frontend.DefaultOptions())
	uri := "file:///a.t"
	doc := s.Set(uri, 3, "int32 x = 1;")
	if doc.Version != 3 || doc.Err != nil || doc.Unit.Program == nil {
		t.Fatalf("unexpected document %+v", doc)
	}
	got, ok := s.Get(uri)
	if !ok || got != doc {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	s.Set(uri, 4, "int32 = ;")
	if got, _ := s.Get(uri); got.Version != 4 || got.Err == nil || len(got.Index.Defs) != 0 {
		t.Fatalf("unexpected replacement %+v", got)
	}
	s.Delete(uri)
	if _, ok := s.Get(uri); ok {
		t.Fatalf("document should be gone")
	}
}

func TestURIHelpers(t *testing.T) {
	if !IsSourceURI("file:///tmp/main.t") || IsSourceURI("file:///tmp/main.txt") {
		t.Fatalf("IsSourceURI misclassifies")
	}
	if UriToPath("untitled:1") != "" {
		t.Fatalf("non-file URIs have no path")
	}
	if got := UriToPath(PathToURI("/tmp/a b.t")); !strings.HasSuffix(got, "a b.t") {
		t.Fatalf("round trip lost the path: %q", got)
	}
}

func TestFullDocumentRange(t *testing.T) {
	cases := []struct {
		text string
		want protocol.Position
	}{
		{"x=1\n", protocol.Position{Line: 1, Character: 0}},
		{"x=1", protocol.Position{Line: 0, Character: 3}},
		{"x=\"😀\"", protocol.Position{Line: 0, Character: 6}},
	}
	for _, tc := range cases {
		end := FullDocumentRange(tc.text).End
		if end != tc.want {
			t.Fatalf("FullDocumentRange(%q) end = %+v, want %+v", tc.text, end, tc.want)
		}
	}
}

func extractPos(t *testing.T, text string) (string, protocol.Position) {
	idx := strings.Index(text, "|")
	if idx == -1 {
		t.Fatalf("missing cursor marker")
	}
	before := text[:idx]
	after := text[idx+1:]
	clean := before + after
	line := uint32(0)
	col := uint32(0)
	for _, r := range before {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		col += uint32(n)
	}
	return clean, protocol.Position{Line: line, Character: col}
}

func indexOfCompletion(items []protocol.CompletionItem, label string) int {
	for i, item := range items {
		if item.Label == label {
			return i
		}
	}
	return -1
}

func labels(items []protocol.CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Label)
	}
	return out
}
