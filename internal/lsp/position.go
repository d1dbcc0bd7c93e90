package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"tlang/internal/token"
)

// Pos is a 1-based line and byte column, the coordinates tokens carry.
type Pos struct {
	Line int
	Col  int
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func runeUnits(r rune) int {
	n := utf16.RuneLen(r)
	if n < 0 {
		n = 1
	}
	return n
}

func byteColToUTF16(lineText string, byteCol int) uint32 {
	if byteCol <= 1 {
		return 0
	}
	limit := byteCol - 1
	if limit > len(lineText) {
		limit = len(lineText)
	}
	var count uint32
	for _, r := range lineText[:limit] {
		count += uint32(runeUnits(r))
	}
	return count
}

func utf16ColToByte(lineText string, utf16Col int) int {
	if utf16Col <= 0 {
		return 1
	}
	count := 0
	for idx, r := range lineText {
		n := runeUnits(r)
		if count+n > utf16Col {
			return idx + 1
		}
		count += n
	}
	return len(lineText) + 1
}

func positionToByte(text string, pos protocol.Position) (Pos, bool) {
	lines := splitLines(text)
	lineIdx := int(pos.Line)
	if lineIdx < 0 || lineIdx >= len(lines) {
		return Pos{}, false
	}
	byteCol := utf16ColToByte(lines[lineIdx], int(pos.Character))
	return Pos{Line: lineIdx + 1, Col: byteCol}, true
}

// rangeFromPosLen converts a 1-based byte span on one line to an LSP range.
func rangeFromPosLen(text string, line, col, length int) protocol.Range {
	lines := splitLines(text)
	if line <= 0 || line > len(lines) {
		return protocol.Range{}
	}
	lineText := lines[line-1]
	start := protocol.Position{Line: uint32(line - 1), Character: byteColToUTF16(lineText, col)}
	end := protocol.Position{Line: start.Line, Character: byteColToUTF16(lineText, col+max(1, length))}
	if end.Character <= start.Character {
		end.Character = start.Character + 1
	}
	return protocol.Range{Start: start, End: end}
}

func tokenRange(text string, tok token.Token) protocol.Range {
	return rangeFromPosLen(text, tok.Line, tok.Col, tokenLen(tok))
}

// tokenLen is the source width of tok in bytes. String and character
// lexemes exclude their quotes.
func tokenLen(tok token.Token) int {
	switch tok.Type {
	case token.STRING, token.CHAR:
		return len(tok.Lexeme) + 2
	case token.EOF:
		return 0
	}
	return len(tok.Lexeme)
}

// tokenAt finds the token covering pos.
func tokenAt(toks []token.Token, pos Pos) (token.Token, int, bool) {
	for i, tok := range toks {
		if tok.Type == token.EOF || tok.Line > pos.Line {
			break
		}
		if tok.Line == pos.Line && pos.Col >= tok.Col && pos.Col < tok.Col+max(1, tokenLen(tok)) {
			return tok, i, true
		}
	}
	return token.Token{}, -1, false
}

// EndPositionUTF16 returns the LSP position at the end of text, using UTF-16 code units.
func EndPositionUTF16(text string) protocol.Position {
	var line uint32
	var col uint32
	for _, r := range text {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col += uint32(runeUnits(r))
	}
	return protocol.Position{Line: line, Character: col}
}

// FullDocumentRange returns an LSP range covering the entire document.
func FullDocumentRange(text string) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   EndPositionUTF16(text),
	}
}
