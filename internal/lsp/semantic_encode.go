package lsp

import "sort"

// EncodeSemanticTokens produces the LSP relative encoding. Columns and
// lengths are converted from bytes to UTF-16 units against text.
func EncodeSemanticTokens(text string, toks []SemTok) []uint32 {
	sort.Slice(toks, func(i, j int) bool {
		if toks[i].Line != toks[j].Line {
			return toks[i].Line < toks[j].Line
		}
		return toks[i].Col < toks[j].Col
	})

	lines := splitLines(text)
	data := make([]uint32, 0, len(toks)*5)
	var prevLine, prevChar uint32

	for _, t := range toks {
		if t.Length <= 0 || t.Line < 1 || t.Line > len(lines) {
			continue
		}
		lineText := lines[t.Line-1]
		line := uint32(t.Line - 1)
		char := byteColToUTF16(lineText, t.Col)
		length := byteColToUTF16(lineText, t.Col+t.Length) - char
		if length == 0 {
			continue
		}

		deltaLine := line - prevLine
		deltaStart := char
		if deltaLine == 0 {
			deltaStart = char - prevChar
		}
		data = append(data, deltaLine, deltaStart, length, uint32(t.Type), uint32(t.Mods))
		prevLine, prevChar = line, char
	}
	return data
}
