package lsp

import (
	"tlang/internal/lexer"
	"tlang/internal/token"
)

// SemanticTokensForText returns unencoded semantic tokens for text. A
// source that does not lex yields none.
func SemanticTokensForText(text string) []SemTok {
	l := lexer.New(text)
	toks, err := l.Tokenize()
	if err != nil {
		return nil
	}
	return semanticTokens(toks, l.Comments())
}

func semanticTokens(toks []token.Token, comments []lexer.Comment) []SemTok {
	sem := make([]SemTok, 0, len(toks)+len(comments))
	for i, tok := range toks {
		if tok.Type == token.EOF {
			break
		}
		tt, mods, ok := Classify(toks, i)
		if !ok {
			continue
		}
		sem = append(sem, SemTok{
			Line:   tok.Line,
			Col:    tok.Col,
			Length: tokenLen(tok),
			Type:   tt,
			Mods:   mods,
		})
	}
	for _, c := range comments {
		sem = append(sem, SemTok{Line: c.Line, Col: c.Col, Length: len(c.Text) + 2, Type: ttComment})
	}
	return sem
}
