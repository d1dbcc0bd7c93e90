package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tlang/internal/token"
)

// semantic token type indices (must match TokenTypes order)
const (
	ttKeyword = iota
	ttString
	ttNumber
	ttOperator
	ttVariable
	ttType
	ttNamespace
	ttFunction
	ttComment
)

const (
	modDecl           = 1 << 0
	modDefaultLibrary = 1 << 1
)

var TokenTypes = []string{
	string(protocol.SemanticTokenTypeKeyword),
	string(protocol.SemanticTokenTypeString),
	string(protocol.SemanticTokenTypeNumber),
	string(protocol.SemanticTokenTypeOperator),
	string(protocol.SemanticTokenTypeVariable),
	string(protocol.SemanticTokenTypeType),
	string(protocol.SemanticTokenTypeNamespace),
	string(protocol.SemanticTokenTypeFunction),
	string(protocol.SemanticTokenTypeComment),
}

var TokenModifiers = []string{
	string(protocol.SemanticTokenModifierDeclaration),
	string(protocol.SemanticTokenModifierDefaultLibrary),
}

func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{TokenTypes: TokenTypes, TokenModifiers: TokenModifiers}
}

type SemTok struct {
	Line   int
	Col    int
	Length int // bytes
	Type   int
	Mods   int
}

// Classify picks the semantic type of toks[i]. Identifiers are classified
// by their neighbours: after 'namespace' a namespace, before '(' a
// function, otherwise a variable; a preceding type marks a declaration.
func Classify(toks []token.Token, i int) (typ, mods int, ok bool) {
	tok := toks[i]
	var prev, next token.Type = token.EOF, token.EOF
	if i > 0 {
		prev = toks[i-1].Type
	}
	if i+1 < len(toks) {
		next = toks[i+1].Type
	}
	declared := prev.IsTypeName() || prev.IsRefOrPtr()

	switch {
	case tok.Type.IsKeyword(), tok.Type == token.BOOL:
		return ttKeyword, 0, true
	case tok.Type == token.STRING, tok.Type == token.CHAR:
		return ttString, 0, true
	case tok.Type == token.INT, tok.Type == token.NEGINT, tok.Type == token.FLOAT:
		return ttNumber, 0, true
	case tok.Type.IsBinaryOperator(), tok.Type.IsUnaryOperator(), tok.Type.IsRefOrPtr():
		return ttOperator, 0, true
	case tok.Type == token.PRIMITIVE:
		return ttType, modDefaultLibrary, true
	case tok.Type == token.CLASSTYPE:
		switch {
		case tok.Lexeme == token.ClassString:
			return ttType, modDefaultLibrary, true
		case prev == token.CLASS:
			return ttType, modDecl, true
		}
		return ttType, 0, true
	case tok.Type == token.IDENT:
		switch {
		case prev == token.NAMESPACE:
			return ttNamespace, modDecl, true
		case next == token.LPAREN:
			if declared {
				return ttFunction, modDecl, true
			}
			return ttFunction, 0, true
		case declared:
			return ttVariable, modDecl, true
		}
		return ttVariable, 0, true
	}
	return 0, 0, false
}
