package lexer

import (
	"errors"
	"strings"
	"testing"

	"tlang/internal/token"
)

func TestComments(t *testing.T) {
	input := "\n" +
		"x = 1; // comment = 2\n" +
		"// whole line\n" +
		"y = 2; //"
	assertTokens(t, input, []wantTok{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.INT, "2"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestCommentDoesNotChangeSignContext(t *testing.T) {
	assertTokens(t, "x = // note\n-3;", []wantTok{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NEGINT, "-3"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestStrings(t *testing.T) {
	assertTokens(t, `s = "hello world"; e = ""; q = "a//b";`, []wantTok{
		{token.IDENT, "s"},
		{token.ASSIGN, "="},
		{token.STRING, "hello world"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "e"},
		{token.ASSIGN, "="},
		{token.STRING, ""},
		{token.SEMICOLON, ";"},
		{token.IDENT, "q"},
		{token.ASSIGN, "="},
		{token.STRING, "a//b"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unterminated", `x = "abc`, "unterminated string literal"},
		{"newline", "x = \"ab\ncd\";", "newline in string literal"},
		{"carriage return", "x = \"ab\rcd\";", "newline in string literal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if toks != nil {
				t.Fatalf("expected no tokens, got %v", toks)
			}
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if !strings.Contains(lerr.Message, tt.msg) {
				t.Fatalf("message %q does not mention %q", lerr.Message, tt.msg)
			}
			if lerr.Line != 1 || lerr.Col != 5 {
				t.Fatalf("error at %d:%d, want 1:5", lerr.Line, lerr.Col)
			}
		})
	}
}

func TestCharLiterals(t *testing.T) {
	assertTokens(t, `c = 'a'; n = '\n'; s = 'x`, []wantTok{
		{token.IDENT, "c"},
		{token.ASSIGN, "="},
		{token.CHAR, "a"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "n"},
		{token.ASSIGN, "="},
		{token.CHAR, `\n`},
		{token.SEMICOLON, ";"},
		{token.IDENT, "s"},
		{token.ASSIGN, "="},
		{token.CHAR, "x"},
		{token.EOF, ""},
	})
}

func TestCharLiteralClosingQuoteNotValidated(t *testing.T) {
	assertTokens(t, `'ab;`, []wantTok{
		{token.CHAR, "a"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
	if _, err := Tokenize(`x = '`); err == nil {
		t.Fatal("expected an error for a quote at end of input")
	}
}

func TestCommentsAreRecorded(t *testing.T) {
	l := New("x = 1; // trailing\r\n// own line\ny = 2; //")
	if _, err := l.Tokenize(); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []Comment{
		{Line: 1, Col: 8, Text: " trailing"},
		{Line: 2, Col: 1, Text: " own line"},
		{Line: 3, Col: 8, Text: ""},
	}
	got := l.Comments()
	if len(got) != len(want) {
		t.Fatalf("expected %d comments, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("comment[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
