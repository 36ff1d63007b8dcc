package lexer

import (
	"github.com/funvibe/galaxy/internal/token"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `:1029 = ap ap cons 7 ( -1 , nil )
galaxy = :1338`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
		expectedLine   int
	}{
		{token.VARIABLE, ":1029", 1},
		{token.ASSIGN, "=", 1},
		{token.IDENT, "ap", 1},
		{token.IDENT, "ap", 1},
		{token.IDENT, "cons", 1},
		{token.INT, "7", 1},
		{token.LPAREN, "(", 1},
		{token.INT, "-1", 1},
		{token.COMMA, ",", 1},
		{token.IDENT, "nil", 1},
		{token.RPAREN, ")", 1},
		{token.NEWLINE, "\n", 1},
		{token.IDENT, "galaxy", 2},
		{token.ASSIGN, "=", 2},
		{token.VARIABLE, ":1338", 2},
		{token.EOF, "", 2},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d", i, tt.expectedLine, tok.Line)
		}
	}
}

func TestLiterals(t *testing.T) {
	toks := New(":42 123229502148636 -7").Tokens()
	if got := toks[0].Literal.(int); got != 42 {
		t.Errorf("variable literal = %d, want 42", got)
	}
	if got := toks[1].Literal.(int64); got != 123229502148636 {
		t.Errorf("int literal = %d", got)
	}
	if got := toks[2].Literal.(int64); got != -7 {
		t.Errorf("negative literal = %d, want -7", got)
	}
}

func TestIllegal(t *testing.T) {
	tests := []string{"$", "12abc", ":", "- 1", ":12x"}
	for _, input := range tests {
		tok := New(input).NextToken()
		if tok.Type != token.ILLEGAL {
			t.Errorf("%q: expected ILLEGAL, got %s", input, tok.Type)
		}
	}
}
