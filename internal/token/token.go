package token

type TokenType string

const (
	ILLEGAL  TokenType = "ILLEGAL"
	EOF      TokenType = "EOF"
	NEWLINE  TokenType = "NEWLINE"
	IDENT    TokenType = "IDENT"    // ap, cons, galaxy, ...
	VARIABLE TokenType = "VARIABLE" // :1029
	INT      TokenType = "INT"      // 42, -7
	ASSIGN   TokenType = "="
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	COMMA    TokenType = ","
)

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INT, int for VARIABLE
	Line    int
	Column  int
}
