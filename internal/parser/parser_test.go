package parser_test

import (
	"errors"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/parser"
	"strings"
	"testing"
)

func TestParseStatements(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string // Statement.String() per statement
	}{
		{"single", ":1096 = ap inc 1", []string{":1096 = ap inc 1"}},
		{"named", "galaxy = :1338", []string{"galaxy = :1338"}},
		{"negative", ":1 = ap neg -5", []string{":1 = ap neg -5"}},
		{"vec alias", ":1 = ap ap vec 1 2", []string{":1 = ap ap cons 1 2"}},
		{"list", ":1 = ( 1 , :2 , nil )", []string{":1 = ( 1 , :2 , nil )"}},
		{"nested list", ":1 = ( ( 1 , 2 ) , 3 )", []string{":1 = ( ( 1 , 2 ) , 3 )"}},
		{"empty list is nil", ":1 = ap car ( )", []string{":1 = ap car nil"}},
		{"blank lines", "\n:1 = 1\n\n:2 = 2\n", []string{":1 = 1", ":2 = 2"}},
		{"comment", "// header\n:1 = ap inc 1 // trailing", []string{":1 = ap inc 1"}},
		{
			"multi",
			":1096 = ap inc 1\n         :302 = ap inc :1096",
			[]string{":1096 = ap inc 1", ":302 = ap inc :1096"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stmts, err := parser.Parse(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(stmts) != len(tc.want) {
				t.Fatalf("expected %d statements, got %d", len(tc.want), len(stmts))
			}
			for i, stmt := range stmts {
				if got := stmt.String(); got != tc.want[i] {
					t.Errorf("statement %d = %q, want %q", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	stmts, err := parser.Parse(":1 = ap ap cons 7 ( 1 , -2 )")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := stmts[0]
	if stmt.ID != ast.VarID(1) {
		t.Errorf("id = %v, want :1", stmt.ID)
	}
	if stmt.Line != 1 {
		t.Errorf("line = %d, want 1", stmt.Line)
	}
	if len(stmt.Body) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(stmt.Body))
	}
	if c, ok := stmt.Body[0].(*ast.Combinator); !ok || c.Op != ast.OpAp {
		t.Errorf("token 0 = %s, want ap", stmt.Body[0].Inspect())
	}
	if l, ok := stmt.Body[3].(*ast.Literal); !ok || l.Value != 7 {
		t.Errorf("token 3 = %s, want 7", stmt.Body[3].Inspect())
	}
	list, ok := stmt.Body[4].(*ast.ListLiteral)
	if !ok {
		t.Fatalf("token 4 is %T, want *ast.ListLiteral", stmt.Body[4])
	}
	if len(list.Elements) != 2 {
		t.Errorf("list has %d elements, want 2", len(list.Elements))
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		line  int
	}{
		{"missing assign", ":1 ap inc 1", diagnostics.ErrP001, 1},
		{"empty body", ":1 =", diagnostics.ErrP001, 1},
		{"unknown word", ":1 = ap frobnicate 1", diagnostics.ErrP002, 1},
		{"unterminated list", ":1 = ( 1 , 2", diagnostics.ErrP003, 1},
		{"list missing comma", ":1 = ( 1 2 )", diagnostics.ErrP003, 1},
		{"bad identifier", "1 = 2", diagnostics.ErrP001, 1},
		{"illegal char", ":1 = ap inc $", diagnostics.ErrL001, 1},
		{"integer overflow", ":1 = 99999999999999999999", diagnostics.ErrL001, 1},
		{"second line", ":1 = 1\n:2 = =", diagnostics.ErrP001, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stmts, err := parser.Parse(tc.input)
			if err == nil {
				t.Fatalf("expected error, got %d statements", len(stmts))
			}
			if stmts != nil {
				t.Errorf("expected no partial result, got %d statements", len(stmts))
			}
			var diag *diagnostics.DiagnosticError
			if !errors.As(err, &diag) {
				t.Fatalf("expected DiagnosticError, got %T", err)
			}
			if diag.Code != tc.code {
				t.Errorf("code = %s, want %s (%s)", diag.Code, tc.code, diag.Message)
			}
			if diag.Token.Line != tc.line {
				t.Errorf("line = %d, want %d", diag.Token.Line, tc.line)
			}
		})
	}
}

func TestParseExpression(t *testing.T) {
	body, err := parser.ParseExpression("ap ap add 1 :2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := make([]string, len(body))
	for i, v := range body {
		parts[i] = v.Inspect()
	}
	if got := strings.Join(parts, " "); got != "ap ap add 1 :2" {
		t.Errorf("body = %q", got)
	}

	if _, err := parser.ParseExpression(""); err == nil {
		t.Error("expected error for empty expression")
	}
	if _, err := parser.ParseExpression(":1 = 2"); err == nil {
		t.Error("expected error for a statement given as expression")
	}
}
