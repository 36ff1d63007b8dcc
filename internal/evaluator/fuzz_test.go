package evaluator

import (
	"context"
	"errors"
	"fmt"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/parser"
	"strings"
	"testing"
	"time"
)

// byteSource uses a byte slice as a source of randomness.
type byteSource struct {
	data []byte
	pos  int
}

func (s *byteSource) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

const (
	fuzzMaxStatements = 4
	fuzzMaxTokens     = 12
)

// generateProgram turns fuzz data into a program of numbered statements
// whose bodies mix combinators, small literals, variables and list literals.
func generateProgram(data []byte) string {
	src := &byteSource{data: data}
	names := ast.Names()
	n := src.Intn(fuzzMaxStatements) + 1

	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, ":%d =", i)
		tokens := src.Intn(fuzzMaxTokens) + 1
		for j := 0; j < tokens; j++ {
			switch src.Intn(6) {
			case 0, 1:
				sb.WriteString(" ap")
			case 2:
				sb.WriteString(" " + names[src.Intn(len(names))])
			case 3:
				fmt.Fprintf(&sb, " %d", src.Intn(21)-10)
			case 4:
				fmt.Fprintf(&sb, " :%d", src.Intn(n)+1)
			case 5:
				fmt.Fprintf(&sb, " ( %d , %d )", src.Intn(5), src.Intn(5))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FuzzInterpret checks that arbitrary programs either evaluate or fail with
// a typed error, and never panic or run away.
func FuzzInterpret(f *testing.F) {
	f.Add([]byte("seed"))
	f.Add([]byte{3, 0, 0, 2, 9, 3, 7})
	f.Add([]byte{1, 5, 4, 0, 4, 1})
	f.Add([]byte("recursive program"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 256 {
			return
		}
		input := generateProgram(data)
		stmts, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("generated program does not parse: %v\n%s", err, input)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		ev := New(nil)
		ev.Context = ctx
		ev.MaxIterations = 2000
		ev.MaxDepth = 200

		v, err := ev.Interpret(stmts)
		if err != nil {
			var evalErr *Error
			if !errors.As(err, &evalErr) {
				t.Fatalf("untyped error %T: %v\n%s", err, err, input)
			}
			return
		}
		if v == nil {
			t.Fatalf("nil value without error\n%s", input)
		}
		if _, ok := v.(*ast.ListLiteral); ok {
			t.Fatalf("list literal escaped evaluation\n%s", input)
		}
	})
}
