package evaluator

import (
	"fmt"
	"github.com/funvibe/galaxy/internal/ast"
)

// Build turns a statement body into a single thunk.
//
// Tokens are consumed last to first on a work stack. An `ap` pops the
// function and then its argument and pushes a partial application that
// remembers how many more arguments the function still owes. Callees whose
// arity is unknown until they are reduced (variables, redexes, pairs) are
// recorded with nothing remaining and dispatched when forced.
func Build(tokens []ast.Value) (ast.Value, error) {
	stack := make([]ast.Value, 0, len(tokens))

	pop := func() (ast.Value, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, true
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := Canonicalize(tokens[i])

		switch t := tok.(type) {
		case *ast.Combinator:
			if t.Op != ast.OpAp {
				stack = append(stack, t)
				continue
			}
			fn, ok := pop()
			if !ok {
				return nil, builderError(i, "ap has no function")
			}
			arg, ok := pop()
			if !ok {
				return nil, builderError(i, fmt.Sprintf("ap %s has no argument", fn.Inspect()))
			}
			stack = append(stack, newApplication(fn, arg))

		case *ast.PartialApplication:
			if t.Remaining == 0 {
				stack = append(stack, t)
				continue
			}
			arg, ok := pop()
			if !ok {
				return nil, builderError(i, fmt.Sprintf("%s is missing an argument", t.Inspect()))
			}
			stack = append(stack, &ast.PartialApplication{
				Callee:    t,
				Args:      []ast.Value{t, arg},
				Remaining: t.Remaining - 1,
			})

		default:
			stack = append(stack, tok)
		}
	}

	if len(stack) != 1 {
		return nil, newError(ArityViolation, "ap", "body reduces to %d expressions, want 1", len(stack))
	}
	return stack[0], nil
}

// newApplication builds the thunk for `ap fn arg`.
func newApplication(fn, arg ast.Value) *ast.PartialApplication {
	remaining := ast.Arity(fn) - 1
	if remaining < 0 {
		remaining = 0
	}
	return &ast.PartialApplication{
		Callee:    fn,
		Args:      []ast.Value{fn, arg},
		Remaining: remaining,
	}
}

func builderError(pos int, msg string) *Error {
	return newError(ArityViolation, "ap", "token %d: %s", pos+1, msg)
}
