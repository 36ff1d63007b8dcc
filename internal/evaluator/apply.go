package evaluator

import (
	"github.com/funvibe/galaxy/internal/ast"
)

// Apply applies callee to operands, given in application order. The result
// may itself be a thunk; use Resolve or Force to reduce it further.
func (e *Evaluator) Apply(callee ast.Value, operands []ast.Value) (ast.Value, error) {
	return e.apply(callee, operands)
}

func (e *Evaluator) apply(callee ast.Value, ops []ast.Value) (ast.Value, error) {
	if len(ops) == 0 {
		return callee, nil
	}

	switch c := callee.(type) {
	case *ast.Combinator:
		n := c.Op.Arity()
		if n == 0 {
			// nil x = t
			return e.apply(ast.True, ops[1:])
		}
		if len(ops) < n {
			args := make([]ast.Value, 0, len(ops)+1)
			args = append(args, c)
			args = append(args, ops...)
			return &ast.PartialApplication{Callee: c, Args: args, Remaining: n - len(ops)}, nil
		}
		result, err := e.builtin(c.Op, ops[:n])
		if err != nil {
			return nil, err
		}
		return e.apply(result, ops[n:])

	case *ast.PartialApplication:
		if c.Remaining == 0 {
			return e.applyResolved(c, ops)
		}
		if len(c.Args) == 0 {
			return nil, newError(ArityViolation, "ap", "application without a callee")
		}
		// Unwind one level so nested wrappers become one flat call.
		args := make([]ast.Value, 0, len(c.Args)-1+len(ops))
		args = append(args, c.Args[1:]...)
		args = append(args, ops...)
		return e.apply(c.Args[0], args)

	case *ast.Variable:
		return e.applyResolved(c, ops)

	case *ast.Pair:
		// cons a b f = f a b
		args := make([]ast.Value, 0, len(ops)+1)
		args = append(args, c.Left, c.Right)
		args = append(args, ops[1:]...)
		return e.apply(ops[0], args)

	case *ast.ListLiteral:
		return nil, newError(InvariantViolation, "ap", "list literal %s used as a function", c.Inspect())

	default:
		return nil, newError(TypeMismatch, "ap", "%s is not a function", callee.Inspect())
	}
}

// applyResolved reduces a callee whose arity is only known once it is in
// weak-head normal form, then applies it.
func (e *Evaluator) applyResolved(callee ast.Value, ops []ast.Value) (ast.Value, error) {
	head, err := e.whnf(callee)
	if err != nil {
		return nil, err
	}
	return e.apply(head, ops)
}
