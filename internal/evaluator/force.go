package evaluator

import (
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/samber/lo"
)

// Resolve reduces v to weak-head normal form. A pair is returned with both
// components fully forced, every other value is returned as soon as its
// outermost shape is known.
func (e *Evaluator) Resolve(v ast.Value) (ast.Value, error) {
	w, err := e.whnf(v)
	if err != nil {
		return nil, err
	}
	p, ok := w.(*ast.Pair)
	if !ok {
		return w, nil
	}
	left, err := e.Force(p.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Force(p.Right)
	if err != nil {
		return nil, err
	}
	return &ast.Pair{Left: left, Right: right}, nil
}

// Force reduces v completely: every reachable pair component is resolved.
// Unsaturated applications are values and are left as they are. The cells
// visited by one outermost Force, nested ones included, count against
// MaxNodes.
func (e *Evaluator) Force(v ast.Value) (ast.Value, error) {
	if e.depth == 0 {
		e.nodes = 0
	}
	if err := e.charge(); err != nil {
		return nil, err
	}
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	w, err := e.whnf(Canonicalize(v))
	if err != nil {
		return nil, err
	}
	if _, ok := w.(*ast.Pair); !ok {
		return w, nil
	}

	// Walk the right spine iteratively so long lists do not nest.
	var heads []ast.Value
	for {
		p, ok := w.(*ast.Pair)
		if !ok {
			break
		}
		head, err := e.Force(p.Left)
		if err != nil {
			return nil, err
		}
		heads = append(heads, head)
		if err := e.charge(); err != nil {
			return nil, err
		}
		if w, err = e.whnf(Canonicalize(p.Right)); err != nil {
			return nil, err
		}
	}

	out := w
	for i := len(heads) - 1; i >= 0; i-- {
		out = &ast.Pair{Left: heads[i], Right: out}
	}
	return out, nil
}

// whnf loops until v is no longer a redex or a variable.
func (e *Evaluator) whnf(v ast.Value) (ast.Value, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	limit := e.maxIterations()
	for i := 0; ; i++ {
		if i >= limit {
			return nil, newError(Divergence, "", "no normal form after %d reduction steps", limit)
		}
		if err := e.ctx().Err(); err != nil {
			return nil, &Error{Kind: Divergence, Message: "evaluation interrupted", Err: err}
		}

		switch t := v.(type) {
		case *ast.PartialApplication:
			if t.Remaining > 0 {
				return t, nil
			}
			if len(t.Args) == 0 {
				return nil, newError(ArityViolation, "ap", "application without a callee")
			}
			e.trace("reduce", t)
			next, err := e.apply(t.Args[0], t.Args[1:])
			if err != nil {
				return nil, err
			}
			v = next

		case *ast.Variable:
			next, err := e.expand(t)
			if err != nil {
				return nil, err
			}
			v = next

		default:
			return v, nil
		}
	}
}

// expand replaces a variable by the thunk of its body, or by its cached
// weak-head value when memoization is on.
func (e *Evaluator) expand(v *ast.Variable) (ast.Value, error) {
	id := ast.VarID(v.Index)
	body, ok := e.Env.Lookup(id)
	if !ok {
		return nil, newError(UnboundIdentifier, id.String(), "no statement defines it")
	}
	e.trace("expand", v)

	if !e.Memoize {
		return Build(body)
	}

	cell := e.Env.cell(id)
	if cell.value != nil {
		return cell.value, nil
	}
	if cell.pending {
		return nil, newError(Divergence, id.String(), "value depends on itself")
	}
	cell.pending = true

	thunk, err := Build(body)
	if err == nil {
		thunk, err = e.whnf(thunk)
	}
	if err != nil {
		e.Env.forget(id)
		return nil, err
	}
	cell.pending = false
	cell.value = thunk
	return thunk, nil
}

// charge counts one forced cell.
func (e *Evaluator) charge() error {
	e.nodes++
	if e.nodes > e.maxNodes() {
		return newError(Divergence, "", "more than %d list cells forced", e.maxNodes())
	}
	return nil
}

func (e *Evaluator) enter() error {
	if e.depth >= e.maxDepth() {
		return newError(Divergence, "", "nesting deeper than %d", e.maxDepth())
	}
	e.depth++
	return nil
}

func (e *Evaluator) leave() {
	e.depth--
}

func (e *Evaluator) trace(step string, v ast.Value) {
	if e.Trace == nil {
		return
	}
	indent := min(e.depth, 32)
	e.Trace.Printf("%*s%s %s", indent, "", step, lo.Elipse(v.Inspect(), 120))
}
