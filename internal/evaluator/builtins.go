package evaluator

import (
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/modulation"
	"github.com/samber/lo"
	"math"
)

// maxCheckerboardCells bounds the list built by checkerboard.
const maxCheckerboardCells = 1 << 20

// builtin reduces a saturated combinator. ops holds exactly Arity operands
// in application order: for `ap ap ap s x y z` ops is [x, y, z].
// Operands are only forced when the rule needs their value.
func (e *Evaluator) builtin(op ast.Op, ops []ast.Value) (ast.Value, error) {
	switch op {
	case ast.OpAp:
		return newApplication(ops[0], ops[1]), nil

	case ast.OpInc, ast.OpDec, ast.OpNeg, ast.OpPwr2:
		return e.unaryArith(op, ops[len(ops)-1])

	case ast.OpAdd, ast.OpMul, ast.OpDiv, ast.OpLt:
		return e.binaryArith(op, ops[len(ops)-2], ops[len(ops)-1])

	case ast.OpEq:
		a, err := e.Force(ops[0])
		if err != nil {
			return nil, err
		}
		b, err := e.Force(ops[1])
		if err != nil {
			return nil, err
		}
		return ast.Bool(ast.Equal(a, b)), nil

	case ast.OpTrue:
		return ops[0], nil

	case ast.OpFalse:
		return ops[1], nil

	case ast.OpI:
		return ops[0], nil

	case ast.OpS:
		x, y, z := ops[0], ops[1], ops[2]
		return newApplication(newApplication(x, z), newApplication(y, z)), nil

	case ast.OpC:
		x, y, z := ops[0], ops[1], ops[2]
		return newApplication(newApplication(x, z), y), nil

	case ast.OpB:
		x, y, z := ops[0], ops[1], ops[2]
		return newApplication(x, newApplication(y, z)), nil

	case ast.OpCons:
		return &ast.Pair{Left: ops[0], Right: ops[1]}, nil

	case ast.OpCar, ast.OpCdr:
		v, err := e.operand(op, ops[0])
		if err != nil {
			return nil, err
		}
		p, ok := v.(*ast.Pair)
		if !ok {
			return nil, newError(TypeMismatch, op.String(), "expected a pair, got %s", v.Inspect())
		}
		if op == ast.OpCar {
			return p.Left, nil
		}
		return p.Right, nil

	case ast.OpIsNil:
		v, err := e.operand(op, ops[0])
		if err != nil {
			return nil, err
		}
		return ast.Bool(ast.IsNil(v)), nil

	case ast.OpIf0:
		cond, err := e.literal(op, ops[0])
		if err != nil {
			return nil, err
		}
		if cond == 0 {
			return ops[1], nil
		}
		return ops[2], nil

	case ast.OpMod:
		v, err := e.Force(ops[0])
		if err != nil {
			return nil, err
		}
		enc, err := modulation.Encode(v)
		if err != nil {
			return nil, &Error{Kind: TypeMismatch, Op: op.String(), Message: err.Error(), Err: err}
		}
		return enc, nil

	case ast.OpDem:
		v, err := e.operand(op, ops[0])
		if err != nil {
			return nil, err
		}
		enc, ok := v.(*ast.Encoded)
		if !ok {
			return nil, newError(TypeMismatch, op.String(), "expected a modulated value, got %s", v.Inspect())
		}
		out, err := modulation.Decode(enc)
		if err != nil {
			return nil, &Error{Kind: TypeMismatch, Op: op.String(), Message: err.Error(), Err: err}
		}
		return out, nil

	case ast.OpCheckerboard:
		return e.checkerboard(ops[0], ops[1])

	case ast.OpSend, ast.OpDraw, ast.OpMultipleDraw, ast.OpInteract, ast.OpStatelessDraw:
		return nil, newError(NotImplemented, op.String(), "combinator has no reduction rule")
	}
	return nil, newError(NotImplemented, op.String(), "unknown combinator")
}

func (e *Evaluator) unaryArith(op ast.Op, operand ast.Value) (ast.Value, error) {
	x, err := e.literal(op, operand)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpInc:
		if x == math.MaxInt64 {
			return nil, overflow(op, x)
		}
		return &ast.Literal{Value: x + 1}, nil
	case ast.OpDec:
		if x == math.MinInt64 {
			return nil, overflow(op, x)
		}
		return &ast.Literal{Value: x - 1}, nil
	case ast.OpNeg:
		if x == math.MinInt64 {
			return nil, overflow(op, x)
		}
		return &ast.Literal{Value: -x}, nil
	default: // pwr2
		if x < 0 || x > 62 {
			return nil, newError(Arithmetic, op.String(), "exponent %d out of range 0..62", x)
		}
		return &ast.Literal{Value: 1 << uint(x)}, nil
	}
}

func (e *Evaluator) binaryArith(op ast.Op, left, right ast.Value) (ast.Value, error) {
	x, err := e.literal(op, left)
	if err != nil {
		return nil, err
	}
	y, err := e.literal(op, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpAdd:
		if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
			return nil, overflow(op, x, y)
		}
		return &ast.Literal{Value: x + y}, nil
	case ast.OpMul:
		if mulOverflows(x, y) {
			return nil, overflow(op, x, y)
		}
		return &ast.Literal{Value: x * y}, nil
	case ast.OpDiv:
		if y == 0 {
			return nil, newError(Arithmetic, op.String(), "division by zero")
		}
		if x == math.MinInt64 && y == -1 {
			return nil, overflow(op, x, y)
		}
		return &ast.Literal{Value: x / y}, nil
	default: // lt
		return ast.Bool(x < y), nil
	}
}

func mulOverflows(x, y int64) bool {
	if x == 0 || y == 0 {
		return false
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return true
	}
	return (x*y)/y != x
}

// overflow reports a result that does not fit in 64 bits.
func overflow(op ast.Op, operands ...int64) error {
	return newError(Arithmetic, op.String(), "%v overflows 64 bits", operands)
}

// checkerboard lists every pair (i, j) of even coordinates with 0 <= i <= x
// and 0 <= j <= y, row by row.
func (e *Evaluator) checkerboard(xv, yv ast.Value) (ast.Value, error) {
	x, err := e.literal(ast.OpCheckerboard, xv)
	if err != nil {
		return nil, err
	}
	y, err := e.literal(ast.OpCheckerboard, yv)
	if err != nil {
		return nil, err
	}
	if x < 0 || y < 0 {
		return ast.Nil, nil
	}
	w, h := x/2+1, y/2+1
	if w > maxCheckerboardCells || h > maxCheckerboardCells || w*h > maxCheckerboardCells {
		return nil, newError(Arithmetic, ast.OpCheckerboard.String(), "%dx%d grid is too large", x, y)
	}

	rows := lo.RangeWithSteps(int64(0), x+1, 2)
	cols := lo.RangeWithSteps(int64(0), y+1, 2)
	cells := make([]ast.Value, 0, len(rows)*len(cols))
	for _, i := range rows {
		for _, j := range cols {
			cells = append(cells, &ast.Pair{Left: &ast.Literal{Value: i}, Right: &ast.Literal{Value: j}})
		}
	}
	return ast.NewList(cells...), nil
}

// operand reduces v to weak-head normal form for a rule that inspects it.
func (e *Evaluator) operand(op ast.Op, v ast.Value) (ast.Value, error) {
	w, err := e.whnf(v)
	if err != nil {
		return nil, err
	}
	if list, ok := w.(*ast.ListLiteral); ok {
		return nil, newError(InvariantViolation, op.String(), "list literal %s reached a reduction rule", list.Inspect())
	}
	return w, nil
}

func (e *Evaluator) literal(op ast.Op, v ast.Value) (int64, error) {
	w, err := e.operand(op, v)
	if err != nil {
		return 0, err
	}
	lit, ok := w.(*ast.Literal)
	if !ok {
		return 0, newError(TypeMismatch, op.String(), "expected an integer, got %s", w.Inspect())
	}
	return lit.Value, nil
}
