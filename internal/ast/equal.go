package ast

// Equal performs a structural comparison of two values. Callers compare
// fully forced values; unforced thunks only compare equal when they are
// built the same way.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Literal:
		return aVal.Value == b.(*Literal).Value
	case *Combinator:
		return aVal.Op == b.(*Combinator).Op
	case *Variable:
		return aVal.Index == b.(*Variable).Index
	case *Encoded:
		return aVal.Bits == b.(*Encoded).Bits
	case *Pair:
		bVal := b.(*Pair)
		return Equal(aVal.Left, bVal.Left) && Equal(aVal.Right, bVal.Right)
	case *ListLiteral:
		return equalSlices(aVal.Elements, b.(*ListLiteral).Elements)
	case *PartialApplication:
		bVal := b.(*PartialApplication)
		return aVal.Remaining == bVal.Remaining && equalSlices(aVal.Args, bVal.Args)
	}
	return false
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
