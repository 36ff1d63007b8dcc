package evaluator

import "github.com/funvibe/galaxy/internal/ast"

// Canonicalize lowers list literal sugar to cons cells:
// ( a , b , c ) becomes cons a (cons b (cons c nil)) and ( ) becomes nil.
// Nested list literals are lowered too. Every other value is returned as is.
func Canonicalize(v ast.Value) ast.Value {
	list, ok := v.(*ast.ListLiteral)
	if !ok {
		return v
	}
	var out ast.Value = ast.Nil
	for i := len(list.Elements) - 1; i >= 0; i-- {
		out = &ast.Pair{Left: Canonicalize(list.Elements[i]), Right: out}
	}
	return out
}
