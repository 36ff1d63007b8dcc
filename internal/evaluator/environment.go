package evaluator

import "github.com/funvibe/galaxy/internal/ast"

// Environment maps identifiers to the unevaluated bodies bound to them.
// Later definitions shadow earlier ones; references are resolved lazily so
// forward and self references are allowed.
type Environment struct {
	store map[ast.Identifier][]ast.Value
	order []ast.Identifier

	// memo holds weak-head results per identifier when memoization is on.
	memo map[ast.Identifier]*memoCell
}

type memoCell struct {
	value   ast.Value
	pending bool
}

func NewEnvironment(statements ...ast.Statement) *Environment {
	env := &Environment{store: make(map[ast.Identifier][]ast.Value)}
	for _, stmt := range statements {
		env.Define(stmt)
	}
	return env
}

// Define binds stmt.ID to stmt.Body, replacing any earlier binding. Cached
// results are dropped because they may depend on the old body.
func (e *Environment) Define(stmt ast.Statement) {
	if _, ok := e.store[stmt.ID]; !ok {
		e.order = append(e.order, stmt.ID)
	}
	e.store[stmt.ID] = stmt.Body
	e.memo = nil
}

func (e *Environment) Lookup(id ast.Identifier) ([]ast.Value, bool) {
	body, ok := e.store[id]
	return body, ok
}

// Identifiers returns the bound identifiers in order of first definition.
func (e *Environment) Identifiers() []ast.Identifier {
	out := make([]ast.Identifier, len(e.order))
	copy(out, e.order)
	return out
}

func (e *Environment) Len() int { return len(e.store) }

func (e *Environment) cell(id ast.Identifier) *memoCell {
	if e.memo == nil {
		e.memo = make(map[ast.Identifier]*memoCell)
	}
	c, ok := e.memo[id]
	if !ok {
		c = &memoCell{}
		e.memo[id] = c
	}
	return c
}

func (e *Environment) forget(id ast.Identifier) {
	delete(e.memo, id)
}
