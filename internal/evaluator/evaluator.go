package evaluator

import (
	"context"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/config"
	"log"
)

// Evaluator reduces thunks built from statement bodies. It is not safe for
// concurrent use; create one per goroutine.
type Evaluator struct {
	// Context for cancellation, checked once per reduction step
	Context context.Context

	Env *Environment

	// MaxIterations bounds a single weak-head resolution
	MaxIterations int
	// MaxDepth bounds nested resolutions
	MaxDepth int
	// MaxNodes bounds the list cells forced by one top-level Force
	MaxNodes int
	// Memoize caches the weak-head value of each variable in Env
	Memoize bool
	// Trace, when set, receives a line per reduction step
	Trace *log.Logger

	depth int
	nodes int
}

func New(env *Environment) *Evaluator {
	if env == nil {
		env = NewEnvironment()
	}
	return &Evaluator{
		Context:       context.Background(),
		Env:           env,
		MaxIterations: config.DefaultMaxIterations,
		MaxDepth:      config.DefaultMaxDepth,
		MaxNodes:      config.DefaultMaxNodes,
	}
}

// FromConfig creates an evaluator with the limits from cfg.
func FromConfig(env *Environment, cfg *config.Config) *Evaluator {
	e := New(env)
	if cfg == nil {
		return e
	}
	if cfg.MaxIterations > 0 {
		e.MaxIterations = cfg.MaxIterations
	}
	if cfg.MaxDepth > 0 {
		e.MaxDepth = cfg.MaxDepth
	}
	if cfg.MaxNodes > 0 {
		e.MaxNodes = cfg.MaxNodes
	}
	e.Memoize = cfg.Memoize
	return e
}

// Eval builds the thunk for body and forces it completely.
func (e *Evaluator) Eval(body []ast.Value) (ast.Value, error) {
	thunk, err := Build(body)
	if err != nil {
		return nil, err
	}
	return e.Force(thunk)
}

// EvalIdentifier evaluates the body bound to id.
func (e *Evaluator) EvalIdentifier(id ast.Identifier) (ast.Value, error) {
	body, ok := e.Env.Lookup(id)
	if !ok {
		return nil, newError(UnboundIdentifier, id.String(), "no statement defines it")
	}
	return e.Eval(body)
}

// Interpret binds every statement and evaluates the last one.
func (e *Evaluator) Interpret(statements []ast.Statement) (ast.Value, error) {
	if len(statements) == 0 {
		return nil, ErrEmptyProgram
	}
	for _, stmt := range statements {
		e.Env.Define(stmt)
	}
	return e.Eval(statements[len(statements)-1].Body)
}

// Interpret evaluates the last statement of a program with default limits.
func Interpret(statements []ast.Statement) (ast.Value, error) {
	return New(NewEnvironment()).Interpret(statements)
}

func (e *Evaluator) ctx() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

func (e *Evaluator) maxIterations() int {
	if e.MaxIterations <= 0 {
		return config.DefaultMaxIterations
	}
	return e.MaxIterations
}

func (e *Evaluator) maxDepth() int {
	if e.MaxDepth <= 0 {
		return config.DefaultMaxDepth
	}
	return e.MaxDepth
}

func (e *Evaluator) maxNodes() int {
	if e.MaxNodes <= 0 {
		return config.DefaultMaxNodes
	}
	return e.MaxNodes
}
