package pipeline

import (
	"context"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the program through lexing, parsing and evaluation.
type PipelineContext struct {
	// Context bounds evaluation; nil means context.Background().
	Context    context.Context
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	Statements  []ast.Statement
	Result      ast.Value

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		Context:    context.Background(),
		SourceCode: sourceCode,
		Errors:     []*diagnostics.DiagnosticError{},
	}
}

// Err returns the first recorded error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
