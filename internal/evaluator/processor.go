package evaluator

import (
	"github.com/funvibe/galaxy/internal/config"
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/pipeline"
	"github.com/funvibe/galaxy/internal/token"
	"log"
)

// EvaluatorProcessor evaluates the last parsed statement and stores the
// fully forced value in ctx.Result.
type EvaluatorProcessor struct {
	Config *config.Config
	Trace  *log.Logger
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 {
		return ctx
	}

	eval := FromConfig(NewEnvironment(), ep.Config)
	eval.Trace = ep.Trace
	if ctx.Context != nil {
		eval.Context = ctx.Context
	}

	result, err := eval.Interpret(ctx.Statements)
	if err != nil {
		diag := diagnostics.Wrap(diagnostics.ErrR001, err)
		diag.File = ctx.FilePath
		if n := len(ctx.Statements); n > 0 {
			diag.Token = token.Token{Line: ctx.Statements[n-1].Line, Column: 1}
		}
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.Result = result
	return ctx
}
