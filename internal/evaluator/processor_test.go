package evaluator

import (
	"errors"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/config"
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/lexer"
	"github.com/funvibe/galaxy/internal/parser"
	"github.com/funvibe/galaxy/internal/pipeline"
	"testing"
)

func runPipeline(src string, cfg *config.Config) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = "test.galaxy"
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&EvaluatorProcessor{Config: cfg},
	).Run(ctx)
}

func TestEvaluatorProcessor(t *testing.T) {
	ctx := runPipeline("// two steps\n:1 = ap inc 1\n\n:2 = ap ap cons :1 nil\n", nil)
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	testValue(t, ctx.Result, ast.NewList(lit(2)))
}

func TestEvaluatorProcessorRuntimeError(t *testing.T) {
	ctx := runPipeline(":1 = 1\n:2 = ap car :1", config.Default())
	if len(ctx.Errors) != 1 {
		t.Fatalf("errors = %v, want one", ctx.Errors)
	}
	diag := ctx.Errors[0]
	if diag.Code != diagnostics.ErrR001 {
		t.Errorf("code = %s, want %s", diag.Code, diagnostics.ErrR001)
	}
	if diag.Token.Line != 2 {
		t.Errorf("line = %d, want 2", diag.Token.Line)
	}
	var evalErr *Error
	if !errors.As(diag, &evalErr) || evalErr.Kind != TypeMismatch {
		t.Errorf("diagnostic does not wrap a type mismatch: %v", diag)
	}
	if ctx.Result != nil {
		t.Errorf("result = %s, want none", ctx.Result.Inspect())
	}
}

func TestEvaluatorProcessorLimits(t *testing.T) {
	cfg := &config.Config{MaxIterations: 50, MaxDepth: 50}
	ctx := runPipeline(":1 = :1", cfg)
	if err := ctx.Err(); !IsKind(err, Divergence) {
		t.Errorf("error = %v, want divergence", err)
	}
}

func TestEvaluatorProcessorSkipsAfterParseError(t *testing.T) {
	ctx := runPipeline(":1 = ap frobnicate 1", nil)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrP002 {
		t.Fatalf("errors = %v, want a single P002", ctx.Errors)
	}
	if ctx.Result != nil {
		t.Error("evaluator ran despite parse errors")
	}
}

func TestEvaluatorProcessorEmptyProgram(t *testing.T) {
	ctx := runPipeline("\n// nothing here\n", nil)
	if err := ctx.Err(); !errors.Is(err, ErrEmptyProgram) {
		t.Errorf("error = %v, want ErrEmptyProgram", err)
	}
}
