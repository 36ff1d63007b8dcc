package lexer

import (
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/pipeline"
	"github.com/funvibe/galaxy/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = New(ctx.SourceCode).Tokens()

	for _, tok := range ctx.TokenStream {
		if tok.Type != token.ILLEGAL {
			continue
		}
		msg := "illegal character " + tok.Lexeme
		if detail, ok := tok.Literal.(string); ok && detail != tok.Lexeme {
			msg = detail + ": " + tok.Lexeme
		}
		err := diagnostics.NewError(diagnostics.ErrL001, tok, msg)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
