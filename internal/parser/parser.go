package parser

import (
	"fmt"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/diagnostics"
	"github.com/funvibe/galaxy/internal/lexer"
	"github.com/funvibe/galaxy/internal/pipeline"
	"github.com/funvibe/galaxy/internal/token"
)

// Parser turns a token stream into statements of the form
//
//	<identifier> = <token>*
//
// one per line. The identifier is a bare name or a numbered variable.
type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext
	failed bool
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	return &Parser{tokens: tokens, ctx: ctx}
}

// Parse is a convenience wrapper that lexes and parses a whole program.
func Parse(input string) ([]ast.Statement, error) {
	ctx := pipeline.NewPipelineContext(input)
	ctx = pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.Statements, nil
}

// ParseExpression lexes and parses a single statement body without the
// `<identifier> =` prefix, as typed at the REPL.
func ParseExpression(input string) ([]ast.Value, error) {
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := New(ctx.TokenStream, ctx)
	body := p.ParseExpression()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return body, nil
}

// ParseProgram parses every line. Any malformed line fails the whole
// program: the returned slice is nil whenever an error was recorded.
func (p *Parser) ParseProgram() []ast.Statement {
	var statements []ast.Statement
	for p.cur().Type != token.EOF {
		if p.cur().Type == token.NEWLINE {
			p.next()
			continue
		}
		if stmt, ok := p.parseStatement(); ok {
			statements = append(statements, stmt)
		}
		p.skipLine()
	}
	if p.failed {
		return nil
	}
	return statements
}

// ParseExpression parses the tokens up to the end of the first line as a body.
func (p *Parser) ParseExpression() []ast.Value {
	for p.cur().Type == token.NEWLINE {
		p.next()
	}
	start := p.cur()
	body, ok := p.parseBody()
	if !ok {
		return nil
	}
	if len(body) == 0 {
		p.error(diagnostics.ErrP001, start, "empty expression")
		return nil
	}
	for p.cur().Type == token.NEWLINE {
		p.next()
	}
	if p.cur().Type != token.EOF {
		p.error(diagnostics.ErrP001, p.cur(), "expected a single expression")
		return nil
	}
	return body
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	idTok := p.cur()
	var id ast.Identifier
	switch idTok.Type {
	case token.VARIABLE:
		id = ast.VarID(idTok.Literal.(int))
	case token.IDENT:
		id = ast.NameID(idTok.Lexeme)
	default:
		p.error(diagnostics.ErrP001, idTok, fmt.Sprintf("expected identifier, got %q", idTok.Lexeme))
		return ast.Statement{}, false
	}
	p.next()

	if p.cur().Type != token.ASSIGN {
		p.error(diagnostics.ErrP001, p.cur(), fmt.Sprintf("expected '=' after %s", id))
		return ast.Statement{}, false
	}
	p.next()

	body, ok := p.parseBody()
	if !ok {
		return ast.Statement{}, false
	}
	if len(body) == 0 {
		p.error(diagnostics.ErrP001, idTok, fmt.Sprintf("statement %s has an empty body", id))
		return ast.Statement{}, false
	}
	return ast.Statement{ID: id, Body: body, Line: idTok.Line}, true
}

func (p *Parser) parseBody() ([]ast.Value, bool) {
	var body []ast.Value
	for !p.atLineEnd() {
		v, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		body = append(body, v)
	}
	return body, true
}

func (p *Parser) parseTerm() (ast.Value, bool) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.next()
		return &ast.Literal{Value: tok.Literal.(int64)}, true
	case token.VARIABLE:
		p.next()
		return &ast.Variable{Index: tok.Literal.(int)}, true
	case token.IDENT:
		op, ok := ast.LookupOp(tok.Lexeme)
		if !ok {
			p.error(diagnostics.ErrP002, tok, fmt.Sprintf("unknown word %q", tok.Lexeme))
			return nil, false
		}
		p.next()
		if op == ast.OpNil {
			return ast.Nil, true
		}
		return &ast.Combinator{Op: op}, true
	case token.LPAREN:
		return p.parseList()
	default:
		p.error(diagnostics.ErrP001, tok, fmt.Sprintf("unexpected %q", tok.Lexeme))
		return nil, false
	}
}

// parseList reads `( a , b , ... )`. The empty list is nil itself.
func (p *Parser) parseList() (ast.Value, bool) {
	open := p.cur()
	p.next()

	if p.cur().Type == token.RPAREN {
		p.next()
		return ast.Nil, true
	}

	var elements []ast.Value
	for {
		if p.atLineEnd() {
			p.error(diagnostics.ErrP003, open, "unterminated list")
			return nil, false
		}
		el, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		elements = append(elements, el)

		switch p.cur().Type {
		case token.COMMA:
			p.next()
		case token.RPAREN:
			p.next()
			return &ast.ListLiteral{Elements: elements}, true
		default:
			if p.atLineEnd() {
				p.error(diagnostics.ErrP003, open, "unterminated list")
			} else {
				p.error(diagnostics.ErrP003, p.cur(), fmt.Sprintf("expected ',' or ')' in list, got %q", p.cur().Lexeme))
			}
			return nil, false
		}
	}
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) atLineEnd() bool {
	t := p.cur().Type
	return t == token.NEWLINE || t == token.EOF
}

func (p *Parser) skipLine() {
	for !p.atLineEnd() {
		p.next()
	}
	if p.cur().Type == token.NEWLINE {
		p.next()
	}
}

func (p *Parser) error(code diagnostics.ErrorCode, tok token.Token, msg string) {
	p.failed = true
	err := diagnostics.NewError(code, tok, msg)
	if p.ctx != nil {
		err.File = p.ctx.FilePath
		p.ctx.Errors = append(p.ctx.Errors, err)
	}
}
