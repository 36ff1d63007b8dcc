package diagnostics

import (
	"fmt"
	"github.com/funvibe/galaxy/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal character or malformed word
	ErrP001 ErrorCode = "P001" // malformed statement
	ErrP002 ErrorCode = "P002" // unknown word
	ErrP003 ErrorCode = "P003" // malformed list literal
	ErrR001 ErrorCode = "R001" // runtime error
)

// DiagnosticError is a positioned error produced by one of the pipeline stages.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
	// Err is the underlying error for runtime diagnostics, if any.
	Err error
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Wrap builds a runtime diagnostic around err so errors.As keeps working.
func Wrap(code ErrorCode, err error) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: err.Error(), Err: err}
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.File != "" {
		loc = e.File + ":"
	}
	if e.Token.Line > 0 {
		loc += fmt.Sprintf("%d:%d:", e.Token.Line, e.Token.Column)
	}
	if loc != "" {
		return fmt.Sprintf("%s [%s] %s", loc, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }
