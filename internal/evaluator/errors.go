package evaluator

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	// TypeMismatch: an operand does not have the shape the operator needs.
	TypeMismatch ErrorKind = iota + 1
	// ArityViolation: a token sequence or operand list does not fit the
	// callee's arity.
	ArityViolation
	// UnboundIdentifier: a variable has no statement bound to it.
	UnboundIdentifier
	// NotImplemented: a declared combinator without reduction rules was called.
	NotImplemented
	// Divergence: the iteration or depth guard tripped, or a memoized
	// variable re-entered itself.
	Divergence
	// InvariantViolation: a list literal reached a reduction rule.
	InvariantViolation
	// Arithmetic: division by zero or an out-of-range power of two.
	Arithmetic
)

var kindNames = map[ErrorKind]string{
	TypeMismatch:       "type mismatch",
	ArityViolation:     "arity violation",
	UnboundIdentifier:  "unbound identifier",
	NotImplemented:     "not implemented",
	Divergence:         "divergence",
	InvariantViolation: "invariant violation",
	Arithmetic:         "arithmetic error",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned for every failed evaluation. Op names the combinator or
// identifier involved, if any.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ErrEmptyProgram is returned when there is no statement to evaluate.
var ErrEmptyProgram = errors.New("program has no statements")
