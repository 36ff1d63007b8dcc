package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueType string

const (
	LITERAL_VAL     = "LITERAL"
	COMBINATOR_VAL  = "COMBINATOR"
	VARIABLE_VAL    = "VARIABLE"
	LIST_VAL        = "LIST"
	PAIR_VAL        = "PAIR"
	PARTIAL_APP_VAL = "PARTIAL_APPLICATION"
	ENCODED_VAL     = "ENCODED"
)

// Value is a term of the combinator language. Values are immutable once
// built and may be shared freely between parents.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Literal is a signed integer.
type Literal struct {
	Value int64
}

func (l *Literal) Type() ValueType { return LITERAL_VAL }
func (l *Literal) Inspect() string  { return strconv.FormatInt(l.Value, 10) }

// Combinator is one of the built-in operations.
type Combinator struct {
	Op Op
}

func (c *Combinator) Type() ValueType { return COMBINATOR_VAL }
func (c *Combinator) Inspect() string  { return c.Op.String() }

// Variable references a numbered statement (:1029).
type Variable struct {
	Index int
}

func (v *Variable) Type() ValueType { return VARIABLE_VAL }
func (v *Variable) Inspect() string  { return ":" + strconv.Itoa(v.Index) }

// ListLiteral is the `( a , b , c )` sugar. It is lowered to pairs before
// any reduction sees it.
type ListLiteral struct {
	Elements []Value
}

func (l *ListLiteral) Type() ValueType { return LIST_VAL }
func (l *ListLiteral) Inspect() string {
	if len(l.Elements) == 0 {
		return "( )"
	}
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "( " + strings.Join(parts, " , ") + " )"
}

// Pair is a cons cell.
type Pair struct {
	Left  Value
	Right Value
}

func (p *Pair) Type() ValueType { return PAIR_VAL }

// Inspect renders proper lists with list syntax and anything else as a cons
// application, so the output can be fed back to the parser.
func (p *Pair) Inspect() string {
	var parts []string
	var cur Value = p
	for {
		c, ok := cur.(*Pair)
		if !ok {
			break
		}
		parts = append(parts, c.Left.Inspect())
		cur = c.Right
	}
	if IsNil(cur) {
		return "( " + strings.Join(parts, " , ") + " )"
	}
	return fmt.Sprintf("ap ap cons %s %s", p.Left.Inspect(), p.Right.Inspect())
}

// PartialApplication is an in-progress curried call. Args[0] is the callee
// being unwound and Args[1:] are the operands bound so far. Remaining counts
// how many more arguments the call needs; zero marks a redex.
type PartialApplication struct {
	Callee    Value
	Args      []Value
	Remaining int
}

func (p *PartialApplication) Type() ValueType { return PARTIAL_APP_VAL }
func (p *PartialApplication) Inspect() string {
	if len(p.Args) == 0 {
		return "<partial>"
	}
	var b strings.Builder
	for i := 1; i < len(p.Args); i++ {
		b.WriteString("ap ")
	}
	b.WriteString(p.Args[0].Inspect())
	for _, arg := range p.Args[1:] {
		b.WriteByte(' ')
		b.WriteString(arg.Inspect())
	}
	return b.String()
}

// Encoded holds a modulated value as a string of '0' and '1' characters.
type Encoded struct {
	Bits string
}

func (e *Encoded) Type() ValueType { return ENCODED_VAL }
func (e *Encoded) Inspect() string  { return "[" + e.Bits + "]" }

// Shared instances of the zero-argument and selector combinators.
var (
	Nil   = &Combinator{Op: OpNil}
	True  = &Combinator{Op: OpTrue}
	False = &Combinator{Op: OpFalse}
)

// Bool returns the selector combinator for b.
func Bool(b bool) *Combinator {
	if b {
		return True
	}
	return False
}

// IsNil reports whether v is the empty-list sentinel.
func IsNil(v Value) bool {
	c, ok := v.(*Combinator)
	return ok && c.Op == OpNil
}

// NewList builds the pair chain for elems, terminated by nil.
func NewList(elems ...Value) Value {
	var out Value = Nil
	for i := len(elems) - 1; i >= 0; i-- {
		out = &Pair{Left: elems[i], Right: out}
	}
	return out
}
