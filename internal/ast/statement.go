package ast

import (
	"strconv"
	"strings"
)

// Identifier names a statement: either a bare name such as "galaxy" or a
// numbered variable such as :1029. Exactly one of Name or Index is set.
type Identifier struct {
	Name  string
	Index int
}

func NameID(name string) Identifier { return Identifier{Name: name} }
func VarID(index int) Identifier    { return Identifier{Index: index} }

func (id Identifier) IsVar() bool { return id.Name == "" }

func (id Identifier) String() string {
	if id.IsVar() {
		return ":" + strconv.Itoa(id.Index)
	}
	return id.Name
}

// Statement binds an identifier to an unevaluated token sequence.
type Statement struct {
	ID   Identifier
	Body []Value
	Line int // 1-based source line, 0 when built programmatically
}

func (s Statement) String() string {
	parts := make([]string, 0, len(s.Body)+2)
	parts = append(parts, s.ID.String(), "=")
	for _, v := range s.Body {
		parts = append(parts, v.Inspect())
	}
	return strings.Join(parts, " ")
}
