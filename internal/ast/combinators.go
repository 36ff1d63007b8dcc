package ast

import "sort"

// Op identifies a built-in combinator.
type Op int

const (
	OpAp Op = iota
	OpEq
	OpInc
	OpDec
	OpAdd
	OpMul
	OpDiv
	OpNeg
	OpPwr2
	OpLt
	OpTrue
	OpFalse
	OpI
	OpS
	OpC
	OpB
	OpCons
	OpCar
	OpCdr
	OpNil
	OpIsNil
	OpIf0
	OpMod
	OpDem
	OpSend
	OpDraw
	OpCheckerboard
	OpMultipleDraw
	OpInteract
	OpStatelessDraw
)

type opInfo struct {
	name  string
	arity int
}

var opTable = [...]opInfo{
	OpAp:            {"ap", 2},
	OpEq:            {"eq", 2},
	OpInc:           {"inc", 1},
	OpDec:           {"dec", 1},
	OpAdd:           {"add", 2},
	OpMul:           {"mul", 2},
	OpDiv:           {"div", 2},
	OpNeg:           {"neg", 1},
	OpPwr2:          {"pwr2", 1},
	OpLt:            {"lt", 2},
	OpTrue:          {"t", 2},
	OpFalse:         {"f", 2},
	OpI:             {"i", 1},
	OpS:             {"s", 3},
	OpC:             {"c", 3},
	OpB:             {"b", 3},
	OpCons:          {"cons", 2},
	OpCar:           {"car", 1},
	OpCdr:           {"cdr", 1},
	OpNil:           {"nil", 0},
	OpIsNil:         {"isnil", 1},
	OpIf0:           {"if0", 3},
	OpMod:           {"mod", 1},
	OpDem:           {"dem", 1},
	OpSend:          {"send", 1},
	OpDraw:          {"draw", 1},
	OpCheckerboard:  {"checkerboard", 2},
	OpMultipleDraw:  {"multipledraw", 1},
	OpInteract:      {"interact", 3},
	OpStatelessDraw: {"statelessdraw", 3},
}

// aliases maps alternative spellings accepted in program text.
var aliases = map[string]Op{
	"vec": OpCons,
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(opTable)+len(aliases))
	for op, info := range opTable {
		m[info.name] = Op(op)
	}
	for name, op := range aliases {
		m[name] = op
	}
	return m
}()

func (o Op) String() string {
	if o < 0 || int(o) >= len(opTable) {
		return "<unknown>"
	}
	return opTable[o].name
}

// Arity is the number of arguments the combinator consumes.
func (o Op) Arity() int {
	if o < 0 || int(o) >= len(opTable) {
		return 0
	}
	return opTable[o].arity
}

// LookupOp resolves a word from program text to its combinator.
func LookupOp(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// Names lists every word that LookupOp accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(opsByName))
	for name := range opsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Arity reports the static arity of v when used as a callee. It is zero for
// anything that is not a combinator or an unsaturated partial application.
func Arity(v Value) int {
	switch t := v.(type) {
	case *Combinator:
		return t.Op.Arity()
	case *PartialApplication:
		return t.Remaining
	default:
		return 0
	}
}
