package ast

import "fmt"

type Op int

const (
	OP_AND Op = iota
	OP_OR
	OP_PLUS
	OP_CONCAT
	OP_MINUS
	OP_MUL
	OP_DIV
	OP_EQ
	OP_NEQ
	OP_LT
	OP_GT
	OP_LEQ
	OP_GEQ
)

var opNames = [...]string{
	OP_AND:    "And",
	OP_OR:     "Or",
	OP_PLUS:   "Plus",
	OP_CONCAT: "Concat",
	OP_MINUS:  "Minus",
	OP_MUL:    "Mul",
	OP_DIV:    "Div",
	OP_EQ:     "Eq",
	OP_NEQ:    "Neq",
	OP_LT:     "Lt",
	OP_GT:     "Gt",
	OP_LEQ:    "Leq",
	OP_GEQ:    "Geq",
}

// Ops lists every binary operator tag.
func Ops() []Op {
	ops := make([]Op, len(opNames))
	for i := range opNames {
		ops[i] = Op(i)
	}
	return ops
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// ParseOp is the inverse of Op.String.
func ParseOp(name string) (Op, bool) {
	for i, n := range opNames {
		if n == name {
			return Op(i), true
		}
	}
	return 0, false
}

func (op Op) IsLogical() bool    { return op == OP_AND || op == OP_OR }
func (op Op) IsArithmetic() bool { return op == OP_MINUS || op == OP_MUL || op == OP_DIV }
func (op Op) IsOrdering() bool {
	return op == OP_LT || op == OP_GT || op == OP_LEQ || op == OP_GEQ
}
func (op Op) IsEquality() bool { return op == OP_EQ || op == OP_NEQ }
func (op Op) IsAdditive() bool { return op == OP_PLUS || op == OP_CONCAT }
