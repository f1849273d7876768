package ast

import (
	"fmt"
	"strconv"

	"github.com/HicaroD/basicc/internal/token"
)

// Identifier is a plain variable reference. Variables are global, so two
// identifiers with the same name always denote the same storage.
type Identifier struct {
	node
	Name string
}

func NewIdentifier(name string, span token.Span) *Identifier {
	return &Identifier{node: node{span}, Name: name}
}

func (id *Identifier) String() string { return id.Name }
func (*Identifier) exprNode()         {}
func (*Identifier) assignable()       {}

type ArrayRef struct {
	node
	Base    *Identifier
	Indices []Expr
}

func NewArrayRef(base *Identifier, indices []Expr, span token.Span) *ArrayRef {
	return &ArrayRef{node: node{span}, Base: base, Indices: indices}
}

func (arr *ArrayRef) String() string { return fmt.Sprintf("%s%v", arr.Base, arr.Indices) }
func (*ArrayRef) exprNode()          {}
func (*ArrayRef) assignable()        {}

type NumberLiteral struct {
	node
	Value float64
}

func NewNumberLiteral(value float64, span token.Span) *NumberLiteral {
	return &NumberLiteral{node: node{span}, Value: value}
}

func (lit *NumberLiteral) String() string {
	return strconv.FormatFloat(lit.Value, 'g', -1, 64)
}
func (*NumberLiteral) exprNode() {}

type StringLiteral struct {
	node
	Value string
}

func NewStringLiteral(value string, span token.Span) *StringLiteral {
	return &StringLiteral{node: node{span}, Value: value}
}

func (lit *StringLiteral) String() string { return strconv.Quote(lit.Value) }
func (*StringLiteral) exprNode()          {}

type BoolLiteral struct {
	node
	Value bool
}

func NewBoolLiteral(value bool, span token.Span) *BoolLiteral {
	return &BoolLiteral{node: node{span}, Value: value}
}

func (lit *BoolLiteral) String() string { return strconv.FormatBool(lit.Value) }
func (*BoolLiteral) exprNode()          {}

type BinaryOp struct {
	node
	Op    Op
	Left  Expr
	Right Expr
}

func NewBinaryOp(op Op, left, right Expr, span token.Span) *BinaryOp {
	return &BinaryOp{node: node{span}, Op: op, Left: left, Right: right}
}

func (bin *BinaryOp) String() string {
	return fmt.Sprintf("(%v %s %v)", bin.Left, bin.Op, bin.Right)
}
func (*BinaryOp) exprNode() {}

type UnaryMinus struct {
	node
	Operand Expr
}

func NewUnaryMinus(operand Expr, span token.Span) *UnaryMinus {
	return &UnaryMinus{node: node{span}, Operand: operand}
}

func (neg *UnaryMinus) String() string { return fmt.Sprintf("-%v", neg.Operand) }
func (*UnaryMinus) exprNode()          {}

// ExternalCall reaches a function living outside the program, e.g. the
// standard I/O module. It is both an expression and a statement.
type ExternalCall struct {
	node
	Module   string
	Function string
	Args     []Expr
}

func NewExternalCall(module, function string, args []Expr, span token.Span) *ExternalCall {
	return &ExternalCall{node: node{span}, Module: module, Function: function, Args: args}
}

func (call *ExternalCall) String() string {
	return fmt.Sprintf("%s.%s%v", call.Module, call.Function, call.Args)
}
func (*ExternalCall) exprNode() {}
func (*ExternalCall) stmtNode() {}

// LabelName and RoutineName live in their own namespaces, which is why they
// are not plain identifiers.
type LabelName struct {
	node
	Name string
}

func NewLabelName(name string, span token.Span) *LabelName {
	return &LabelName{node: node{span}, Name: name}
}

func (l *LabelName) String() string { return l.Name }

type RoutineName struct {
	node
	Name string
}

func NewRoutineName(name string, span token.Span) *RoutineName {
	return &RoutineName{node: node{span}, Name: name}
}

func (r *RoutineName) String() string { return r.Name }
