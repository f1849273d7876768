// Package ast defines the abstract syntax tree consumed by the semantic
// checks and the code generator. Trees are built once by the front-end and
// never mutated afterwards.
package ast

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/token"
)

type Node interface {
	Span() token.Span
	astNode()
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// Assignable is implemented by the expressions that may appear on the left
// side of an assignment.
type Assignable interface {
	Expr
	assignable()
}

type node struct {
	span token.Span
}

func (n *node) Span() token.Span { return n.span }
func (*node) astNode()           {}

// Kind returns a short, stable name for the node's variant. It is used by
// the JSON format and by diagnostics.
func Kind(n Node) string {
	switch n.(type) {
	case *Program:
		return "Program"
	case *RoutineDecl:
		return "Sub"
	case *AssignStmt:
		return "Assign"
	case *ForLoop:
		return "For"
	case *WhileLoop:
		return "While"
	case *IfThen:
		return "If"
	case *GotoStmt:
		return "Goto"
	case *LabelDecl:
		return "Label"
	case *RoutineCall:
		return "Call"
	case *ExternalCall:
		return "ExtCall"
	case *BinaryOp:
		return "Binary"
	case *UnaryMinus:
		return "Neg"
	case *Identifier:
		return "Identifier"
	case *ArrayRef:
		return "ArrayRef"
	case *NumberLiteral:
		return "Number"
	case *StringLiteral:
		return "String"
	case *BoolLiteral:
		return "Bool"
	case *LabelName:
		return "LabelName"
	case *RoutineName:
		return "RoutineName"
	case nil:
		return "<nil>"
	default:
		panic(fmt.Sprintf("unknown ast node: %T", n))
	}
}
