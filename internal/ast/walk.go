package ast

import "fmt"

// Visitor is the full visitor: one handler per node kind. Handlers decide
// themselves whether and in which order children are visited.
type Visitor[T any] interface {
	VisitProgram(*Program) T
	VisitRoutineDecl(*RoutineDecl) T
	VisitAssign(*AssignStmt) T
	VisitFor(*ForLoop) T
	VisitWhile(*WhileLoop) T
	VisitIfThen(*IfThen) T
	VisitGoto(*GotoStmt) T
	VisitLabelDecl(*LabelDecl) T
	VisitRoutineCall(*RoutineCall) T
	VisitExternalCall(*ExternalCall) T
	VisitBinaryOp(*BinaryOp) T
	VisitUnaryMinus(*UnaryMinus) T
	VisitIdentifier(*Identifier) T
	VisitArrayRef(*ArrayRef) T
	VisitNumber(*NumberLiteral) T
	VisitString(*StringLiteral) T
	VisitBool(*BoolLiteral) T
	VisitLabelName(*LabelName) T
	VisitRoutineName(*RoutineName) T
}

// Accept dispatches n to the matching handler of v.
func Accept[T any](n Node, v Visitor[T]) T {
	switch n := n.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *RoutineDecl:
		return v.VisitRoutineDecl(n)
	case *AssignStmt:
		return v.VisitAssign(n)
	case *ForLoop:
		return v.VisitFor(n)
	case *WhileLoop:
		return v.VisitWhile(n)
	case *IfThen:
		return v.VisitIfThen(n)
	case *GotoStmt:
		return v.VisitGoto(n)
	case *LabelDecl:
		return v.VisitLabelDecl(n)
	case *RoutineCall:
		return v.VisitRoutineCall(n)
	case *ExternalCall:
		return v.VisitExternalCall(n)
	case *BinaryOp:
		return v.VisitBinaryOp(n)
	case *UnaryMinus:
		return v.VisitUnaryMinus(n)
	case *Identifier:
		return v.VisitIdentifier(n)
	case *ArrayRef:
		return v.VisitArrayRef(n)
	case *NumberLiteral:
		return v.VisitNumber(n)
	case *StringLiteral:
		return v.VisitString(n)
	case *BoolLiteral:
		return v.VisitBool(n)
	case *LabelName:
		return v.VisitLabelName(n)
	case *RoutineName:
		return v.VisitRoutineName(n)
	default:
		panic(fmt.Sprintf("unknown ast node: %T", n))
	}
}

// Children returns the direct children of n in source order. Optional
// children that are absent are omitted.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return stmts(nil, n.Body)
	case *RoutineDecl:
		return stmts([]Node{n.Name}, n.Body)
	case *AssignStmt:
		return []Node{n.Target, n.Value}
	case *ForLoop:
		children := []Node{n.Var, n.Start, n.End}
		if n.Step != nil {
			children = append(children, n.Step)
		}
		return stmts(children, n.Body)
	case *WhileLoop:
		return stmts([]Node{n.Cond}, n.Body)
	case *IfThen:
		return stmts(stmts([]Node{n.Cond}, n.Then), n.Else)
	case *GotoStmt:
		return []Node{n.Label}
	case *LabelDecl:
		return []Node{n.Label}
	case *RoutineCall:
		return []Node{n.Routine}
	case *ExternalCall:
		return exprs(nil, n.Args)
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	case *UnaryMinus:
		return []Node{n.Operand}
	case *ArrayRef:
		return exprs([]Node{n.Base}, n.Indices)
	case *Identifier, *NumberLiteral, *StringLiteral, *BoolLiteral, *LabelName, *RoutineName:
		return nil
	default:
		panic(fmt.Sprintf("unknown ast node: %T", n))
	}
}

func stmts(dst []Node, list []Stmt) []Node {
	for _, s := range list {
		dst = append(dst, s)
	}
	return dst
}

func exprs(dst []Node, list []Expr) []Node {
	for _, e := range list {
		dst = append(dst, e)
	}
	return dst
}

// Inspect walks the tree depth-first in source order. If f returns false,
// the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}
