package ast

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/token"
)

type AssignStmt struct {
	node
	Target Assignable
	Value  Expr
}

func NewAssignStmt(target Assignable, value Expr, span token.Span) *AssignStmt {
	return &AssignStmt{node: node{span}, Target: target, Value: value}
}

func (assign *AssignStmt) String() string {
	return fmt.Sprintf("%v = %v", assign.Target, assign.Value)
}
func (*AssignStmt) stmtNode() {}

// ForLoop is "For Var = Start To End [Step Step] ... Next". Step is nil when
// omitted.
type ForLoop struct {
	node
	Var   *Identifier
	Start Expr
	End   Expr
	Step  Expr
	Body  []Stmt
}

func NewForLoop(v *Identifier, start, end, step Expr, body []Stmt, span token.Span) *ForLoop {
	return &ForLoop{node: node{span}, Var: v, Start: start, End: end, Step: step, Body: body}
}

func (forLoop *ForLoop) String() string {
	return fmt.Sprintf("For %v = %v To %v Step %v %v", forLoop.Var, forLoop.Start, forLoop.End, forLoop.Step, forLoop.Body)
}
func (*ForLoop) stmtNode() {}

type WhileLoop struct {
	node
	Cond Expr
	Body []Stmt
}

func NewWhileLoop(cond Expr, body []Stmt, span token.Span) *WhileLoop {
	return &WhileLoop{node: node{span}, Cond: cond, Body: body}
}

func (whileLoop *WhileLoop) String() string {
	return fmt.Sprintf("While %v %v", whileLoop.Cond, whileLoop.Body)
}
func (*WhileLoop) stmtNode() {}

// IfThen has no Else branch when Else is empty.
type IfThen struct {
	node
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func NewIfThen(cond Expr, then, els []Stmt, span token.Span) *IfThen {
	return &IfThen{node: node{span}, Cond: cond, Then: then, Else: els}
}

func (cond *IfThen) HasElse() bool { return len(cond.Else) > 0 }

func (cond *IfThen) String() string {
	return fmt.Sprintf("If %v Then %v Else %v", cond.Cond, cond.Then, cond.Else)
}
func (*IfThen) stmtNode() {}

type GotoStmt struct {
	node
	Label *LabelName
}

func NewGotoStmt(label *LabelName, span token.Span) *GotoStmt {
	return &GotoStmt{node: node{span}, Label: label}
}

func (g *GotoStmt) String() string { return fmt.Sprintf("Goto %v", g.Label) }
func (*GotoStmt) stmtNode()        {}

type LabelDecl struct {
	node
	Label *LabelName
}

func NewLabelDecl(label *LabelName, span token.Span) *LabelDecl {
	return &LabelDecl{node: node{span}, Label: label}
}

func (l *LabelDecl) String() string { return fmt.Sprintf("%v:", l.Label) }
func (*LabelDecl) stmtNode()        {}

type RoutineCall struct {
	node
	Routine *RoutineName
}

func NewRoutineCall(routine *RoutineName, span token.Span) *RoutineCall {
	return &RoutineCall{node: node{span}, Routine: routine}
}

func (call *RoutineCall) String() string { return fmt.Sprintf("%v()", call.Routine) }
func (*RoutineCall) stmtNode()           {}
