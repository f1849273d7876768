// Package testutil builds ASTs by hand for tests. The front-end is external,
// so these helpers stand in for parsing small BASIC snippets.
package testutil

import (
	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/token"
)

const DefaultFilename = "test.bas"

// Line returns a span covering the start of the given source line.
func Line(line int) token.Span {
	return token.NewSpan(
		token.NewPosition(DefaultFilename, line, 1),
		token.NewPosition(DefaultFilename, line, 2),
	)
}

func Prog(body ...ast.Stmt) *ast.Program {
	return ast.NewProgram(body, token.Span{})
}

func Sub(name string, body ...ast.Stmt) *ast.RoutineDecl {
	return ast.NewRoutineDecl(ast.NewRoutineName(name, token.Span{}), body, token.Span{})
}

func Id(name string) *ast.Identifier { return ast.NewIdentifier(name, token.Span{}) }

func Num(value float64) *ast.NumberLiteral { return ast.NewNumberLiteral(value, token.Span{}) }

func Str(value string) *ast.StringLiteral { return ast.NewStringLiteral(value, token.Span{}) }

func Bool(value bool) *ast.BoolLiteral { return ast.NewBoolLiteral(value, token.Span{}) }

func Bin(left ast.Expr, op ast.Op, right ast.Expr) *ast.BinaryOp {
	return ast.NewBinaryOp(op, left, right, token.Span{})
}

func Neg(operand ast.Expr) *ast.UnaryMinus { return ast.NewUnaryMinus(operand, token.Span{}) }

func Arr(base string, indices ...ast.Expr) *ast.ArrayRef {
	return ast.NewArrayRef(Id(base), indices, token.Span{})
}

func Assign(target ast.Assignable, value ast.Expr) *ast.AssignStmt {
	return ast.NewAssignStmt(target, value, token.Span{})
}

func Label(name string) *ast.LabelDecl {
	return ast.NewLabelDecl(ast.NewLabelName(name, token.Span{}), token.Span{})
}

func Goto(name string) *ast.GotoStmt {
	return ast.NewGotoStmt(ast.NewLabelName(name, token.Span{}), token.Span{})
}

func Call(name string) *ast.RoutineCall {
	return ast.NewRoutineCall(ast.NewRoutineName(name, token.Span{}), token.Span{})
}

func Ext(module, function string, args ...ast.Expr) *ast.ExternalCall {
	return ast.NewExternalCall(module, function, args, token.Span{})
}

// For builds a loop without a Step clause.
func For(v string, start, end ast.Expr, body ...ast.Stmt) *ast.ForLoop {
	return ast.NewForLoop(Id(v), start, end, nil, body, token.Span{})
}

func ForStep(v string, start, end, step ast.Expr, body ...ast.Stmt) *ast.ForLoop {
	return ast.NewForLoop(Id(v), start, end, step, body, token.Span{})
}

func While(cond ast.Expr, body ...ast.Stmt) *ast.WhileLoop {
	return ast.NewWhileLoop(cond, body, token.Span{})
}

func If(cond ast.Expr, then ...ast.Stmt) *ast.IfThen {
	return ast.NewIfThen(cond, then, nil, token.Span{})
}

func IfElse(cond ast.Expr, then, els []ast.Stmt) *ast.IfThen {
	return ast.NewIfThen(cond, then, els, token.Span{})
}

// Name returns a name of exactly n characters.
func Name(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(i%26)
	}
	return string(b)
}
