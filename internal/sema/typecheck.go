package sema

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/diagnostics"
)

var (
	boolean = []Type{BOOL}
	numeric = []Type{NUMBER}
	ordered = []Type{NUMBER, STRING}
)

// TypeCheck infers a type for every expression bottom-up and reports each
// operand that does not fit its operator. An operand that already failed
// does not also produce an agreement error on its parent.
func TypeCheck() Check {
	return Check{
		Name:  "type",
		Kind:  diagnostics.TYPE_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			checker := &typeChecker{report: report}
			ast.Accept[Type](root, checker)
			return !checker.failed
		},
	}
}

// InferType returns the static type of expr without reporting anything.
func InferType(expr ast.Expr) Type {
	return ast.Accept[Type](expr, &typeChecker{report: func(ast.Node, string) {}})
}

type typeChecker struct {
	report diagnostics.Reporter
	failed bool
}

func (tc *typeChecker) error(node ast.Node, format string, args ...any) {
	tc.failed = true
	tc.report(node, fmt.Sprintf(format, args...))
}

func (tc *typeChecker) body(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		ast.Accept[Type](stmt, tc)
	}
}

// expect infers expr and reports it if it matches none of expected.
func (tc *typeChecker) expect(expr ast.Expr, context string, expected []Type) (Type, bool) {
	ty := ast.Accept[Type](expr, tc)
	if !ty.matchesOneOf(expected) {
		tc.error(expr, "%s expects %s, got %s", context, typeList(expected), ty)
		return ty, false
	}
	return ty, true
}

func (tc *typeChecker) VisitProgram(program *ast.Program) Type {
	tc.body(program.Body)
	return NONE
}

func (tc *typeChecker) VisitRoutineDecl(routine *ast.RoutineDecl) Type {
	tc.body(routine.Body)
	return NONE
}

func (tc *typeChecker) VisitAssign(assign *ast.AssignStmt) Type {
	ast.Accept[Type](assign.Value, tc)
	ast.Accept[Type](assign.Target, tc)
	return NONE
}

func (tc *typeChecker) VisitFor(loop *ast.ForLoop) Type {
	tc.expect(loop.Start, "for start", numeric)
	tc.expect(loop.End, "for end", numeric)
	if loop.Step != nil {
		tc.expect(loop.Step, "for step", numeric)
	}
	tc.body(loop.Body)
	return NONE
}

func (tc *typeChecker) VisitWhile(loop *ast.WhileLoop) Type {
	tc.expect(loop.Cond, "while condition", boolean)
	tc.body(loop.Body)
	return NONE
}

func (tc *typeChecker) VisitIfThen(cond *ast.IfThen) Type {
	tc.expect(cond.Cond, "if condition", boolean)
	tc.body(cond.Then)
	tc.body(cond.Else)
	return NONE
}

func (tc *typeChecker) VisitGoto(*ast.GotoStmt) Type           { return NONE }
func (tc *typeChecker) VisitLabelDecl(*ast.LabelDecl) Type     { return NONE }
func (tc *typeChecker) VisitRoutineCall(*ast.RoutineCall) Type { return NONE }

func (tc *typeChecker) VisitExternalCall(call *ast.ExternalCall) Type {
	for _, arg := range call.Args {
		ast.Accept[Type](arg, tc)
	}
	return ANY
}

func (tc *typeChecker) VisitBinaryOp(binary *ast.BinaryOp) Type {
	op := binary.Op
	context := "operator " + op.String()

	switch {
	case op.IsLogical():
		tc.expect(binary.Left, context, boolean)
		tc.expect(binary.Right, context, boolean)
		return BOOL

	case op.IsArithmetic():
		tc.expect(binary.Left, context, numeric)
		tc.expect(binary.Right, context, numeric)
		return NUMBER

	case op.IsEquality():
		tc.expect(binary.Left, context, ordered)
		tc.expect(binary.Right, context, ordered)
		return BOOL

	case op.IsOrdering(), op.IsAdditive():
		lhs, lhsOk := tc.expect(binary.Left, context, ordered)
		rhs, rhsOk := tc.expect(binary.Right, context, ordered)
		if !lhsOk || !rhsOk {
			return ANY
		}
		if !lhs.Matches(rhs) {
			tc.error(binary, "mismatched types: %s %s %s", lhs, op, rhs)
			return ANY
		}
		if op.IsOrdering() {
			return BOOL
		}
		if lhs == ANY || rhs == ANY {
			return ANY
		}
		return lhs
	}

	tc.error(binary, "unknown operator %s", op)
	return ANY
}

func (tc *typeChecker) VisitUnaryMinus(neg *ast.UnaryMinus) Type {
	tc.expect(neg.Operand, "unary minus", numeric)
	return NUMBER
}

func (tc *typeChecker) VisitIdentifier(*ast.Identifier) Type { return ANY }

func (tc *typeChecker) VisitArrayRef(ref *ast.ArrayRef) Type {
	for _, index := range ref.Indices {
		tc.expect(index, "array index", numeric)
	}
	return ANY
}

func (tc *typeChecker) VisitNumber(*ast.NumberLiteral) Type    { return NUMBER }
func (tc *typeChecker) VisitString(*ast.StringLiteral) Type    { return STRING }
func (tc *typeChecker) VisitBool(*ast.BoolLiteral) Type        { return BOOL }
func (tc *typeChecker) VisitLabelName(*ast.LabelName) Type     { return NONE }
func (tc *typeChecker) VisitRoutineName(*ast.RoutineName) Type { return NONE }
