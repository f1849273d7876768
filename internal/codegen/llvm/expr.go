package llvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/rtabi"
)

func (c *llvmCodegen) cell(n ast.Node) llvm.Value {
	return c.cells[c.table.MustLookup(n, c.fn.scope)]
}

func (c *llvmCodegen) getExprList(exprs []ast.Expr) []llvm.Value {
	values := make([]llvm.Value, len(exprs))
	for i, expr := range exprs {
		values[i] = c.lower(expr)
	}
	return values
}

func (c *llvmCodegen) VisitExternalCall(call *ast.ExternalCall) llvm.Value {
	args := c.getExprList(call.Args)
	result := c.createEntryBlockAlloca("ret")
	fn := c.external(call.Module, call.Function)
	c.builder.CreateCall(fn.Ty, fn.Fn, append([]llvm.Value{result}, args...), "")
	return result
}

func (c *llvmCodegen) VisitBinaryOp(binary *ast.BinaryOp) llvm.Value {
	lhs := c.lower(binary.Left)
	rhs := c.lower(binary.Right)
	result := c.createEntryBlockAlloca("tmp")
	c.callRuntime(rtabi.BinaryOpFunc(binary.Op), result, lhs, rhs)
	return result
}

func (c *llvmCodegen) VisitUnaryMinus(neg *ast.UnaryMinus) llvm.Value {
	operand := c.lower(neg.Operand)
	result := c.createEntryBlockAlloca("tmp")
	c.callRuntime(rtabi.FnNeg, result, operand)
	return result
}

func (c *llvmCodegen) VisitIdentifier(id *ast.Identifier) llvm.Value {
	return c.cell(id)
}

// VisitArrayRef returns a pointer to the element cell, owned by the runtime.
func (c *llvmCodegen) VisitArrayRef(ref *ast.ArrayRef) llvm.Value {
	base := c.lower(ref.Base)
	indices := c.getExprList(ref.Indices)
	count := llvm.ConstInt(c.context.Int32Type(), uint64(len(indices)), false)
	fn := c.runtime(rtabi.FnArrayElem)
	args := append([]llvm.Value{base, count}, indices...)
	return c.builder.CreateCall(fn.Ty, fn.Fn, args, c.ctx.Fresh("elem"))
}

func (c *llvmCodegen) VisitNumber(lit *ast.NumberLiteral) llvm.Value { return c.cell(lit) }
func (c *llvmCodegen) VisitString(lit *ast.StringLiteral) llvm.Value { return c.cell(lit) }
func (c *llvmCodegen) VisitBool(lit *ast.BoolLiteral) llvm.Value     { return c.cell(lit) }

// Names are resolved by the statements that own them.
func (c *llvmCodegen) VisitLabelName(*ast.LabelName) llvm.Value     { return llvm.Value{} }
func (c *llvmCodegen) VisitRoutineName(*ast.RoutineName) llvm.Value { return llvm.Value{} }
