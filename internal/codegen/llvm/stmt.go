package llvm

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/rtabi"
	"github.com/HicaroD/basicc/internal/scope"
)

// lower emits n at the current insertion point, preceded by a line marker
// when n starts a new source line.
func (c *llvmCodegen) lower(n ast.Node) llvm.Value {
	if _, isLabel := n.(*ast.LabelDecl); !isLabel {
		c.trackLine(n)
	}
	return ast.Accept[llvm.Value](n, c)
}

func (c *llvmCodegen) trackLine(n ast.Node) {
	if !c.opts.TrackLines {
		return
	}
	span := n.Span()
	if !span.IsValid() || span.Start.Line == c.fn.lastLine {
		return
	}
	c.fn.lastLine = span.Start.Line
	c.builder.CreateStore(llvm.ConstInt(c.context.Int32Type(), uint64(span.Start.Line), false), c.lineCell)
}

func (c *llvmCodegen) generateBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch stmt.(type) {
		case *ast.RoutineDecl:
			continue
		case *ast.LabelDecl:
		default:
			if c.fn.terminated {
				c.startBlock(c.context.AddBasicBlock(c.fn.value, c.ctx.Fresh("dead")))
			}
		}
		c.lower(stmt)
	}
}

// startBlock places bb right after the current block and continues there.
func (c *llvmCodegen) startBlock(bb llvm.BasicBlock) {
	bb.MoveAfter(c.builder.GetInsertBlock())
	c.builder.SetInsertPointAtEnd(bb)
	c.fn.terminated = false
}

// branch ends the current block with a jump to bb, unless it already ended.
func (c *llvmCodegen) branch(bb llvm.BasicBlock) {
	if !c.fn.terminated {
		c.builder.CreateBr(bb)
	}
	c.fn.terminated = true
}

func (c *llvmCodegen) condBr(cell llvm.Value, ifTrue, ifFalse llvm.BasicBlock) {
	fn := c.runtime(rtabi.FnGetBool)
	cond := c.builder.CreateCall(fn.Ty, fn.Fn, []llvm.Value{cell}, c.ctx.Fresh("cond"))
	c.builder.CreateCondBr(cond, ifTrue, ifFalse)
	c.fn.terminated = true
}

func (c *llvmCodegen) blocks(prefix string, suffixes ...string) []llvm.BasicBlock {
	n := c.ctx.Next()
	out := make([]llvm.BasicBlock, len(suffixes))
	for i, suffix := range suffixes {
		out[i] = c.context.AddBasicBlock(c.fn.value, fmt.Sprintf("%s.%s.%d", prefix, suffix, n))
	}
	return out
}

func (c *llvmCodegen) VisitProgram(program *ast.Program) llvm.Value {
	c.generateBlock(program.Body)
	return llvm.Value{}
}

// Routine bodies are generated as functions of their own.
func (c *llvmCodegen) VisitRoutineDecl(*ast.RoutineDecl) llvm.Value {
	return llvm.Value{}
}

func (c *llvmCodegen) VisitAssign(assign *ast.AssignStmt) llvm.Value {
	value := c.lower(assign.Value)
	target := c.lower(assign.Target)
	c.callRuntime(rtabi.FnCopy, target, value)
	return llvm.Value{}
}

func (c *llvmCodegen) VisitFor(loop *ast.ForLoop) llvm.Value {
	start := c.lower(loop.Start)
	variable := c.lower(loop.Var)
	c.callRuntime(rtabi.FnCopy, variable, start)

	bbs := c.blocks("for", "begin", "continue", "end")
	begin, cont, end := bbs[0], bbs[1], bbs[2]

	c.branch(begin)
	c.startBlock(begin)
	limit := c.lower(loop.End)
	cmp := c.createEntryBlockAlloca("cmp")
	c.callRuntime(rtabi.BinaryOpFunc(ast.OP_LEQ), cmp, variable, limit)
	c.condBr(cmp, cont, end)

	c.startBlock(cont)
	c.generateBlock(loop.Body)
	if !c.fn.terminated {
		var step llvm.Value
		if loop.Step != nil {
			step = c.lower(loop.Step)
		} else {
			step = c.createEntryBlockAlloca("step")
			c.callRuntime(rtabi.FnSetNumber, step, llvm.ConstFloat(c.context.DoubleType(), 1))
		}
		next := c.createEntryBlockAlloca("next")
		c.callRuntime(rtabi.BinaryOpFunc(ast.OP_PLUS), next, variable, step)
		c.callRuntime(rtabi.FnCopy, variable, next)
	}
	c.branch(begin)

	c.startBlock(end)
	return llvm.Value{}
}

func (c *llvmCodegen) VisitWhile(loop *ast.WhileLoop) llvm.Value {
	bbs := c.blocks("while", "begin", "continue", "end")
	begin, cont, end := bbs[0], bbs[1], bbs[2]

	c.branch(begin)
	c.startBlock(begin)
	cond := c.lower(loop.Cond)
	c.condBr(cond, cont, end)

	c.startBlock(cont)
	c.generateBlock(loop.Body)
	c.branch(begin)

	c.startBlock(end)
	return llvm.Value{}
}

func (c *llvmCodegen) VisitIfThen(cond *ast.IfThen) llvm.Value {
	value := c.lower(cond.Cond)
	bbs := c.blocks("if", "true", "false", "end")
	ifTrue, ifFalse, end := bbs[0], bbs[1], bbs[2]
	c.condBr(value, ifTrue, ifFalse)

	c.startBlock(ifTrue)
	c.generateBlock(cond.Then)
	c.branch(end)

	c.startBlock(ifFalse)
	c.generateBlock(cond.Else)
	c.branch(end)

	c.startBlock(end)
	return llvm.Value{}
}

func (c *llvmCodegen) labelBlock(label *ast.LabelName) llvm.BasicBlock {
	name := c.table.MustLookup(label, c.fn.scope)
	bb, ok := c.fn.labels[name]
	if !ok {
		panic(fmt.Sprintf("no block for label '%s' in %s", label.Name, c.fn.scope))
	}
	return bb
}

func (c *llvmCodegen) VisitGoto(jump *ast.GotoStmt) llvm.Value {
	c.branch(c.labelBlock(jump.Label))
	return llvm.Value{}
}

// A label falls through into its own block. Control may reach it from any
// goto, so the current line is unknown again.
func (c *llvmCodegen) VisitLabelDecl(decl *ast.LabelDecl) llvm.Value {
	bb := c.labelBlock(decl.Label)
	c.branch(bb)
	c.startBlock(bb)
	c.fn.lastLine = 0
	return llvm.Value{}
}

func (c *llvmCodegen) VisitRoutineCall(call *ast.RoutineCall) llvm.Value {
	name := c.table.MustLookup(call.Routine, scope.TopLevel)
	fn, ok := c.functions[name]
	if !ok {
		panic(fmt.Sprintf("sub '%s' was never declared", call.Routine.Name))
	}
	c.builder.CreateCall(fn.Ty, fn.Fn, nil, "")
	return llvm.Value{}
}
