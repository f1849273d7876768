// Package llvm lowers a checked program to LLVM IR over the boxed-value
// runtime. Every variable and literal occurrence gets a global Boxed cell;
// expressions evaluate to pointers to cells.
package llvm

import (
	"github.com/pkg/errors"
	"tinygo.org/x/go-llvm"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/config"
	"github.com/HicaroD/basicc/internal/rtabi"
	"github.com/HicaroD/basicc/internal/scope"
)

var (
	ERR_INVALID_MODULE = errors.New("generated module is invalid")
)

type llvmCodegen struct {
	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	ctx     *scope.Context
	table   *scope.Table
	program *ast.Program
	opts    config.Options

	boxed llvm.Type
	ptr   llvm.Type

	cells      map[string]llvm.Value
	strings    map[*ast.StringLiteral]stringConst
	lineCell   llvm.Value
	signatures map[string]rtabi.FuncSignature
	functions  map[string]*Function
	routines   []*ast.RoutineDecl

	fn *function
}

type stringConst struct {
	global llvm.Value
	ty     llvm.Type
}

// function is the state of the function being generated.
type function struct {
	value      llvm.Value
	entry      llvm.BasicBlock
	code       llvm.BasicBlock
	scope      scope.Scope
	labels     map[string]llvm.BasicBlock
	terminated bool
	lastLine   int
}

// NewCG prepares a generator for program. ctx must be the context table was
// built with, so generated names never collide with bound ones.
func NewCG(ctx *scope.Context, table *scope.Table, program *ast.Program, opts config.Options) *llvmCodegen {
	context := llvm.NewContext()
	module := context.NewModule(opts.ModuleName)
	builder := context.NewBuilder()

	targetTriple := opts.TargetTriple
	if targetTriple == "" {
		targetTriple = llvm.DefaultTargetTriple()
	}
	module.SetTarget(targetTriple)

	signatures := make(map[string]rtabi.FuncSignature)
	for _, sig := range rtabi.RuntimeFunctions() {
		signatures[sig.Name] = sig
	}

	return &llvmCodegen{
		context:    context,
		module:     module,
		builder:    builder,
		ctx:        ctx,
		table:      table,
		program:    program,
		opts:       opts,
		cells:      make(map[string]llvm.Value),
		strings:    make(map[*ast.StringLiteral]stringConst),
		signatures: signatures,
		functions:  make(map[string]*Function),
	}
}

// Generate emits the whole module and returns its textual IR. It may be
// called once.
func (c *llvmCodegen) Generate() (string, error) {
	c.declareBoxedType()
	c.generateCells()
	c.generateConstPool()

	c.routines = c.collectRoutines()
	for _, routine := range c.routines {
		c.generateRoutineSignature(routine)
	}
	mainFn := c.generateMainSignature()

	for _, routine := range c.routines {
		c.generateRoutineBody(routine)
	}
	c.generateMainBody(mainFn)

	if err := llvm.VerifyModule(c.module, llvm.ReturnStatusAction); err != nil {
		return "", errors.Wrap(ERR_INVALID_MODULE, err.Error())
	}
	return c.module.String(), nil
}

func (c *llvmCodegen) Dispose() {
	c.builder.Dispose()
	c.module.Dispose()
	c.context.Dispose()
}

// generateCells adds one internal Boxed global per variable binding, then
// one per literal occurrence, in binding order.
func (c *llvmCodegen) generateCells() {
	if c.opts.TrackLines {
		c.lineCell = llvm.AddGlobal(c.module, c.context.Int32Type(), rtabi.LineCell)
		c.lineCell.SetInitializer(llvm.ConstInt(c.context.Int32Type(), 0, false))
	}
	for _, kind := range []scope.EntityKind{scope.VARIABLE, scope.LITERAL} {
		for _, binding := range c.table.Of(kind) {
			cell := llvm.AddGlobal(c.module, c.boxed, binding.Name)
			cell.SetInitializer(llvm.ConstNull(c.boxed))
			cell.SetLinkage(llvm.InternalLinkage)
			c.cells[binding.Name] = cell
		}
	}
}

// generateConstPool adds the byte arrays backing string literals and the
// ABI version the module was generated for.
func (c *llvmCodegen) generateConstPool() {
	for _, binding := range c.table.Of(scope.LITERAL) {
		lit, ok := binding.Entity.Literal.(*ast.StringLiteral)
		if !ok {
			continue
		}
		global, ty := c.constString(c.ctx.Fresh("str"), lit.Value, llvm.PrivateLinkage)
		c.strings[lit] = stringConst{global: global, ty: ty}
	}
	c.constString(rtabi.VersionSymbol, rtabi.Version, llvm.ExternalLinkage)
}

func (c *llvmCodegen) collectRoutines() []*ast.RoutineDecl {
	var routines []*ast.RoutineDecl
	ast.Inspect(c.program, func(n ast.Node) bool {
		if routine, ok := n.(*ast.RoutineDecl); ok {
			routines = append(routines, routine)
		}
		return true
	})
	return routines
}

func (c *llvmCodegen) generateRoutineSignature(routine *ast.RoutineDecl) {
	name := c.table.MustLookup(routine.Name, scope.TopLevel)
	ty := llvm.FunctionType(c.context.VoidType(), nil, false)
	c.functions[name] = NewFunctionValue(llvm.AddFunction(c.module, name, ty), ty)
}

func (c *llvmCodegen) generateMainSignature() *Function {
	ty := llvm.FunctionType(c.context.Int32Type(), nil, false)
	fn := NewFunctionValue(llvm.AddFunction(c.module, rtabi.EntryPoint, ty), ty)
	c.functions[rtabi.EntryPoint] = fn
	return fn
}

// enterFunction starts fn with an entry block that will only hold allocas
// and a branch to the first code block.
func (c *llvmCodegen) enterFunction(fn llvm.Value, entryName, codeName string, s scope.Scope) {
	entry := c.context.AddBasicBlock(fn, entryName)
	code := c.context.AddBasicBlock(fn, codeName)

	c.fn = &function{
		value:  fn,
		entry:  entry,
		code:   code,
		scope:  s,
		labels: make(map[string]llvm.BasicBlock),
	}
	for _, label := range c.table.LabelsIn(s) {
		c.fn.labels[label.Name] = c.context.AddBasicBlock(fn, label.Name)
	}

	c.builder.SetInsertPointAtEnd(entry)
	c.builder.CreateBr(code)
	c.builder.SetInsertPointBefore(entry.LastInstruction())
}

func (c *llvmCodegen) generateRoutineBody(routine *ast.RoutineDecl) {
	name := c.table.MustLookup(routine.Name, scope.TopLevel)
	fn := c.functions[name]

	c.enterFunction(fn.Fn, "entry", "body", scope.Routine(routine.Name.Name))
	c.positionAtCode()

	c.generateBlock(routine.Body)
	if !c.fn.terminated {
		c.builder.CreateRetVoid()
	}
	c.fn = nil
}

// generateMainBody sets every literal cell in const.init, then runs the
// top-level statements from start.
func (c *llvmCodegen) generateMainBody(mainFn *Function) {
	c.enterFunction(mainFn.Fn, "const.init", "start", scope.TopLevel)

	for _, binding := range c.table.Of(scope.LITERAL) {
		cell := c.cells[binding.Name]
		switch lit := binding.Entity.Literal.(type) {
		case *ast.NumberLiteral:
			c.callRuntime(rtabi.FnSetNumber, cell, llvm.ConstFloat(c.context.DoubleType(), lit.Value))
		case *ast.BoolLiteral:
			c.callRuntime(rtabi.FnSetBool, cell, c.constBool(lit.Value))
		case *ast.StringLiteral:
			str := c.strings[lit]
			zero := llvm.ConstInt(c.context.Int32Type(), 0, false)
			ptr := llvm.ConstInBoundsGEP(str.ty, str.global, []llvm.Value{zero, zero})
			c.callRuntime(rtabi.FnSetString, cell, ptr)
		}
	}

	c.positionAtCode()
	c.generateBlock(c.program.Body)
	if !c.fn.terminated {
		c.builder.CreateRet(llvm.ConstInt(c.context.Int32Type(), rtabi.ExitSuccess, false))
	}
	c.fn = nil
}

// positionAtCode moves the builder to the block the entry block branches to.
func (c *llvmCodegen) positionAtCode() {
	c.builder.SetInsertPointAtEnd(c.fn.code)
}

func (c *llvmCodegen) constBool(value bool) llvm.Value {
	if value {
		return llvm.ConstInt(c.context.Int1Type(), 1, false)
	}
	return llvm.ConstInt(c.context.Int1Type(), 0, false)
}

// createEntryBlockAlloca reserves a fresh Boxed temporary in the entry block
// of the current function.
func (c *llvmCodegen) createEntryBlockAlloca(hint string) llvm.Value {
	current := c.builder.GetInsertBlock()
	c.builder.SetInsertPointBefore(c.fn.entry.LastInstruction())
	alloca := c.builder.CreateAlloca(c.boxed, c.ctx.Fresh(hint))
	c.builder.SetInsertPointAtEnd(current)
	return alloca
}
