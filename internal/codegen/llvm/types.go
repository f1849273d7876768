package llvm

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/HicaroD/basicc/internal/rtabi"
)

// Function pairs a function value with its type, which calls need.
type Function struct {
	Ty llvm.Type
	Fn llvm.Value
}

func NewFunctionValue(fn llvm.Value, ty llvm.Type) *Function {
	return &Function{Ty: ty, Fn: fn}
}

func (c *llvmCodegen) declareBoxedType() {
	c.boxed = c.context.StructCreateNamed(rtabi.BoxedTypeName)
	c.boxed.StructSetBody([]llvm.Type{
		c.context.IntType(rtabi.BoxedTagBits),
		c.context.IntType(rtabi.BoxedBits),
	}, false)
	c.ptr = llvm.PointerType(c.boxed, 0)
}

func (c *llvmCodegen) getParamType(kind string) llvm.Type {
	switch kind {
	case rtabi.PtrParam:
		return c.ptr
	case rtabi.BoolParam:
		return c.context.Int1Type()
	case rtabi.DoubleParam:
		return c.context.DoubleType()
	case rtabi.I32Param:
		return c.context.Int32Type()
	case rtabi.VoidResult:
		return c.context.VoidType()
	}
	panic(fmt.Sprintf("unknown runtime type kind: %s", kind))
}

// runtime returns the declaration of a runtime function, adding it to the
// module the first time it is used.
func (c *llvmCodegen) runtime(name string) *Function {
	if fn, ok := c.functions[name]; ok {
		return fn
	}
	sig, ok := c.signatures[name]
	if !ok {
		panic(fmt.Sprintf("unknown runtime function: %s", name))
	}
	params := make([]llvm.Type, len(sig.ParamTypes))
	for i, kind := range sig.ParamTypes {
		params[i] = c.getParamType(kind)
	}
	ty := llvm.FunctionType(c.getParamType(sig.ReturnType), params, sig.Variadic)
	fn := NewFunctionValue(llvm.AddFunction(c.module, name, ty), ty)
	c.functions[name] = fn
	return fn
}

// external returns the declaration of Module.Function. The runtime
// contract is a result cell followed by the argument cells.
func (c *llvmCodegen) external(module, function string) *Function {
	name := rtabi.ExternalFunc(module, function)
	if fn, ok := c.functions[name]; ok {
		return fn
	}
	ty := llvm.FunctionType(c.context.VoidType(), []llvm.Type{c.ptr}, true)
	fn := NewFunctionValue(llvm.AddFunction(c.module, name, ty), ty)
	c.functions[name] = fn
	return fn
}

func (c *llvmCodegen) callRuntime(name string, args ...llvm.Value) llvm.Value {
	fn := c.runtime(name)
	return c.builder.CreateCall(fn.Ty, fn.Fn, args, "")
}

func (c *llvmCodegen) llvmConstInt8s(data string) []llvm.Value {
	out := make([]llvm.Value, len(data)+1)
	for i := 0; i < len(data); i++ {
		out[i] = llvm.ConstInt(c.context.Int8Type(), uint64(data[i]), false)
	}
	// c-string null terminated string
	out[len(data)] = llvm.ConstInt(c.context.Int8Type(), 0, false)
	return out
}

// constString adds a null-terminated byte array global and returns it with
// its type.
func (c *llvmCodegen) constString(name, value string, linkage llvm.Linkage) (llvm.Value, llvm.Type) {
	arrTy := llvm.ArrayType(c.context.Int8Type(), len(value)+1)
	arr := llvm.ConstArray(c.context.Int8Type(), c.llvmConstInt8s(value))
	global := llvm.AddGlobal(c.module, arrTy, name)
	global.SetInitializer(arr)
	global.SetLinkage(linkage)
	global.SetGlobalConstant(true)
	global.SetAlignment(1)
	if linkage == llvm.PrivateLinkage {
		global.SetUnnamedAddr(true)
	}
	return global, arrTy
}
