// Package rtabi defines the ABI shared between the generated code and the
// boxed-value runtime library. Every value the program manipulates lives in
// a Boxed cell and is only touched through these functions.
package rtabi

import (
	"strings"

	"github.com/HicaroD/basicc/internal/ast"
)

// Boxed layout: { i8 tag, i64 payload }.
const (
	BoxedTypeName = "Boxed"
	BoxedTagBits  = 8
	BoxedBits     = 64
)

// Boxed value tags, as stored in the first field of a cell.
const (
	TagNone   = 0
	TagNumber = 1
	TagString = 2
	TagBool   = 3
	TagArray  = 4
)

// Runtime function names (must match runtime/basic.h declarations)
const (
	// i1 basic_get_bool(Boxed*)
	FnGetBool = "basic_get_bool"
	// void basic_set_bool(Boxed*, i1)
	FnSetBool = "basic_set_bool"
	// void basic_set_number(Boxed*, double)
	FnSetNumber = "basic_set_number"
	// void basic_set_string(Boxed*, const char*)
	FnSetString = "basic_set_string"
	// void basic_copy(Boxed* dst, Boxed* src)
	FnCopy = "basic_copy"
	// void basic_neg(Boxed* result, Boxed* operand)
	FnNeg = "basic_neg"
	// Boxed* basic_array_elem(Boxed* array, i32 count, Boxed* index...)
	FnArrayElem = "basic_array_elem"
)

// Global cells shared with the runtime.
const (
	// LineCell holds the source line of the statement being executed.
	LineCell = "__line"
	// VersionSymbol holds the ABI version the module was generated for.
	VersionSymbol = "basic.abi.version"
	// EntryPoint is the generated program's entry function.
	EntryPoint = "main"
	// ExitSuccess is returned by EntryPoint.
	ExitSuccess = 0
)

// BinaryOpFunc names the runtime function implementing op:
// void basic_op_<tag>(Boxed* result, Boxed* left, Boxed* right).
// basic_op_plus dispatches on the runtime type of its operands, adding
// numbers and concatenating strings.
func BinaryOpFunc(op ast.Op) string {
	return "basic_op_" + strings.ToLower(op.String())
}

// ExternalPrefix starts every external function symbol. No runtime
// function, global cell or generated name starts with it, so a program's
// external calls cannot resolve to the runtime's own symbols.
const ExternalPrefix = "ext_"

// ExternalFunc names the symbol behind Module.Function:
// void ext_<module>_<function>(Boxed* result, Boxed* arg...).
func ExternalFunc(module, function string) string {
	return ExternalPrefix + module + "_" + function
}

// Param kinds of a runtime signature.
const (
	PtrParam    = "ptr"
	BoolParam   = "i1"
	DoubleParam = "double"
	I32Param    = "i32"
	VoidResult  = "void"
)

// FuncSignature describes a runtime function's signature for code generation.
type FuncSignature struct {
	Name       string
	ReturnType string
	ParamTypes []string
	Variadic   bool
}

// RuntimeFunctions returns the signatures of all runtime functions.
func RuntimeFunctions() []FuncSignature {
	funcs := []FuncSignature{
		{Name: FnGetBool, ReturnType: BoolParam, ParamTypes: []string{PtrParam}},
		{Name: FnSetBool, ReturnType: VoidResult, ParamTypes: []string{PtrParam, BoolParam}},
		{Name: FnSetNumber, ReturnType: VoidResult, ParamTypes: []string{PtrParam, DoubleParam}},
		{Name: FnSetString, ReturnType: VoidResult, ParamTypes: []string{PtrParam, PtrParam}},
		{Name: FnCopy, ReturnType: VoidResult, ParamTypes: []string{PtrParam, PtrParam}},
		{Name: FnNeg, ReturnType: VoidResult, ParamTypes: []string{PtrParam, PtrParam}},
		{Name: FnArrayElem, ReturnType: PtrParam, ParamTypes: []string{PtrParam, I32Param}, Variadic: true},
	}
	for _, op := range ast.Ops() {
		funcs = append(funcs, FuncSignature{
			Name:       BinaryOpFunc(op),
			ReturnType: VoidResult,
			ParamTypes: []string{PtrParam, PtrParam, PtrParam},
		})
	}
	return funcs
}
