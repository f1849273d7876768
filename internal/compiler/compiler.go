// Package compiler runs the phases of one compilation in order: runtime
// ABI check, symbol table, static checks, code generation. Checks are a
// hard gate: nothing is generated for a program that failed one.
package compiler

import (
	"context"

	"github.com/pkg/errors"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/codegen/llvm"
	"github.com/HicaroD/basicc/internal/config"
	"github.com/HicaroD/basicc/internal/diagnostics"
	"github.com/HicaroD/basicc/internal/rtabi"
	"github.com/HicaroD/basicc/internal/scope"
	"github.com/HicaroD/basicc/internal/sema"
)

type Result struct {
	IR    string
	Table *scope.Table
}

// Compile lowers program to LLVM IR. Diagnostics go to collector; the
// returned error wraps sema.ERR_CHECKS_FAILED when a check failed.
func Compile(ctx context.Context, program *ast.Program, opts config.Options, collector *diagnostics.Collector) (*Result, error) {
	if err := rtabi.CheckRuntime(opts.RuntimeVersion); err != nil {
		return nil, errors.Wrap(err, "checking runtime")
	}

	names := scope.NewContext()
	table := scope.Build(names, program)

	checker := sema.New(collector, sema.DefaultChecks(opts)...)
	if err := checker.Check(ctx, program); err != nil {
		return nil, errors.Wrap(err, "checking program")
	}

	cg := llvm.NewCG(names, table, program, opts)
	defer cg.Dispose()

	ir, err := cg.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "generating code")
	}
	return &Result{IR: ir, Table: table}, nil
}
