package main

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/compiler"
	"github.com/HicaroD/basicc/internal/config"
	"github.com/HicaroD/basicc/internal/diagnostics"
)

// RUNTIME_LIB is the archive in BASIC_RUNTIME executables are linked with.
const RUNTIME_LIB = "libbasic.a"

func build(ctx context.Context, args CliResult, opts config.Options) error {
	start := time.Now()

	var source []byte
	if args.Source != "" {
		var err error
		source, err = os.ReadFile(args.Source)
		if err != nil {
			return errors.Wrap(err, "reading source")
		}
	}
	collector := diagnostics.NewWithPrinter(diagnostics.NewPrinter(os.Stderr, source))

	program, err := loadProgram(args.Input)
	if err != nil {
		if errors.Is(err, ast.ERR_MALFORMED_AST) {
			collector.ReportAndSave(diagnostics.Diag{
				Kind:    diagnostics.SYNTAX_ERROR,
				Level:   diagnostics.ERROR,
				Message: err.Error(),
			})
			return diagnostics.COMPILER_ERROR_FOUND
		}
		return err
	}
	if args.Verbose {
		log.Printf("loaded %s in %s", args.Input, time.Since(start))
	}

	result, err := compiler.Compile(ctx, program, opts, collector)
	if err != nil {
		if collector.HasErrors() {
			return diagnostics.COMPILER_ERROR_FOUND
		}
		return err
	}
	if args.Verbose {
		log.Printf("compiled %d bindings in %s", result.Table.Len(), time.Since(start))
	}

	if err := config.WriteFile(args.Output, result.IR); err != nil {
		return errors.Wrap(err, "writing IR")
	}
	if args.Verbose {
		log.Printf("wrote %s", args.Output)
	}

	if args.Exe {
		exe, err := generateExe(ctx, args.Output, opts)
		if err != nil {
			return err
		}
		if args.Verbose {
			log.Printf("linked %s in %s", exe, time.Since(start))
		}
	}
	return nil
}

func loadProgram(path string) (*ast.Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer file.Close()

	program, err := ast.DecodeJSON(file)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return program, nil
}

// generateExe links the IR at irPath with the runtime library into an
// executable next to it.
func generateExe(ctx context.Context, irPath string, opts config.Options) (string, error) {
	if opts.RuntimeDir == "" {
		return "", errors.New("BASIC_RUNTIME is not set, see 'basicc env'")
	}
	exe := strings.TrimSuffix(irPath, filepath.Ext(irPath))

	compilerFlags := []string{opts.BuildType.OptLevel()}
	if opts.BuildType == config.RELEASE {
		compilerFlags = append(compilerFlags, "-Wl,-s")
	}
	compilerFlags = append(compilerFlags, "-o", exe, irPath, filepath.Join(opts.RuntimeDir, RUNTIME_LIB))

	cmd := exec.CommandContext(ctx, "clang", compilerFlags...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "running %s", cmd)
	}
	return exe, nil
}
