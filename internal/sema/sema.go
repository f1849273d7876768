// Package sema runs the static checks over a program. Checks are read-only
// and independent of each other, so they run concurrently; their diagnostics
// are merged in check order so the output does not depend on scheduling.
package sema

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/config"
	"github.com/HicaroD/basicc/internal/diagnostics"
)

var (
	ERR_CHECKS_FAILED = errors.New("static checks failed")
)

// Check is one static validation. Run reports every violation it finds and
// returns false if there was at least one.
type Check struct {
	Name  string
	Kind  diagnostics.Kind
	Level diagnostics.Level
	run   func(root ast.Node, report diagnostics.Reporter) bool
}

func (check Check) Run(root ast.Node, report diagnostics.Reporter) bool {
	return check.run(root, report)
}

// DefaultChecks returns the error-level checks, followed by the warning-level
// ones when opts.Warnings is set.
func DefaultChecks(opts config.Options) []Check {
	checks := []Check{
		LabelScopeCheck(),
		DoubleLabelCheck(),
		DoubleRoutineDeclCheck(),
		RoutineCallCheck(),
		MaxNameLengthCheck(opts.MaxNameLength),
		TypeCheck(),
	}
	if opts.Warnings {
		checks = append(checks, UnusedLabelCheck(), UnusedRoutineCheck())
	}
	return checks
}

type sema struct {
	collector *diagnostics.Collector
	checks    []Check
}

func New(collector *diagnostics.Collector, checks ...Check) *sema {
	return &sema{collector: collector, checks: checks}
}

type outcome struct {
	passed bool
	diags  []diagnostics.Diag
}

// Check runs every check and saves their diagnostics into the collector. It
// returns ERR_CHECKS_FAILED if an error-level check failed; warnings never
// fail the program.
func (s *sema) Check(ctx context.Context, program *ast.Program) error {
	outcomes := make([]outcome, len(s.checks))

	g, ctx := errgroup.WithContext(ctx)
	for i, check := range s.checks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var diags []diagnostics.Diag
			report := func(node ast.Node, message string) {
				diags = append(diags, diagnostics.Diag{
					Kind:    check.Kind,
					Level:   check.Level,
					Node:    node,
					Message: message,
				})
			}
			outcomes[i] = outcome{passed: check.Run(program, report), diags: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i, result := range outcomes {
		for _, diag := range result.diags {
			s.collector.ReportAndSave(diag)
		}
		if !result.passed && s.checks[i].Level == diagnostics.ERROR {
			failed = true
		}
	}
	if failed {
		return ERR_CHECKS_FAILED
	}
	return nil
}
