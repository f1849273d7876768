// Package scope assigns every nameable entity of a program a unique
// generated name. The language has one global scope plus one flat scope per
// routine, and only labels are scoped: variables, routines and literals are
// always bound at the top level.
package scope

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
)

type Scope struct {
	routine string
	inner   bool
}

var TopLevel = Scope{}

func Routine(name string) Scope {
	return Scope{routine: name, inner: true}
}

func (s Scope) IsTopLevel() bool { return !s.inner }

// RoutineName is empty for the top level.
func (s Scope) RoutineName() string { return s.routine }

func (s Scope) String() string {
	if s.IsTopLevel() {
		return "top level"
	}
	return fmt.Sprintf("sub '%s'", s.routine)
}

// ScopedFoldFunc is ast.FoldFunc with the scope the node appears in.
type ScopedFoldFunc[T any] func(n ast.Node, s Scope, descend func() T) (T, bool)

// Fold is ast.Fold that also tracks the current scope: the body of a
// RoutineDecl is folded inside Routine(name), everything else, including the
// RoutineDecl node and its name, inside TopLevel.
func Fold[T any](root ast.Node, m ast.Monoid[T], f ScopedFoldFunc[T]) T {
	current := TopLevel

	var fold ast.FoldFunc[T]
	fold = func(n ast.Node, descend func() T) (T, bool) {
		routine, ok := n.(*ast.RoutineDecl)
		if !ok {
			return f(n, current, descend)
		}

		enter := func() T {
			parts := make([]T, 0, len(routine.Body)+1)
			parts = append(parts, ast.Fold(routine.Name, m, fold))
			previous := current
			current = Routine(routine.Name.Name)
			defer func() { current = previous }()
			for _, stmt := range routine.Body {
				parts = append(parts, ast.Fold(stmt, m, fold))
			}
			return m.Sum(parts)
		}
		if result, handled := f(n, current, enter); handled {
			return result, true
		}
		return enter(), true
	}

	return ast.Fold(root, m, fold)
}
