package sema

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/diagnostics"
)

type routineUse struct {
	name *ast.RoutineName
	decl bool
}

func routineUses(root ast.Node) []routineUse {
	return ast.Fold(root, ast.Concat[routineUse](), func(n ast.Node, descend func() []routineUse) ([]routineUse, bool) {
		switch n := n.(type) {
		case *ast.RoutineDecl:
			return append([]routineUse{{name: n.Name, decl: true}}, descend()...), true
		case *ast.RoutineCall:
			return []routineUse{{name: n.Routine}}, true
		}
		return nil, false
	})
}

func declaredRoutines(uses []routineUse) map[string]bool {
	declared := make(map[string]bool)
	for _, use := range uses {
		if use.decl {
			declared[use.name.Name] = true
		}
	}
	return declared
}

// DoubleRoutineDeclCheck reports every declaration of a routine name after
// the first.
func DoubleRoutineDeclCheck() Check {
	return Check{
		Name:  "double-routine-decl",
		Kind:  diagnostics.DOUBLE_ROUTINE_DECL_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			seen := make(map[string]bool)
			ok := true
			for _, use := range routineUses(root) {
				if !use.decl {
					continue
				}
				if seen[use.name.Name] {
					report(use.name, fmt.Sprintf("sub '%s' already declared", use.name.Name))
					ok = false
					continue
				}
				seen[use.name.Name] = true
			}
			return ok
		},
	}
}

// RoutineCallCheck reports calls to routines that are declared nowhere.
func RoutineCallCheck() Check {
	return Check{
		Name:  "routine-call",
		Kind:  diagnostics.ROUTINE_CALL_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			uses := routineUses(root)
			declared := declaredRoutines(uses)
			ok := true
			for _, use := range uses {
				if !use.decl && !declared[use.name.Name] {
					report(use.name, fmt.Sprintf("sub '%s' is not declared", use.name.Name))
					ok = false
				}
			}
			return ok
		},
	}
}

// UnusedRoutineCheck warns about routines that are never called.
func UnusedRoutineCheck() Check {
	return Check{
		Name:  "unused-routine",
		Kind:  diagnostics.UNUSED_ROUTINE,
		Level: diagnostics.WARNING,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			uses := routineUses(root)
			called := make(map[string]bool)
			for _, use := range uses {
				if !use.decl {
					called[use.name.Name] = true
				}
			}
			ok := true
			for _, use := range uses {
				if use.decl && !called[use.name.Name] {
					report(use.name, fmt.Sprintf("sub '%s' is never called", use.name.Name))
					ok = false
				}
			}
			return ok
		},
	}
}
