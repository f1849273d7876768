package sema

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/diagnostics"
	"github.com/HicaroD/basicc/internal/scope"
)

type labelUse struct {
	label *ast.LabelName
	scope scope.Scope
	decl  bool
}

// labelUses lists every label declaration and goto target with the scope it
// appears in, in source order.
func labelUses(root ast.Node) []labelUse {
	return scope.Fold(root, ast.Concat[labelUse](), func(n ast.Node, s scope.Scope, _ func() []labelUse) ([]labelUse, bool) {
		switch n := n.(type) {
		case *ast.LabelDecl:
			return []labelUse{{label: n.Label, scope: s, decl: true}}, true
		case *ast.GotoStmt:
			return []labelUse{{label: n.Label, scope: s}}, true
		}
		return nil, false
	})
}

type scopedName struct {
	scope scope.Scope
	name  string
}

func declaredLabels(uses []labelUse) map[scopedName]bool {
	declared := make(map[scopedName]bool)
	for _, use := range uses {
		if use.decl {
			declared[scopedName{use.scope, use.label.Name}] = true
		}
	}
	return declared
}

// LabelScopeCheck reports gotos whose target is not declared in the goto's
// own scope. A label of the same name in another scope does not count.
func LabelScopeCheck() Check {
	return Check{
		Name:  "label-scope",
		Kind:  diagnostics.LABEL_SCOPE_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			uses := labelUses(root)
			declared := declaredLabels(uses)
			ok := true
			for _, use := range uses {
				if use.decl || declared[scopedName{use.scope, use.label.Name}] {
					continue
				}
				report(use.label, fmt.Sprintf("label '%s' is not declared in %s", use.label.Name, use.scope))
				ok = false
			}
			return ok
		},
	}
}

// DoubleLabelCheck reports a label declared more than once in one scope.
func DoubleLabelCheck() Check {
	return Check{
		Name:  "double-label",
		Kind:  diagnostics.DOUBLE_LABEL_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			seen := make(map[scopedName]bool)
			ok := true
			for _, use := range labelUses(root) {
				if !use.decl {
					continue
				}
				key := scopedName{use.scope, use.label.Name}
				if seen[key] {
					report(use.label, fmt.Sprintf("label '%s' already declared in %s", use.label.Name, use.scope))
					ok = false
					continue
				}
				seen[key] = true
			}
			return ok
		},
	}
}

// UnusedLabelCheck warns about labels no goto of their scope targets.
func UnusedLabelCheck() Check {
	return Check{
		Name:  "unused-label",
		Kind:  diagnostics.UNUSED_LABEL,
		Level: diagnostics.WARNING,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			uses := labelUses(root)
			targeted := make(map[scopedName]bool)
			for _, use := range uses {
				if !use.decl {
					targeted[scopedName{use.scope, use.label.Name}] = true
				}
			}
			ok := true
			for _, use := range uses {
				if use.decl && !targeted[scopedName{use.scope, use.label.Name}] {
					report(use.label, fmt.Sprintf("label '%s' is never used", use.label.Name))
					ok = false
				}
			}
			return ok
		},
	}
}
