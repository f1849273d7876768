package sema

import (
	"fmt"
	"unicode/utf8"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/diagnostics"
)

// MaxNameLengthCheck reports identifiers, labels and routine names longer
// than limit characters.
func MaxNameLengthCheck(limit int) Check {
	return Check{
		Name:  "max-name-length",
		Kind:  diagnostics.NAME_MAX_LEN_ERROR,
		Level: diagnostics.ERROR,
		run: func(root ast.Node, report diagnostics.Reporter) bool {
			ok := true
			ast.Inspect(root, func(n ast.Node) bool {
				var what, name string
				switch n := n.(type) {
				case *ast.Identifier:
					what, name = "identifier", n.Name
				case *ast.LabelName:
					what, name = "label", n.Name
				case *ast.RoutineName:
					what, name = "sub", n.Name
				default:
					return true
				}
				if length := utf8.RuneCountInString(name); length > limit {
					report(n, fmt.Sprintf("%s '%s' is %d characters long, the maximum is %d", what, name, length, limit))
					ok = false
				}
				return true
			})
			return ok
		},
	}
}
