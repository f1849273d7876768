// Package diagnostics collects and prints the problems found while checking
// a program.
package diagnostics

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
)

type Kind int

const (
	SYNTAX_ERROR Kind = iota
	LABEL_SCOPE_ERROR
	DOUBLE_LABEL_ERROR
	DOUBLE_ROUTINE_DECL_ERROR
	ROUTINE_CALL_ERROR
	NAME_MAX_LEN_ERROR
	TYPE_ERROR
	UNUSED_LABEL
	UNUSED_ROUTINE
)

func (kind Kind) String() string {
	switch kind {
	case SYNTAX_ERROR:
		return "SyntaxError"
	case LABEL_SCOPE_ERROR:
		return "LabelScopeError"
	case DOUBLE_LABEL_ERROR:
		return "DoubleLabelError"
	case DOUBLE_ROUTINE_DECL_ERROR:
		return "DoubleRoutineDeclError"
	case ROUTINE_CALL_ERROR:
		return "RoutineCallError"
	case NAME_MAX_LEN_ERROR:
		return "NameMaxLenError"
	case TYPE_ERROR:
		return "TypeError"
	case UNUSED_LABEL:
		return "UnusedLabel"
	case UNUSED_ROUTINE:
		return "UnusedRoutine"
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

type Level int

const (
	ERROR Level = iota
	WARNING
)

func (level Level) String() string {
	if level == WARNING {
		return "warning"
	}
	return "error"
}

type Diag struct {
	Kind    Kind
	Level   Level
	Node    ast.Node // may be nil
	Message string
}

func (diag Diag) String() string {
	if diag.Node != nil {
		if span := diag.Node.Span(); span.IsValid() {
			return fmt.Sprintf("%s[%s] %s: %s", diag.Level, diag.Kind, span.Start, diag.Message)
		}
	}
	return fmt.Sprintf("%s[%s]: %s", diag.Level, diag.Kind, diag.Message)
}

// Reporter is the sink a check reports into: the faulty node and a
// human-readable message.
type Reporter func(node ast.Node, message string)
