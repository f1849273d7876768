package ast

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/token"
)

// Program is the root of every tree: top-level statements interleaved with
// routine declarations, in source order.
type Program struct {
	node
	Body []Stmt
}

func NewProgram(body []Stmt, span token.Span) *Program {
	return &Program{node: node{span}, Body: body}
}

// Routines returns the routine declarations of the program in source order.
func (program *Program) Routines() []*RoutineDecl {
	var routines []*RoutineDecl
	for _, stmt := range program.Body {
		if routine, ok := stmt.(*RoutineDecl); ok {
			routines = append(routines, routine)
		}
	}
	return routines
}

func (program *Program) String() string { return fmt.Sprintf("Program %v", program.Body) }

// RoutineDecl is "Sub Name ... EndSub". Routines take no parameters and
// cannot nest.
type RoutineDecl struct {
	node
	Name *RoutineName
	Body []Stmt
}

func NewRoutineDecl(name *RoutineName, body []Stmt, span token.Span) *RoutineDecl {
	return &RoutineDecl{node: node{span}, Name: name, Body: body}
}

func (routine *RoutineDecl) String() string {
	return fmt.Sprintf("Sub %v %v", routine.Name, routine.Body)
}
func (*RoutineDecl) stmtNode() {}
