package sema

import (
	"fmt"
	"strings"
)

// Type is the static type lattice. ANY is the type of every variable and
// array element and matches anything in both directions.
type Type int

const (
	NONE Type = iota
	ANY
	NUMBER
	STRING
	BOOL
)

func (ty Type) String() string {
	switch ty {
	case NONE:
		return "None"
	case ANY:
		return "Any"
	case NUMBER:
		return "Number"
	case STRING:
		return "String"
	case BOOL:
		return "Bool"
	}
	return fmt.Sprintf("Type(%d)", int(ty))
}

func (ty Type) Matches(other Type) bool {
	return ty == ANY || other == ANY || ty == other
}

func (ty Type) matchesOneOf(expected []Type) bool {
	for _, e := range expected {
		if ty.Matches(e) {
			return true
		}
	}
	return false
}

func typeList(types []Type) string {
	names := make([]string, len(types))
	for i, ty := range types {
		names[i] = ty.String()
	}
	return strings.Join(names, " or ")
}
