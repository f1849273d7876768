package scope

import (
	"fmt"

	"github.com/HicaroD/basicc/internal/ast"
)

type EntityKind int

const (
	VARIABLE EntityKind = iota
	LABEL
	ROUTINE
	LITERAL
)

func (kind EntityKind) String() string {
	switch kind {
	case VARIABLE:
		return "variable"
	case LABEL:
		return "label"
	case ROUTINE:
		return "routine"
	case LITERAL:
		return "literal"
	}
	return fmt.Sprintf("EntityKind(%d)", int(kind))
}

// Entity is what a binding names. Variables, labels and routines are
// identified by name; a literal is identified by its occurrence in the tree,
// so equal values written twice are two entities.
type Entity struct {
	Kind    EntityKind
	Name    string
	Literal ast.Expr
}

// EntityOf returns the entity n refers to, if n is nameable.
func EntityOf(n ast.Node) (Entity, bool) {
	switch n := n.(type) {
	case *ast.Identifier:
		return Entity{Kind: VARIABLE, Name: n.Name}, true
	case *ast.LabelName:
		return Entity{Kind: LABEL, Name: n.Name}, true
	case *ast.RoutineName:
		return Entity{Kind: ROUTINE, Name: n.Name}, true
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BoolLiteral:
		return Entity{Kind: LITERAL, Literal: n.(ast.Expr)}, true
	}
	return Entity{}, false
}

func (e Entity) hint() string {
	switch e.Kind {
	case VARIABLE:
		return "var." + e.Name
	case LABEL:
		return "label." + e.Name
	case ROUTINE:
		return "sub." + e.Name
	default:
		return "lit"
	}
}

// resolve maps the scope a node appears in to the scope its entity is bound
// in. Only labels are scoped.
func (e Entity) resolve(s Scope) Scope {
	if e.Kind == LABEL {
		return s
	}
	return TopLevel
}

type Binding struct {
	Entity Entity
	Scope  Scope
	Name   string
}

type key struct {
	entity Entity
	scope  Scope
}

// Table maps (entity, scope) pairs to their generated names. It is built once
// by Build and read-only afterwards.
type Table struct {
	names    map[key]string
	bindings []Binding
}

func newTable() *Table {
	return &Table{names: make(map[key]string)}
}

func (t *Table) bind(ctx *Context, e Entity, s Scope) {
	k := key{e, s}
	if _, ok := t.names[k]; ok {
		return
	}
	name := ctx.Fresh(e.hint())
	t.names[k] = name
	t.bindings = append(t.bindings, Binding{Entity: e, Scope: s, Name: name})
}

// Lookup returns the generated name of the entity n refers to, as seen from
// scope s.
func (t *Table) Lookup(n ast.Node, s Scope) (string, bool) {
	e, ok := EntityOf(n)
	if !ok {
		return "", false
	}
	name, ok := t.names[key{e, e.resolve(s)}]
	return name, ok
}

// MustLookup is Lookup for callers that run after a successful Build over
// the same tree, where a miss is a compiler bug.
func (t *Table) MustLookup(n ast.Node, s Scope) string {
	name, ok := t.Lookup(n, s)
	if !ok {
		panic(fmt.Sprintf("no binding for %s %v in %s", ast.Kind(n), n, s))
	}
	return name
}

// Bindings returns every binding in registration order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Of returns the bindings of one entity kind, in registration order.
func (t *Table) Of(kind EntityKind) []Binding {
	var out []Binding
	for _, b := range t.bindings {
		if b.Entity.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// LabelsIn returns the label bindings of scope s.
func (t *Table) LabelsIn(s Scope) []Binding {
	var out []Binding
	for _, b := range t.bindings {
		if b.Entity.Kind == LABEL && b.Scope == s {
			out = append(out, b)
		}
	}
	return out
}

func (t *Table) Len() int { return len(t.bindings) }

type occurrence struct {
	entity Entity
	scope  Scope
}

// Build registers every nameable entity of root in one traversal. Labels
// are bound in the scope they appear in; everything else at the top level.
func Build(ctx *Context, root ast.Node) *Table {
	occurrences := Fold(root, ast.Concat[occurrence](), func(n ast.Node, s Scope, _ func() []occurrence) ([]occurrence, bool) {
		e, ok := EntityOf(n)
		if !ok {
			return nil, false
		}
		return []occurrence{{e, e.resolve(s)}}, true
	})

	t := newTable()
	for _, o := range occurrences {
		t.bind(ctx, o.entity, o.scope)
	}
	return t
}
