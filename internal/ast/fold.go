package ast

// Monoid supplies the identity and the associative combine operation used by
// Fold. Combine must not depend on the order of its operands for the result
// to be meaningful as a set of facts.
type Monoid[T any] struct {
	Empty   T
	Combine func(a, b T) T
	// CombineAll, when set, combines many values in one step. It must agree
	// with a left fold of Combine starting from Empty.
	CombineAll func(parts []T) T
}

// Sum combines parts from left to right.
func (m Monoid[T]) Sum(parts []T) T {
	if m.CombineAll != nil {
		return m.CombineAll(parts)
	}
	acc := m.Empty
	for _, part := range parts {
		acc = m.Combine(acc, part)
	}
	return acc
}

// FoldFunc overrides the fold for selected nodes. Returning ok=false means
// "not handled": the default (combine all children) applies. descend runs
// the default on n's children and may be called from inside the override.
type FoldFunc[T any] func(n Node, descend func() T) (result T, ok bool)

// Fold reduces the tree rooted at n. Nodes that f does not handle combine
// the folds of their children, so a fold only overrides the kinds it cares
// about.
func Fold[T any](n Node, m Monoid[T], f FoldFunc[T]) T {
	descend := func() T {
		children := Children(n)
		parts := make([]T, len(children))
		for i, child := range children {
			parts[i] = Fold(child, m, f)
		}
		return m.Sum(parts)
	}
	if f != nil {
		if result, ok := f(n, descend); ok {
			return result
		}
	}
	return descend()
}

// Concat is the free monoid over slices, the usual choice for fact-gathering
// folds. Combining the children of a node copies each fact once, so a fold
// stays linear in the number of siblings.
func Concat[E any]() Monoid[[]E] {
	return Monoid[[]E]{
		Empty: nil,
		Combine: func(a, b []E) []E {
			return concat([][]E{a, b})
		},
		CombineAll: concat[E],
	}
}

func concat[E any](parts [][]E) []E {
	n, nonEmpty := 0, 0
	var last []E
	for _, part := range parts {
		if len(part) > 0 {
			n += len(part)
			nonEmpty++
			last = part
		}
	}
	switch nonEmpty {
	case 0:
		return nil
	case 1:
		return last
	}
	out := make([]E, 0, n)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

// Or is the boolean disjunction monoid.
var Or = Monoid[bool]{
	Empty:   false,
	Combine: func(a, b bool) bool { return a || b },
}
