package ast

// Equal reports whether a and b have the same shape: same node kinds and
// recursively equal children and payloads. Spans are ignored.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	switch a := a.(type) {
	case *Identifier:
		b, ok := b.(*Identifier)
		return ok && a.Name == b.Name
	case *LabelName:
		b, ok := b.(*LabelName)
		return ok && a.Name == b.Name
	case *RoutineName:
		b, ok := b.(*RoutineName)
		return ok && a.Name == b.Name
	case *NumberLiteral:
		b, ok := b.(*NumberLiteral)
		return ok && a.Value == b.Value
	case *StringLiteral:
		b, ok := b.(*StringLiteral)
		return ok && a.Value == b.Value
	case *BoolLiteral:
		b, ok := b.(*BoolLiteral)
		return ok && a.Value == b.Value
	case *BinaryOp:
		b, ok := b.(*BinaryOp)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *ExternalCall:
		b, ok := b.(*ExternalCall)
		return ok && a.Module == b.Module && a.Function == b.Function && equalChildren(a, b)
	case *ForLoop:
		b, ok := b.(*ForLoop)
		// Step is optional, so a missing step must not line up with the first
		// body statement of the other loop.
		return ok && isNil(a.Step) == isNil(b.Step) && equalChildren(a, b)
	case *IfThen:
		b, ok := b.(*IfThen)
		return ok && len(a.Then) == len(b.Then) && equalChildren(a, b)
	default:
		if Kind(a) != Kind(b) {
			return false
		}
		return equalChildren(a, b)
	}
}

func equalChildren(a, b Node) bool {
	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *Identifier:
		return n == nil
	case *ArrayRef:
		return n == nil
	case *BinaryOp:
		return n == nil
	case *UnaryMinus:
		return n == nil
	case *ExternalCall:
		return n == nil
	case *NumberLiteral:
		return n == nil
	case *StringLiteral:
		return n == nil
	case *BoolLiteral:
		return n == nil
	}
	return false
}
