package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/HicaroD/basicc/internal/token"
	"github.com/pkg/errors"
)

// ERR_MALFORMED_AST is wrapped by every decoding error, so callers can tell
// a bad tree apart from an I/O failure.
var ERR_MALFORMED_AST = errors.New("malformed AST")

// jsonNode is the union of every node's fields in the interchange format.
type jsonNode struct {
	Type string      `json:"type"`
	Span *token.Span `json:"span,omitempty"`

	Name     string   `json:"name,omitempty"`
	Module   string   `json:"module,omitempty"`
	Function string   `json:"function,omitempty"`
	Op       string   `json:"op,omitempty"`
	Number   *float64 `json:"number,omitempty"`
	String   *string  `json:"string,omitempty"`
	Bool     *bool    `json:"bool,omitempty"`

	Target  *jsonNode `json:"target,omitempty"`
	Value   *jsonNode `json:"value,omitempty"`
	Var     *jsonNode `json:"var,omitempty"`
	Start   *jsonNode `json:"start,omitempty"`
	End     *jsonNode `json:"end,omitempty"`
	Step    *jsonNode `json:"step,omitempty"`
	Cond    *jsonNode `json:"cond,omitempty"`
	Left    *jsonNode `json:"left,omitempty"`
	Right   *jsonNode `json:"right,omitempty"`
	Operand *jsonNode `json:"operand,omitempty"`
	Base    *jsonNode `json:"base,omitempty"`

	Body    []*jsonNode `json:"body,omitempty"`
	Then    []*jsonNode `json:"then,omitempty"`
	Else    []*jsonNode `json:"else,omitempty"`
	Args    []*jsonNode `json:"args,omitempty"`
	Indices []*jsonNode `json:"indices,omitempty"`
}

// EncodeJSON writes the interchange form of n to w.
func EncodeJSON(w io.Writer, n Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(n))
}

func toJSON(n Node) *jsonNode {
	if isNil(n) {
		return nil
	}
	out := &jsonNode{Type: Kind(n)}
	if span := n.Span(); span.IsValid() {
		out.Span = &span
	}

	switch n := n.(type) {
	case *Program:
		out.Body = stmtsToJSON(n.Body)
	case *RoutineDecl:
		out.Name = n.Name.Name
		out.Body = stmtsToJSON(n.Body)
	case *AssignStmt:
		out.Target = toJSON(n.Target)
		out.Value = toJSON(n.Value)
	case *ForLoop:
		out.Var = toJSON(n.Var)
		out.Start = toJSON(n.Start)
		out.End = toJSON(n.End)
		out.Step = toJSON(n.Step)
		out.Body = stmtsToJSON(n.Body)
	case *WhileLoop:
		out.Cond = toJSON(n.Cond)
		out.Body = stmtsToJSON(n.Body)
	case *IfThen:
		out.Cond = toJSON(n.Cond)
		out.Then = stmtsToJSON(n.Then)
		out.Else = stmtsToJSON(n.Else)
	case *GotoStmt:
		out.Name = n.Label.Name
	case *LabelDecl:
		out.Name = n.Label.Name
	case *RoutineCall:
		out.Name = n.Routine.Name
	case *ExternalCall:
		out.Module = n.Module
		out.Function = n.Function
		out.Args = exprsToJSON(n.Args)
	case *BinaryOp:
		out.Op = n.Op.String()
		out.Left = toJSON(n.Left)
		out.Right = toJSON(n.Right)
	case *UnaryMinus:
		out.Operand = toJSON(n.Operand)
	case *Identifier:
		out.Name = n.Name
	case *ArrayRef:
		out.Base = toJSON(n.Base)
		out.Indices = exprsToJSON(n.Indices)
	case *NumberLiteral:
		value := n.Value
		out.Number = &value
	case *StringLiteral:
		value := n.Value
		out.String = &value
	case *BoolLiteral:
		value := n.Value
		out.Bool = &value
	case *LabelName, *RoutineName:
		out.Name = n.(fmt.Stringer).String()
	}
	return out
}

func stmtsToJSON(list []Stmt) []*jsonNode {
	out := make([]*jsonNode, len(list))
	for i, s := range list {
		out[i] = toJSON(s)
	}
	return out
}

func exprsToJSON(list []Expr) []*jsonNode {
	out := make([]*jsonNode, len(list))
	for i, e := range list {
		out[i] = toJSON(e)
	}
	return out
}

// DecodeJSON reads a whole program in the interchange format produced by the
// front-end.
func DecodeJSON(r io.Reader) (*Program, error) {
	var root jsonNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ERR_MALFORMED_AST, "$: %s", err)
		}
		return nil, errors.Wrap(err, "decoding AST")
	}
	d := decoder{}
	n := d.node(&root, "$")
	if d.err != nil {
		return nil, d.err
	}
	program, ok := n.(*Program)
	if !ok {
		return nil, errors.Wrapf(ERR_MALFORMED_AST, "$: expected Program, got %s", root.Type)
	}
	return program, nil
}

// decoder keeps the first error only; later calls become no-ops.
type decoder struct {
	err error
}

func (d *decoder) fail(path, format string, args ...any) {
	if d.err == nil {
		d.err = errors.Wrapf(ERR_MALFORMED_AST, "%s: %s", path, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) node(j *jsonNode, path string) Node {
	if d.err != nil {
		return nil
	}
	if j == nil {
		d.fail(path, "missing node")
		return nil
	}

	var span token.Span
	if j.Span != nil {
		span = *j.Span
	}

	switch j.Type {
	case "Program":
		return NewProgram(d.stmts(j.Body, path+".body"), span)
	case "Sub":
		name := NewRoutineName(d.name(j, path), span)
		return NewRoutineDecl(name, d.stmts(j.Body, path+".body"), span)
	case "Assign":
		target, ok := d.node(j.Target, path+".target").(Assignable)
		if !ok {
			d.fail(path+".target", "expected Identifier or ArrayRef")
		}
		return NewAssignStmt(target, d.expr(j.Value, path+".value"), span)
	case "For":
		var step Expr
		if j.Step != nil {
			step = d.expr(j.Step, path+".step")
		}
		return NewForLoop(
			d.identifier(j.Var, path+".var"),
			d.expr(j.Start, path+".start"),
			d.expr(j.End, path+".end"),
			step,
			d.stmts(j.Body, path+".body"),
			span,
		)
	case "While":
		return NewWhileLoop(d.expr(j.Cond, path+".cond"), d.stmts(j.Body, path+".body"), span)
	case "If":
		return NewIfThen(
			d.expr(j.Cond, path+".cond"),
			d.stmts(j.Then, path+".then"),
			d.stmts(j.Else, path+".else"),
			span,
		)
	case "Goto":
		return NewGotoStmt(NewLabelName(d.name(j, path), span), span)
	case "Label":
		return NewLabelDecl(NewLabelName(d.name(j, path), span), span)
	case "Call":
		return NewRoutineCall(NewRoutineName(d.name(j, path), span), span)
	case "ExtCall":
		if j.Module == "" || j.Function == "" {
			d.fail(path, "ExtCall requires module and function")
		}
		return NewExternalCall(j.Module, j.Function, d.exprs(j.Args, path+".args"), span)
	case "Binary":
		op, ok := ParseOp(j.Op)
		if !ok {
			d.fail(path+".op", "unknown operator %q", j.Op)
		}
		return NewBinaryOp(op, d.expr(j.Left, path+".left"), d.expr(j.Right, path+".right"), span)
	case "Neg":
		return NewUnaryMinus(d.expr(j.Operand, path+".operand"), span)
	case "Identifier":
		return NewIdentifier(d.name(j, path), span)
	case "ArrayRef":
		indices := d.exprs(j.Indices, path+".indices")
		if len(indices) == 0 {
			d.fail(path, "ArrayRef requires at least one index")
		}
		return NewArrayRef(d.identifier(j.Base, path+".base"), indices, span)
	case "Number":
		if j.Number == nil {
			d.fail(path, "Number requires a numeric \"number\" field")
			return nil
		}
		return NewNumberLiteral(*j.Number, span)
	case "String":
		if j.String == nil {
			d.fail(path, "String requires a \"string\" field")
			return nil
		}
		return NewStringLiteral(*j.String, span)
	case "Bool":
		if j.Bool == nil {
			d.fail(path, "Bool requires a \"bool\" field")
			return nil
		}
		return NewBoolLiteral(*j.Bool, span)
	default:
		d.fail(path, "unknown node type %q", j.Type)
		return nil
	}
}

func (d *decoder) name(j *jsonNode, path string) string {
	if j.Name == "" {
		d.fail(path, "%s requires a name", j.Type)
	}
	return j.Name
}

func (d *decoder) identifier(j *jsonNode, path string) *Identifier {
	id, ok := d.node(j, path).(*Identifier)
	if !ok {
		d.fail(path, "expected Identifier")
	}
	return id
}

func (d *decoder) expr(j *jsonNode, path string) Expr {
	n := d.node(j, path)
	if d.err != nil {
		return nil
	}
	e, ok := n.(Expr)
	if !ok {
		d.fail(path, "expected an expression, got %s", j.Type)
	}
	return e
}

func (d *decoder) exprs(list []*jsonNode, path string) []Expr {
	var out []Expr
	for i, j := range list {
		out = append(out, d.expr(j, path+"["+strconv.Itoa(i)+"]"))
	}
	return out
}

func (d *decoder) stmts(list []*jsonNode, path string) []Stmt {
	var out []Stmt
	for i, j := range list {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		n := d.node(j, itemPath)
		if d.err != nil {
			return out
		}
		s, ok := n.(Stmt)
		if !ok {
			d.fail(itemPath, "expected a statement, got %s", j.Type)
			return out
		}
		out = append(out, s)
	}
	return out
}
