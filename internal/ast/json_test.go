package ast_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/testutil"
)

func TestDecodeAssignment(t *testing.T) {
	// a = 10
	src := `{"type": "Program", "body": [
		{"type": "Assign", "target": {"type": "Identifier", "name": "a"}, "value": {"type": "Number", "number": 10}}
	]}`

	program, err := ast.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := testutil.Prog(testutil.Assign(testutil.Id("a"), testutil.Num(10)))
	if !ast.Equal(program, expected) {
		t.Errorf("expected %v, got %v", expected, program)
	}
}

func TestDecodeRoutine(t *testing.T) {
	// Sub test
	// X = X + 3
	// Y = false
	// EndSub
	src := `{"type": "Program", "body": [{
		"type": "Sub", "name": "test",
		"span": {"start": {"line": 1, "column": 1}, "end": {"line": 4, "column": 7}},
		"body": [
			{"type": "Assign", "target": {"type": "Identifier", "name": "X"},
			 "value": {"type": "Binary", "op": "Plus",
			           "left": {"type": "Identifier", "name": "X"},
			           "right": {"type": "Number", "number": 3}}},
			{"type": "Assign", "target": {"type": "Identifier", "name": "Y"}, "value": {"type": "Bool", "bool": false}}
		]
	}]}`

	program, err := ast.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := testutil.Sub("test",
		testutil.Assign(testutil.Id("X"), testutil.Bin(testutil.Id("X"), ast.OP_PLUS, testutil.Num(3))),
		testutil.Assign(testutil.Id("Y"), testutil.Bool(false)),
	)
	if len(program.Body) != 1 || !ast.Equal(program.Body[0], expected) {
		t.Fatalf("expected %v, got %v", expected, program.Body)
	}
	if line := program.Body[0].Span().Start.Line; line != 1 {
		t.Errorf("expected routine to start on line 1, got %d", line)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	program := testutil.Prog(
		testutil.Label("start"),
		testutil.ForStep("i", testutil.Num(10), testutil.Num(1), testutil.Neg(testutil.Num(1)),
			testutil.Assign(testutil.Arr("A", testutil.Id("i"), testutil.Num(2)), testutil.Str("")),
		),
		testutil.IfElse(testutil.Bin(testutil.Id("x"), ast.OP_LEQ, testutil.Num(2)),
			[]ast.Stmt{testutil.Goto("start")},
			[]ast.Stmt{testutil.Ext("io", "print", testutil.Str("done"), testutil.Bool(false))},
		),
		testutil.Sub("s", testutil.While(testutil.Bool(true), testutil.Call("s"))),
	)

	var buf bytes.Buffer
	if err := ast.EncodeJSON(&buf, program); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	decoded, err := ast.DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !ast.Equal(program, decoded) {
		t.Errorf("round trip changed the tree:\n%v\n%v", program, decoded)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		errSubstr string
	}{
		{"not a program", `{"type": "Identifier", "name": "a"}`, "expected Program"},
		{"unknown node", `{"type": "Program", "body": [{"type": "Print"}]}`, `$.body[0]: unknown node type "Print"`},
		{"bad operator", `{"type": "Program", "body": [{"type": "Assign", "target": {"type": "Identifier", "name": "a"},
			"value": {"type": "Binary", "op": "Pow", "left": {"type": "Number", "number": 1}, "right": {"type": "Number", "number": 2}}}]}`, `unknown operator "Pow"`},
		{"literal as target", `{"type": "Program", "body": [{"type": "Assign", "target": {"type": "Number", "number": 1},
			"value": {"type": "Number", "number": 2}}]}`, "expected Identifier or ArrayRef"},
		{"expression as statement", `{"type": "Program", "body": [{"type": "Number", "number": 1}]}`, "expected a statement"},
		{"missing value", `{"type": "Program", "body": [{"type": "Assign", "target": {"type": "Identifier", "name": "a"}}]}`, "$.body[0].value: missing node"},
		{"goto without label", `{"type": "Program", "body": [{"type": "Goto"}]}`, "Goto requires a name"},
		{"invalid json", `{"type": "Program", "body": [`, "$: unexpected EOF"},
		{"wrong field type", `{"type": "Program", "body": {}}`, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ast.DecodeJSON(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, ast.ERR_MALFORMED_AST) {
				t.Errorf("expected ERR_MALFORMED_AST, got %s", err)
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("expected error containing %q, got %q", tt.errSubstr, err)
			}
		})
	}
}
