package sema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HicaroD/basicc/internal/ast"
	"github.com/HicaroD/basicc/internal/config"
	"github.com/HicaroD/basicc/internal/diagnostics"
	"github.com/HicaroD/basicc/internal/testutil"
)

type reported struct {
	node    ast.Node
	message string
}

func runCheck(check Check, program *ast.Program) (bool, []reported) {
	var diags []reported
	ok := check.Run(program, func(node ast.Node, message string) {
		diags = append(diags, reported{node, message})
	})
	return ok, diags
}

func containsDiag(diags []diagnostics.Diag, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func TestLabelScopeCheck(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		pass    bool
	}{
		{
			// Goto label / label:
			name:    "forward goto at top level",
			program: testutil.Prog(testutil.Goto("label"), testutil.Label("label")),
			pass:    true,
		},
		{
			// Sub test / label: / EndSub / Goto label
			name:    "top level goto into sub label",
			program: testutil.Prog(testutil.Sub("test", testutil.Label("label")), testutil.Goto("label")),
			pass:    false,
		},
		{
			// Sub test / Goto label1 / EndSub / label1:
			name:    "sub goto into top level label",
			program: testutil.Prog(testutil.Sub("test", testutil.Goto("label1")), testutil.Label("label1")),
			pass:    false,
		},
		{
			name:    "goto inside sub",
			program: testutil.Prog(testutil.Sub("test", testutil.Label("again"), testutil.Goto("again"))),
			pass:    true,
		},
		{
			name:    "same name declared in both scopes",
			program: testutil.Prog(testutil.Sub("test", testutil.Label("l"), testutil.Goto("l")), testutil.Label("l"), testutil.Goto("l")),
			pass:    true,
		},
		{
			name:    "goto nested in loop body",
			program: testutil.Prog(testutil.Label("top"), testutil.While(testutil.Bool(true), testutil.If(testutil.Bool(false), testutil.Goto("top")))),
			pass:    true,
		},
		{
			name:    "undeclared label",
			program: testutil.Prog(testutil.Goto("nowhere")),
			pass:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, diags := runCheck(LabelScopeCheck(), tt.program)
			if ok != tt.pass {
				t.Fatalf("expected pass=%v, got %v (%v)", tt.pass, ok, diags)
			}
			if ok != (len(diags) == 0) {
				t.Fatalf("result and diagnostics disagree: %v %v", ok, diags)
			}
		})
	}
}

func TestLabelScopeCheckReportsEveryGoto(t *testing.T) {
	ok, diags := runCheck(LabelScopeCheck(), testutil.Prog(testutil.Goto("a"), testutil.Goto("b"), testutil.Sub("s", testutil.Goto("c"))))
	if ok {
		t.Fatal("expected failure")
	}
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(diags))
	}
	if !strings.Contains(diags[2].message, "sub 's'") {
		t.Errorf("expected the routine scope in %q", diags[2].message)
	}
	if _, isLabel := diags[0].node.(*ast.LabelName); !isLabel {
		t.Errorf("expected the label name to be reported, got %T", diags[0].node)
	}
}

func TestDoubleLabelCheck(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		pass    bool
	}{
		{
			name:    "twice in one sub",
			program: testutil.Prog(testutil.Sub("test", testutil.Label("label"), testutil.Label("label"))),
			pass:    false,
		},
		{
			name:    "once per scope",
			program: testutil.Prog(testutil.Sub("test", testutil.Label("label")), testutil.Label("label")),
			pass:    true,
		},
		{
			name:    "same label in two subs",
			program: testutil.Prog(testutil.Sub("a", testutil.Label("l")), testutil.Sub("b", testutil.Label("l"))),
			pass:    true,
		},
		{
			name:    "twice at top level",
			program: testutil.Prog(testutil.Label("l"), testutil.Assign(testutil.Id("x"), testutil.Num(1)), testutil.Label("l")),
			pass:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, diags := runCheck(DoubleLabelCheck(), tt.program)
			if ok != tt.pass {
				t.Fatalf("expected pass=%v, got %v (%v)", tt.pass, ok, diags)
			}
		})
	}
}

func TestRoutineChecks(t *testing.T) {
	tests := []struct {
		name       string
		program    *ast.Program
		doubleDecl bool
		badCall    bool
	}{
		{
			name:    "call declared routine",
			program: testutil.Prog(testutil.Sub("test"), testutil.Call("test")),
		},
		{
			name:    "call before declaration",
			program: testutil.Prog(testutil.Call("test"), testutil.Sub("test")),
		},
		{
			name:    "undeclared call",
			program: testutil.Prog(testutil.Call("missing")),
			badCall: true,
		},
		{
			name:       "declared twice",
			program:    testutil.Prog(testutil.Sub("test"), testutil.Sub("test")),
			doubleDecl: true,
		},
		{
			name:    "call from inside a routine",
			program: testutil.Prog(testutil.Sub("a", testutil.Call("b")), testutil.Sub("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := runCheck(DoubleRoutineDeclCheck(), tt.program)
			if ok == tt.doubleDecl {
				t.Errorf("double decl: expected pass=%v, got %v", !tt.doubleDecl, ok)
			}
			ok, _ = runCheck(RoutineCallCheck(), tt.program)
			if ok == tt.badCall {
				t.Errorf("routine call: expected pass=%v, got %v", !tt.badCall, ok)
			}
		})
	}
}

func TestMaxNameLengthCheck(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		pass    bool
	}{
		{"identifier of 40", testutil.Prog(testutil.Assign(testutil.Id(testutil.Name(40)), testutil.Num(1))), true},
		{"identifier of 41", testutil.Prog(testutil.Assign(testutil.Id(testutil.Name(41)), testutil.Num(1))), false},
		{"label of 40", testutil.Prog(testutil.Label(testutil.Name(40))), true},
		{"label of 41", testutil.Prog(testutil.Label(testutil.Name(41))), false},
		{"goto target of 41", testutil.Prog(testutil.Goto(testutil.Name(41))), false},
		{"routine of 40", testutil.Prog(testutil.Sub(testutil.Name(40))), true},
		{"routine of 41", testutil.Prog(testutil.Sub(testutil.Name(41))), false},
		{"call of 41", testutil.Prog(testutil.Call(testutil.Name(41))), false},
		{"array base of 41", testutil.Prog(testutil.Assign(testutil.Arr(testutil.Name(41), testutil.Num(0)), testutil.Num(1))), false},
		{"multibyte characters count once", testutil.Prog(testutil.Assign(testutil.Id(strings.Repeat("é", 40)), testutil.Num(1))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, diags := runCheck(MaxNameLengthCheck(config.DefaultMaxNameLength), tt.program)
			if ok != tt.pass {
				t.Fatalf("expected pass=%v, got %v (%v)", tt.pass, ok, diags)
			}
		})
	}

	ok, _ := runCheck(MaxNameLengthCheck(3), testutil.Prog(testutil.Assign(testutil.Id("abcd"), testutil.Num(1))))
	if ok {
		t.Error("expected a configured limit of 3 to reject a 4 character name")
	}
}

func TestWarningChecks(t *testing.T) {
	program := testutil.Prog(
		testutil.Sub("used", testutil.Label("inner")),
		testutil.Sub("unused"),
		testutil.Call("used"),
		testutil.Label("target"),
		testutil.Goto("target"),
	)

	ok, diags := runCheck(UnusedLabelCheck(), program)
	if ok || len(diags) != 1 || !strings.Contains(diags[0].message, "'inner'") {
		t.Errorf("expected one unused label 'inner', got %v", diags)
	}

	ok, diags = runCheck(UnusedRoutineCheck(), program)
	if ok || len(diags) != 1 || !strings.Contains(diags[0].message, "'unused'") {
		t.Errorf("expected one unused routine 'unused', got %v", diags)
	}
}

func TestCheckGatesOnErrors(t *testing.T) {
	opts := config.Default()
	opts.Warnings = true

	tests := []struct {
		name     string
		program  *ast.Program
		hasError bool
		messages []string
	}{
		{
			name:    "clean program",
			program: testutil.Prog(testutil.Assign(testutil.Id("x"), testutil.Num(1)), testutil.Sub("s"), testutil.Call("s")),
		},
		{
			name:     "warnings only",
			program:  testutil.Prog(testutil.Sub("s"), testutil.Label("l")),
			messages: []string{"never called", "never used"},
		},
		{
			name:     "errors from several checks",
			program:  testutil.Prog(testutil.Goto("nowhere"), testutil.Call("missing"), testutil.Assign(testutil.Id("x"), testutil.Bin(testutil.Num(1), ast.OP_PLUS, testutil.Str("a")))),
			hasError: true,
			messages: []string{"not declared in top level", "sub 'missing' is not declared", "mismatched types"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := diagnostics.New()
			err := New(collector, DefaultChecks(opts)...).Check(context.Background(), tt.program)
			if tt.hasError != (err != nil) {
				t.Fatalf("expected error=%v, got %v", tt.hasError, err)
			}
			if err != nil && !errors.Is(err, ERR_CHECKS_FAILED) {
				t.Fatalf("expected ERR_CHECKS_FAILED, got %v", err)
			}
			if tt.hasError != collector.HasErrors() {
				t.Fatalf("collector disagrees: %v", collector.All())
			}
			for _, msg := range tt.messages {
				if !containsDiag(collector.All(), msg) {
					t.Errorf("expected a diagnostic containing %q, got %v", msg, collector.All())
				}
			}
		})
	}
}

func TestCheckOutputIsInCheckOrder(t *testing.T) {
	program := testutil.Prog(
		testutil.Goto("a"),
		testutil.Call("b"),
		testutil.Label(testutil.Name(41)),
		testutil.Assign(testutil.Id("x"), testutil.Bin(testutil.Bool(true), ast.OP_AND, testutil.Num(1))),
	)
	checks := DefaultChecks(config.Default())

	var first []diagnostics.Diag
	for i := 0; i < 20; i++ {
		collector := diagnostics.New()
		_ = New(collector, checks...).Check(context.Background(), program)
		diags := collector.All()
		if i == 0 {
			first = diags
			continue
		}
		if len(diags) != len(first) {
			t.Fatalf("run %d: expected %d diagnostics, got %d", i, len(first), len(diags))
		}
		for j := range diags {
			if diags[j].String() != first[j].String() {
				t.Fatalf("run %d: diagnostic %d differs: %s vs %s", i, j, diags[j], first[j])
			}
		}
	}

	var kinds []diagnostics.Kind
	for _, d := range first {
		kinds = append(kinds, d.Kind)
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i] < kinds[i-1] {
			t.Fatalf("diagnostics not grouped in check order: %v", kinds)
		}
	}
}

func TestCheckHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := diagnostics.New()
	err := New(collector, TypeCheck()).Check(ctx, testutil.Prog())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultChecks(t *testing.T) {
	opts := config.Default()
	if got := len(DefaultChecks(opts)); got != 6 {
		t.Errorf("expected 6 checks, got %d", got)
	}
	opts.Warnings = true
	checks := DefaultChecks(opts)
	if len(checks) != 8 {
		t.Fatalf("expected 8 checks, got %d", len(checks))
	}
	for _, check := range checks[6:] {
		if check.Level != diagnostics.WARNING {
			t.Errorf("%s: expected warning level", check.Name)
		}
	}
}
