package rtabi

import (
	"errors"
	"strings"
	"testing"

	"github.com/HicaroD/basicc/internal/ast"
)

func TestCheckRuntime(t *testing.T) {
	tests := []struct {
		version  string
		ok       bool
		mismatch bool
	}{
		{Version, true, false},
		{"1.0.0", true, false},
		{"1.9.3", true, false},
		{"2.0.0", false, true},
		{"0.9.0", false, true},
		{"not-a-version", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckRuntime(tt.version)
			if (err == nil) != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, err)
			}
			if errors.Is(err, ERR_RUNTIME_ABI_MISMATCH) != tt.mismatch {
				t.Errorf("expected mismatch=%v, got %v", tt.mismatch, err)
			}
		})
	}
}

func TestBinaryOpFuncNames(t *testing.T) {
	if got := BinaryOpFunc(ast.OP_LEQ); got != "basic_op_leq" {
		t.Errorf("expected basic_op_leq, got %s", got)
	}

	seen := map[string]bool{}
	for _, fn := range RuntimeFunctions() {
		if seen[fn.Name] {
			t.Errorf("runtime function %s declared twice", fn.Name)
		}
		seen[fn.Name] = true
	}
	for _, op := range ast.Ops() {
		if !seen[BinaryOpFunc(op)] {
			t.Errorf("missing runtime function for %s", op)
		}
	}
}

func TestExternalFuncAvoidsRuntimeSymbols(t *testing.T) {
	reserved := map[string]bool{LineCell: true, VersionSymbol: true, EntryPoint: true}
	for _, fn := range RuntimeFunctions() {
		reserved[fn.Name] = true
	}

	tests := []struct{ module, function string }{
		{"basic", "get_bool"},
		{"basic", "copy"},
		{"basic_op", "plus"},
		{"", "_line"},
		{"io", "print"},
	}
	for _, tt := range tests {
		name := ExternalFunc(tt.module, tt.function)
		if reserved[name] {
			t.Errorf("%s.%s resolves to runtime symbol %s", tt.module, tt.function, name)
		}
	}
	if got := ExternalFunc("io", "print"); got != "ext_io_print" {
		t.Errorf("expected ext_io_print, got %s", got)
	}
	for name := range reserved {
		if strings.HasPrefix(name, ExternalPrefix) {
			t.Errorf("runtime symbol %s uses the external prefix", name)
		}
	}
}
