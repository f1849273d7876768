package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HicaroD/basicc/internal/rtabi"
)

func TestDefault(t *testing.T) {
	opts := Default()
	if opts.MaxNameLength != 40 {
		t.Errorf("expected default max name length 40, got %d", opts.MaxNameLength)
	}
	if opts.RuntimeVersion != rtabi.Version {
		t.Errorf("expected runtime version %s, got %s", rtabi.Version, opts.RuntimeVersion)
	}
	if !opts.TrackLines {
		t.Errorf("line tracking must be on by default")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name      string
		envs      map[string]string
		check     func(Options) bool
		errSubstr string
	}{
		{
			name:  "integer",
			envs:  map[string]string{"BASIC_MAX_NAME_LEN": "12"},
			check: func(o Options) bool { return o.MaxNameLength == 12 },
		},
		{
			name:  "boolean",
			envs:  map[string]string{"BASIC_WARNINGS": "true", "BASIC_TRACK_LINES": "0"},
			check: func(o Options) bool { return o.Warnings && !o.TrackLines },
		},
		{
			name:  "string",
			envs:  map[string]string{"BASIC_RUNTIME_VERSION": "1.4.0", "BASIC_TARGET": "x86_64-pc-linux-gnu"},
			check: func(o Options) bool { return o.RuntimeVersion == "1.4.0" && o.TargetTriple == "x86_64-pc-linux-gnu" },
		},
		{
			name:  "unknown keys are ignored",
			envs:  map[string]string{"SOMETHING_ELSE": "x"},
			check: func(o Options) bool { return o.MaxNameLength == DefaultMaxNameLength },
		},
		{
			name:      "bad integer",
			envs:      map[string]string{"BASIC_MAX_NAME_LEN": "forty"},
			errSubstr: "BASIC_MAX_NAME_LEN: expected an integer",
		},
		{
			name:      "bad boolean",
			envs:      map[string]string{"BASIC_WARNINGS": "maybe"},
			errSubstr: "BASIC_WARNINGS: expected a boolean",
		},
		{
			name:  "build type",
			envs:  map[string]string{"BASIC_BUILD": "release"},
			check: func(o Options) bool { return o.BuildType == RELEASE },
		},
		{
			name:      "bad build type",
			envs:      map[string]string{"BASIC_BUILD": "fast"},
			errSubstr: `BASIC_BUILD: unknown build type: "fast"`,
		},
		{
			name:      "non-positive length",
			envs:      map[string]string{"BASIC_MAX_NAME_LEN": "0"},
			errSubstr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			err := opts.ApplyEnv(tt.envs)
			if tt.errSubstr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
					t.Fatalf("expected error containing %q, got %v", tt.errSubstr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !tt.check(opts) {
				t.Errorf("options not applied: %+v", opts)
			}
		})
	}
}

func TestEnvs(t *testing.T) {
	opts := Default()
	envs := opts.Envs()
	if envs["BASIC_BUILD"] != "debug" || envs["BASIC_MAX_NAME_LEN"] != "40" || envs["BASIC_TRACK_LINES"] != "true" {
		t.Errorf("unexpected effective values: %v", envs)
	}
	if _, ok := envs["ModuleName"]; ok {
		t.Errorf("fields without an env key must not be listed")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env")
	content := "# comment\nBASIC_WARNINGS = true\n\nmalformed line\nBASIC_RUNTIME=/opt/rt=x\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	envs, err := LoadEnvFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if envs["BASIC_WARNINGS"] != "true" {
		t.Errorf("expected BASIC_WARNINGS=true, got %q", envs["BASIC_WARNINGS"])
	}
	if envs["BASIC_RUNTIME"] != "/opt/rt=x" {
		t.Errorf("value must be split on the first '=' only, got %q", envs["BASIC_RUNTIME"])
	}
	if len(envs) != 2 {
		t.Errorf("expected 2 entries, got %v", envs)
	}
}

func TestLoadCreatesDefaultEnvFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	opts, envs, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if envs["BASIC_RUNTIME"] == "" {
		t.Errorf("expected the default env file to be written, got %v", envs)
	}
	if opts.RuntimeDir != envs["BASIC_RUNTIME"] {
		t.Errorf("expected runtime dir %q, got %q", envs["BASIC_RUNTIME"], opts.RuntimeDir)
	}
}

func TestBuildType(t *testing.T) {
	if RELEASE.OptLevel() != "-O3" || DEBUG.OptLevel() != "-O0" {
		t.Errorf("unexpected optimization levels")
	}
	bt, err := ParseBuildType("release")
	if err != nil || bt != RELEASE {
		t.Errorf("expected release, got %s (%v)", bt, err)
	}
	if _, err := ParseBuildType("fast"); err == nil {
		t.Errorf("expected an error for an unknown build type")
	}
}

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir, err := ConfigDir("app")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if expected := filepath.Join(home, "app"); dir != expected {
		t.Errorf("expected %s, got %s", expected, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected %s to be created, got %v", dir, err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ll")
	if err := WriteFile(path, "first version, longer"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := WriteFile(path, "second"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("expected the file to be replaced, got %q", got)
	}

	err = WriteFile(filepath.Join(path, "nested"), "x")
	if err == nil || !strings.Contains(err.Error(), "writing") {
		t.Errorf("expected a wrapped write error, got %v", err)
	}
}
