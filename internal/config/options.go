// Package config holds the knobs of one compilation and loads overrides
// from the user's env file.
package config

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/HicaroD/basicc/internal/rtabi"
)

const DefaultMaxNameLength = 40

type Options struct {
	// ModuleName names the generated LLVM module.
	ModuleName string
	// TargetTriple defaults to the host triple when empty.
	TargetTriple  string `env:"BASIC_TARGET"`
	MaxNameLength int    `env:"BASIC_MAX_NAME_LEN"`
	// Warnings enables the warning-level checks.
	Warnings bool `env:"BASIC_WARNINGS"`
	// TrackLines makes the generated code keep the current source line in a
	// global, for runtime error messages.
	TrackLines bool `env:"BASIC_TRACK_LINES"`
	// RuntimeVersion is the version of the runtime library the program will
	// be linked against.
	RuntimeVersion string `env:"BASIC_RUNTIME_VERSION"`
	// RuntimeDir holds the runtime library, needed only to link executables.
	RuntimeDir string    `env:"BASIC_RUNTIME"`
	BuildType  BuildType `env:"BASIC_BUILD"`
}

func Default() Options {
	return Options{
		ModuleName:     "main",
		MaxNameLength:  DefaultMaxNameLength,
		Warnings:       false,
		TrackLines:     true,
		RuntimeVersion: rtabi.Version,
		BuildType:      DEBUG,
	}
}

// ApplyEnv overrides every field whose env tag appears in envs.
func (opts *Options) ApplyEnv(envs map[string]string) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}
		value, ok := envs[envTag]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if buildType, ok := fieldValue.Addr().Interface().(*BuildType); ok {
			bt, err := ParseBuildType(value)
			if err != nil {
				return fmt.Errorf("%s: %w", envTag, err)
			}
			*buildType = bt
			continue
		}
		switch fieldValue.Kind() {
		case reflect.String:
			fieldValue.SetString(value)
		case reflect.Int:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s: expected an integer, got %q", envTag, value)
			}
			fieldValue.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s: expected a boolean, got %q", envTag, value)
			}
			fieldValue.SetBool(b)
		}
	}

	return opts.Validate()
}

func (opts *Options) Validate() error {
	if opts.MaxNameLength <= 0 {
		return fmt.Errorf("maximum name length must be positive, got %d", opts.MaxNameLength)
	}
	return nil
}

// Envs lists the env keys Options understands together with their current
// values.
func (opts *Options) Envs() map[string]string {
	out := make(map[string]string)
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()
	for i := range t.NumField() {
		if envTag := t.Field(i).Tag.Get("env"); envTag != "" {
			out[envTag] = fmt.Sprint(v.Field(i).Interface())
		}
	}
	return out
}
