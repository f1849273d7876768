package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/HicaroD/basicc/internal/config"
)

type Command int

const (
	COMMAND_BUILD Command = iota
	COMMAND_WATCH
	COMMAND_HELP
	COMMAND_ENV
)

type CliResult struct {
	Command      Command
	BuildType    config.BuildType
	BuildTypeSet bool
	Input        string
	Output       string
	Source       string
	Exe          bool
	Verbose      bool
}

var HELP_COMMAND string = `basicc - compiles BASIC programs to LLVM IR.
The front-end hands basicc the program as a JSON syntax tree; basicc checks it
and emits IR against the boxed-value runtime.

Usage:
  basicc <command> [arguments]

Available Commands:
  build <ast.json> [flags]           Checks the program and writes its IR
  watch <ast.json> [flags]           Rebuilds whenever the input changes
      -o <file>     Output path (defaults to the input with .ll)
      -src <file>   Source text, used to underline errors
      -release      Build in release mode
      -debug        Build in debug mode (default)
      -exe          Also link an executable with clang and the runtime
      -v            Log every phase

  env                                Show environment information

  help                               Show this help message

Examples:
  basicc build hello.json                 Write hello.ll
  basicc build hello.json -src hello.bas  Same, with source lines in errors
  basicc build hello.json -exe -release   Link an optimized executable
  basicc watch hello.json -src hello.bas  Rebuild on every save
  basicc env                              Display environment details
`

func cli(args []string) (CliResult, error) {
	result := CliResult{BuildType: config.DEBUG}

	if len(args) == 0 {
		result.Command = COMMAND_HELP
		return result, nil
	}

	command := args[0]
	switch command {
	case "env":
		result.Command = COMMAND_ENV
	case "help", "-h", "--help":
		result.Command = COMMAND_HELP
	case "build", "watch":
		result.Command = COMMAND_BUILD
		if command == "watch" {
			result.Command = COMMAND_WATCH
		}
		if err := parseBuildArgs(&result, args[1:]); err != nil {
			return result, err
		}
	default:
		return result, fmt.Errorf("unknown command '%s', see 'basicc help'", command)
	}
	return result, nil
}

func parseBuildArgs(result *CliResult, args []string) error {
	releaseBuildSet, debugBuildSet := false, false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-release":
			releaseBuildSet = true
			result.BuildType = config.RELEASE
		case "-debug":
			debugBuildSet = true
			result.BuildType = config.DEBUG
		case "-exe":
			result.Exe = true
		case "-v":
			result.Verbose = true
		case "-o", "-src":
			if i+1 >= len(args) {
				return fmt.Errorf("%s expects a file name", arg)
			}
			i++
			if arg == "-o" {
				result.Output = args[i]
			} else {
				result.Source = args[i]
			}
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag '%s'", arg)
			}
			if result.Input != "" {
				return fmt.Errorf("only one input file is accepted, got '%s' and '%s'", result.Input, arg)
			}
			result.Input = arg
		}
	}

	if releaseBuildSet && debugBuildSet {
		return fmt.Errorf("choose either -release or -debug, not both")
	}
	result.BuildTypeSet = releaseBuildSet || debugBuildSet
	if result.Input == "" {
		return fmt.Errorf("missing input file")
	}
	if result.Output == "" {
		result.Output = strings.TrimSuffix(result.Input, filepath.Ext(result.Input)) + ".ll"
	}
	return nil
}
