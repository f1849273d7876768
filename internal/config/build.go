package config

import "fmt"

type BuildType int

const (
	RELEASE BuildType = iota
	DEBUG
)

func (bt BuildType) String() string {
	switch bt {
	case RELEASE:
		return "release"
	case DEBUG:
		return "debug"
	}
	return "unknown"
}

// OptLevel is the optimization flag handed to clang for this build type.
func (bt BuildType) OptLevel() string {
	if bt == RELEASE {
		return "-O3"
	}
	return "-O0"
}

func ParseBuildType(s string) (BuildType, error) {
	switch s {
	case "release":
		return RELEASE, nil
	case "debug":
		return DEBUG, nil
	}
	return DEBUG, fmt.Errorf("unknown build type: %q", s)
}
