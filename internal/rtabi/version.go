package rtabi

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Version is the ABI version generated code is written against. It is
// embedded in every module as VersionSymbol.
const Version = "1.2.0"

// Compatible is the range of runtime versions able to run code generated
// for Version.
const Compatible = ">= 1.0.0, < 2.0.0"

var ERR_RUNTIME_ABI_MISMATCH = errors.New("runtime ABI mismatch")

// CheckRuntime reports whether a runtime library of the given version can
// run code generated by this compiler.
func CheckRuntime(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "invalid runtime version %q", version)
	}
	c, err := semver.NewConstraint(Compatible)
	if err != nil {
		return errors.Wrap(err, "invalid ABI constraint")
	}
	if !c.Check(v) {
		return errors.Wrapf(ERR_RUNTIME_ABI_MISMATCH, "runtime %s does not satisfy %s", v, Compatible)
	}
	return nil
}
