//go:build !linux

package diagnostics

import "io"

func isTerminal(io.Writer) bool { return false }
