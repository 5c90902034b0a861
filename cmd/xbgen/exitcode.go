package main

import (
	"errors"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Exit codes per §6.4/§7.
const (
	exitSuccess = 0
	exitUsage   = 1
	exitIO      = 2
	exitParse   = 3
	exitCodegen = 4
)

// classifyError maps a pipeline error onto one of §7's exit codes by
// walking its wrapped chain for the xerr sentinel that names its kind.
func classifyError(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, xerr.ErrUsage):
		return exitUsage
	case errors.Is(err, xerr.ErrParse):
		return exitParse
	case errors.Is(err, xerr.ErrResolution):
		return exitParse
	case errors.Is(err, xerr.ErrCodegen):
		return exitCodegen
	case errors.Is(err, xerr.ErrIO):
		return exitIO
	default:
		// cobra/pflag report unknown flags, missing arguments, and the
		// like through an unwrapped error raised before RunE runs; every
		// such case is a usage problem.
		return exitUsage
	}
}
