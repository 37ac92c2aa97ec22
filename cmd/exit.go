package cmd

import (
	"errors"

	"github.com/kilnbuild/kiln/pkg/manifest"
	"github.com/kilnbuild/kiln/pkg/notation"
)

// Exit codes returned by the kiln CLI. External tools can check these
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (compile failed, download failed, etc.).
	ExitFailure = 1

	// ExitConfigError indicates the Kilnfile could not be parsed or validated.
	ExitConfigError = 2
)

// ExitCode maps an error returned by Execute onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var syntaxErr *notation.SyntaxError
	var keyErr *manifest.KeyError
	if errors.As(err, &syntaxErr) || errors.As(err, &keyErr) {
		return ExitConfigError
	}
	return ExitFailure
}
