package cli

import (
	"fmt"

	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/input"
)

// Error codes owned by the CLI itself. The input and bse packages carry
// their own attributed codes; these cover what falls between.
const (
	// ErrCodeGeneric is the catch-all for errors outside the attributed taxonomies.
	ErrCodeGeneric = "ERROR"
	// ErrCodeNeedsCartesian marks inputs whose geometry is a Z-matrix:
	// the AO basis builder places shells on Cartesian centers.
	ErrCodeNeedsCartesian = "NEEDS_CARTESIAN"
)

// errorCode extracts the taxonomy code carried by err, traversing wrap
// chains. Errors outside the input/bse taxonomies map to ErrCodeGeneric.
func errorCode(err error) string {
	if ie, ok := input.AsError(err); ok {
		return string(ie.Code)
	}
	if fe, ok := bse.AsFetchError(err); ok {
		return string(fe.Code)
	}
	if pe, ok := bse.AsParseError(err); ok {
		return string(pe.Code)
	}
	return ErrCodeGeneric
}

// exitCodeFor classifies err: schema violations and bad names in what the
// user typed are input failures (exit 1); I/O, network, and malformed
// upstream documents are command errors (exit 2).
func exitCodeFor(err error) int {
	if ie, ok := input.AsError(err); ok {
		if ie.Code == input.CodeIO {
			return ExitCommandError
		}
		return ExitFailure
	}
	if fe, ok := bse.AsFetchError(err); ok {
		switch fe.Code {
		case bse.FetchNetworkError, bse.FetchIO, bse.FetchInvalidResponse:
			return ExitCommandError
		}
		return ExitFailure
	}
	if _, ok := bse.AsParseError(err); ok {
		return ExitCommandError
	}
	return ExitCommandError
}

// failWith reports err in the configured format and returns an ExitError
// with the matching exit code.
func failWith(formatter *OutputFormatter, err error) error {
	return failWithCode(formatter, errorCode(err), err.Error(), exitCodeFor(err))
}

// failWithCode reports an error under an explicit code and exit code.
func failWithCode(formatter *OutputFormatter, code, message string, exitCode int) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}
