package commands

import (
	"errors"
	"fmt"
	"io"

	"todoctl/internal/exitcode"
)

// inputError marks an error caused by the command line rather than the backend.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

// userErrors are lookup failures the user can fix by changing arguments.
var userErrors = []error{
	ErrTaskRefRequired,
	ErrListNotFound,
	ErrAmbiguousList,
	ErrNoLists,
	ErrListLetterNotFound,
	ErrTaskOutOfRange,
}

// reportError prints err to errOut and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var ie inputError
	if errors.As(err, &ie) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	code := exitcode.ForError(err)
	switch code {
	case exitcode.UserError:
		fmt.Fprintf(errOut, "error: %v\n", err)
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}

// printOK prints "ok" unless quiet.
func printOK(out io.Writer, quiet bool) {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
}
