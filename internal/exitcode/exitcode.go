// Package exitcode defines the process exit codes of todoctl and how
// backend error codes map onto them.
package exitcode

import apierr "todoctl/internal/errors"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, an unknown list or task, or a
	// request the client refused to send.
	UserError = 1

	// AuthError indicates a missing or rejected token or unusable settings.
	AuthError = 2

	// BackendError indicates a transport, timeout or backend failure.
	BackendError = 3
)

// ForError returns the exit code for an error returned by the backend
// client. Errors without a code count as backend errors.
func ForError(err error) int {
	switch apierr.CodeOf(err) {
	case apierr.ErrCodeInvalidRequest:
		return UserError
	case apierr.ErrCodeUnauthorized:
		return AuthError
	}
	return BackendError
}
