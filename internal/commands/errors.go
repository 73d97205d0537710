package commands

import (
	"errors"
	"fmt"
	"io"

	"taskpad/internal/core"
	"taskpad/internal/exitcode"
)

// fail maps a service error to an inline message and exit code.
// Session expiry routes the user back to login; blank titles are user
// errors; everything else is a backend failure.
func fail(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, core.ErrSessionExpired):
		fmt.Fprintln(errOut, "error: session expired (run: taskpad login)")
		return exitcode.AuthError
	case errors.Is(err, core.ErrEmptyTitle):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
