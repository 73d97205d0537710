package api

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is returned when the task API answers with a non-success status.
// Message carries the server-provided message when one was decodable, else a
// generic per-operation message.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// AuthFailure reports whether the failure means the token was missing,
// expired or rejected, as opposed to a transient server or network problem.
func (e *RemoteError) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsAuthFailure reports whether err is a RemoteError caused by a rejected token.
func IsAuthFailure(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.AuthFailure()
}
