package apiclient

import (
	"errors"
	"fmt"
)

// Error is returned by every Client method that did not end in a 2xx response.
// Status is zero when the request never produced a response.
type Error struct {
	Op            Operation
	Status        int
	ServerMessage string
	Err           error
}

func (e *Error) Error() string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	return e.Op.fallback
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is a log-friendly description; Error() is what a user sees.
func (e *Error) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", e.Op.Name, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Op.Name, e.Status)
}

// MessageOr returns the message the server sent with err, or fallback when
// there is none. Screens use it to collapse a failure into one display string.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.ServerMessage != "" {
		return apiErr.ServerMessage
	}
	return fallback
}
