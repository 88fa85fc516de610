package gong

import (
	"errors"
	"fmt"
)

// ErrEmptyCallIDs is returned when a transcript retrieval is attempted with no
// call IDs. The check runs before any upstream request is made.
var ErrEmptyCallIDs = errors.New("callIds must contain at least one call ID")

// APIError is a non-2xx response from the Gong API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gong api error: status %d: %s", e.StatusCode, e.Message)
}

// ConnectivityError is a network or transport failure reaching the Gong API,
// as opposed to an error response from it.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("gong api unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
