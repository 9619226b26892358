package backend

import (
	"errors"
	"fmt"
)

// Special-cased statuses. 401 means the session is gone and the portal
// must send the user back to login instead of rendering an error.
var (
	ErrUnauthorized = errors.New("session expired")
	ErrNotFound     = errors.New("resource not found")
)

// FetchError is a transport-level failure: the request never produced
// an HTTP response.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response, carrying the backend-provided
// message when one was present in the body.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
