package client

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a lookup by ID matched nothing upstream.
var ErrNotFound = errors.New("not found")

// APIError wraps a structured upstream application error (non-2xx with a
// body). The upstream detail is carried verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// ConnError reports a transport-level failure (DNS, connection refused,
// timeout) after retries are exhausted. It is distinct from both not-found
// and upstream application errors so resolution callers can tell them apart.
type ConnError struct {
	URL string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.URL, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}
