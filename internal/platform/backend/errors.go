package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by the client.
var (
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("backend: transport failure")
	// ErrStatus indicates a non-2xx HTTP response.
	ErrStatus = errors.New("backend: unexpected status")
	// ErrDecode indicates a malformed envelope or a record violating its schema.
	ErrDecode = errors.New("backend: malformed response")
)

// StatusError carries the HTTP status and the message parsed from the error body.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.Code)
}

// Unwrap lets errors.Is match ErrStatus.
func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// DecodeError wraps the underlying JSON or schema failure.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("backend: decode %s: %v", e.Path, e.Err)
}

// Unwrap returns both the kind and the cause.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Message returns the server provided message when present, otherwise fallback.
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
