package semantria

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Sentinel errors, one per failure class. Every error returned by this
// package matches exactly one of them with errors.Is.
var (
	ErrConfiguration = errors.New("semantria: configuration error")
	ErrValidation    = errors.New("semantria: validation error")
	ErrNetwork       = errors.New("semantria: network error")
	ErrAPI           = errors.New("semantria: api error")
	ErrSerialization = errors.New("semantria: serialization error")
)

// ConfigurationError reports an invalid Session configuration.
// It is only ever returned by New.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("semantria: invalid configuration: %s %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError reports a missing or malformed argument detected before
// any network attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("semantria: invalid argument: %s %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NetworkError reports a transport failure: no response was received.
type NetworkError struct {
	// Op is the operation name, e.g. "GetDocument".
	Op string
	// Kind is the transport error classification, e.g. "timeout".
	Kind string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("semantria: %s: network error (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError reports a non-2xx response from the service.
type APIError struct {
	Op         string
	StatusCode int
	// Body is the raw response body.
	Body []byte
	// Data is the parsed body when it could be decoded, nil otherwise.
	// The service usually answers errors with plain text.
	Data any
}

func (e *APIError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if len(e.Body) > 0 {
		msg = truncate(string(e.Body), maxErrorBody)
	}
	return fmt.Sprintf("semantria: %s: status %d: %s", e.Op, e.StatusCode, msg)
}

// maxErrorBody bounds how many bytes of a response body APIError.Error
// includes.
const maxErrorBody = 256

// truncate shortens s to at most n bytes without splitting a UTF-8
// sequence, marking the cut with "...".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Is reports whether target is ErrAPI.
func (e *APIError) Is(target error) bool { return target == ErrAPI }

// SerializationError reports a body that could not be encoded or decoded
// in the session format.
type SerializationError struct {
	Op     string
	Format Format
	// Direction is "encode" or "decode".
	Direction string
	Err       error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("semantria: %s: %s %s: %v", e.Op, e.Direction, e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSerialization.
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// StatusCode extracts the HTTP status code from an *APIError anywhere in
// err's chain. It returns 0 if there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
