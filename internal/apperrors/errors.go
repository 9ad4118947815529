package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or rejected credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the resource is busy with another operation.
var ErrConflict = errors.New("conflict")

// AppError carries an HTTP-ish status code alongside a message and a cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// FieldErrors maps a form field name to its validation message.
// It always matches ErrValidation through errors.Is.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrValidation }

// NetworkError is returned when the MF backend could not be reached.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError is returned when a call was aborted by its deadline.
type TimeoutError struct {
	Endpoint string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out", e.Endpoint)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ServerError is a non-2xx answer from the MF backend. Body is kept verbatim.
type ServerError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *ServerError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
}

// ParseError is a malformed body on an otherwise successful response.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage returns the text a cashier should see for err.
// Server bodies are surfaced verbatim, everything else gets a stable message.
func UserMessage(err error) string {
	var fe FieldErrors
	var se *ServerError
	var te *TimeoutError
	var ne *NetworkError
	var pe *ParseError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return fe.Error()
	case errors.As(err, &se):
		body := strings.TrimSpace(se.Body)
		if body == "" {
			return "An error occurred during processing"
		}
		return body
	case errors.As(err, &te):
		return "Request timed out. Please try again."
	case errors.As(err, &ne):
		return "Network error. Please check your connection."
	case errors.As(err, &pe):
		return "An unexpected error occurred during processing"
	default:
		return err.Error()
	}
}

// CredentialsError is a rejected login. Message is the backend's explanation
// or a generic one when the backend gave none.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string { return e.Message }

func (e *CredentialsError) Is(target error) bool { return target == ErrUnauthorized }

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// WithKind returns an error whose message is shown to the cashier as is and
// which matches kind (one of the sentinels above) through errors.Is.
func WithKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
