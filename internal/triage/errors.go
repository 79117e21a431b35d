package triage

import (
	"errors"
	"fmt"
)

// User-facing messages for errors that carry no text of their own.
const (
	TimeoutMessage    = "Request timed out. Please try again with a shorter symptoms description."
	NoResponseMessage = "No response received from the AI model"
)

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NetworkError reports a request aborted through its cancellation token.
// The only abort source of a session is its deadline, so callers treat it
// as a timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request aborted: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TransportError reports any other failure to reach the server or to read
// its response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a non-success HTTP status.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Detail)
}

// DefaultDetail is used when an error response has no readable detail.
func DefaultDetail(status int) string {
	return fmt.Sprintf("HTTP error! Status: %d", status)
}

// EmptyResponseError reports a stream that ended without any non-blank text.
type EmptyResponseError struct{}

func (*EmptyResponseError) Error() string { return "no response received" }

// UserMessage maps an error to the text shown in the result region.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		networkErr    *NetworkError
		serverErr     *ServerError
		emptyErr      *EmptyResponseError
		transportErr  *TransportError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &networkErr):
		return TimeoutMessage
	case errors.As(err, &serverErr):
		if serverErr.Detail == "" {
			return DefaultDetail(serverErr.Status)
		}
		return serverErr.Detail
	case errors.As(err, &emptyErr):
		return NoResponseMessage
	case errors.As(err, &transportErr):
		return "Error: " + transportErr.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}
