package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies failures so the HTTP layer can map them to a status
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUpstream     ErrorType = "upstream"
	ErrorTypeNoResponse   ErrorType = "no_response"
	ErrorTypeRequestSetup ErrorType = "request_setup"
	ErrorTypeParsing      ErrorType = "parsing"
	ErrorTypeInternal     ErrorType = "internal"
)

// GenericMessage is returned to clients when the real cause must stay private
const GenericMessage = "Internal server error"

// Error represents a classified failure
type Error struct {
	Type    ErrorType
	Message string
	// Code is the upstream HTTP status for ErrorTypeUpstream, 0 otherwise
	Code       int
	StatusText string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates an error for missing or malformed client input
func Validation(message string) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message}
}

// UpstreamStatus creates an error for a non-2xx provider response
func UpstreamStatus(code int, statusText string) *Error {
	return &Error{
		Type:       ErrorTypeUpstream,
		Message:    fmt.Sprintf("API Error: %d - %s", code, statusText),
		Code:       code,
		StatusText: statusText,
	}
}

// NoResponse creates an error for a request that never got an answer
func NoResponse(cause error) *Error {
	return &Error{
		Type:    ErrorTypeNoResponse,
		Message: "No response received from API",
		Err:     cause,
	}
}

// RequestSetup creates an error for a request that could not be built
func RequestSetup(cause error) *Error {
	return &Error{
		Type:    ErrorTypeRequestSetup,
		Message: fmt.Sprintf("Request error: %v", cause),
		Err:     cause,
	}
}

// Parsing creates an error for a provider body that could not be decoded
func Parsing(cause error) *Error {
	return &Error{
		Type:    ErrorTypeParsing,
		Message: fmt.Sprintf("failed to parse API response: %v", cause),
		Err:     cause,
	}
}

// Internal wraps an unexpected failure
func Internal(cause error) *Error {
	return &Error{
		Type:    ErrorTypeInternal,
		Message: GenericMessage,
		Err:     cause,
	}
}

// TypeOf returns the classification of err, ErrorTypeInternal when unclassified
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeInternal
}

// IsUpstream reports whether err came from talking to the provider
func IsUpstream(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeUpstream, ErrorTypeNoResponse, ErrorTypeRequestSetup, ErrorTypeParsing:
		return true
	default:
		return false
	}
}

// IsValidation reports whether err is a client input error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// HTTPStatus maps err to the status code served to the client
func HTTPStatus(err error) int {
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show to the client.
// Upstream messages are hidden in production.
func PublicMessage(err error, production bool) string {
	var e *Error
	if !errors.As(err, &e) {
		return GenericMessage
	}
	switch {
	case e.Type == ErrorTypeValidation:
		return e.Message
	case e.Type == ErrorTypeInternal:
		return GenericMessage
	case production:
		return GenericMessage
	default:
		return e.Message
	}
}
