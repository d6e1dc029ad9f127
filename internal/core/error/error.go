package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// InputErrorMessage describes malformed inbound requests.
	InputErrorMessage = "invalid request"
)

// Sentinel errors for the turn-processing failure modes. Handlers branch on
// these with errors.Is; none of them leaves a session in an invalid state.
var (
	// ErrClassification marks a malformed or unknown intent label. Mapped to
	// the unknown intent and never propagated to the caller.
	ErrClassification = errors.New("intent classification failed")
	// ErrRetrieval marks a retriever failure. Resolves to a fallback answer.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrGeneration marks a generator failure or timeout after retries.
	ErrGeneration = errors.New("generation failed")
	// ErrValidation marks a slot value failing its shape check. Resolves to a
	// reprompt, never an error reply.
	ErrValidation = errors.New("slot validation failed")
	// ErrToolInvocation marks a lead-capture backend failure.
	ErrToolInvocation = errors.New("lead capture invocation failed")
	// ErrInput marks a malformed inbound request (missing thread_id/message).
	ErrInput = errors.New("invalid input")
)

// Error wraps an underlying error with an HTTP status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// NewInput wraps an input error with a 400 status.
func NewInput(err error, message string) *Error {
	return New(fmt.Errorf("%w: %w", ErrInput, err), http.StatusBadRequest, message)
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
