package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the pipeline can produce. The CLI layer
// maps kinds to exit codes; everything else carries the kind untouched.
type ErrorKind string

const (
	// ErrKindInvalidInput marks bad arguments caught before any network call.
	ErrKindInvalidInput ErrorKind = "invalid_input"
	// ErrKindConnection marks a transport-level failure to reach the server,
	// surfaced only after the retry budget is exhausted.
	ErrKindConnection ErrorKind = "connection"
	// ErrKindTimeout marks the total-response deadline being exceeded.
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindServer marks a reachable server rejecting or failing the
	// request; the server's message is preserved verbatim.
	ErrKindServer ErrorKind = "server"
	// ErrKindEmptyResponse marks a response that terminated with zero
	// fragments ever received.
	ErrKindEmptyResponse ErrorKind = "empty_response"
	// ErrKindInterrupted marks a run cancelled mid-flight; partial text is
	// preserved in the outcome report.
	ErrKindInterrupted ErrorKind = "interrupted"
)

// AnalysisError attaches an ErrorKind to an underlying cause without
// rewriting its message.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewError builds an AnalysisError with a plain message.
func NewError(kind ErrorKind, message string) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message}
}

// WrapError builds an AnalysisError around a cause.
func WrapError(kind ErrorKind, message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the ErrorKind from err. Context errors that were never
// wrapped classify as timeout or interruption; anything else defaults to a
// connection-level failure, the broadest transport category.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrKindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrKindInterrupted
	}
	return ErrKindConnection
}
