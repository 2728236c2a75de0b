package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"analysis error", NewError(ErrKindServer, "boom"), ErrKindServer},
		{"wrapped analysis error", fmt.Errorf("outer: %w", NewError(ErrKindInvalidInput, "bad")), ErrKindInvalidInput},
		{"deadline", context.DeadlineExceeded, ErrKindTimeout},
		{"cancelled", context.Canceled, ErrKindInterrupted},
		{"plain transport error", errors.New("connection refused"), ErrKindConnection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestAnalysisErrorMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := WrapError(ErrKindConnection, "cannot reach inference server", cause)

	if got := err.Error(); got != "cannot reach inference server: dial tcp: connection refused" {
		t.Errorf("got message %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through the wrap chain")
	}
}

func TestAnalysisErrorWithoutCause(t *testing.T) {
	err := NewError(ErrKindEmptyResponse, "no response text")
	if got := err.Error(); got != "no response text" {
		t.Errorf("got message %q", got)
	}
}
