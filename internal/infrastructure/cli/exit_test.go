package cli

import (
	"testing"

	"github.com/doeshing/chatty-go/internal/domain"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		kind domain.ErrorKind
		want int
	}{
		{"", ExitOK},
		{domain.ErrKindInvalidInput, ExitInvalidInput},
		{domain.ErrKindConnection, ExitUnreachable},
		{domain.ErrKindTimeout, ExitUnreachable},
		{domain.ErrKindServer, ExitServer},
		{domain.ErrKindEmptyResponse, ExitServer},
		{domain.ErrKindInterrupted, ExitInterrupted},
		{"something else", 1},
	}
	for _, tc := range cases {
		if got := ExitCodeFor(tc.kind); got != tc.want {
			t.Errorf("ExitCodeFor(%q) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}
