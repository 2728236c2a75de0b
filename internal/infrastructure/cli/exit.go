package cli

import (
	"fmt"

	"github.com/doeshing/chatty-go/internal/domain"
)

// Exit codes consumed by scripts wrapping the CLI.
const (
	ExitOK           = 0
	ExitInvalidInput = 2
	ExitUnreachable  = 3
	ExitServer       = 4
	ExitInterrupted  = 130
)

// ExitCodeFor maps an error kind to a process exit code.
func ExitCodeFor(kind domain.ErrorKind) int {
	switch kind {
	case "":
		return ExitOK
	case domain.ErrKindInvalidInput:
		return ExitInvalidInput
	case domain.ErrKindConnection, domain.ErrKindTimeout:
		return ExitUnreachable
	case domain.ErrKindServer, domain.ErrKindEmptyResponse:
		return ExitServer
	case domain.ErrKindInterrupted:
		return ExitInterrupted
	default:
		return 1
	}
}

// ExitError carries a specific exit code up to main. The diagnostic has
// already been printed by the time it is returned.
type ExitError struct {
	Code int
	Kind domain.ErrorKind
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d (%s)", e.Code, e.Kind)
}
