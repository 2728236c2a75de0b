package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

// Renderer drains a fragment stream into an outcome report. Fragments are
// concatenated in arrival order and echoed through the stream writer as they
// come in, so interrupted runs leave their partial text on the terminal.
type Renderer struct {
	writer ports.StreamWriter
}

// NewRenderer builds a Renderer around the given stream writer.
func NewRenderer(writer ports.StreamWriter) *Renderer {
	return &Renderer{writer: writer}
}

// Render consumes the stream until it ends, fails or the context is
// cancelled. Whatever was accumulated is always kept in the report; a
// sequence that terminates with zero fragments is an empty-response failure,
// distinct from a successful blank answer.
func (r *Renderer) Render(ctx context.Context, stream ports.FragmentStream) domain.OutcomeReport {
	start := time.Now()
	var text strings.Builder
	fragments := 0

	partial := func(err error) domain.OutcomeReport {
		return domain.OutcomeReport{
			Text:              text.String(),
			FragmentsReceived: fragments,
			ElapsedMS:         time.Since(start).Milliseconds(),
			ErrorKind:         domain.KindOf(err),
			Err:               err,
		}
	}

	defer stream.Close()
	for {
		if err := ctx.Err(); err != nil {
			return partial(classifyCancel(err))
		}

		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return partial(err)
		}

		fragments++
		text.WriteString(fragment)
		r.writer.WriteChunk(fragment)
	}

	if fragments == 0 {
		return partial(domain.NewError(domain.ErrKindEmptyResponse, "server finished without sending any response text"))
	}

	r.writer.Done()
	return domain.OutcomeReport{
		Text:              text.String(),
		FragmentsReceived: fragments,
		ElapsedMS:         time.Since(start).Milliseconds(),
	}
}

// classifyCancel distinguishes the total-response deadline from an explicit
// interrupt; both keep partial output.
func classifyCancel(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrKindTimeout, "response deadline exceeded while streaming", err)
	}
	return domain.WrapError(domain.ErrKindInterrupted, "response interrupted", err)
}

var _ ports.ResponseRenderer = (*Renderer)(nil)
