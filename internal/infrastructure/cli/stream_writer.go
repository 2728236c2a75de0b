package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/chatty-go/internal/ports"
)

// streamWriter echoes fragments to an io.Writer as they arrive. Fragments
// are partial tokens, so chunks are written without separators; Done
// terminates the answer with a newline.
type streamWriter struct {
	out io.Writer
}

// NewStreamWriter builds a streamWriter for stdout/stderr.
func NewStreamWriter(out io.Writer) ports.StreamWriter {
	return &streamWriter{out: out}
}

func (s *streamWriter) WriteChunk(text string) {
	if text == "" {
		return
	}
	fmt.Fprint(s.out, text)
}

func (s *streamWriter) Done() {
	fmt.Fprintln(s.out)
}

// nopStreamWriter discards fragments; used when the caller prints the
// assembled text itself (non-streaming and comparison runs).
type nopStreamWriter struct{}

// NewNopStreamWriter builds a writer that drops all chunks.
func NewNopStreamWriter() ports.StreamWriter {
	return nopStreamWriter{}
}

func (nopStreamWriter) WriteChunk(string) {}
func (nopStreamWriter) Done()             {}
