// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The pipeline depends only on these
// abstractions, so tests can substitute a fake transport, a fake prompt
// builder or an in-memory benchmark store without touching the network or
// the filesystem.
package ports

import (
	"context"

	"github.com/doeshing/chatty-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.chatty/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SourceReader produces the bytes of the file under analysis. The pipeline
// never touches the filesystem directly.
type SourceReader interface {
	Read(path string) ([]byte, error)
}

// ContextBuilder assembles the prompt document from source text and question
// under a character budget. Pure: no side effects, deterministic output.
type ContextBuilder interface {
	Build(sourceText, question string, task domain.TaskType, maxContextChars int) (domain.PromptDocument, error)
}

// FragmentStream is the single abstraction over both response modes: a lazy
// NDJSON fragment sequence when streaming, a one-shot resolved value when
// not. Next returns io.EOF after the final fragment. The sequence is finite
// and not restartable; Close releases the underlying connection and may be
// called before the stream is drained.
type FragmentStream interface {
	Next() (string, error)
	Close() error
}

// InferenceClient owns the HTTP conversation with the local model server.
// Send returns once the response has started (streaming) or completed
// (non-streaming); the caller owns draining and closing the stream.
type InferenceClient interface {
	Send(ctx context.Context, doc domain.PromptDocument, model string, streaming bool) (FragmentStream, error)
	ListModels(ctx context.Context) ([]string, error)
}

// ResponseRenderer drains a fragment stream into an outcome report,
// preserving arrival order and partial output on cancellation.
type ResponseRenderer interface {
	Render(ctx context.Context, stream FragmentStream) domain.OutcomeReport
}

// StreamWriter receives fragments as they are rendered, for live terminal
// echo. Implementations must tolerate empty chunks.
type StreamWriter interface {
	WriteChunk(text string)
	Done()
}

// BenchmarkStore persists per-run benchmark records.
type BenchmarkStore interface {
	Save(record domain.BenchmarkRecord) error
	Records(limit int) ([]domain.BenchmarkRecord, error)
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
