package domain

import "time"

// BenchmarkRecord captures per-run performance metadata. Informational only:
// nothing reads it back on the hot path.
type BenchmarkRecord struct {
	SessionID      string    `json:"session_id"`
	Timestamp      time.Time `json:"timestamp"`
	Model          string    `json:"model"`
	Task           TaskType  `json:"task"`
	ElapsedMS      int64     `json:"elapsed_ms"`
	FileSize       int       `json:"file_size"`
	PromptLength   int       `json:"prompt_length"`
	ResponseLength int       `json:"response_length"`
	Fragments      int       `json:"fragments"`
	Success        bool      `json:"success"`
	ErrorKind      ErrorKind `json:"error_kind,omitempty"`
}
