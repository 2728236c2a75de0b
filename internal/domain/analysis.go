// Package domain defines core business entities and value objects for CHATTY.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures: the analysis request built from
// the CLI invocation, the prompt document produced from it, and the outcome
// report handed back for display.
package domain

import (
	"context"
	"strings"
)

// TaskType selects the system preamble used when building the prompt.
type TaskType string

const (
	TaskReview   TaskType = "review"
	TaskDebug    TaskType = "debug"
	TaskExplain  TaskType = "explain"
	TaskOptimize TaskType = "optimize"
	TaskGeneral  TaskType = "general"
)

// ParseTaskType maps a user-supplied task name to a known TaskType.
// Unknown values fall back to TaskGeneral, matching the loose handling
// users expect from a --task flag.
func ParseTaskType(raw string) TaskType {
	switch TaskType(strings.ToLower(strings.TrimSpace(raw))) {
	case TaskReview:
		return TaskReview
	case TaskDebug:
		return TaskDebug
	case TaskExplain:
		return TaskExplain
	case TaskOptimize:
		return TaskOptimize
	default:
		return TaskGeneral
	}
}

// AnalysisRequest captures one CLI invocation: the file's bytes as text, the
// user's question and the options resolved from flags and config. It is
// built once, never mutated, and owned by the pipeline for the run.
type AnalysisRequest struct {
	SourceText      string
	Question        string
	Model           string
	Task            TaskType
	MaxContextChars int
	Streaming       bool
	Benchmark       bool
}

// PromptDocument is the serialized prompt derived from an AnalysisRequest.
// Its serialized length never exceeds the context budget it was built with;
// when the source had to be cut, Truncated is set and the file block carries
// a visible marker.
type PromptDocument struct {
	SystemPreamble string
	FileBlock      string
	QuestionBlock  string
	Truncated      bool
}

// Serialize joins the prompt sections into the single prompt string sent to
// the inference server.
func (d PromptDocument) Serialize() string {
	return d.SystemPreamble + "\n\n" + d.FileBlock + "\n\n" + d.QuestionBlock
}

// OutcomeReport is the terminal artifact of one pipeline run. Text holds
// whatever was accumulated, including partial output from an interrupted
// stream. ErrorKind is empty on success; Err keeps the original error so
// the CLI can print its message verbatim.
type OutcomeReport struct {
	Text              string
	FragmentsReceived int
	ElapsedMS         int64
	ErrorKind         ErrorKind
	Err               error
}

// Failed reports whether the run ended in the Failed state.
func (r OutcomeReport) Failed() bool {
	return r.ErrorKind != ""
}

// RunState tracks pipeline progress through one invocation. Idle is the only
// initial state; Done and Failed are terminal and no state is revisited.
type RunState string

const (
	StateIdle        RunState = "idle"
	StateBuilding    RunState = "building"
	StateDispatching RunState = "dispatching"
	StateRendering   RunState = "rendering"
	StateDone        RunState = "done"
	StateFailed      RunState = "failed"
)

// AnalysisService exposes the use-case boundary for handling one analysis run.
type AnalysisService interface {
	Run(ctx context.Context, req AnalysisRequest) OutcomeReport
}
