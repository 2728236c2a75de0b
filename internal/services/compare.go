package services

import (
	"context"
	"time"

	"github.com/doeshing/chatty-go/internal/domain"
)

// ModelOutcome pairs a model name with the report of its run.
type ModelOutcome struct {
	Model  string
	Report domain.OutcomeReport
}

// Comparator runs the same request against several models, one at a time,
// so response times stay comparable on a single local GPU. Timeout, when
// set, applies per model rather than to the whole comparison.
type Comparator struct {
	Service domain.AnalysisService
	Timeout time.Duration
}

// Run executes the request once per model. Comparison runs are always
// non-streaming: the caller prints whole answers side by side. A failing
// model does not stop the remaining ones, but cancellation does.
func (c *Comparator) Run(ctx context.Context, req domain.AnalysisRequest, models []string) []ModelOutcome {
	outcomes := make([]ModelOutcome, 0, len(models))
	for _, model := range models {
		if ctx.Err() != nil {
			break
		}
		perModel := req
		perModel.Model = model
		perModel.Streaming = false

		runCtx := ctx
		cancel := context.CancelFunc(func() {})
		if c.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		}
		outcomes = append(outcomes, ModelOutcome{
			Model:  model,
			Report: c.Service.Run(runCtx, perModel),
		})
		cancel()
	}
	return outcomes
}
