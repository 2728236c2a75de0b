// Package services orchestrates one analysis run end-to-end: prompt
// construction, dispatch to the inference server and rendering of the
// response, with every failure folded into the outcome report.
package services

import (
	"context"
	"time"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

// Pipeline runs ContextBuilder -> InferenceClient -> ResponseRenderer for a
// single invocation. Run never returns an error: failures are captured in
// the report so the CLI layer can map them to exit codes.
type Pipeline struct {
	Builder    ports.ContextBuilder
	Client     ports.InferenceClient
	Renderer   ports.ResponseRenderer
	Benchmarks ports.BenchmarkStore
	Logger     ports.Logger
	SessionID  string
}

// Run processes a single analysis request. The run walks
// idle -> building -> dispatching -> rendering -> done|failed; a failure at
// any step short-circuits the rest and preserves the original error.
func (p *Pipeline) Run(ctx context.Context, req domain.AnalysisRequest) domain.OutcomeReport {
	start := time.Now()
	state := domain.StateIdle

	advance := func(next domain.RunState) {
		p.Logger.Debug("state transition", map[string]interface{}{
			"from": string(state),
			"to":   string(next),
		})
		state = next
	}

	fail := func(err error) domain.OutcomeReport {
		advance(domain.StateFailed)
		return domain.OutcomeReport{
			ElapsedMS: time.Since(start).Milliseconds(),
			ErrorKind: domain.KindOf(err),
			Err:       err,
		}
	}

	if p.Builder == nil || p.Client == nil || p.Renderer == nil || p.Logger == nil {
		return domain.OutcomeReport{
			ErrorKind: domain.ErrKindInvalidInput,
			Err:       domain.NewError(domain.ErrKindInvalidInput, "services.Pipeline dependencies not satisfied"),
		}
	}

	advance(domain.StateBuilding)
	doc, err := p.Builder.Build(req.SourceText, req.Question, req.Task, req.MaxContextChars)
	if err != nil {
		report := fail(err)
		p.record(req, doc, report)
		return report
	}

	advance(domain.StateDispatching)
	p.Logger.Info("calling inference server", map[string]interface{}{
		"model":     req.Model,
		"task":      string(req.Task),
		"streaming": req.Streaming,
		"truncated": doc.Truncated,
	})
	stream, err := p.Client.Send(ctx, doc, req.Model, req.Streaming)
	if err != nil {
		report := fail(err)
		p.record(req, doc, report)
		return report
	}

	advance(domain.StateRendering)
	report := p.Renderer.Render(ctx, stream)
	report.ElapsedMS = time.Since(start).Milliseconds()
	if report.Failed() {
		advance(domain.StateFailed)
	} else {
		advance(domain.StateDone)
	}
	p.record(req, doc, report)
	return report
}

func (p *Pipeline) record(req domain.AnalysisRequest, doc domain.PromptDocument, report domain.OutcomeReport) {
	if !req.Benchmark || p.Benchmarks == nil {
		return
	}
	err := p.Benchmarks.Save(domain.BenchmarkRecord{
		SessionID:      p.SessionID,
		Timestamp:      time.Now(),
		Model:          req.Model,
		Task:           req.Task,
		ElapsedMS:      report.ElapsedMS,
		FileSize:       len(req.SourceText),
		PromptLength:   len(doc.Serialize()),
		ResponseLength: len(report.Text),
		Fragments:      report.FragmentsReceived,
		Success:        !report.Failed(),
		ErrorKind:      report.ErrorKind,
	})
	if err != nil {
		p.Logger.Warn("benchmark save failed", map[string]interface{}{"error": err.Error()})
	}
}

// Compile-time interface compliance check
var _ domain.AnalysisService = (*Pipeline)(nil)
