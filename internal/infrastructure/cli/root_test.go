package cli

import (
	"testing"

	"github.com/doeshing/chatty-go/internal/domain"
)

func testConfig() domain.Config {
	stream := true
	return domain.Config{
		Preferences: domain.Preferences{
			DefaultModel:    "deepseek-coder",
			DefaultTask:     "general",
			Stream:          &stream,
			MaxContextChars: 12000,
		},
		Models: []domain.ModelDefinition{
			{Name: "deepseek-coder", MaxContextChars: 12000},
			{Name: "codellama", MaxContextChars: 16000},
		},
	}
}

func TestBuildRequestUsesConfigDefaults(t *testing.T) {
	req, err := buildRequest(testConfig(), analyzeOptions{question: "why?"}, "code")
	if err != nil {
		t.Fatalf("buildRequest failed: %v", err)
	}
	if req.Model != "deepseek-coder" {
		t.Errorf("got model %q", req.Model)
	}
	if req.Task != domain.TaskGeneral {
		t.Errorf("got task %q", req.Task)
	}
	if req.MaxContextChars != 12000 {
		t.Errorf("got budget %d", req.MaxContextChars)
	}
	if !req.Streaming {
		t.Error("streaming should be on by default")
	}
}

func TestBuildRequestFlagOverrides(t *testing.T) {
	opts := analyzeOptions{
		question:   "why?",
		model:      "codellama",
		task:       "review",
		maxContext: 500,
		noStream:   true,
		benchmark:  true,
	}
	req, err := buildRequest(testConfig(), opts, "code")
	if err != nil {
		t.Fatalf("buildRequest failed: %v", err)
	}
	if req.Model != "codellama" || req.Task != domain.TaskReview {
		t.Errorf("flag overrides lost: %+v", req)
	}
	if req.MaxContextChars != 500 {
		t.Errorf("got budget %d, want the flag value", req.MaxContextChars)
	}
	if req.Streaming {
		t.Error("--no-stream was not honored")
	}
	if !req.Benchmark {
		t.Error("--benchmark was not honored")
	}
}

func TestBuildRequestPerModelBudget(t *testing.T) {
	req, err := buildRequest(testConfig(), analyzeOptions{question: "q", model: "codellama"}, "code")
	if err != nil {
		t.Fatalf("buildRequest failed: %v", err)
	}
	if req.MaxContextChars != 16000 {
		t.Errorf("got budget %d, want the model's own budget", req.MaxContextChars)
	}
}

func TestBuildRequestRejectsUnknownModel(t *testing.T) {
	_, err := buildRequest(testConfig(), analyzeOptions{question: "q", model: "gpt-4"}, "code")
	if err == nil {
		t.Fatal("expected an error for a model off the allow-list")
	}
	if kind := domain.KindOf(err); kind != domain.ErrKindInvalidInput {
		t.Errorf("got kind %q, want %q", kind, domain.ErrKindInvalidInput)
	}
}

func TestBuildRequestConfigCanDisableStreaming(t *testing.T) {
	cfg := testConfig()
	off := false
	cfg.Preferences.Stream = &off

	req, err := buildRequest(cfg, analyzeOptions{question: "q"}, "code")
	if err != nil {
		t.Fatalf("buildRequest failed: %v", err)
	}
	if req.Streaming {
		t.Error("config stream: false was not honored")
	}
}
