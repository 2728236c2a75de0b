package services

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (p *stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return p.cfg, p.err
}

type stubInference struct {
	models []string
	err    error
}

func (c *stubInference) Send(context.Context, domain.PromptDocument, string, bool) (ports.FragmentStream, error) {
	return nil, errors.New("not used")
}

func (c *stubInference) ListModels(context.Context) ([]string, error) {
	return c.models, c.err
}

type stubStore struct{}

func (stubStore) Save(domain.BenchmarkRecord) error             { return nil }
func (stubStore) Records(int) ([]domain.BenchmarkRecord, error) { return nil, nil }
func (stubStore) ExportJSON(string) error                       { return nil }
func (stubStore) Path() string                                  { return "/tmp/bench.db" }

func healthyConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "deepseek-coder"},
		Server:      domain.ServerSettings{BaseURL: "http://localhost:11434"},
		Models:      []domain.ModelDefinition{{Name: "deepseek-coder"}},
	}
}

func statusOf(t *testing.T, checks []Check, name string) CheckStatus {
	t.Helper()
	for _, check := range checks {
		if check.Name == name {
			return check.Status
		}
	}
	t.Fatalf("no check named %q in %+v", name, checks)
	return ""
}

func TestDoctorAllHealthy(t *testing.T) {
	doctor := &Doctor{
		ConfigProvider: &stubConfigProvider{cfg: healthyConfig()},
		Client:         &stubInference{models: []string{"deepseek-coder:6.7b", "codellama"}},
		Benchmarks:     stubStore{},
	}

	checks := doctor.Run(context.Background())
	if len(checks) != 4 {
		t.Fatalf("got %d checks, want 4: %+v", len(checks), checks)
	}
	for _, name := range []string{"config", "server", "default model", "benchmarks"} {
		if got := statusOf(t, checks, name); got != CheckOK {
			t.Errorf("check %q is %q, want ok", name, got)
		}
	}
}

func TestDoctorServerDown(t *testing.T) {
	doctor := &Doctor{
		ConfigProvider: &stubConfigProvider{cfg: healthyConfig()},
		Client:         &stubInference{err: errors.New("connection refused")},
		Benchmarks:     stubStore{},
	}

	checks := doctor.Run(context.Background())
	if got := statusOf(t, checks, "server"); got != CheckFail {
		t.Errorf("server check is %q, want fail", got)
	}
	// No model check when the server cannot be asked.
	for _, check := range checks {
		if check.Name == "default model" {
			t.Error("default model check should be skipped when the server is down")
		}
	}
}

func TestDoctorDefaultModelMissing(t *testing.T) {
	doctor := &Doctor{
		ConfigProvider: &stubConfigProvider{cfg: healthyConfig()},
		Client:         &stubInference{models: []string{"llama2:7b-code"}},
	}

	checks := doctor.Run(context.Background())
	if got := statusOf(t, checks, "default model"); got != CheckWarn {
		t.Errorf("default model check is %q, want warn", got)
	}
}

func TestDoctorConfigUnreadable(t *testing.T) {
	doctor := &Doctor{
		ConfigProvider: &stubConfigProvider{err: errors.New("yaml: line 3: mapping values")},
		Client:         &stubInference{},
	}

	checks := doctor.Run(context.Background())
	if len(checks) != 1 {
		t.Fatalf("got %d checks, want only the config failure: %+v", len(checks), checks)
	}
	if checks[0].Status != CheckFail {
		t.Errorf("config check is %q, want fail", checks[0].Status)
	}
}
