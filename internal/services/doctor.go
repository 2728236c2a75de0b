package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

// CheckStatus is the outcome of one doctor check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// Check is one line of the doctor report.
type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}

// Doctor verifies the local setup: config readable, server reachable,
// default model available, benchmark store usable.
type Doctor struct {
	ConfigProvider ports.ConfigProvider
	Client         ports.InferenceClient
	Benchmarks     ports.BenchmarkStore
}

const doctorProbeTimeout = 5 * time.Second

// Run executes all checks and returns them in a fixed order.
func (d *Doctor) Run(ctx context.Context) []Check {
	var checks []Check

	cfg, err := d.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, Check{Name: "config", Status: CheckFail, Detail: err.Error()})
		return checks
	}
	checks = append(checks, Check{
		Name:   "config",
		Status: CheckOK,
		Detail: fmt.Sprintf("%d models configured, server %s", len(cfg.Models), cfg.Server.BaseURL),
	})

	probeCtx, cancel := context.WithTimeout(ctx, doctorProbeTimeout)
	defer cancel()
	available, err := d.Client.ListModels(probeCtx)
	if err != nil {
		checks = append(checks, Check{Name: "server", Status: CheckFail, Detail: err.Error()})
	} else {
		checks = append(checks, Check{
			Name:   "server",
			Status: CheckOK,
			Detail: fmt.Sprintf("reachable, %d models available", len(available)),
		})
		checks = append(checks, modelCheck(cfg.Preferences.DefaultModel, available))
	}

	if d.Benchmarks != nil {
		checks = append(checks, Check{Name: "benchmarks", Status: CheckOK, Detail: d.Benchmarks.Path()})
	}
	return checks
}

func modelCheck(defaultModel string, available []string) Check {
	if defaultModel == "" {
		defaultModel = domain.DefaultModelName
	}
	for _, name := range available {
		if name == defaultModel || strings.HasPrefix(name, defaultModel+":") {
			return Check{Name: "default model", Status: CheckOK, Detail: defaultModel}
		}
	}
	return Check{
		Name:   "default model",
		Status: CheckWarn,
		Detail: fmt.Sprintf("%s not pulled on the server", defaultModel),
	}
}
