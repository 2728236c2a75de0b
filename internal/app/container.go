package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/infrastructure/ai"
	"github.com/doeshing/chatty-go/internal/infrastructure/benchmark"
	"github.com/doeshing/chatty-go/internal/infrastructure/config"
	"github.com/doeshing/chatty-go/internal/infrastructure/source"
	"github.com/doeshing/chatty-go/internal/pkg/logger"
	"github.com/doeshing/chatty-go/internal/ports"
	"github.com/doeshing/chatty-go/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Pipeline     *services.Pipeline
	Doctor       *services.Doctor
	Config       domain.Config
	ConfigLoader *config.FileLoader
	SourceReader ports.SourceReader
	Benchmarks   ports.BenchmarkStore
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph. The renderer is attached
// later by the CLI layer, which decides where fragments are echoed.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	client := ai.NewClient(cfg.Server, log)
	benchmarks := benchmark.NewSQLiteStore(cfg.Benchmark.Dir)

	pipeline := &services.Pipeline{
		Builder:    ai.NewPromptBuilder(),
		Client:     client,
		Benchmarks: benchmarks,
		Logger:     log,
		SessionID:  uuid.NewString(),
	}

	doctor := &services.Doctor{
		ConfigProvider: cfgLoader,
		Client:         client,
		Benchmarks:     benchmarks,
	}

	return &Container{
		Pipeline:     pipeline,
		Doctor:       doctor,
		Config:       cfg,
		ConfigLoader: cfgLoader,
		SourceReader: source.NewReader(),
		Benchmarks:   benchmarks,
		Logger:       log,
	}, nil
}

// UseServer swaps the inference client for a different endpoint, keeping the
// rest of the graph intact. Used when --endpoint overrides the config.
func (c *Container) UseServer(server domain.ServerSettings) {
	client := ai.NewClient(server, c.Logger)
	c.Pipeline.Client = client
	c.Doctor.Client = client
}
