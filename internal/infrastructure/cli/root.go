package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/chatty-go/internal/app"
	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/services"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

type analyzeOptions struct {
	filePath      string
	question      string
	model         string
	task          string
	endpoint      string
	compareModels []string
	noStream      bool
	benchmark     bool
	timeout       time.Duration
	maxContext    int
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	var flags analyzeOptions

	root := &cobra.Command{
		Use:   "chatty <file> <question>",
		Short: "CHATTY - ask a local model about one source file",
		Long: "CHATTY sends a source file plus a question to a local Ollama-compatible\n" +
			"inference server and prints the model's answer.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.filePath = args[0]
			flags.question = args[1]
			return runAnalyze(cmd, container, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&flags.model, "model", "m", "", "Model to use (default from config)")
	root.Flags().StringVarP(&flags.task, "task", "t", "", "Task type: review, debug, explain, optimize, general")
	root.Flags().StringVar(&flags.endpoint, "endpoint", "", "Inference server base URL (default from config)")
	root.Flags().StringSliceVar(&flags.compareModels, "compare-model", nil, "Also run against this model and compare (repeatable)")
	root.Flags().BoolVar(&flags.noStream, "no-stream", false, "Wait for the whole answer instead of streaming")
	root.Flags().BoolVarP(&flags.benchmark, "benchmark", "b", false, "Record performance data for this run")
	root.Flags().DurationVar(&flags.timeout, "timeout", 0, "Total response timeout (default from config, 120s)")
	root.Flags().IntVar(&flags.maxContext, "max-context", 0, "Prompt budget in characters (default per model)")

	root.AddCommand(newModelsCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newBenchmarksCommand(container))
	return root, nil
}

func runAnalyze(cmd *cobra.Command, container *app.Container, opts analyzeOptions) error {
	cfg := container.Config
	if opts.endpoint != "" {
		server := cfg.Server
		server.BaseURL = opts.endpoint
		container.UseServer(server)
	}

	data, err := container.SourceReader.Read(opts.filePath)
	if err != nil {
		return failWith(cmd, err)
	}

	req, err := buildRequest(cfg, opts, string(data))
	if err != nil {
		return failWith(cmd, err)
	}

	timeout := opts.timeout
	if timeout <= 0 {
		timeout = cfg.Server.TotalTimeout()
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Analyzing %s (%s) with %s, task %s\n",
		opts.filePath, humanize.Bytes(uint64(len(data))), req.Model, req.Task)

	if len(opts.compareModels) > 0 {
		return runCompare(cmd, container, req, opts.compareModels, timeout)
	}

	out := cmd.OutOrStdout()
	if req.Streaming {
		container.Pipeline.Renderer = NewRenderer(NewStreamWriter(out))
	} else {
		container.Pipeline.Renderer = NewRenderer(NewNopStreamWriter())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var spinner *Spinner
	if !req.Streaming && isTerminal(os.Stderr) {
		spinner = NewSpinner(errOut, "waiting for "+req.Model)
		spinner.Start()
	}
	report := container.Pipeline.Run(ctx, req)
	if spinner != nil {
		spinner.Stop()
	}

	// In non-streaming mode nothing was echoed yet; partial text from an
	// interrupted run still goes to stdout before any diagnostic.
	if !req.Streaming && report.Text != "" {
		fmt.Fprintln(out, report.Text)
	}

	if report.Failed() {
		return failReport(cmd, report)
	}
	fmt.Fprintf(errOut, "Done in %s (%d fragments)\n",
		time.Duration(report.ElapsedMS)*time.Millisecond, report.FragmentsReceived)
	return nil
}

func runCompare(cmd *cobra.Command, container *app.Container, req domain.AnalysisRequest, compares []string, timeout time.Duration) error {
	models := []string{req.Model}
	seen := map[string]bool{req.Model: true}
	for _, name := range compares {
		if seen[name] {
			continue
		}
		if _, ok := container.Config.FindModel(name); !ok {
			return failWith(cmd, domain.NewError(domain.ErrKindInvalidInput,
				fmt.Sprintf("model %q is not on the configured allow-list", name)))
		}
		models = append(models, name)
		seen[name] = true
	}

	container.Pipeline.Renderer = NewRenderer(NewNopStreamWriter())
	comparator := &services.Comparator{Service: container.Pipeline, Timeout: timeout}
	outcomes := comparator.Run(cmd.Context(), req, models)

	out := cmd.OutOrStdout()
	succeeded := 0
	var firstFailure domain.OutcomeReport
	for _, outcome := range outcomes {
		fmt.Fprintf(out, "=== %s ===\n", outcome.Model)
		if outcome.Report.Failed() {
			fmt.Fprintf(out, "failed after %s: %v\n\n",
				time.Duration(outcome.Report.ElapsedMS)*time.Millisecond, outcome.Report.Err)
			if firstFailure.Err == nil {
				firstFailure = outcome.Report
			}
			continue
		}
		succeeded++
		fmt.Fprintf(out, "answered in %s\n%s\n\n",
			time.Duration(outcome.Report.ElapsedMS)*time.Millisecond, outcome.Report.Text)
	}

	if succeeded == 0 && firstFailure.Err != nil {
		return failReport(cmd, firstFailure)
	}
	return nil
}

func buildRequest(cfg domain.Config, opts analyzeOptions, sourceText string) (domain.AnalysisRequest, error) {
	modelName := opts.model
	if modelName == "" {
		modelName = cfg.Preferences.DefaultModel
	}
	modelDef, ok := cfg.FindModel(modelName)
	if !ok {
		return domain.AnalysisRequest{}, domain.NewError(domain.ErrKindInvalidInput,
			fmt.Sprintf("model %q is not on the configured allow-list", modelName))
	}

	maxContext := opts.maxContext
	if maxContext <= 0 {
		maxContext = modelDef.MaxContextChars
	}
	if maxContext <= 0 {
		maxContext = cfg.Preferences.MaxContextChars
	}

	taskName := opts.task
	if taskName == "" {
		taskName = cfg.Preferences.DefaultTask
	}

	return domain.AnalysisRequest{
		SourceText:      sourceText,
		Question:        opts.question,
		Model:           modelDef.Name,
		Task:            domain.ParseTaskType(taskName),
		MaxContextChars: maxContext,
		Streaming:       cfg.Preferences.StreamEnabled() && !opts.noStream,
		Benchmark:       opts.benchmark || cfg.Benchmark.Enabled,
	}, nil
}

// failWith prints a single-line diagnostic for a pre-pipeline error and
// converts it to an exit code.
func failWith(cmd *cobra.Command, err error) error {
	kind := domain.KindOf(err)
	fmt.Fprintf(cmd.ErrOrStderr(), "error (%s): %v\n", kind, err)
	return &ExitError{Code: ExitCodeFor(kind), Kind: kind}
}

// failReport does the same for a failed pipeline run.
func failReport(cmd *cobra.Command, report domain.OutcomeReport) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "error (%s): %v\n", report.ErrorKind, report.Err)
	return &ExitError{Code: ExitCodeFor(report.ErrorKind), Kind: report.ErrorKind}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
