package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/chatty-go/internal/app"
	"github.com/doeshing/chatty-go/internal/services"
)

// fallbackModels is printed when the server cannot be asked for its tags.
var fallbackModels = []string{"deepseek-coder", "codellama", "llama2:7b-code"}

const listModelsTimeout = 5 * time.Second

func newModelsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available on the inference server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), listModelsTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			names, err := container.Pipeline.Client.ListModels(ctx)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: could not fetch model list:", err)
				names = fallbackModels
			}
			fmt.Fprintln(out, "Available models:")
			for _, name := range names {
				fmt.Fprintf(out, "  - %s\n", name)
			}
			return nil
		},
	}
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, server reachability and model availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := false
			for _, check := range container.Doctor.Run(cmd.Context()) {
				fmt.Fprintf(out, "[%-4s] %s: %s\n", check.Status, check.Name, check.Detail)
				if check.Status == services.CheckFail {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}

func newBenchmarksCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		export string
	)

	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "Show or export recorded benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if export != "" {
				if err := container.Benchmarks.ExportJSON(export); err != nil {
					return err
				}
				fmt.Fprintf(out, "Benchmark data exported to %s\n", export)
				return nil
			}

			records, err := container.Benchmarks.Records(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No benchmark runs recorded yet. Run with --benchmark to collect data.")
				return nil
			}
			for _, rec := range records {
				status := "ok"
				if !rec.Success {
					status = string(rec.ErrorKind)
				}
				fmt.Fprintf(out, "%s  %-20s %-8s %8s  %s chars  %s\n",
					rec.Timestamp.Format("2006-01-02 15:04:05"),
					rec.Model,
					rec.Task,
					time.Duration(rec.ElapsedMS)*time.Millisecond,
					humanize.Comma(int64(rec.ResponseLength)),
					status,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().StringVar(&export, "export", "", "Export all runs to a jsonl file")
	return cmd
}
