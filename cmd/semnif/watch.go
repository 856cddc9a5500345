package main

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/c360studio/semnif/source"
	"github.com/spf13/cobra"
)

func watchCmd(global *globalOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "watch [files or globs...]",
		Short: "Re-export whenever annotation record files change",
		Long: `Watch converts the matching record files once, then watches them and
converts again after every debounced batch of changes until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			job, err := newConvertJob(cfg, opts, cmd.Flags().Changed("format"), args, logger, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return watchLoop(ctx, job, source.WatcherConfig{
				Patterns:      job.patterns,
				DebounceDelay: cfg.Input.Debounce,
				Logger:        logger,
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (rdfxml, ntriples, turtle)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// watchLoop runs job once and again for every change set until ctx is done.
// Conversion failures are logged and the loop keeps watching.
func watchLoop(ctx context.Context, job *convertJob, wcfg source.WatcherConfig, stdout io.Writer) error {
	if err := job.run(stdout); err != nil {
		job.logger.Warn("Initial conversion failed", "error", err)
	}

	watcher, err := source.NewWatcher(wcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			job.logger.Warn("Failed to stop watcher", "error", err)
		}
	}()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			job.logger.Info("Watch stopped")
			return nil
		case set, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			job.logger.Info("Record files changed",
				slog.Int("files", len(set.Changes)),
				slog.Any("paths", set.Paths()))
			if err := job.run(stdout); err != nil {
				job.logger.Warn("Conversion failed", "error", err)
			}
		}
	}
}
