package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/semnif/config"
	"github.com/c360studio/semnif/export"
	"github.com/c360studio/semnif/metric"
	"github.com/c360studio/semnif/source"
	"github.com/spf13/cobra"
)

// convertOptions holds per-invocation conversion settings.
type convertOptions struct {
	format string
	output string
}

func convertCmd(global *globalOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [files or globs...]",
		Short: "Convert annotation record files to RDF",
		Long: `Convert reads annotation records from the given files, directories or
doublestar globs (for example "records/**/*.yaml") and writes one RDF
document for all of them.

Without arguments the patterns from the config file are used. The
output format defaults to the output file extension, then to the
configured format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			job, err := newConvertJob(cfg, opts, cmd.Flags().Changed("format"), args, logger, nil)
			if err != nil {
				return err
			}
			return job.run(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (rdfxml, ntriples, turtle)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// convertJob is one resolved conversion: where to read, how to render and
// where to write.
type convertJob struct {
	patterns []string
	format   export.Format
	output   string
	logger   *slog.Logger
	metrics  *metric.Metrics
}

func newConvertJob(cfg *config.Config, opts *convertOptions, formatSet bool, args []string, logger *slog.Logger, m *metric.Metrics) (*convertJob, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Input.Patterns
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files: pass paths or set input.patterns")
	}

	output := opts.output
	if output == "" {
		output = cfg.Export.Output
	}

	format, err := resolveFormat(cfg, opts.format, formatSet, output)
	if err != nil {
		return nil, err
	}

	return &convertJob{
		patterns: patterns,
		format:   format,
		output:   output,
		logger:   logger,
		metrics:  m,
	}, nil
}

func resolveFormat(cfg *config.Config, flag string, flagSet bool, output string) (export.Format, error) {
	if flagSet {
		return export.ParseFormat(flag)
	}
	if output != "" && output != "-" {
		if f, ok := export.FormatForExtension(filepath.Ext(output)); ok {
			return f, nil
		}
	}
	return cfg.Format(), nil
}

// run loads every matching record file and writes the rendered document.
func (j *convertJob) run(stdout io.Writer) error {
	files, err := source.ExpandPatterns(j.patterns)
	if err != nil {
		return err
	}

	records, err := source.LoadFiles(files)
	if err != nil {
		return err
	}

	exp := export.NewExporter(records,
		export.WithLogger(j.logger),
		export.WithMetrics(j.metrics))

	if err := j.write(stdout, exp); err != nil {
		return err
	}

	j.logger.Info("Converted annotation records",
		"files", len(files),
		"records", len(records),
		"triples", exp.Graph().Len(),
		"format", j.format,
		"output", j.destination())
	return nil
}

func (j *convertJob) write(stdout io.Writer, exp *export.Exporter) error {
	serializer := export.NewSerializer(j.logger, j.metrics)

	if j.output == "" || j.output == "-" {
		return serializer.RenderTo(stdout, exp.Graph(), j.format)
	}

	if dir := filepath.Dir(j.output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	// Written through a sibling temp file, then renamed into place.
	tmp, err := os.CreateTemp(filepath.Dir(j.output), "."+filepath.Base(j.output)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := serializer.RenderTo(tmp, exp.Graph(), j.format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (j *convertJob) destination() string {
	if j.output == "" || j.output == "-" {
		return "stdout"
	}
	return j.output
}
