package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/c360studio/semnif/config"
	"github.com/c360studio/semnif/metric"
	nifexport "github.com/c360studio/semnif/processor/nif-export"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func serveCmd(global *globalOptions) *cobra.Command {
	var (
		natsURL     string
		metricsAddr string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Export annotation batches received over NATS",
		Long: `Serve subscribes to the configured input subject, converts every
annotation batch to RDF and publishes the result to the output subject,
or to the reply subject of a request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			if format != "" {
				cfg.Export.Format = format
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (overrides config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics (overrides config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (rdfxml, ntriples, turtle)")

	return cmd
}

func componentConfig(cfg *config.Config) nifexport.Config {
	return nifexport.Config{
		URL:           cfg.NATS.URL,
		InputSubject:  cfg.NATS.InputSubject,
		OutputSubject: cfg.NATS.OutputSubject,
		QueueGroup:    cfg.NATS.QueueGroup,
		IngestSubject: cfg.NATS.IngestSubject,
		Format:        cfg.Export.Format,
	}
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	reg := newRegistry()
	metrics := metric.New(reg)

	compCfg := componentConfig(cfg)
	logger.Info("Connecting to NATS", "url", compCfg.URL)
	nc, err := nifexport.Connect(compCfg.URL)
	if err != nil {
		return fmt.Errorf(`NATS connection failed: %w

Set nats.url in semnif.yaml or pass --nats-url to point to your NATS server.`, err)
	}
	defer func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}()

	comp, err := nifexport.NewComponent(compCfg, nc, logger, metrics)
	if err != nil {
		return err
	}
	if err := comp.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := comp.Stop(5 * time.Second); err != nil {
			logger.Warn("Failed to stop component", "error", err)
		}
	}()

	if cfg.Metrics.Addr != "" {
		srv := metricsServer(cfg.Metrics.Addr, reg)
		go func() {
			logger.Info("Metrics server listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	<-ctx.Done()
	logger.Info("Received shutdown signal")
	return nil
}

func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
