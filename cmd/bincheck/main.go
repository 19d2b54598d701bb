package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bincheck/internal/binlist"
	"bincheck/internal/config"
	"bincheck/internal/logging"
	"bincheck/internal/metrics"
	"bincheck/internal/trace"
	"bincheck/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// stdout belongs to the renderer: log to a file or not at all.
	logger, err := logging.ForTUI(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := trace.NewProvider(ctx, cfg.Trace.ServiceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown", zap.Error(err))
		}
	}()

	client := binlist.New(cfg.Lookup,
		binlist.WithLogger(logger),
		binlist.WithTracer(tp.Tracer()),
		binlist.WithMetrics(metrics.New(prometheus.NewRegistry())),
	)

	logger.Info("starting", zap.String("base_url", cfg.Lookup.BaseURL))
	model := ui.NewAppModel(ctx, client, logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to bincheck.yaml (default: ./bincheck.yaml or ~/.config/bincheck/bincheck.yaml)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bincheck [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive BIN lookup in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "bincheck: %v\n", err)
		os.Exit(1)
	}
}
