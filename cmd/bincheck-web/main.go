package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bincheck/internal/binlist"
	"bincheck/internal/config"
	"bincheck/internal/httpserver"
	"bincheck/internal/logging"
	"bincheck/internal/metrics"
	"bincheck/internal/trace"
	"bincheck/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Web.Addr = addr
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := trace.NewProvider(ctx, cfg.Trace.ServiceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	client := binlist.New(cfg.Lookup,
		binlist.WithLogger(logger),
		binlist.WithTracer(tp.Tracer()),
		binlist.WithMetrics(m),
	)
	router := web.NewRouter(web.NewHandler(client, logger, m), logger, reg)

	logger.Info("starting bincheck-web",
		zap.String("addr", cfg.Web.Addr),
		zap.String("base_url", cfg.Lookup.BaseURL),
	)
	return httpserver.Run(ctx, httpserver.New(cfg.Web.Addr, router), logger)
}

func main() {
	configPath := flag.String("config", "", "path to bincheck.yaml")
	addr := flag.String("addr", "", "listen address (overrides web.addr)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bincheck-web [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serves the BIN lookup form over HTTP.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "bincheck-web: %v\n", err)
		os.Exit(1)
	}
}
