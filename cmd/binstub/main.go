package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bincheck/internal/binstub"
	"bincheck/internal/config"
	"bincheck/internal/httpserver"
	"bincheck/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func run(configPath, addr, fixtures string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Stub.Addr = addr
	}
	if fixtures != "" {
		cfg.Stub.Fixtures = fixtures
	}
	if cfg.Stub.Fixtures == "" {
		return errors.New("no fixtures file: pass -fixtures or set stub.fixtures")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := binstub.LoadStore(cfg.Stub.Fixtures)
	if err != nil {
		return err
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting binstub",
		zap.String("addr", cfg.Stub.Addr),
		zap.String("fixtures", cfg.Stub.Fixtures),
		zap.Int("records", store.Len()),
	)
	return httpserver.Run(ctx, httpserver.New(cfg.Stub.Addr, binstub.NewEngine(store, logger)), logger)
}

func main() {
	configPath := flag.String("config", "", "path to bincheck.yaml")
	addr := flag.String("addr", "", "listen address (overrides stub.addr)")
	fixtures := flag.String("fixtures", "", "JSON file of prefix -> record (overrides stub.fixtures)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: binstub [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serves GET /lookup/{bin} from a fixture file, standing in for the BIN service.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *addr, *fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "binstub: %v\n", err)
		os.Exit(1)
	}
}
