package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/geombridge/internal/config"
	"github.com/zeusync/geombridge/internal/core/observability/log"
	"github.com/zeusync/geombridge/internal/injector"
	"github.com/zeusync/geombridge/internal/server"
)

const statsInterval = time.Minute

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	srv, err := injector.InitializeServer(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating server:", err)
		os.Exit(1)
	}
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		reportStats(gctx, srv, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", log.Error(err))
		os.Exit(1)
	}
}

func reportStats(ctx context.Context, srv *server.Server, logger log.Log) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info("Server stats", log.Int("sessions", srv.SessionCount()))
		}
	}
}
