// Package main runs the order guide import worker: it consumes import jobs
// from NATS and pushes processed documents to the backend.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ogparsing/internal/config"
	"ogparsing/internal/fetch"
	"ogparsing/internal/logger"
	"ogparsing/internal/payload"
	"ogparsing/internal/processor"
	"ogparsing/internal/store"
	"ogparsing/internal/worker"
	"ogparsing/pkg/metadata"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(metadata.Version())
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	log.Info("starting order guide worker", "version", metadata.Version())

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	metrics := worker.NewMetrics()

	locator := processor.DefaultLocator(processor.Deps{
		Accounts:             db,
		Catalog:              db,
		PriceChangeThreshold: cfg.Processing.PriceChangeThreshold,
	})

	pipeline := worker.NewPipeline(
		fetch.NewFetcherWithConfig(&cfg.Fetch.Retry),
		db,
		locator,
		payload.NewSubmitter(cfg.Backend.Endpoint, cfg.Backend.APIKey, cfg.GetBackendTimeout(), log),
		metrics,
		log,
	)

	w, err := worker.NewWorker(cfg.Nats.URL, cfg.Nats.Subject, cfg.Nats.Queue, pipeline, metrics, log)
	if err != nil {
		log.Error("failed to create worker", "error", err)
		os.Exit(1)
	}

	if err := w.Start(); err != nil {
		log.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("metrics listening", "addr", cfg.Metrics.Addr)

		if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
			log.Error("metrics server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	w.Stop()
}
