package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkin-example-app/internal/checkin"
	"checkin-example-app/internal/config"
	"checkin-example-app/internal/handler"
	"checkin-example-app/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ddb, err := store.FromConfig(ctx, cfg)
	if err != nil {
		log.Error("error creating store", "error", err)
		os.Exit(1)
	}
	reporter, err := checkin.NewReporter(checkin.ReporterArgs{
		Store:       ddb,
		Table:       cfg.TableName,
		Identifiers: cfg.Identifiers(),
		Concurrency: cfg.ReadConcurrency,
		Logger:      log,
	})
	if err != nil {
		log.Error("error creating reporter", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewMux(handler.NewReportHandler(reporter, log).WithMetrics(handler.NewMetrics())),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("Running", "addr", srv.Addr)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		log.Info("server closed")
	} else if err != nil {
		log.Error("error starting server", "error", err)
		os.Exit(1)
	}
}
