package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

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

	ddb, err := store.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Error("error creating store", "error", err)
		os.Exit(1)
	}
	recorder, err := checkin.NewRecorder(checkin.RecorderArgs{
		Store:       ddb,
		Identifiers: cfg.Identifiers(),
		Logger:      log,
	})
	if err != nil {
		log.Error("error creating recorder", "error", err)
		os.Exit(1)
	}

	lambda.Start(handler.NewRecordHandler(recorder, log).HandleEvent)
}
