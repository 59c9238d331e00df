// Command ledgersim-worker consumes month notifications and appends them to
// a Google Sheet, or keeps them in memory when no spreadsheet is set.
package main

import (
	"context"
	"errors"
	"os"

	"ledgersim/internal/amqp"
	"ledgersim/internal/cli"
	"ledgersim/internal/log"
	"ledgersim/internal/sheets"
	gsheet "ledgersim/internal/sheets/google"
	"ledgersim/internal/sheets/memory"
	"ledgersim/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.SetupLogger("info", log.ComponentWorker).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentWorker)
	logger.Info("Starting ledgersim-worker")

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	var writer sheets.SummaryWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
		writer = client
	} else {
		logger.Info("Google Sheets disabled - keeping month summaries in memory")
		writer = memory.New()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("Closing AMQP client", log.FieldError, err)
		}
	})

	summaryWorker := worker.NewSummaryWorker(writer)
	if err := amqpClient.ConsumeMonthReplayed(ctx, summaryWorker.HandleMonthMessage); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		amqpClient.Close()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
