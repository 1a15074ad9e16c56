package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transitboard.dev/transit"
	"transitboard.dev/transit/config"
	"transitboard.dev/transit/tableapi"
)

var rootCmd = &cobra.Command{
	Use:          "transit",
	Short:        "Transit schedule query tool",
	Long:         "Answers schedule queries (nearby stops, departures, route stops) against a remote transit table API",
	SilenceUsage: true,
}

var (
	apiURL string
	apiKey string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "url", "", "", "Table API base URL (overrides TRANSIT_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "key", "", "", "Table API key (overrides TRANSIT_API_KEY)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.With().Timestamp().Logger().Level(level)
}

func newClient() (*tableapi.Client, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if apiKey != "" {
		cfg.API.APIKey = apiKey
	}

	logger := newLogger(cfg.Logging)

	client, err := tableapi.New(tableapi.Config{
		BaseURL:     cfg.API.BaseURL,
		APIKey:      cfg.API.APIKey,
		Timeout:     cfg.API.Timeout,
		MaxAttempts: cfg.API.MaxAttempts,
		BatchSize:   cfg.API.BatchSize,
		MaxInFlight: cfg.API.MaxInFlight,
		Logger:      logger,
	})
	if err != nil {
		return nil, logger, err
	}

	return client, logger, nil
}

func newEngine() (*transit.Engine, error) {
	client, logger, err := newClient()
	if err != nil {
		return nil, err
	}

	engine := transit.NewEngine(client)
	engine.Logger = logger
	return engine, nil
}
