package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lilpaoo/jimbo/internal/services"
	"github.com/lilpaoo/jimbo/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	backend := services.NewBackend(config.Backend.BaseURL, nil, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Backend: backend,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "jimbo",
		Usage:    "AI fitness coaching from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var unreachable *shared.UnreachableError
		if errors.As(err, &unreachable) {
			logger.Fatal(shared.UnreachableMessage)
		}
		logger.Fatalf("application error: %v", err)
	}
}
