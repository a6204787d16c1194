package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("unable to load .env file", "error", err)
		os.Exit(1)
	}

	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version))

	if err := shutdownTelemetry(context.Background()); err != nil {
		slog.Warn("unable to flush telemetry", "error", err)
	}

	if err != nil {
		os.Exit(1)
	}
}
