package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/adrianliechti/imgtrans/config"
	"github.com/adrianliechti/imgtrans/pkg/otel"

	"github.com/aws/smithy-go"
	"github.com/spf13/cobra"
)

var shutdownTelemetry = func(context.Context) error { return nil }

var rootCmd = &cobra.Command{
	Use:   "imgtrans",
	Short: "Translate the text in images",

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(flagValue(cmd, "log-level"))

		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		shutdown, err := otel.Setup(cmd.Context(), "imgtrans", version)

		if err != nil {
			return err
		}

		shutdownTelemetry = shutdown

		return nil
	},
}

func init() {
	ll := os.Getenv("LOG_LEVEL")

	if ll == "" {
		ll = "INFO"
	}

	flags := rootCmd.PersistentFlags()

	flags.String("log-level", ll, "logging level (DEBUG, INFO, WARN, ERROR)")
	flags.String("config", os.Getenv("IMGTRANS_CONFIG"), "path to a YAML config file")

	flags.String("detector-region", "", "region of the default detector")
	flags.String("translator-region", "", "region of the default translator")

	flags.String("font", "", "font face used for the overlay text")
	flags.String("font-file", "", "TrueType file used for the overlay text")
	flags.Float64("font-size", 0, "font size of the overlay text")
}

func parseLevel(val string) (slog.Level, error) {
	switch strings.ToUpper(val) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", val)
}

// loadConfig reads the config file when given and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()

	if path := flagValue(cmd, "config"); path != "" {
		c, err := config.Parse(path)

		if err != nil {
			return nil, err
		}

		cfg = c
	}

	detectorRegion := flagValue(cmd, "detector-region")
	translatorRegion := flagValue(cmd, "translator-region")

	font := flagValue(cmd, "font")
	fontFile := flagValue(cmd, "font-file")

	fontSize, err := strconv.ParseFloat(flagValue(cmd, "font-size"), 64)

	if err != nil {
		fontSize = 0
	}

	cfg.Configure(func(s *config.Settings) {
		if detectorRegion != "" {
			s.DetectorRegion = detectorRegion
		}

		if translatorRegion != "" {
			s.TranslatorRegion = translatorRegion
		}

		if font != "" {
			s.FontFace = font
		}

		if fontFile != "" {
			s.FontFile = fontFile
		}

		if fontSize > 0 {
			s.FontSize = fontSize
		}
	})

	return cfg, nil
}

func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}

	return ""
}

// formatError flattens AWS API errors into their code and message.
func formatError(err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	return err
}
