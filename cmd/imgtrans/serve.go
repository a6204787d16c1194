package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/imgtrans/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve image translation over HTTP",

	Args: cobra.NoArgs,

	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", "", "listen address (default from config or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)

	if err != nil {
		return err
	}

	if address := flagValue(cmd, "address"); address != "" {
		cfg.Address = address
	}

	s, err := server.New(cfg)

	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.ListenAndServe(ctx)
}
