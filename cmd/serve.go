package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/moneygrow/moneygrow/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServeAddr   string
	flagServeDB     string
	flagServeSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the finance API server",
	Long: "Run the HTTP API that the client talks to. The token signing secret " +
		"comes from --secret or the JWT_SECRET environment variable (a .env file " +
		"in the working directory is read if present).",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":3000", "Listen address")
	serveCmd.Flags().StringVar(&flagServeDB, "db", "moneygrow.db", "SQLite database path")
	serveCmd.Flags().StringVar(&flagServeSecret, "secret", "", "Token signing secret (overrides JWT_SECRET)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Optional; real deployments set env vars directly.
	_ = godotenv.Load()

	secret := flagServeSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return errors.New("no signing secret: pass --secret or set JWT_SECRET")
	}

	logger := server.NewLogger()

	srv, err := server.New(server.Config{
		Addr:   flagServeAddr,
		DBPath: flagServeDB,
		Secret: secret,
	}, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
