// Package cmd implements the moneygrow CLI commands.
package cmd

import (
	"fmt"

	"github.com/moneygrow/moneygrow/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var flagConfigTheme string

func init() {
	configCmd.Flags().StringVar(&flagConfigTheme, "theme", "", "Set the color theme and exit")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if flagConfigTheme != "" {
		return setTheme(cfg, flagConfigTheme)
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Server:  %s\n", cfg.API.BaseURL)
	fmt.Printf("    Timeout: %ds\n", cfg.API.TimeoutSec)
	fmt.Println()

	fmt.Println("  [Session]")
	if cfg.Session.Token != "" {
		fmt.Printf("    Signed in as: %s\n", cfg.Session.Username)
		fmt.Printf("    Token:        %s\n", maskToken(cfg.Session.Token))
	} else {
		fmt.Println("    Not logged in")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}

func maskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:8] + "..." + token[len(token)-4:]
}
