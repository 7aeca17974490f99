package cmd

import (
	"fmt"

	"github.com/moneygrow/moneygrow/internal/config"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the saved session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	if cfg.Session.Token == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	cfg.Session.Token = ""
	cfg.Session.Username = ""
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}
