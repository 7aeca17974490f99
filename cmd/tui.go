package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/moneygrow/moneygrow/internal/state"
	"github.com/moneygrow/moneygrow/internal/tui"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	client, cfg := loadClient()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes;
	// lipgloss may otherwise fall back to the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The terminal is busy rendering; route store logs nowhere.
	store := state.New(client, cfg, log.New(io.Discard, "", 0))

	app := tui.NewApp(store, client)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
