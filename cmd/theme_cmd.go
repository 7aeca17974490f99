package cmd

import (
	"fmt"
	"strings"

	"github.com/moneygrow/moneygrow/internal/config"
	"github.com/moneygrow/moneygrow/internal/tui/theme"
)

// setTheme validates and persists a theme choice from `config --theme`.
func setTheme(cfg config.Config, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !theme.Valid(name) {
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		return fmt.Errorf("unknown theme %q, choose one of: %s", name, strings.Join(names, ", "))
	}

	cfg.Appearance.Theme = name
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s.\n", name)
	return nil
}
