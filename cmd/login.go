package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagLoginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&flagLoginEmail, "email", "e", "", "Account email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	client, cfg := loadClient()

	email := strings.TrimSpace(flagLoginEmail)
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&email))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	res, err := client.Login(ctx, email, password)
	if err != nil {
		return loginError(err)
	}

	cfg.Session.Token = res.Token
	cfg.Session.Username = res.Username
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("Signed in as %s.\n", res.Username)
	return nil
}

func loginError(err error) error {
	var re *api.RequestError
	switch {
	case errors.Is(err, api.ErrNotFound):
		return errors.New("no account found for this email")
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("incorrect password")
	case errors.As(err, &re) && re.Message != "":
		return errors.New(strings.TrimSuffix(re.Message, "."))
	}
	return err
}
