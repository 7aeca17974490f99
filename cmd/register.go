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

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(_ *cobra.Command, _ []string) error {
	client, cfg := loadClient()

	var username, phone, email, password, confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().Title("Phone").Value(&phone),
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if len(s) < 6 {
						return errors.New("password must be at least 6 characters")
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	if username == "" || phone == "" || email == "" || password == "" {
		return errors.New("all fields are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	in := api.RegisterInput{Username: username, Phone: phone, Email: email, Password: password}
	if err := client.Register(ctx, in); err != nil {
		return loginError(err)
	}

	res, err := client.Login(ctx, email, password)
	if err != nil {
		return loginError(err)
	}

	cfg.Session.Token = res.Token
	cfg.Session.Username = res.Username
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("Welcome, %s! Your account is ready.\n", res.Username)
	return nil
}
