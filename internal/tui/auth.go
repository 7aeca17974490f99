package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/state"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	authModeLogin = iota
	authModeRegister
)

// authState tracks the login / register gate shown when no session
// token is present.
type authState struct {
	mode    int
	form    *huh.Form
	busy    bool
	failMsg string

	// Form inputs live behind a pointer so huh's bindings stay valid
	// across model copies.
	vals *authValues
}

type authValues struct {
	email    string
	password string

	regUsername string
	regPhone    string
	regEmail    string
	regPassword string
	regConfirm  string
}

// AuthResultMsg is sent when a login or register attempt finishes.
type AuthResultMsg struct {
	Err error
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

func (a *App) newLoginForm() *huh.Form {
	vals := a.auth.vals
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&vals.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.password).
				Validate(validateRequired("password")),
		).Title("Sign in"),
	)
	if a.width > 0 {
		form = form.WithWidth(authFormWidth(a.width))
	}
	return form
}

func (a *App) newRegisterForm() *huh.Form {
	vals := a.auth.vals
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&vals.regUsername).
				Validate(validateRequired("username")),
			huh.NewInput().
				Title("Phone").
				Value(&vals.regPhone).
				Validate(validateRequired("phone")),
			huh.NewInput().
				Title("Email").
				Value(&vals.regEmail).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.regPassword).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.regConfirm).
				Validate(func(s string) error {
					if s != vals.regPassword {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		).Title("Create account"),
	)
	if a.width > 0 {
		form = form.WithWidth(authFormWidth(a.width))
	}
	return form
}

func authFormWidth(w int) int {
	fw := w - 8
	if fw > 64 {
		fw = 64
	}
	if fw < 30 {
		fw = 30
	}
	return fw
}

// loginCmd authenticates and installs the token; the store refresh runs
// before the message is delivered, so the first frame after a login
// already has data.
func loginCmd(st *state.Store, client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		res, err := client.Login(ctx, email, password)
		if err != nil {
			return AuthResultMsg{Err: err}
		}
		st.SetToken(ctx, res.Token, res.Username)
		return AuthResultMsg{}
	}
}

// registerCmd creates the account, then logs straight in with the same
// credentials.
func registerCmd(st *state.Store, client *api.Client, in api.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.Register(ctx, in); err != nil {
			return AuthResultMsg{Err: err}
		}
		res, err := client.Login(ctx, in.Email, in.Password)
		if err != nil {
			return AuthResultMsg{Err: err}
		}
		st.SetToken(ctx, res.Token, res.Username)
		return AuthResultMsg{}
	}
}

// authFailMessage maps an auth error to the short line shown under the form.
func authFailMessage(err error) string {
	var re *api.RequestError
	switch {
	case errors.Is(err, api.ErrNotFound):
		return "No account found for this email."
	case errors.Is(err, api.ErrUnauthorized):
		return "Incorrect password."
	case errors.As(err, &re) && re.Message != "":
		return re.Message
	default:
		return "Could not reach the server."
	}
}

func (a App) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.auth.busy {
		return a, nil
	}

	// Tab between sign-in and register before the form has focus input.
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+t" {
		if a.auth.mode == authModeLogin {
			a.auth.mode = authModeRegister
			a.auth.form = a.newRegisterForm()
		} else {
			a.auth.mode = authModeLogin
			a.auth.form = a.newLoginForm()
		}
		a.auth.failMsg = ""
		return a, a.auth.form.Init()
	}

	form, cmd := a.auth.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.auth.form = f
	}

	if a.auth.form.State == huh.StateCompleted {
		a.auth.busy = true
		a.auth.failMsg = ""
		vals := a.auth.vals
		if a.auth.mode == authModeLogin {
			return a, tea.Batch(
				a.spinner.Tick,
				loginCmd(a.store, a.client, strings.TrimSpace(vals.email), vals.password),
			)
		}
		return a, tea.Batch(
			a.spinner.Tick,
			registerCmd(a.store, a.client, api.RegisterInput{
				Username: strings.TrimSpace(vals.regUsername),
				Phone:    strings.TrimSpace(vals.regPhone),
				Email:    strings.TrimSpace(vals.regEmail),
				Password: vals.regPassword,
			}),
		)
	}

	return a, cmd
}

func (a *App) handleAuthResult(msg AuthResultMsg) tea.Cmd {
	a.auth.busy = false
	if msg.Err != nil {
		a.auth.failMsg = authFailMessage(msg.Err)
		// Rebuild the form so the user can retry.
		if a.auth.mode == authModeLogin {
			a.auth.vals.password = ""
			a.auth.form = a.newLoginForm()
		} else {
			a.auth.vals.regPassword = ""
			a.auth.vals.regConfirm = ""
			a.auth.form = a.newRegisterForm()
		}
		return a.auth.form.Init()
	}

	a.snap = a.store.Snapshot()
	a.auth = authState{mode: authModeLogin, vals: &authValues{}}
	a.auth.form = a.newLoginForm()
	return nil
}

func (a App) viewAuth() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	failStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ moneygrow"))
	b.WriteString(hintStyle.Render(" · Personal Finance"))
	b.WriteString("\n\n")

	if a.auth.busy {
		b.WriteString(a.spinner.View())
		if a.auth.mode == authModeLogin {
			b.WriteString(hintStyle.Render(" Signing in…"))
		} else {
			b.WriteString(hintStyle.Render(" Creating account…"))
		}
	} else {
		b.WriteString(a.auth.form.View())
		if a.auth.failMsg != "" {
			b.WriteString("\n")
			b.WriteString(failStyle.Render(a.auth.failMsg))
		}
		b.WriteString("\n")
		if a.auth.mode == authModeLogin {
			b.WriteString(hintStyle.Render("ctrl+t: create an account instead"))
			b.WriteString("\n")
			b.WriteString(hintStyle.Render("Forgot your password? Ask the server admin to reset it."))
		} else {
			b.WriteString(hintStyle.Render("ctrl+t: back to sign in"))
		}
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
