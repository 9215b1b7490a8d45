package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages emitted by loginModel.

type signInSubmitMsg struct {
	identifier string
	password   string
}

// Field indices within the login form.
const (
	fieldIdentifier = 0
	fieldPassword   = 1
	fieldCount      = 2
)

// loginModel is the sign-in form shown while unauthenticated.
type loginModel struct {
	identifierInput textinput.Model
	passwordInput   textinput.Model

	activeField int
	width       int
}

func newLogin() loginModel {
	identifier := textinput.New()
	identifier.Placeholder = "Email or phone (e.g. +6281234 or 081234)"
	identifier.CharLimit = 254
	identifier.Prompt = ""

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	l := loginModel{
		identifierInput: identifier,
		passwordInput:   password,
	}
	l.updateFocus()
	return l
}

// Update handles key events for the form. Enter submits from either field.
func (l loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.NextField):
			l.activeField = (l.activeField + 1) % fieldCount
			l.updateFocus()
			return l, nil

		case key.Matches(msg, keys.PrevField):
			l.activeField = (l.activeField + fieldCount - 1) % fieldCount
			l.updateFocus()
			return l, nil

		case key.Matches(msg, keys.Submit):
			identifier, password := l.Values()
			submit := signInSubmitMsg{identifier: identifier, password: password}
			return l, func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	switch l.activeField {
	case fieldIdentifier:
		l.identifierInput, cmd = l.identifierInput.Update(msg)
	case fieldPassword:
		l.passwordInput, cmd = l.passwordInput.Update(msg)
	}
	return l, cmd
}

// View renders the form card. The button is disabled while submitting.
func (l loginModel) View(submitting bool) string {
	inputWidth := l.width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 48 {
		inputWidth = 48
	}
	l.identifierInput.Width = inputWidth
	l.passwordInput.Width = inputWidth

	idLabel := mutedTextStyle.Render(fmt.Sprintf("%-10s", "Login:"))
	pwLabel := mutedTextStyle.Render(fmt.Sprintf("%-10s", "Password:"))

	button := buttonStyle.Render("Log in")
	if submitting {
		button = disabledButtonStyle.Render("Signing in...")
	}

	rows := []string{
		titleStyle.Render("Please log in first"),
		"",
		idLabel + l.identifierInput.View(),
		pwLabel + l.passwordInput.View(),
		"",
		button,
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetWidth updates the available width for the form.
func (l *loginModel) SetWidth(w int) {
	l.width = w
}

// Values returns the trimmed identifier and raw password.
func (l loginModel) Values() (string, string) {
	return strings.TrimSpace(l.identifierInput.Value()), l.passwordInput.Value()
}

// Reset clears both fields and focuses the identifier.
func (l *loginModel) Reset() {
	l.identifierInput.SetValue("")
	l.passwordInput.SetValue("")
	l.activeField = fieldIdentifier
	l.updateFocus()
}

func (l *loginModel) updateFocus() {
	l.identifierInput.Blur()
	l.passwordInput.Blur()

	switch l.activeField {
	case fieldIdentifier:
		l.identifierInput.Focus()
	case fieldPassword:
		l.passwordInput.Focus()
	}
}
