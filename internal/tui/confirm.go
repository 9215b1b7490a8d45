package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmResultMsg struct {
	confirmed bool
}

// confirmModel is a blocking yes/no prompt. While visible it takes every key.
type confirmModel struct {
	prompt  string
	visible bool
}

func (c *confirmModel) Open(prompt string) {
	c.prompt = prompt
	c.visible = true
}

func (c confirmModel) IsVisible() bool {
	return c.visible
}

func (c confirmModel) Update(msg tea.Msg) (confirmModel, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		c.visible = false
		return c, func() tea.Msg { return confirmResultMsg{confirmed: true} }
	case key.Matches(keyMsg, keys.No):
		c.visible = false
		return c, func() tea.Msg { return confirmResultMsg{confirmed: false} }
	}
	return c, nil
}

func (c confirmModel) View() string {
	if !c.visible {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		c.prompt,
		"",
		dangerButtonStyle.Render("y  delete")+"  "+buttonStyle.Render("n  cancel"),
	)
	return confirmStyle.Render(body)
}
