package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Yes       key.Binding
	No        key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete account")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	No:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
