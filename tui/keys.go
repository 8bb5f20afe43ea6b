package tui

import "github.com/charmbracelet/bubbles/key"

type previewKeyMap struct {
	Settings key.Binding
	Dismiss  key.Binding
	Back     key.Binding
}

var previewKeys = previewKeyMap{
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
	Back:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

// help renders the footer hints. Back reads "back" when q returns to the list.
func (k previewKeyMap) help(fromSearch bool) string {
	back := "quit"
	if fromSearch {
		back = "back"
	}
	return k.Settings.Help().Key + " " + k.Settings.Help().Desc + " • " +
		k.Dismiss.Help().Key + " " + k.Dismiss.Help().Desc + " • " +
		k.Back.Help().Key + " " + back
}
