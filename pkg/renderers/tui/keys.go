package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextSec key.Binding
	PrevSec key.Binding
	Edit    key.Binding
	Expand  key.Binding
	Create  key.Binding
	Compare key.Binding
	Commit  key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "field")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "field")),
		NextSec: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSec: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Edit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Expand:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expand/collapse")),
		Create:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create package")),
		Compare: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "compare")),
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSec, k.Up, k.Edit, k.Create, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSec, k.PrevSec, k.Up, k.Down},
		{k.Edit, k.Expand, k.Create, k.Compare, k.Quit},
	}
}
