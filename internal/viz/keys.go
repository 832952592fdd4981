package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Retarget key.Binding
	Reset    key.Binding
	Preset   key.Binding
	Stop     key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Retarget, k.Preset, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Retarget, k.Reset, k.Stop},
		{k.Preset, k.Theme},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Retarget: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "retarget"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Preset: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "next preset"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
