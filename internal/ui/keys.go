package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play        key.Binding
	Toggle      key.Binding
	Stop        key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	SeekBackBig key.Binding
	SeekFwdBig  key.Binding
	Dismiss     key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "play"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "seek 5s"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		SeekBackBig: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H/L", "seek 30s"),
		),
		SeekFwdBig: key.NewBinding(
			key.WithKeys("shift+right", "L"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Toggle, k.Stop, k.SeekBack, k.SeekBackBig, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
