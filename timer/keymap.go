package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	toggleSound key.Binding
	volumeUp    key.Binding
	volumeDown  key.Binding
	retry       key.Binding
	end         key.Binding
	sync        key.Binding
	esc         key.Binding
	quit        key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.toggleSound,
		k.volumeUp,
		k.volumeDown,
		k.retry,
		k.end,
		k.sync,
		k.quit,
	}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.esc}}
}

var defaultKeymap = keymap{
	toggleSound: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause sound"),
	),
	volumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "volume up"),
	),
	volumeDown: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "volume down"),
	),
	retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry sound"),
	),
	end: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "wake up"),
	),
	sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
