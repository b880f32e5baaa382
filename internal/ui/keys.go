package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the application key bindings.
type keyMap struct {
	Quit       key.Binding
	FocusNext  key.Binding
	Up         key.Binding
	Down       key.Binding
	Back       key.Binding
	Enter      key.Binding
	Add        key.Binding
	Remove     key.Binding
	Rate       key.Binding
	PlayPause  key.Binding
	Stop       key.Binding
	Next       key.Binding
	Previous   key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	Repeat     key.Binding
	Shuffle    key.Binding
	ClearQueue key.Binding
	ResetQueue key.Binding
	Search     key.Binding
	Rescan     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Back:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "back")),
		Enter:      key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open/play")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "queue")),
		Remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Rate:       key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5"), key.WithHelp("0-5", "rate")),
		PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:       key.NewBinding(key.WithKeys("pgdown", "N"), key.WithHelp("N", "next")),
		Previous:   key.NewBinding(key.WithKeys("pgup", "P"), key.WithHelp("P", "previous")),
		SeekBack:   key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "seek back")),
		SeekFwd:    key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "seek")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "quieter")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Repeat:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "repeat")),
		Shuffle:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "shuffle")),
		ClearQueue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear queue")),
		ResetQueue: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "restart queue")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Rescan:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update catalog")),
	}
}
