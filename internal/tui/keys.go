package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. It implements help.KeyMap.
type keyMap struct {
	Click    key.Binding
	Menu     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Speak    key.Binding
	Move     key.Binding
	QuitHost key.Binding
	Close    key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Click: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pet"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Speak: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "speak"),
	),
	Move: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "random move"),
	),
	QuitHost: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "quit pet"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "close UI"),
	),
}

// ShortHelp returns the bindings shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Menu, k.Settings, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Menu, k.Settings, k.Help, k.Quit},
		{k.Up, k.Down, k.Select, k.Close},
		{k.Speak, k.Move, k.QuitHost},
	}
}

// SettingsKeys are active while the settings form is open.
type SettingsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Less   key.Binding
	More   key.Binding
	Close  key.Binding
}

var settingsKeys = SettingsKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("Space", "toggle"),
	),
	Less: key.NewBinding(
		key.WithKeys("left", "h", "-"),
		key.WithHelp("←/→", "adjust"),
	),
	More: key.NewBinding(
		key.WithKeys("right", "l", "+"),
		key.WithHelp("←/→", "adjust"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "s"),
		key.WithHelp("Esc", "close"),
	),
}
