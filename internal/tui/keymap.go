package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Day cursor
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Today key.Binding

	// Window
	PrevWindow        key.Binding
	NextWindow        key.Binding
	ToggleGranularity key.Binding

	// Detail pane
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	CycleAspect key.Binding
	CyclePlanet key.Binding
	AddEntry    key.Binding

	// Application
	Refresh    key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous week"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),

		PrevWindow: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[/PgUp", "previous page"),
		),
		NextWindow: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]/PgDn", "next page"),
		),
		ToggleGranularity: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "week/month"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+U", "scroll detail up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "scroll detail down"),
		),
		CycleAspect: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter aspects"),
		),
		CyclePlanet: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "filter planets"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add journal entry"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NextWindow, k.AddEntry, k.ToggleHelp, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Today},
		{k.PrevWindow, k.NextWindow, k.ToggleGranularity},
		{k.ScrollUp, k.ScrollDown, k.CycleAspect, k.CyclePlanet, k.AddEntry},
		{k.Refresh, k.ToggleHelp, k.Quit},
	}
}
