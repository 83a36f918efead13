package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Cell          lipgloss.Style
	CursorCell    lipgloss.Style
	TodayCell     lipgloss.Style
	OutsideCell   lipgloss.Style
	Exact         lipgloss.Style
	Journal       lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
}

func build(primary, secondary, muted, border, fg, exact, journal, errColor, warning, info lipgloss.Color) Theme {
	cell := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1)

	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Error:      errColor,
		Warning:    warning,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Italic: lipgloss.NewStyle().
			Italic(true).
			Foreground(muted),

		Cell: cell,
		CursorCell: cell.
			Border(lipgloss.ThickBorder()).
			BorderForeground(primary),
		TodayCell: cell.
			BorderForeground(secondary),
		OutsideCell: cell.
			Foreground(muted),
		Exact: lipgloss.NewStyle().
			Bold(true).
			Foreground(exact),
		Journal: lipgloss.NewStyle().
			Foreground(journal),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#9d7cf2"), // primary
	lipgloss.Color("#a78bfa"), // secondary
	lipgloss.Color("#737373"), // muted
	lipgloss.Color("#404040"), // border
	lipgloss.Color("#fafafa"), // foreground
	lipgloss.Color("#f7b267"), // exact
	lipgloss.Color("#95e1d3"), // journal
	lipgloss.Color("#ef4444"), // error
	lipgloss.Color("#f59e0b"), // warning
	lipgloss.Color("#3b82f6"), // info
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#fab387"),
	lipgloss.Color("#94e2d5"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#89dceb"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
