package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Trace   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:    "phosphor",
		Trace:   lipgloss.Color("#33ff66"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#ccffcc"),
		Muted:   lipgloss.Color("#336633"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Trace:   lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeAmber = Theme{
		Name:    "amber",
		Trace:   lipgloss.Color("#ffb000"),
		Accent:  lipgloss.Color("#ffd580"),
		Text:    lipgloss.Color("#fff0d0"),
		Muted:   lipgloss.Color("#805800"),
		Warning: lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeCyberpunk,
		ThemeAmber,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// styles is the set of lipgloss styles derived from one theme.
type styles struct {
	canvas lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	help   lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Trace).Padding(1, 2),
		stats:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(44),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		status: lipgloss.NewStyle().Foreground(t.Trace).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
