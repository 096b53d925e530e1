package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color set for the dashboard.
type Theme struct {
	Name    string
	Text    string
	Muted   string
	Surface string
	Accent  string
	Success string
	Warning string
	Danger  string
}

var themes = []Theme{
	{
		Name:    "dark",
		Text:    "#c0caf5",
		Muted:   "#565f89",
		Surface: "#1f2335",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Warning: "#e0af68",
		Danger:  "#f7768e",
	},
	{
		Name:    "light",
		Text:    "#343b58",
		Muted:   "#9699a3",
		Surface: "#d5d6db",
		Accent:  "#34548a",
		Success: "#485e30",
		Warning: "#8f5e15",
		Danger:  "#8c4351",
	},
}

// themeByName returns the named theme, defaulting to the first one.
func themeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// nextTheme cycles through the available themes.
func nextTheme(current string) Theme {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Styles bundles the lipgloss styles derived from a theme.
type Styles struct {
	Header    lipgloss.Style
	Logo      lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	StatusBar lipgloss.Style
	Overlay   lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),
		Logo: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}

// statusStyle picks a style for a server status value.
func (s Styles) statusStyle(status string) lipgloss.Style {
	switch status {
	case "running":
		return s.Success
	case "starting", "stopping", "restarting":
		return s.Warning
	case "stopped", "crashed", "error":
		return s.Danger
	default:
		return s.Muted
	}
}
