package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the TUI colors and the heatmap ramp from Low (at rest) to
// High (largest displacement).
type Theme struct {
	Name   string
	Low    lipgloss.Color
	High   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeThermal = Theme{
		Name:   "thermal",
		Low:    lipgloss.Color("#1a0033"),
		High:   lipgloss.Color("#ffcc00"),
		Accent: lipgloss.Color("#ff6600"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Low:    lipgloss.Color("#0a0a0a"),
		High:   lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Low:    lipgloss.Color("#001a33"),
		High:   lipgloss.Color("#00ffcc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Low:    lipgloss.Color("#001100"),
		High:   lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	// All available themes
	Themes = []Theme{
		ThemeThermal,
		ThemeCyberpunk,
		ThemeOcean,
		ThemeRetroGreen,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
