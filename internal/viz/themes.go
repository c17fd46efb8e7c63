package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/polsim/internal/models"
)

// Theme colors the three compartment kinds shared by both countries.
type Theme struct {
	Name         string
	Unaffiliated lipgloss.Color
	First        lipgloss.Color
	Second       lipgloss.Color
	Accent       lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:         "classic",
		Unaffiliated: lipgloss.Color("#aaaaaa"),
		First:        lipgloss.Color("#3b82f6"),
		Second:       lipgloss.Color("#ef4444"),
		Accent:       lipgloss.Color("#00ffff"),
	}

	ThemeRetro = Theme{
		Name:         "retro",
		Unaffiliated: lipgloss.Color("#005500"),
		First:        lipgloss.Color("#00ff00"),
		Second:       lipgloss.Color("#88ff88"),
		Accent:       lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:         "minimal",
		Unaffiliated: lipgloss.Color("#888888"),
		First:        lipgloss.Color("#ffffff"),
		Second:       lipgloss.Color("#cccccc"),
		Accent:       lipgloss.Color("#0088ff"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetro, ThemeMinimal}
)

// Compartment returns the style for compartment idx (see models.V1..models.E).
func (t Theme) Compartment(idx int) lipgloss.Style {
	c := t.Unaffiliated
	switch idx {
	case models.B, models.D:
		c = t.First
	case models.C, models.E:
		c = t.Second
	}
	return lipgloss.NewStyle().Foreground(c)
}

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
