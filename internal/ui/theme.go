package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Border   lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Danger   lipgloss.Color
	BarFill  lipgloss.Color
	BarEmpty lipgloss.Color
}

const defaultTheme = "terminal"

var palettes = map[string]palette{
	"terminal": {
		Text:     lipgloss.Color("#33ff33"),
		Muted:    lipgloss.Color("#1f9a1f"),
		Accent:   lipgloss.Color("#7dff7d"),
		Border:   lipgloss.Color("#1f9a1f"),
		Success:  lipgloss.Color("#33ff33"),
		Warning:  lipgloss.Color("#ffff55"),
		Danger:   lipgloss.Color("#ff5555"),
		BarFill:  lipgloss.Color("#33ff33"),
		BarEmpty: lipgloss.Color("#0b3d0b"),
	},
	"amber": {
		Text:     lipgloss.Color("#ffb000"),
		Muted:    lipgloss.Color("#a87400"),
		Accent:   lipgloss.Color("#ffd27f"),
		Border:   lipgloss.Color("#a87400"),
		Success:  lipgloss.Color("#ffcc33"),
		Warning:  lipgloss.Color("#fff0b3"),
		Danger:   lipgloss.Color("#ff6a3d"),
		BarFill:  lipgloss.Color("#ffb000"),
		BarEmpty: lipgloss.Color("#3d2a00"),
	},
	"catppuccin": {
		Text:     lipgloss.Color("#cdd6f4"),
		Muted:    lipgloss.Color("#a6adc8"),
		Accent:   lipgloss.Color("#cba6f7"),
		Border:   lipgloss.Color("#585b70"),
		Success:  lipgloss.Color("#94e2d5"),
		Warning:  lipgloss.Color("#f9e2af"),
		Danger:   lipgloss.Color("#f38ba8"),
		BarFill:  lipgloss.Color("#94e2d5"),
		BarEmpty: lipgloss.Color("#313244"),
	},
	"dracula": {
		Text:     lipgloss.Color("#f8f8f2"),
		Muted:    lipgloss.Color("#6272a4"),
		Accent:   lipgloss.Color("#ff79c6"),
		Border:   lipgloss.Color("#44475a"),
		Success:  lipgloss.Color("#50fa7b"),
		Warning:  lipgloss.Color("#f1fa8c"),
		Danger:   lipgloss.Color("#ff5555"),
		BarFill:  lipgloss.Color("#50fa7b"),
		BarEmpty: lipgloss.Color("#343746"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

// styles are rebuilt whenever the theme changes.
type styles struct {
	box     lipgloss.Style
	title   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	barFill lipgloss.Style
	barRest lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		box:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Border).Foreground(p.Text).Padding(1, 2),
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		text:    lipgloss.NewStyle().Foreground(p.Text),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		accent:  lipgloss.NewStyle().Foreground(p.Accent),
		good:    lipgloss.NewStyle().Foreground(p.Success),
		warn:    lipgloss.NewStyle().Foreground(p.Warning),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(p.Danger),
		barFill: lipgloss.NewStyle().Foreground(p.BarFill),
		barRest: lipgloss.NewStyle().Foreground(p.BarEmpty),
	}
}
