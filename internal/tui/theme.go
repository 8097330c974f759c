package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the palette the menu and forms are drawn with.
type Theme struct {
	Accent lipgloss.Color
	Bright lipgloss.Color
	Dim    lipgloss.Color
}

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DimGreen    = lipgloss.Color("#003B00")
	Amber       = lipgloss.Color("#FFB000")
	BrightAmber = lipgloss.Color("#FFD700")
	DimAmber    = lipgloss.Color("#5C4000")
	Black       = lipgloss.Color("#0D0208")
	LightGray   = lipgloss.Color("#aaaaaa")
	Red         = lipgloss.Color("#FF4136")

	themes = map[string]Theme{
		"green": {Accent: Green, Bright: BrightGreen, Dim: DimGreen},
		"amber": {Accent: Amber, Bright: BrightAmber, Dim: DimAmber},
	}
)

// Styles for plain command output outside the interactive model.
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// ThemeByName returns the named theme, falling back to green.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["green"]
}

type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	statusBar lipgloss.Style
	dirty     lipgloss.Style
	errorText lipgloss.Style
	help      lipgloss.Style
	box       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			MarginLeft(2),
		label: lipgloss.NewStyle().
			Foreground(t.Bright).
			Bold(true),
		statusBar: lipgloss.NewStyle().
			Background(t.Accent).
			Foreground(Black).
			Bold(true).
			Padding(0, 1),
		dirty: lipgloss.NewStyle().
			Foreground(BrightAmber).
			Bold(true),
		errorText: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(LightGray),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
}

const Banner = `
   ___ ___    _   ___  ___ _  _____ ___ ___ ___ ___
  / __| _ \  /_\ |   \| __| |/ / __| __| _ \ __| _ \
 | (_ |   / / _ \| |) | _|| ' <| _|| _||  _/ _||   /
  \___|_|_\/_/ \_\___/|___|_|\_\___|___|_| |___|_|_\
`
