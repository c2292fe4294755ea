package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the departure panel.
type Theme struct {
	Name string

	Background string // Terminal area around the panel
	Surface    string // Panel body
	SurfaceAlt string // Header and footer bars

	Text    string
	Muted   string
	Accent  string // Line numbers
	Warning string // Departure times
	Danger  string // Drag mode badge
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	surface := lipgloss.Color(t.Surface)
	bar := lipgloss.Color(t.SurfaceAlt)

	return Styles{
		Panel: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Text)).
			Width(panelWidth).
			Height(panelHeight).
			MaxHeight(panelHeight),

		Header: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Width(panelWidth).
			Align(lipgloss.Center),

		Footer: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Muted)).
			Width(panelWidth).
			Padding(0, 1),

		Body: lipgloss.NewStyle().
			Background(surface).
			Width(panelWidth).
			Height(panelHeight-2).
			MaxHeight(panelHeight-2).
			Padding(0, 1),

		Line: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Muted)),

		Time: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		MoveBadge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Surface)).
			Bold(true).
			Padding(0, 1),

		Gap: lipgloss.NewStyle().Background(surface),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Background(surface).
			Padding(1, 2),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Panel     lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Body      lipgloss.Style
	Line      lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Time      lipgloss.Style
	MoveBadge lipgloss.Style
	Gap       lipgloss.Style
	Modal     lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		Text:       "#cdcecf", // fg1
		Muted:      "#738091", // comment
		Accent:     "#719cd6", // blue
		Warning:    "#dbc074", // yellow
		Danger:     "#c94f6d", // red
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4
		Text:       "#DCD7BA", // fujiWhite
		Muted:      "#727169", // fujiGray
		Accent:     "#7E9CD8", // crystalBlue
		Warning:    "#E6C384", // carpYellow
		Danger:     "#E46876", // waveRed
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	// Light surface, closest to a plain desktop label.
	return Theme{
		Name:       "Slate",
		Background: "#f1f5f9", // slate-100
		Surface:    "#f8fafc", // slate-50
		SurfaceAlt: "#e2e8f0", // slate-200
		Text:       "#0f172a", // slate-900
		Muted:      "#64748b", // slate-500
		Accent:     "#0284c7", // sky-600
		Warning:    "#b45309", // amber-700
		Danger:     "#dc2626", // red-600
	}
}
