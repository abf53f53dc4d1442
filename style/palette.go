package style

import "github.com/charmbracelet/lipgloss"

// Interface colors. Lists and banners use these instead of the ANSI ones in package color.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Overlay  = lipgloss.Color("#6c7086")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Lavender = lipgloss.Color("#b4befe")

	// AccentColor marks the selected list entry.
	AccentColor = Mauve
	ErrorColor  = Red
	FaintColor  = Overlay
)
