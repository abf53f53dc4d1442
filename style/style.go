// Package style wraps lipgloss into small render functions.
package style

import (
	"github.com/archiver-cli/archiver/color"
	"github.com/charmbracelet/lipgloss"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a function rendering its argument in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a screen banner such as "Viewing Item".
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

// ErrorText renders an inline error status line.
var ErrorText = func(s string) string {
	return New().Foreground(ErrorColor).Bold(true).Render(s)
}

// Hint renders secondary guidance, such as a search suggestion.
var Hint = func(s string) string {
	return New().Foreground(FaintColor).Italic(true).Render(s)
}
