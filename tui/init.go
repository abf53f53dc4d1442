// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the tick schedule and, when a collection was given on the command line, its search.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, b.scheduleTick(b.now())}

	if name := strings.TrimSpace(b.initialSearch); name != "" {
		b.inputC.SetValue(name)
		b.inputC.CursorEnd()
		cmds = append(cmds, b.searchCollection(name))
	}

	return tea.Batch(cmds...)
}
