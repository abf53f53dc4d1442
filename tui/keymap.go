// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/archiver-cli/archiver/color"
	"github.com/archiver-cli/archiver/style"
	"github.com/charmbracelet/bubbles/key"
)

// statefulKeymap defines the keyboard interactions available within each state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	search, confirm, back,
	up, down,
	view, download, favorite,
	acceptSuggestion,
	openURL key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("search")),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		view: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "view item"),
		),
		download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		favorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "toggle favorite"),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "accept suggestion"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case browsingState:
		return h(k.search, k.view, k.download, k.quit),
			h(k.search, k.up, k.down, k.view, k.download, k.favorite, k.acceptSuggestion, k.quit)
	case askingDownloadDirState:
		return h(k.confirm, k.back, k.forceQuit), h(k.confirm, k.back, k.forceQuit)
	case viewingItemState:
		return h(k.openURL, k.back, k.quit), h(k.up, k.down, k.openURL, k.back, k.quit)
	case downloadingState:
		return h(k.back, k.quit), h(k.back, k.quit)
	default:
		return h(), h()
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
