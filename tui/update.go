// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return b, b.onTick()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		if !b.loading() {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case collectionFetchedMsg:
		return b, b.applyCollection(msg)
	case detailsFetchedMsg:
		return b, b.applyDetails(msg)
	case downloadStartedMsg:
		return b, b.applyDownload(msg)
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}

		switch b.state {
		case browsingState:
			return b.updateBrowsing(msg)
		case askingDownloadDirState:
			return b.updateAskingDownloadDir(msg)
		case viewingItemState:
			return b.updateViewingItem(msg)
		case downloadingState:
			return b.updateDownloading(msg)
		}
	}

	return b, nil
}

func (b *statefulBubble) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.back):
		return b, b.quit()
	case key.Matches(msg, b.keymap.quit) && !b.queryEdited():
		return b, b.quit()
	case key.Matches(msg, b.keymap.search):
		return b, b.startSearch()
	case key.Matches(msg, b.keymap.up):
		moveSelection(&b.itemsC, -1)
	case key.Matches(msg, b.keymap.down):
		moveSelection(&b.itemsC, 1)
	case key.Matches(msg, b.keymap.view):
		return b, b.viewSelected()
	case key.Matches(msg, b.keymap.download) && !b.queryEdited():
		return b, b.downloadSelected()
	case key.Matches(msg, b.keymap.favorite):
		b.toggleFavorite()
	case key.Matches(msg, b.keymap.acceptSuggestion) && b.canAcceptSuggestion():
		b.acceptSuggestion()
	default:
		var cmd tea.Cmd
		b.inputC, cmd = b.inputC.Update(msg)
		b.refreshSuggestion()
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) updateAskingDownloadDir(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.back):
		b.leaveDirPrompt()
		b.errMsg = mo.None[string]()
	case key.Matches(msg, b.keymap.confirm):
		b.confirmDownloadDir()
	default:
		var cmd tea.Cmd
		b.inputC, cmd = b.inputC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) updateViewingItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.back):
		b.errMsg = mo.None[string]()
		b.setState(browsingState)
	case key.Matches(msg, b.keymap.quit):
		return b, b.quit()
	case key.Matches(msg, b.keymap.up):
		moveSelection(&b.filesC, -1)
	case key.Matches(msg, b.keymap.down):
		moveSelection(&b.filesC, 1)
	case key.Matches(msg, b.keymap.openURL):
		b.openItemPage()
	}

	return b, nil
}

func (b *statefulBubble) updateDownloading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.back):
		b.setState(browsingState)
	case key.Matches(msg, b.keymap.quit):
		return b, b.quit()
	}

	return b, nil
}
