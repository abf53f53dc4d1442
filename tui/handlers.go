// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/history"
	"github.com/archiver-cli/archiver/icon"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/query"
	"github.com/archiver-cli/archiver/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type tickMsg time.Time

type collectionFetchedMsg struct {
	id      uint64
	name    string
	entries []archive.CollectionEntry
	total   int
	err     error
}

type detailsFetchedMsg struct {
	id         uint64
	identifier string
	details    *archive.ItemDetails
	err        error
}

type downloadStartedMsg struct {
	id     uint64
	handle *download.Handle
	err    error
}

func (b *statefulBubble) fetchCollection(id uint64, name string) tea.Cmd {
	ctx, fetcher := b.ctx, b.fetcher
	return func() tea.Msg {
		entries, total, err := fetcher.FetchCollection(ctx, name)
		return collectionFetchedMsg{id: id, name: name, entries: entries, total: total, err: err}
	}
}

func (b *statefulBubble) fetchDetails(id uint64, identifier string) tea.Cmd {
	ctx, fetcher := b.ctx, b.fetcher
	return func() tea.Msg {
		details, err := fetcher.FetchItemDetails(ctx, identifier)
		return detailsFetchedMsg{id: id, identifier: identifier, details: details, err: err}
	}
}

func (b *statefulBubble) startDownload(id uint64, req download.Request) tea.Cmd {
	ctx, starter := b.ctx, b.starter
	return func() tea.Msg {
		handle, err := starter.Start(ctx, req)
		return downloadStartedMsg{id: id, handle: handle, err: err}
	}
}

// scheduleTick waits for the remaining time until the next period boundary, skipping missed ones.
func (b *statefulBubble) scheduleTick(now time.Time) tea.Cmd {
	if b.nextTick.IsZero() {
		b.nextTick = now
	}
	for !b.nextTick.After(now) {
		b.nextTick = b.nextTick.Add(b.tickInterval)
	}

	return tea.Tick(b.nextTick.Sub(now), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) onTick() tea.Cmd {
	now := b.now()
	b.notifier.Expire(now)
	return b.scheduleTick(now)
}

// startSearch clears the current results and launches a collection fetch for the typed name.
func (b *statefulBubble) startSearch() tea.Cmd {
	name := strings.TrimSpace(b.inputC.Value())
	if name == "" {
		return nil
	}

	return b.searchCollection(name)
}

// queryEdited reports whether the input holds text that has not been searched yet.
// While it does, q and d are typed into the query instead of acting.
func (b *statefulBubble) queryEdited() bool {
	value := strings.TrimSpace(b.inputC.Value())
	return value != "" && value != b.collection
}

func (b *statefulBubble) searchCollection(name string) tea.Cmd {
	cmd := b.itemsC.SetItems([]list.Item{})
	b.itemsC.ResetSelected()
	b.errMsg = mo.None[string]()
	b.collection = name
	b.total = 0

	id := b.collectionReq.launch()
	log.WithFields(log.Fields{"collection": name, "request": id}).Info("collection search launched")

	return tea.Batch(cmd, b.spinnerC.Tick, b.fetchCollection(id, name))
}

func (b *statefulBubble) applyCollection(msg collectionFetchedMsg) tea.Cmd {
	if !b.collectionReq.resolve(msg.id) {
		log.WithFields(log.Fields{"collection": msg.name, "request": msg.id}).Debug("discarding stale collection result")
		return nil
	}

	if msg.err != nil {
		b.setError(errorMessage(msg.err))
		return b.itemsC.SetItems([]list.Item{})
	}

	items := lo.Map(msg.entries, func(e archive.CollectionEntry, _ int) list.Item {
		return &listItem{internal: e}
	})

	cmd := b.itemsC.SetItems(items)
	b.itemsC.ResetSelected()
	b.total = msg.total
	b.itemsC.Title = fmt.Sprintf("%s • %s", msg.name, util.Quantify(msg.total, "item", "items"))

	if err := query.Remember(msg.name, 1); err != nil {
		log.Warnf("remember %q: %v", msg.name, err)
	}

	b.notify(fmt.Sprintf("%s Found %s", icon.Get(icon.Search), util.Quantify(len(items), "item", "items")))
	return cmd
}

func (b *statefulBubble) selectedEntry() mo.Option[archive.CollectionEntry] {
	item, ok := b.itemsC.SelectedItem().(*listItem)
	if !ok {
		return mo.None[archive.CollectionEntry]()
	}

	entry, ok := item.internal.(archive.CollectionEntry)
	if !ok {
		return mo.None[archive.CollectionEntry]()
	}
	return mo.Some(entry)
}

// viewSelected enters ViewingItem for the highlighted entry and launches its detail fetch.
func (b *statefulBubble) viewSelected() tea.Cmd {
	entry, ok := b.selectedEntry().Get()
	if !ok {
		b.setError("No item selected")
		return nil
	}

	b.errMsg = mo.None[string]()
	b.viewing = entry.Identifier
	b.details = nil
	cmd := b.filesC.SetItems([]list.Item{})
	b.filesC.Title = entry.Identifier

	id := b.detailsReq.launch()
	b.setState(viewingItemState)

	return tea.Batch(cmd, b.spinnerC.Tick, b.fetchDetails(id, entry.Identifier))
}

func (b *statefulBubble) applyDetails(msg detailsFetchedMsg) tea.Cmd {
	if !b.detailsReq.resolve(msg.id) {
		log.WithFields(log.Fields{"identifier": msg.identifier, "request": msg.id}).Debug("discarding stale item details")
		return nil
	}

	if msg.err != nil {
		b.setError(errorMessage(msg.err))
		return nil
	}

	b.details = msg.details
	b.rememberView(msg.details)

	items := lo.Map(msg.details.Files, func(f archive.FileEntry, _ int) list.Item {
		return &listItem{internal: f}
	})

	cmd := b.filesC.SetItems(items)
	b.filesC.ResetSelected()
	b.filesC.Title = fmt.Sprintf("Files • %d", len(items))
	return cmd
}

// rememberView records the viewed item and refreshes the recent list shown while browsing.
func (b *statefulBubble) rememberView(details *archive.ItemDetails) {
	err := history.Save(history.ViewedItem{
		Identifier: details.Identifier,
		Title:      details.DisplayTitle(),
		Collection: b.collection,
		ViewedAt:   b.now(),
	})
	if err != nil {
		log.Warnf("save history of %s: %v", details.Identifier, err)
		return
	}
	b.loadRecent()
}

func (b *statefulBubble) loadRecent() {
	recent, err := history.Recent(recentShown)
	if err != nil {
		log.Warnf("load history: %v", err)
		return
	}
	b.recent = recent
}

// downloadSelected starts a download of the highlighted entry, asking for a directory first when none is set.
func (b *statefulBubble) downloadSelected() tea.Cmd {
	entry, ok := b.selectedEntry().Get()
	if !ok {
		b.setError("Select an item to download first")
		return nil
	}

	dir, ok := b.settings.DownloadDirectory.Get()
	if !ok {
		b.enterDirPrompt()
		return nil
	}

	b.errMsg = mo.None[string]()
	id := b.downloadReq.launch()
	req := download.Request{
		Identifier: entry.Identifier,
		Directory:  dir,
		Mode:       b.settings.DownloadMode,
	}

	log.WithFields(log.Fields{"identifier": entry.Identifier, "request": id}).Info("download requested")
	return tea.Batch(b.spinnerC.Tick, b.startDownload(id, req))
}

func (b *statefulBubble) applyDownload(msg downloadStartedMsg) tea.Cmd {
	if !b.downloadReq.resolve(msg.id) {
		log.WithFields(log.Fields{"request": msg.id}).Debug("discarding stale download result")
		return nil
	}

	if msg.err != nil {
		b.setError(errorMessage(msg.err))
		return nil
	}

	b.download = msg.handle
	b.errMsg = mo.None[string]()

	// the user may have moved on while the plan was resolving
	if b.state != browsingState {
		b.notify(fmt.Sprintf("%s Download of %s planned: %s", icon.Get(icon.Download), msg.handle.Identifier, msg.handle.Summary()))
		return nil
	}

	b.setState(downloadingState)
	return nil
}

func (b *statefulBubble) enterDirPrompt() {
	b.searchDraft = b.inputC.Value()
	b.inputC.Reset()
	b.inputC.Placeholder = dirPlaceholder
	b.searchSuggestion = mo.None[string]()
	b.errMsg = mo.None[string]()
	b.setState(askingDownloadDirState)
}

func (b *statefulBubble) leaveDirPrompt() {
	b.inputC.SetValue(b.searchDraft)
	b.inputC.CursorEnd()
	b.inputC.Placeholder = searchPlaceholder
	b.searchDraft = ""
	b.setState(browsingState)
	b.refreshSuggestion()
}

// confirmDownloadDir persists the typed directory. A failed save keeps the previous settings.
func (b *statefulBubble) confirmDownloadDir() {
	dir := expandHome(strings.TrimSpace(b.inputC.Value()))
	if dir == "" {
		b.setError("Download directory cannot be empty")
		return
	}

	previous := b.settings
	b.settings = b.settings.WithDownloadDirectory(dir)
	b.leaveDirPrompt()

	if err := b.store.Save(b.settings); err != nil {
		b.settings = previous
		log.Errorf("save download directory: %v", err)
		b.setError(fmt.Sprintf("Could not save download directory: %v", err))
		return
	}

	b.errMsg = mo.None[string]()
	b.notify(fmt.Sprintf("%s Downloads go to %s", icon.Get(icon.Folder), dir))
}

// toggleFavorite adds or removes the typed collection from the favorites.
func (b *statefulBubble) toggleFavorite() {
	name := strings.TrimSpace(b.inputC.Value())
	if name == "" {
		b.setError("Type a collection name to favorite it")
		return
	}

	previous := b.settings
	next, on := b.settings.ToggleFavorite(name)
	b.settings = next

	if err := b.store.Save(b.settings); err != nil {
		b.settings = previous
		log.Errorf("save favorites: %v", err)
		b.setError(fmt.Sprintf("Could not save favorites: %v", err))
		return
	}

	b.errMsg = mo.None[string]()
	if on {
		b.notify(fmt.Sprintf("%s %s added to favorites", icon.Get(icon.Favorite), name))
	} else {
		b.notify(fmt.Sprintf("%s removed from favorites", name))
	}
}

// refreshSuggestion completes the typed text from search history, then from favorites.
func (b *statefulBubble) refreshSuggestion() {
	typed := strings.TrimSpace(b.inputC.Value())
	if typed == "" {
		b.searchSuggestion = mo.None[string]()
		return
	}

	if s, ok := query.Complete(typed).Get(); ok {
		b.searchSuggestion = mo.Some(s)
		return
	}

	favorite, ok := lo.Find(b.settings.FavoriteCollections, func(f string) bool {
		return len(f) > len(typed) && strings.HasPrefix(f, typed)
	})
	if ok {
		b.searchSuggestion = mo.Some(favorite)
	} else {
		b.searchSuggestion = mo.None[string]()
	}
}

func (b *statefulBubble) canAcceptSuggestion() bool {
	return b.searchSuggestion.IsPresent() && b.inputC.Position() == len([]rune(b.inputC.Value()))
}

func (b *statefulBubble) acceptSuggestion() {
	b.inputC.SetValue(b.searchSuggestion.MustGet())
	b.inputC.CursorEnd()
	b.searchSuggestion = mo.None[string]()
}

func (b *statefulBubble) openItemPage() {
	if b.viewing == "" {
		return
	}

	url := b.fetcher.DetailsURL(b.viewing)
	if err := b.openURL(url); err != nil {
		log.Errorf("open %s: %v", url, err)
		b.setError(fmt.Sprintf("Could not open %s", url))
		return
	}

	b.notify(fmt.Sprintf("%s Opened %s", icon.Get(icon.Link), url))
}

// wrapIndex moves current by delta on a ring of n positions.
func wrapIndex(current, delta, n int) int {
	return ((current+delta)%n + n) % n
}

func moveSelection(l *list.Model, delta int) {
	n := len(l.Items())
	if n == 0 {
		return
	}
	l.Select(wrapIndex(l.Index(), delta, n))
}

func (b *statefulBubble) quit() tea.Cmd {
	b.running = false
	log.Info("quitting")
	return tea.Quit
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
