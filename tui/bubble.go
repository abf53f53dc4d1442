// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/history"
	"github.com/archiver-cli/archiver/internal/ui"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/open"
	"github.com/archiver-cli/archiver/settings"
	"github.com/archiver-cli/archiver/style"
	"github.com/archiver-cli/archiver/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	searchPlaceholder = "Collection name, e.g. nasa"
	dirPlaceholder    = "Download directory, e.g. ~/Music"
	defaultTick       = 250 * time.Millisecond
)

// Fetcher is the archive client as seen by the interface. *archive.Client satisfies it.
type Fetcher interface {
	FetchCollection(ctx context.Context, name string) ([]archive.CollectionEntry, int, error)
	FetchItemDetails(ctx context.Context, identifier string) (*archive.ItemDetails, error)
	DetailsURL(identifier string) string
	ThumbnailURL(identifier string) string
}

// handleLister is implemented by starters that remember what they started, like *download.Queue.
type handleLister interface {
	Handles() []*download.Handle
}

// requestSlot tracks the latest launched request of one kind.
// Only the result carrying the latest id resolves it; older results are stale.
type requestSlot struct {
	latest  uint64
	loading bool
}

func (s *requestSlot) launch() uint64 {
	s.latest++
	s.loading = true
	return s.latest
}

func (s *requestSlot) resolve(id uint64) bool {
	if id != s.latest || !s.loading {
		return false
	}
	s.loading = false
	return true
}

// statefulBubble is the application state. It is owned by the program loop and only mutated in Update.
type statefulBubble struct {
	state   state
	running bool
	keymap  *statefulKeymap

	ctx      context.Context
	fetcher  Fetcher
	store    settings.Store
	starter  download.Starter
	openURL  func(string) error
	now      func() time.Time
	settings settings.Settings

	// components
	inputC   textinput.Model
	itemsC   list.Model
	filesC   list.Model
	spinnerC spinner.Model
	helpC    help.Model
	notifier *ui.Model

	collection  string
	total       int
	viewing     string
	details     *archive.ItemDetails
	download    *download.Handle
	searchDraft string
	recent      []*history.ViewedItem

	collectionReq requestSlot
	detailsReq    requestSlot
	downloadReq   requestSlot

	errMsg           mo.Option[string]
	searchSuggestion mo.Option[string]
	initialSearch    string

	tickInterval time.Duration
	nextTick     time.Time

	width, height int
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) loading() bool {
	return b.collectionReq.loading || b.detailsReq.loading || b.downloadReq.loading
}

func (b *statefulBubble) setError(msg string) {
	b.errMsg = mo.Some(msg)
}

func (b *statefulBubble) notify(msg string) {
	b.notifier.Notify(msg, b.now())
}

// errorMessage converts an error into a status line. Fetch failures never expose their cause.
func errorMessage(err error) string {
	var fetchErr *archive.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message()
	}
	return util.Capitalize(err.Error())
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
	b.inputC.Width = util.Max(b.width-lipgloss.Width(b.inputC.Prompt)-1, 10)

	b.itemsC.SetSize(b.width, util.Max(b.height-browsingHeaderHeight-helpHeight, 1))
	b.filesC.SetSize(b.width, util.Max(b.height-itemHeaderHeight-helpHeight, 1))
}

func newBubble(ctx context.Context, options *Options) (*statefulBubble, error) {
	saved, err := options.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		running:       true,
		keymap:        keymap,
		ctx:           ctx,
		fetcher:       options.Fetcher,
		store:         options.Store,
		starter:       options.Starter,
		openURL:       open.Start,
		now:           time.Now,
		settings:      saved,
		notifier:      ui.New(ui.DefaultLifetime),
		initialSearch: options.Collection,
		tickInterval:  time.Duration(viper.GetInt(key.TUITickIntervalMillis)) * time.Millisecond,
	}

	if bubble.tickInterval <= 0 {
		bubble.tickInterval = defaultTick
	}

	makeList := func(title string, description bool) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)
		listC.SetShowHelp(false)
		listC.SetShowStatusBar(false)
		listC.SetShowPagination(false)
		listC.SetFilteringEnabled(false)
		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = searchPlaceholder
	bubble.inputC.CharLimit = 200
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.itemsC = makeList("Items", false)
	bubble.filesC = makeList("Files", true)
	bubble.filesC.Styles.Title = bubble.filesC.Styles.Title.Background(style.Peach)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.loadRecent()
	bubble.setState(browsingState)
	bubble.inputC.Focus()

	return &bubble, nil
}
