// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archiver-cli/archiver/color"
	"github.com/archiver-cli/archiver/constant"
	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/icon"
	"github.com/archiver-cli/archiver/style"
	"github.com/archiver-cli/archiver/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
)

const (
	browsingHeaderHeight = 6
	itemHeaderHeight     = 14
	helpHeight           = 2
	descriptionLines     = 3
	plannedTargetsShown  = 8
	recentShown          = 5
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	markupTag    = regexp.MustCompile(`<[^>]*>`)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case browsingState:
		output = b.viewBrowsing()
	case askingDownloadDirState:
		output = b.viewAskingDownloadDir()
	case viewingItemState:
		output = b.viewViewingItem()
	case downloadingState:
		output = b.viewDownloading()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) statusLine() string {
	if msg, ok := b.errMsg.Get(); ok {
		return style.ErrorText(icon.Get(icon.Fail) + " " + msg)
	}
	return ""
}

func (b *statefulBubble) viewBrowsing() string {
	lines := []string{
		style.Title(constant.Archiver),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Hint(fmt.Sprintf("→ %s", suggestion)))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, b.statusLine(), "")

	switch {
	case b.collectionReq.loading:
		lines = append(lines, fmt.Sprintf("%s Searching %s...", b.spinnerC.View(), style.Fg(color.Purple)(b.collection)))
	case len(b.itemsC.Items()) > 0:
		lines = append(lines, b.itemsC.View())
	default:
		if len(b.settings.FavoriteCollections) > 0 {
			lines = append(lines, style.Faint(fmt.Sprintf("%s Favorites: %s", icon.Get(icon.Favorite), strings.Join(b.settings.FavoriteCollections, ", "))))
		}
		if len(b.recent) > 0 {
			lines = append(lines, "", style.Faint("Recently viewed"))
			for _, item := range b.recent {
				lines = append(lines, style.Faint(fmt.Sprintf("  %s %s", item.Identifier, style.Fg(color.Gray)(item.Collection))))
			}
		}
	}

	if b.downloadReq.loading {
		lines = append(lines, "", fmt.Sprintf("%s Preparing download...", b.spinnerC.View()))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewAskingDownloadDir() string {
	lines := []string{
		style.Title("Download directory"),
		"",
		"Where should downloads be saved?",
		"",
		b.inputC.View(),
		"",
		b.statusLine(),
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewViewingItem() string {
	if b.detailsReq.loading {
		return b.renderLines(true, []string{
			style.Title(b.viewing),
			"",
			fmt.Sprintf("%s Fetching metadata...", b.spinnerC.View()),
		})
	}

	details := b.details
	if details == nil {
		return b.renderLines(true, []string{
			style.Title(b.viewing),
			"",
			b.statusLine(),
		})
	}

	lines := []string{
		style.Title(details.DisplayTitle()),
		style.Faint(details.Identifier),
		"",
	}

	field := func(name string, value string) {
		lines = append(lines, fmt.Sprintf("%s %s", style.Fg(color.Gray)(name+":"), value))
	}

	if creator, ok := details.Creator.Get(); ok {
		field("Creator", creator)
	}
	if date, ok := details.Date.Get(); ok {
		field("Date", date)
	}
	if mediaType, ok := details.MediaType.Get(); ok {
		field("Media type", mediaType)
	}
	if uploader, ok := details.Uploader.Get(); ok {
		field("Uploader", uploader)
	}
	if len(details.Collections) > 0 {
		field("Collections", strings.Join(details.Collections, ", "))
	}
	field("Thumbnail", b.fetcher.ThumbnailURL(details.Identifier))

	if description, ok := details.Description.Get(); ok {
		lines = append(lines, "")
		lines = append(lines, b.wrapDescription(description)...)
	}

	lines = append(lines, b.statusLine(), "")

	if len(b.filesC.Items()) > 0 {
		lines = append(lines, b.filesC.View())
	} else {
		lines = append(lines, style.Faint("No files"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) wrapDescription(description string) []string {
	plain := strings.Join(strings.Fields(markupTag.ReplaceAllString(description, " ")), " ")
	width := util.Max(b.width, 20)

	wrapped := strings.Split(wordwrap.String(plain, width), "\n")
	if len(wrapped) > descriptionLines {
		wrapped = wrapped[:descriptionLines]
		wrapped[descriptionLines-1] = truncate.StringWithTail(wrapped[descriptionLines-1], uint(width-1), "…")
	}

	return lo.Map(wrapped, func(line string, _ int) string {
		return style.Italic(line)
	})
}

func (b *statefulBubble) viewDownloading() string {
	handle := b.download
	if handle == nil {
		return b.renderLines(true, []string{style.Title("Download"), "", b.statusLine()})
	}

	lines := []string{
		style.Title("Download"),
		"",
		fmt.Sprintf("%s %s", icon.Get(icon.Download), style.Fg(color.Purple)(handle.Identifier)),
		fmt.Sprintf("%s %s", style.Fg(color.Gray)("Into:"), handle.Directory),
		fmt.Sprintf("%s %s", style.Fg(color.Gray)("Mode:"), handle.Mode),
		fmt.Sprintf("%s %s", style.Fg(color.Gray)("Planned:"), handle.Summary()),
		"",
	}

	for _, target := range lo.Slice(handle.Targets, 0, plannedTargetsShown) {
		size := "?"
		if n, ok := target.Size.Get(); ok {
			size = download.FormatBytes(n)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", icon.Get(icon.File), target.Name, style.Faint(size)))
	}

	if rest := len(handle.Targets) - plannedTargetsShown; rest > 0 {
		lines = append(lines, style.Faint(fmt.Sprintf("and %s more", util.Quantify(rest, "file", "files"))))
	}

	if earlier := b.earlierDownloads(); len(earlier) > 0 {
		lines = append(lines, "", style.Faint("Planned earlier"))
		for _, h := range earlier {
			lines = append(lines, style.Faint(fmt.Sprintf("  %s %s", h.Identifier, h.Summary())))
		}
	}

	lines = append(lines, "", style.Faint("Transfers are not performed yet, the plan is logged"))
	return b.renderLines(true, lines)
}

// earlierDownloads lists the other downloads of this session, newest first.
func (b *statefulBubble) earlierDownloads() []*download.Handle {
	lister, ok := b.starter.(handleLister)
	if !ok {
		return nil
	}

	handles := lister.Handles()
	earlier := make([]*download.Handle, 0, recentShown)
	for i := len(handles) - 1; i >= 0 && len(earlier) < recentShown; i-- {
		if handles[i].ID != b.download.ID {
			earlier = append(earlier, handles[i])
		}
	}
	return earlier
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
