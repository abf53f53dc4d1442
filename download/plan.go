// Package download plans and starts item downloads.
// Transfers themselves are not performed yet: starting a download resolves what would be fetched and where.
package download

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/settings"
	"github.com/archiver-cli/archiver/util"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	ErrNoLocation = errors.New("item has no download location")
	ErrNoFiles    = errors.New("item has no files")
	ErrNoTorrent  = errors.New("item has no torrent file")
)

const torrentSuffix = "_archive.torrent"

// Target is a single file to fetch.
type Target struct {
	Name string
	URL  string
	Path string
	Size mo.Option[uint64]
}

// Plan resolves the files of an item to fetch in the given mode and their destination under dir.
func Plan(details *archive.ItemDetails, dir string, mode settings.DownloadMode) ([]Target, error) {
	if details.DownloadBaseURL.IsAbsent() {
		return nil, ErrNoLocation
	}

	files := details.Files
	if mode == settings.TorrentOnly {
		torrent, ok := details.FindFile(isTorrent).Get()
		if !ok {
			return nil, ErrNoTorrent
		}
		files = []archive.FileEntry{torrent}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	root := filepath.Join(dir, util.SanitizeFilename(details.Identifier))
	return lo.Map(files, func(f archive.FileEntry, _ int) Target {
		return Target{
			Name: f.Name,
			URL:  details.FileURL(f).MustGet(),
			Path: filepath.Join(root, filepath.FromSlash(f.Name)),
			Size: parseSize(f.Size),
		}
	}), nil
}

func isTorrent(f archive.FileEntry) bool {
	return strings.HasSuffix(f.Name, torrentSuffix) || f.Format.OrEmpty() == "Archive BitTorrent"
}

func parseSize(size mo.Option[string]) mo.Option[uint64] {
	raw, ok := size.Get()
	if !ok {
		return mo.None[uint64]()
	}

	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return mo.None[uint64]()
	}
	return mo.Some(n)
}

// TotalSize sums the known sizes of the targets.
func TotalSize(targets []Target) uint64 {
	return lo.SumBy(targets, func(t Target) uint64 {
		return t.Size.OrEmpty()
	})
}

// HumanSize renders a file size such as "4.1 MB", or "?" when unknown.
func HumanSize(size mo.Option[string]) string {
	n, ok := parseSize(size).Get()
	if !ok {
		return "?"
	}
	return FormatBytes(n)
}

// FormatBytes renders a byte count with SI units.
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}
