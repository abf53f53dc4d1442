// Package settings persists the user preferences that change at runtime, such as the download directory and favorite collections.
// Unlike config, which is edited by hand or with `archiver config`, settings are written back on every confirmed change.
package settings

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DownloadMode selects what is fetched when an item is downloaded.
type DownloadMode string

const (
	// Direct downloads every file of the item.
	Direct DownloadMode = "direct"
	// TorrentOnly downloads the torrent file of the item only.
	TorrentOnly DownloadMode = "torrent"
)

// ParseDownloadMode accepts the persisted spelling and a couple of aliases.
func ParseDownloadMode(s string) (DownloadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct", "":
		return Direct, nil
	case "torrent", "torrentonly", "torrent_only":
		return TorrentOnly, nil
	default:
		return "", fmt.Errorf("unknown download mode %q", s)
	}
}

func (m DownloadMode) String() string {
	return string(m)
}

type Settings struct {
	DownloadDirectory        mo.Option[string]
	DownloadMode             DownloadMode
	MaxConcurrentDownloads   int
	FavoriteCollections      []string
	MaxConcurrentCollections int
}

// Default returns the settings used when nothing was saved yet.
func Default() Settings {
	return Settings{
		DownloadDirectory:        mo.None[string](),
		DownloadMode:             Direct,
		MaxConcurrentDownloads:   4,
		FavoriteCollections:      []string{},
		MaxConcurrentCollections: 1,
	}
}

// WithDownloadDirectory returns a copy with the directory set. Blank input clears it.
func (s Settings) WithDownloadDirectory(dir string) Settings {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		s.DownloadDirectory = mo.None[string]()
	} else {
		s.DownloadDirectory = mo.Some(dir)
	}
	return s
}

func (s Settings) IsFavorite(collection string) bool {
	return lo.Contains(s.FavoriteCollections, collection)
}

// ToggleFavorite returns a copy with the collection added to or removed from the favorites,
// and whether it is a favorite afterwards.
func (s Settings) ToggleFavorite(collection string) (Settings, bool) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return s, false
	}

	if s.IsFavorite(collection) {
		s.FavoriteCollections = lo.Without(s.FavoriteCollections, collection)
		return s, false
	}

	favorites := make([]string, 0, len(s.FavoriteCollections)+1)
	favorites = append(favorites, s.FavoriteCollections...)
	s.FavoriteCollections = append(favorites, collection)
	return s, true
}
