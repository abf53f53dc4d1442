// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Fetcher is the archive client used by inline mode. *archive.Client satisfies it.
type Fetcher interface {
	FetchCollection(ctx context.Context, name string) ([]archive.CollectionEntry, int, error)
	FetchItemDetails(ctx context.Context, identifier string) (*archive.ItemDetails, error)
}

// Picker narrows collection entries down to the ones to report.
type Picker func([]archive.CollectionEntry) []archive.CollectionEntry

type Options struct {
	Out     io.Writer
	Fetcher Fetcher
	// Collection lists the identifiers of a collection. Ignored when Item is set.
	Collection string
	// Item reports the files of a single item.
	Item    string
	Json    bool
	Details bool
	Picker  mo.Option[Picker]
}

// ParsePicker parses an entry selector.
// Format: "first", "last", "all", "5", "1-5", "@substring@"
func ParsePicker(description string) (Picker, error) {
	switch description {
	case "first":
		return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
			return lo.Slice(entries, 0, 1)
		}, nil
	case "last":
		return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
			return lo.Slice(entries, len(entries)-1, len(entries))
		}, nil
	case "all":
		return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
			return entries
		}, nil
	}

	// Range: "1-5", inclusive
	if from, to, found := strings.Cut(description, "-"); found {
		start, err1 := strconv.ParseUint(from, 10, 32)
		end, err2 := strconv.ParseUint(to, 10, 32)
		if err1 == nil && err2 == nil {
			return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
				n := uint64(len(entries))
				lower := util.Min(start, n)
				upper := util.Min(end+1, n)
				if lower > upper {
					return []archive.CollectionEntry{}
				}
				return entries[lower:upper]
			}, nil
		}
	}

	// Substring: "@text@"
	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
			return lo.Filter(entries, func(e archive.CollectionEntry, _ int) bool {
				return strings.Contains(strings.ToLower(e.Identifier), sub)
			})
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 32); err == nil {
		return func(entries []archive.CollectionEntry) []archive.CollectionEntry {
			if uint64(len(entries)) <= idx {
				return []archive.CollectionEntry{}
			}
			return entries[idx : idx+1]
		}, nil
	}

	return nil, fmt.Errorf("invalid selector: %s", description)
}
