// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/style"
)

// listItem implements the list.Item interface for collection entries and item files.
type listItem struct {
	internal interface{}
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case archive.CollectionEntry:
		return e.Identifier
	case archive.FileEntry:
		return e.Name
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case archive.FileEntry:
		var parts []string
		if format, ok := e.Format.Get(); ok {
			parts = append(parts, format)
		}
		if e.Size.IsPresent() {
			parts = append(parts, download.HumanSize(e.Size))
		}
		if source, ok := e.Source.Get(); ok && source != "original" {
			parts = append(parts, style.Faint(source))
		}
		return strings.Join(parts, " • ")
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case archive.CollectionEntry:
		return e.Identifier
	case archive.FileEntry:
		return e.Name
	default:
		return ""
	}
}
