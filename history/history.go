// Package history keeps track of the items viewed in the interface.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// ViewedItem is a single history record.
type ViewedItem struct {
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Collection string    `json:"collection"`
	Views      int       `json:"views"`
	ViewedAt   time.Time `json:"viewed_at"`
}

var cacher = gache.New[map[string]*ViewedItem](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record keyed by item identifier.
func Get() (map[string]*ViewedItem, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*ViewedItem), nil
	}
	return cached, nil
}

// Save records a view of an item. Empty title or collection keep the previously saved values.
func Save(item ViewedItem) error {
	item.Identifier = strings.TrimSpace(item.Identifier)
	if item.Identifier == "" {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[item.Identifier]; ok {
		item.Views = existing.Views
		item.Title = lo.Ternary(item.Title == "", existing.Title, item.Title)
		item.Collection = lo.Ternary(item.Collection == "", existing.Collection, item.Collection)
	}
	item.Views++
	if item.ViewedAt.IsZero() {
		item.ViewedAt = time.Now()
	}

	saved[item.Identifier] = &item
	return cacher.Set(saved)
}

// Recent returns at most n records, most recently viewed first. n <= 0 returns all of them.
func Recent(n int) ([]*ViewedItem, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	items := lo.Values(saved)
	sort.Slice(items, func(i, j int) bool {
		if items[i].ViewedAt.Equal(items[j].ViewedAt) {
			return items[i].Identifier < items[j].Identifier
		}
		return items[i].ViewedAt.After(items[j].ViewedAt)
	})

	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// Remove deletes the record of an item.
func Remove(identifier string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, identifier)
	return cacher.Set(saved)
}
