// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/log"
	"github.com/samber/lo"
)

var errNothingToFetch = errors.New("either a collection or an item is required")

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	switch {
	case options.Item != "":
		return runItem(ctx, options)
	case options.Collection != "":
		return runCollection(ctx, options)
	default:
		return errNothingToFetch
	}
}

func runItem(ctx context.Context, options *Options) error {
	details, err := options.Fetcher.FetchItemDetails(ctx, options.Item)
	if err != nil {
		return err
	}

	items := []*Item{{Identifier: details.Identifier, Details: details}}
	if options.Json {
		return writeJson(options.Out, options.Item, 1, items)
	}
	return writeFiles(options.Out, details)
}

func runCollection(ctx context.Context, options *Options) error {
	entries, total, err := options.Fetcher.FetchCollection(ctx, options.Collection)
	if err != nil {
		return err
	}

	if picker, ok := options.Picker.Get(); ok {
		entries = picker(entries)
	}

	items := lo.Map(entries, func(e archive.CollectionEntry, _ int) *Item {
		return &Item{Identifier: e.Identifier}
	})

	if options.Details {
		for _, item := range items {
			details, err := options.Fetcher.FetchItemDetails(ctx, item.Identifier)
			if err != nil {
				log.Warnf("details of %s: %v", item.Identifier, err)
				if archive.KindOf(err) == archive.RateLimitExceeded {
					log.Warn("rate limited, skipping the remaining details")
					break
				}
				continue
			}
			item.Details = details
		}
	}

	if options.Json {
		return writeJson(options.Out, options.Collection, total, items)
	}

	for _, item := range items {
		if item.Details != nil {
			if err := writeFiles(options.Out, item.Details); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(options.Out, item.Identifier); err != nil {
			return err
		}
	}

	return nil
}

// writeFiles prints the direct URL of every file, or its name when the item has no download location.
func writeFiles(out io.Writer, details *archive.ItemDetails) error {
	for _, f := range details.Files {
		line := details.FileURL(f).OrElse(f.Name)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJson(out io.Writer, query string, total int, items []*Item) error {
	data, err := asJson(query, total, items)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
