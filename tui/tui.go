// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"

	"github.com/archiver-cli/archiver/download"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/settings"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the collaborators and runtime configuration of the terminal user interface.
type Options struct {
	Fetcher Fetcher
	Store   settings.Store
	Starter download.Starter
	// Collection is searched on start when not empty.
	Collection string
}

// Run executes the interface until the user quits. Any failure of the program loop,
// including terminal input delivery, is returned.
func Run(ctx context.Context, options *Options) error {
	if options.Fetcher == nil || options.Store == nil || options.Starter == nil {
		return errors.New("tui: fetcher, settings store and download starter are required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble, err := newBubble(ctx, options)
	if err != nil {
		return err
	}

	log.Info("starting interface")
	_, err = tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
