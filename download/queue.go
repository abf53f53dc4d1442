package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/settings"
	"github.com/archiver-cli/archiver/util"
	"github.com/dustin/go-humanize"
	"github.com/rs/xid"
)

// Request asks for an item to be downloaded into Directory.
type Request struct {
	Identifier string
	Directory  string
	Mode       settings.DownloadMode
}

// Handle identifies a started download.
type Handle struct {
	ID         string
	Identifier string
	Directory  string
	Mode       settings.DownloadMode
	Targets    []Target
	StartedAt  time.Time
}

// Summary describes the planned transfer, e.g. "3 files, 12 MB".
func (h *Handle) Summary() string {
	files := util.Quantify(len(h.Targets), "file", "files")
	total := TotalSize(h.Targets)
	if total == 0 {
		return files
	}
	return fmt.Sprintf("%s, %s", files, humanize.Bytes(total))
}

// Starter starts downloads.
type Starter interface {
	Start(ctx context.Context, req Request) (*Handle, error)
}

// DetailsFetcher retrieves item metadata. *archive.Client satisfies it.
type DetailsFetcher interface {
	FetchItemDetails(ctx context.Context, identifier string) (*archive.ItemDetails, error)
}

// Queue resolves download requests into planned targets and keeps track of them.
// No bytes are transferred.
type Queue struct {
	fetcher DetailsFetcher

	mu      sync.Mutex
	handles []*Handle
}

func NewQueue(fetcher DetailsFetcher) *Queue {
	return &Queue{fetcher: fetcher}
}

// Start fetches the item metadata and plans the transfer.
func (q *Queue) Start(ctx context.Context, req Request) (*Handle, error) {
	if strings.TrimSpace(req.Identifier) == "" {
		return nil, errors.New("no item to download")
	}
	if strings.TrimSpace(req.Directory) == "" {
		return nil, errors.New("no download directory")
	}

	details, err := q.fetcher.FetchItemDetails(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	targets, err := Plan(details, req.Directory, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Identifier, err)
	}

	handle := &Handle{
		ID:         xid.New().String(),
		Identifier: req.Identifier,
		Directory:  req.Directory,
		Mode:       req.Mode,
		Targets:    targets,
		StartedAt:  time.Now(),
	}

	q.mu.Lock()
	q.handles = append(q.handles, handle)
	q.mu.Unlock()

	log.WithFields(log.Fields{
		"id":         handle.ID,
		"identifier": req.Identifier,
		"mode":       req.Mode,
	}).Infof("download planned: %s into %s", handle.Summary(), req.Directory)

	return handle, nil
}

// Handles returns the downloads started so far, oldest first.
func (q *Queue) Handles() []*Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]*Handle(nil), q.handles...)
}
