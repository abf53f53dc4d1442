// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	browsingState state = iota
	askingDownloadDirState
	viewingItemState
	downloadingState
)

func (s state) String() string {
	switch s {
	case browsingState:
		return "browsing"
	case askingDownloadDirState:
		return "asking download directory"
	case viewingItemState:
		return "viewing item"
	case downloadingState:
		return "downloading"
	default:
		return "unknown"
	}
}
