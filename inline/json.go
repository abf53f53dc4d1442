// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/archiver-cli/archiver/archive"
)

type Item struct {
	Identifier string               `json:"identifier"`
	Details    *archive.ItemDetails `json:"details,omitempty"`
}

type Output struct {
	Query string  `json:"query"`
	Total int     `json:"total"`
	Items []*Item `json:"items"`
}

func asJson(query string, total int, items []*Item) ([]byte, error) {
	if items == nil {
		items = []*Item{}
	}

	return json.Marshal(&Output{
		Query: query,
		Total: total,
		Items: items,
	})
}
