// Package archive implements the client for the remote media archive: bulk collection search,
// item metadata retrieval, normalization of the archive's loosely shaped JSON and classification of failures.
package archive

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// CollectionEntry is one item identifier returned by a collection search.
type CollectionEntry struct {
	Identifier string `json:"identifier"`
}

func (e CollectionEntry) String() string {
	return e.Identifier
}

// FileEntry describes a single file of an item. Name is always populated.
type FileEntry struct {
	Name   string            `json:"name"`
	Source mo.Option[string] `json:"source"`
	Format mo.Option[string] `json:"format"`
	Size   mo.Option[string] `json:"size"`
	MD5    mo.Option[string] `json:"md5"`
}

// ItemDetails is the normalized metadata and file list of an item.
type ItemDetails struct {
	Identifier      string            `json:"identifier"`
	Title           mo.Option[string] `json:"title"`
	Creator         mo.Option[string] `json:"creator"`
	Description     mo.Option[string] `json:"description"`
	Date            mo.Option[string] `json:"date"`
	Uploader        mo.Option[string] `json:"uploader"`
	MediaType       mo.Option[string] `json:"mediatype"`
	Collections     []string          `json:"collections"`
	Files           []FileEntry       `json:"files"`
	DownloadBaseURL mo.Option[string] `json:"download_base_url"`
}

// DisplayTitle prefers the item title and falls back to its identifier.
func (d *ItemDetails) DisplayTitle() string {
	return d.Title.OrElse(d.Identifier)
}

// FileURL resolves the direct URL of a file, if the item carries a download location.
func (d *ItemDetails) FileURL(f FileEntry) mo.Option[string] {
	base, ok := d.DownloadBaseURL.Get()
	if !ok {
		return mo.None[string]()
	}

	segments := lo.Map(strings.Split(f.Name, "/"), func(s string, _ int) string {
		return url.PathEscape(s)
	})
	return mo.Some(base + "/" + strings.Join(segments, "/"))
}

// FindFile returns the first file whose name satisfies the predicate.
func (d *ItemDetails) FindFile(predicate func(FileEntry) bool) mo.Option[FileEntry] {
	f, ok := lo.Find(d.Files, predicate)
	if !ok {
		return mo.None[FileEntry]()
	}
	return mo.Some(f)
}

// downloadBase joins the host and directory reported by the metadata endpoint.
func downloadBase(server, dir string) mo.Option[string] {
	server = strings.TrimSpace(server)
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if server == "" || dir == "" {
		return mo.None[string]()
	}
	return mo.Some("https://" + server + "/" + dir)
}
