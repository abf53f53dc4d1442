package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archiver-cli/archiver/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var jsonNull = []byte("null")

// searchResponse is the bulk search payload once the callback wrapper is removed.
type searchResponse struct {
	Response *struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	Identifier flexString `json:"identifier"`
}

// metadataResponse is the raw body of the metadata endpoint. Absent objects stay nil.
type metadataResponse struct {
	Metadata *itemMetadata `json:"metadata"`
	Files    *fileSet      `json:"files"`
	Server   flexString    `json:"server"`
	Dir      flexString    `json:"dir"`
}

type itemMetadata struct {
	Identifier  stringOrList `json:"identifier"`
	Title       stringOrList `json:"title"`
	Creator     stringOrList `json:"creator"`
	Description stringOrList `json:"description"`
	Date        stringOrList `json:"date"`
	Uploader    stringOrList `json:"uploader"`
	MediaType   stringOrList `json:"mediatype"`
	Collection  stringOrList `json:"collection"`
}

func (r *metadataResponse) normalize(identifier string) *ItemDetails {
	details := &ItemDetails{
		Identifier:      identifier,
		DownloadBaseURL: downloadBase(string(r.Server), string(r.Dir)),
	}

	if m := r.Metadata; m != nil {
		if id, ok := m.Identifier.first().Get(); ok {
			details.Identifier = id
		}
		details.Title = m.Title.first()
		details.Creator = m.Creator.first()
		details.Description = m.Description.first()
		details.Date = m.Date.first()
		details.Uploader = m.Uploader.first()
		details.MediaType = m.MediaType.first()
		details.Collections = m.Collection.values()
	}

	if r.Files != nil {
		details.Files = *r.Files
	}

	return details
}

// stringOrList accepts a string, a list of strings, a number or null.
// Shapes it does not understand decode to an empty value.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = nil

	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = stringOrList{v}
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for _, r := range raw {
			var v flexString
			if err := json.Unmarshal(r, &v); err == nil && v != "" {
				*s = append(*s, string(v))
			}
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*s = stringOrList{n.String()}
		}
	}

	return nil
}

func (s stringOrList) first() mo.Option[string] {
	v, ok := lo.Find(s, func(v string) bool {
		return strings.TrimSpace(v) != ""
	})
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(v)
}

func (s stringOrList) values() []string {
	return lo.Filter(s, func(v string, _ int) bool {
		return strings.TrimSpace(v) != ""
	})
}

// flexString accepts either a JSON string or a number. Anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""

	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
	}
	return nil
}

func (f flexString) option() mo.Option[string] {
	if strings.TrimSpace(string(f)) == "" {
		return mo.None[string]()
	}
	return mo.Some(string(f))
}

type fileRecord struct {
	Name   flexString `json:"name"`
	Source flexString `json:"source"`
	Format flexString `json:"format"`
	Size   flexString `json:"size"`
	MD5    flexString `json:"md5"`
}

func (r fileRecord) entry(name string) FileEntry {
	return FileEntry{
		Name:   name,
		Source: r.Source.option(),
		Format: r.Format.option(),
		Size:   r.Size.option(),
		MD5:    r.MD5.option(),
	}
}

// fileSet decodes the files of an item from either of the two shapes the archive emits:
// an array of objects carrying a name, or an object keyed by path with a single leading separator.
// Malformed entries are dropped and the rest are kept in wire order.
type fileSet []FileEntry

func (f *fileSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = fileSet{}

	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '[':
		return f.fromArray(data)
	case '{':
		return f.fromObject(data)
	default:
		log.Warnf("ignoring files of unexpected shape %q", truncate(data, 32))
		return nil
	}
}

func (f *fileSet) fromArray(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for i, r := range raw {
		var rec fileRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			log.Debugf("dropping malformed file entry #%d: %v", i, err)
			continue
		}

		name := strings.TrimSpace(string(rec.Name))
		if name == "" {
			log.Debugf("dropping file entry #%d without a name", i)
			continue
		}

		*f = append(*f, rec.entry(name))
	}

	return nil
}

func (f *fileSet) fromObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	// opening brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		path, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected files key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var rec fileRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Debugf("dropping malformed file entry %q: %v", path, err)
			continue
		}

		name := strings.TrimPrefix(path, "/")
		if name == "" {
			continue
		}

		*f = append(*f, rec.entry(name))
	}

	_, err := dec.Token()
	return err
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
