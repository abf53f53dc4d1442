package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/archiver-cli/archiver/archive"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubFetcher struct {
	entries []archive.CollectionEntry
	details map[string]*archive.ItemDetails
	limited bool
	asked   []string
}

func (s *stubFetcher) FetchCollection(_ context.Context, name string) ([]archive.CollectionEntry, int, error) {
	if name != "etree" {
		return nil, 0, &archive.FetchError{Kind: archive.NotFound, Target: name}
	}
	return s.entries, len(s.entries) + 10, nil
}

func (s *stubFetcher) FetchItemDetails(_ context.Context, identifier string) (*archive.ItemDetails, error) {
	s.asked = append(s.asked, identifier)
	if s.limited {
		return nil, &archive.FetchError{Kind: archive.RateLimitExceeded, Status: 429, Target: identifier}
	}
	details, ok := s.details[identifier]
	if !ok {
		return nil, &archive.FetchError{Kind: archive.NotFound, Target: identifier}
	}
	return details, nil
}

func newStub() *stubFetcher {
	return &stubFetcher{
		entries: lo.Map([]string{"gd1977", "gd1978", "phish1995"}, func(id string, _ int) archive.CollectionEntry {
			return archive.CollectionEntry{Identifier: id}
		}),
		details: map[string]*archive.ItemDetails{
			"gd1977": {
				Identifier:      "gd1977",
				Title:           mo.Some("Cornell"),
				DownloadBaseURL: mo.Some("https://ia800.example/3/items/gd1977"),
				Files: []archive.FileEntry{
					{Name: "d1t01.flac"},
					{Name: "cover art.jpg"},
				},
			},
			"phish1995": {
				Identifier: "phish1995",
				Files:      []archive.FileEntry{{Name: "set1.mp3"}},
			},
		},
	}
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestRun(t *testing.T) {
	Convey("Given a fetcher", t, func() {
		var buf bytes.Buffer
		stub := newStub()
		options := &Options{Out: &buf, Fetcher: stub}

		Convey("Nothing to fetch is an error", func() {
			So(Run(context.Background(), options), ShouldNotBeNil)
		})

		Convey("A collection lists its identifiers", func() {
			options.Collection = "etree"
			So(Run(context.Background(), options), ShouldBeNil)
			So(lines(&buf), ShouldResemble, []string{"gd1977", "gd1978", "phish1995"})
		})

		Convey("A picker narrows the listing", func() {
			options.Collection = "etree"
			options.Picker = mo.Some(lo.Must(ParsePicker("@gd@")))
			So(Run(context.Background(), options), ShouldBeNil)
			So(lines(&buf), ShouldResemble, []string{"gd1977", "gd1978"})
		})

		Convey("An item lists its file URLs", func() {
			options.Item = "gd1977"
			So(Run(context.Background(), options), ShouldBeNil)
			So(lines(&buf), ShouldResemble, []string{
				"https://ia800.example/3/items/gd1977/d1t01.flac",
				"https://ia800.example/3/items/gd1977/cover%20art.jpg",
			})
		})

		Convey("Files of an item without location are listed by name", func() {
			options.Item = "phish1995"
			So(Run(context.Background(), options), ShouldBeNil)
			So(lines(&buf), ShouldResemble, []string{"set1.mp3"})
		})

		Convey("Fetch errors are returned", func() {
			options.Item = "nope"
			err := Run(context.Background(), options)
			So(archive.KindOf(err), ShouldEqual, archive.NotFound)
		})

		Convey("JSON output carries the total and details", func() {
			options.Collection = "etree"
			options.Json = true
			options.Details = true
			So(Run(context.Background(), options), ShouldBeNil)

			var output struct {
				Query string `json:"query"`
				Total int    `json:"total"`
				Items []struct {
					Identifier string          `json:"identifier"`
					Details    json.RawMessage `json:"details"`
				} `json:"items"`
			}
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "etree")
			So(output.Total, ShouldEqual, 13)
			So(output.Items, ShouldHaveLength, 3)
			So(string(output.Items[0].Details), ShouldContainSubstring, "Cornell")
			So(output.Items[1].Details, ShouldBeNil)
		})

		Convey("Details stop at the first rate limit", func() {
			stub.limited = true
			options.Collection = "etree"
			options.Details = true
			So(Run(context.Background(), options), ShouldBeNil)

			So(stub.asked, ShouldResemble, []string{"gd1977"})
			So(lines(&buf), ShouldResemble, []string{"gd1977", "gd1978", "phish1995"})
		})
	})
}

func TestWriteJson(t *testing.T) {
	Convey("Empty results still produce a list", t, func() {
		var buf bytes.Buffer
		So(writeJson(&buf, "test", 0, nil), ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
		So(output.Query, ShouldEqual, "test")
		So(output.Items, ShouldHaveLength, 0)
		So(buf.String(), ShouldContainSubstring, `"items":[]`)
	})
}

func TestParsePicker(t *testing.T) {
	Convey("Given five entries", t, func() {
		entries := lo.Times(5, func(i int) archive.CollectionEntry {
			return archive.CollectionEntry{Identifier: string(rune('a' + i))}
		})
		ids := func(selector string) []string {
			picker, err := ParsePicker(selector)
			So(err, ShouldBeNil)
			return lo.Map(picker(entries), func(e archive.CollectionEntry, _ int) string {
				return e.Identifier
			})
		}

		So(ids("first"), ShouldResemble, []string{"a"})
		So(ids("last"), ShouldResemble, []string{"e"})
		So(ids("all"), ShouldHaveLength, 5)
		So(ids("2"), ShouldResemble, []string{"c"})
		So(ids("9"), ShouldBeEmpty)
		So(ids("1-3"), ShouldResemble, []string{"b", "c", "d"})
		So(ids("3-99"), ShouldResemble, []string{"d", "e"})
		So(ids("4-1"), ShouldBeEmpty)
		So(ids("@C@"), ShouldResemble, []string{"c"})

		Convey("Unknown selectors are rejected", func() {
			_, err := ParsePicker("middle")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("first and last on an empty list", t, func() {
		for _, selector := range []string{"first", "last"} {
			picker, err := ParsePicker(selector)
			So(err, ShouldBeNil)
			So(picker(nil), ShouldBeEmpty)
		}
	})
}
