package download

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/archiver-cli/archiver/archive"
	"github.com/archiver-cli/archiver/settings"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubFetcher struct {
	details *archive.ItemDetails
	err     error
	calls   []string
}

func (s *stubFetcher) FetchItemDetails(_ context.Context, identifier string) (*archive.ItemDetails, error) {
	s.calls = append(s.calls, identifier)
	return s.details, s.err
}

func sampleDetails() *archive.ItemDetails {
	return &archive.ItemDetails{
		Identifier:      "apollo_11",
		DownloadBaseURL: mo.Some("https://ia800.example.org/3/items/apollo_11"),
		Files: []archive.FileEntry{
			{Name: "landing.mp3", Size: mo.Some("1500000")},
			{Name: "docs/notes.txt", Size: mo.Some("500000")},
			{Name: "apollo_11_archive.torrent", Format: mo.Some("Archive BitTorrent"), Size: mo.Some("oops")},
		},
	}
}

func TestPlan(t *testing.T) {
	Convey("Given item details", t, func() {
		details := sampleDetails()

		Convey("Direct mode plans every file under the item directory", func() {
			targets, err := Plan(details, "/music", settings.Direct)
			So(err, ShouldBeNil)
			So(targets, ShouldHaveLength, 3)
			So(targets[1].URL, ShouldEqual, "https://ia800.example.org/3/items/apollo_11/docs/notes.txt")
			So(targets[1].Path, ShouldEqual, filepath.Join("/music", "apollo_11", "docs", "notes.txt"))
			So(targets[2].Size.IsAbsent(), ShouldBeTrue)
			So(TotalSize(targets), ShouldEqual, 2000000)
		})

		Convey("Torrent mode plans only the torrent file", func() {
			targets, err := Plan(details, "/music", settings.TorrentOnly)
			So(err, ShouldBeNil)
			So(targets, ShouldHaveLength, 1)
			So(targets[0].Name, ShouldEqual, "apollo_11_archive.torrent")
		})

		Convey("Torrent mode fails without a torrent", func() {
			details.Files = details.Files[:2]
			_, err := Plan(details, "/music", settings.TorrentOnly)
			So(errors.Is(err, ErrNoTorrent), ShouldBeTrue)
		})

		Convey("An item without location or files cannot be planned", func() {
			details.Files = nil
			_, err := Plan(details, "/music", settings.Direct)
			So(errors.Is(err, ErrNoFiles), ShouldBeTrue)

			details.DownloadBaseURL = mo.None[string]()
			_, err = Plan(details, "/music", settings.Direct)
			So(errors.Is(err, ErrNoLocation), ShouldBeTrue)
		})
	})

	Convey("HumanSize", t, func() {
		So(HumanSize(mo.Some("1500000")), ShouldEqual, "1.5 MB")
		So(HumanSize(mo.Some("abc")), ShouldEqual, "?")
		So(HumanSize(mo.None[string]()), ShouldEqual, "?")
	})
}

func TestQueue(t *testing.T) {
	Convey("Given a queue", t, func() {
		fetcher := &stubFetcher{details: sampleDetails()}
		queue := NewQueue(fetcher)

		Convey("Starting a download plans it and records a handle", func() {
			handle, err := queue.Start(context.Background(), Request{Identifier: "apollo_11", Directory: "/music", Mode: settings.Direct})
			So(err, ShouldBeNil)
			So(handle.ID, ShouldNotBeBlank)
			So(handle.Targets, ShouldHaveLength, 3)
			So(handle.Summary(), ShouldEqual, "3 files, 2.0 MB")
			So(fetcher.calls, ShouldResemble, []string{"apollo_11"})
			So(queue.Handles(), ShouldHaveLength, 1)

			other, err := queue.Start(context.Background(), Request{Identifier: "apollo_11", Directory: "/music", Mode: settings.TorrentOnly})
			So(err, ShouldBeNil)
			So(other.ID, ShouldNotEqual, handle.ID)
			So(other.Summary(), ShouldEqual, "1 file")
		})

		Convey("Fetch failures are returned unchanged", func() {
			fetcher.err = &archive.FetchError{Kind: archive.NotFound, Target: "apollo_11"}
			_, err := queue.Start(context.Background(), Request{Identifier: "apollo_11", Directory: "/music"})
			So(archive.KindOf(err), ShouldEqual, archive.NotFound)
			So(queue.Handles(), ShouldBeEmpty)
		})

		Convey("Incomplete requests are rejected without fetching", func() {
			_, err := queue.Start(context.Background(), Request{Identifier: "apollo_11"})
			So(err, ShouldNotBeNil)
			_, err = queue.Start(context.Background(), Request{Directory: "/music"})
			So(err, ShouldNotBeNil)
			So(fetcher.calls, ShouldBeEmpty)
		})
	})
}
