package archive

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/internal/cache"
	. "github.com/smartystreets/goconvey/convey"
)

const itemWithFileList = `{
	"server": "ia800.example.org",
	"dir": "/3/items/apollo_11",
	"metadata": {
		"identifier": "apollo_11",
		"title": ["Apollo 11 Audio", "Alternate"],
		"creator": "NASA",
		"date": 1969,
		"mediatype": "audio",
		"collection": ["nasa", "", "space"]
	},
	"files": [
		{"name": "landing.mp3", "source": "original", "format": "VBR MP3", "size": "1024", "md5": "abc"},
		"not an object",
		{"format": "Metadata"},
		{"name": "apollo_11_archive.torrent", "format": "Archive BitTorrent", "size": 2048}
	]
}`

const itemWithFileMap = `{
	"server": "ia801.example.org",
	"dir": "/9/items/songs",
	"metadata": {"title": "Songs", "collection": "music"},
	"files": {
		"/song.mp3": {"source": "original", "format": "MP3", "size": 4096},
		"/broken.mp3": 7,
		"/nested/other.ogg": {"format": "Ogg Vorbis"}
	}
}`

func TestFetchItemDetails(t *testing.T) {
	Convey("Given a metadata endpoint", t, func() {
		Convey("A file list is normalized and malformed entries dropped", func() {
			var path string
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				_, _ = w.Write([]byte(itemWithFileList))
			})
			defer ts.Close()

			details, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/metadata/apollo_11")

			So(details.Identifier, ShouldEqual, "apollo_11")
			So(details.Title.MustGet(), ShouldEqual, "Apollo 11 Audio")
			So(details.Creator.MustGet(), ShouldEqual, "NASA")
			So(details.Date.MustGet(), ShouldEqual, "1969")
			So(details.MediaType.MustGet(), ShouldEqual, "audio")
			So(details.Description.IsAbsent(), ShouldBeTrue)
			So(details.Collections, ShouldResemble, []string{"nasa", "space"})
			So(details.DownloadBaseURL.MustGet(), ShouldEqual, "https://ia800.example.org/3/items/apollo_11")

			So(details.Files, ShouldHaveLength, 2)
			So(details.Files[0].Name, ShouldEqual, "landing.mp3")
			So(details.Files[0].Source.MustGet(), ShouldEqual, "original")
			So(details.Files[0].MD5.MustGet(), ShouldEqual, "abc")
			So(details.Files[1].Name, ShouldEqual, "apollo_11_archive.torrent")
			So(details.Files[1].Size.MustGet(), ShouldEqual, "2048")
			So(details.Files[1].MD5.IsAbsent(), ShouldBeTrue)

			So(ts.limiter.permits.Load(), ShouldEqual, 1)
		})

		Convey("A file map is keyed by path without the leading separator", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(itemWithFileMap))
			})
			defer ts.Close()

			details, err := ts.client.FetchItemDetails(context.Background(), "songs")
			So(err, ShouldBeNil)
			So(details.Identifier, ShouldEqual, "songs")
			So(details.Title.MustGet(), ShouldEqual, "Songs")
			So(details.Collections, ShouldResemble, []string{"music"})

			So(details.Files, ShouldHaveLength, 2)
			So(details.Files[0].Name, ShouldEqual, "song.mp3")
			So(details.Files[0].Size.MustGet(), ShouldEqual, "4096")
			So(details.Files[1].Name, ShouldEqual, "nested/other.ogg")
			So(details.FileURL(details.Files[0]).MustGet(), ShouldEqual, "https://ia801.example.org/9/items/songs/song.mp3")
		})

		Convey("An empty object means the item does not exist", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			})
			defer ts.Close()

			_, err := ts.client.FetchItemDetails(context.Background(), "ghost")
			So(KindOf(err), ShouldEqual, NotFound)
		})

		Convey("Metadata without files is accepted", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"metadata": {"title": "Bare"}}`))
			})
			defer ts.Close()

			details, err := ts.client.FetchItemDetails(context.Background(), "bare")
			So(err, ShouldBeNil)
			So(details.Files, ShouldBeEmpty)
			So(details.DownloadBaseURL.IsAbsent(), ShouldBeTrue)
		})

		Convey("Statuses are classified with a single attempt", func() {
			for status, kind := range map[int]Kind{
				http.StatusNotFound:            NotFound,
				http.StatusTooManyRequests:     RateLimitExceeded,
				http.StatusUnauthorized:        ClientError,
				http.StatusInternalServerError: ServerError,
				http.StatusServiceUnavailable:  ServerError,
			} {
				ts := serve(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
				})

				_, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
				So(KindOf(err), ShouldEqual, kind)
				So(ts.hits.Load(), ShouldEqual, 1)
				ts.Close()
			}
		})

		Convey("Invalid JSON after success is a parse error", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"metadata": `))
			})
			defer ts.Close()

			_, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
			So(KindOf(err), ShouldEqual, ParseError)
		})

		Convey("A top level array is a parse error", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			})
			defer ts.Close()

			_, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
			So(KindOf(err), ShouldEqual, ParseError)
		})

		Convey("A timeout is a network error", func() {
			ts := serve(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			})
			defer ts.Close()

			httpClient := ts.Client()
			httpClient.Timeout = 50 * time.Millisecond
			client := NewClient(WithBaseURL(ts.URL), WithHTTPClient(httpClient), WithLimiter(ts.limiter))

			_, err := client.FetchItemDetails(context.Background(), "apollo_11")
			So(KindOf(err), ShouldEqual, NetworkError)
		})

		Convey("A request that cannot be sent is classified as other", func() {
			client := NewClient(WithBaseURL("ftp://archive.example.org"), WithLimiter(&countingLimiter{}))

			_, err := client.FetchItemDetails(context.Background(), "apollo_11")
			So(err, ShouldNotBeNil)
			So(KindOf(err), ShouldEqual, Other)
		})
	})
}

func TestFetchItemDetailsCache(t *testing.T) {
	Convey("Given a client with a details cache", t, func() {
		filesystem.SetMemMapFs()
		store := cache.New("/cache/details", time.Hour)

		ts := serve(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metadata/ghost" {
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(itemWithFileList))
		}, WithDetailsCache(store))
		defer ts.Close()

		Convey("A second fetch does not reach the archive", func() {
			first, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
			So(err, ShouldBeNil)

			second, err := ts.client.FetchItemDetails(context.Background(), "apollo_11")
			So(err, ShouldBeNil)
			So(ts.hits.Load(), ShouldEqual, 1)
			So(ts.limiter.permits.Load(), ShouldEqual, 1)

			So(second.Identifier, ShouldEqual, first.Identifier)
			So(second.Title.MustGet(), ShouldEqual, "Apollo 11 Audio")
			So(second.Collections, ShouldResemble, first.Collections)
			So(second.Files, ShouldHaveLength, len(first.Files))
			So(second.DownloadBaseURL.MustGet(), ShouldEqual, first.DownloadBaseURL.MustGet())
		})

		Convey("Failures are not cached", func() {
			for i := 0; i < 2; i++ {
				_, err := ts.client.FetchItemDetails(context.Background(), "ghost")
				So(KindOf(err), ShouldEqual, NotFound)
			}
			So(ts.hits.Load(), ShouldEqual, 2)
		})
	})
}
