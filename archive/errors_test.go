package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyStatus(t *testing.T) {
	Convey("Statuses map onto kinds", t, func() {
		cases := map[int]Kind{
			404: NotFound,
			429: RateLimitExceeded,
			400: ClientError,
			403: ClientError,
			410: ClientError,
			500: ServerError,
			502: ServerError,
			503: ServerError,
			302: Other,
			600: Other,
		}

		for status, want := range cases {
			err := classifyStatus(status, "apollo")
			So(err.Kind, ShouldEqual, want)
			So(err.Status, ShouldEqual, status)
			So(err.Target, ShouldEqual, "apollo")
		}
	})
}

func TestClassifyTransport(t *testing.T) {
	Convey("Transport errors", t, func() {
		wrap := func(err error) error {
			return &url.Error{Op: "Get", URL: "https://archive.org", Err: err}
		}

		Convey("Timeouts are network errors", func() {
			So(classifyTransport(wrap(context.DeadlineExceeded), "x").Kind, ShouldEqual, NetworkError)
		})

		Convey("Dropped connections are network errors", func() {
			So(classifyTransport(wrap(io.EOF), "x").Kind, ShouldEqual, NetworkError)
			So(classifyTransport(wrap(fmt.Errorf("read: %w", io.ErrUnexpectedEOF)), "x").Kind, ShouldEqual, NetworkError)
		})

		Convey("Cancellation is not a network error", func() {
			So(classifyTransport(wrap(context.Canceled), "x").Kind, ShouldEqual, Other)
		})

		Convey("Anything else is Other", func() {
			So(classifyTransport(wrap(errors.New("unsupported protocol scheme")), "x").Kind, ShouldEqual, Other)
		})
	})
}

func TestFetchError(t *testing.T) {
	Convey("Given fetch errors", t, func() {
		Convey("Only network and server errors are retryable", func() {
			for _, kind := range []Kind{Other, NotFound, RateLimitExceeded, ClientError, ServerError, NetworkError, ParseError} {
				err := &FetchError{Kind: kind}
				So(err.Retryable(), ShouldEqual, kind == NetworkError || kind == ServerError)
			}
		})

		Convey("The error string names the kind, target and status", func() {
			err := classifyStatus(503, "apollo")
			So(err.Error(), ShouldStartWith, `server error for "apollo" (status 503)`)
		})

		Convey("The cause is reachable", func() {
			err := &FetchError{Kind: NetworkError, Err: io.EOF}
			So(errors.Is(err, io.EOF), ShouldBeTrue)
		})

		Convey("Every error gets a user facing message", func() {
			So(Message(nil), ShouldEqual, "")
			So(Message(&FetchError{Kind: NotFound, Target: "apollo"}), ShouldEqual, `"apollo" was not found`)
			So(Message(fmt.Errorf("wrapped: %w", &FetchError{Kind: RateLimitExceeded})), ShouldContainSubstring, "Rate limit")
			So(Message(errors.New("dial tcp: secret detail")), ShouldNotContainSubstring, "dial tcp")
		})

		Convey("KindOf unwraps", func() {
			So(KindOf(fmt.Errorf("x: %w", &FetchError{Kind: ParseError})), ShouldEqual, ParseError)
			So(KindOf(errors.New("plain")), ShouldEqual, Other)
		})
	})
}
