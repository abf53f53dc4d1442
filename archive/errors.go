package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
)

// Kind classifies a failed request. It decides retry eligibility and the message shown to the user.
type Kind int

const (
	Other Kind = iota
	NotFound
	RateLimitExceeded
	ClientError
	ServerError
	NetworkError
	ParseError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case RateLimitExceeded:
		return "rate limit exceeded"
	case ClientError:
		return "client error"
	case ServerError:
		return "server error"
	case NetworkError:
		return "network error"
	case ParseError:
		return "parse error"
	default:
		return "request failed"
	}
}

// FetchError is the classified failure of a request to the archive.
type FetchError struct {
	Kind Kind
	// Status is the HTTP status, zero when no response was received.
	Status int
	// Target is the collection name or item identifier the request was about.
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Target != "" {
		fmt.Fprintf(&b, " for %q", e.Target)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *FetchError) Retryable() bool {
	return e.Kind == NetworkError || e.Kind == ServerError
}

// Message is the short status line shown in the interface.
func (e *FetchError) Message() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("%q was not found", e.Target)
	case RateLimitExceeded:
		return "Rate limit exceeded, try again in a moment"
	case ClientError:
		return fmt.Sprintf("Request for %q was rejected (%d)", e.Target, e.Status)
	case ServerError:
		return fmt.Sprintf("Archive server error (%d), try again later", e.Status)
	case NetworkError:
		return "Network error, check your connection"
	case ParseError:
		return "Unexpected response from the archive"
	default:
		return fmt.Sprintf("Request for %q failed", e.Target)
	}
}

// Message converts any error into a user-visible status line without exposing raw transport details.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message()
	}
	return "Request failed, see logs for details"
}

// KindOf returns the kind of a classified error, or Other.
func KindOf(err error) Kind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return Other
}

// classifyStatus maps a non-2xx response status onto a kind.
func classifyStatus(status int, target string) *FetchError {
	kind := Other
	switch {
	case status == http.StatusNotFound:
		kind = NotFound
	case status == http.StatusTooManyRequests:
		kind = RateLimitExceeded
	case status >= 400 && status < 500:
		kind = ClientError
	case status >= 500 && status < 600:
		kind = ServerError
	}

	return &FetchError{
		Kind:   kind,
		Status: status,
		Target: target,
		Err:    fmt.Errorf("unexpected status %d %s", status, http.StatusText(status)),
	}
}

// classifyTransport maps an error returned before a response arrived.
func classifyTransport(err error, target string) *FetchError {
	kind := Other
	if isNetworkFailure(err) {
		kind = NetworkError
	}
	return &FetchError{Kind: kind, Target: target, Err: err}
}

// isNetworkFailure reports timeouts and connection level failures.
func isNetworkFailure(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
