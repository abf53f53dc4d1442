// Package network provides the pre-configured HTTP client shared by every request to the archive.
package network

import (
	"net/http"
	"time"

	"github.com/archiver-cli/archiver/constant"
)

// Client is the HTTP client shared across the application.
// Its timeout is the only per-request deadline; retries are bounded separately by the archive client.
var Client = New(30 * time.Second)

// New builds a client with the given per-request timeout and the application User-Agent.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: newTransport()},
	}
}

// SetTimeout replaces the shared client with one using the given timeout.
func SetTimeout(timeout time.Duration) {
	Client = New(timeout)
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}

// userAgentTransport stamps outgoing requests that do not carry a User-Agent.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return t.next.RoundTrip(req)
}
