package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/util"
	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
)

// FetchCollection retrieves every item identifier in the named collection with a single bulk request.
// Transient failures (network errors and 5xx) are retried with exponential backoff,
// every attempt taking a permit from the limiter. It returns the entries and the reported total.
func (c *Client) FetchCollection(ctx context.Context, name string) ([]CollectionEntry, int, error) {
	logger := log.WithFields(log.Fields{"collection": name})

	if strings.TrimSpace(name) == "" {
		return nil, 0, &FetchError{Kind: Other, Target: name, Err: errors.New("empty collection name")}
	}

	var (
		entries []CollectionEntry
		total   int
		attempt int
	)

	operation := func() error {
		attempt++
		logger.WithField("attempt", attempt).Info("searching collection")

		var err error
		entries, total, err = c.searchOnce(ctx, name)
		if err == nil {
			return nil
		}

		var fetchErr *FetchError
		if errors.As(err, &fetchErr) && fetchErr.Retryable() {
			return err
		}
		return backoff.Permanent(err)
	}

	notify := func(err error, wait time.Duration) {
		logger.WithField("attempt", attempt).Warnf("search failed, retrying in %s: %v", wait, err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxAttempts-1)),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			fetchErr = &FetchError{Kind: Other, Target: name, Err: err}
		}
		logger.WithField("attempts", attempt).Errorf("search failed: %v", fetchErr)
		return nil, 0, fetchErr
	}

	logger.Infof("found %s", util.Quantify(len(entries), "item", "items"))
	return entries, total, nil
}

func (c *Client) searchOnce(ctx context.Context, name string) ([]CollectionEntry, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, &FetchError{Kind: Other, Target: name, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(name), nil)
	if err != nil {
		return nil, 0, &FetchError{Kind: Other, Target: name, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, classifyTransport(err, name)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, classifyStatus(resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, classifyTransport(err, name)
	}

	return c.decodeSearch(body, name)
}

func (c *Client) decodeSearch(body []byte, name string) ([]CollectionEntry, int, error) {
	var parsed searchResponse
	if err := json.Unmarshal(unwrapCallback(body, c.callback), &parsed); err != nil {
		return nil, 0, &FetchError{Kind: ParseError, Target: name, Err: err}
	}

	if parsed.Response == nil {
		return nil, 0, &FetchError{Kind: ParseError, Target: name, Err: errors.New("missing response object")}
	}

	entries := lo.FilterMap(parsed.Response.Docs, func(doc searchDoc, _ int) (CollectionEntry, bool) {
		id := strings.TrimSpace(string(doc.Identifier))
		return CollectionEntry{Identifier: id}, id != ""
	})

	if total := parsed.Response.NumFound; len(entries) > total {
		log.WithFields(log.Fields{"collection": name}).
			Warnf("search returned %d entries but reported %d", len(entries), total)
	}

	return entries, parsed.Response.NumFound, nil
}

func (c *Client) searchURL(name string) string {
	query := url.Values{}
	query.Set("q", "collection:"+name)
	query.Set("fl[]", "identifier")
	query.Set("rows", strconv.Itoa(c.rows))
	query.Set("output", "json")
	query.Set("callback", c.callback)

	return c.baseURL + "/advancedsearch.php?" + query.Encode()
}

// unwrapCallback strips a `callback( ... )` wrapper, tolerating surrounding whitespace
// and a trailing semicolon. A body without the wrapper is returned untouched.
func unwrapCallback(body []byte, callback string) []byte {
	trimmed := bytes.TrimSpace(body)
	trimmed = bytes.TrimSpace(bytes.TrimSuffix(trimmed, []byte(";")))

	prefix := []byte(callback + "(")
	if callback == "" || !bytes.HasPrefix(trimmed, prefix) || !bytes.HasSuffix(trimmed, []byte(")")) {
		return body
	}

	return trimmed[len(prefix) : len(trimmed)-1]
}
