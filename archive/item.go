package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/archiver-cli/archiver/internal/cache"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/util"
)

// FetchItemDetails retrieves and normalizes the metadata of a single item.
// A single attempt is made; failures are returned classified.
func (c *Client) FetchItemDetails(ctx context.Context, identifier string) (*ItemDetails, error) {
	logger := log.WithFields(log.Fields{"identifier": identifier})

	if c.details != nil {
		var cached ItemDetails
		if c.details.Read(cache.Key(identifier), &cached) {
			logger.Debug("item metadata served from cache")
			return &cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Kind: Other, Target: identifier, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL(identifier), nil)
	if err != nil {
		return nil, &FetchError{Kind: Other, Target: identifier, Err: err}
	}

	logger.Info("fetching item metadata")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchErr := classifyTransport(err, identifier)
		logger.Error(fetchErr)
		return nil, fetchErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchErr := classifyStatus(resp.StatusCode, identifier)
		logger.Warn(fetchErr)
		return nil, fetchErr
	}

	var raw metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		fetchErr := &FetchError{Kind: ParseError, Target: identifier, Err: err}
		logger.Error(fetchErr)
		return nil, fetchErr
	}

	// The archive answers unknown identifiers with an empty object rather than a 404.
	if raw.Metadata == nil && raw.Files == nil {
		fetchErr := &FetchError{Kind: NotFound, Status: resp.StatusCode, Target: identifier, Err: fmt.Errorf("empty metadata")}
		logger.Warn(fetchErr)
		return nil, fetchErr
	}

	details := raw.normalize(identifier)
	logger.Infof("fetched metadata with %s", util.Quantify(len(details.Files), "file", "files"))

	if c.details != nil {
		if err := c.details.Write(cache.Key(identifier), details); err != nil {
			logger.Warnf("cache item metadata: %v", err)
		}
	}
	return details, nil
}

func (c *Client) metadataURL(identifier string) string {
	return c.baseURL + "/metadata/" + url.PathEscape(identifier)
}

// DetailsURL is the page of an item on the archive website.
func (c *Client) DetailsURL(identifier string) string {
	return c.baseURL + "/details/" + url.PathEscape(identifier)
}

// ThumbnailURL is the image service address for an item.
func (c *Client) ThumbnailURL(identifier string) string {
	return c.baseURL + "/services/img/" + url.PathEscape(strings.TrimSpace(identifier))
}
