package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"record-sync/core/httpclient"
	"record-sync/core/reconcile"
)

// ErrRecordNotFound is returned by Record when the catalog has no record for the id.
var ErrRecordNotFound = errors.New("record not found in source catalog")

// Client reads the change feed and records from the source catalog.
type Client struct {
	http        *httpclient.Client
	changesPath string
	recordsPath string
}

// NewClient creates a catalog client from the configuration.
func NewClient(cfg Config, opts ...httpclient.Option) *Client {
	header := cfg.ApiKeyHeader
	if header == "" {
		header = "api-key"
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	base := []httpclient.Option{
		httpclient.WithHeader(header, cfg.ApiKey),
		httpclient.WithTimeout(time.Duration(timeout) * time.Second),
	}

	return &Client{
		http:        httpclient.New(cfg.BaseURL, append(base, opts...)...),
		changesPath: strings.Trim(defaultString(cfg.ChangesPath, "changes"), "/"),
		recordsPath: strings.Trim(defaultString(cfg.RecordsPath, "research-outputs"), "/"),
	}
}

// FetchPage returns one page of the change feed for date. An empty cursor requests the
// first page.
func (c *Client) FetchPage(ctx context.Context, date, cursor string) (reconcile.Page, error) {
	token := date
	if cursor != "" {
		token = cursor
	}
	requestPath := "/" + c.changesPath + "/" + url.PathEscape(token)

	var out wirePage
	if err := c.http.DoJSON(ctx, http.MethodGet, requestPath, nil, &out); err != nil {
		return reconcile.Page{}, &reconcile.FetchError{
			Date:       date,
			StatusCode: httpclient.StatusCode(err),
			Err:        err,
		}
	}
	return out.toPage(), nil
}

// Record fetches the full source record for sourceID.
func (c *Client) Record(ctx context.Context, sourceID string) (map[string]any, error) {
	requestPath := "/" + c.recordsPath + "/" + url.PathEscape(sourceID)

	var out map[string]any
	if err := c.http.DoJSON(ctx, http.MethodGet, requestPath, nil, &out); err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, sourceID)
		}
		return nil, fmt.Errorf("failed to fetch source record %s: %w", sourceID, err)
	}
	return out, nil
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
