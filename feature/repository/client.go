package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"record-sync/core/httpclient"
	"record-sync/core/utils"
)

// ErrGone is returned by Update when the destination record no longer exists.
var ErrGone = errors.New("destination record no longer exists")

// Client calls the destination repository's record API.
type Client struct {
	http        *httpclient.Client
	recordsPath string
}

// NewClient creates a repository client from the configuration.
func NewClient(cfg Config, opts ...httpclient.Option) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	recordsPath := strings.Trim(cfg.RecordsPath, "/")
	if recordsPath == "" {
		recordsPath = "api/records"
	}

	base := []httpclient.Option{
		httpclient.WithBearerToken(cfg.Token),
		httpclient.WithTimeout(time.Duration(timeout) * time.Second),
		httpclient.WithRetries(cfg.MaxRetries, 200*time.Millisecond, 5*time.Second),
	}

	return &Client{
		http:        httpclient.New(cfg.BaseURL, append(base, opts...)...),
		recordsPath: recordsPath,
	}
}

// Create posts a new record and returns its destination id.
func (c *Client) Create(ctx context.Context, payload map[string]any) (string, error) {
	var out map[string]any
	if err := c.http.DoJSON(ctx, http.MethodPost, c.collection(), payload, &out); err != nil {
		return "", fmt.Errorf("failed to create record: %w", err)
	}
	id := utils.FirstString(out, "id", "recid")
	if id == "" {
		return "", errors.New("failed to create record: response carries no id")
	}
	return id, nil
}

// Update replaces the record destinationID. It returns ErrGone on 404 or 410.
func (c *Client) Update(ctx context.Context, destinationID string, payload map[string]any) error {
	err := c.http.DoJSON(ctx, http.MethodPut, c.item(destinationID), payload, nil)
	if httpclient.IsStatus(err, http.StatusNotFound, http.StatusGone) {
		return fmt.Errorf("%w: %s", ErrGone, destinationID)
	}
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", destinationID, err)
	}
	return nil
}

// Delete removes the record destinationID. It reports existed=false when the repository
// answers 404 or 410.
func (c *Client) Delete(ctx context.Context, destinationID string) (existed bool, err error) {
	err = c.http.DoJSON(ctx, http.MethodDelete, c.item(destinationID), nil, nil)
	if httpclient.IsStatus(err, http.StatusNotFound, http.StatusGone) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete record %s: %w", destinationID, err)
	}
	return true, nil
}

func (c *Client) collection() string {
	return "/" + c.recordsPath
}

func (c *Client) item(id string) string {
	return c.collection() + "/" + url.PathEscape(id)
}
