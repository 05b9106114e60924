package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"record-sync/core/reconcile"
	"record-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PageLine records one fetched feed page.
type PageLine struct {
	Page  int `json:"page"`
	Items int `json:"items"`
}

// Failure records one event that could not be applied.
type Failure struct {
	SourceID   string `json:"source_id"`
	ChangeType string `json:"change_type"`
	Error      string `json:"error"`
}

// Report is the document uploaded for each reconciled date.
type Report struct {
	RunID      string            `json:"run_id"`
	Summary    reconcile.Summary `json:"summary"`
	Pages      []PageLine        `json:"pages"`
	Failures   []Failure         `json:"failures,omitempty"`
	UploadedAt time.Time         `json:"uploaded_at"`
}

type window struct {
	pages    []PageLine
	failures []Failure
}

// Archive uploads reports to object storage.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewArchive creates an archive writing under prefix in bucket.
func NewArchive(client storage.Client, bucket, prefix string, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "reports"
	}
	return &Archive{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		logger:  logger,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// EnsureBucket creates the bucket when it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created report bucket", zap.String("bucket", a.bucket))
	return nil
}

// Key returns the object key of the report for date and runID.
func (a *Archive) Key(date, runID string) string {
	return path.Join(a.prefix, date, runID+".json")
}

// WindowStarted implements reconcile.Reporter.
func (a *Archive) WindowStarted(_ context.Context, runID, date string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.windows[date] = &window{}
}

// PageFetched implements reconcile.Reporter.
func (a *Archive) PageFetched(_ context.Context, date string, page, items int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if w := a.windows[date]; w != nil {
		w.pages = append(w.pages, PageLine{Page: page, Items: items})
	}
}

// EventApplied implements reconcile.Reporter.
func (a *Archive) EventApplied(_ context.Context, date string, ev reconcile.ChangeEvent, err error) {
	if err == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if w := a.windows[date]; w != nil {
		w.failures = append(w.failures, Failure{
			SourceID:   ev.SourceID,
			ChangeType: string(ev.ChangeType),
			Error:      err.Error(),
		})
	}
}

// WindowFinished implements reconcile.Reporter.
func (a *Archive) WindowFinished(ctx context.Context, runID string, s reconcile.Summary) {
	a.mu.Lock()
	w := a.windows[s.Date]
	delete(a.windows, s.Date)
	a.mu.Unlock()
	if w == nil {
		w = &window{}
	}

	report := Report{
		RunID:      runID,
		Summary:    s,
		Pages:      w.pages,
		Failures:   w.failures,
		UploadedAt: a.now().UTC(),
	}
	if err := a.upload(ctx, report); err != nil {
		a.logger.Warn("Failed to archive report",
			zap.String("date", s.Date),
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}
}

func (a *Archive) upload(ctx context.Context, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	key := a.Key(report.Summary.Date, report.RunID)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// List returns the report keys, oldest date first. A non-empty date restricts the
// listing to that date.
func (a *Archive) List(ctx context.Context, date string) ([]string, error) {
	prefix := a.prefix + "/"
	if date != "" {
		prefix += date + "/"
	}

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if a.dateOf(obj.Key) != "" {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Get downloads and decodes the report stored at key.
func (a *Archive) Get(ctx context.Context, key string) (*Report, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	var report Report
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return &report, nil
}

// Prune removes reports whose date folder is more than keepDays old and returns how many
// objects were removed. Keys without a date folder are left alone.
func (a *Archive) Prune(ctx context.Context, keepDays int) (int, error) {
	if keepDays <= 0 {
		return 0, nil
	}
	cutoff := a.now().UTC().AddDate(0, 0, -keepDays).Format(reconcile.DateLayout)

	var stale []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    a.prefix + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		date := a.dateOf(obj.Key)
		if date == "" || date >= cutoff {
			continue
		}
		stale = append(stale, obj)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	failed := 0
	var firstErr error
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = rErr.Err
		}
		a.logger.Warn("Failed to remove report", zap.String("key", rErr.ObjectName), zap.Error(rErr.Err))
	}
	removed := len(stale) - failed
	if firstErr != nil {
		return removed, fmt.Errorf("failed to remove %d reports: %w", failed, firstErr)
	}
	a.logger.Info("Pruned reports", zap.Int("removed", removed), zap.String("older_than", cutoff))
	return removed, nil
}

// dateOf extracts the date folder from {prefix}/{date}/{file}.
func (a *Archive) dateOf(key string) string {
	rest := strings.TrimPrefix(key, a.prefix+"/")
	date, _, found := strings.Cut(rest, "/")
	if !found {
		return ""
	}
	if _, err := time.Parse(reconcile.DateLayout, date); err != nil {
		return ""
	}
	return date
}
