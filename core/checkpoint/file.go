package checkpoint

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileLog is an append-only checkpoint log stored in a single file.
type FileLog struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFileLog creates a checkpoint log at path on fs.
func NewFileLog(fs afero.Fs, path string) *FileLog {
	return &FileLog{fs: fs, path: path}
}

// Path returns the location of the log file.
func (l *FileLog) Path() string {
	return l.path
}

// Completed returns the set of dates present in the log.
// A missing file is created empty.
func (l *FileLog) Completed(ctx context.Context) (map[string]struct{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, err := l.readLines()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set, nil
}

// Lines returns the log content in file order.
func (l *FileLog) Lines(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLines()
}

// MarkComplete appends date to the log. Duplicates are not filtered.
func (l *FileLog) MarkComplete(ctx context.Context, date string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensure(); err != nil {
		return err
	}

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open checkpoint %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(date + "\n"); err != nil {
		return fmt.Errorf("failed to append to checkpoint %s: %w", l.path, err)
	}
	return nil
}

// Prune keeps only the maxLines most recent lines. It returns the line count before
// and after pruning. A non-positive maxLines leaves the file untouched.
func (l *FileLog) Prune(ctx context.Context, maxLines int) (before, after int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, err := l.readLines()
	if err != nil {
		return 0, 0, err
	}
	before = len(lines)
	if maxLines <= 0 || before <= maxLines {
		return before, before, nil
	}

	kept := lines[before-maxLines:]
	data := strings.Join(kept, "\n") + "\n"
	if err := afero.WriteFile(l.fs, l.path, []byte(data), 0o644); err != nil {
		return before, before, fmt.Errorf("failed to rewrite checkpoint %s: %w", l.path, err)
	}
	return before, len(kept), nil
}

// readLines returns the non-empty trimmed lines of the log, creating it if needed.
func (l *FileLog) readLines() ([]string, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}

	f, err := l.fs.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint %s: %w", l.path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", l.path, err)
	}
	return lines, nil
}

func (l *FileLog) ensure() error {
	exists, err := afero.Exists(l.fs, l.path)
	if err != nil {
		return fmt.Errorf("failed to stat checkpoint %s: %w", l.path, err)
	}
	if exists {
		return nil
	}
	if dir := filepath.Dir(l.path); dir != "." && dir != "" {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create checkpoint directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(l.fs, l.path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to create checkpoint %s: %w", l.path, err)
	}
	return nil
}
