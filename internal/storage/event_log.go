package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// EmptyLogLine is shown when no journal has been written yet.
const EmptyLogLine = "No logs yet."

// FileEventLog stores one narration line per row of a UTF-8 text file.
type FileEventLog struct {
	files *AferoStore
	path  string
}

// NewFileEventLog creates an event log writing to path.
func NewFileEventLog(files *AferoStore, path string) *FileEventLog {
	return &FileEventLog{files: files, path: path}
}

// Append adds lines to the end of the journal.
func (l *FileEventLog) Append(ctx context.Context, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	if err := l.files.Append(ctx, l.path, []byte(joinLines(lines))); err != nil {
		return fmt.Errorf("append event log: %w", err)
	}
	return nil
}

// Start truncates the journal so it holds only firstLine.
func (l *FileEventLog) Start(ctx context.Context, firstLine string) error {
	if _, err := l.files.Save(ctx, l.path, strings.NewReader(joinLines([]string{firstLine}))); err != nil {
		return fmt.Errorf("start event log: %w", err)
	}
	return nil
}

// ReadAll returns the journal lines in write order.
func (l *FileEventLog) ReadAll(ctx context.Context) ([]string, error) {
	f, err := l.files.Get(ctx, l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{EmptyLogLine}, nil
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return lines, nil
}

// joinLines flattens embedded newlines so each event stays on one row.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.ReplaceAll(line, "\n", " "))
		b.WriteByte('\n')
	}
	return b.String()
}
