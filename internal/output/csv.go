// Package output writes search matches to their sinks.
package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/harrison/davfind/internal/filelock"
	"github.com/harrison/davfind/internal/models"
)

// WriteCSV writes the header (when requested) and one row per match to w,
// in models.Columns order.
func WriteCSV(w io.Writer, matches []models.Match, header bool) error {
	cw := csv.NewWriter(w)

	if header {
		if err := cw.Write(models.Columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, m := range matches {
		if err := cw.Write(m.Record()); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", m.Path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// CSVFile replaces the file at Path with the full match list.
type CSVFile struct {
	Path   string
	Header bool
}

// Write replaces the file atomically while holding its lock.
func (f CSVFile) Write(ctx context.Context, matches []models.Match) error {
	err := filelock.LockAndWrite(ctx, f.Path, func(w io.Writer) error {
		return WriteCSV(w, matches, f.Header)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return nil
}
