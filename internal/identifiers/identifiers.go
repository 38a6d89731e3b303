// Package identifiers reads the delimited list of identifiers whose remote
// subtrees are searched.
package identifiers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns the first field of every record in r. Blank records and
// records whose first field starts with "#" are skipped. Records may have
// differing field counts.
func Read(r io.Reader, delimiter rune) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var ids []string
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read identifier record %d: %w", line, err)
		}
		if len(record) == 0 {
			continue
		}

		id := strings.TrimSpace(strings.TrimPrefix(record[0], "\ufeff"))
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ReadFile opens path and reads identifiers from it.
func ReadFile(path string, delimiter rune) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identifier list: %w", err)
	}
	defer f.Close()

	return Read(f, delimiter)
}
