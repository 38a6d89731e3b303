package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrison/davfind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMatches() []models.Match {
	mod := time.Date(2023, 5, 4, 10, 30, 0, 0, time.UTC)
	return []models.Match{
		{Identifier: "C1", Entry: models.Entry{
			Name: "Syllabus, Fall.pdf", Size: 10, Modified: mod, ETag: `"e1"`,
			ContentType: "application/pdf", Path: "/courses/C1/Syllabus, Fall.pdf",
		}},
		{Identifier: "C2", Entry: models.Entry{
			Name: "syllabus.docx", Size: 20, Modified: mod, ETag: `"e2"`,
			ContentType: "application/msword", Path: "/courses/C2/syllabus.docx",
		}},
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, sampleMatches(), true))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.Columns, records[0])
	assert.Equal(t, "Syllabus, Fall.pdf", records[1][1])
	assert.Equal(t, "/courses/C1/Syllabus,%20Fall.pdf", records[1][7])
	assert.Equal(t, `"e2"`, records[2][4])
	assert.Equal(t, "false", records[2][5])
}

func TestWriteCSVNoHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, sampleMatches()[:1], false))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Syllabus, Fall.pdf", records[0][1])
}

func TestWriteCSVEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, nil, false))
	assert.Empty(t, buf.String())
}

func TestCSVFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "files.csv")
	sink := CSVFile{Path: path, Header: true}

	require.NoError(t, sink.Write(context.Background(), sampleMatches()))
	require.NoError(t, sink.Write(context.Background(), sampleMatches()[1:]))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "syllabus.docx", records[1][1])
}
