package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryRecord(t *testing.T) {
	modified := time.Date(2023, 5, 4, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry Entry
		want  []string
	}{
		{
			name: "file with all fields",
			entry: Entry{
				Created:     time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC),
				Name:        "Syllabus 2023.pdf",
				Size:        2048,
				Modified:    modified,
				ETag:        `"abc"`,
				ContentType: "application/pdf",
				Path:        "/bbcswebdav/courses/C1/Syllabus 2023.pdf",
			},
			want: []string{
				"2023-05-01T08:00:00Z",
				"Syllabus 2023.pdf",
				"2048",
				"Thu, 04 May 2023 10:30:00 UTC",
				`"abc"`,
				"false",
				"application/pdf",
				"/bbcswebdav/courses/C1/Syllabus%202023.pdf",
			},
		},
		{
			name:  "zero times render empty",
			entry: Entry{Name: "a", Path: "/a"},
			want:  []string{"", "a", "0", "", "", "false", "", "/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.Record()
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(Columns))
		})
	}
}

func TestEntryEscapedPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/courses/C1/week #1/notes?.pdf", "/courses/C1/week%20%231/notes%3F.pdf"},
		{"/c/Syllabus & Schedule.pdf", "/c/Syllabus%20%26%20Schedule.pdf"},
		{"/c/a+b,c;d=e@f:g$.pdf", "/c/a%2Bb%2Cc%3Bd%3De%40f%3Ag%24.pdf"},
		{"/c/100%_done~v1.0-final.pdf", "/c/100%25_done~v1.0-final.pdf"},
		{"/c/Année/é.pdf", "/c/Ann%C3%A9e/%C3%A9.pdf"},
		{"/c/(draft)'s!*.pdf", "/c/%28draft%29%27s%21%2A.pdf"},
		{"/bbcswebdav/courses/C1/", "/bbcswebdav/courses/C1/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Entry{Path: tt.path}.EscapedPath())
		})
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(IdentifierResult{Identifier: "C1", DirsListed: 3, Matches: 2, EntriesSeen: 10})
	s.Add(IdentifierResult{Identifier: "C2", DirsListed: 1, ListingFailures: 1, EntriesSeen: 0})

	assert.Equal(t, 2, s.Identifiers)
	assert.Equal(t, 4, s.DirsListed)
	assert.Equal(t, 1, s.ListingFailures)
	assert.Equal(t, 10, s.EntriesSeen)
	assert.Equal(t, 2, s.Matches)
	assert.Equal(t, []string{"C2"}, s.FailedIdentifiers())
}
