package walker

import (
	"testing"

	"github.com/harrison/davfind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterClassify(t *testing.T) {
	f, err := NewFilter("Syllabus", []string{"image*", "video/mp4"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		entry models.Entry
		want  Decision
	}{
		{
			name:  "matching pdf",
			entry: models.Entry{Name: "BIO101_syllabus.pdf", ContentType: "application/pdf"},
			want:  Matched,
		},
		{
			name:  "case-insensitive match",
			entry: models.Entry{Name: "SYLLABUS.DOCX", ContentType: "application/octet-stream"},
			want:  Matched,
		},
		{
			name:  "no match",
			entry: models.Entry{Name: "notes.pdf", ContentType: "application/pdf"},
			want:  Skipped,
		},
		{
			name:  "excluded image even though name matches",
			entry: models.Entry{Name: "syllabus.png", ContentType: "image/png"},
			want:  Excluded,
		},
		{
			name:  "second pattern",
			entry: models.Entry{Name: "syllabus.mp4", ContentType: "video/mp4"},
			want:  Excluded,
		},
		{
			name:  "pattern anchored at start",
			entry: models.Entry{Name: "syllabus.bin", ContentType: "application/x-image"},
			want:  Matched,
		},
		{
			name:  "directory with matching name recurses",
			entry: models.Entry{Name: "Syllabus", IsDir: true},
			want:  Recurse,
		},
		{
			name:  "directory with excluded type recurses",
			entry: models.Entry{Name: "pics", IsDir: true, ContentType: "image/x-dir"},
			want:  Recurse,
		},
		{
			name:  "empty content type not excluded",
			entry: models.Entry{Name: "syllabus"},
			want:  Matched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Classify(tt.entry))
		})
	}
}

func TestFilterNoExclusions(t *testing.T) {
	f, err := NewFilter("syllabus", nil)
	require.NoError(t, err)
	assert.Equal(t, Matched, f.Classify(models.Entry{Name: "syllabus.png", ContentType: "image/png"}))
}

func TestNewFilterErrors(t *testing.T) {
	_, err := NewFilter("  ", nil)
	require.Error(t, err)

	_, err = NewFilter("syllabus", []string{"(image"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(image")
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "excluded", Excluded.String())
	assert.Equal(t, "recurse", Recurse.String())
	assert.Equal(t, "skipped", Skipped.String())
}
