package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Columns is the fixed column set of the match output, in write order.
var Columns = []string{"created", "name", "size", "modified", "etag", "isdir", "content_type", "path"}

// Entry is a remote file or directory as reported by a listing call.
// Values are passed through from the WebDAV client unmodified.
type Entry struct {
	Created     time.Time // Zero when the server does not report creationdate
	Name        string
	Size        int64
	Modified    time.Time
	ETag        string
	IsDir       bool
	ContentType string
	Path        string // Decoded absolute remote path
}

// EscapedPath returns Path percent-encoded byte by byte. Only ASCII letters,
// digits, "_.-~" and "/" are kept; sub-delimiters such as "&+,;=@:$" are
// encoded too.
func (e Entry) EscapedPath() string {
	var b strings.Builder
	b.Grow(len(e.Path))
	for i := 0; i < len(e.Path); i++ {
		c := e.Path[i]
		if isPathSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isPathSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_.-~/", c) >= 0
}

// Record renders the entry as an output row in Columns order.
func (e Entry) Record() []string {
	created := ""
	if !e.Created.IsZero() {
		created = e.Created.UTC().Format(time.RFC3339)
	}
	modified := ""
	if !e.Modified.IsZero() {
		modified = e.Modified.UTC().Format(time.RFC1123)
	}

	return []string{
		created,
		e.Name,
		strconv.FormatInt(e.Size, 10),
		modified,
		e.ETag,
		strconv.FormatBool(e.IsDir),
		e.ContentType,
		e.EscapedPath(),
	}
}

// Match is a file entry whose name matched the search string.
type Match struct {
	Identifier string // Identifier whose subtree produced the match
	Entry
}
