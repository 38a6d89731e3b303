package walker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/davfind/internal/models"
)

// Decision is the classification of a single listing entry.
type Decision int

const (
	// Skipped is a file whose name does not contain the search string.
	Skipped Decision = iota
	// Recurse is a directory; it is never recorded.
	Recurse
	// Excluded is a file whose content type matched an exclusion pattern.
	Excluded
	// Matched is a file to record.
	Matched
)

func (d Decision) String() string {
	switch d {
	case Recurse:
		return "recurse"
	case Excluded:
		return "excluded"
	case Matched:
		return "matched"
	default:
		return "skipped"
	}
}

// Filter classifies entries by type, content type and name.
type Filter struct {
	search  string
	exclude *regexp.Regexp
}

// NewFilter compiles the exclusion patterns into one regex that matches
// when any pattern matches at the start of the content type.
// An empty pattern list excludes nothing.
func NewFilter(search string, exclude []string) (*Filter, error) {
	if strings.TrimSpace(search) == "" {
		return nil, fmt.Errorf("search string cannot be empty")
	}

	f := &Filter{search: strings.ToLower(search)}

	if len(exclude) > 0 {
		parts := make([]string, 0, len(exclude))
		for _, p := range exclude {
			if _, err := regexp.Compile(p); err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
			}
			parts = append(parts, "(?:"+p+")")
		}
		re, err := regexp.Compile("^(?:" + strings.Join(parts, "|") + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid exclude patterns: %w", err)
		}
		f.exclude = re
	}

	return f, nil
}

// Classify decides what to do with an entry. Directories are always
// recursed into; exclusion wins over a name match.
func (f *Filter) Classify(e models.Entry) Decision {
	if e.IsDir {
		return Recurse
	}
	if f.exclude != nil && f.exclude.MatchString(e.ContentType) {
		return Excluded
	}
	if strings.Contains(strings.ToLower(e.Name), f.search) {
		return Matched
	}
	return Skipped
}
