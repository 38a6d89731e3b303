package models

import "time"

// IdentifierResult describes the traversal of one identifier's roots.
type IdentifierResult struct {
	Identifier      string
	Roots           []string
	DirsListed      int
	ListingFailures int
	EntriesSeen     int
	Excluded        int
	Matches         int
	DepthLimited    int // Directories not descended into because of the depth ceiling
	Duration        time.Duration
}

// Summary is the aggregate result of a search run.
type Summary struct {
	RunID           string
	Identifiers     int
	DirsListed      int
	ListingFailures int
	EntriesSeen     int
	Matches         int
	Duration        time.Duration
	Results         []IdentifierResult
	OutputPath      string
	DBPath          string
}

// Add folds one identifier's result into the summary.
func (s *Summary) Add(r IdentifierResult) {
	s.Identifiers++
	s.DirsListed += r.DirsListed
	s.ListingFailures += r.ListingFailures
	s.EntriesSeen += r.EntriesSeen
	s.Matches += r.Matches
	s.Results = append(s.Results, r)
}

// FailedIdentifiers returns the identifiers that had at least one listing failure.
func (s Summary) FailedIdentifiers() []string {
	var ids []string
	for _, r := range s.Results {
		if r.ListingFailures > 0 {
			ids = append(ids, r.Identifier)
		}
	}
	return ids
}
