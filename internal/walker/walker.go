// Package walker performs the depth-first search of remote directory trees.
package walker

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/harrison/davfind/internal/davclient"
	"github.com/harrison/davfind/internal/models"
)

// Logger is the subset of logger.Logger the walker writes to.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogWarn(message string)
}

// Walker lists directories depth-first and collects matching files.
type Walker struct {
	lister   davclient.Lister
	filter   *Filter
	maxDepth int
	logger   Logger
}

// New creates a Walker. maxDepth is the number of levels below a root that
// may be listed; the root itself is depth 0.
func New(lister davclient.Lister, filter *Filter, maxDepth int, logger Logger) *Walker {
	return &Walker{
		lister:   lister,
		filter:   filter,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// walk holds the state of one Walk call.
type walk struct {
	*Walker
	identifier string
	visited    map[string]bool
	result     models.IdentifierResult
	matches    []models.Match
}

// Walk searches every root for one identifier. A listing failure is logged
// and that subtree skipped; the only error returned is context cancellation.
func (w *Walker) Walk(ctx context.Context, identifier string, roots []string) (models.IdentifierResult, []models.Match, error) {
	start := time.Now()
	st := &walk{
		Walker:     w,
		identifier: identifier,
		visited:    make(map[string]bool),
		result: models.IdentifierResult{
			Identifier: identifier,
			Roots:      roots,
		},
	}

	var err error
	for _, root := range roots {
		if err = st.dir(ctx, root, 0); err != nil {
			break
		}
	}

	st.result.Duration = time.Since(start)
	return st.result, st.matches, err
}

func (st *walk) dir(ctx context.Context, dir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := dirKey(dir)
	if st.visited[key] {
		st.logger.LogDebug("Already listed: " + dir)
		return nil
	}
	st.visited[key] = true

	entries, err := st.lister.List(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		st.result.ListingFailures++
		st.logger.LogWarn(fmt.Sprintf("client.list failed: Cannot connect to %s: %v", dir, err))
		return nil
	}
	st.result.DirsListed++

	var subdirs []string
	for _, entry := range entries {
		if dirKey(entry.Path) == key {
			st.logger.LogDebug("Root folder exclude: " + entry.Path)
			continue
		}
		st.result.EntriesSeen++

		switch st.filter.Classify(entry) {
		case Recurse:
			subdirs = append(subdirs, entry.Path)
			st.logger.LogDebug("Add to SubDirList: " + entry.Path)
		case Excluded:
			st.result.Excluded++
			st.logger.LogDebug("File type exclude: " + entry.Path)
		case Matched:
			st.result.Matches++
			st.matches = append(st.matches, models.Match{Identifier: st.identifier, Entry: entry})
			st.logger.LogDebug("File match: " + entry.Path)
		default:
			st.logger.LogTrace("Skip. No match: " + entry.Path)
		}
	}

	if len(subdirs) == 0 {
		return nil
	}
	if depth >= st.maxDepth {
		st.result.DepthLimited += len(subdirs)
		st.logger.LogWarn(fmt.Sprintf("Depth limit %d reached at %s; %d subdirectories not searched", st.maxDepth, dir, len(subdirs)))
		return nil
	}

	st.logger.LogDebug("Next we go look in the sub directories.")
	for _, sub := range subdirs {
		if err := st.dir(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// dirKey normalizes a directory path so "/a/b" and "/a/b/" compare equal.
func dirKey(p string) string {
	p = path.Clean("/" + p)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
