// Package davclient lists remote WebDAV collections.
//
// The wire protocol is handled by github.com/studio-b12/gowebdav; this package
// only adapts its results into models.Entry values and exposes the narrow
// Lister interface the walker depends on.
package davclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/harrison/davfind/internal/config"
	"github.com/harrison/davfind/internal/models"
	"github.com/studio-b12/gowebdav"
)

// Lister lists the immediate children of a remote directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]models.Entry, error)
}

// Client is a read-only WebDAV Lister.
type Client struct {
	dav  *gowebdav.Client
	root string
}

// Option configures a Client.
type Option func(*gowebdav.Client)

// WithTimeout sets the per-request HTTP timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *gowebdav.Client) {
		c.SetTimeout(d)
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *gowebdav.Client) {
		c.SetTransport(rt)
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *gowebdav.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

// New creates a Client for the connection's endpoint and credentials.
func New(conn config.Connection, opts ...Option) *Client {
	dav := gowebdav.NewClient(conn.Root, conn.Login, conn.Password)
	for _, opt := range opts {
		opt(dav)
	}
	return &Client{dav: dav, root: conn.Root}
}

// Root returns the endpoint the client talks to.
func (c *Client) Root() string {
	return c.root
}

// List returns the children of dir. The directory itself is not included.
// gowebdav has no context support, so ctx is only checked before the request.
func (c *Client) List(ctx context.Context, dir string) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := c.dav.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]models.Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, toEntry(dir, info))
	}
	return entries, nil
}

// toEntry converts a listing result. gowebdav returns File values, but any
// os.FileInfo is accepted so alternative transports can be plugged in.
func toEntry(dir string, info os.FileInfo) models.Entry {
	entry := models.Entry{
		Name:     info.Name(),
		Size:     info.Size(),
		Modified: info.ModTime(),
		IsDir:    info.IsDir(),
	}

	var file *gowebdav.File
	switch f := info.(type) {
	case gowebdav.File:
		file = &f
	case *gowebdav.File:
		file = f
	}

	if file != nil {
		entry.ETag = file.ETag()
		entry.ContentType = file.ContentType()
		entry.Path = file.Path()
	} else {
		entry.Path = joinPath(dir, info.Name())
		if info.IsDir() {
			entry.Path += "/"
		}
	}

	if entry.IsDir {
		entry.Size = 0
	}
	return entry
}

func joinPath(dir, name string) string {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir + name
}
