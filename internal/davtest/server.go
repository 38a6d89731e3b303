// Package davtest runs an in-memory WebDAV server for tests.
package davtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"testing"

	"golang.org/x/net/webdav"
)

// Server is an httptest WebDAV server backed by webdav.NewMemFS.
type Server struct {
	*httptest.Server

	fs       webdav.FileSystem
	login    string
	password string

	mu       sync.Mutex
	fail     map[string]bool
	listings []string
}

// Option configures a Server.
type Option func(*Server)

// WithBasicAuth requires HTTP Basic credentials on every request.
func WithBasicAuth(login, password string) Option {
	return func(s *Server) {
		s.login = login
		s.password = password
	}
}

// WithFailures makes PROPFIND on the given directories answer 500.
func WithFailures(dirs ...string) Option {
	return func(s *Server) {
		for _, d := range dirs {
			s.fail[normalize(d)] = true
		}
	}
}

// NewServer starts a server holding files. Keys are absolute paths; a key
// ending in "/" creates an empty directory, anything else a file with the
// value as content. Parent directories are created as needed.
func NewServer(t testing.TB, files map[string]string, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		fs:   webdav.NewMemFS(),
		fail: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx := context.Background()
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if strings.HasSuffix(name, "/") {
			s.mkdirAll(t, ctx, name)
			continue
		}
		s.mkdirAll(t, ctx, path.Dir(name))

		f, err := s.fs.OpenFile(ctx, name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			t.Fatalf("davtest: create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			t.Fatalf("davtest: write %s: %v", name, err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("davtest: close %s: %v", name, err)
		}
	}

	handler := &webdav.Handler{
		FileSystem: s.fs,
		LockSystem: webdav.NewMemLS(),
	}
	s.Server = httptest.NewServer(s.middleware(handler))
	t.Cleanup(s.Close)

	return s
}

func (s *Server) mkdirAll(t testing.TB, ctx context.Context, dir string) {
	t.Helper()

	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || dir == "/" {
		return
	}
	s.mkdirAll(t, ctx, path.Dir(dir))
	if err := s.fs.Mkdir(ctx, dir, 0755); err != nil && !os.IsExist(err) {
		t.Fatalf("davtest: mkdir %s: %v", dir, err)
	}
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.login != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != s.login || pass != s.password {
				w.Header().Set("WWW-Authenticate", `Basic realm="davtest"`)
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
		}

		if r.Method == "PROPFIND" {
			p := normalize(r.URL.Path)
			s.mu.Lock()
			s.listings = append(s.listings, p)
			failing := s.fail[p]
			s.mu.Unlock()

			if failing {
				http.Error(w, "listing failed", http.StatusInternalServerError)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// Listings returns the directories PROPFIND was called on, in order.
func (s *Server) Listings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.listings...)
}

func normalize(p string) string {
	p = path.Clean("/" + p)
	if p != "/" {
		p += "/"
	}
	return p
}
