// Package loader fetches leaflet_data bundles from a URL or a directory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/testable"
)

// ErrUnavailable wraps every fetch and decode failure so hosts can show a
// "data unavailable" state.
var ErrUnavailable = errors.New("data unavailable")

// ErrStale is returned when a newer load was requested while this one was in
// flight. The result is discarded.
var ErrStale = errors.New("stale response discarded")

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// FileName returns the data file name for a mode, city and year.
func FileName(mode election.Mode, city string, year int) string {
	return fmt.Sprintf("leaflet_data_%s_%s_%d.json", mode.FileTag(), city, year)
}

// Source opens a named data file.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// HTTPSource fetches files below BaseURL. A non-empty Token is sent as a
// bearer credential.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Token   string
}

// Open issues a GET for BaseURL/name. Non-2xx responses are errors.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	url := strings.TrimRight(s.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: server returned %s", url, resp.Status)
	}
	return resp.Body, nil
}

// DirSource reads files from a local directory.
type DirSource struct {
	Dir string
	FS  testable.FileSystem
}

// Open opens Dir/name.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsys := s.FS
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	f, err := fsys.Open(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewSource picks an HTTPSource for http(s) bases and a DirSource otherwise.
func NewSource(base string, fsys testable.FileSystem) Source {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return &HTTPSource{BaseURL: base, Client: &http.Client{Timeout: DefaultTimeout}}
	}
	return &DirSource{Dir: base, FS: fsys}
}

// Request names one bundle to load. Generation is the caller's request
// counter; higher generations supersede lower ones.
type Request struct {
	Generation uint64
	Mode       election.Mode
	City       string
	Year       int
}

// FileName returns the data file the request reads.
func (r Request) FileName() string {
	return FileName(r.Mode, r.City, r.Year)
}

// Loader loads bundles and discards responses that were overtaken by a newer
// request. It is safe for concurrent use.
type Loader struct {
	src    Source
	latest atomic.Uint64
}

// New returns a Loader reading from src.
func New(src Source) *Loader {
	return &Loader{src: src}
}

// Latest returns the highest generation requested so far.
func (l *Loader) Latest() uint64 {
	return l.latest.Load()
}

// Load fetches and decodes the bundle for req. Failures wrap ErrUnavailable.
// If a request with a higher generation started before this one finished,
// the result is dropped and ErrStale returned, whether or not it failed.
func (l *Loader) Load(ctx context.Context, req Request) (*election.Bundle, error) {
	l.observe(req.Generation)
	name := req.FileName()

	start := time.Now()
	b, err := l.fetch(ctx, name)
	if latest := l.latest.Load(); latest > req.Generation {
		slog.Debug("discarding stale response", "file", name, "generation", req.Generation,
			"latest", latest, "error", err)
		return nil, ErrStale
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, name, err)
	}
	slog.Debug("loaded bundle", "file", name, "ridings", len(b.PollData),
		"polls", b.PollCount(), "duration", time.Since(start))
	return b, nil
}

func (l *Loader) fetch(ctx context.Context, name string) (*election.Bundle, error) {
	rc, err := l.src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return election.Decode(rc)
}

// observe raises latest to gen.
func (l *Loader) observe(gen uint64) {
	for {
		cur := l.latest.Load()
		if gen <= cur || l.latest.CompareAndSwap(cur, gen) {
			return
		}
	}
}
