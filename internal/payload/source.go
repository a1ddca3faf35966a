package payload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"top10animes.net/rank-web/internal/observability"
)

const (
	defaultLocation = "public"
	maxPayloadBytes = 8 << 20
)

// Source reads payload documents from a local directory or an http(s) base URL.
type Source struct {
	location string
	http     *http.Client
	ttl      time.Duration
	now      func() time.Time
	metrics  instruments

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// NewSource returns a Source for location. A ttl of zero disables caching.
func NewSource(location string, ttl time.Duration) *Source {
	location = strings.TrimSpace(location)
	if location == "" {
		location = defaultLocation
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Source{
		location: location,
		http:     &http.Client{Timeout: 5 * time.Second},
		ttl:      ttl,
		now:      time.Now,
		metrics:  newInstruments(nil),
		cache:    map[string]cacheEntry{},
	}
}

// SetMeter records load metrics on m instead of the global meter provider.
func (s *Source) SetMeter(m metric.Meter) {
	s.metrics = newInstruments(m)
}

// Location returns the configured directory or base URL.
func (s *Source) Location() string { return s.location }

// SetHTTPClient overrides the client used for remote sources (primarily for tests).
func (s *Source) SetHTTPClient(c *http.Client) {
	if c != nil {
		s.http = c
	}
}

func (s *Source) remote() bool {
	return strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://")
}

// FetchEpisodes reads and decodes the episodes document.
func (s *Source) FetchEpisodes(ctx context.Context) (EpisodesDocument, error) {
	return load(ctx, s, EpisodesFile, DecodeEpisodes)
}

// FetchAnticipated reads and decodes the anticipated titles document.
func (s *Source) FetchAnticipated(ctx context.Context) (AnticipatedDocument, error) {
	return load(ctx, s, AnticipatedFile, DecodeAnticipated)
}

// LoadEpisodes is FetchEpisodes that degrades to an empty document.
func (s *Source) LoadEpisodes(ctx context.Context) EpisodesDocument {
	doc, err := s.FetchEpisodes(ctx)
	if err != nil {
		s.logFailure(ctx, EpisodesFile, err)
		return EpisodesDocument{}
	}
	return doc
}

// LoadAnticipated is FetchAnticipated that degrades to an empty document.
func (s *Source) LoadAnticipated(ctx context.Context) AnticipatedDocument {
	doc, err := s.FetchAnticipated(ctx)
	if err != nil {
		s.logFailure(ctx, AnticipatedFile, err)
		return AnticipatedDocument{}
	}
	return doc
}

func (s *Source) logFailure(ctx context.Context, name string, err error) {
	observability.FromContext(ctx).Warn("payload unavailable, rendering empty list",
		zap.String("file", name),
		zap.String("source", s.location),
		zap.Bool("not_found", errors.Is(err, ErrNotFound)),
		zap.Error(err),
	)
}

func load[T any](ctx context.Context, s *Source, name string, decode func(io.Reader) (T, error)) (T, error) {
	if v, ok := s.cached(name); ok {
		if doc, ok := v.(T); ok {
			s.metrics.recordLoad(ctx, name, outcomeCacheHit)
			return doc, nil
		}
	}
	var zero T
	start := time.Now()
	doc, err := func() (T, error) {
		rc, err := s.open(ctx, name)
		if err != nil {
			return zero, err
		}
		defer rc.Close()
		return decode(io.LimitReader(rc, maxPayloadBytes))
	}()
	s.metrics.recordLatency(ctx, name, time.Since(start))
	switch {
	case errors.Is(err, ErrNotFound):
		s.metrics.recordLoad(ctx, name, outcomeMissing)
		return zero, err
	case err != nil:
		s.metrics.recordLoad(ctx, name, outcomeError)
		return zero, err
	}
	s.metrics.recordLoad(ctx, name, outcomeFetched)
	s.store(name, doc)
	return doc, nil
}

func (s *Source) open(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.remote() {
		return s.openRemote(ctx, name)
	}
	f, err := os.Open(filepath.Join(s.location, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

func (s *Source) openRemote(ctx context.Context, name string) (io.ReadCloser, error) {
	endpoint, err := url.JoinPath(strings.TrimRight(s.location, "/"), name)
	if err != nil {
		return nil, fmt.Errorf("payload url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *Source) cached(name string) (any, bool) {
	if s.ttl == 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[name]
	if !ok || s.now().After(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (s *Source) store(name string, v any) {
	if s.ttl == 0 {
		return
	}
	s.mu.Lock()
	s.cache[name] = cacheEntry{value: v, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
}
