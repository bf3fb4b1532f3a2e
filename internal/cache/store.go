package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"weatherctl/internal/config"
	"weatherctl/internal/models"
)

// Entry is one cached observation, keyed by provider, rounded coordinates
// and units.
type Entry struct {
	Key       string               `json:"key"`
	Report    models.WeatherReport `json:"report"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// Store persists the most recent report per key in a single JSON file. The
// file is read fully, mutated in memory and atomically replaced on write, so
// an overlapping invocation can never observe a partial write. Expired
// entries are treated as absent but not eagerly deleted; they get overwritten
// by the next successful fetch for the same key.
type Store struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the store's time source, used by tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(path string, ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		path: path,
		ttl:  ttl,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Key derives the deterministic cache key for a fetch. Coordinates are
// rounded to 3 decimal places so float noise at the same nominal location
// still hits the same entry.
func Key(provider config.Provider, coords models.Coordinates, units models.Units) string {
	return fmt.Sprintf("%s:%.3f,%.3f:%s", provider, coords.Latitude, coords.Longitude, units)
}

// Get returns the entry for key if it exists and is still fresh.
func (s *Store) Get(key string) (*Entry, bool) {
	entries := s.load()

	entry, ok := entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.FetchedAt) >= s.ttl {
		log.Debug().Str("key", key).Time("fetched_at", entry.FetchedAt).Msg("Cache entry expired")
		return nil, false
	}

	return &entry, true
}

// Put overwrites the entry for key with report and the current timestamp.
func (s *Store) Put(key string, report models.WeatherReport) error {
	entries := s.load()

	entries[key] = Entry{
		Key:       key,
		Report:    report,
		FetchedAt: s.now(),
	}

	return s.replace(entries)
}

// Clear removes the cache file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}

// load reads the whole cache file into memory. A missing or corrupt file
// yields an empty cache; corruption is logged but never fails the run.
func (s *Store) load() map[string]Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Could not read cache file, treating cache as empty")
		}
		return make(map[string]Entry)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Cache file is corrupt, treating cache as empty")
		return make(map[string]Entry)
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}

	return entries
}

// replace writes entries to a temp file in the cache directory and renames
// it over the cache file.
func (s *Store) replace(entries map[string]Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".weatherctl-cache-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}

	if err := json.NewEncoder(tmp).Encode(entries); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache file: %w", err)
	}

	return nil
}
