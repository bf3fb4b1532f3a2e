package weather

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"weatherctl/internal/cache"
	"weatherctl/internal/config"
	"weatherctl/internal/location"
	"weatherctl/internal/models"
	"weatherctl/internal/provider"
)

// LocationResolver is implemented by location.Resolver.
type LocationResolver interface {
	Resolve(ctx context.Context, loc *config.Location) (models.Coordinates, error)
}

// CacheStore is implemented by cache.Store.
type CacheStore interface {
	Get(key string) (*cache.Entry, bool)
	Put(key string, report models.WeatherReport) error
}

var _ LocationResolver = (*location.Resolver)(nil)
var _ CacheStore = (*cache.Store)(nil)

// Service is the single entry point of the acquisition pipeline: resolve
// location, compute the cache key, consult the cache, and on a miss fetch
// from the provider and store the result.
type Service struct {
	cfg      *config.Config
	resolver LocationResolver
	client   provider.Client
	store    CacheStore
}

func NewService(cfg *config.Config, resolver LocationResolver, client provider.Client, store CacheStore) *Service {
	return &Service{
		cfg:      cfg,
		resolver: resolver,
		client:   client,
		store:    store,
	}
}

// Fetch runs one acquisition. The returned report carries a provenance flag:
// Cached is true when the report was served from the cache without a network
// fetch. A resolution or provider failure aborts the run; an expired cache
// entry is never served as a fallback. A failed cache write is logged and
// the fresh report is still returned.
func (s *Service) Fetch(ctx context.Context) (models.Report, error) {
	coords, err := s.resolver.Resolve(ctx, s.cfg.Location)
	if err != nil {
		return models.Report{}, fmt.Errorf("resolving location: %w", err)
	}

	key := cache.Key(s.cfg.Provider, coords, s.cfg.Units)

	if entry, ok := s.store.Get(key); ok {
		log.Debug().Str("key", key).Msg("Cache HIT for weather report")
		return models.Report{WeatherReport: entry.Report, Cached: true}, nil
	}
	log.Debug().Str("key", key).Msg("Cache MISS for weather report, calling provider")

	report, err := s.client.FetchCurrent(ctx, coords, s.cfg.Units)
	if err != nil {
		return models.Report{}, fmt.Errorf("fetching weather from %s: %w", s.client.Name(), err)
	}

	if err := s.store.Put(key, report); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Could not persist weather report to cache")
	}

	return models.Report{WeatherReport: report, Cached: false}, nil
}
