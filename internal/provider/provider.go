package provider

import (
	"context"
	"fmt"

	"weatherctl/internal/config"
	"weatherctl/internal/models"
	"weatherctl/pkg/http/client"
)

// Client fetches the current weather for a coordinate pair and normalizes the
// upstream response into the shared report model. Implementations are
// stateless; selection happens once per run from the configured provider.
type Client interface {
	Name() string
	FetchCurrent(ctx context.Context, coords models.Coordinates, units models.Units) (models.WeatherReport, error)
}

// New selects the client implementation for the configured provider.
func New(cfg *config.Config, httpClient client.Interface) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenMeteo:
		return NewOpenMeteo(httpClient), nil
	case config.ProviderOpenWeatherMap:
		return NewOpenWeatherMap(httpClient, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
