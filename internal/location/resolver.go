package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"weatherctl/internal/config"
	"weatherctl/internal/models"
	"weatherctl/pkg/http/client"
)

const (
	defaultGeocodingBaseURL   = "https://geocoding-api.open-meteo.com"
	defaultGeolocationBaseURL = "https://am.i.mullvad.net"
)

// Resolver turns the config's location setting into concrete coordinates:
// explicit coordinates are range-checked and passed through, a city/country
// pair goes through the Open-Meteo geocoding API, and an absent location is
// resolved from the caller's IP. No retries; a single failure propagates.
type Resolver struct {
	httpClient         client.Interface
	geocodingBaseURL   string
	geolocationBaseURL string
}

type Option func(*Resolver)

// WithGeocodingBaseURL overrides the geocoding endpoint, used by tests.
func WithGeocodingBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		r.geocodingBaseURL = baseURL
	}
}

// WithGeolocationBaseURL overrides the IP-geolocation endpoint, used by tests.
func WithGeolocationBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		r.geolocationBaseURL = baseURL
	}
}

func NewResolver(httpClient client.Interface, opts ...Option) *Resolver {
	r := &Resolver{
		httpClient:         httpClient,
		geocodingBaseURL:   defaultGeocodingBaseURL,
		geolocationBaseURL: defaultGeolocationBaseURL,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) Resolve(ctx context.Context, loc *config.Location) (models.Coordinates, error) {
	switch {
	case loc == nil:
		return r.geolocate(ctx)
	case loc.Coordinates != nil:
		coords := *loc.Coordinates
		if !coords.InRange() {
			return models.Coordinates{}, &InvalidLocationError{
				Latitude:  coords.Latitude,
				Longitude: coords.Longitude,
			}
		}
		return coords, nil
	default:
		return r.geocode(ctx, loc.City, loc.Country)
	}
}

func (r *Resolver) geocode(ctx context.Context, city, country string) (models.Coordinates, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("format", "json")
	params.Set("countryCode", country)

	resp, err := r.httpClient.Get(ctx, fmt.Sprintf("%s/v1/search?%s", r.geocodingBaseURL, params.Encode()))
	if err != nil {
		return models.Coordinates{}, &GeocodingError{Message: "request failed", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, &GeocodingError{
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return models.Coordinates{}, &GeocodingError{Message: "decoding response", Err: err}
	}

	if len(payload.Results) == 0 {
		return models.Coordinates{}, &GeocodingError{
			Message: fmt.Sprintf("no match for %q, %q", city, country),
		}
	}

	coords := models.Coordinates{
		Latitude:  payload.Results[0].Latitude,
		Longitude: payload.Results[0].Longitude,
	}
	log.Debug().
		Str("city", city).
		Str("country", country).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("Geocoded configured location")

	return coords, nil
}

func (r *Resolver) geolocate(ctx context.Context) (models.Coordinates, error) {
	resp, err := r.httpClient.Get(ctx, r.geolocationBaseURL+"/json")
	if err != nil {
		return models.Coordinates{}, &GeolocationError{Message: "request failed", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, &GeolocationError{
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return models.Coordinates{}, &GeolocationError{Message: "decoding response", Err: err}
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return models.Coordinates{}, &GeolocationError{Message: "response missing coordinates"}
	}

	coords := models.Coordinates{
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
	}
	log.Debug().
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("Resolved location from IP")

	return coords, nil
}
