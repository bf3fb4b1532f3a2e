package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherctl/internal/config"
	"weatherctl/internal/models"
	"weatherctl/pkg/http/client"
)

func testClient() *client.Client {
	return client.New(client.Options{Timeout: 5 * time.Second})
}

func TestResolveExplicitCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		coords models.Coordinates
	}{
		{name: "munich", coords: models.Coordinates{Latitude: 48.137154, Longitude: 11.576124}},
		{name: "southern hemisphere", coords: models.Coordinates{Latitude: -33.8688, Longitude: 151.2093}},
		{name: "lat boundary", coords: models.Coordinates{Latitude: 90, Longitude: 0}},
		{name: "lon boundary", coords: models.Coordinates{Latitude: 0, Longitude: -180}},
	}

	resolver := NewResolver(testClient())

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.Resolve(context.Background(), &config.Location{Coordinates: &tt.coords})
			require.NoError(t, err)
			assert.Equal(t, tt.coords, got)
		})
	}
}

func TestResolveOutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		coords models.Coordinates
	}{
		{name: "latitude too high", coords: models.Coordinates{Latitude: 90.01, Longitude: 0}},
		{name: "latitude too low", coords: models.Coordinates{Latitude: -91, Longitude: 0}},
		{name: "longitude too high", coords: models.Coordinates{Latitude: 0, Longitude: 180.5}},
		{name: "longitude too low", coords: models.Coordinates{Latitude: 0, Longitude: -181}},
	}

	resolver := NewResolver(testClient())

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := resolver.Resolve(context.Background(), &config.Location{Coordinates: &tt.coords})
			require.Error(t, err)

			var invalidErr *InvalidLocationError
			assert.True(t, errors.As(err, &invalidErr))
		})
	}
}

func TestResolveCityCountry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Munich", r.URL.Query().Get("name"))
		assert.Equal(t, "DE", r.URL.Query().Get("countryCode"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))

		_, _ = w.Write([]byte(`{"results":[{"latitude":48.13743,"longitude":11.57549,"name":"Munich"}]}`))
	}))
	defer srv.Close()

	resolver := NewResolver(testClient(), WithGeocodingBaseURL(srv.URL))

	got, err := resolver.Resolve(context.Background(), &config.Location{City: "Munich", Country: "DE"})
	require.NoError(t, err)
	assert.InDelta(t, 48.13743, got.Latitude, 1e-9)
	assert.InDelta(t, 11.57549, got.Longitude, 1e-9)
}

func TestResolveCityNoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	resolver := NewResolver(testClient(), WithGeocodingBaseURL(srv.URL))

	_, err := resolver.Resolve(context.Background(), &config.Location{City: "Atlantis", Country: "XX"})
	require.Error(t, err)

	var geoErr *GeocodingError
	assert.True(t, errors.As(err, &geoErr))
}

func TestResolveCityServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := NewResolver(testClient(), WithGeocodingBaseURL(srv.URL))

	_, err := resolver.Resolve(context.Background(), &config.Location{City: "Munich", Country: "DE"})
	require.Error(t, err)

	var geoErr *GeocodingError
	assert.True(t, errors.As(err, &geoErr))
}

func TestResolveFromIP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		_, _ = w.Write([]byte(`{"latitude":52.52,"longitude":13.405,"city":"Berlin"}`))
	}))
	defer srv.Close()

	resolver := NewResolver(testClient(), WithGeolocationBaseURL(srv.URL))

	got, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 52.52, got.Latitude, 1e-9)
	assert.InDelta(t, 13.405, got.Longitude, 1e-9)
}

func TestResolveFromIPMalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>blocked</html>`},
		{name: "missing fields", body: `{"city":"Berlin"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resolver := NewResolver(testClient(), WithGeolocationBaseURL(srv.URL))

			_, err := resolver.Resolve(context.Background(), nil)
			require.Error(t, err)

			var geoErr *GeolocationError
			assert.True(t, errors.As(err, &geoErr))
		})
	}
}

func TestResolveFromIPNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	resolver := NewResolver(testClient(), WithGeolocationBaseURL(srv.URL))

	_, err := resolver.Resolve(context.Background(), nil)
	require.Error(t, err)

	var geoErr *GeolocationError
	assert.True(t, errors.As(err, &geoErr))
}
