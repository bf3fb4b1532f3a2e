package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"weatherctl/internal/models"
	"weatherctl/pkg/http/client"
)

const defaultOpenMeteoBaseURL = "https://api.open-meteo.com"

// OpenMeteo talks to the Open-Meteo forecast API. No API key required.
type OpenMeteo struct {
	httpClient client.Interface
	baseURL    string
}

type OpenMeteoOption func(*OpenMeteo)

// WithOpenMeteoBaseURL overrides the API endpoint, used by tests.
func WithOpenMeteoBaseURL(baseURL string) OpenMeteoOption {
	return func(c *OpenMeteo) {
		c.baseURL = baseURL
	}
}

func NewOpenMeteo(httpClient client.Interface, opts ...OpenMeteoOption) *OpenMeteo {
	c := &OpenMeteo{
		httpClient: httpClient,
		baseURL:    defaultOpenMeteoBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *OpenMeteo) Name() string {
	return "open-meteo"
}

func (c *OpenMeteo) FetchCurrent(ctx context.Context, coords models.Coordinates, units models.Units) (models.WeatherReport, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("models", "best_match")
	params.Set("current", "apparent_temperature,wind_speed_10m,wind_direction_10m,temperature_2m,weather_code")
	params.Set("temperature_unit", units.TemperatureParam())
	params.Set("wind_speed_unit", units.WindSpeedParam())

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode()))
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("fetching current weather: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.WeatherReport{}, &ProviderError{
			Provider: c.Name(),
			Status:   resp.StatusCode,
			Body:     string(resp.Body),
		}
	}

	var payload struct {
		Current struct {
			Time                string   `json:"time"`
			Temperature         *float64 `json:"temperature_2m"`
			ApparentTemperature *float64 `json:"apparent_temperature"`
			WindSpeed           *float64 `json:"wind_speed_10m"`
			WindDirection       *float64 `json:"wind_direction_10m"`
			WeatherCode         *int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return models.WeatherReport{}, &ParseError{Provider: c.Name(), Message: "decoding response", Err: err}
	}

	cur := payload.Current
	if cur.Temperature == nil || cur.ApparentTemperature == nil ||
		cur.WindSpeed == nil || cur.WindDirection == nil || cur.WeatherCode == nil {
		return models.WeatherReport{}, &ParseError{Provider: c.Name(), Message: "response missing current weather fields"}
	}

	report := models.WeatherReport{
		Temperature:     *cur.Temperature,
		FeelsLike:       *cur.ApparentTemperature,
		Condition:       mapWeatherCode(*cur.WeatherCode),
		WindSpeed:       *cur.WindSpeed,
		WindDirection:   *cur.WindDirection,
		ObservationTime: parseObservationTime(cur.Time),
		Units:           units,
		Source:          c.Name(),
	}

	log.Debug().
		Float64("temperature", report.Temperature).
		Str("condition", string(report.Condition)).
		Msg("Fetched current weather from Open-Meteo")

	return report, nil
}

// parseObservationTime handles the minute-resolution ISO 8601 timestamps
// Open-Meteo returns, falling back to now if the field is unparseable.
func parseObservationTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}

// mapWeatherCode folds WMO weather codes into the shared condition set.
func mapWeatherCode(code int) models.Condition {
	switch {
	case code == 0 || code == 1:
		return models.ConditionClear
	case code == 2:
		return models.ConditionPartlyCloudy
	case code == 3:
		return models.ConditionOvercast
	case code == 45 || code == 48:
		return models.ConditionFoggy
	case (code >= 51 && code <= 57):
		return models.ConditionDrizzle
	case (code >= 61 && code <= 67):
		return models.ConditionRainy
	case code >= 71 && code <= 75:
		return models.ConditionSnowy
	case code == 77:
		return models.ConditionSnowGrains
	case code >= 80 && code <= 82:
		return models.ConditionRainShowers
	case code == 85 || code == 86:
		return models.ConditionSnowShowers
	case code == 95 || code == 96 || code == 99:
		return models.ConditionThunderstorms
	default:
		return models.ConditionUnknown
	}
}
