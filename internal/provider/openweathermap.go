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

const defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org"

// OpenWeatherMap talks to the OpenWeatherMap current-weather API. Requires a
// static API key; the key check happens before any network call.
type OpenWeatherMap struct {
	httpClient client.Interface
	baseURL    string
	apiKey     string
}

type OpenWeatherMapOption func(*OpenWeatherMap)

// WithOpenWeatherMapBaseURL overrides the API endpoint, used by tests.
func WithOpenWeatherMapBaseURL(baseURL string) OpenWeatherMapOption {
	return func(c *OpenWeatherMap) {
		c.baseURL = baseURL
	}
}

func NewOpenWeatherMap(httpClient client.Interface, apiKey string, opts ...OpenWeatherMapOption) *OpenWeatherMap {
	c := &OpenWeatherMap{
		httpClient: httpClient,
		baseURL:    defaultOpenWeatherMapBaseURL,
		apiKey:     apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *OpenWeatherMap) Name() string {
	return "open-weather-map"
}

func (c *OpenWeatherMap) FetchCurrent(ctx context.Context, coords models.Coordinates, units models.Units) (models.WeatherReport, error) {
	if c.apiKey == "" {
		return models.WeatherReport{}, &MissingAPIKeyError{Provider: c.Name()}
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", string(units))

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, params.Encode()))
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
		Main *struct {
			Temp      *float64 `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
		} `json:"main"`
		Wind *struct {
			Speed *float64 `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
		Dt int64 `json:"dt"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return models.WeatherReport{}, &ParseError{Provider: c.Name(), Message: "decoding response", Err: err}
	}

	if payload.Main == nil || payload.Main.Temp == nil || payload.Main.FeelsLike == nil ||
		payload.Wind == nil || payload.Wind.Speed == nil || payload.Wind.Deg == nil {
		return models.WeatherReport{}, &ParseError{Provider: c.Name(), Message: "response missing weather fields"}
	}

	condition := models.ConditionUnknown
	if len(payload.Weather) > 0 {
		condition = mapConditionID(payload.Weather[0].ID)
	}

	observed := time.Now().UTC()
	if payload.Dt > 0 {
		observed = time.Unix(payload.Dt, 0).UTC()
	}

	report := models.WeatherReport{
		Temperature:     *payload.Main.Temp,
		FeelsLike:       *payload.Main.FeelsLike,
		Condition:       condition,
		WindSpeed:       *payload.Wind.Speed,
		WindDirection:   *payload.Wind.Deg,
		ObservationTime: observed,
		Units:           units,
		Source:          c.Name(),
	}

	log.Debug().
		Float64("temperature", report.Temperature).
		Str("condition", string(report.Condition)).
		Msg("Fetched current weather from OpenWeatherMap")

	return report, nil
}

// mapConditionID folds OpenWeatherMap condition ids into the shared set.
func mapConditionID(id int) models.Condition {
	switch {
	case id >= 200 && id <= 232:
		return models.ConditionThunderstorms
	case id >= 300 && id <= 321:
		return models.ConditionDrizzle
	case (id >= 500 && id <= 504) || id == 511:
		return models.ConditionRainy
	case id >= 520 && id <= 531:
		return models.ConditionRainShowers
	case (id >= 600 && id <= 602) || (id >= 611 && id <= 616):
		return models.ConditionSnowy
	case id >= 620 && id <= 622:
		return models.ConditionSnowShowers
	case id == 741:
		return models.ConditionFoggy
	case id == 800:
		return models.ConditionClear
	case id == 801 || id == 802:
		return models.ConditionPartlyCloudy
	case id == 803 || id == 804:
		return models.ConditionOvercast
	default:
		return models.ConditionUnknown
	}
}
