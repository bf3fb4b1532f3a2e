package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"weatherctl/internal/models"
)

type Provider string

const (
	ProviderOpenMeteo      Provider = "open-meteo"
	ProviderOpenWeatherMap Provider = "open-weather-map"
)

// URL is the attribution address shown in the rendered report.
func (p Provider) URL() string {
	switch p {
	case ProviderOpenWeatherMap:
		return "https://openweathermap.org"
	default:
		return "https://open-meteo.com"
	}
}

type TimeFormat string

const (
	TimeFormat24h TimeFormat = "24h"
	TimeFormat12h TimeFormat = "12h"
)

// Location is the config file's location setting. In TOML it is a two-element
// array: either [latitude, longitude] or ["City", "CountryCode"]. Exactly one
// of Coordinates and City/Country is set after decoding.
type Location struct {
	Coordinates *models.Coordinates
	City        string
	Country     string
}

func (l *Location) UnmarshalTOML(v interface{}) error {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return fmt.Errorf("location must be [lat, lon] or [city, country]")
	}

	if city, ok := arr[0].(string); ok {
		country, ok := arr[1].(string)
		if !ok {
			return fmt.Errorf("location country must be a string, got %T", arr[1])
		}
		l.City = city
		l.Country = country
		return nil
	}

	lat, err := tomlFloat(arr[0])
	if err != nil {
		return fmt.Errorf("location latitude: %w", err)
	}
	lon, err := tomlFloat(arr[1])
	if err != nil {
		return fmt.Errorf("location longitude: %w", err)
	}
	l.Coordinates = &models.Coordinates{Latitude: lat, Longitude: lon}
	return nil
}

func tomlFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// Config is the validated per-run configuration handed to the acquisition
// pipeline. It is immutable once loaded.
type Config struct {
	Provider        Provider     `toml:"provider" validate:"oneof=open-meteo open-weather-map"`
	APIKey          string       `toml:"api_key" validate:"required_if=Provider open-weather-map"`
	Location        *Location    `toml:"location"`
	Units           models.Units `toml:"units" validate:"oneof=metric imperial"`
	TimeFormat      TimeFormat   `toml:"time_format" validate:"oneof=12h 24h"`
	CachingDuration Duration     `toml:"caching_duration"`
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Provider:        ProviderOpenMeteo,
		Units:           models.UnitsMetric,
		TimeFormat:      TimeFormat24h,
		CachingDuration: Duration{time.Hour},
	}
}

// Load reads the TOML config at path. A missing file falls back to defaults;
// a file that exists but cannot be parsed is an error. An empty api_key is
// filled from the OPENWEATHER_API_KEY environment variable (a .env file in
// the working directory is honored).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Warn().Str("path", path).Msg("Config file does not exist, using defaults")
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.CachingDuration.Duration <= 0 {
		return fmt.Errorf("invalid config: caching_duration must be positive")
	}
	return nil
}
