package models

import (
	"math"
	"time"
)

// Units selects the measurement system reports are requested and rendered in.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// TemperatureParam is the temperature unit name Open-Meteo expects.
func (u Units) TemperatureParam() string {
	if u == UnitsImperial {
		return "fahrenheit"
	}
	return "celsius"
}

// WindSpeedParam is the wind speed unit name Open-Meteo expects.
func (u Units) WindSpeedParam() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "kmh"
}

func (u Units) TemperatureSuffix() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

func (u Units) WindSpeedSuffix() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "km/h"
}

// Condition is the provider-neutral weather condition. Each provider client
// maps its own code scheme onto this set.
type Condition string

const (
	ConditionClear         Condition = "clear"
	ConditionPartlyCloudy  Condition = "partly_cloudy"
	ConditionOvercast      Condition = "overcast"
	ConditionFoggy         Condition = "foggy"
	ConditionDrizzle       Condition = "drizzle"
	ConditionRainy         Condition = "rainy"
	ConditionSnowy         Condition = "snowy"
	ConditionSnowGrains    Condition = "snow_grains"
	ConditionRainShowers   Condition = "rain_showers"
	ConditionSnowShowers   Condition = "snow_showers"
	ConditionThunderstorms Condition = "thunderstorms"
	ConditionUnknown       Condition = "unknown"
)

// Display returns the human-readable condition label.
func (c Condition) Display() string {
	switch c {
	case ConditionClear:
		return "Clear"
	case ConditionPartlyCloudy:
		return "Partly Cloudy"
	case ConditionOvercast:
		return "Overcast"
	case ConditionFoggy:
		return "Foggy"
	case ConditionDrizzle:
		return "Drizzle"
	case ConditionRainy:
		return "Rainy"
	case ConditionSnowy:
		return "Snowy"
	case ConditionSnowGrains:
		return "Snow Grains"
	case ConditionRainShowers, ConditionSnowShowers:
		return "Showers"
	case ConditionThunderstorms:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InRange reports whether the pair lies within valid geographic bounds.
func (c Coordinates) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// WeatherReport is the provider-normalized observation shared by every
// provider client. Units always matches what the caller requested.
type WeatherReport struct {
	Temperature     float64   `json:"temperature"`
	FeelsLike       float64   `json:"feels_like"`
	Condition       Condition `json:"condition"`
	WindSpeed       float64   `json:"wind_speed"`
	WindDirection   float64   `json:"wind_direction"` // degrees from north
	ObservationTime time.Time `json:"observation_time"`
	Units           Units     `json:"units"`
	Source          string    `json:"source"`
}

// Finite reports whether every numeric field holds a finite value.
func (r WeatherReport) Finite() bool {
	for _, v := range []float64{r.Temperature, r.FeelsLike, r.WindSpeed, r.WindDirection} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Report is what the acquisition pipeline hands to the renderer: the
// normalized observation plus its provenance.
type Report struct {
	WeatherReport
	Cached bool `json:"cached"`
}
