package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitsParams(t *testing.T) {
	assert.Equal(t, "celsius", UnitsMetric.TemperatureParam())
	assert.Equal(t, "kmh", UnitsMetric.WindSpeedParam())
	assert.Equal(t, "°C", UnitsMetric.TemperatureSuffix())
	assert.Equal(t, "km/h", UnitsMetric.WindSpeedSuffix())

	assert.Equal(t, "fahrenheit", UnitsImperial.TemperatureParam())
	assert.Equal(t, "mph", UnitsImperial.WindSpeedParam())
	assert.Equal(t, "°F", UnitsImperial.TemperatureSuffix())
	assert.Equal(t, "mph", UnitsImperial.WindSpeedSuffix())
}

func TestConditionDisplay(t *testing.T) {
	tests := []struct {
		condition Condition
		want      string
	}{
		{ConditionClear, "Clear"},
		{ConditionPartlyCloudy, "Partly Cloudy"},
		{ConditionSnowGrains, "Snow Grains"},
		{ConditionRainShowers, "Showers"},
		{ConditionSnowShowers, "Showers"},
		{ConditionThunderstorms, "Thunderstorm"},
		{ConditionUnknown, "Unknown"},
		{Condition("bogus"), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.condition.Display())
	}
}

func TestCoordinatesInRange(t *testing.T) {
	assert.True(t, Coordinates{Latitude: 48.137154, Longitude: 11.576124}.InRange())
	assert.True(t, Coordinates{Latitude: -90, Longitude: 180}.InRange())
	assert.False(t, Coordinates{Latitude: 90.1, Longitude: 0}.InRange())
	assert.False(t, Coordinates{Latitude: 0, Longitude: -180.5}.InRange())
}

func TestWeatherReportFinite(t *testing.T) {
	report := WeatherReport{Temperature: 12.3, FeelsLike: 10.1, WindSpeed: 5, WindDirection: 270}
	assert.True(t, report.Finite())

	report.FeelsLike = math.NaN()
	assert.False(t, report.Finite())

	report.FeelsLike = math.Inf(1)
	assert.False(t, report.Finite())
}
