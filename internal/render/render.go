package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"weatherctl/internal/config"
	"weatherctl/internal/models"
)

// Write prints the three-line report: temperature and feels-like, condition
// and wind, local time and provider attribution. Cached reports are marked.
func Write(w io.Writer, report models.Report, cfg *config.Config, now time.Time) {
	temperature := Temperature(report.Temperature, report.Units)
	feelsLike := Temperature(report.FeelsLike, report.Units)
	windSpeed := WindSpeed(report.WindSpeed, report.Units)

	attribution := cfg.Provider.URL()
	if report.Cached {
		attribution += " (cached)"
	}

	fmt.Fprintf(w, "%-14sfeels like %s\n", temperature, feelsLike)
	fmt.Fprintf(w, "%-14swind speed %s (%s)\n", report.Condition.Display(), windSpeed, CompassDirection(report.WindDirection))
	fmt.Fprintf(w, "%-14s%s\n", Clock(now, cfg.TimeFormat), attribution)
}

// Temperature renders a temperature truncated to whole degrees.
func Temperature(value float64, units models.Units) string {
	return fmt.Sprintf("%d%s", int(value), units.TemperatureSuffix())
}

func WindSpeed(value float64, units models.Units) string {
	return fmt.Sprintf("%.1f%s", value, units.WindSpeedSuffix())
}

// Clock formats the local time per the configured time format.
func Clock(now time.Time, format config.TimeFormat) string {
	if format == config.TimeFormat12h {
		return now.Format("03:04 PM")
	}
	return now.Format("15:04")
}

// CompassDirection maps degrees-from-north onto an eight-point compass.
func CompassDirection(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}

	switch {
	case d < 22.5:
		return "N"
	case d < 67.5:
		return "NE"
	case d < 112.5:
		return "E"
	case d < 157.5:
		return "SE"
	case d < 202.5:
		return "S"
	case d < 247.5:
		return "SW"
	case d < 292.5:
		return "W"
	case d < 337.5:
		return "NW"
	default:
		return "N"
	}
}
