package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration with the cache-TTL text format used in the
// config file: an integer followed by "min" or "h", e.g. "30min" or "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	switch {
	case strings.HasSuffix(s, "min"):
		minutes, err := strconv.ParseInt(strings.TrimSuffix(s, "min"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = time.Duration(minutes) * time.Minute
	case strings.HasSuffix(s, "h"):
		hours, err := strconv.ParseInt(strings.TrimSuffix(s, "h"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = time.Duration(hours) * time.Hour
	default:
		return fmt.Errorf("invalid duration %q: expected a value like '30min' or '1h'", s)
	}

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	minutes := int64(d.Duration / time.Minute)
	if minutes > 0 && minutes%60 == 0 {
		return []byte(fmt.Sprintf("%dh", minutes/60)), nil
	}
	return []byte(fmt.Sprintf("%dmin", minutes)), nil
}
