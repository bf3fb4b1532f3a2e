package location

import "fmt"

// InvalidLocationError reports explicitly configured coordinates that lie
// outside valid geographic bounds.
type InvalidLocationError struct {
	Latitude  float64
	Longitude float64
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid location: coordinates (%v, %v) out of range", e.Latitude, e.Longitude)
}

// GeocodingError reports a failed city/country lookup.
type GeocodingError struct {
	Message string
	Err     error
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocoding failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("geocoding failed: %s", e.Message)
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// GeolocationError reports a failed IP-geolocation lookup.
type GeolocationError struct {
	Message string
	Err     error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("geolocation failed: %s", e.Message)
}

func (e *GeolocationError) Unwrap() error {
	return e.Err
}
