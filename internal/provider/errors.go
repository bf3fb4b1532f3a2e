package provider

import "fmt"

// MissingAPIKeyError is returned before any network I/O when the selected
// provider requires an API key and none is configured.
type MissingAPIKeyError struct {
	Provider string
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("missing API key for provider %s", e.Provider)
}

// ProviderError is a non-2xx response from an upstream weather API.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.Status, e.Body)
}

// ParseError is a malformed or incomplete upstream response body.
type ParseError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response parse error: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s response parse error: %s", e.Provider, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
