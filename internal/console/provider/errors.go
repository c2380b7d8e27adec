package provider

import "fmt"

// APIError is a rejection reported by the provider in a structured response.
// Code/Title/Detail come from the first entry of the provider's error list;
// they may all be empty when the response body could not be parsed.
type APIError struct {
	StatusCode int
	Code       string
	Title      string
	Detail     string
	RawBody    string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("provider API error (status %d): %s", e.StatusCode, e.Detail)
	}
	if e.Title != "" {
		return fmt.Sprintf("provider API error (status %d): %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("provider API error (status %d)", e.StatusCode)
}

// BestDetail returns the most specific human-readable description available.
func (e *APIError) BestDetail() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Title != "" {
		return e.Title
	}
	return "API Error"
}

// TransportError means no response was received from the provider at all,
// reported distinctly from provider-side rejections.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
