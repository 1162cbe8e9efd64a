// Package providers defines the weather source contract shared by the
// wttr.in client and the simulated provider.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"weather-dashboard/internal/models"
)

// Provider fetches the current conditions for a city
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (*models.RawReading, error)
}

// ErrorKind classifies provider failures
type ErrorKind string

const (
	KindCityNotFound ErrorKind = "city_not_found"
	KindNoData       ErrorKind = "no_data"
	KindUnavailable  ErrorKind = "unavailable"
	KindTimeout      ErrorKind = "timeout"
)

// ProviderError is returned by providers for upstream failures
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether retrying later may succeed
func (e *ProviderError) IsTransient() bool {
	return e.Kind == KindUnavailable || e.Kind == KindTimeout
}

// StatusCode maps the failure to the HTTP status surfaced to clients
func (e *ProviderError) StatusCode() int {
	switch e.Kind {
	case KindCityNotFound, KindNoData:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusServiceUnavailable
	}
}

// KindOf returns the ErrorKind of err, or "" when err is not a ProviderError
func KindOf(err error) ErrorKind {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return ""
}
