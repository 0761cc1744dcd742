package route

import (
	"context"
	"fmt"
)

// Preferences are the routing options forwarded to the directions provider.
type Preferences struct {
	AvoidHighways bool `json:"avoidHighways"`
	AvoidTolls    bool `json:"avoidTolls"`
}

// ProviderStep is one raw maneuver as returned by the directions provider.
type ProviderStep struct {
	Instruction     string
	Maneuver        string
	DistanceMeters  int
	DurationSeconds int
	Polyline        string
}

// ProviderLeg is one raw hop as returned by the directions provider.
type ProviderLeg struct {
	DistanceMeters           int
	DurationSeconds          int
	DurationInTrafficSeconds int
	Steps                    []ProviderStep
}

// ProviderRoute is one raw candidate route as returned by the directions
// provider, before normalization.
type ProviderRoute struct {
	Summary  string
	Polyline string
	Bounds   Bounds
	Legs     []ProviderLeg
}

// DirectionsProvider returns candidate routes between two points. The
// provider is expected to retry transient failures internally and to map
// upstream statuses onto ProviderError.
type DirectionsProvider interface {
	Routes(ctx context.Context, origin, destination LatLng, prefs Preferences) ([]ProviderRoute, error)
}

// ProviderStatus identifies the class of a directions-provider failure.
type ProviderStatus string

const (
	ProviderStatusRateLimited ProviderStatus = "rate_limited"
	ProviderStatusDenied      ProviderStatus = "denied"
	ProviderStatusZeroResults ProviderStatus = "zero_results"
	ProviderStatusInvalid     ProviderStatus = "invalid_request"
	ProviderStatusServerError ProviderStatus = "server_error"
)

// ProviderError is a non-OK response from the directions provider.
type ProviderError struct {
	Status  ProviderStatus
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directions provider: %s", e.Status)
	}
	return fmt.Sprintf("directions provider: %s: %s", e.Status, e.Message)
}

// Retryable reports whether the failure is transient and worth retrying.
func (e *ProviderError) Retryable() bool {
	return e.Status == ProviderStatusRateLimited || e.Status == ProviderStatusServerError
}
