// Package directions implements the directions-provider port against the
// Google Directions API.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"
	directionsPath = "/maps/api/directions/json"
	maxAttempts    = 4
	initialBackoff = 200 * time.Millisecond
)

// GoogleProvider calls the Google Directions API with transient-failure
// retries and maps its statuses onto the engine's error taxonomy. Safe for
// concurrent use.
type GoogleProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger
}

// Option configures a GoogleProvider.
type Option func(*GoogleProvider)

// WithBaseURL overrides the API base URL, used by tests.
func WithBaseURL(u string) Option {
	return func(g *GoogleProvider) { g.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GoogleProvider) { g.client = c }
}

// NewGoogleProvider creates the provider. The API key is required.
func NewGoogleProvider(apiKey string, logger *zap.Logger, opts ...Option) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	g := &GoogleProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// directionsResponse mirrors the relevant slice of the Directions API body.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary          string `json:"summary"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Bounds route.Bounds `json:"bounds"`
		Legs   []struct {
			Distance          struct{ Value int } `json:"distance"`
			Duration          struct{ Value int } `json:"duration"`
			DurationInTraffic struct{ Value int } `json:"duration_in_traffic"`
			Steps             []struct {
				HTMLInstructions string              `json:"html_instructions"`
				Maneuver         string              `json:"maneuver"`
				Distance         struct{ Value int } `json:"distance"`
				Duration         struct{ Value int } `json:"duration"`
				Polyline         struct {
					Points string `json:"points"`
				} `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Routes fetches alternative routes between two points.
func (g *GoogleProvider) Routes(
	ctx context.Context,
	origin, destination route.LatLng,
	prefs route.Preferences,
) ([]route.ProviderRoute, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("alternatives", "true")
	params.Set("mode", "driving")
	params.Set("departure_time", "now")
	params.Set("key", g.apiKey)

	var avoid []string
	if prefs.AvoidHighways {
		avoid = append(avoid, "highways")
	}
	if prefs.AvoidTolls {
		avoid = append(avoid, "tolls")
	}
	if len(avoid) > 0 {
		params.Set("avoid", strings.Join(avoid, "|"))
	}

	reqURL := g.baseURL + directionsPath + "?" + params.Encode()

	body, err := g.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var parsed directionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if err := statusError(parsed.Status, parsed.ErrorMessage); err != nil {
		return nil, err
	}

	return convertRoutes(parsed), nil
}

// getWithRetry retries transient failures (network errors, 429/5xx
// responses, retryable API statuses) with exponential backoff while
// respecting context cancellation. Non-retryable API statuses fail
// immediately.
func (g *GoogleProvider) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := g.get(ctx, reqURL)
		if err == nil {
			// Peek at the API status so retryable statuses behind a 200
			// are retried too.
			var probe struct {
				Status       string `json:"status"`
				ErrorMessage string `json:"error_message"`
			}
			if jsonErr := json.Unmarshal(body, &probe); jsonErr == nil {
				if serr := statusError(probe.Status, probe.ErrorMessage); serr != nil && retryable(serr) {
					err = serr
				}
			}
			if err == nil {
				return body, nil
			}
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		g.logger.Warn("directions request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (g *GoogleProvider) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		status := route.ProviderStatusServerError
		if resp.StatusCode == http.StatusTooManyRequests {
			status = route.ProviderStatusRateLimited
		}
		return nil, &route.ProviderError{
			Status:  status,
			Message: fmt.Sprintf("http %d", resp.StatusCode),
		}
	}

	return body, nil
}

// statusError maps a Directions API status onto the provider error
// taxonomy. OK returns nil.
func statusError(status, message string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return &route.ProviderError{Status: route.ProviderStatusZeroResults, Message: message}
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return &route.ProviderError{Status: route.ProviderStatusRateLimited, Message: message}
	case "REQUEST_DENIED":
		return &route.ProviderError{Status: route.ProviderStatusDenied, Message: message}
	case "INVALID_REQUEST", "NOT_FOUND", "MAX_WAYPOINTS_EXCEEDED", "MAX_ROUTE_LENGTH_EXCEEDED":
		return &route.ProviderError{Status: route.ProviderStatusInvalid, Message: message}
	default:
		return &route.ProviderError{Status: route.ProviderStatusServerError, Message: status + " " + message}
	}
}

func retryable(err error) bool {
	var perr *route.ProviderError
	if errors.As(err, &perr) {
		return perr.Retryable()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func convertRoutes(parsed directionsResponse) []route.ProviderRoute {
	out := make([]route.ProviderRoute, 0, len(parsed.Routes))
	for _, r := range parsed.Routes {
		pr := route.ProviderRoute{
			Summary:  r.Summary,
			Polyline: r.OverviewPolyline.Points,
			Bounds:   r.Bounds,
		}
		for _, l := range r.Legs {
			pl := route.ProviderLeg{
				DistanceMeters:           l.Distance.Value,
				DurationSeconds:          l.Duration.Value,
				DurationInTrafficSeconds: l.DurationInTraffic.Value,
			}
			for _, s := range l.Steps {
				pl.Steps = append(pl.Steps, route.ProviderStep{
					Instruction:     stripHTML(s.HTMLInstructions),
					Maneuver:        s.Maneuver,
					DistanceMeters:  s.Distance.Value,
					DurationSeconds: s.Duration.Value,
					Polyline:        s.Polyline.Points,
				})
			}
			pr.Legs = append(pr.Legs, pl)
		}
		out = append(out, pr)
	}
	return out
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.Join(strings.Fields(htmlTagPattern.ReplaceAllString(s, " ")), " ")
}
