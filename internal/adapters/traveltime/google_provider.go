package traveltime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"commute-tracker/internal/domain"
	"commute-tracker/internal/platform/obs"
)

// GoogleTravelTimeProvider implements TravelTimeProvider using the
// Google Maps Directions API with traffic-aware "depart now" requests.
//
// It coordinates:
//   - Address normalization
//   - External API calls with retry/backoff
//   - Mapping of API status codes to errors
//
// The provider is safe for concurrent use.
type GoogleTravelTimeProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	mode    string
}

func NewGoogleTravelTimeProvider(apiKey string) (*GoogleTravelTimeProvider, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	provider := &GoogleTravelTimeProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		mode:    "driving",
	}

	return provider, nil
}

// directionsResponse carries the subset of the Directions payload the
// tracker needs: one leg's durations and distance, plus the API status.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration          *durationValue `json:"duration"`
			DurationInTraffic *durationValue `json:"duration_in_traffic"`
			Distance          *distanceValue `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

type durationValue struct {
	Value int `json:"value"` // seconds
}

type distanceValue struct {
	Value int `json:"value"` // meters
}

// normalize ensures consistent request parameters by collapsing whitespace.
func (g *GoogleTravelTimeProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetTravelTime fetches the current travel time from origin to destination.
func (g *GoogleTravelTimeProvider) GetTravelTime(
	ctx context.Context,
	origin string,
	destination string,
) (_ domain.TravelTime, err error) {
	defer obs.Time(ctx, "google.GetTravelTime")(&err)

	normOrigin := g.normalize(origin)
	if normOrigin == "" {
		return domain.TravelTime{}, errors.New("origin must be non-empty")
	}

	normDestination := g.normalize(destination)
	if normDestination == "" {
		return domain.TravelTime{}, errors.New("destination must be non-empty")
	}

	endpoint := g.baseURL + "/maps/api/directions/json"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("origin", normOrigin)
		q.Set("destination", normDestination)
		q.Set("mode", g.mode)
		q.Set("departure_time", "now")
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.TravelTime{}, fmt.Errorf("directions request %q -> %q: %w", normOrigin, normDestination, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.TravelTime{}, fmt.Errorf("decode directions response: %w", err)
	}

	// The Directions API reports failures (bad key, quota, no route)
	// via the status field on an HTTP 200 response.
	if decoded.Status != "OK" {
		if decoded.ErrorMessage != "" {
			return domain.TravelTime{}, fmt.Errorf("directions api status %s: %s", decoded.Status, decoded.ErrorMessage)
		}
		return domain.TravelTime{}, fmt.Errorf("directions api status %s", decoded.Status)
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return domain.TravelTime{}, fmt.Errorf("no route legs for %q -> %q", normOrigin, normDestination)
	}

	leg := decoded.Routes[0].Legs[0]
	if leg.Duration == nil || leg.Distance == nil {
		return domain.TravelTime{}, fmt.Errorf("directions leg missing metrics for %q -> %q", normOrigin, normDestination)
	}

	result := domain.TravelTime{
		DurationSeconds:        leg.Duration.Value,
		TrafficDurationSeconds: leg.Duration.Value,
		DistanceMeters:         leg.Distance.Value,
	}
	if leg.DurationInTraffic != nil {
		result.TrafficDurationSeconds = leg.DurationInTraffic.Value
	}

	return result, nil
}
