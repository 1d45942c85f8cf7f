package ports

import (
	"context"

	"commute-tracker/internal/domain"
)

// Contract for retrieving the current travel time between two locations
// given as free-form address strings. Implementations issue a
// traffic-aware "depart now" request.
type TravelTimeProvider interface {
	// Return the current travel time from origin to destination.
	// Any non-success API response is an error; callers decide
	// whether that is fatal or a skip signal.
	GetTravelTime(ctx context.Context, origin string, destination string) (domain.TravelTime, error)
}
