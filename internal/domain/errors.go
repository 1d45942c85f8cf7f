package domain

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by API-dependent operations when no
// mapping API key is configured.
var ErrMissingAPIKey = errors.New("maps api key is not configured")

// ErrInsufficientData signals that a route has no (or too few) samples
// to answer a query. Callers must handle it; it is never replaced by a
// zero-valued result.
var ErrInsufficientData = errors.New("insufficient data for route")

// InvalidRouteError reports a route endpoint that references no stored
// address.
type InvalidRouteError struct {
	AddressID int64
}

func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("address %d does not exist", e.AddressID)
}
