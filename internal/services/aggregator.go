package services

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"commute-tracker/internal/domain"
	"commute-tracker/internal/ports"
)

// Aggregator computes descriptive statistics over the stored samples of
// a directed route.
type Aggregator struct {
	Addresses ports.AddressRepository
	Samples   ports.SampleRepository
}

func NewAggregator(addresses ports.AddressRepository, samples ports.SampleRepository) *Aggregator {
	return &Aggregator{Addresses: addresses, Samples: samples}
}

// Stats returns count, min, max and mean travel minutes for the route
// originID -> destinationID. The two directions of a pair are distinct
// routes with independent sample sets.
//
// A route with zero samples yields domain.ErrInsufficientData rather
// than zero-valued statistics.
func (a *Aggregator) Stats(ctx context.Context, originID, destinationID int64) (domain.RouteStats, error) {
	if err := validateRoute(ctx, a.Addresses, originID, destinationID); err != nil {
		return domain.RouteStats{}, fmt.Errorf("stats: %w", err)
	}

	samples, err := a.Samples.ListByRoute(ctx, originID, destinationID, nil)
	if err != nil {
		return domain.RouteStats{}, fmt.Errorf("stats: list samples for route %d -> %d: %w", originID, destinationID, err)
	}

	if len(samples) == 0 {
		return domain.RouteStats{}, fmt.Errorf("stats for route %d -> %d: %w", originID, destinationID, domain.ErrInsufficientData)
	}

	xs := bucketMinutes(samples)

	return domain.RouteStats{
		Count: len(xs),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
		Mean:  stat.Mean(xs, nil),
	}, nil
}

// validateRoute checks that both endpoints reference stored addresses.
// The repository surfaces *domain.InvalidRouteError for missing ids.
func validateRoute(ctx context.Context, addresses ports.AddressRepository, originID, destinationID int64) error {
	if _, err := addresses.GetAddress(ctx, originID); err != nil {
		return err
	}
	if _, err := addresses.GetAddress(ctx, destinationID); err != nil {
		return err
	}
	return nil
}
