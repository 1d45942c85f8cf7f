package ports

import (
	"context"
	"time"

	"commute-tracker/internal/domain"
)

// Persistence contract for travel-time samples. Samples are append-only;
// there is no update or single-row delete.
type SampleRepository interface {
	// Insert persists one sample immediately (no write buffering).
	InsertSample(ctx context.Context, sample *domain.Sample) error

	// ListByRoute returns all samples for a directed route in
	// captured-at order, optionally restricted to one day of the week.
	ListByRoute(ctx context.Context, originID, destinationID int64, weekday *time.Weekday) ([]domain.Sample, error)
}
