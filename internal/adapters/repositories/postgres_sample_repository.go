package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"commute-tracker/internal/domain"
)

// Postgres-backed implementation of the SampleRepository port.
type PostgresSampleRepository struct{ DB *sql.DB }

func NewPostgresSampleRepository(db *sql.DB) *PostgresSampleRepository {
	return &PostgresSampleRepository{DB: db}
}

func (p *PostgresSampleRepository) InsertSample(ctx context.Context, sample *domain.Sample) error {
	if p.DB == nil {
		return errors.New("postgres sample repository: DB is nil")
	}
	if sample == nil {
		return errors.New("insert sample: sample is nil")
	}

	query := `
	INSERT INTO samples (origin_id, destination_id, duration_seconds,
		traffic_duration_seconds, distance_meters, captured_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`
	err := p.DB.QueryRowContext(ctx, query,
		sample.OriginID, sample.DestinationID, sample.DurationSeconds,
		sample.TrafficDurationSeconds, sample.DistanceMeters, sample.CapturedAt,
	).Scan(&sample.ID)
	if err != nil {
		return fmt.Errorf("insert sample origin=%d dest=%d: %w", sample.OriginID, sample.DestinationID, err)
	}

	return nil
}

func (p *PostgresSampleRepository) ListByRoute(
	ctx context.Context,
	originID, destinationID int64,
	weekday *time.Weekday,
) ([]domain.Sample, error) {
	if p.DB == nil {
		return nil, errors.New("postgres sample repository: DB is nil")
	}

	query := `
	SELECT id, origin_id, destination_id, duration_seconds,
		traffic_duration_seconds, distance_meters, captured_at
	FROM samples
	WHERE origin_id = $1 AND destination_id = $2
	ORDER BY captured_at;
	`
	rows, err := p.DB.QueryContext(ctx, query, originID, destinationID)
	if err != nil {
		return nil, fmt.Errorf("list samples: query samples table: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows, weekday)
}
