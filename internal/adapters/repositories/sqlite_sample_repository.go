package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"commute-tracker/internal/domain"
)

// SQLite-backed implementation of the SampleRepository port.
type SqliteSampleRepository struct{ DB *sql.DB }

func NewSqliteSampleRepository(db *sql.DB) *SqliteSampleRepository {
	return &SqliteSampleRepository{DB: db}
}

// InsertSample persists one reading. Each insert is its own implicit
// transaction, so a crash loses at most the in-flight sample.
func (s *SqliteSampleRepository) InsertSample(ctx context.Context, sample *domain.Sample) error {
	if s.DB == nil {
		return errors.New("sqlite sample repository: DB is nil")
	}
	if sample == nil {
		return errors.New("insert sample: sample is nil")
	}

	query := `
	INSERT INTO samples (origin_id, destination_id, duration_seconds,
		traffic_duration_seconds, distance_meters, captured_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		sample.OriginID, sample.DestinationID, sample.DurationSeconds,
		sample.TrafficDurationSeconds, sample.DistanceMeters, sample.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample origin=%d dest=%d: %w", sample.OriginID, sample.DestinationID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert sample: last insert id: %w", err)
	}
	sample.ID = id

	return nil
}

// ListByRoute returns samples for a directed route in captured-at
// order. The weekday filter is applied in Go so both SQL dialects agree
// on local-time weekday semantics.
func (s *SqliteSampleRepository) ListByRoute(
	ctx context.Context,
	originID, destinationID int64,
	weekday *time.Weekday,
) ([]domain.Sample, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite sample repository: DB is nil")
	}

	query := `
	SELECT id, origin_id, destination_id, duration_seconds,
		traffic_duration_seconds, distance_meters, captured_at
	FROM samples
	WHERE origin_id = ? AND destination_id = ?
	ORDER BY captured_at;
	`
	rows, err := s.DB.QueryContext(ctx, query, originID, destinationID)
	if err != nil {
		return nil, fmt.Errorf("list samples: query samples table: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows, weekday)
}

// scanSamples is shared by the SQLite and Postgres repositories; both
// select the same columns in the same order.
func scanSamples(rows *sql.Rows, weekday *time.Weekday) ([]domain.Sample, error) {
	samples := make([]domain.Sample, 0, 64)
	for rows.Next() {
		var smp domain.Sample
		err := rows.Scan(&smp.ID, &smp.OriginID, &smp.DestinationID,
			&smp.DurationSeconds, &smp.TrafficDurationSeconds,
			&smp.DistanceMeters, &smp.CapturedAt)
		if err != nil {
			return nil, fmt.Errorf("list samples: scan row: %w", err)
		}

		if weekday != nil && smp.CapturedAt.Local().Weekday() != *weekday {
			continue
		}
		samples = append(samples, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list samples: row iteration: %w", err)
	}

	return samples, nil
}
