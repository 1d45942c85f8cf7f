package services

import (
	"time"

	"commute-tracker/internal/domain"
)

// DayHour identifies one (day-of-week, hour-of-day) bucket.
type DayHour struct {
	Day  time.Weekday
	Hour int
}

// BucketByDayHour groups samples by the local weekday and hour of their
// capture time. It is a pure function over an in-memory slice; nothing
// is persisted and storage order does not matter.
func BucketByDayHour(samples []domain.Sample) map[DayHour][]domain.Sample {
	buckets := make(map[DayHour][]domain.Sample)
	for _, s := range samples {
		at := s.CapturedAt.Local()
		key := DayHour{Day: at.Weekday(), Hour: at.Hour()}
		buckets[key] = append(buckets[key], s)
	}
	return buckets
}

// bucketMinutes extracts the traffic-aware durations of a bucket in
// minutes, ready for the numeric kernels.
func bucketMinutes(samples []domain.Sample) []float64 {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Minutes()
	}
	return xs
}
