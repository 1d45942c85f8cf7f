package domain

import "time"

// Represents one observed travel duration for a directed route at a
// specific moment. Samples are append-only: they are written by the
// poller on a successful API response and never mutated.
type Sample struct {
	ID            int64
	OriginID      int64
	DestinationID int64
	// Static route duration as reported by the mapping API.
	DurationSeconds int
	// Traffic-aware duration. Equals DurationSeconds when the API
	// returned no traffic data; all analysis runs on this value.
	TrafficDurationSeconds int
	DistanceMeters         int
	CapturedAt             time.Time
}

// Minutes returns the traffic-aware duration in minutes.
func (s Sample) Minutes() float64 {
	return float64(s.TrafficDurationSeconds) / 60.0
}
