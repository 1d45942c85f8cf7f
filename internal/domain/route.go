package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute precision, independent of
// any date. Stored as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Descriptive statistics over the samples of one directed route.
// Durations are traffic-aware minutes; no smoothing or outlier
// rejection is applied, so Min and Max reproduce raw extremes.
type RouteStats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// A suggested departure hour for one day of the week.
type Recommendation struct {
	Day             time.Weekday
	DepartAt        TimeOfDay
	ExpectedMinutes float64
	SampleCount     int
	// Fallback marks a day where no eligible hour arrives by the
	// requested time; DepartAt is then the hour with the earliest
	// estimated arrival instead.
	Fallback bool
}

// Live travel-time reading for a route, as returned by the mapping API.
type TravelTime struct {
	DurationSeconds        int
	TrafficDurationSeconds int
	DistanceMeters         int
}
