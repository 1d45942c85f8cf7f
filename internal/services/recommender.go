package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"commute-tracker/internal/domain"
	"commute-tracker/internal/ports"
)

// MinBucketSamples is the density floor for an hour bucket to count as
// evidence. Sparser buckets are excluded from consideration entirely,
// not reported as zero.
const MinBucketSamples = 3

// weekOrder fixes the output ordering Monday..Sunday regardless of how
// samples were stored.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Recommender derives per-day departure suggestions from historical
// samples of a route.
type Recommender struct {
	Addresses ports.AddressRepository
	Samples   ports.SampleRepository
}

func NewRecommender(addresses ports.AddressRepository, samples ports.SampleRepository) *Recommender {
	return &Recommender{Addresses: addresses, Samples: samples}
}

// eligibleHour is one hour bucket dense enough to be considered.
type eligibleHour struct {
	hour        int
	meanMinutes float64
	count       int
	// estimated arrival in minutes since midnight when departing at
	// the start of the hour
	arrival float64
}

// Recommend suggests, for each day of the week, the latest departure
// hour whose observed mean duration still arrives by arriveBy. When no
// eligible hour meets the constraint, the hour with the earliest
// estimated arrival is reported instead and marked as a fallback. Days
// without a single eligible hour are omitted from the result.
//
// Routes where every day comes up empty yield domain.ErrInsufficientData.
func (r *Recommender) Recommend(
	ctx context.Context,
	originID, destinationID int64,
	arriveBy domain.TimeOfDay,
) ([]domain.Recommendation, error) {
	if err := validateRoute(ctx, r.Addresses, originID, destinationID); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	samples, err := r.Samples.ListByRoute(ctx, originID, destinationID, nil)
	if err != nil {
		return nil, fmt.Errorf("recommend: list samples for route %d -> %d: %w", originID, destinationID, err)
	}

	buckets := BucketByDayHour(samples)

	recs := make([]domain.Recommendation, 0, len(weekOrder))
	for _, day := range weekOrder {
		hours := eligibleHours(buckets, day)
		if len(hours) == 0 {
			continue
		}

		rec := pickDeparture(day, hours, arriveBy)
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("recommend for route %d -> %d: %w", originID, destinationID, domain.ErrInsufficientData)
	}

	return recs, nil
}

// eligibleHours collects the hour buckets of one weekday that meet the
// density floor, sorted by hour ascending.
func eligibleHours(buckets map[DayHour][]domain.Sample, day time.Weekday) []eligibleHour {
	hours := make([]eligibleHour, 0, 24)
	for hour := 0; hour < 24; hour++ {
		bucket := buckets[DayHour{Day: day, Hour: hour}]
		if len(bucket) < MinBucketSamples {
			continue
		}

		mean := stat.Mean(bucketMinutes(bucket), nil)
		hours = append(hours, eligibleHour{
			hour:        hour,
			meanMinutes: mean,
			count:       len(bucket),
			arrival:     float64(hour*60) + mean,
		})
	}

	sort.Slice(hours, func(i, j int) bool { return hours[i].hour < hours[j].hour })
	return hours
}

// pickDeparture selects the recommendation for one day.
//
// Primary rule: the latest hour whose estimated arrival is no later
// than the target (leaving later is preferable when outcomes are
// equal). Fallback: the hour with the earliest estimated arrival, ties
// broken toward the later hour.
func pickDeparture(day time.Weekday, hours []eligibleHour, arriveBy domain.TimeOfDay) domain.Recommendation {
	target := float64(arriveBy)

	var chosen *eligibleHour
	for i := range hours {
		if hours[i].arrival <= target {
			chosen = &hours[i]
		}
	}

	fallback := false
	if chosen == nil {
		fallback = true
		for i := range hours {
			if chosen == nil || hours[i].arrival <= chosen.arrival {
				chosen = &hours[i]
			}
		}
	}

	return domain.Recommendation{
		Day:             day,
		DepartAt:        domain.TimeOfDay(chosen.hour * 60),
		ExpectedMinutes: chosen.meanMinutes,
		SampleCount:     chosen.count,
		Fallback:        fallback,
	}
}
