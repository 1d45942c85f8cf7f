package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"commute-tracker/internal/domain"
)

func setupRoute(t *testing.T) (*memAddressRepo, *memSampleRepo, int64, int64) {
	t.Helper()
	addrs := newMemAddressRepo()
	home, _ := addrs.AddAddress(context.Background(), domain.KindHome, "Home", "1 Home St")
	work, _ := addrs.AddAddress(context.Background(), domain.KindWork, "Office", "2 Work Ave")
	return addrs, &memSampleRepo{}, home.ID, work.ID
}

func fillBucket(samples *memSampleRepo, origin, dest int64, day time.Weekday, hour int, minutes float64, n int) {
	for i := 0; i < n; i++ {
		addSample(samples, origin, dest, at(day, hour, i), minutes)
	}
}

func mustRecommend(t *testing.T, addrs *memAddressRepo, samples *memSampleRepo, origin, dest int64, arrival string) []domain.Recommendation {
	t.Helper()
	arriveBy, err := domain.ParseTimeOfDay(arrival)
	if err != nil {
		t.Fatalf("parse arrival: %v", err)
	}
	recs, err := NewRecommender(addrs, samples).Recommend(context.Background(), origin, dest, arriveBy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return recs
}

func TestRecommendPicksLatestFeasibleHour(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	// 07:00 and 08:00 both arrive before 09:00; 08:30 estimated
	// arrival for the 08:00 bucket still qualifies.
	fillBucket(samples, home, work, time.Monday, 7, 30, 3)
	fillBucket(samples, home, work, time.Monday, 8, 30, 3)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Day != time.Monday {
		t.Fatalf("day = %v, want Monday", rec.Day)
	}
	if rec.DepartAt.String() != "08:00" {
		t.Fatalf("depart = %s, want 08:00", rec.DepartAt)
	}
	if rec.ExpectedMinutes != 30 {
		t.Fatalf("expected minutes = %v, want 30", rec.ExpectedMinutes)
	}
	if rec.SampleCount != 3 {
		t.Fatalf("sample count = %d, want 3", rec.SampleCount)
	}
	if rec.Fallback {
		t.Fatalf("unexpected fallback for feasible hour")
	}
}

func TestRecommendExcludesSparseBuckets(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	// The 08:00 bucket is later and faster but has only 2 samples,
	// below the density floor; it must never be chosen.
	fillBucket(samples, home, work, time.Monday, 7, 30, 3)
	fillBucket(samples, home, work, time.Monday, 8, 10, 2)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].DepartAt.String() != "07:00" {
		t.Fatalf("depart = %s, want 07:00", recs[0].DepartAt)
	}
	if recs[0].SampleCount < MinBucketSamples {
		t.Fatalf("sample count %d below floor %d", recs[0].SampleCount, MinBucketSamples)
	}
}

func TestRecommendOrderedMondayToSunday(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	// Inserted Sunday first, then Wednesday, then Monday.
	fillBucket(samples, home, work, time.Sunday, 8, 30, 3)
	fillBucket(samples, home, work, time.Wednesday, 8, 30, 3)
	fillBucket(samples, home, work, time.Monday, 8, 30, 3)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	want := []time.Weekday{time.Monday, time.Wednesday, time.Sunday}
	if len(recs) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(recs))
	}
	for i, day := range want {
		if recs[i].Day != day {
			t.Fatalf("recs[%d].Day = %v, want %v", i, recs[i].Day, day)
		}
	}
}

func TestRecommendFallbackEarliestArrival(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	// No bucket arrives by 09:00: 07:00 + 200min = 10:20,
	// 08:00 + 250min = 12:10. Fallback picks the earlier arrival.
	fillBucket(samples, home, work, time.Monday, 7, 200, 3)
	fillBucket(samples, home, work, time.Monday, 8, 250, 3)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if !rec.Fallback {
		t.Fatalf("expected fallback recommendation")
	}
	if rec.DepartAt.String() != "07:00" {
		t.Fatalf("depart = %s, want 07:00", rec.DepartAt)
	}
}

func TestRecommendFallbackTieBreaksLater(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	// Identical estimated arrivals (07:00+180 and 08:00+120, both
	// 10:00); the later departure wins.
	fillBucket(samples, home, work, time.Monday, 7, 180, 3)
	fillBucket(samples, home, work, time.Monday, 8, 120, 3)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	if len(recs) != 1 || !recs[0].Fallback {
		t.Fatalf("expected 1 fallback recommendation, got %+v", recs)
	}
	if recs[0].DepartAt.String() != "08:00" {
		t.Fatalf("depart = %s, want 08:00", recs[0].DepartAt)
	}
}

func TestRecommendOmitsDaysWithoutEligibleHours(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	fillBucket(samples, home, work, time.Tuesday, 8, 30, 3)
	// Friday holds data but stays under the floor everywhere.
	fillBucket(samples, home, work, time.Friday, 8, 30, 2)

	recs := mustRecommend(t, addrs, samples, home, work, "09:00")

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Day != time.Tuesday {
		t.Fatalf("day = %v, want Tuesday", recs[0].Day)
	}
}

func TestRecommendNoSamples(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	arriveBy, _ := domain.ParseTimeOfDay("09:00")
	_, err := NewRecommender(addrs, samples).Recommend(context.Background(), home, work, arriveBy)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRecommendAllBucketsSparse(t *testing.T) {
	addrs, samples, home, work := setupRoute(t)

	fillBucket(samples, home, work, time.Monday, 8, 30, 2)
	fillBucket(samples, home, work, time.Thursday, 7, 30, 1)

	arriveBy, _ := domain.ParseTimeOfDay("09:00")
	_, err := NewRecommender(addrs, samples).Recommend(context.Background(), home, work, arriveBy)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRecommendUnknownAddress(t *testing.T) {
	addrs, samples, home, _ := setupRoute(t)

	arriveBy, _ := domain.ParseTimeOfDay("09:00")
	_, err := NewRecommender(addrs, samples).Recommend(context.Background(), home, 42, arriveBy)

	var routeErr *domain.InvalidRouteError
	if !errors.As(err, &routeErr) {
		t.Fatalf("expected InvalidRouteError, got %v", err)
	}
}
