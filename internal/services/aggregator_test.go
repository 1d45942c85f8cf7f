package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"commute-tracker/internal/domain"
)

func TestAggregatorStats(t *testing.T) {
	addrs := newMemAddressRepo()
	home, _ := addrs.AddAddress(context.Background(), domain.KindHome, "Home", "1 Home St")
	work, _ := addrs.AddAddress(context.Background(), domain.KindWork, "Office", "2 Work Ave")

	samples := &memSampleRepo{}
	addSample(samples, home.ID, work.ID, at(time.Monday, 8, 0), 30)
	addSample(samples, home.ID, work.ID, at(time.Monday, 8, 1), 35)
	addSample(samples, home.ID, work.ID, at(time.Monday, 8, 2), 40)

	agg := NewAggregator(addrs, samples)
	stats, err := agg.Stats(context.Background(), home.ID, work.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Count != 3 {
		t.Fatalf("count = %d, want 3", stats.Count)
	}
	if stats.Min != 30 {
		t.Fatalf("min = %v, want 30", stats.Min)
	}
	if stats.Max != 40 {
		t.Fatalf("max = %v, want 40", stats.Max)
	}
	if stats.Mean != 35 {
		t.Fatalf("mean = %v, want 35", stats.Mean)
	}
	if stats.Min > stats.Mean || stats.Mean > stats.Max {
		t.Fatalf("expected min <= mean <= max, got %v <= %v <= %v", stats.Min, stats.Mean, stats.Max)
	}
}

func TestAggregatorStatsDirectedRoutes(t *testing.T) {
	addrs := newMemAddressRepo()
	home, _ := addrs.AddAddress(context.Background(), domain.KindHome, "Home", "1 Home St")
	work, _ := addrs.AddAddress(context.Background(), domain.KindWork, "Office", "2 Work Ave")

	samples := &memSampleRepo{}
	addSample(samples, home.ID, work.ID, at(time.Monday, 8, 0), 30)
	addSample(samples, home.ID, work.ID, at(time.Monday, 8, 1), 30)
	addSample(samples, work.ID, home.ID, at(time.Monday, 18, 0), 50)

	agg := NewAggregator(addrs, samples)

	forward, err := agg.Stats(context.Background(), home.ID, work.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forward.Count != 2 || forward.Mean != 30 {
		t.Fatalf("forward = %+v, want count=2 mean=30", forward)
	}

	reverse, err := agg.Stats(context.Background(), work.ID, home.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reverse.Count != 1 || reverse.Mean != 50 {
		t.Fatalf("reverse = %+v, want count=1 mean=50", reverse)
	}
}

func TestAggregatorStatsNoSamples(t *testing.T) {
	addrs := newMemAddressRepo()
	home, _ := addrs.AddAddress(context.Background(), domain.KindHome, "Home", "1 Home St")
	work, _ := addrs.AddAddress(context.Background(), domain.KindWork, "Office", "2 Work Ave")

	agg := NewAggregator(addrs, &memSampleRepo{})
	_, err := agg.Stats(context.Background(), home.ID, work.ID)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAggregatorStatsUnknownAddress(t *testing.T) {
	addrs := newMemAddressRepo()
	home, _ := addrs.AddAddress(context.Background(), domain.KindHome, "Home", "1 Home St")

	agg := NewAggregator(addrs, &memSampleRepo{})
	_, err := agg.Stats(context.Background(), home.ID, 99)

	var routeErr *domain.InvalidRouteError
	if !errors.As(err, &routeErr) {
		t.Fatalf("expected InvalidRouteError, got %v", err)
	}
	if routeErr.AddressID != 99 {
		t.Fatalf("AddressID = %d, want 99", routeErr.AddressID)
	}
}
