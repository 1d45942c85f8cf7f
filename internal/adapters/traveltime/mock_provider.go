package traveltime

import (
	"context"
	"fmt"

	"commute-tracker/internal/domain"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

type MockTravelTimeProvider struct {
	m map[string]domain.TravelTime
}

func NewMockTravelTimeProvider(pairs []MockPair) *MockTravelTimeProvider {
	m := make(map[string]domain.TravelTime, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = domain.TravelTime{
			DurationSeconds:        p.Seconds,
			TrafficDurationSeconds: p.Seconds,
			DistanceMeters:         p.Meters,
		}
	}
	return &MockTravelTimeProvider{m: m}
}

func (p *MockTravelTimeProvider) GetTravelTime(ctx context.Context, origin, destination string) (domain.TravelTime, error) {
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return domain.TravelTime{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}
