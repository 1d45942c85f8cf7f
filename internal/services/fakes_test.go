package services

import (
	"context"
	"sort"
	"time"

	"commute-tracker/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type memAddressRepo struct {
	addrs  map[int64]*domain.Address
	nextID int64
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{addrs: make(map[int64]*domain.Address)}
}

func (m *memAddressRepo) AddAddress(ctx context.Context, kind domain.Kind, label, location string) (*domain.Address, error) {
	m.nextID++
	a := &domain.Address{
		ID:        m.nextID,
		Kind:      kind,
		Label:     label,
		Location:  location,
		CreatedAt: time.Now(),
	}
	m.addrs[a.ID] = a
	return a, nil
}

func (m *memAddressRepo) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	a, ok := m.addrs[id]
	if !ok {
		return nil, &domain.InvalidRouteError{AddressID: id}
	}
	return a, nil
}

func (m *memAddressRepo) ListAddresses(ctx context.Context, kind domain.Kind) ([]*domain.Address, error) {
	ids := make([]int64, 0, len(m.addrs))
	for id := range m.addrs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*domain.Address, 0, len(ids))
	for _, id := range ids {
		a := m.addrs[id]
		if kind != "" && a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memAddressRepo) DeleteAddress(ctx context.Context, id int64) error {
	if _, ok := m.addrs[id]; !ok {
		return &domain.InvalidRouteError{AddressID: id}
	}
	delete(m.addrs, id)
	return nil
}

type memSampleRepo struct {
	samples []domain.Sample
	nextID  int64
}

func (m *memSampleRepo) InsertSample(ctx context.Context, sample *domain.Sample) error {
	m.nextID++
	sample.ID = m.nextID
	m.samples = append(m.samples, *sample)
	return nil
}

func (m *memSampleRepo) ListByRoute(ctx context.Context, originID, destinationID int64, weekday *time.Weekday) ([]domain.Sample, error) {
	out := make([]domain.Sample, 0, len(m.samples))
	for _, s := range m.samples {
		if s.OriginID != originID || s.DestinationID != destinationID {
			continue
		}
		if weekday != nil && s.CapturedAt.Local().Weekday() != *weekday {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CapturedAt.Before(out[j].CapturedAt) })
	return out, nil
}

// at builds a local capture time on the requested weekday and hour.
// 2026-01-05 is a Monday; seq staggers minutes so timestamps differ.
func at(day time.Weekday, hour, seq int) time.Time {
	offset := (int(day) - int(time.Monday) + 7) % 7
	return time.Date(2026, 1, 5+offset, hour, seq, 0, 0, time.Local)
}

// addSample stores one reading with the given traffic-aware duration in
// minutes.
func addSample(repo *memSampleRepo, originID, destinationID int64, capturedAt time.Time, minutes float64) {
	_ = repo.InsertSample(context.Background(), &domain.Sample{
		OriginID:               originID,
		DestinationID:          destinationID,
		DurationSeconds:        int(minutes * 60),
		TrafficDurationSeconds: int(minutes * 60),
		DistanceMeters:         10000,
		CapturedAt:             capturedAt,
	})
}
