package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"commute-tracker/internal/domain"
	"commute-tracker/internal/platform/obs"
	"commute-tracker/internal/ports"
)

// Poller drives the sampling loop: on every tick it requests the
// current travel time for each directed home/work pair and appends one
// sample per successful response.
//
// A failed poll is logged and skipped for the current tick; it is not
// retried within the tick and never stops the loop.
type Poller struct {
	Addresses ports.AddressRepository
	Samples   ports.SampleRepository
	Provider  ports.TravelTimeProvider
	Interval  time.Duration
}

func NewPoller(
	addresses ports.AddressRepository,
	samples ports.SampleRepository,
	provider ports.TravelTimeProvider,
	interval time.Duration,
) *Poller {
	return &Poller{
		Addresses: addresses,
		Samples:   samples,
		Provider:  provider,
		Interval:  interval,
	}
}

// Run polls immediately, then on every interval tick, until the context
// is cancelled (process signal).
func (p *Poller) Run(ctx context.Context) error {
	log.Printf("poller running interval=%s", p.Interval)

	if err := p.PollOnce(ctx); err != nil {
		log.Printf("tick failed: %v", err)
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("poller shutting down")
			return nil
		case <-ticker.C:
			if err := p.PollOnce(ctx); err != nil {
				log.Printf("tick failed: %v", err)
			}
		}
	}
}

// PollOnce covers all directed pairs once. The returned error reports
// store-level failures only; per-pair API failures are logged, counted
// and skipped.
func (p *Poller) PollOnce(ctx context.Context) (err error) {
	ctx = obs.WithTickID(ctx)
	defer obs.Time(ctx, "poller.PollOnce")(&err)

	ticksTotal.Inc()

	homes, err := p.Addresses.ListAddresses(ctx, domain.KindHome)
	if err != nil {
		return fmt.Errorf("poll: list home addresses: %w", err)
	}
	works, err := p.Addresses.ListAddresses(ctx, domain.KindWork)
	if err != nil {
		return fmt.Errorf("poll: list work addresses: %w", err)
	}

	if len(homes) == 0 || len(works) == 0 {
		log.Printf("no home or work addresses configured yet")
		return nil
	}

	// Both directions of every home/work pair are distinct routes.
	for _, home := range homes {
		for _, work := range works {
			p.pollPair(ctx, home, work)
			p.pollPair(ctx, work, home)
		}
	}

	return nil
}

func (p *Poller) pollPair(ctx context.Context, origin, destination *domain.Address) {
	result, err := p.Provider.GetTravelTime(ctx, origin.Location, destination.Location)
	if err != nil {
		pollFailures.Inc()
		log.Printf("poll failed origin=%q dest=%q err=%v", origin.Label, destination.Label, err)
		return
	}

	sample := &domain.Sample{
		OriginID:               origin.ID,
		DestinationID:          destination.ID,
		DurationSeconds:        result.DurationSeconds,
		TrafficDurationSeconds: result.TrafficDurationSeconds,
		DistanceMeters:         result.DistanceMeters,
		CapturedAt:             time.Now(),
	}

	if err := p.Samples.InsertSample(ctx, sample); err != nil {
		pollFailures.Inc()
		log.Printf("store sample failed origin=%q dest=%q err=%v", origin.Label, destination.Label, err)
		return
	}

	samplesRecorded.Inc()
	log.Printf("logged origin=%q dest=%q minutes=%.1f", origin.Label, destination.Label, sample.Minutes())
}
