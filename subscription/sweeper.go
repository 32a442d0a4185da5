package subscription

import (
	"context"
	"log"
	"time"
)

// DeactivateFunc persists the expiry transition for every subscriber matching
// ExpiryFilter(now) and returns how many records were flipped.
type DeactivateFunc func(ctx context.Context, now time.Time) (int64, error)

// Sweeper periodically deactivates expired subscribers so that reads are not
// the only thing driving the transition. The lazy sweep on list remains; the
// two compute the same end state, so overlapping runs are benign double
// writes.
type Sweeper struct {
	interval   time.Duration
	deactivate DeactivateFunc
}

func NewSweeper(interval time.Duration, deactivate DeactivateFunc) *Sweeper {
	return &Sweeper{interval: interval, deactivate: deactivate}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("subscription sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.deactivate(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("subscription sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("subscription sweep deactivated %d expired subscribers", n)
	}
}
