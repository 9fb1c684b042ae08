// Package tick drives arbiters from tick sources that live outside the
// simulation engine, such as a wall clock.
package tick

import (
	"context"
	"time"
)

// A Source emits payload-free ticks. The channel is closed when the source
// stops, either because ctx is done or because it has no more ticks.
type Source interface {
	Ticks(ctx context.Context) <-chan struct{}
}

// Periodic emits a tick every Period of wall-clock time until ctx is done.
type Periodic struct {
	Period time.Duration
}

// NewPeriodicAt creates a Periodic source with the given rate in Hz.
func NewPeriodicAt(hz float64) Periodic {
	if hz <= 0 {
		panic("tick rate must be positive")
	}

	return Periodic{Period: time.Duration(float64(time.Second) / hz)}
}

// Ticks starts the source.
func (p Periodic) Ticks(ctx context.Context) <-chan struct{} {
	if p.Period <= 0 {
		panic("tick period must be positive")
	}

	out := make(chan struct{})

	go func() {
		defer close(out)

		ticker := time.NewTicker(p.Period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Stepped emits N ticks back to back with no delay. It is the source used
// when every discrete step is a tick.
type Stepped struct {
	N int
}

// Ticks starts the source.
func (s Stepped) Ticks(ctx context.Context) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i := 0; i < s.N; i++ {
			select {
			case out <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Limited passes on at most N ticks of another source and then stops it.
type Limited struct {
	Source Source
	N      uint64
}

// Ticks starts the underlying source.
func (l Limited) Ticks(ctx context.Context) <-chan struct{} {
	inner, cancel := context.WithCancel(ctx)
	in := l.Source.Ticks(inner)
	out := make(chan struct{})

	go func() {
		defer close(out)
		defer cancel()

		for n := uint64(0); n < l.N; n++ {
			if _, ok := <-in; !ok {
				return
			}

			select {
			case out <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
