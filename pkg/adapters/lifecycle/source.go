// Package lifecycle exposes desk change events as a lifecycle.Source, so
// supervisors and hosts built on aretw0/lifecycle can consume them.
package lifecycle

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Source relays store events. Each event is delivered once, in order.
type Source struct {
	in        <-chan core.Event
	out       chan lifecycle.Event
	started   atomic.Bool
	delivered atomic.Int64
}

// NewSource wraps a channel such as the one returned by desk.Watch or
// core.Watchable.Watch.
func NewSource(events <-chan core.Event) *Source {
	return &Source{in: events, out: make(chan lifecycle.Event)}
}

// Events implements lifecycle.Source. The channel closes when the input
// closes or the context given to Start ends.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start implements lifecycle.Source. Calls after the first are no-ops.
func (s *Source) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.in:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
					s.delivered.Add(1)
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// Delivered returns how many events were handed to consumers.
func (s *Source) Delivered() int64 {
	return s.delivered.Load()
}

var _ lifecycle.Source = (*Source)(nil)
