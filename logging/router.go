package logging

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock abstracts time for the router and the simulation loop.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sink receives routed events.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// Router fans events out to sinks synchronously, filtering by severity.
// The simulation is single-threaded, so no queueing is needed between
// the publisher and its sinks.
type Router struct {
	sinks       []Sink
	minSeverity Severity

	eventsTotal  atomic.Uint64
	droppedTotal atomic.Uint64
}

// NewRouter builds a router over the given sinks.
func NewRouter(minSeverity Severity, sinks ...Sink) *Router {
	return &Router{sinks: sinks, minSeverity: minSeverity}
}

// Publish implements Publisher.
func (r *Router) Publish(_ context.Context, event Event) {
	if r == nil {
		return
	}
	if event.Severity < r.minSeverity {
		r.droppedTotal.Add(1)
		return
	}
	r.eventsTotal.Add(1)
	for _, sink := range r.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Write(event); err != nil {
			r.droppedTotal.Add(1)
		}
	}
}

// Close shuts down every sink.
func (r *Router) Close(ctx context.Context) error {
	var firstErr error
	for _, sink := range r.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RouterStats reports routed and dropped event counts.
type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

// Stats snapshots the router counters.
func (r *Router) Stats() RouterStats {
	if r == nil {
		return RouterStats{}
	}
	return RouterStats{
		EventsTotal:  r.eventsTotal.Load(),
		DroppedTotal: r.droppedTotal.Load(),
	}
}

var _ Publisher = (*Router)(nil)
