package memstore

import (
	"context"
	"sync"

	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// Published is one event captured by a Recorder.
type Published struct {
	Event   notify.Event
	Payload any
}

// Recorder is a notify.Publisher that keeps everything it is given.
type Recorder struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (r *Recorder) Publish(ctx context.Context, event notify.Event, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Published{Event: event, Payload: payload})
	return r.Err
}

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.events...)
}

// Of returns the payloads published under event, in order.
func (r *Recorder) Of(event notify.Event) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, p := range r.events {
		if p.Event == event {
			out = append(out, p.Payload)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
