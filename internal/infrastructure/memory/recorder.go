package memory

import (
	"context"
	"sync"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
)

// Recorder is a synchronous event sink that keeps every published event in order.
type Recorder struct {
	mu     sync.RWMutex
	events []event.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(ctx context.Context, e event.Event) error {
	if e == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a snapshot of the recorded events.
func (r *Recorder) Events() []event.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]event.Event(nil), r.events...)
}

// Names returns the recorded event names in publish order.
func (r *Recorder) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.EventName())
	}
	return names
}
