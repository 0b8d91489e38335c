package event

import "context"

// Event is any checkout event with a name identifier.
type Event interface {
	EventName() string
}

// Sink receives events emitted while a checkout is evaluated.
// Publishing must not alter the outcome of the computation that emitted the event.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Handler processes a published event.
type Handler func(ctx context.Context, e Event) error

// Subscriber registers handlers for event names.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(ctx context.Context, e Event) error

func (f SinkFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Discard drops every event.
func Discard() Sink { return discard{} }

type sinkKey struct{}

// WithSink stores the sink that domain code emits to for the lifetime of ctx.
func WithSink(ctx context.Context, sink Sink) context.Context {
	if ctx == nil || sink == nil {
		return ctx
	}
	return context.WithValue(ctx, sinkKey{}, sink)
}

// SinkFrom returns the sink bound to ctx, or Discard when none is bound.
func SinkFrom(ctx context.Context) Sink {
	if ctx == nil {
		return discard{}
	}
	if sink, ok := ctx.Value(sinkKey{}).(Sink); ok && sink != nil {
		return sink
	}
	return discard{}
}

// Emit publishes e to the sink bound to ctx.
func Emit(ctx context.Context, e Event) error {
	if e == nil {
		return nil
	}
	return SinkFrom(ctx).Publish(ctx, e)
}
