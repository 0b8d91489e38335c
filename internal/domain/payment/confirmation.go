package payment

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrConfirmationCanceled = errors.New("payment: confirmation canceled")

// Confirmation tracks an external settlement that completes after a fixed delay.
// It never blocks the goroutine that created it.
type Confirmation struct {
	done  chan struct{}
	once  sync.Once
	timer *time.Timer
	due   time.Time
	err   error
}

// NewConfirmation starts a confirmation that settles after delay. A non-positive delay settles immediately.
func NewConfirmation(delay time.Duration) *Confirmation {
	c := &Confirmation{
		done: make(chan struct{}),
		due:  time.Now().Add(delay),
	}
	if delay <= 0 {
		c.finish(nil)
		return c
	}
	c.timer = time.AfterFunc(delay, func() { c.finish(nil) })
	return c
}

func (c *Confirmation) finish(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done is closed once the confirmation has settled or been canceled.
func (c *Confirmation) Done() <-chan struct{} { return c.done }

// Due reports when the confirmation is expected to settle.
func (c *Confirmation) Due() time.Time { return c.due }

// Confirmed reports whether the confirmation settled successfully.
func (c *Confirmation) Confirmed() bool {
	select {
	case <-c.done:
		return c.err == nil
	default:
		return false
	}
}

// Wait blocks until the confirmation settles or ctx ends.
func (c *Confirmation) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel abandons a pending confirmation. It has no effect once settled.
func (c *Confirmation) Cancel() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.finish(ErrConfirmationCanceled)
}
