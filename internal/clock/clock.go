// Package clock derives the elapsed sleep time shown while a session is
// active.
package clock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Interval is how often a running Clock emits a reading.
const Interval = time.Second

// Elapsed returns the time between start and now, never less than zero.
func Elapsed(start, now time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}

	return d
}

// Format renders d as H:MM:SS. Hours are not capped at 24.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)

	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Clock emits the formatted elapsed time of a session on every tick.
type Clock struct {
	now      func() time.Time
	cancel   context.CancelFunc
	interval time.Duration
	mu       sync.Mutex
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// WithInterval changes the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		c.interval = d
	}
}

// New creates a stopped clock.
func New(opts ...Option) *Clock {
	c := &Clock{
		now:      time.Now,
		interval: Interval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins ticking for a session that started at start. The first
// reading is sent immediately. The returned channel is closed once the clock
// is stopped or ctx is done. Starting a running clock restarts it.
func (c *Clock) Start(ctx context.Context, start time.Time) <-chan string {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	out := make(chan string)

	go func() {
		defer close(out)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case out <- Format(Elapsed(start, c.now())):
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Stop halts the clock. Stopping a stopped clock does nothing.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
