// Package clock drives the current-time indicator, firing once per minute
// (or on any cron schedule) until its context is cancelled.
package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec fires at the top of every minute.
const DefaultSpec = "* * * * *"

// Ticker calls a function with the current time on a cron schedule.
type Ticker struct {
	spec string
	now  func() time.Time
	loc  *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithNow replaces the time source, for testing.
func WithNow(now func() time.Time) Option {
	return func(t *Ticker) {
		t.now = now
	}
}

// WithLocation sets the schedule's time zone.
func WithLocation(loc *time.Location) Option {
	return func(t *Ticker) {
		t.loc = loc
	}
}

// New validates spec and returns a stopped Ticker. An empty spec means
// DefaultSpec.
func New(spec string, opts ...Option) (*Ticker, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("failed to parse refresh schedule %q: %w", spec, err)
	}

	t := &Ticker{spec: spec, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Spec returns the schedule.
func (t *Ticker) Spec() string {
	return t.spec
}

// Start calls fn immediately and then on every scheduled tick until ctx is
// done or Stop is called. Calling Start on a running Ticker is an error.
func (t *Ticker) Start(ctx context.Context, fn func(time.Time)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return errors.New("ticker already running")
	}

	c := cron.New(cron.WithLocation(t.loc))
	if _, err := c.AddFunc(t.spec, func() { fn(t.now()) }); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	fn(t.now())
	c.Start()
	t.cron = c
	t.running = true

	go func() {
		<-ctx.Done()
		t.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running callback to return.
// It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	c := t.cron
	t.cron = nil
	t.running = false
	t.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// Running reports whether the schedule is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
