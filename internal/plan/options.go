// Package plan holds the planner's mutable state: the organization profile store and the
// skill plan store. Both stores publish immutable snapshots; every mutation builds a new
// snapshot and swaps it in, so a reader holding a snapshot never sees a half-applied
// change. Operations on missing records are silent no-ops and never fail.
package plan

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a store.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the wall clock used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the task id generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}
