package conductor

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for elapsed times and POSTED stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunID sets the generator of run ids.
func WithRunID(next func() string) Option {
	return func(r *Runner) {
		if next != nil {
			r.runID = next
		}
	}
}

func defaultRunID() string {
	return uuid.NewString()
}
