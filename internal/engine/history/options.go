package history

import "time"

// Default configuration values.
const (
	// DefaultMaxEntries bounds the undo stack.
	DefaultMaxEntries = 1000

	// MergeThreshold is the longest gap between two records that are
	// undone or redone as one step.
	MergeThreshold = 50 * time.Millisecond
)

// Option configures a History.
type Option func(*History)

// WithMaxEntries sets the maximum number of undo records kept.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max > 0 {
			h.maxEntries = max
		}
	}
}

// WithThreshold overrides MergeThreshold.
func WithThreshold(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.threshold = d
		}
	}
}

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}
