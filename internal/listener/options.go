package listener

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultMinElapsedTime is the default recency window in seconds.
	DefaultMinElapsedTime float32 = 0.2
	// DefaultQueueSize is the default capacity of the inbound key queue.
	DefaultQueueSize = 256
)

// Option configures a Listener.
type Option func(*Listener)

// WithClock replaces time.Now. Tests use it to script press times.
func WithClock(now func() time.Time) Option {
	return func(l *Listener) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Listener) {
		l.logger = logger
	}
}

// WithMinElapsedTime sets the initial recency window in seconds.
func WithMinElapsedTime(seconds float32) Option {
	return func(l *Listener) {
		l.window = secondsToDuration(seconds)
	}
}

// WithQueueSize sets the inbound key queue capacity.
func WithQueueSize(n int) Option {
	return func(l *Listener) {
		if n > 0 {
			l.queueSize = n
		}
	}
}
