// Package notify delivers fired actions to their consumers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/config"
)

// Event is one fired action.
type Event struct {
	Action string
	At     time.Time
}

// Sink consumes fired actions.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
	Name() string
}

// LogSink writes every fired action to the log.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return config.SinkLog }

func (s *LogSink) Deliver(_ context.Context, ev Event) error {
	s.logger.Info().Str("action", ev.Action).Time("at", ev.At).Msg("action fired")
	return nil
}

// MultiSink fans every event out to several sinks. A failing sink does not
// stop delivery to the others.
type MultiSink struct {
	sinks  []Sink
	logger zerolog.Logger
}

// NewMultiSink combines sinks.
func NewMultiSink(logger zerolog.Logger, sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks, logger: logger}
}

func (m *MultiSink) Name() string { return "multi" }

// Deliver hands ev to every sink and joins their errors.
func (m *MultiSink) Deliver(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Deliver(ctx, ev); err != nil {
			m.logger.Warn().Err(err).Str("sink", s.Name()).Str("action", ev.Action).Msg("sink delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of sinks.
func (m *MultiSink) Len() int { return len(m.sinks) }

// FromNames builds the sinks named in the configuration.
func FromNames(names []string, appName string, logger zerolog.Logger) (*MultiSink, error) {
	sinks := make([]Sink, 0, len(names))
	for _, name := range names {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, NewLogSink(logger))
		case config.SinkNotify:
			sinks = append(sinks, NewNotificationSink(appName, logger))
		case config.SinkClipboard:
			sinks = append(sinks, NewClipboardSink(logger))
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return NewMultiSink(logger, sinks...), nil
}
