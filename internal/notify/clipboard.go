package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/config"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// ClipboardSink copies the name of every fired action to the system
// clipboard, so another program can pick it up.
type ClipboardSink struct {
	logger zerolog.Logger
	write  func(string) error
}

// NewClipboardSink creates a ClipboardSink.
func NewClipboardSink(logger zerolog.Logger) *ClipboardSink {
	return &ClipboardSink{logger: logger, write: writeSystemClipboard}
}

func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

func (c *ClipboardSink) Name() string { return config.SinkClipboard }

// Deliver writes the action name to the clipboard.
func (c *ClipboardSink) Deliver(_ context.Context, ev Event) error {
	if err := c.write(ev.Action); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	c.logger.Debug().Str("action", ev.Action).Msg("action copied to clipboard")
	return nil
}
