package hotkey

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// ScriptBackend replays key presses from a text script instead of watching
// the keyboard. It is used for dry runs and tests.
//
// Each line holds whitespace-separated key names, pressed in order. A line
// of the form "wait <duration>" pauses playback. Text after '#' is ignored.
//
//	ControlLeft KeyS   # save
//	wait 500ms
//	KeyS
type ScriptBackend struct {
	src    io.Reader
	hooks  *hookTable
	logger zerolog.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewScriptBackend creates a backend that plays src when Run is called.
func NewScriptBackend(src io.Reader, logger zerolog.Logger) *ScriptBackend {
	return &ScriptBackend{
		src:    src,
		hooks:  newHookTable(),
		logger: logger.With().Str("backend", "script").Logger(),
		sleep:  sleepContext,
	}
}

// Name returns the name of this backend.
func (b *ScriptBackend) Name() string { return "script" }

// IsAvailable is always true.
func (b *ScriptBackend) IsAvailable() bool { return true }

// Register installs a hook for key.
func (b *ScriptBackend) Register(key keys.Key) (RegisteredHotkey, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}
	h, err := b.hooks.add(key, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, key)
	}
	return h, nil
}

// Unregister removes the hook for key.
func (b *ScriptBackend) Unregister(key keys.Key) error {
	h, ok := b.hooks.get(key)
	if !ok {
		return nil
	}
	return h.Close()
}

// UnregisterAll closes every hook.
func (b *ScriptBackend) UnregisterAll() error {
	return b.hooks.closeAll()
}

// Run plays the script until it ends or ctx is cancelled. Presses of keys
// without a hook are skipped, like keys nobody grabbed on a real keyboard.
func (b *ScriptBackend) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(b.src)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "wait" {
			if len(fields) != 2 {
				return fmt.Errorf("script line %d: wait takes one duration", line)
			}
			d, err := time.ParseDuration(fields[1])
			if err != nil {
				return fmt.Errorf("script line %d: %w", line, err)
			}
			if err := b.sleep(ctx, d); err != nil {
				return err
			}
			continue
		}

		for _, name := range fields {
			if err := ctx.Err(); err != nil {
				return err
			}
			key, err := keys.Parse(name)
			if err != nil {
				b.logger.Warn().Err(err).Int("line", line).Msg("skipping unknown key")
				continue
			}
			if !b.hooks.dispatch(key) {
				b.logger.Trace().Stringer("key", key).Msg("press not delivered")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	b.logger.Debug().Int("lines", line).Msg("script finished")
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
