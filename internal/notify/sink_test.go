package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firedAt = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

type recordingSink struct {
	name string
	err  error
	got  []string
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Deliver(_ context.Context, ev Event) error {
	r.got = append(r.got, ev.Action)
	return r.err
}

func TestLogSinkWritesAction(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(zerolog.New(&buf))

	require.NoError(t, s.Deliver(context.Background(), Event{Action: "Save", At: firedAt}))
	assert.Contains(t, buf.String(), `"action":"Save"`)
	assert.Contains(t, buf.String(), "action fired")
}

func TestMultiSinkDeliversToAllDespiteFailure(t *testing.T) {
	failing := &recordingSink{name: "broken", err: errors.New("boom")}
	ok := &recordingSink{name: "ok"}
	m := NewMultiSink(zerolog.Nop(), failing, ok)

	err := m.Deliver(context.Background(), Event{Action: "Save", At: firedAt})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Equal(t, []string{"Save"}, failing.got)
	assert.Equal(t, []string{"Save"}, ok.got)
}

func TestMultiSinkEmpty(t *testing.T) {
	m := NewMultiSink(zerolog.Nop())
	assert.NoError(t, m.Deliver(context.Background(), Event{Action: "x"}))
	assert.Zero(t, m.Len())
}

func TestFromNames(t *testing.T) {
	m, err := FromNames([]string{"log", "notify", "clipboard"}, "hotkey-listener", zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	names := make([]string, 0, m.Len())
	for _, s := range m.sinks {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"log", "notify", "clipboard"}, names)

	_, err = FromNames([]string{"log", "pager"}, "hotkey-listener", zerolog.Nop())
	assert.ErrorContains(t, err, `unknown sink "pager"`)
}

func TestNotificationSink(t *testing.T) {
	var gotApp, gotTitle, gotMessage string
	n := NewNotificationSink("hotkey-listener", zerolog.Nop())
	n.show = func(app, title, message string) error {
		gotApp, gotTitle, gotMessage = app, title, message
		return nil
	}

	require.NoError(t, n.Deliver(context.Background(), Event{Action: "Save", At: firedAt}))
	assert.Equal(t, "hotkey-listener", gotApp)
	assert.Equal(t, "hotkey-listener", gotTitle)
	assert.Equal(t, "Save at 09:30:00", gotMessage)

	n.show = func(string, string, string) error { return errors.New("no daemon") }
	assert.ErrorContains(t, n.Deliver(context.Background(), Event{Action: "Save"}), "show notification: no daemon")
}

func TestClipboardSink(t *testing.T) {
	var written []string
	c := NewClipboardSink(zerolog.Nop())
	c.write = func(s string) error {
		written = append(written, s)
		return nil
	}

	require.NoError(t, c.Deliver(context.Background(), Event{Action: "Screenshot", At: firedAt}))
	assert.Equal(t, []string{"Screenshot"}, written)

	c.write = func(string) error { return ErrClipboardUnavailable }
	err := c.Deliver(context.Background(), Event{Action: "Screenshot", At: firedAt})
	require.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.Contains(t, err.Error(), "failed to write clipboard")
}
