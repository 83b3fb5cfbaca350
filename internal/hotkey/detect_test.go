package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDisplayServer(t *testing.T) {
	tests := []struct {
		name string
		goos string
		env  map[string]string
		want DisplayServer
	}{
		{name: "windows", goos: "windows", want: DisplayServerWindows},
		{name: "darwin", goos: "darwin", env: map[string]string{"DISPLAY": ":0"}, want: DisplayServerDarwin},
		{name: "wayland wins over xwayland", goos: "linux", env: map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"}, want: DisplayServerWayland},
		{name: "x11", goos: "linux", env: map[string]string{"DISPLAY": ":0"}, want: DisplayServerX11},
		{name: "headless", goos: "linux", want: DisplayServerUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectDisplayServer(tt.goos, func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayServerString(t *testing.T) {
	assert.Equal(t, "Wayland", DisplayServerWayland.String())
	assert.Equal(t, "Unknown", DisplayServer(99).String())
}
