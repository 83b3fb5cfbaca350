//go:build !windows

package notify

import "github.com/gen2brain/beeep"

func platformNotify(_, title, message string) error {
	// Icon path left empty on non-Windows.
	return beeep.Notify(title, message, "")
}
