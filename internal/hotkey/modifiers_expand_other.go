//go:build !linux

package hotkey

import "golang.design/x/hotkey"

// expandModifiers is the identity outside X11; lock keys do not change the
// grabbed combination there.
func expandModifiers(modifiers []hotkey.Modifier) [][]hotkey.Modifier {
	return [][]hotkey.Modifier{append([]hotkey.Modifier(nil), modifiers...)}
}
