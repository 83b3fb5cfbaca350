package listener

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

var (
	// ErrHookCreate means the key backend could not be constructed or is not
	// usable here. The listener cannot run without it.
	ErrHookCreate = errors.New("key hook unavailable")
	// ErrBadKeyName is returned when a key name does not parse.
	ErrBadKeyName = keys.ErrUnknownKey
	// ErrHookInstall is returned when the backend refuses to hook a key.
	ErrHookInstall = errors.New("cannot install key hook")
	// ErrHookUninstall is returned when an installed hook cannot be removed.
	ErrHookUninstall = errors.New("cannot uninstall key hook")
	// ErrChannelSend is reported when a fired action cannot be delivered.
	ErrChannelSend = errors.New("cannot deliver fired action")
	// ErrClosed is returned by operations on a closed listener.
	ErrClosed = errors.New("listener closed")
)

// ActionError records a failed registration or unregistration.
type ActionError struct {
	Op   string
	Name string
	Keys []string
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s action %q [%s]: %v", e.Op, e.Name, strings.Join(e.Keys, " "), e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
