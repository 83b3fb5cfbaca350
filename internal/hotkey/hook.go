package hotkey

import (
	"sync"

	"github.com/TanaroSch/hotkey-listener/internal/keys"
)

// keydownBuffer absorbs short bursts between the backend dispatcher and the
// consumer of Keydown. Presses beyond it are dropped.
const keydownBuffer = 16

// keyHook is the RegisteredHotkey handed out by backends that fan a single
// event source out to per-key hooks.
type keyHook struct {
	key       keys.Key
	keydownCh chan struct{}
	release   func(*keyHook) error

	mu     sync.Mutex
	closed bool
}

func newKeyHook(key keys.Key, release func(*keyHook) error) *keyHook {
	return &keyHook{
		key:       key,
		keydownCh: make(chan struct{}, keydownBuffer),
		release:   release,
	}
}

func (h *keyHook) Key() keys.Key { return h.key }

func (h *keyHook) Keydown() <-chan struct{} { return h.keydownCh }

// signal delivers one press without blocking the dispatcher. It reports
// whether the press was accepted.
func (h *keyHook) signal() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	select {
	case h.keydownCh <- struct{}{}:
		return true
	default:
		return false
	}
}

// Close detaches the hook from its backend and closes Keydown.
func (h *keyHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.keydownCh)
	h.mu.Unlock()

	if h.release != nil {
		return h.release(h)
	}
	return nil
}

// hookTable tracks live hooks by key for the dispatching backends.
type hookTable struct {
	mu    sync.RWMutex
	hooks map[keys.Key]*keyHook
}

func newHookTable() *hookTable {
	return &hookTable{hooks: make(map[keys.Key]*keyHook)}
}

// add installs a hook for key, failing if one is already live.
func (t *hookTable) add(key keys.Key, release func(*keyHook) error) (*keyHook, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.hooks[key]; exists {
		return nil, ErrAlreadyRegistered
	}
	h := newKeyHook(key, func(h *keyHook) error {
		t.remove(h)
		if release != nil {
			return release(h)
		}
		return nil
	})
	t.hooks[key] = h
	return h, nil
}

func (t *hookTable) remove(h *keyHook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hooks[h.key] == h {
		delete(t.hooks, h.key)
	}
}

func (t *hookTable) get(key keys.Key) (*keyHook, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.hooks[key]
	return h, ok
}

// dispatch signals the hook for key, if any. It reports whether a hook took
// the press.
func (t *hookTable) dispatch(key keys.Key) bool {
	h, ok := t.get(key)
	if !ok {
		return false
	}
	return h.signal()
}

func (t *hookTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.hooks)
}

// closeAll closes every live hook and empties the table.
func (t *hookTable) closeAll() error {
	t.mu.Lock()
	hooks := make([]*keyHook, 0, len(t.hooks))
	for _, h := range t.hooks {
		hooks = append(hooks, h)
	}
	t.mu.Unlock()

	var firstErr error
	for _, h := range hooks {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
