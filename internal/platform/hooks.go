package platform

import (
	"errors"
	"fmt"
	"reflect"
)

// Hook is a point in the platform lifecycle a plugin can subscribe to.
type Hook int

const (
	OnUpdate Hook = iota
	OnAppStart
	OnAppClose
	OnAppError
	OnPlatformClose
	PostDraw
)

var hookNames = [...]string{
	OnUpdate:        "on-update",
	OnAppStart:      "on-app-start",
	OnAppClose:      "on-app-close",
	OnAppError:      "on-app-error",
	OnPlatformClose: "on-platform-close",
	PostDraw:        "post-draw",
}

// AllHooks lists every hook in declaration order.
func AllHooks() []Hook {
	return []Hook{OnUpdate, OnAppStart, OnAppClose, OnAppError, OnPlatformClose, PostDraw}
}

func (h Hook) String() string {
	if h < 0 || int(h) >= len(hookNames) {
		return fmt.Sprintf("hook(%d)", int(h))
	}
	return hookNames[h]
}

// ErrHooksSealed is returned by Subscribe once plugin activation has finished.
var ErrHooksSealed = errors.New("hook table is sealed")

// HookTable maps each hook to its subscribers in activation order.
type HookTable struct {
	subscribers map[Hook][]Plugin
	sealed      bool
}

func NewHookTable() *HookTable {
	return &HookTable{subscribers: make(map[Hook][]Plugin)}
}

// Subscribe appends p to the subscribers of h. Subscribing the same plugin
// twice to one hook is ignored; plugins whose type cannot be compared are
// never treated as duplicates.
func (t *HookTable) Subscribe(h Hook, p Plugin) error {
	if t.sealed {
		return fmt.Errorf("subscribe %s to %s: %w", p.Name(), h, ErrHooksSealed)
	}
	for _, existing := range t.subscribers[h] {
		if samePlugin(existing, p) {
			return nil
		}
	}
	t.subscribers[h] = append(t.subscribers[h], p)
	return nil
}

func samePlugin(a, b Plugin) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Seal freezes the table.
func (t *HookTable) Seal() { t.sealed = true }

func (t *HookTable) Sealed() bool { return t.sealed }

// Subscribers returns a copy of the subscribers of h.
func (t *HookTable) Subscribers(h Hook) []Plugin {
	subs := t.subscribers[h]
	if len(subs) == 0 {
		return nil
	}
	out := make([]Plugin, len(subs))
	copy(out, subs)
	return out
}

// Dispatch calls fn for each subscriber of h. A hook with no subscribers is a
// no-op. The first error stops the dispatch.
func (t *HookTable) Dispatch(h Hook, fn func(Plugin) error) error {
	for _, p := range t.subscribers[h] {
		if err := fn(p); err != nil {
			return fmt.Errorf("%s: plugin %s: %w", h, p.Name(), err)
		}
	}
	return nil
}
