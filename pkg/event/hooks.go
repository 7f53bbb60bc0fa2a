package event

import (
	vqerrors "github.com/vango-dev/vquery/internal/errors"
)

// HookPhase selects when a hook runs relative to a handler.
type HookPhase string

const (
	Before HookPhase = "before"
	After  HookPhase = "after"
)

// Hooks holds the hooks registered for one event name, in registration order.
type Hooks struct {
	Before []Handler
	After  []Handler
}

func (h Hooks) empty() bool { return len(h.Before) == 0 && len(h.After) == 0 }

func (h Hooks) clone() Hooks {
	return Hooks{
		Before: append([]Handler(nil), h.Before...),
		After:  append([]Handler(nil), h.After...),
	}
}

// AddEventHook appends fn to the phase list of name.
func (b *Bus) AddEventHook(name string, fn Handler, phase HookPhase) error {
	if name == "" {
		return vqerrors.New("E032").WithDetail("AddEventHook called without an event name")
	}
	if phase != Before && phase != After {
		return vqerrors.New("E033").WithDetail(`phase "` + string(phase) + `"`).
			WithSuggestion(`Use event.Before or event.After`)
	}
	if fn == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.hooks[name]
	if phase == Before {
		h.Before = append(h.Before, fn)
	} else {
		h.After = append(h.After, fn)
	}
	b.hooks[name] = h
	return nil
}

// RemoveEventHook clears one phase list of name.
func (b *Bus) RemoveEventHook(name string, phase HookPhase) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.hooks[name]
	if !ok {
		return
	}
	switch phase {
	case Before:
		h.Before = nil
	case After:
		h.After = nil
	}
	if h.empty() {
		delete(b.hooks, name)
		return
	}
	b.hooks[name] = h
}

// RemoveEventHooks drops every hook of the given names. With no names the
// whole hook map is cleared.
func (b *Bus) RemoveEventHooks(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(names) == 0 {
		b.hooks = make(map[string]Hooks)
		return
	}
	for _, n := range names {
		delete(b.hooks, n)
	}
}

// EventHooks returns a copy of the hook map.
func (b *Bus) EventHooks() map[string]Hooks {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]Hooks, len(b.hooks))
	for k, h := range b.hooks {
		out[k] = h.clone()
	}
	return out
}

func (b *Bus) hooksFor(name string) Hooks {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hooks[name].clone()
}
