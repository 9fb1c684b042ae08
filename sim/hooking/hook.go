// Package hooking lets observers attach to simulation objects without the
// objects knowing about them.
package hooking

import "sync"

// HookPos names a site where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one invocation: who fired it, where, and with what.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by anything hooks can be attached to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// A Hook observes invocations.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps a list of hooks. Embed it to implement Hookable. Hooks
// may be attached while other goroutines invoke them.
type HookableBase struct {
	hookLock sync.RWMutex
	hookList []Hook
}

// NumHooks returns the number of hooks attached.
func (h *HookableBase) NumHooks() int {
	h.hookLock.RLock()
	defer h.hookLock.RUnlock()

	return len(h.hookList)
}

// Hooks returns a copy of the attached hooks.
func (h *HookableBase) Hooks() []Hook {
	h.hookLock.RLock()
	defer h.hookLock.RUnlock()

	return append([]Hook(nil), h.hookList...)
}

// AcceptHook attaches a hook. Attaching the same hook value twice panics.
// HookFuncs are not comparable and are always attached.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hookLock.Lock()
	defer h.hookLock.Unlock()

	if _, isFunc := hook.(HookFunc); !isFunc {
		for _, existing := range h.hookList {
			if existing == hook {
				panic("duplicated hook")
			}
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook calls every attached hook in the order they were attached.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks() {
		hook.Func(ctx)
	}
}
