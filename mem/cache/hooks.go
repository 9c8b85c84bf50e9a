package cache

import "reflect"

// HookPos names a point in the processing of a read where hooks are invoked.
type HookPos struct {
	Name string
}

// HookPosAccess is reached once per read, after the read has been classified
// and the line store updated.
var HookPosAccess = &HookPos{Name: "Access"}

// AccessInfo describes how a single read was served.
type AccessInfo struct {
	Address uint64
	SetID   int
	WayID   int
	Tag     uint64
	Hit     bool
	Kind    MissKind
}

// Outcome returns "hit" or the kind of the miss.
func (a AccessInfo) Outcome() string {
	if a.Hit {
		return "hit"
	}

	return a.Kind.String()
}

// HookCtx holds all the information about the site that a hook is triggered.
type HookCtx struct {
	Domain *Comp
	Pos    *HookPos
	Item   AccessInfo
}

// Hook is a short piece of program that can be invoked by a cache.
type Hook interface {
	Func(ctx HookCtx)
}

// A HookableBase keeps the hooks registered to a cache.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same hook twice panics.
// Hooks of a non-comparable type are never considered duplicates.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hookList {
		if sameHook(existing, hook) {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

func sameHook(a, b Hook) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}

	return a == b
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

func (c *Comp) traceAccess(info AccessInfo) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   info,
	})
}
