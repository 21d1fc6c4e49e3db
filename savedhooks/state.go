package savedhooks

import "github.com/oniononion36/pytorch/hooking"

// A State tracks the hook pairs that are active for one worker, most
// recently pushed on top. Exactly one worker may mutate a State at a
// time; transporting state between workers goes through Capture and
// Restore, serialized by the caller.
type State struct {
	hooking.HookableBase

	name      string
	readiness *Readiness

	stack          []Pair
	disabled       bool
	disabledReason string
	tracing        bool
}

// A Snapshot is a value copy of a State's hook stack and flags, suitable
// for handing one worker's hook context to another. The callbacks it
// references stay owned by the caller.
type Snapshot struct {
	stack          []Pair
	disabled       bool
	disabledReason string
	tracing        bool
}

// NewState creates the hook-stack state for one worker. All States of a
// process must share the same Readiness.
func NewState(name string, readiness *Readiness) *State {
	if readiness == nil {
		panic("state must be given a readiness flag")
	}

	return &State{
		name:      name,
		readiness: readiness,
	}
}

// Name returns the name of the worker this state belongs to.
func (s *State) Name() string {
	return s.name
}

// IsEnabled reports whether hook pairs may currently be pushed.
func (s *State) IsEnabled() bool {
	return !s.disabled
}

// Disable forbids pushing hook pairs until Enable is called, recording
// message as the reason to surface to rejected callers. Disabling while
// a hook scope is still open fails, with message as the failure text.
// The reason is recorded either way.
func (s *State) Disable(message string) error {
	s.disabled = true
	s.disabledReason = message

	if len(s.stack) > 0 {
		return &DisabledError{Reason: message}
	}

	s.invokeHookAt(HookPosDisable, message)

	return nil
}

// Enable lifts a disablement. Enabling an enabled state has no effect.
func (s *State) Enable() {
	s.disabled = false
	s.disabledReason = ""

	s.invokeHookAt(HookPosEnable, nil)
}

// DisabledReason returns the reason recorded by the last Disable, and
// whether the state is currently disabled.
func (s *State) DisabledReason() (string, bool) {
	return s.disabledReason, s.disabled
}

// SetTracing swaps the tracing flag and returns its prior value so that
// a trace recorder can restore it when the trace completes. While
// tracing is set, Current reports no hooks even if some are pushed, so
// that the hook decision is replayed at execution time rather than baked
// into the recorded trace.
func (s *State) SetTracing(tracing bool) bool {
	prior := s.tracing
	s.tracing = tracing

	return prior
}

// IsTracing reports whether a trace is currently being recorded.
func (s *State) IsTracing() bool {
	return s.tracing
}

// Push makes pair the active hook pair until the matching Pop. Pushing
// while disabled fails with the recorded reason and leaves the stack
// untouched. Both callbacks must be non-nil.
func (s *State) Push(pair Pair) error {
	if pair.Pack == nil || pair.Unpack == nil {
		panic("a hook pair must carry both a pack and an unpack callback")
	}

	if s.disabled {
		return &DisabledError{Reason: s.disabledReason}
	}

	s.readiness.Mark()
	s.stack = append(s.stack, pair)

	s.invokeHookAt(HookPosPush, pair)

	return nil
}

// Pop removes and returns the active hook pair. Popping with no open
// hook scope is a scope mismatch in the caller and panics.
func (s *State) Pop() Pair {
	if len(s.stack) == 0 {
		panic("popping from an empty hook stack")
	}

	pair := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	s.invokeHookAt(HookPosPop, pair)

	return pair
}

// Current returns the active hook pair without removing it. It reports
// no pair when no hook was ever pushed process-wide, when this worker's
// stack is empty, or while tracing. It never fails and is safe to call
// on every value save.
func (s *State) Current() (Pair, bool) {
	if !s.readiness.Ready() || len(s.stack) == 0 || s.tracing {
		return Pair{}, false
	}

	return s.stack[len(s.stack)-1], true
}

// Depth returns the number of open hook scopes.
func (s *State) Depth() int {
	return len(s.stack)
}

// Capture copies the full hook-stack state for transport to another
// worker. The lifetimes of the referenced callbacks are the caller's
// responsibility.
func (s *State) Capture() Snapshot {
	return Snapshot{
		stack:          append([]Pair(nil), s.stack...),
		disabled:       s.disabled,
		disabledReason: s.disabledReason,
		tracing:        s.tracing,
	}
}

// Restore replaces this worker's hook-stack state with the snapshot's
// contents, discarding whatever was there. The snapshot is not
// validated. Observer hooks registered on the state are kept.
func (s *State) Restore(snapshot Snapshot) {
	s.stack = append([]Pair(nil), snapshot.stack...)
	s.disabled = snapshot.disabled
	s.disabledReason = snapshot.disabledReason
	s.tracing = snapshot.tracing
}

func (s *State) invokeHookAt(pos *hooking.HookPos, item any) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   item,
		Detail: len(s.stack),
	})
}
