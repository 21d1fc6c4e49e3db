package savedhooks

import "sync/atomic"

// Readiness is the process-wide flag recording whether any worker has
// ever pushed a hook pair. It only transitions from false to true, so a
// relaxed atomic is enough. Share one Readiness among all the States of
// a process and workers that never use hooks pay one load per lookup.
type Readiness struct {
	ready atomic.Bool
}

// NewReadiness creates a Readiness flag that is not yet marked.
func NewReadiness() *Readiness {
	return &Readiness{}
}

// Mark sets the flag. Marking again has no effect.
func (r *Readiness) Mark() {
	r.ready.Store(true)
}

// Ready reports whether any hook pair was ever pushed process-wide.
func (r *Readiness) Ready() bool {
	return r.ready.Load()
}
