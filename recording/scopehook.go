package recording

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/oniononion36/pytorch/hooking"
	"github.com/oniononion36/pytorch/savedhooks"
)

// ScopeEventTable is the table that scope events are recorded into.
const ScopeEventTable = "scope_events"

// A ScopeEvent is one recorded mutation of a worker's hook-stack state.
// Depth is the number of open hook scopes after the mutation. Reason is
// only set for disable events.
type ScopeEvent struct {
	ID        string
	Timestamp int64
	StateName string
	Action    string
	Depth     int
	Reason    string
}

// A ScopeRecorder is a hook that records hook-scope lifecycle events
// into a Recorder backend.
type ScopeRecorder struct {
	recorder Recorder
}

// NewScopeRecorder creates a ScopeRecorder and prepares the scope-event
// table in the backend.
func NewScopeRecorder(recorder Recorder) *ScopeRecorder {
	recorder.CreateTable(ScopeEventTable, ScopeEvent{})

	return &ScopeRecorder{recorder: recorder}
}

// RecordScopes lets the recorder collect scope events from a state.
func RecordScopes(state *savedhooks.State, recorder *ScopeRecorder) {
	for _, hook := range state.Hooks() {
		h, ok := hook.(*ScopeRecorder)
		if ok && h.recorder == recorder.recorder {
			panic(fmt.Sprintf(
				"state %s already records to this backend", state.Name()))
		}
	}

	state.AcceptHook(recorder)
}

// Func records the mutation that triggered the hook.
func (r *ScopeRecorder) Func(ctx hooking.HookCtx) {
	state := ctx.Domain.(*savedhooks.State)

	event := ScopeEvent{
		ID:        xid.New().String(),
		Timestamp: time.Now().UnixNano(),
		StateName: state.Name(),
		Depth:     ctx.Detail.(int),
	}

	switch ctx.Pos {
	case savedhooks.HookPosPush:
		event.Action = "push"
	case savedhooks.HookPosPop:
		event.Action = "pop"
	case savedhooks.HookPosDisable:
		event.Action = "disable"
		event.Reason = ctx.Item.(string)
	case savedhooks.HookPosEnable:
		event.Action = "enable"
	default:
		return
	}

	r.recorder.InsertData(ScopeEventTable, event)
}
