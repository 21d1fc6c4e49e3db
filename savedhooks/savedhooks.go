// Package savedhooks tracks which pack/unpack callback pair is active
// while a worker saves intermediate values for the backward pass.
//
// The package only bookkeeps hook pairs. It never invokes a callback,
// never retains ownership of one, and never blocks. Each worker owns one
// State; a process-wide Readiness flag lets workers that never register
// a hook answer lookups with a single atomic load.
package savedhooks

import "github.com/oniononion36/pytorch/hooking"

// PackFunc converts a value into whatever representation the hook owner
// wants to store in its place.
type PackFunc func(value any) any

// UnpackFunc converts a packed representation back into the saved value.
type UnpackFunc func(packed any) any

// A Pair holds the pack and unpack callbacks for one nesting scope.
type Pair struct {
	Pack   PackFunc
	Unpack UnpackFunc
}

// Hook positions where a State notifies its observers. Lookups are not
// observable; they must stay cheap.
var (
	HookPosPush    = &hooking.HookPos{Name: "SavedHooksPush"}
	HookPosPop     = &hooking.HookPos{Name: "SavedHooksPop"}
	HookPosDisable = &hooking.HookPos{Name: "SavedHooksDisable"}
	HookPosEnable  = &hooking.HookPos{Name: "SavedHooksEnable"}
)

// DisabledError reports an operation that is not allowed given the
// current disablement of saved-value hooks. Reason is the text supplied
// by whoever disabled them, or, for Disable itself, by the caller.
type DisabledError struct {
	Reason string
}

func (e *DisabledError) Error() string {
	return e.Reason
}
