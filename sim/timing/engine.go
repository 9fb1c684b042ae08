package timing

import "github.com/sarchlab/arbsim/sim/hooking"

// An Engine owns the virtual clock and the queue of pending events. Events run
// one at a time, and Now reports the time of the one running.
//
// Pause blocks until the running event, if any, has returned. Until Continue
// is called no further event starts, so a paused engine can be inspected from
// another goroutine.
type Engine interface {
	hooking.Hookable

	Now() VTimeInSec
	Schedule(e Event)
	Run() error
	Pause()
	Continue()
}
