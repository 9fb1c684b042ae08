// Package timing provides the discrete-event engine and the tick machinery
// that drive simulated components.
package timing

import (
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/id"
)

// VTimeInSec defines the time in the simulated space in the unit of second.
type VTimeInSec = float64

// An Event is something going to happen in the future.
type Event interface {
	// ID returns the unique identifier of the event.
	ID() string

	// Time returns the time that the event should happen.
	Time() VTimeInSec

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// HookPosBeforeEvent is a hook position that triggers before handling an event.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	id      string
	time    VTimeInSec
	handler Handler
}

// MakeEventBase creates a new EventBase.
func MakeEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{
		id:      id.Generate(),
		time:    t,
		handler: handler,
	}
}

// ID returns the ID of the event.
func (e EventBase) ID() string {
	return e.id
}

// Time returns the time that the event is going to happen.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// A Handler defines a domain for the events.
//
// One event is always constraint to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}
