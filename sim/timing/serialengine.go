package timing

import (
	"log"
	"reflect"
	"sync"

	"github.com/sarchlab/arbsim/sim/hooking"
)

// A SerialEngine runs events one at a time in time order. Events due at the
// same time run in the order they were scheduled.
type SerialEngine struct {
	hooking.HookableBase

	nowLock sync.RWMutex
	now     VTimeInSec
	queue   EventQueue

	// gate is held for the whole of every event and while paused.
	gate      sync.Mutex
	pauseLock sync.Mutex
	paused    bool

	runLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{queue: NewEventQueue()}
}

// Name returns the name of the engine.
func (e *SerialEngine) Name() string {
	return "SerialEngine"
}

// Schedule registers an event to happen in the future. Scheduling into the
// past panics.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.Now()
	if evt.Time() < now {
		log.Panicf("cannot schedule %s at %.10f, now is %.10f",
			reflect.TypeOf(evt), evt.Time(), now)
	}

	e.queue.Push(evt)
}

// Run handles events until the queue is empty. It returns the first error a
// handler reports and leaves the remaining events queued.
func (e *SerialEngine) Run() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	for e.queue.Len() > 0 {
		err := e.handleNext()
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *SerialEngine) handleNext() error {
	e.gate.Lock()
	defer e.gate.Unlock()

	evt := e.queue.Pop()
	e.setNow(evt.Time())

	ctx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

// Pause stops the engine before its next event. The event in progress, if
// any, completes first.
func (e *SerialEngine) Pause() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if e.paused {
		return
	}

	e.gate.Lock()
	e.paused = true
}

// Continue lets a paused engine handle events again.
func (e *SerialEngine) Continue() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if !e.paused {
		return
	}

	e.paused = false
	e.gate.Unlock()
}

// Now returns the time of the event being handled or last handled.
func (e *SerialEngine) Now() VTimeInSec {
	e.nowLock.RLock()
	defer e.nowLock.RUnlock()

	return e.now
}

func (e *SerialEngine) setNow(t VTimeInSec) {
	e.nowLock.Lock()
	e.now = t
	e.nowLock.Unlock()
}
