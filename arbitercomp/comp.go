// Package arbitercomp provides a ticking component that arbitrates between two
// requesters once per cycle.
package arbitercomp

import (
	"sync"

	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/timing"
	"github.com/sarchlab/arbsim/tick"
)

// HookPosDecision is triggered after every decision. The hook context carries
// the arbitration.Decision as Item and the decision time as Detail.
var HookPosDecision = &hooking.HookPos{Name: "ArbiterDecision"}

// A GrantSink shows the grant of every tick, e.g. on two indicators.
type GrantSink interface {
	Display(tick uint64, grant arbitration.GrantVector)
}

// Comp samples the request lines on each tick, asks the arbiter for a
// decision and drives the grant lines.
type Comp struct {
	*timing.TickingComponent

	arbiter  arbitration.Arbiter
	requests tick.RequestSampler
	sink     GrantSink
	maxTicks uint64

	// lock covers the decision state, including the arbiter's token.
	lock      sync.Mutex
	tickCount uint64
	grant     arbitration.GrantVector
}

// Status is a consistent snapshot of a Comp between two ticks.
type Status struct {
	Policy   arbitration.Policy
	Ticks    uint64
	Grant    arbitration.GrantVector
	HasToken bool
	Token    arbitration.PriorityToken
}

// Tick makes one decision. It returns false once MaxTicks decisions are made.
func (c *Comp) Tick() bool {
	d, ok := c.decide()
	if !ok {
		return false
	}

	if c.sink != nil {
		c.sink.Display(d.Tick, d.Grant)
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosDecision,
		Item:   d,
		Detail: c.Now(),
	})

	return c.maxTicks == 0 || d.Tick+1 < c.maxTicks
}

func (c *Comp) decide() (arbitration.Decision, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.maxTicks > 0 && c.tickCount >= c.maxTicks {
		return arbitration.Decision{}, false
	}

	request := c.requests.Sample(c.tickCount)
	d := arbitration.Apply(c.arbiter, c.tickCount, request)

	c.grant = d.Grant
	c.tickCount++

	return d, true
}

// Start schedules the first tick.
func (c *Comp) Start() {
	c.TickLater()
}

// Status returns the tick count, the grant shown and the token, all taken
// between the same two ticks.
func (c *Comp) Status() Status {
	c.lock.Lock()
	defer c.lock.Unlock()

	st := Status{
		Policy: c.arbiter.Policy(),
		Ticks:  c.tickCount,
		Grant:  c.grant,
	}

	if holder, ok := c.arbiter.(arbitration.TokenHolder); ok {
		st.HasToken = true
		st.Token = holder.State().Token()
	}

	return st
}

// Grant returns the grant currently shown. It is NoGrant before the first
// tick.
func (c *Comp) Grant() arbitration.GrantVector {
	return c.Status().Grant
}

// TickCount returns the number of decisions made so far.
func (c *Comp) TickCount() uint64 {
	return c.Status().Ticks
}

// Arbiter returns the arbiter the component delegates to. Its state must only
// be read through Status while the component runs.
func (c *Comp) Arbiter() arbitration.Arbiter {
	return c.arbiter
}
