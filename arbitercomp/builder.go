package arbitercomp

import (
	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/sim/timing"
	"github.com/sarchlab/arbsim/tick"
)

// DefaultFreq is slow enough for a person to follow the grant indicators.
const DefaultFreq = 30 * timing.Hz

// Builder can build arbiter components.
type Builder struct {
	engine   timing.Engine
	freq     timing.Freq
	arbiter  arbitration.Arbiter
	requests tick.RequestSampler
	sink     GrantSink
	maxTicks uint64
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: DefaultFreq,
	}
}

// WithEngine sets the engine that the component uses.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency that the component ticks at.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithArbiter sets the arbiter that makes the decisions.
func (b Builder) WithArbiter(arbiter arbitration.Arbiter) Builder {
	b.arbiter = arbiter
	return b
}

// WithRequestSource sets where the request lines are sampled from.
func (b Builder) WithRequestSource(requests tick.RequestSampler) Builder {
	b.requests = requests
	return b
}

// WithGrantSink sets where the grants are shown. It is optional.
func (b Builder) WithGrantSink(sink GrantSink) Builder {
	b.sink = sink
	return b
}

// WithMaxTicks stops the component after n decisions. Zero means the
// component ticks forever.
func (b Builder) WithMaxTicks(n uint64) Builder {
	b.maxTicks = n
	return b
}

// Build creates a new component.
func (b Builder) Build(name string) *Comp {
	b.engineMustBeGiven()
	b.freqMustNotBeZero()
	b.arbiterMustBeGiven()
	b.requestSourceMustBeGiven()

	c := &Comp{
		arbiter:  b.arbiter,
		requests: b.requests,
		sink:     b.sink,
		maxTicks: b.maxTicks,
		grant:    arbitration.NoGrant(),
	}
	c.TickingComponent = timing.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) engineMustBeGiven() {
	if b.engine == nil {
		panic("arbiter component requires an engine")
	}
}

func (b Builder) freqMustNotBeZero() {
	if b.freq == 0 {
		panic("arbiter component frequency cannot be 0")
	}
}

func (b Builder) arbiterMustBeGiven() {
	if b.arbiter == nil {
		panic("arbiter component requires an arbiter")
	}
}

func (b Builder) requestSourceMustBeGiven() {
	if b.requests == nil {
		panic("arbiter component requires a request source")
	}
}
