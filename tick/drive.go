package tick

import (
	"context"

	"github.com/sarchlab/arbsim/arbitration"
)

// RequestSampler returns the request vector observed at a tick.
type RequestSampler interface {
	Sample(tick uint64) arbitration.RequestVector
}

// DecisionSink receives every decision, in tick order.
type DecisionSink interface {
	Accept(d arbitration.Decision)
}

// SamplerFunc adapts a function to RequestSampler.
type SamplerFunc func(tick uint64) arbitration.RequestVector

// Sample calls f.
func (f SamplerFunc) Sample(tick uint64) arbitration.RequestVector {
	return f(tick)
}

// SinkFunc adapts a function to DecisionSink.
type SinkFunc func(d arbitration.Decision)

// Accept calls f.
func (f SinkFunc) Accept(d arbitration.Decision) {
	f(d)
}

// Drive calls the arbiter once per tick of the source, on the calling
// goroutine, until the source stops. It returns the number of ticks handled
// and ctx.Err() if the run was cut short by ctx.
func Drive(
	ctx context.Context,
	src Source,
	arbiter arbitration.Arbiter,
	sampler RequestSampler,
	sink DecisionSink,
) (uint64, error) {
	var n uint64

	for range src.Ticks(ctx) {
		if ctx.Err() != nil {
			break
		}

		request := sampler.Sample(n)
		d := arbitration.Apply(arbiter, n, request)

		if sink != nil {
			sink.Accept(d)
		}

		n++
	}

	return n, ctx.Err()
}
