package verification

import (
	"fmt"

	"github.com/sarchlab/arbsim/arbitration"
)

// RunTrace feeds the requests to the step function one tick at a time,
// starting from the given state, and returns the transitions taken.
func RunTrace(
	step StepFunc,
	initial arbitration.ArbiterState,
	requests []arbitration.RequestVector,
) []Transition {
	transitions := make([]Transition, 0, len(requests))
	state := initial

	for _, r := range requests {
		grant, next := step(state, r)
		transitions = append(transitions, Transition{
			State:   state.Token(),
			Request: r,
			Grant:   grant,
			Next:    next.Token(),
		})
		state = next
	}

	return transitions
}

// Repeat returns a request sequence that holds the same request for n ticks.
func Repeat(r arbitration.RequestVector, n int) []arbitration.RequestVector {
	requests := make([]arbitration.RequestVector, n)
	for i := range requests {
		requests[i] = r
	}

	return requests
}

// CheckAlternation holds both requests for n ticks from the initial state and
// requires the grants to go A, B, A, B, ...
func CheckAlternation(step StepFunc, n int) error {
	both := arbitration.RequestVector{A: true, B: true}
	trace := RunTrace(step, arbitration.InitialState(), Repeat(both, n))

	for i, t := range trace {
		expected := arbitration.GrantA()
		if i%2 == 1 {
			expected = arbitration.GrantB()
		}

		if t.Grant != expected {
			return fmt.Errorf("tick %d: expected grant %s under contention, "+
				"got %s (%s)", i, expected, t.Grant, t)
		}
	}

	return nil
}

// CheckPersistence holds a lone request from A for n ticks from the initial
// state and requires A to be granted every tick while the token settles on B
// after the first grant.
func CheckPersistence(step StepFunc, n int) error {
	onlyA := arbitration.RequestVector{A: true}
	trace := RunTrace(step, arbitration.InitialState(), Repeat(onlyA, n))

	for i, t := range trace {
		if t.Grant != arbitration.GrantA() {
			return fmt.Errorf("tick %d: lone requester A not granted (%s)",
				i, t)
		}

		// The first grant hands the token to B. From then on A is served as
		// backup and the token stays with B.
		if t.Next != arbitration.PrefersB {
			return fmt.Errorf("tick %d: token left B while only A asks (%s)",
				i, t)
		}
	}

	return nil
}
