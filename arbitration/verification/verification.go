// Package verification checks the arbitration invariants over every reachable
// configuration.
//
// The round-robin arbiter carries a single priority token and sees one of four
// request combinations per tick, so there are eight (state, request) pairs.
// Checking every pair against the invariants covers every tick of every run,
// because a run is only a sequence of these transitions.
package verification

import (
	"errors"
	"fmt"

	"github.com/sarchlab/arbsim/arbitration"
)

// StepFunc is the shape of a round-robin transition function.
type StepFunc func(
	arbitration.ArbiterState,
	arbitration.RequestVector,
) (arbitration.GrantVector, arbitration.ArbiterState)

// DecideFunc is the shape of a stateless decision function.
type DecideFunc func(arbitration.RequestVector) arbitration.GrantVector

// Transition is one evaluated (state, request) pair.
type Transition struct {
	State   arbitration.PriorityToken
	Request arbitration.RequestVector
	Grant   arbitration.GrantVector
	Next    arbitration.PriorityToken
}

func (t Transition) String() string {
	return fmt.Sprintf("%s req=%s -> grant=%s next=%s",
		t.State, t.Request, t.Grant, t.Next)
}

// Violation reports an invariant that does not hold on a transition.
type Violation struct {
	Invariant  string
	Transition Transition
}

func (v Violation) Error() string {
	return fmt.Sprintf("invariant %s violated at state=%s request=%s "+
		"(grant=%s next=%s)",
		v.Invariant, v.Transition.State, v.Transition.Request,
		v.Transition.Grant, v.Transition.Next)
}

// Report summarizes a check.
type Report struct {
	Transitions []Transition
	Checked     int
	Violations  []Violation
}

// OK returns true if no invariant is violated.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Err returns all the violations joined into one error, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}

	errs := make([]error, 0, len(r.Violations))
	for _, v := range r.Violations {
		errs = append(errs, v)
	}

	return errors.Join(errs...)
}

// Reachable returns the tokens reachable from the initial state, in the order
// they are discovered.
func Reachable(step StepFunc) []arbitration.PriorityToken {
	initial := arbitration.InitialState()
	visited := map[arbitration.PriorityToken]bool{initial.Token(): true}
	order := []arbitration.PriorityToken{initial.Token()}
	frontier := []arbitration.ArbiterState{initial}

	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]

		for _, r := range arbitration.Requests() {
			_, next := step(s, r)
			if visited[next.Token()] {
				continue
			}

			visited[next.Token()] = true
			order = append(order, next.Token())
			frontier = append(frontier, next)
		}
	}

	return order
}

// EnumerateRoundRobin evaluates the step function on every reachable token and
// every request.
func EnumerateRoundRobin(step StepFunc) []Transition {
	tokens := Reachable(step)
	transitions := make([]Transition, 0,
		len(tokens)*len(arbitration.Requests()))

	for _, token := range tokens {
		for _, r := range arbitration.Requests() {
			grant, next := step(arbitration.StateOf(token), r)
			transitions = append(transitions, Transition{
				State:   token,
				Request: r,
				Grant:   grant,
				Next:    next.Token(),
			})
		}
	}

	return transitions
}

// CheckRoundRobin checks the round-robin invariants on every transition.
func CheckRoundRobin(step StepFunc) Report {
	return check(EnumerateRoundRobin(step), RoundRobinInvariants())
}

// CheckFixedPriority checks the fixed-priority invariants on every request.
func CheckFixedPriority(decide DecideFunc) Report {
	transitions := make([]Transition, 0, len(arbitration.Requests()))
	for _, r := range arbitration.Requests() {
		transitions = append(transitions, Transition{
			Request: r,
			Grant:   decide(r),
		})
	}

	return check(transitions, FixedPriorityInvariants())
}

func check(transitions []Transition, invariants []Invariant) Report {
	report := Report{Transitions: transitions}

	for _, t := range transitions {
		for _, inv := range invariants {
			report.Checked++

			if !inv.Holds(t) {
				report.Violations = append(report.Violations, Violation{
					Invariant:  inv.Name,
					Transition: t,
				})
			}
		}
	}

	return report
}
