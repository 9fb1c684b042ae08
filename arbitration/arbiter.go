package arbitration

import (
	"fmt"
	"strings"
)

// Policy selects how an Arbiter resolves contention.
type Policy int

// The supported policies.
const (
	FixedPriorityPolicy Policy = iota
	RoundRobinPolicy
)

func (p Policy) String() string {
	switch p {
	case FixedPriorityPolicy:
		return "fixed-priority"
	case RoundRobinPolicy:
		return "round-robin"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fixed", "fixed-priority", "fixedpriority", "priority":
		return FixedPriorityPolicy, nil
	case "rr", "round-robin", "roundrobin":
		return RoundRobinPolicy, nil
	default:
		return 0, fmt.Errorf("unknown arbitration policy %q", name)
	}
}

// An Arbiter decides, once per tick, which requester is granted.
type Arbiter interface {
	// Name returns the name of the arbiter.
	Name() string

	// Policy returns the policy that the arbiter implements.
	Policy() Policy

	// Arbitrate returns the grant for the request observed in the current
	// tick. Stateful arbiters advance their state before returning.
	Arbitrate(request RequestVector) GrantVector

	// Reset brings the arbiter back to its initial state.
	Reset()
}

// NewArbiter creates an arbiter that implements the given policy.
func NewArbiter(name string, policy Policy) Arbiter {
	switch policy {
	case FixedPriorityPolicy:
		return NewFixedPriority(name)
	case RoundRobinPolicy:
		return NewRoundRobin(name)
	default:
		panic(fmt.Sprintf("unknown arbitration policy %d", int(policy)))
	}
}

// FixedPriority is an Arbiter that always prefers requester A.
type FixedPriority struct {
	name string
}

// NewFixedPriority creates a FixedPriority arbiter.
func NewFixedPriority(name string) *FixedPriority {
	return &FixedPriority{name: name}
}

// Name returns the name of the arbiter.
func (a *FixedPriority) Name() string {
	return a.name
}

// Policy returns FixedPriorityPolicy.
func (a *FixedPriority) Policy() Policy {
	return FixedPriorityPolicy
}

// Arbitrate applies Decide.
func (a *FixedPriority) Arbitrate(request RequestVector) GrantVector {
	return Decide(request)
}

// Reset does nothing as a fixed-priority arbiter has no state.
func (a *FixedPriority) Reset() {}

// RoundRobin is an Arbiter that owns an ArbiterState and advances it with Step.
type RoundRobin struct {
	name  string
	state ArbiterState
}

// NewRoundRobin creates a RoundRobin arbiter in the initial state.
func NewRoundRobin(name string) *RoundRobin {
	return &RoundRobin{
		name:  name,
		state: InitialState(),
	}
}

// Name returns the name of the arbiter.
func (a *RoundRobin) Name() string {
	return a.name
}

// Policy returns RoundRobinPolicy.
func (a *RoundRobin) Policy() Policy {
	return RoundRobinPolicy
}

// State returns the state that the next call to Arbitrate starts from.
func (a *RoundRobin) State() ArbiterState {
	return a.state
}

// Arbitrate applies Step and keeps the successor state.
func (a *RoundRobin) Arbitrate(request RequestVector) GrantVector {
	grant, next := Step(a.state, request)
	a.state = next

	return grant
}

// Reset puts the arbiter back into the initial state.
func (a *RoundRobin) Reset() {
	a.state = InitialState()
}

// A TokenHolder is an arbiter that carries a priority token.
type TokenHolder interface {
	State() ArbiterState
}
