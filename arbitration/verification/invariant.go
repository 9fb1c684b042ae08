package verification

import "github.com/sarchlab/arbsim/arbitration"

// Invariant is a named property of a single transition.
type Invariant struct {
	Name  string
	Holds func(t Transition) bool
}

// MutualExclusion requires that at most one requester is granted.
var MutualExclusion = Invariant{
	Name: "mutual-exclusion",
	Holds: func(t Transition) bool {
		return t.Grant.Exclusive()
	},
}

// GrantAPassesToken requires the token to move to B whenever A is granted.
var GrantAPassesToken = Invariant{
	Name: "grant-a-passes-token",
	Holds: func(t Transition) bool {
		return !t.Grant.A || t.Next == arbitration.PrefersB
	},
}

// GrantBPassesToken requires the token to move to A whenever B is granted.
var GrantBPassesToken = Invariant{
	Name: "grant-b-passes-token",
	Holds: func(t Transition) bool {
		return !t.Grant.B || t.Next == arbitration.PrefersA
	},
}

// HolderServedFirst requires a requesting token holder to be granted.
var HolderServedFirst = Invariant{
	Name: "holder-served-first",
	Holds: func(t Transition) bool {
		switch t.State {
		case arbitration.PrefersA:
			return !t.Request.A || t.Grant.A
		case arbitration.PrefersB:
			return !t.Request.B || t.Grant.B
		default:
			return false
		}
	},
}

// NoWastedTick requires somebody to be granted whenever somebody asks, and
// nobody to be granted who did not ask.
var NoWastedTick = Invariant{
	Name: "no-wasted-tick",
	Holds: func(t Transition) bool {
		if t.Grant.A && !t.Request.A || t.Grant.B && !t.Request.B {
			return false
		}

		return t.Request.Idle() == t.Grant.None()
	},
}

// IdleKeepsToken requires a tick without requests to grant nothing and leave
// the token where it is.
var IdleKeepsToken = Invariant{
	Name: "idle-keeps-token",
	Holds: func(t Transition) bool {
		if !t.Request.Idle() {
			return true
		}

		return t.Grant.None() && t.Next == t.State
	},
}

// FixedAWins requires requester A to be granted alone whenever it asks.
var FixedAWins = Invariant{
	Name: "fixed-a-wins",
	Holds: func(t Transition) bool {
		return !t.Request.A || (t.Grant.A && !t.Grant.B)
	},
}

// RoundRobinInvariants returns the invariants of the round-robin arbiter.
func RoundRobinInvariants() []Invariant {
	return []Invariant{
		MutualExclusion,
		GrantAPassesToken,
		GrantBPassesToken,
		HolderServedFirst,
		NoWastedTick,
		IdleKeepsToken,
	}
}

// FixedPriorityInvariants returns the invariants of the fixed-priority
// arbiter.
func FixedPriorityInvariants() []Invariant {
	return []Invariant{
		MutualExclusion,
		NoWastedTick,
		FixedAWins,
	}
}
