package arbitration

// Step is the round-robin transition. It returns the grant of the current tick
// and the state to use in the next tick.
//
// The token passes to the other requester only when its holder is served. If
// the holder is silent and the other requester is served as a backup, the
// token stays where it is.
//
//	state     reqA  reqB   grant  next
//	PrefersA  1     x      A      PrefersB
//	PrefersA  0     1      B      PrefersA
//	PrefersA  0     0      -      PrefersA
//	PrefersB  x     1      B      PrefersA
//	PrefersB  1     0      A      PrefersB
//	PrefersB  0     0      -      PrefersB
func Step(
	state ArbiterState,
	request RequestVector,
) (GrantVector, ArbiterState) {
	grant := NoGrant()

	switch state.token {
	case PrefersA:
		switch {
		case request.A:
			grant.A = true
			return grant, ArbiterState{token: PrefersB}
		case request.B:
			grant.B = true
			return grant, state
		default:
			return grant, state
		}
	case PrefersB:
		switch {
		case request.B:
			grant.B = true
			return grant, ArbiterState{token: PrefersA}
		case request.A:
			grant.A = true
			return grant, state
		default:
			return grant, state
		}
	}

	state.token.mustBeValid()

	return grant, state
}
