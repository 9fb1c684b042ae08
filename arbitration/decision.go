package arbitration

import "fmt"

// Decision records what an arbiter did in one tick.
type Decision struct {
	Tick    uint64
	Policy  Policy
	Request RequestVector
	Grant   GrantVector

	// HasToken is false for arbiters that do not carry a priority token, in
	// which case TokenBefore and TokenAfter are meaningless.
	HasToken    bool
	TokenBefore PriorityToken
	TokenAfter  PriorityToken
}

// Contended returns true if both requesters asked in the tick.
func (d Decision) Contended() bool {
	return d.Request.Contended()
}

// Backup returns true if the round-robin arbiter served the requester that did
// not hold the token.
func (d Decision) Backup() bool {
	if !d.HasToken {
		return false
	}

	switch d.TokenBefore {
	case PrefersA:
		return d.Grant.B
	case PrefersB:
		return d.Grant.A
	default:
		return false
	}
}

// TokenMoved returns true if the priority token changed hands in the tick.
func (d Decision) TokenMoved() bool {
	return d.HasToken && d.TokenBefore != d.TokenAfter
}

func (d Decision) String() string {
	if !d.HasToken {
		return fmt.Sprintf("tick %d: req=%s grant=%s",
			d.Tick, d.Request, d.Grant)
	}

	return fmt.Sprintf("tick %d: %s req=%s grant=%s -> %s",
		d.Tick, d.TokenBefore, d.Request, d.Grant, d.TokenAfter)
}

// Apply runs the arbiter on the request and returns the decision it made.
func Apply(arbiter Arbiter, tick uint64, request RequestVector) Decision {
	d := Decision{
		Tick:    tick,
		Policy:  arbiter.Policy(),
		Request: request,
	}

	holder, hasToken := arbiter.(TokenHolder)
	if hasToken {
		d.HasToken = true
		d.TokenBefore = holder.State().Token()
	}

	d.Grant = arbiter.Arbitrate(request)

	if hasToken {
		d.TokenAfter = holder.State().Token()
	}

	return d
}
