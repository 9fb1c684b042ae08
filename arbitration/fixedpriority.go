package arbitration

// Decide is the fixed-priority decision. Requester A always wins over B.
func Decide(request RequestVector) GrantVector {
	grant := NoGrant()

	if request.A {
		grant.A = true
	} else if request.B {
		grant.B = true
	}

	return grant
}
