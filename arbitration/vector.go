// Package arbitration decides which of two requesters may use a shared
// resource in a tick.
package arbitration

import (
	"fmt"
	"strings"
)

// RequestVector holds the request lines of the two requesters as observed at a
// tick.
type RequestVector struct {
	A bool
	B bool
}

// Requests returns all four request combinations in a fixed order.
func Requests() []RequestVector {
	return []RequestVector{
		{A: false, B: false},
		{A: true, B: false},
		{A: false, B: true},
		{A: true, B: true},
	}
}

// Idle returns true if neither requester asks for the resource.
func (r RequestVector) Idle() bool {
	return !r.A && !r.B
}

// Contended returns true if both requesters ask for the resource.
func (r RequestVector) Contended() bool {
	return r.A && r.B
}

func (r RequestVector) String() string {
	switch {
	case r.A && r.B:
		return "AB"
	case r.A:
		return "A"
	case r.B:
		return "B"
	default:
		return "-"
	}
}

// ParseRequest converts the textual form of a request vector. It accepts "A",
// "B", "AB" (or "BA") and "-", "" or "none" for no request, in any letter case.
func ParseRequest(s string) (RequestVector, error) {
	r := RequestVector{}

	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "-" || s == "NONE" {
		return r, nil
	}

	for _, c := range s {
		switch c {
		case 'A':
			if r.A {
				return RequestVector{}, fmt.Errorf("requester A repeated in %q", s)
			}
			r.A = true
		case 'B':
			if r.B {
				return RequestVector{}, fmt.Errorf("requester B repeated in %q", s)
			}
			r.B = true
		default:
			return RequestVector{}, fmt.Errorf("invalid request %q", s)
		}
	}

	return r, nil
}

// GrantVector holds the grant lines produced by an arbiter in a tick. At most
// one of A and B is set.
type GrantVector struct {
	A bool
	B bool
}

// NoGrant returns the grant vector that grants nobody. Every decision starts
// from it.
func NoGrant() GrantVector {
	return GrantVector{}
}

// GrantA returns the grant vector that grants requester A only.
func GrantA() GrantVector {
	return GrantVector{A: true}
}

// GrantB returns the grant vector that grants requester B only.
func GrantB() GrantVector {
	return GrantVector{B: true}
}

// Exclusive returns false if both requesters are granted.
func (g GrantVector) Exclusive() bool {
	return !(g.A && g.B)
}

// None returns true if nobody is granted.
func (g GrantVector) None() bool {
	return !g.A && !g.B
}

func (g GrantVector) String() string {
	switch {
	case g.A && g.B:
		return "AB!"
	case g.A:
		return "A"
	case g.B:
		return "B"
	default:
		return "-"
	}
}

// ParseGrant converts "A", "B" or "-" (also "" and "none") into a grant vector.
func ParseGrant(s string) (GrantVector, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return GrantA(), nil
	case "B":
		return GrantB(), nil
	case "", "-", "NONE":
		return NoGrant(), nil
	default:
		return NoGrant(), fmt.Errorf("invalid grant %q", s)
	}
}
