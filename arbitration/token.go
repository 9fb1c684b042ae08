package arbitration

import "fmt"

// PriorityToken names the requester that wins if both requesters contend.
type PriorityToken uint8

// The two priority tokens. PrefersA is the zero value, so a token that has not
// been assigned explicitly is still the initial token.
const (
	PrefersA PriorityToken = iota
	PrefersB
)

// Tokens returns both priority tokens.
func Tokens() []PriorityToken {
	return []PriorityToken{PrefersA, PrefersB}
}

// Valid returns true if the token is PrefersA or PrefersB.
func (t PriorityToken) Valid() bool {
	return t == PrefersA || t == PrefersB
}

func (t PriorityToken) String() string {
	switch t {
	case PrefersA:
		return "PrefersA"
	case PrefersB:
		return "PrefersB"
	default:
		return fmt.Sprintf("PriorityToken(%d)", uint8(t))
	}
}

func (t PriorityToken) mustBeValid() {
	if !t.Valid() {
		panic(fmt.Sprintf("invalid priority token %d", uint8(t)))
	}
}

// ArbiterState is the complete state of a round-robin arbiter. It can only be
// created through InitialState or StateOf and is replaced as a whole by Step.
type ArbiterState struct {
	token PriorityToken
}

// InitialState returns the state a round-robin arbiter starts with.
func InitialState() ArbiterState {
	return ArbiterState{token: PrefersA}
}

// StateOf returns the state that holds the given token. It panics if the token
// is not valid.
func StateOf(token PriorityToken) ArbiterState {
	token.mustBeValid()

	return ArbiterState{token: token}
}

// Token returns the priority token held by the state.
func (s ArbiterState) Token() PriorityToken {
	return s.token
}

func (s ArbiterState) String() string {
	return s.token.String()
}
