package tick

import (
	"strings"

	"github.com/sarchlab/arbsim/arbitration"
)

// Script is a RequestSampler that plays back a fixed list of requests. After
// the list runs out it either starts over (Repeat) or keeps sampling idle.
type Script struct {
	Requests []arbitration.RequestVector
	Repeat   bool
}

// ParseScript builds a Script from request strings such as "AB", "A", "-".
func ParseScript(items []string, repeat bool) (*Script, error) {
	s := &Script{Repeat: repeat}

	for _, item := range items {
		r, err := arbitration.ParseRequest(item)
		if err != nil {
			return nil, err
		}

		s.Requests = append(s.Requests, r)
	}

	return s, nil
}

// ParseScriptList builds a Script from a comma separated list, e.g.
// "A,AB,AB,-".
func ParseScriptList(list string, repeat bool) (*Script, error) {
	if strings.TrimSpace(list) == "" {
		return &Script{Repeat: repeat}, nil
	}

	return ParseScript(strings.Split(list, ","), repeat)
}

// Sample returns the request of the given tick.
func (s *Script) Sample(tick uint64) arbitration.RequestVector {
	n := uint64(len(s.Requests))
	if n == 0 {
		return arbitration.RequestVector{}
	}

	if tick < n {
		return s.Requests[tick]
	}

	if s.Repeat {
		return s.Requests[tick%n]
	}

	return arbitration.RequestVector{}
}

// Len returns the number of requests in the script.
func (s *Script) Len() int {
	return len(s.Requests)
}
