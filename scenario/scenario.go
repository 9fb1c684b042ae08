// Package scenario loads arbitration scenarios from YAML files.
//
// A scenario names a policy, a request script and, optionally, the grants that
// the script must produce:
//
//	name: contention
//	policy: round-robin
//	freq: 30
//	ticks: 4
//	requests: [A, AB, AB, "-"]
//	expect:   [A, B, A, "-"]
package scenario

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/tick"
)

// DefaultFreq is the tick rate used when a scenario does not give one.
const DefaultFreq = 30.0

// MaxFreq is the highest tick rate whose period is still at least one
// nanosecond.
const MaxFreq = 1e9

// Scenario describes one run of an arbiter.
type Scenario struct {
	Name     string   `yaml:"name"`
	Policy   string   `yaml:"policy"`
	Freq     float64  `yaml:"freq"`
	Ticks    uint64   `yaml:"ticks"`
	Repeat   bool     `yaml:"repeat"`
	Requests []string `yaml:"requests"`
	Expect   []string `yaml:"expect"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading scenario %s", path)
	}

	return s, nil
}

// Parse decodes and validates a scenario. Missing policy, frequency and tick
// count are filled with defaults.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}

	err := yaml.Unmarshal(data, s)
	if err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}

	s.applyDefaults()

	err = s.Validate()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Complete fills the defaults of a scenario built in code and validates it.
func (s *Scenario) Complete() error {
	s.applyDefaults()

	return s.Validate()
}

func (s *Scenario) applyDefaults() {
	if s.Policy == "" {
		s.Policy = arbitration.RoundRobinPolicy.String()
	}

	if s.Freq == 0 {
		s.Freq = DefaultFreq
	}

	if s.Ticks == 0 {
		s.Ticks = uint64(len(s.Requests))
	}
}

// Validate checks that every field can be used to build a run.
func (s *Scenario) Validate() error {
	_, err := arbitration.ParsePolicy(s.Policy)
	if err != nil {
		return errors.WithStack(err)
	}

	if math.IsNaN(s.Freq) || math.IsInf(s.Freq, 0) {
		return errors.Errorf("frequency must be a finite number, got %g", s.Freq)
	}

	if s.Freq < 0 {
		return errors.Errorf("frequency must be positive, got %g", s.Freq)
	}

	if s.Freq > MaxFreq {
		return errors.Errorf("frequency %g is above the maximum of %g",
			s.Freq, MaxFreq)
	}

	if s.Ticks == 0 {
		return errors.New("scenario has no ticks to run")
	}

	_, err = s.RequestVectors()
	if err != nil {
		return err
	}

	_, err = s.ExpectedGrants()
	if err != nil {
		return err
	}

	if uint64(len(s.Expect)) > s.Ticks {
		return errors.Errorf("%d grants expected but only %d ticks run",
			len(s.Expect), s.Ticks)
	}

	return nil
}

// PolicyValue returns the parsed policy.
func (s *Scenario) PolicyValue() arbitration.Policy {
	p, err := arbitration.ParsePolicy(s.Policy)
	if err != nil {
		panic(err)
	}

	return p
}

// RequestVectors parses the request script.
func (s *Scenario) RequestVectors() ([]arbitration.RequestVector, error) {
	out := make([]arbitration.RequestVector, 0, len(s.Requests))

	for i, item := range s.Requests {
		r, err := arbitration.ParseRequest(item)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d", i)
		}

		out = append(out, r)
	}

	return out, nil
}

// ExpectedGrants parses the expected grants.
func (s *Scenario) ExpectedGrants() ([]arbitration.GrantVector, error) {
	out := make([]arbitration.GrantVector, 0, len(s.Expect))

	for i, item := range s.Expect {
		g, err := arbitration.ParseGrant(item)
		if err != nil {
			return nil, errors.Wrapf(err, "expected grant %d", i)
		}

		out = append(out, g)
	}

	return out, nil
}

// Script returns the request sampler that plays the scenario.
func (s *Scenario) Script() *tick.Script {
	requests, err := s.RequestVectors()
	if err != nil {
		panic(err)
	}

	return &tick.Script{Requests: requests, Repeat: s.Repeat}
}

// Mismatch describes a tick whose grant differs from the expected one.
type Mismatch struct {
	Tick     int
	Expected arbitration.GrantVector
	Actual   arbitration.GrantVector
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("tick %d: expected grant %s, got %s",
		m.Tick, m.Expected, m.Actual)
}

// Compare checks the grants of a run against the expected ones and returns the
// first mismatch. Ticks past the end of the expectation are not checked.
func (s *Scenario) Compare(grants []arbitration.GrantVector) error {
	expected, err := s.ExpectedGrants()
	if err != nil {
		return err
	}

	if len(grants) < len(expected) {
		return errors.Errorf("run produced %d grants, %d expected",
			len(grants), len(expected))
	}

	for i, e := range expected {
		if grants[i] != e {
			return Mismatch{Tick: i, Expected: e, Actual: grants[i]}
		}
	}

	return nil
}
