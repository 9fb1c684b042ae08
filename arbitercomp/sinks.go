package arbitercomp

import (
	"sync"

	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/sim/hooking"
)

// GrantLog is a GrantSink that remembers every grant shown.
type GrantLog struct {
	lock   sync.Mutex
	grants []arbitration.GrantVector
}

// Display appends the grant to the log.
func (l *GrantLog) Display(_ uint64, grant arbitration.GrantVector) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.grants = append(l.grants, grant)
}

// Grants returns a copy of the grants shown so far.
func (l *GrantLog) Grants() []arbitration.GrantVector {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]arbitration.GrantVector, len(l.grants))
	copy(out, l.grants)

	return out
}

// Stats summarizes a run.
type Stats struct {
	Ticks      uint64 `json:"ticks"`
	GrantsA    uint64 `json:"grants_a"`
	GrantsB    uint64 `json:"grants_b"`
	Idle       uint64 `json:"idle"`
	Contended  uint64 `json:"contended"`
	Backup     uint64 `json:"backup"`
	TokenMoves uint64 `json:"token_moves"`
}

// StatsCollector counts decisions. It can be attached to a Comp as a hook or
// fed directly as a tick.DecisionSink.
type StatsCollector struct {
	lock  sync.Mutex
	stats Stats
}

// NewStatsCollector creates a StatsCollector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{}
}

// Func counts the decision carried by a HookPosDecision context.
func (s *StatsCollector) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosDecision {
		return
	}

	d, ok := ctx.Item.(arbitration.Decision)
	if !ok {
		return
	}

	s.Accept(d)
}

// Accept counts one decision.
func (s *StatsCollector) Accept(d arbitration.Decision) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.stats.Ticks++

	switch {
	case d.Grant.A:
		s.stats.GrantsA++
	case d.Grant.B:
		s.stats.GrantsB++
	default:
		s.stats.Idle++
	}

	if d.Contended() {
		s.stats.Contended++
	}

	if d.Backup() {
		s.stats.Backup++
	}

	if d.TokenMoved() {
		s.stats.TokenMoves++
	}
}

// Stats returns the counts so far.
func (s *StatsCollector) Stats() Stats {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.stats
}
