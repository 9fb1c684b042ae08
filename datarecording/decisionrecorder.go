package datarecording

import (
	"github.com/sarchlab/arbsim/arbitercomp"
	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/timing"
)

// DecisionTable is the table that a DecisionRecorder writes to.
const DecisionTable = "decisions"

// DecisionEntry is one row of the decisions table.
type DecisionEntry struct {
	Arbiter     string
	Tick        uint64
	Time        float64
	Policy      string
	ReqA        bool
	ReqB        bool
	GrantA      bool
	GrantB      bool
	TokenBefore string
	TokenAfter  string
	Backup      bool
}

// DecisionRecorder is a hook that stores every arbiter decision.
type DecisionRecorder struct {
	recorder DataRecorder
}

// NewDecisionRecorder creates the decisions table and returns a hook that
// fills it.
func NewDecisionRecorder(recorder DataRecorder) *DecisionRecorder {
	recorder.CreateTable(DecisionTable, DecisionEntry{})

	return &DecisionRecorder{recorder: recorder}
}

// Func records the decision carried by an arbitercomp.HookPosDecision context.
func (r *DecisionRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != arbitercomp.HookPosDecision {
		return
	}

	d, ok := ctx.Item.(arbitration.Decision)
	if !ok {
		return
	}

	name := ""
	if n, ok := ctx.Domain.(interface{ Name() string }); ok {
		name = n.Name()
	}

	now, _ := ctx.Detail.(timing.VTimeInSec)

	r.Record(name, now, d)
}

// Record stores one decision.
func (r *DecisionRecorder) Record(
	arbiter string,
	now timing.VTimeInSec,
	d arbitration.Decision,
) {
	entry := DecisionEntry{
		Arbiter: arbiter,
		Tick:    d.Tick,
		Time:    now,
		Policy:  d.Policy.String(),
		ReqA:    d.Request.A,
		ReqB:    d.Request.B,
		GrantA:  d.Grant.A,
		GrantB:  d.Grant.B,
		Backup:  d.Backup(),
	}

	if d.HasToken {
		entry.TokenBefore = d.TokenBefore.String()
		entry.TokenAfter = d.TokenAfter.String()
	}

	r.recorder.InsertData(DecisionTable, entry)
}
