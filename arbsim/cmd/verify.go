package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/arbitration/verification"
)

func newVerifyCmd() *cobra.Command {
	var (
		policy   string
		traceLen int
	)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the arbitration invariants on every reachable state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.OutOrStdout(), policy, traceLen)
		},
	}

	verifyCmd.Flags().StringVar(&policy, "policy", "all",
		"Policy to check: all, fixed or round-robin")
	verifyCmd.Flags().IntVar(&traceLen, "trace-len", 16,
		"Number of ticks of the contention and lone-requester traces")

	return verifyCmd
}

func runVerify(out io.Writer, policy string, traceLen int) error {
	if traceLen < 1 {
		return errors.Errorf("trace length must be positive, got %d", traceLen)
	}

	var policies []arbitration.Policy

	if policy == "all" {
		policies = []arbitration.Policy{
			arbitration.FixedPriorityPolicy,
			arbitration.RoundRobinPolicy,
		}
	} else {
		p, err := arbitration.ParsePolicy(policy)
		if err != nil {
			return err
		}

		policies = []arbitration.Policy{p}
	}

	failed := false

	for _, p := range policies {
		var ok bool

		switch p {
		case arbitration.FixedPriorityPolicy:
			ok = verifyFixedPriority(out)
		case arbitration.RoundRobinPolicy:
			ok = verifyRoundRobin(out, traceLen)
		}

		failed = failed || !ok
	}

	if failed {
		return errors.New("arbitration invariants violated")
	}

	return nil
}

func verifyFixedPriority(out io.Writer) bool {
	report := verification.CheckFixedPriority(arbitration.Decide)

	fmt.Fprintln(out, arbitration.FixedPriorityPolicy)

	for _, t := range report.Transitions {
		fmt.Fprintf(out, "  req=%-2s -> grant=%s\n", t.Request, t.Grant)
	}

	return printReport(out, report)
}

func verifyRoundRobin(out io.Writer, traceLen int) bool {
	report := verification.CheckRoundRobin(arbitration.Step)

	fmt.Fprintln(out, arbitration.RoundRobinPolicy)

	for _, t := range report.Transitions {
		fmt.Fprintf(out, "  %s\n", t)
	}

	ok := printReport(out, report)

	ok = printTraceCheck(out, "alternation under contention",
		verification.CheckAlternation(arbitration.Step, traceLen)) && ok
	ok = printTraceCheck(out, "lone requester persistence",
		verification.CheckPersistence(arbitration.Step, traceLen)) && ok

	return ok
}

func printReport(out io.Writer, report verification.Report) bool {
	for _, v := range report.Violations {
		fmt.Fprintf(out, "  FAIL %s\n", v)
	}

	status := "PASS"
	if !report.OK() {
		status = "FAIL"
	}

	fmt.Fprintf(out, "  %d transitions, %d checks: %s\n",
		len(report.Transitions), report.Checked, status)

	return report.OK()
}

func printTraceCheck(out io.Writer, name string, err error) bool {
	if err != nil {
		fmt.Fprintf(out, "  %s: FAIL %v\n", name, err)
		return false
	}

	fmt.Fprintf(out, "  %s: PASS\n", name)

	return true
}
