package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/arbsim/arbitercomp"
	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/scenario"
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/timing"
	"github.com/sarchlab/arbsim/simulation"
	"github.com/sarchlab/arbsim/tick"
)

type runOptions struct {
	scenarioPath string
	policy       string
	requests     string
	ticks        uint64
	freq         float64
	repeat       bool
	record       string
	monitor      bool
	monitorPort  int
	openBrowser  bool
	realtime     bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a request script through an arbiter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.scenario(cmd)
			if err != nil {
				return err
			}

			return opts.run(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}

	monitorPort, _ := strconv.Atoi(envOr(envMonitorPort, "0"))

	flags := runCmd.Flags()
	flags.StringVar(&opts.scenarioPath, "scenario", "",
		"YAML scenario file; the other flags override its fields")
	flags.StringVar(&opts.policy, "policy", "round-robin",
		"Arbitration policy: fixed or round-robin")
	flags.StringVar(&opts.requests, "requests", "",
		"Comma separated requests, one per tick, e.g. A,AB,AB,-")
	flags.Uint64Var(&opts.ticks, "ticks", 0,
		"Number of ticks to run; defaults to the length of the script")
	flags.Float64Var(&opts.freq, "freq", scenario.DefaultFreq,
		"Tick rate in Hz")
	flags.BoolVar(&opts.repeat, "repeat", false,
		"Start the script over when it runs out instead of idling")
	flags.StringVar(&opts.record, "record", envOr(envRecord, ""),
		"Record every decision into this SQLite database")
	flags.BoolVar(&opts.monitor, "monitor", false,
		"Serve the monitoring API while the run is going")
	flags.IntVar(&opts.monitorPort, "monitor-port", monitorPort,
		"Port of the monitoring server; 0 picks a free one")
	flags.BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the monitoring page in a browser")
	flags.BoolVar(&opts.realtime, "realtime", false,
		"Tick on the wall clock instead of in simulated time")

	return runCmd
}

func (o runOptions) scenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	s := &scenario.Scenario{Name: "cli"}

	if o.scenarioPath != "" {
		loaded, err := scenario.Load(o.scenarioPath)
		if err != nil {
			return nil, err
		}

		s = loaded
	}

	flags := cmd.Flags()

	if o.scenarioPath == "" || flags.Changed("policy") {
		s.Policy = o.policy
	}

	if o.scenarioPath == "" || flags.Changed("freq") {
		s.Freq = o.freq
	}

	if flags.Changed("ticks") {
		s.Ticks = o.ticks
	}

	if flags.Changed("repeat") {
		s.Repeat = o.repeat
	}

	if flags.Changed("requests") {
		s.Requests = splitList(o.requests)
		s.Expect = nil
	}

	err := s.Complete()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func splitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	items := strings.Split(list, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return items
}

func (o runOptions) run(
	ctx context.Context,
	out io.Writer,
	s *scenario.Scenario,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if o.realtime && o.monitor {
		return errors.New("--monitor needs the simulated engine, " +
			"drop --realtime")
	}

	simu, err := o.buildSimulation()
	if err != nil {
		return err
	}
	defer simu.Terminate()

	arbiter := arbitration.NewArbiter("Arbiter", s.PolicyValue())
	grants := &arbitercomp.GrantLog{}
	stats := arbitercomp.NewStatsCollector()

	fmt.Fprintf(out, "scenario %s: %s, %d ticks at %g Hz\n",
		s.Name, s.Policy, s.Ticks, s.Freq)

	if o.realtime {
		err = runRealtime(ctx, out, s, simu, arbiter, grants, stats)
	} else {
		err = runSimulated(out, s, simu, arbiter, grants, stats)
	}

	if err != nil {
		return err
	}

	printStats(out, stats.Stats())

	if len(s.Expect) == 0 {
		return nil
	}

	err = s.Compare(grants.Grants())
	if err != nil {
		return errors.Wrap(err, "scenario expectations not met")
	}

	fmt.Fprintln(out, "expectations met")

	return nil
}

func (o runOptions) buildSimulation() (*simulation.Simulation, error) {
	b := simulation.MakeBuilder()

	if o.record != "" {
		name := strings.TrimSuffix(o.record, ".sqlite3")
		if _, err := os.Stat(name + ".sqlite3"); err == nil {
			return nil, errors.Errorf("recording %s.sqlite3 already exists",
				name)
		}

		b = b.WithRecording(name)
	}

	if o.monitor {
		b = b.WithMonitoring().WithMonitorPort(o.monitorPort)

		if o.openBrowser {
			b = b.WithBrowser()
		}
	}

	return b.Build(), nil
}

func runSimulated(
	out io.Writer,
	s *scenario.Scenario,
	simu *simulation.Simulation,
	arbiter arbitration.Arbiter,
	grants *arbitercomp.GrantLog,
	stats *arbitercomp.StatsCollector,
) error {
	engine := simu.GetEngine()
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		engine.AcceptHook(timing.NewEventLogger(logrus.StandardLogger()))
	}

	comp := arbitercomp.MakeBuilder().
		WithEngine(engine).
		WithFreq(timing.Freq(s.Freq) * timing.Hz).
		WithArbiter(arbiter).
		WithRequestSource(s.Script()).
		WithGrantSink(grants).
		WithMaxTicks(s.Ticks).
		Build(arbiter.Name())

	comp.AcceptHook(stats)
	comp.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
		if d, ok := ctx.Item.(arbitration.Decision); ok {
			printDecision(out, d)
		}
	}))

	simu.RegisterComponent(comp)

	if m := simu.GetMonitor(); m != nil {
		bar := m.CreateProgressBar("Ticks", s.Ticks)
		comp.AcceptHook(bar)

		defer m.CompleteProgressBar(bar)
	}

	comp.Start()

	return simu.Run()
}

func runRealtime(
	ctx context.Context,
	out io.Writer,
	s *scenario.Scenario,
	simu *simulation.Simulation,
	arbiter arbitration.Arbiter,
	grants *arbitercomp.GrantLog,
	stats *arbitercomp.StatsCollector,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	src := tick.Limited{Source: tick.NewPeriodicAt(s.Freq), N: s.Ticks}
	period := 1 / s.Freq
	recorder := simu.GetDecisionRecorder()

	sink := tick.SinkFunc(func(d arbitration.Decision) {
		printDecision(out, d)
		grants.Display(d.Tick, d.Grant)
		stats.Accept(d)

		if recorder != nil {
			now := timing.VTimeInSec(float64(d.Tick) * period)
			recorder.Record(arbiter.Name(), now, d)
		}
	})

	n, err := tick.Drive(ctx, src, arbiter, s.Script(), sink)
	logrus.Infof("realtime run stopped after %d ticks", n)

	return err
}

func printDecision(out io.Writer, d arbitration.Decision) {
	logrus.Debugf("decision %s", d)
	fmt.Fprintln(out, d)
}

func printStats(out io.Writer, st arbitercomp.Stats) {
	fmt.Fprintf(out,
		"ticks=%d grants_a=%d grants_b=%d idle=%d contended=%d "+
			"backup=%d token_moves=%d\n",
		st.Ticks, st.GrantsA, st.GrantsB, st.Idle, st.Contended,
		st.Backup, st.TokenMoves)
}
