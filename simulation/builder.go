package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/arbsim/datarecording"
	"github.com/sarchlab/arbsim/monitoring"
	"github.com/sarchlab/arbsim/sim/timing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	recordOn       bool
	outputFileName string
}

// MakeBuilder creates a new builder. Monitoring and recording are off by
// default.
func MakeBuilder() Builder {
	return Builder{}
}

// WithMonitoring serves the monitoring API while the simulation runs.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page once the server is up.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithRecording records every decision into an SQLite database. An empty
// file name picks a unique one.
func (b Builder) WithRecording(filename string) Builder {
	b.recordOn = true
	b.outputFileName = filename

	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		compNameIndex: make(map[string]int),
		openBrowser:   b.openBrowser,
	}

	s.engine = timing.NewSerialEngine()

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "arbsim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.decisionRecorder = datarecording.NewDecisionRecorder(s.dataRecorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().WithPortNumber(b.monitorPort)
		s.monitor.RegisterEngine(s.engine)
	}

	return s
}
