// Package simulation bundles the services an arbiter run needs: the engine,
// the decision recorder and the monitor.
package simulation

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/arbsim/datarecording"
	"github.com/sarchlab/arbsim/monitoring"
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/timing"
)

// A Component is a named part of the simulation that accepts hooks.
type Component interface {
	hooking.Hookable
	Name() string
}

// A Simulation provides the services required to run arbiters.
type Simulation struct {
	id     string
	engine timing.Engine

	dataRecorder     datarecording.DataRecorder
	decisionRecorder *datarecording.DecisionRecorder

	monitor     *monitoring.Monitor
	monitorURL  string
	openBrowser bool

	components    []Component
	compNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder, or nil if the simulation does
// not record.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetDecisionRecorder returns the hook that records decisions, or nil if the
// simulation does not record.
func (s *Simulation) GetDecisionRecorder() *datarecording.DecisionRecorder {
	return s.decisionRecorder
}

// GetMonitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server once it runs.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// RegisterComponent registers a component with the simulation. Its decisions
// are recorded and it shows up in the monitor.
func (s *Simulation) RegisterComponent(c Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.decisionRecorder != nil {
		c.AcceptHook(s.decisionRecorder)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// Components returns the registered components in registration order.
func (s *Simulation) Components() []Component {
	return s.components
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) Component {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[i]
}

// Run starts the monitoring server if needed and runs the engine until no
// event is left.
func (s *Simulation) Run() error {
	err := s.startMonitor()
	if err != nil {
		return err
	}

	return s.engine.Run()
}

func (s *Simulation) startMonitor() error {
	if s.monitor == nil || s.monitorURL != "" {
		return nil
	}

	url, err := s.monitor.StartServer()
	if err != nil {
		return err
	}

	s.monitorURL = url

	if s.openBrowser {
		s.monitor.OpenInBrowser(url)
	}

	return nil
}

// Terminate flushes the recorder and stops the monitor.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		err := s.dataRecorder.Close()
		if err != nil {
			logrus.Warnf("closing recorder: %v", err)
		}
	}

	if s.monitor != nil {
		err := s.monitor.StopServer()
		if err != nil {
			logrus.Warnf("stopping monitor: %v", err)
		}
	}
}
