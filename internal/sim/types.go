package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/physics"
)

var (
	ErrNoSuchBody    = errors.New("no such body")
	ErrNilIntegrator = errors.New("sim: nil integrator")
)

// Metric accumulates a scalar over a run. Observe is called once before the
// first tick and once after every tick.
type Metric interface {
	Name() string
	Observe(s *physics.State, t float64)
	Value() float64
	Reset()
}

// Observer sees the body list after every tick. The slice is a copy.
type Observer interface {
	OnStep(bodies []body.CelestialBody, t float64)
}

type ObserverFunc func(bodies []body.CelestialBody, t float64)

func (f ObserverFunc) OnStep(bodies []body.CelestialBody, t float64) { f(bodies, t) }

type Result struct {
	Steps         int
	Elapsed       float64
	InitialEnergy float64
	FinalEnergy   float64
	EnergyDrift   float64
	Metrics       map[string]float64
}

// StepError reports a tick after which some position or velocity stopped
// being finite.
type StepError struct {
	Step int
	Time float64
}

func (e StepError) Error() string {
	return fmt.Sprintf("non-finite state after step %d (t=%.0fs)", e.Step, e.Time)
}
