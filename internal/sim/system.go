package sim

import (
	"fmt"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/physics"
)

// System owns an ordered list of bodies, the timestep and the integrator.
// A body's id is its insertion index and never changes.
//
// System is not safe for concurrent use. Independent systems may run on
// separate goroutines.
type System struct {
	bodies     []body.CelestialBody
	timestep   float64
	integrator integrators.Integrator
	elapsed    float64
	steps      int
}

// New returns an empty system. It panics with ErrNilIntegrator when integ
// is nil.
func New(timestep float64, integ integrators.Integrator) *System {
	if integ == nil {
		panic(ErrNilIntegrator)
	}
	return &System{
		bodies:     make([]body.CelestialBody, 0),
		timestep:   timestep,
		integrator: integ,
	}
}

// FromConfig builds a system from a validated body table.
func FromConfig(cfg *config.Config) (*System, error) {
	integ, err := integratorFor(cfg)
	if err != nil {
		return nil, err
	}
	bodies, err := cfg.CelestialBodies()
	if err != nil {
		return nil, err
	}

	s := New(cfg.Timestep, integ)
	for _, b := range bodies {
		if _, err := s.AddBody(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func integratorFor(cfg *config.Config) (integrators.Integrator, error) {
	spec, err := cfg.IntegratorSpec()
	if err != nil {
		return nil, err
	}
	return integrators.New(spec)
}

// InitializeStandard replaces the current contents with the Sun and the
// eight planets, a one hour timestep and RK4 with the default substeps.
func (s *System) InitializeStandard() error {
	cfg := config.DefaultConfig()
	integ, err := integratorFor(cfg)
	if err != nil {
		return err
	}
	bodies, err := cfg.CelestialBodies()
	if err != nil {
		return err
	}

	s.bodies = bodies
	s.timestep = cfg.Timestep
	s.integrator = integ
	s.elapsed = 0
	s.steps = 0
	return nil
}

// AddBody appends b and returns its id.
func (s *System) AddBody(b body.CelestialBody) (int, error) {
	if err := b.Validate(); err != nil {
		return -1, err
	}
	s.bodies = append(s.bodies, b)
	return len(s.bodies) - 1, nil
}

// Update advances every body by one timestep. Only positions and velocities
// are written back.
func (s *System) Update() {
	if len(s.bodies) > 0 {
		st := s.snapshot()
		s.integrator.Step(st, s.timestep)
		for i := range s.bodies {
			s.bodies[i].Position = st.Positions[i]
			s.bodies[i].Velocity = st.Velocities[i]
		}
	}
	s.elapsed += s.timestep
	s.steps++
}

func (s *System) snapshot() *physics.State {
	n := len(s.bodies)
	st := &physics.State{
		Positions:  make([]geometry.Vector3, n),
		Velocities: make([]geometry.Vector3, n),
		Masses:     make([]float64, n),
	}
	for i, b := range s.bodies {
		st.Positions[i] = b.Position
		st.Velocities[i] = b.Velocity
		st.Masses[i] = b.Mass
	}
	return st
}

// State returns a fresh snapshot of the bodies in list order.
func (s *System) State() *physics.State { return s.snapshot() }

// Bodies returns a copy of the body list.
func (s *System) Bodies() []body.CelestialBody {
	out := make([]body.CelestialBody, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *System) Len() int { return len(s.bodies) }

func (s *System) Body(id int) (body.CelestialBody, error) {
	if id < 0 || id >= len(s.bodies) {
		return body.CelestialBody{}, fmt.Errorf("%w: id %d", ErrNoSuchBody, id)
	}
	return s.bodies[id], nil
}

// SetBodyState overwrites the position and velocity of body id. Mass and
// every other attribute are left alone.
func (s *System) SetBodyState(id int, position, velocity geometry.Vector3) error {
	if id < 0 || id >= len(s.bodies) {
		return fmt.Errorf("%w: id %d", ErrNoSuchBody, id)
	}
	s.bodies[id].Position = position
	s.bodies[id].Velocity = velocity
	return nil
}

// FindByName returns the id of the first body whose name matches exactly.
func (s *System) FindByName(name string) (int, bool) {
	for i, b := range s.bodies {
		if b.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (s *System) BodiesOfKind(kind body.Kind) []int {
	var ids []int
	for i, b := range s.bodies {
		if b.Kind == kind {
			ids = append(ids, i)
		}
	}
	return ids
}

func (s *System) Timestep() float64 { return s.timestep }

// SetTimestep accepts any value, including zero and negative timesteps.
func (s *System) SetTimestep(dt float64) { s.timestep = dt }

// ScaleTimestep multiplies the timestep by f without bounds.
func (s *System) ScaleTimestep(f float64) { s.timestep *= f }

func (s *System) Integrator() integrators.Integrator { return s.integrator }

// SetIntegrator panics with ErrNilIntegrator when i is nil.
func (s *System) SetIntegrator(i integrators.Integrator) {
	if i == nil {
		panic(ErrNilIntegrator)
	}
	s.integrator = i
}

// Elapsed is the sum of the timesteps of every Update so far.
func (s *System) Elapsed() float64 { return s.elapsed }
func (s *System) Steps() int       { return s.steps }
