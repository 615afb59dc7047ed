package physics

import (
	"fmt"

	"github.com/san-kum/orrery/internal/geometry"
)

// State is a per-tick snapshot of every body, stored as three parallel
// sequences. Index i names the same body in Positions, Velocities and Masses.
type State struct {
	Positions  []geometry.Vector3
	Velocities []geometry.Vector3
	Masses     []float64
}

// NewState wraps the given sequences without copying them. It rejects
// sequences of different lengths and non-positive masses.
func NewState(positions, velocities []geometry.Vector3, masses []float64) (*State, error) {
	if len(positions) != len(velocities) || len(positions) != len(masses) {
		return nil, fmt.Errorf("%w: %d positions, %d velocities, %d masses",
			ErrInvariantViolation, len(positions), len(velocities), len(masses))
	}
	for i, m := range masses {
		if !(m > 0) {
			return nil, fmt.Errorf("%w: mass[%d] = %g", ErrInvariantViolation, i, m)
		}
	}
	return &State{Positions: positions, Velocities: velocities, Masses: masses}, nil
}

func (s *State) Len() int { return len(s.Positions) }

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := &State{
		Positions:  make([]geometry.Vector3, len(s.Positions)),
		Velocities: make([]geometry.Vector3, len(s.Velocities)),
		Masses:     make([]float64, len(s.Masses)),
	}
	copy(c.Positions, s.Positions)
	copy(c.Velocities, s.Velocities)
	copy(c.Masses, s.Masses)
	return c
}

// Derivative is the time derivative of a State: dx/dt per body and dv/dt per
// body.
type Derivative struct {
	Velocities    []geometry.Vector3
	Accelerations []geometry.Vector3
}

// AdvanceBy returns a trial state moved along d for a duration h:
// position + velocity*h and velocity + acceleration*h. The receiver is not
// modified; the trial state shares its Masses slice.
func (s *State) AdvanceBy(d Derivative, h float64) *State {
	n := s.Len()
	next := &State{
		Positions:  make([]geometry.Vector3, n),
		Velocities: make([]geometry.Vector3, n),
		Masses:     s.Masses,
	}
	for i := 0; i < n; i++ {
		next.Positions[i] = s.Positions[i].Add(d.Velocities[i].Scale(h))
		next.Velocities[i] = s.Velocities[i].Add(d.Accelerations[i].Scale(h))
	}
	return next
}

// IsValid reports whether every position and velocity is finite.
func (s *State) IsValid() bool {
	for i := range s.Positions {
		if !s.Positions[i].IsFinite() || !s.Velocities[i].IsFinite() {
			return false
		}
	}
	return true
}
