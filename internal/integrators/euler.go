package integrators

import "github.com/san-kum/orrery/internal/physics"

// Euler is the semi-implicit Euler method: velocities are updated from the
// current forces first, and positions then move with the new velocities.
// Swapping the two updates gives the explicit method, which spirals
// outward on closed orbits.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return KindEuler.String() }

func (e *Euler) Step(s *physics.State, dt float64) {
	forces := physics.NetForces(s)
	for i := range forces {
		acc := physics.Acceleration(forces[i], s.Masses[i])
		s.Velocities[i] = s.Velocities[i].Add(acc.Scale(dt))
		s.Positions[i] = s.Positions[i].Add(s.Velocities[i].Scale(dt))
	}
}
