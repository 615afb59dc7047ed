package integrators

import "github.com/san-kum/orrery/internal/physics"

// Verlet is velocity Verlet in kick-drift-kick form: a half kick from the
// current accelerations, a full drift, then a half kick from the
// accelerations at the new positions. It is second order and symplectic,
// and costs two force evaluations per step.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return KindVerlet.String() }

func (v *Verlet) Step(s *physics.State, dt float64) {
	half := 0.5 * dt
	acc := physics.NetAccelerations(s, nil)
	for i := range acc {
		s.Velocities[i] = s.Velocities[i].Add(acc[i].Scale(half))
		s.Positions[i] = s.Positions[i].Add(s.Velocities[i].Scale(dt))
	}

	acc = physics.NetAccelerations(s, acc)
	for i := range acc {
		s.Velocities[i] = s.Velocities[i].Add(acc[i].Scale(half))
	}
}
