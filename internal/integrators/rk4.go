package integrators

import (
	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/physics"
)

// Classical RK4 weights for d1..d4.
var rk4Weights = [4]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0}

// RK4 is the classical 4th-order Runge-Kutta method. Each Step is split into
// a fixed number of equal sub-intervals, trading force evaluations for
// accuracy at an unchanged outer timestep.
type RK4 struct {
	substeps int
}

// NewRK4 returns an RK4 integrator. Substep counts below one are treated as
// one.
func NewRK4(substeps int) *RK4 {
	return &RK4{substeps: normalizeSubsteps(substeps)}
}

func (r *RK4) Name() string  { return KindRK4.String() }
func (r *RK4) Substeps() int { return r.substeps }
func (r *RK4) Spec() Spec    { return Spec{Kind: KindRK4, Substeps: r.substeps} }

func (r *RK4) Step(s *physics.State, dt float64) {
	h := dt / float64(r.substeps)
	for k := 0; k < r.substeps; k++ {
		r.stage(s, h)
	}
}

// stage performs a single RK4 step of length h on s.
func (r *RK4) stage(s *physics.State, h float64) {
	d1 := physics.Derive(s)
	d2 := physics.Derive(s.AdvanceBy(d1, h/2))
	d3 := physics.Derive(s.AdvanceBy(d2, h/2))
	d4 := physics.Derive(s.AdvanceBy(d3, h))
	ds := [4]physics.Derivative{d1, d2, d3, d4}

	for i := 0; i < s.Len(); i++ {
		vel, acc := geometry.Zero, geometry.Zero
		for k, w := range rk4Weights {
			vel = vel.Add(ds[k].Velocities[i].Scale(w))
			acc = acc.Add(ds[k].Accelerations[i].Scale(w))
		}
		s.Positions[i] = s.Positions[i].Add(vel.Scale(h))
		s.Velocities[i] = s.Velocities[i].Add(acc.Scale(h))
	}
}
