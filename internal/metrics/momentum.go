package metrics

import (
	"math"

	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/physics"
)

// AngularMomentumDrift tracks max |L-L0|/|L0| about the origin.
type AngularMomentumDrift struct {
	initial  geometry.Vector3
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(s *physics.State, t float64) {
	l := physics.AngularMomentum(s)
	if a.samples == 0 {
		a.initial = l
	}
	a.samples++

	if norm := a.initial.Magnitude(); norm != 0 {
		a.maxDrift = math.Max(a.maxDrift, l.Sub(a.initial).Magnitude()/norm)
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = geometry.Zero
	a.maxDrift = 0
	a.samples = 0
}

// MinSeparation is the closest approach between any two bodies, in metres.
type MinSeparation struct {
	min float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(s *physics.State, t float64) {
	m.min = math.Min(m.min, physics.MinSeparation(s))
}

func (m *MinSeparation) Value() float64 { return m.min }
func (m *MinSeparation) Reset()         { m.min = math.Inf(1) }
