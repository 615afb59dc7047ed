package metrics

import (
	"github.com/san-kum/orrery/internal/physics"
)

// Stability is the fraction of snapshots in which every body stayed within
// threshold metres of the centre of mass and had a finite state.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st *physics.State, t float64) {
	s.samples++
	if !st.IsValid() {
		s.violations++
		return
	}
	com := physics.CenterOfMass(st)
	for _, p := range st.Positions {
		if p.Sub(com).Magnitude() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
