package physics

import (
	"math"

	"github.com/san-kum/orrery/internal/geometry"
)

// KineticEnergy returns Σ ½ m v².
func KineticEnergy(s *State) float64 {
	ke := 0.0
	for i := range s.Masses {
		ke += 0.5 * s.Masses[i] * s.Velocities[i].MagnitudeSquared()
	}
	return ke
}

// PotentialEnergy returns the pairwise gravitational potential -Σ G mi mj / rij
// over unordered pairs.
func PotentialEnergy(s *State) float64 {
	pe := 0.0
	n := s.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := s.Positions[j].Sub(s.Positions[i]).Magnitude()
			pe -= G * s.Masses[i] * s.Masses[j] / r
		}
	}
	return pe
}

// TotalEnergy is the mechanical energy, kinetic plus potential.
func TotalEnergy(s *State) float64 {
	return KineticEnergy(s) + PotentialEnergy(s)
}

func Momentum(s *State) geometry.Vector3 {
	p := geometry.Zero
	for i := range s.Masses {
		p = p.Add(s.Velocities[i].Scale(s.Masses[i]))
	}
	return p
}

// AngularMomentum returns Σ m (r × v) about the origin.
func AngularMomentum(s *State) geometry.Vector3 {
	l := geometry.Zero
	for i := range s.Masses {
		l = l.Add(s.Positions[i].Cross(s.Velocities[i]).Scale(s.Masses[i]))
	}
	return l
}

func CenterOfMass(s *State) geometry.Vector3 {
	total := 0.0
	c := geometry.Zero
	for i := range s.Masses {
		c = c.Add(s.Positions[i].Scale(s.Masses[i]))
		total += s.Masses[i]
	}
	if total == 0 {
		return geometry.Zero
	}
	return c.Scale(1 / total)
}

// MinSeparation returns the smallest distance between any two bodies, or
// +Inf when there are fewer than two.
func MinSeparation(s *State) float64 {
	best := math.Inf(1)
	n := s.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := s.Positions[j].Sub(s.Positions[i]).Magnitude(); d < best {
				best = d
			}
		}
	}
	return best
}
