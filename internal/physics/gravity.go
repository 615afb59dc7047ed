package physics

import "github.com/san-kum/orrery/internal/geometry"

// G is the Newtonian gravitational constant in N·m²/kg².
const G = 6.6743e-11

// Force returns the gravitational pull on body a exerted by body b, where
// separation is position_b - position_a. The result points from a toward b
// with magnitude G*massA*massB/|separation|².
//
// A zero separation has no direction and produces a non-finite vector. The
// pairwise loops below skip the self pair; two distinct bodies at the same
// point are left unguarded.
func Force(massA, massB float64, separation geometry.Vector3) geometry.Vector3 {
	magnitude := G * massA * massB / separation.MagnitudeSquared()
	return separation.Normalize().Scale(magnitude)
}

// Acceleration converts a force acting on a body of the given mass.
func Acceleration(force geometry.Vector3, mass float64) geometry.Vector3 {
	return force.Scale(1 / mass)
}

// NetForces returns the summed pairwise force on every body. For body i the
// terms are added in ascending j order, skipping j == i.
func NetForces(s *State) []geometry.Vector3 {
	n := s.Len()
	forces := make([]geometry.Vector3, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			f := Force(s.Masses[i], s.Masses[j], s.Positions[j].Sub(s.Positions[i]))
			forces[i] = forces[i].Add(f)
		}
	}
	return forces
}

// NetAccelerations writes the gravitational acceleration of every body into
// dst, allocating it when its length does not match, and returns it. Each
// pairwise force is converted to an acceleration before it is accumulated.
func NetAccelerations(s *State, dst []geometry.Vector3) []geometry.Vector3 {
	n := s.Len()
	if len(dst) != n {
		dst = make([]geometry.Vector3, n)
	}
	for i := 0; i < n; i++ {
		acc := geometry.Zero
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			f := Force(s.Masses[i], s.Masses[j], s.Positions[j].Sub(s.Positions[i]))
			acc = acc.Add(Acceleration(f, s.Masses[i]))
		}
		dst[i] = acc
	}
	return dst
}

// Derive evaluates the state derivative: a copy of the current velocities and
// the net accelerations at the current positions.
func Derive(s *State) Derivative {
	vel := make([]geometry.Vector3, s.Len())
	copy(vel, s.Velocities)
	return Derivative{
		Velocities:    vel,
		Accelerations: NetAccelerations(s, nil),
	}
}
