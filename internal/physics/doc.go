// Package physics holds the numerical core shared by every integrator: the
// [State] snapshot and the Newtonian force model.
//
// A [State] stores bodies as parallel sequences (structure of arrays):
//
//   - Positions: metres
//   - Velocities: metres per second
//   - Masses: kilograms, always positive
//
// [NetForces] and [NetAccelerations] perform the O(n²) pairwise summation.
// The summation order is fixed (ascending partner index), so repeated runs
// from identical inputs produce bit-identical results.
//
// # Conservation
//
// [TotalEnergy], [Momentum] and [AngularMomentum] are conserved by the exact
// dynamics and are the usual yardsticks for integrator drift:
//
//	e0 := physics.TotalEnergy(s)
//	integ.Step(s, dt)
//	drift := math.Abs(physics.TotalEnergy(s)-e0) / math.Abs(e0)
package physics
