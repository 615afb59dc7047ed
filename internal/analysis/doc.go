// Package analysis extracts orbital quantities from recorded trajectories.
//
//   - [CrossingPeriod] and [AngularPeriod]: orbital period from the angle of a
//     body around a centre
//   - [SpectralPeriod]: dominant period of any sampled series
//   - [ReturnError]: how far a body ended from where it started
//   - [Summarize]: spread statistics for an energy or distance series
//   - [LyapunovExponent]: divergence rate of two nearby systems
//   - [TimestepSweep]: energy drift as a function of the timestep
//
// # Periods
//
// Positions are usually made relative to the central body first:
//
//	rel := analysis.RelativeTo(traj, earth, sun)
//	xs, ys := analysis.Components(rel)
//	period, err := analysis.CrossingPeriod(traj.Times, xs, ys)
package analysis
