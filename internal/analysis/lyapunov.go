package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/sim"
)

// renormalizeAt is the separation, as a multiple of the initial
// perturbation, beyond which the shadow system is pulled back.
const renormalizeAt = 1e3

// LyapunovExponent estimates the largest Lyapunov exponent, in 1/s, of the
// system described by cfg. A shadow copy has body displaced by perturbation
// metres along x and both are stepped together. Whenever their
// position-space separation d_k passes renormalizeAt·d0 the growth ln(d_k/d0)
// is banked and the shadow is pulled back to distance d0 along the same
// direction. The growth since the last pull-back is banked at the end.
//
//	λ ≈ (1/t) Σ ln(d_k / d0)
func LyapunovExponent(ctx context.Context, cfg *config.Config, bodyID int, perturbation float64, steps int) (float64, error) {
	if perturbation <= 0 {
		return 0, fmt.Errorf("perturbation must be positive, got %g", perturbation)
	}
	if bodyID < 0 || bodyID >= len(cfg.Bodies) {
		return 0, fmt.Errorf("%w: id %d", sim.ErrNoSuchBody, bodyID)
	}

	shadowCfg := cfg.Clone()
	shadowCfg.Bodies[bodyID].Position[0] += perturbation

	ref, err := sim.FromConfig(cfg)
	if err != nil {
		return 0, err
	}
	shadow, err := sim.FromConfig(shadowCfg)
	if err != nil {
		return 0, err
	}

	d0 := perturbation
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ref.Update()
		shadow.Update()

		a, b := ref.Bodies(), shadow.Bodies()
		sep := separation(a, b)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("separation diverged after step %d", i+1)
		}

		if sep > renormalizeAt*d0 {
			sumLog += math.Log(sep / d0)
			scale := d0 / sep
			for j := range b {
				pos := a[j].Position.Add(b[j].Position.Sub(a[j].Position).Scale(scale))
				vel := a[j].Velocity.Add(b[j].Velocity.Sub(a[j].Velocity).Scale(scale))
				if err := shadow.SetBodyState(j, pos, vel); err != nil {
					return 0, err
				}
			}
		}
	}

	elapsed := ref.Elapsed()
	if steps <= 0 || elapsed == 0 {
		return 0, nil
	}
	if sep := separation(ref.Bodies(), shadow.Bodies()); sep > 0 {
		sumLog += math.Log(sep / d0)
	}
	return sumLog / elapsed, nil
}

func separation(a, b []body.CelestialBody) float64 {
	sum := 0.0
	for i := range a {
		sum += b[i].Position.Sub(a[i].Position).MagnitudeSquared()
	}
	return math.Sqrt(sum)
}
