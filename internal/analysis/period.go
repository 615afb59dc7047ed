package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/storage"
)

var ErrInsufficientData = errors.New("insufficient data")

// RelativeTo returns the position of body minus the position of centre for
// every sample.
func RelativeTo(traj *storage.Trajectory, body, centre int) []geometry.Vector3 {
	out := make([]geometry.Vector3, traj.Len())
	for k, row := range traj.Positions {
		out[k] = row[body].Sub(row[centre])
	}
	return out
}

// Components splits a path into its x and y series.
func Components(path []geometry.Vector3) (xs, ys []float64) {
	xs = make([]float64, len(path))
	ys = make([]float64, len(path))
	for i, p := range path {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// CrossingTimes returns the interpolated times at which the point (x, y)
// crosses the positive x axis going from y < 0 to y >= 0.
func CrossingTimes(times, xs, ys []float64) []float64 {
	var crossings []float64
	for i := 1; i < len(times) && i < len(xs) && i < len(ys); i++ {
		y0, y1 := ys[i-1], ys[i]
		if !(y0 < 0 && y1 >= 0) {
			continue
		}
		frac := -y0 / (y1 - y0)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		x := xs[i-1] + frac*(xs[i]-xs[i-1])
		if x <= 0 {
			continue
		}
		crossings = append(crossings, times[i-1]+frac*(times[i]-times[i-1]))
	}
	return crossings
}

// CrossingPeriod is the mean interval between successive crossings of the
// positive x axis. At least two crossings are needed.
func CrossingPeriod(times, xs, ys []float64) (float64, error) {
	c := CrossingTimes(times, xs, ys)
	if len(c) < 2 {
		return 0, fmt.Errorf("%w: %d axis crossings", ErrInsufficientData, len(c))
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1), nil
}

// AngularPeriod estimates the period from the mean angular rate over the
// whole series, so it works for partial orbits. Consecutive samples must be
// less than half a turn apart.
func AngularPeriod(times, xs, ys []float64) (float64, error) {
	n := min(len(times), len(xs), len(ys))
	if n < 2 {
		return 0, fmt.Errorf("%w: %d samples", ErrInsufficientData, n)
	}

	swept := 0.0
	prev := math.Atan2(ys[0], xs[0])
	for i := 1; i < n; i++ {
		a := math.Atan2(ys[i], xs[i])
		d := a - prev
		if d > math.Pi {
			d -= 2 * math.Pi
		} else if d < -math.Pi {
			d += 2 * math.Pi
		}
		swept += d
		prev = a
	}

	if swept == 0 {
		return 0, fmt.Errorf("%w: no angular motion", ErrInsufficientData)
	}
	return 2 * math.Pi * (times[n-1] - times[0]) / math.Abs(swept), nil
}

// ReturnError is |p_end - p_0| / |p_0| for body i.
func ReturnError(traj *storage.Trajectory, i int) (float64, error) {
	if traj.Len() < 2 {
		return 0, fmt.Errorf("%w: %d samples", ErrInsufficientData, traj.Len())
	}
	p0 := traj.Positions[0][i]
	p1 := traj.Positions[traj.Len()-1][i]
	if p0.Magnitude() == 0 {
		return 0, fmt.Errorf("body %d starts at the origin", i)
	}
	return p1.Sub(p0).Magnitude() / p0.Magnitude(), nil
}
