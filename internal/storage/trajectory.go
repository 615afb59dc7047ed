package storage

import (
	"fmt"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geometry"
)

// Trajectory is a sampled history of every body. Positions[k][i] is body i at
// Times[k].
type Trajectory struct {
	Names      []string
	Kinds      []body.Kind
	Times      []float64
	Positions  [][]geometry.Vector3
	Velocities [][]geometry.Vector3
}

func (t *Trajectory) Len() int { return len(t.Times) }

// Index returns the column of the named body, or -1.
func (t *Trajectory) Index(name string) int {
	for i, n := range t.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Path returns the positions of body i across all samples.
func (t *Trajectory) Path(i int) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(t.Positions))
	for k, row := range t.Positions {
		out[k] = row[i]
	}
	return out
}

func (t *Trajectory) append(bodies []body.CelestialBody, at float64) error {
	if len(bodies) != len(t.Names) {
		return fmt.Errorf("sample at t=%g has %d bodies, trajectory has %d", at, len(bodies), len(t.Names))
	}
	pos := make([]geometry.Vector3, len(bodies))
	vel := make([]geometry.Vector3, len(bodies))
	for i, b := range bodies {
		pos[i] = b.Position
		vel[i] = b.Velocity
	}
	t.Times = append(t.Times, at)
	t.Positions = append(t.Positions, pos)
	t.Velocities = append(t.Velocities, vel)
	return nil
}

// Recorder samples the body list every Every ticks. It satisfies
// sim.Observer.
type Recorder struct {
	Every int
	traj  *Trajectory
	ticks int
	err   error
}

// NewRecorder records bodies at start as the first sample. every <= 0 is
// treated as 1.
func NewRecorder(every int, bodies []body.CelestialBody, start float64) *Recorder {
	if every < 1 {
		every = 1
	}
	traj := &Trajectory{
		Names: make([]string, len(bodies)),
		Kinds: make([]body.Kind, len(bodies)),
	}
	for i, b := range bodies {
		traj.Names[i] = b.Name
		traj.Kinds[i] = b.Kind
	}
	r := &Recorder{Every: every, traj: traj}
	r.err = traj.append(bodies, start)
	return r
}

func (r *Recorder) OnStep(bodies []body.CelestialBody, t float64) {
	r.ticks++
	if r.err != nil || r.ticks%r.Every != 0 {
		return
	}
	r.err = r.traj.append(bodies, t)
}

func (r *Recorder) Trajectory() *Trajectory { return r.traj }

// Err reports the first sample that did not match the recorded body list.
func (r *Recorder) Err() error { return r.err }
