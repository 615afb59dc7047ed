package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/orrery/internal/geometry"
)

type ExportData struct {
	Run    *RunMetadata `json:"run,omitempty"`
	Bodies []ExportBody `json:"bodies"`
	Times  []float64    `json:"times"`
}

type ExportBody struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Positions  [][3]float64 `json:"positions"`
	Velocities [][3]float64 `json:"velocities"`
}

func toArray(v geometry.Vector3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// ExportJSON writes the trajectory grouped per body. meta may be nil.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *Trajectory) error {
	data := ExportData{
		Run:    meta,
		Bodies: make([]ExportBody, len(traj.Names)),
		Times:  traj.Times,
	}

	for i, name := range traj.Names {
		eb := ExportBody{
			Name:       name,
			Positions:  make([][3]float64, traj.Len()),
			Velocities: make([][3]float64, traj.Len()),
		}
		if i < len(traj.Kinds) {
			eb.Kind = traj.Kinds[i].String()
		}
		for k := range traj.Times {
			eb.Positions[k] = toArray(traj.Positions[k][i])
			eb.Velocities[k] = toArray(traj.Velocities[k][i])
		}
		data.Bodies[i] = eb
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// ExportCSV writes one row per sample: time followed by position and velocity
// components for each body.
func ExportCSV(w io.Writer, traj *Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(traj.Names)); err != nil {
		return err
	}

	row := make([]string, 0, 1+len(traj.Names)*len(columnSuffixes))
	for k, t := range traj.Times {
		row = append(row[:0], formatFloat(t))
		for i := range traj.Names {
			p, v := traj.Positions[k][i], traj.Velocities[k][i]
			row = append(row,
				formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
				formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the format written by ExportCSV. Kinds are left empty.
func ReadCSV(r io.Reader) (*Trajectory, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	names, err := namesFromHeader(header)
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{Names: names}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, header[j], err)
			}
		}

		pos := make([]geometry.Vector3, len(names))
		vel := make([]geometry.Vector3, len(names))
		for i := range names {
			c := vals[1+i*len(columnSuffixes):]
			pos[i] = geometry.New(c[0], c[1], c[2])
			vel[i] = geometry.New(c[3], c[4], c[5])
		}
		traj.Times = append(traj.Times, vals[0])
		traj.Positions = append(traj.Positions, pos)
		traj.Velocities = append(traj.Velocities, vel)
	}
	return traj, nil
}
