package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/body"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type BodyInfo struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Mass     float64 `json:"mass"`
	RadiusKm float64 `json:"radius_km"`
	Color    string  `json:"color,omitempty"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Integrator  string             `json:"integrator"`
	Substeps    int                `json:"substeps,omitempty"`
	Timestep    float64            `json:"timestep"`
	Steps       int                `json:"steps"`
	Elapsed     float64            `json:"elapsed"`
	RecordEvery int                `json:"record_every"`
	EnergyDrift float64            `json:"energy_drift"`
	Bodies      []BodyInfo         `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BodyInfos summarises the bodies of a run for its metadata.
func BodyInfos(bodies []body.CelestialBody) []BodyInfo {
	out := make([]BodyInfo, len(bodies))
	for i, b := range bodies {
		out[i] = BodyInfo{Name: b.Name, Kind: b.Kind.String(), Mass: b.Mass, RadiusKm: b.Radius, Color: b.Color.Hex()}
	}
	return out
}

// Save writes meta and traj under a new run directory and returns its id.
// ID and Timestamp are filled in. Metrics that are not finite, such as the
// closest approach of a single body, are left out. Nothing is left on disk
// when a write fails.
func (s *Store) Save(meta RunMetadata, traj *Trajectory) (runID string, err error) {
	if !isFinite(meta.EnergyDrift) {
		return "", fmt.Errorf("energy drift is %g", meta.EnergyDrift)
	}

	now := time.Now()
	name := meta.Name
	if name == "" {
		name = "run"
	}
	runID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics = finiteMetrics(meta.Metrics)
	if err := writeJSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	if err := ExportCSV(csvFile, traj); err != nil {
		csvFile.Close()
		return "", fmt.Errorf("write trajectory: %w", err)
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}
	return runID, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if isFinite(v) {
			out[k] = v
		}
	}
	return out
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metadataFile, err)
	}
	return &meta, nil
}

// LoadTrajectory reads a run's trajectory. Kinds come from the metadata.
func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	traj, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	traj.Kinds = make([]body.Kind, len(traj.Names))
	for i, name := range traj.Names {
		for _, info := range meta.Bodies {
			if info.Name != name {
				continue
			}
			if k, err := body.ParseKind(info.Kind); err == nil {
				traj.Kinds[i] = k
			}
			break
		}
	}
	return traj, nil
}

func csvHeader(names []string) []string {
	header := []string{"time"}
	for _, n := range names {
		for _, suffix := range columnSuffixes {
			header = append(header, n+suffix)
		}
	}
	return header
}

var columnSuffixes = []string{"_x", "_y", "_z", "_vx", "_vy", "_vz"}

func namesFromHeader(header []string) ([]string, error) {
	if len(header) == 0 || header[0] != "time" {
		return nil, errors.New("trajectory header must start with time")
	}
	cols := header[1:]
	if len(cols)%len(columnSuffixes) != 0 {
		return nil, fmt.Errorf("trajectory header has %d body columns", len(cols))
	}
	names := make([]string, 0, len(cols)/len(columnSuffixes))
	for i := 0; i < len(cols); i += len(columnSuffixes) {
		name, ok := strings.CutSuffix(cols[i], "_x")
		if !ok {
			return nil, fmt.Errorf("unexpected column %q", cols[i])
		}
		names = append(names, name)
	}
	return names, nil
}
