package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/sim"
)

var _ sim.Observer = (*Recorder)(nil)

func recordPreset(t *testing.T, preset string, steps, every int) (*sim.System, *Recorder) {
	t.Helper()
	s, err := sim.FromConfig(config.GetPreset(preset))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(every, s.Bodies(), s.Elapsed())
	if _, err := s.Run(context.Background(), steps, sim.WithObservers(rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Err() != nil {
		t.Fatal(rec.Err())
	}
	return s, rec
}

func TestRecorder(t *testing.T) {
	s, rec := recordPreset(t, "earth-sun", 48, 24)
	traj := rec.Trajectory()

	if traj.Len() != 3 {
		t.Fatalf("expected 3 samples (t=0 plus two), got %d", traj.Len())
	}
	if traj.Times[0] != 0 || traj.Times[2] != 48*3600 {
		t.Errorf("unexpected sample times: %v", traj.Times)
	}
	if traj.Names[1] != "Earth" || traj.Kinds[0] != body.Star {
		t.Errorf("names/kinds not captured: %v %v", traj.Names, traj.Kinds)
	}
	if traj.Positions[2][1] != s.Bodies()[1].Position {
		t.Error("last sample should match final state")
	}
	if got := traj.Index("Earth"); got != 1 {
		t.Errorf("Index(Earth) = %d", got)
	}
	if got := traj.Index("Pluto"); got != -1 {
		t.Errorf("Index(Pluto) = %d", got)
	}
	if path := traj.Path(1); len(path) != 3 || path[0] != traj.Positions[0][1] {
		t.Errorf("Path(1) wrong: %v", path)
	}
}

func TestRecorder_BodyCountMismatch(t *testing.T) {
	s, err := sim.FromConfig(config.GetPreset("earth-sun"))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(0, s.Bodies(), 0)
	if rec.Every != 1 {
		t.Errorf("every should be coerced to 1, got %d", rec.Every)
	}
	rec.OnStep(s.Bodies()[:1], 3600)
	if rec.Err() == nil {
		t.Error("expected error for mismatched sample")
	}
}

func TestStoreSave_SingleBody(t *testing.T) {
	cfg := config.GetPreset("earth-sun")
	cfg.Name = "solo"
	cfg.Bodies = cfg.Bodies[:1]
	s, err := sim.FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(1, s.Bodies(), 0)
	res, err := s.Run(context.Background(), 5,
		sim.WithMetrics(metrics.NewMinSeparation(), metrics.NewEnergyDrift()),
		sim.WithObservers(rec))
	if err != nil {
		t.Fatal(err)
	}

	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Name: cfg.Name, EnergyDrift: res.EnergyDrift, Metrics: res.Metrics}, rec.Trajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := meta.Metrics["min_separation"]; ok {
		t.Error("infinite closest approach should not be stored")
	}
	if _, ok := meta.Metrics["energy_drift"]; !ok {
		t.Error("finite metrics should be kept")
	}
	if _, ok := res.Metrics["min_separation"]; !ok {
		t.Error("caller's metrics map was modified")
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected one listed run, got %d (%v)", len(runs), err)
	}
}

func TestStoreSave_NonFiniteDriftLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	_, rec := recordPreset(t, "earth-sun", 2, 1)

	if _, err := st.Save(RunMetadata{Name: "bad", EnergyDrift: math.NaN()}, rec.Trajectory()); err == nil {
		t.Fatal("expected error for NaN energy drift")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d entries behind", len(entries))
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	s, rec := recordPreset(t, "inner", 10, 5)
	meta := RunMetadata{
		Name:       "inner",
		Integrator: "rk4",
		Substeps:   4,
		Timestep:   s.Timestep(),
		Steps:      10,
		Bodies:     BodyInfos(s.Bodies()),
		Metrics:    map[string]float64{"energy_drift": 1.5e-12},
	}

	runID, err := st.Save(meta, rec.Trajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "inner_") {
		t.Errorf("unexpected run id %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID || loaded.Timestamp.IsZero() {
		t.Errorf("id/timestamp not filled: %+v", loaded)
	}
	if loaded.Metrics["energy_drift"] != 1.5e-12 || len(loaded.Bodies) != 5 {
		t.Errorf("metadata not preserved: %+v", loaded)
	}
	if loaded.Bodies[0].Name != "Sun" || loaded.Bodies[0].Color != "#ffff00" {
		t.Errorf("sun info wrong: %+v", loaded.Bodies[0])
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	orig := rec.Trajectory()
	if traj.Len() != orig.Len() {
		t.Fatalf("expected %d samples, got %d", orig.Len(), traj.Len())
	}
	for k := range orig.Times {
		for i := range orig.Names {
			if traj.Positions[k][i] != orig.Positions[k][i] || traj.Velocities[k][i] != orig.Velocities[k][i] {
				t.Fatalf("sample %d body %d not reproduced exactly", k, i)
			}
		}
	}
	if traj.Kinds[0] != body.Star || traj.Kinds[1] != body.Planet {
		t.Errorf("kinds not restored: %v", traj.Kinds)
	}
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	_, rec := recordPreset(t, "earth-sun", 1, 1)
	first, err := st.Save(RunMetadata{Name: "a"}, rec.Trajectory())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(RunMetadata{Name: "b"}, rec.Trajectory())
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Mkdir(filepath.Join(st.Dir(), "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first || runs[1].ID != second {
		t.Errorf("unexpected runs: %+v", runs)
	}
	if latest, _ := st.Latest(); latest != second {
		t.Errorf("latest = %s, want %s", latest, second)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	_, rec := recordPreset(t, "earth-sun", 1, 1)

	runID, err := st.Save(RunMetadata{}, rec.Trajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("unnamed runs should use run_ prefix, got %s", runID)
	}

	for _, name := range []string{"metadata.json", "trajectory.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	_, rec := recordPreset(t, "earth-sun", 2, 1)
	var buf bytes.Buffer
	if err := ExportCSV(&buf, rec.Trajectory()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	want := "time,Sun_x,Sun_y,Sun_z,Sun_vx,Sun_vy,Sun_vz,Earth_x,Earth_y,Earth_z,Earth_vx,Earth_vy,Earth_vz"
	if lines[0] != want {
		t.Errorf("header = %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,0,0,0,0,0,0,1.496e+11,0,0,0,29780,0") {
		t.Errorf("first row = %s", lines[1])
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no time column", "t,A_x,A_y,A_z,A_vx,A_vy,A_vz\n"},
		{"partial body", "time,A_x,A_y\n"},
		{"bad column", "time,A_y,A_x,A_z,A_vx,A_vy,A_vz\n"},
		{"bad number", "time,A_x,A_y,A_z,A_vx,A_vy,A_vz\n0,1,2,three,4,5,6\n"},
		{"short row", "time,A_x,A_y,A_z,A_vx,A_vy,A_vz\n0,1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportJSON(t *testing.T) {
	_, rec := recordPreset(t, "earth-sun", 2, 1)
	meta := &RunMetadata{ID: "x", Name: "earth-sun"}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, rec.Trajectory()); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run == nil || data.Run.ID != "x" {
		t.Errorf("run metadata missing: %+v", data.Run)
	}
	if len(data.Bodies) != 2 || data.Bodies[1].Name != "Earth" || data.Bodies[1].Kind != "planet" {
		t.Fatalf("bodies wrong: %+v", data.Bodies)
	}
	if len(data.Bodies[1].Positions) != 3 || data.Bodies[1].Positions[0] != [3]float64{149.6e9, 0, 0} {
		t.Errorf("earth positions wrong: %v", data.Bodies[1].Positions)
	}
}
