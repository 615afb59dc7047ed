package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
)

func parsed(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	configFile = ""
	cmd := &cobra.Command{Use: "test"}
	addSystemFlags(cmd)
	cmd.Flags().IntVar(&recordEvery, "every", config.DefaultRecordEvery, "")
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadConfigPreset(t *testing.T) {
	cfg, err := loadConfig(parsed(t), []string{"earth-sun"})
	if err != nil {
		t.Fatal(err)
	}
	want := config.GetPreset("earth-sun")
	if cfg.Timestep != want.Timestep || cfg.Steps != want.Steps || len(cfg.Bodies) != 2 {
		t.Errorf("preset values not kept: %+v", cfg)
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig(parsed(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "standard" || len(cfg.Bodies) != 9 {
		t.Errorf("expected standard system, got %s with %d bodies", cfg.Name, len(cfg.Bodies))
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	cmd := parsed(t, "--dt", "60", "--integrator", "euler", "--every", "7")
	cfg, err := loadConfig(cmd, []string{"inner"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timestep != 60 || cfg.Integrator != "euler" || cfg.RecordEvery != 7 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Steps != config.GetPreset("inner").Steps {
		t.Errorf("unchanged flag overrode steps: %d", cfg.Steps)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sys.yaml")
	c := config.GetPreset("binary-star")
	c.Steps = 42
	if err := config.Save(path, c); err != nil {
		t.Fatal(err)
	}

	cmd := parsed(t, "--config", path)
	cfg, err := loadConfig(cmd, []string{"earth-sun"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "binary-star" || cfg.Steps != 42 {
		t.Errorf("config file should win over preset: %s, %d steps", cfg.Name, cfg.Steps)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(parsed(t), []string{"no-such-preset"}); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := loadConfig(parsed(t, "--integrator", "leapfrog"), nil); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := loadConfig(parsed(t, "--config", "/does/not/exist.yaml"), nil); err == nil {
		t.Error("expected error for missing config file")
	}
}
