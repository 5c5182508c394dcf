package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    map[string]float64
		wantErr bool
	}{
		{"empty", nil, map[string]float64{}, false},
		{"pairs", []string{"lorenz_rho=13", " rossler_c = 9.5"}, map[string]float64{"lorenz_rho": 13, "rossler_c": 9.5}, false},
		{"missing equals", []string{"lorenz_rho"}, nil, true},
		{"missing name", []string{"=3"}, nil, true},
		{"bad number", []string{"lorenz_rho=fast"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %g, want %g", k, got[k], v)
				}
			}
		})
	}
}

func newPatchCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addPatchFlags(cmd)
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadPatchLayers(t *testing.T) {
	preset = ""
	path := filepath.Join(t.TempDir(), "patch.yaml")
	body := "module: attractors\nsample_rate: 22050\nduration: 2\nparams:\n  lorenz_rho: 40\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newPatchCmd(t, "--time", "0.5", "--param", "rossler_c=8", "--out", "lorenz_x,lorenz_y")
	cfg, err := loadPatch(cmd, []string{path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SampleRate != 22050 {
		t.Errorf("sample rate = %g, want file value 22050", cfg.SampleRate)
	}
	if cfg.Duration != 0.5 {
		t.Errorf("duration = %g, want flag value 0.5", cfg.Duration)
	}
	if cfg.Params["lorenz_rho"] != 40 || cfg.Params["rossler_c"] != 8 {
		t.Errorf("params = %v", cfg.Params)
	}
	if len(cfg.Outputs) != 2 || cfg.Outputs[0] != "lorenz_x" {
		t.Errorf("outputs = %v", cfg.Outputs)
	}
}

func TestLoadPatchPreset(t *testing.T) {
	t.Cleanup(func() { preset = "" })

	cmd := newPatchCmd(t, "--preset", "edge")
	cfg, err := loadPatch(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("sample rate = %g, want preset value 48000", cfg.SampleRate)
	}

	cmd = newPatchCmd(t, "--preset", "nope")
	if _, err := loadPatch(cmd, nil); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestLoadPatchFileOverPreset(t *testing.T) {
	t.Cleanup(func() { preset = "" })
	path := filepath.Join(t.TempDir(), "patch.yaml")
	if err := os.WriteFile(path, []byte("params:\n  lorenz_rho: 28\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newPatchCmd(t, "--preset", "edge")
	cfg, err := loadPatch(cmd, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SampleRate != 48000 || cfg.Duration != 10 {
		t.Errorf("rate=%g duration=%g, want preset values", cfg.SampleRate, cfg.Duration)
	}
	if cfg.Params["lorenz_rho"] != 28 || cfg.Params["lorenz_sigma"] != 14 {
		t.Errorf("params = %v", cfg.Params)
	}
	if len(cfg.Outputs) != 2 || cfg.Outputs[1] != "lorenz_y" {
		t.Errorf("outputs = %v", cfg.Outputs)
	}
}

func TestLoadPatchRejectsBadRate(t *testing.T) {
	preset = ""
	cmd := newPatchCmd(t, "--rate", "0")
	if _, err := loadPatch(cmd, nil); err == nil {
		t.Error("expected invalid config error")
	}
}
