package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/spf13/cobra"
)

// loadPatch layers the patch: defaults, then a preset, then a yaml file,
// then any flag given on the command line.
func loadPatch(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Module = moduleName

	if preset != "" {
		p := config.GetPreset(moduleName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(moduleName))
		}
		cfg = p
	}

	if len(args) > 0 {
		loaded, err := config.LoadOver(args[0], cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load patch: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("module") {
		cfg.Module = moduleName
	}
	if flags.Changed("rate") {
		cfg.SampleRate = sampleRate
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("decimate") {
		cfg.Decimate = decimate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("out") {
		cfg.Outputs = slices.Clone(outputs)
	}

	params, err := parseAssignments(paramArgs)
	if err != nil {
		return nil, err
	}
	cv, err := parseAssignments(cvArgs)
	if err != nil {
		return nil, err
	}
	cfg.Params = merge(cfg.Params, params)
	cfg.CV = merge(cfg.CV, cv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseAssignments reads name=value pairs.
func parseAssignments(list []string) (map[string]float64, error) {
	out := make(map[string]float64, len(list))
	for _, kv := range list {
		name, raw, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value for %s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func merge(dst, src map[string]float64) map[string]float64 {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]float64, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// openRun resolves the run named in args, or the latest run.
func openRun(args []string) (*storage.Store, string, error) {
	st := storage.New(dataDir)
	if len(args) > 0 {
		return st, args[0], nil
	}
	runID, err := st.Latest()
	if err != nil {
		return nil, "", err
	}
	return st, runID, nil
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}
