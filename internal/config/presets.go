package config

import "sort"

var allAttractorOutputs = []string{"lorenz_x", "lorenz_y", "rossler_x", "rossler_y"}

var Presets = map[string]map[string]*Config{
	"attractors": {
		"classic": {
			Module: "attractors", SampleRate: 44100, Duration: 5, Decimate: 1,
			Outputs: allAttractorOutputs,
		},
		"slow_drift": {
			Module: "attractors", SampleRate: 44100, Duration: 20, Decimate: 4,
			Params:  map[string]float64{"lorenz_pitch": 0.01, "rossler_pitch": 0.01},
			Outputs: allAttractorOutputs,
		},
		"edge": {
			Module: "attractors", SampleRate: 48000, Duration: 10, Decimate: 1,
			Params:  map[string]float64{"lorenz_sigma": 14, "lorenz_rho": 24.06, "lorenz_pitch": 0.2},
			Outputs: []string{"lorenz_x", "lorenz_y"},
		},
		"spiral": {
			Module: "attractors", SampleRate: 44100, Duration: 5, Decimate: 1,
			Params:  map[string]float64{"rossler_a": 0.1, "rossler_b": 0.1, "rossler_c": 4},
			Outputs: []string{"rossler_x", "rossler_y"},
		},
		"funnel": {
			Module: "attractors", SampleRate: 96000, Duration: 5, Decimate: 2,
			Params:  map[string]float64{"rossler_a": 0.2, "rossler_b": 0.2, "rossler_c": 9, "rossler_pitch": 0.25},
			Outputs: []string{"rossler_x", "rossler_y"},
		},
	},
	"noise": {
		"white": {
			Module: "noise", SampleRate: 44100, Duration: 2, Decimate: 1, Seed: 1,
			Outputs: []string{"white"},
		},
		"colors": {
			Module: "noise", SampleRate: 44100, Duration: 2, Decimate: 1, Seed: 1,
			Params:  map[string]float64{"quanta": 0.1},
			Outputs: []string{"white", "pink", "red", "grey", "blue", "purple", "quanta"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(module, preset string) *Config {
	modulePresets, ok := Presets[module]
	if !ok {
		return nil
	}
	cfg, ok := modulePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(module string) []string {
	modulePresets, ok := Presets[module]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modulePresets))
	for name := range modulePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
