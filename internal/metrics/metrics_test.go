package metrics

import (
	"math"
	"testing"
)

func feed(m interface{ Observe(float64, []float64) }, rate float64, xs []float64) {
	for i, x := range xs {
		m.Observe(float64(i)/rate, []float64{0, x})
	}
}

func TestSignalMetrics(t *testing.T) {
	square := []float64{1, 1, -1, -1, 1, 1, -1, -1, 1}

	tests := []struct {
		name string
		m    interface {
			Observe(float64, []float64)
			Value() float64
			Reset()
		}
		want float64
	}{
		{"peak", NewPeak("o", 1), 1},
		{"rms", NewRMS("o", 1), 1},
		{"mean", NewMean("o", 1), 1.0 / 9},
		// four crossings over 8 samples at 8 Hz
		{"zcr", NewZeroCrossingRate("o", 1), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed(tt.m, 8, square)
			if got := tt.m.Value(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			tt.m.Reset()
			if got := tt.m.Value(); got != 0 {
				t.Errorf("after reset got %v", got)
			}
		})
	}
}

func TestStability(t *testing.T) {
	s := NewStability(5)
	if s.Value() != 1 {
		t.Errorf("empty stability = %v, want 1", s.Value())
	}
	s.Observe(0, []float64{1, 2})
	s.Observe(0, []float64{1, 6})
	s.Observe(0, []float64{math.NaN(), 0})
	s.Observe(0, []float64{-4.9, 0})
	if got := s.Value(); got != 0.5 {
		t.Errorf("stability = %v, want 0.5", got)
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults([]string{"lorenz_x", "rossler_y"})
	if len(ms) != 9 {
		t.Fatalf("got %d metrics, want 9", len(ms))
	}
	want := map[string]bool{
		"lorenz_x.peak": true, "lorenz_x.rms": true, "lorenz_x.mean": true, "lorenz_x.zcr": true,
		"rossler_y.peak": true, "rossler_y.rms": true, "rossler_y.mean": true, "rossler_y.zcr": true,
		"stability": true,
	}
	for _, m := range ms {
		if !want[m.Name()] {
			t.Errorf("unexpected metric %s", m.Name())
		}
	}
}
