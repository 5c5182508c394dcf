package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/rack"
)

// ramp emits the frame index on its single output, or NaN from frame nanAt on.
type ramp struct {
	out   []*rack.Port
	nanAt int64
}

func newRamp(nanAt int64) *ramp {
	r := &ramp{out: []*rack.Port{rack.NewPort("out")}, nanAt: nanAt}
	r.out[0].Connect(true)
	return r
}

func (r *ramp) Name() string          { return "ramp" }
func (r *ramp) Params() []*rack.Param { return nil }
func (r *ramp) Inputs() []*rack.Port  { return nil }
func (r *ramp) Outputs() []*rack.Port { return r.out }

func (r *ramp) Process(args rack.ProcessArgs) {
	if r.nanAt >= 0 && args.Frame >= r.nanAt {
		r.out[0].SetVoltage(math.NaN())
		return
	}
	r.out[0].SetVoltage(float64(args.Frame))
}

type sum struct{ total float64 }

func (s *sum) Name() string                   { return "sum" }
func (s *sum) Observe(t float64, v []float64) { s.total += v[0] }
func (s *sum) Value() float64                 { return s.total }
func (s *sum) Reset()                         { s.total = 0 }

func TestRunFrameCount(t *testing.T) {
	e := New(newRamp(-1))
	cfg := Config{SampleRate: 100, Duration: 0.5, Decimate: 1}

	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.StepsTaken != 50 || len(res.Frames) != 50 {
		t.Fatalf("steps=%d frames=%d, want 50", res.StepsTaken, len(res.Frames))
	}
	if res.Times[10] != 0.1 || res.Frames[10][0] != 10 {
		t.Errorf("frame 10 = (%v, %v)", res.Times[10], res.Frames[10][0])
	}
}

func TestRunDecimate(t *testing.T) {
	e := New(newRamp(-1))
	e.AddMetric(&sum{})
	cfg := Config{SampleRate: 100, Duration: 1, Decimate: 8}

	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Frames) != 13 {
		t.Errorf("recorded %d frames, want 13", len(res.Frames))
	}
	if res.Frames[1][0] != 8 {
		t.Errorf("second record = %v, want 8", res.Frames[1][0])
	}
	// metrics see every frame, not only recorded ones
	if res.Metrics["sum"] != 4950 {
		t.Errorf("sum = %v, want 4950", res.Metrics["sum"])
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero rate", Config{SampleRate: 0, Duration: 1, Decimate: 1}},
		{"negative duration", Config{SampleRate: 44100, Duration: -1, Decimate: 1}},
		{"zero decimate", Config{SampleRate: 44100, Duration: 1, Decimate: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newRamp(-1)).Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRunStopsOnNaN(t *testing.T) {
	cfg := Config{SampleRate: 100, Duration: 1, Decimate: 1, ValidateOutputs: true}
	res, err := New(newRamp(20)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.StepsTaken != 20 || len(res.Errors) != 1 {
		t.Fatalf("steps=%d errors=%v", res.StepsTaken, res.Errors)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(res.Errors[0], &simErr) || simErr.Step != 20 {
		t.Errorf("error = %v", res.Errors[0])
	}
	if !errors.Is(res.Errors[0], dynamo.ErrInvalidState) {
		t.Error("error does not wrap ErrInvalidState")
	}

	cfg.ValidateOutputs = false
	res, _ = New(newRamp(20)).Run(context.Background(), cfg)
	if res.StepsTaken != 100 {
		t.Errorf("unvalidated run stopped after %d steps", res.StepsTaken)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(newRamp(-1)).Run(ctx, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunAttractorsMatchesAdvance(t *testing.T) {
	m := rack.NewStrangeAttractors()
	if err := rack.ConnectOutputs(m, []string{"lorenz_x"}); err != nil {
		t.Fatal(err)
	}
	cfg := Config{SampleRate: 48000, Duration: 0.01, Decimate: 1, ValidateOutputs: true}
	res, err := New(m).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	ref := physics.NewLorenz()
	ch, err := res.Channel("lorenz_x")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range ch {
		ref.Advance(1.0 / 48000)
		if want := rack.LorenzXScale * ref.State.X; v != want {
			t.Fatalf("frame %d = %v, want %v", i, v, want)
		}
	}
	if _, err := res.Channel("rossler_x"); !errors.Is(err, rack.ErrUnknownPort) {
		t.Errorf("unrecorded channel err = %v", err)
	}
}

type knobAt struct {
	at   float64
	done bool
}

func (k *knobAt) Apply(m rack.Module, t float64) error {
	if k.done || t < k.at {
		return nil
	}
	k.done = true
	p, err := rack.FindParam(m, "lorenz_pitch")
	if err != nil {
		return err
	}
	p.SetValue(0.001)
	return nil
}

func TestRunAutomation(t *testing.T) {
	m := rack.NewStrangeAttractors()
	_ = rack.ConnectOutputs(m, []string{"lorenz_x"})
	e := New(m)
	e.SetAutomation(&knobAt{at: 0.005})

	cfg := Config{SampleRate: 1000, Duration: 0.01, Decimate: 1}
	if _, err := e.Run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if got := m.Lorenz().Pitch; got != 0.001 {
		t.Errorf("pitch = %v, want 0.001", got)
	}
}

func TestRecordExplicitOutputs(t *testing.T) {
	m := rack.NewStrangeAttractors()
	cfg := Config{SampleRate: 1000, Duration: 0.01, Decimate: 1, Record: []string{"rossler_y"}}
	res, err := New(m).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	// recorded but unplugged, so the attractor never moves and the port stays at 0
	for _, f := range res.Frames {
		if f[0] != 0 {
			t.Fatalf("unplugged output = %v", f[0])
		}
	}

	cfg.Record = []string{"rossler_z"}
	if _, err := New(m).Run(context.Background(), cfg); !errors.Is(err, rack.ErrUnknownPort) {
		t.Errorf("err = %v, want ErrUnknownPort", err)
	}
}

func TestEnsemble(t *testing.T) {
	en := &Ensemble{
		Runs: 4,
		Build: func(i int) (*Engine, error) {
			m := rack.NewNoise(int64(i + 1))
			if err := rack.ConnectOutputs(m, []string{"white"}); err != nil {
				return nil, err
			}
			return New(m), nil
		},
	}
	results, err := en.Run(context.Background(), Config{SampleRate: 1000, Duration: 0.1, Decimate: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Frames[0][0] == results[1].Frames[0][0] {
		t.Error("different seeds produced the same first sample")
	}
}

func BenchmarkRunAttractors(b *testing.B) {
	cfg := Config{SampleRate: 48000, Duration: 1, Decimate: 1}
	for i := 0; i < b.N; i++ {
		m := rack.NewStrangeAttractors()
		_ = rack.ConnectOutputs(m, []string{"lorenz_x", "lorenz_y", "rossler_x", "rossler_y"})
		if _, err := New(m).Run(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
