package audio

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/attractors/internal/rack"
)

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 512
	// DefaultGain maps ±10 V to full scale.
	DefaultGain = 0.1
)

var ErrNotRunning = errors.New("audio: player not running")

type Config struct {
	SampleRate float64
	BufferSize int
	Gain       float64
	// Left and Right name the outputs sent to each channel.
	Left, Right string
}

func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		BufferSize: DefaultBufferSize,
		Gain:       DefaultGain,
		Left:       "lorenz_x",
		Right:      "rossler_x",
	}
}

// Player is a realtime host: the portaudio callback ticks the module once
// per frame and sends two of its outputs to the sound card.
type Player struct {
	module      rack.Module
	cfg         Config
	left, right *rack.Port
	args        rack.ProcessArgs

	stream *portaudio.Stream
	frames atomic.Int64
	peak   atomic.Uint64
	active atomic.Bool
}

// NewPlayer resolves and plugs the two outputs. Nothing is opened until
// Start.
func NewPlayer(m rack.Module, cfg Config) (*Player, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Gain == 0 {
		cfg.Gain = DefaultGain
	}

	left, err := rack.FindOutput(m, cfg.Left)
	if err != nil {
		return nil, err
	}
	right, err := rack.FindOutput(m, cfg.Right)
	if err != nil {
		return nil, err
	}
	left.Connect(true)
	right.Connect(true)

	return &Player{
		module: m,
		cfg:    cfg,
		left:   left,
		right:  right,
		args:   rack.NewProcessArgs(cfg.SampleRate, 0),
	}, nil
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, p.cfg.SampleRate, p.cfg.BufferSize, p.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	p.stream = stream
	p.active.Store(true)
	return nil
}

func (p *Player) Stop() error {
	if !p.active.Load() {
		return ErrNotRunning
	}
	p.active.Store(false)

	var errs []error
	if err := p.stream.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := p.stream.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, err)
	}
	p.stream = nil
	return errors.Join(errs...)
}

// Process is the stream callback. It must not block or allocate.
func (p *Player) Process(out [][]float32) {
	frame := p.frames.Load()
	peak := 0.0

	for i := range out[0] {
		p.args.Frame = frame
		p.module.Process(p.args)
		frame++

		l := clip(p.left.Voltage() * p.cfg.Gain)
		r := clip(p.right.Voltage() * p.cfg.Gain)
		peak = math.Max(peak, math.Max(math.Abs(l), math.Abs(r)))

		out[0][i] = float32(l)
		if len(out) > 1 {
			out[1][i] = float32(r)
		}
	}

	p.frames.Store(frame)
	p.peak.Store(math.Float64bits(peak))
}

func (p *Player) Active() bool { return p.active.Load() }

// Frames is the number of samples rendered so far.
func (p *Player) Frames() int64 { return p.frames.Load() }

// Peak is the largest absolute sample of the last buffer, after gain.
func (p *Player) Peak() float64 { return math.Float64frombits(p.peak.Load()) }

func (p *Player) SampleRate() float64 { return p.cfg.SampleRate }

// clip keeps the card from wrapping on a NaN or an overshoot.
func clip(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
