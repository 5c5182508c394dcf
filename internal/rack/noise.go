package rack

import (
	"math"

	"github.com/san-kum/attractors/internal/noise"
)

const (
	QuantaParam = iota
	NumNoiseParams
)

const (
	WhiteOutput = iota
	PinkOutput
	RedOutput
	GreyOutput
	BlueOutput
	PurpleOutput
	QuantaOutput
	NumNoiseOutputs
)

const defaultNoiseSeed = 1

// Noise is a seven-colour noise source.
type Noise struct {
	params  []*Param
	outputs []*Port

	gen        *noise.Generator
	pink       noise.PinkFilter
	red        noise.RCFilter
	grey       noise.NotchFilter
	blue       noise.RCFilter
	purple     noise.RCFilter
	sampleRate float64
}

func NewNoise(seed int64) *Noise {
	if seed == 0 {
		seed = defaultNoiseSeed
	}
	m := &Noise{
		params: []*Param{NewParam("quanta", 0, 1, 0.066)},
		gen:    noise.NewGenerator(seed),
	}
	for _, name := range []string{"white", "pink", "red", "grey", "blue", "purple", "quanta"} {
		m.outputs = append(m.outputs, NewPort(name))
	}
	return m
}

func (m *Noise) Name() string     { return "noise" }
func (m *Noise) Params() []*Param { return m.params }
func (m *Noise) Inputs() []*Port  { return nil }
func (m *Noise) Outputs() []*Port { return m.outputs }

// setSampleRate retunes the filters. Cutoffs are fixed in Hz.
func (m *Noise) setSampleRate(rate float64) {
	m.sampleRate = rate
	m.red.SetCutoff(441 / rate)
	m.purple.SetCutoff(44100 / rate)
	m.blue.SetCutoff(44100 / rate)
	m.grey.SetFreq(1000 / rate)
	m.grey.SetBandwidth(0.3)
}

func (m *Noise) Process(args ProcessArgs) {
	if args.SampleRate != m.sampleRate {
		m.setSampleRate(args.SampleRate)
	}

	white := m.gen.White()
	out := m.outputs

	if out[PinkOutput].IsConnected() || out[BlueOutput].IsConnected() || out[GreyOutput].IsConnected() {
		m.pink.Process(white)
	}

	if out[WhiteOutput].IsConnected() {
		out[WhiteOutput].SetVoltage(5 * white)
	}

	if out[RedOutput].IsConnected() {
		m.red.Process(white)
		out[RedOutput].SetVoltage(5 * clamp(7.8*m.red.Lowpass(), -1, 1))
	}

	if out[PinkOutput].IsConnected() {
		out[PinkOutput].SetVoltage(5 * clamp(0.18*m.pink.Pink(), -1, 1))
	}

	if out[GreyOutput].IsConnected() {
		m.grey.Process(m.pink.Pink() * 0.034)
		out[GreyOutput].SetVoltage(5 * clamp(0.23*(m.pink.Pink()*0.5+m.grey.Notch()*0.5), -1, 1))
	}

	if out[BlueOutput].IsConnected() {
		m.blue.Process(m.pink.Pink())
		out[BlueOutput].SetVoltage(5 * clamp(0.64*m.blue.Highpass(), -1, 1))
	}

	if out[PurpleOutput].IsConnected() {
		m.purple.Process(white)
		out[PurpleOutput].SetVoltage(5 * clamp(0.82*m.purple.Highpass(), -1, 1))
	}

	if out[QuantaOutput].IsConnected() {
		v := 0.0
		if math.Abs(white) <= m.params[QuantaParam].Value() {
			v = 5 * sign(white)
		}
		out[QuantaOutput].SetVoltage(v)
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
