// Package noise holds the small filters behind the rack's noise module.
package noise

import (
	"math"
	"math/rand"
)

// Generator produces uniform white noise in [-1, 1).
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) White() float64 {
	return g.rng.Float64()*2 - 1
}

// PinkFilter shapes white noise to a -3 dB/octave slope using Paul
// Kellet's refined seven-pole approximation.
type PinkFilter struct {
	b [7]float64
	y float64
}

func (f *PinkFilter) Process(x float64) {
	f.b[0] = 0.99886*f.b[0] + x*0.0555179
	f.b[1] = 0.99332*f.b[1] + x*0.0750759
	f.b[2] = 0.96900*f.b[2] + x*0.1538520
	f.b[3] = 0.86650*f.b[3] + x*0.3104856
	f.b[4] = 0.55000*f.b[4] + x*0.5329522
	f.b[5] = -0.7616*f.b[5] - x*0.0168980
	f.y = f.b[0] + f.b[1] + f.b[2] + f.b[3] + f.b[4] + f.b[5] + f.b[6] + x*0.5362
	f.b[6] = x * 0.115926
}

func (f *PinkFilter) Pink() float64 { return f.y }

// RCFilter is a bilinear one-pole RC filter with both taps.
type RCFilter struct {
	c      float64
	xstate float64
	ystate float64
}

// SetCutoff takes the cutoff as a fraction of the sample rate.
func (f *RCFilter) SetCutoff(r float64) {
	f.c = 2 / r
}

func (f *RCFilter) Process(x float64) {
	y := (x + f.xstate - f.ystate*(1-f.c)) / (1 + f.c)
	f.xstate = x
	f.ystate = y
}

func (f *RCFilter) Lowpass() float64  { return f.ystate }
func (f *RCFilter) Highpass() float64 { return f.xstate - f.ystate }

// NotchFilter is a two-pole, two-zero band-reject filter. Freq is a
// fraction of the sample rate; bandwidth narrows the notch as it shrinks.
type NotchFilter struct {
	freq, bandwidth    float64
	a0, a1, a2, b1, b2 float64
	x1, x2             float64
	y1, y2             float64
}

func (f *NotchFilter) SetFreq(v float64) {
	f.freq = v
	f.computeCoefficients()
}

func (f *NotchFilter) SetBandwidth(v float64) {
	f.bandwidth = v
	f.computeCoefficients()
}

func (f *NotchFilter) Process(x float64) {
	y := f.a0*x + f.a1*f.x1 + f.a2*f.x2 + f.b1*f.y1 + f.b2*f.y2

	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
}

func (f *NotchFilter) Notch() float64 { return f.y1 }

func (f *NotchFilter) computeCoefficients() {
	c2pf := math.Cos(2 * math.Pi * f.freq)
	r := 1 - 3*f.bandwidth
	r2 := r * r
	k := (1 - 2*r*c2pf + r2) / (2 - 2*c2pf)

	f.a0 = k
	f.a1 = -2 * k * c2pf
	f.a2 = k
	f.b1 = 2 * r * c2pf
	f.b2 = -r2
}
