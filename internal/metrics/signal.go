package metrics

import (
	"math"

	"github.com/san-kum/attractors/internal/engine"
)

// Peak is the largest absolute voltage seen on one channel.
type Peak struct {
	name  string
	col   int
	value float64
}

func NewPeak(output string, col int) *Peak {
	return &Peak{name: output + ".peak", col: col}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(t float64, v []float64) {
	p.value = math.Max(p.value, math.Abs(v[p.col]))
}

func (p *Peak) Value() float64 { return p.value }
func (p *Peak) Reset()         { p.value = 0 }

type RMS struct {
	name    string
	col     int
	sumSq   float64
	samples int
}

func NewRMS(output string, col int) *RMS {
	return &RMS{name: output + ".rms", col: col}
}

func (r *RMS) Name() string { return r.name }

func (r *RMS) Observe(t float64, v []float64) {
	r.sumSq += v[r.col] * v[r.col]
	r.samples++
}

func (r *RMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// Mean is the DC offset of one channel.
type Mean struct {
	name    string
	col     int
	sum     float64
	samples int
}

func NewMean(output string, col int) *Mean {
	return &Mean{name: output + ".mean", col: col}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(t float64, v []float64) {
	m.sum += v[m.col]
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// ZeroCrossingRate counts sign changes per second on one channel. Half the
// rate approximates the fundamental of a periodic signal.
type ZeroCrossingRate struct {
	name      string
	col       int
	prev      float64
	crossings int
	first     float64
	last      float64
	samples   int
}

func NewZeroCrossingRate(output string, col int) *ZeroCrossingRate {
	return &ZeroCrossingRate{name: output + ".zcr", col: col}
}

func (z *ZeroCrossingRate) Name() string { return z.name }

func (z *ZeroCrossingRate) Observe(t float64, v []float64) {
	x := v[z.col]
	if z.samples == 0 {
		z.first = t
	} else if (z.prev < 0 && x >= 0) || (z.prev >= 0 && x < 0) {
		z.crossings++
	}
	z.prev = x
	z.last = t
	z.samples++
}

func (z *ZeroCrossingRate) Value() float64 {
	span := z.last - z.first
	if span <= 0 {
		return 0
	}
	return float64(z.crossings) / span
}

func (z *ZeroCrossingRate) Reset() {
	*z = ZeroCrossingRate{name: z.name, col: z.col}
}

// DefaultStabilityThreshold is the rail of a modular voltage range.
const DefaultStabilityThreshold = 10.0

// Defaults builds the standard per-channel set for outputs in record order,
// followed by one frame-wide Stability.
func Defaults(outputs []string) []engine.Metric {
	ms := make([]engine.Metric, 0, 4*len(outputs)+1)
	for col, name := range outputs {
		ms = append(ms,
			NewPeak(name, col),
			NewRMS(name, col),
			NewMean(name, col),
			NewZeroCrossingRate(name, col),
		)
	}
	return append(ms, NewStability(DefaultStabilityThreshold))
}
