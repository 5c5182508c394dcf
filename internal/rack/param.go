package rack

import (
	"math"
	"sync/atomic"
)

// Param is a bounded knob. Its plain value is stored as float bits so the
// audio goroutine can read it while another goroutine turns the knob.
type Param struct {
	Name    string
	Min     float64
	Max     float64
	Default float64

	value atomic.Uint64
}

func NewParam(name string, lo, hi, def float64) *Param {
	p := &Param{Name: name, Min: lo, Max: hi, Default: def}
	p.Reset()
	return p
}

func (p *Param) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores v clamped to [Min, Max].
func (p *Param) SetValue(v float64) {
	p.value.Store(math.Float64bits(clamp(v, p.Min, p.Max)))
}

func (p *Param) Reset() {
	p.SetValue(p.Default)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
