package rack

import (
	"math"
	"sync/atomic"
)

// Port is a jack carrying one voltage. Inputs read 0 V while unplugged.
type Port struct {
	Name string

	voltage   atomic.Uint64
	connected atomic.Bool
}

func NewPort(name string) *Port {
	return &Port{Name: name}
}

func (p *Port) Voltage() float64 {
	return math.Float64frombits(p.voltage.Load())
}

func (p *Port) SetVoltage(v float64) {
	p.voltage.Store(math.Float64bits(v))
}

func (p *Port) IsConnected() bool {
	return p.connected.Load()
}

// Connect plugs the port. Disconnecting zeroes the voltage.
func (p *Port) Connect(on bool) {
	p.connected.Store(on)
	if !on {
		p.SetVoltage(0)
	}
}

// Patch connects the port and sets its voltage in one call.
func (p *Port) Patch(v float64) {
	p.SetVoltage(v)
	p.connected.Store(true)
}
