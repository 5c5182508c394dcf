package rack

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Param and input ids of the StrangeAttractors module. Inputs share the
// param numbering: input i modulates param i.
const (
	LorenzSigmaParam = iota
	LorenzBetaParam
	LorenzRhoParam
	LorenzPitchParam
	RosslerAParam
	RosslerBParam
	RosslerCParam
	RosslerPitchParam
	NumAttractorParams
)

const (
	LorenzXOutput = iota
	LorenzYOutput
	RosslerXOutput
	RosslerYOutput
	NumAttractorOutputs
)

// ModulationScale converts CV volts into parameter units.
const ModulationScale = 0.1

// Output voltage scalars, tuned by ear. Keep exact.
const (
	LorenzXScale  = 5 * 0.044
	LorenzYScale  = 5 * 0.0328
	RosslerXScale = 5 * 0.054
	RosslerYScale = 5 * 0.0569
)

// channel binds one attractor to its slice of the module's params, inputs
// and outputs. z is integrated but never emitted.
type channel struct {
	sys    *dynamo.System
	base   int
	outX   int
	outY   int
	scaleX float64
	scaleY float64
}

// StrangeAttractors hosts one Lorenz and one Rössler system.
type StrangeAttractors struct {
	params   []*Param
	inputs   []*Port
	outputs  []*Port
	channels [2]channel
}

func NewStrangeAttractors() *StrangeAttractors {
	m := &StrangeAttractors{
		channels: [2]channel{
			{sys: physics.NewLorenz(), base: LorenzSigmaParam, outX: LorenzXOutput, outY: LorenzYOutput, scaleX: LorenzXScale, scaleY: LorenzYScale},
			{sys: physics.NewRossler(), base: RosslerAParam, outX: RosslerXOutput, outY: RosslerYOutput, scaleX: RosslerXScale, scaleY: RosslerYScale},
		},
	}

	for _, ch := range m.channels {
		def := ch.sys.Definition()
		prefix := def.Kind.String() + "_"
		for _, spec := range def.Params {
			m.params = append(m.params, NewParam(prefix+spec.Name, spec.Min, spec.Max, spec.Default))
			m.inputs = append(m.inputs, NewPort(prefix+spec.Name))
		}
		m.outputs = append(m.outputs, NewPort(prefix+"x"), NewPort(prefix+"y"))
	}
	return m
}

func (m *StrangeAttractors) Name() string            { return "attractors" }
func (m *StrangeAttractors) Params() []*Param        { return m.params }
func (m *StrangeAttractors) Inputs() []*Port         { return m.inputs }
func (m *StrangeAttractors) Outputs() []*Port        { return m.outputs }
func (m *StrangeAttractors) Lorenz() *dynamo.System  { return m.channels[0].sys }
func (m *StrangeAttractors) Rossler() *dynamo.System { return m.channels[1].sys }

// Process runs one tick. An attractor whose outputs are both unplugged is
// skipped and keeps its state until something reads it again.
func (m *StrangeAttractors) Process(args ProcessArgs) {
	for i := range m.channels {
		ch := &m.channels[i]
		if !m.outputs[ch.outX].IsConnected() && !m.outputs[ch.outY].IsConnected() {
			continue
		}

		specs := &ch.sys.Definition().Params
		for slot := 0; slot < dynamo.NumParams; slot++ {
			id := ch.base + slot
			v := m.params[id].Value() + m.inputs[id].Voltage()*ModulationScale
			ch.sys.SetParam(slot, specs[slot].Clamp(v))
		}

		ch.sys.Advance(args.SampleTime)

		m.outputs[ch.outX].SetVoltage(ch.scaleX * ch.sys.State.X)
		m.outputs[ch.outY].SetVoltage(ch.scaleY * ch.sys.State.Y)
	}
}
