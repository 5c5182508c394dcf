package dynamo

// System is a live attractor instance: parameters plus phase-space state.
type System struct {
	def *Definition

	Coeffs Coefficients
	Pitch  float64
	State  State
}

// New returns a system at the definition's defaults and seed state.
func New(def *Definition) *System {
	s := &System{def: def}
	s.Reset()
	s.State = def.Seed
	return s
}

// Advance moves the state one forward-Euler step of dt seconds:
//
//	x += dx * dt * pitch * timeScale
//
// The explicit conversions round each delta before the add so no fused
// multiply-add changes the trajectory between architectures.
func (s *System) Advance(dt float64) {
	d := s.def.Derive(s.Coeffs, s.State)
	scale := s.def.TimeScale

	s.State.X += float64(d.X * dt * s.Pitch * scale)
	s.State.Y += float64(d.Y * dt * s.Pitch * scale)
	s.State.Z += float64(d.Z * dt * s.Pitch * scale)
}

// Velocity returns the scaled vector field, d(state)/dt in seconds, at st
// using the current parameters.
func (s *System) Velocity(st State) State {
	d := s.def.Derive(s.Coeffs, st)
	rate := s.Pitch * s.def.TimeScale
	return State{d.X * rate, d.Y * rate, d.Z * rate}
}

func (s *System) Definition() *Definition { return s.def }
func (s *System) Kind() Kind               { return s.def.Kind }

// Param returns the value in slot i (see [Definition.Params]).
func (s *System) Param(i int) float64 {
	if i == PitchIndex {
		return s.Pitch
	}
	return s.Coeffs[i]
}

// SetParam writes slot i without clamping.
func (s *System) SetParam(i int, v float64) {
	if i == PitchIndex {
		s.Pitch = v
		return
	}
	s.Coeffs[i] = v
}

func (s *System) GetParams() map[string]float64 {
	params := make(map[string]float64, NumParams)
	for i, p := range s.def.Params {
		params[p.Name] = s.Param(i)
	}
	return params
}

// SetParamByName writes the named parameter without clamping.
func (s *System) SetParamByName(name string, v float64) error {
	i, err := s.def.ParamIndex(name)
	if err != nil {
		return err
	}
	s.SetParam(i, v)
	return nil
}

// Reset restores default parameters. State is left untouched.
func (s *System) Reset() {
	for i, p := range s.def.Params {
		s.SetParam(i, p.Default)
	}
}

// Reseed puts the state back to the definition's seed.
func (s *System) Reseed() {
	s.State = s.def.Seed
}

func (s *System) Clone() *System {
	c := *s
	return &c
}
