package integrators

import (
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
)

func benchStepper(b *testing.B, s Stepper) {
	sys := dynamo.New(decay)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(sys, 1e-6)
	}
}

func BenchmarkEuler(b *testing.B) { benchStepper(b, NewEuler()) }
func BenchmarkHeun(b *testing.B)  { benchStepper(b, NewHeun()) }
func BenchmarkRK4(b *testing.B)   { benchStepper(b, NewRK4()) }
