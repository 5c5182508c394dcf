package physics_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

var sampleRates = []float64{44100, 48000, 96000, 192000}

// corners enumerates every min/max combination of the three coefficients.
func corners(def *dynamo.Definition) []dynamo.Coefficients {
	var out []dynamo.Coefficients
	for mask := 0; mask < 8; mask++ {
		var c dynamo.Coefficients
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				c[i] = def.Params[i].Max
			} else {
				c[i] = def.Params[i].Min
			}
		}
		out = append(out, c)
	}
	return out
}

func runFinite(def *dynamo.Definition, c dynamo.Coefficients, pitch, rate float64, steps int) {
	sys := dynamo.New(def)
	sys.Coeffs = c
	sys.Pitch = pitch
	dt := 1.0 / rate
	for i := 0; i < steps; i++ {
		sys.Advance(dt)
		if !sys.State.IsValid() {
			Fail(fmt.Sprintf("%s %v pitch=%v rate=%v diverged at step %d", def.Kind, c, pitch, rate, i))
		}
	}
}

var _ = Describe("trajectory stability", func() {
	for _, def := range physics.Definitions {
		def := def

		Context(def.Kind.String(), func() {
			It("stays finite for 10000 steps at coefficient corners", func() {
				for _, c := range corners(def) {
					for _, pitch := range []float64{0.001, 0.5} {
						for _, rate := range sampleRates {
							runFinite(def, c, pitch, rate, 10000)
						}
					}
				}
			})

			It("stays finite at full pitch with default coefficients", func() {
				sys := dynamo.New(def)
				for _, rate := range sampleRates {
					runFinite(def, sys.Coeffs, 1, rate, 10000)
				}
			})
		})
	}

	It("resolves definitions by name", func() {
		def, err := physics.ByName("Rössler")
		Expect(err).NotTo(HaveOccurred())
		Expect(def).To(BeIdenticalTo(physics.Rossler))

		_, err = physics.ByName("chua")
		Expect(err).To(MatchError(dynamo.ErrUnknownSystem))
	})
})
