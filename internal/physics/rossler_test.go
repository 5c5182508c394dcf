package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

var _ = Describe("Rossler", func() {
	const dt = 1.0 / 44100

	var sys *dynamo.System

	BeforeEach(func() {
		sys = physics.NewRossler()
	})

	It("starts from the documented defaults and seed", func() {
		Expect(sys.Kind()).To(Equal(dynamo.KindRossler))
		Expect(sys.Coeffs).To(Equal(dynamo.Coefficients{0.2, 0.2, 5.7}))
		Expect(sys.Pitch).To(Equal(0.5))
		Expect(sys.State).To(Equal(dynamo.State{X: 1, Y: 1, Z: 1}))
		Expect(physics.Rossler.TimeScale).To(Equal(2910.0))
	})

	It("exposes the documented parameter ranges", func() {
		p := physics.Rossler.Params
		Expect([]float64{p[physics.RosslerA].Min, p[physics.RosslerA].Max}).To(Equal([]float64{0, 0.2}))
		Expect([]float64{p[physics.RosslerB].Min, p[physics.RosslerB].Max}).To(Equal([]float64{0.1, 1}))
		Expect([]float64{p[physics.RosslerC].Min, p[physics.RosslerC].Max}).To(Equal([]float64{3, 12}))
		Expect([]float64{p[physics.RosslerPitch].Min, p[physics.RosslerPitch].Max}).To(Equal([]float64{0.001, 1}))
	})

	It("takes one forward-Euler step from the seed", func() {
		sys.Advance(dt)

		h := dt * 0.5 * 2910
		Expect(sys.State.X).To(BeNumerically("~", 1-2*h, 1e-12))
		Expect(sys.State.Y).To(BeNumerically("~", 1+1.2*h, 1e-12))
		Expect(sys.State.Z).To(BeNumerically("~", 1-4.5*h, 1e-12))

		Expect(sys.State.X).To(BeNumerically("~", 0.9340, 1e-4))
		Expect(sys.State.Y).To(BeNumerically("~", 1.0396, 1e-4))
		Expect(sys.State.Z).To(BeNumerically("~", 0.8516, 1e-4))
	})

	It("does not move for a zero step", func() {
		sys.Advance(0)
		Expect(sys.State).To(Equal(dynamo.State{X: 1, Y: 1, Z: 1}))
	})

	It("freezes while not advanced and resumes without catch-up", func() {
		ref := physics.NewRossler()
		for i := 0; i < 100; i++ {
			sys.Advance(dt)
			ref.Advance(dt)
		}
		frozen := sys.State

		// a host skipping ticks simply does not call Advance
		Expect(sys.State).To(Equal(frozen))

		sys.Advance(dt)
		ref.Advance(dt)
		Expect(sys.State).To(Equal(ref.State))
	})
})
