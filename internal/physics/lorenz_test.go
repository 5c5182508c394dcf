package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

var _ = Describe("Lorenz", func() {
	const dt = 1.0 / 44100

	var sys *dynamo.System

	BeforeEach(func() {
		sys = physics.NewLorenz()
	})

	It("starts from the documented defaults and seed", func() {
		Expect(sys.Kind()).To(Equal(dynamo.KindLorenz))
		Expect(sys.Coeffs[physics.LorenzSigma]).To(Equal(10.0))
		Expect(sys.Coeffs[physics.LorenzBeta]).To(Equal(8.0 / 3.0))
		Expect(sys.Coeffs[physics.LorenzRho]).To(Equal(28.0))
		Expect(sys.Pitch).To(Equal(0.5))
		Expect(sys.State).To(Equal(dynamo.State{X: 1, Y: 1, Z: 1}))
	})

	It("exposes the documented parameter ranges", func() {
		p := physics.Lorenz.Params
		Expect(p[physics.LorenzSigma]).To(Equal(dynamo.ParamSpec{Name: "sigma", Min: 3, Max: 30, Default: 10}))
		Expect(p[physics.LorenzBeta].Min).To(Equal(0.5))
		Expect(p[physics.LorenzBeta].Max).To(Equal(3.0))
		Expect(p[physics.LorenzRho].Min).To(Equal(13.0))
		Expect(p[physics.LorenzRho].Max).To(Equal(80.0))
		Expect(p[physics.LorenzPitch].Min).To(Equal(0.001))
		Expect(p[physics.LorenzPitch].Max).To(Equal(1.0))
		Expect(physics.Lorenz.TimeScale).To(Equal(375.0))
	})

	It("takes one forward-Euler step from the seed", func() {
		sys.Advance(dt)

		h := dt * 0.5 * 375
		Expect(sys.State.X).To(Equal(1.0))
		Expect(sys.State.Y).To(BeNumerically("~", 1+26*h, 1e-12))
		Expect(sys.State.Z).To(BeNumerically("~", 1+(1-8.0/3.0)*h, 1e-12))

		Expect(sys.State.Y).To(BeNumerically("~", 1.1106, 1e-4))
		Expect(sys.State.Z).To(BeNumerically("~", 0.9929, 1e-4))
	})

	It("does not move for a zero step", func() {
		sys.Advance(0)
		Expect(sys.State).To(Equal(dynamo.State{X: 1, Y: 1, Z: 1}))
	})

	It("picks up parameter changes on the next step only", func() {
		sys.Advance(dt)
		before := sys.State

		sys.Coeffs[physics.LorenzRho] = 60
		Expect(sys.State).To(Equal(before))

		ref := physics.NewLorenz()
		ref.Advance(dt)
		ref.Advance(dt)

		sys.Advance(dt)
		Expect(sys.State).NotTo(Equal(ref.State))
	})

	It("is bit-for-bit reproducible", func() {
		other := physics.NewLorenz()
		for i := 0; i < 5000; i++ {
			sys.Advance(dt)
			other.Advance(dt)
		}
		Expect(other.State).To(Equal(sys.State))
	})
})
