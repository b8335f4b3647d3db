package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/physics"
)

func momentum(bodies [3]physics.Body) dynamo.Vec3 {
	var p dynamo.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

func mustNew(cfg physics.Config) *physics.ThreeBody {
	sim, err := physics.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return sim
}

var _ = Describe("ThreeBody", func() {
	Describe("New", func() {
		DescribeTable("rejects invalid run parameters",
			func(dt float64, steps int) {
				cfg := physics.EarthMoon(dt, steps)
				_, err := physics.New(cfg)
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			},
			Entry("zero dt", 0.0, 10),
			Entry("negative dt", -1.0, 10),
			Entry("NaN dt", math.NaN(), 10),
			Entry("infinite dt", math.Inf(1), 10),
			Entry("negative step count", 1.0, -1),
		)

		It("seeds every history with the initial position", func() {
			cfg := physics.EarthMoon(3600, 5)
			sim := mustNew(cfg)

			h := sim.Histories()
			for i := range h {
				Expect(h[i]).To(HaveLen(1))
				Expect(h[i][0]).To(Equal(cfg.Bodies[i].Position))
			}
			Expect(sim.StepCount()).To(Equal(0))
		})

		DescribeTable("allocates nothing up front for the configured step count",
			func(steps int) {
				cfg := physics.EarthMoon(1, steps)
				var sim *physics.ThreeBody
				Expect(func() { sim = mustNew(cfg) }).NotTo(Panic())

				h := sim.Run(3, physics.MassDeltas{})
				for i := range h {
					Expect(h[i]).To(HaveLen(4))
				}
				Expect(sim.NumSteps()).To(Equal(steps))
			},
			Entry("max int", math.MaxInt),
			Entry("2^40", 1<<40),
		)

		It("falls back to the physical G when none is given", func() {
			cfg := physics.EarthMoon(1, 1)
			cfg.G = 0
			sim := mustNew(cfg)
			Expect(sim.GetParams()["g"]).To(Equal(physics.GravitationalConstant))
		})
	})

	Describe("Step", func() {
		It("moves the spacecraft along +y in the Earth-Moon scenario", func() {
			sim := mustNew(physics.EarthMoon(3600, 1))

			h := sim.Run(1, physics.MassDeltas{})

			for i := range h {
				Expect(h[i]).To(HaveLen(2))
			}
			moved := h[2][1].Sub(h[2][0])
			Expect(moved.Y).To(BeNumerically(">", 1e4))
			Expect(sim.StepCount()).To(Equal(1))
		})

		It("kicks every velocity from the pre-step positions before drifting", func() {
			cfg := physics.Config{
				Dt: 0.01,
				G:  1,
				Bodies: [3]physics.Body{
					{Mass: 2, Position: dynamo.Vec3{X: 0, Y: 0, Z: 0}, Velocity: dynamo.Vec3{X: 0.1}},
					{Mass: 3, Position: dynamo.Vec3{X: 1, Y: 0, Z: 0.5}, Velocity: dynamo.Vec3{Y: -0.2}},
					{Mass: 5, Position: dynamo.Vec3{X: 0, Y: 2, Z: -1}, Velocity: dynamo.Vec3{Z: 0.3}},
				},
			}
			sim := mustNew(cfg)
			sim.Step()

			b := cfg.Bodies
			p1, p2, p3 := b[0].Position, b[1].Position, b[2].Position
			d12, d13, d23 := p2.Sub(p1), p3.Sub(p1), p3.Sub(p2)
			f12 := b[0].Mass * b[1].Mass / math.Pow(d12.Norm(), 3)
			f13 := b[0].Mass * b[2].Mass / math.Pow(d13.Norm(), 3)
			f23 := b[1].Mass * b[2].Mass / math.Pow(d23.Norm(), 3)

			wantV := [3]dynamo.Vec3{
				b[0].Velocity.Add(d12.Scale(f12).Add(d13.Scale(f13)).Scale(cfg.Dt / b[0].Mass)),
				b[1].Velocity.Add(d12.Scale(-f12).Add(d23.Scale(f23)).Scale(cfg.Dt / b[1].Mass)),
				b[2].Velocity.Add(d13.Scale(-f13).Sub(d23.Scale(f23)).Scale(cfg.Dt / b[2].Mass)),
			}

			got := sim.Bodies()
			for i := range got {
				Expect(got[i].Velocity.X).To(BeNumerically("~", wantV[i].X, 1e-12))
				Expect(got[i].Velocity.Y).To(BeNumerically("~", wantV[i].Y, 1e-12))
				Expect(got[i].Velocity.Z).To(BeNumerically("~", wantV[i].Z, 1e-12))

				wantP := b[i].Position.Add(wantV[i].Scale(cfg.Dt))
				Expect(got[i].Position.X).To(BeNumerically("~", wantP.X, 1e-12))
				Expect(got[i].Position.Y).To(BeNumerically("~", wantP.Y, 1e-12))
				Expect(got[i].Position.Z).To(BeNumerically("~", wantP.Z, 1e-12))
			}
		})

		It("applies equal and opposite impulses within each pair", func() {
			cfg := physics.Config{
				Dt: 0.5,
				G:  1,
				Bodies: [3]physics.Body{
					{Mass: 4, Position: dynamo.Vec3{X: -1}},
					{Mass: 7, Position: dynamo.Vec3{X: 2, Y: 1}},
					{Mass: 0.5, Position: dynamo.Vec3{Y: 3, Z: 1}},
				},
			}
			sim := mustNew(cfg)
			sim.Step()

			// Bodies start at rest, so m*v is the impulse each received.
			p := momentum(sim.Bodies())
			scale := 0.0
			for _, b := range sim.Bodies() {
				scale = math.Max(scale, b.Velocity.Scale(b.Mass).Norm())
			}
			Expect(scale).To(BeNumerically(">", 0))
			Expect(p.Norm() / scale).To(BeNumerically("<", 1e-12))
		})
	})

	Describe("Run", func() {
		DescribeTable("records one sample per step plus the initial position",
			func(n int) {
				sim := mustNew(physics.FigureEight(1e-3, n))
				h := sim.Run(n, physics.MassDeltas{})
				for i := range h {
					Expect(h[i]).To(HaveLen(n + 1))
				}
				Expect(h.Len()).To(Equal(sim.StepCount() + 1))
			},
			Entry("no steps", 0),
			Entry("one step", 1),
			Entry("nine steps", 9),
			Entry("a thousand steps", 1000),
		)

		It("keeps total momentum near zero for the figure-eight", func() {
			for _, dt := range []float64{1e-3, 1e-4} {
				steps := int(1 / dt)
				sim := mustNew(physics.FigureEight(dt, steps))
				initial := momentum(sim.Bodies())
				Expect(initial.Norm()).To(BeNumerically("<", 1e-8))

				sim.Run(steps, physics.MassDeltas{})
				Expect(momentum(sim.Bodies()).Sub(initial).Norm()).To(BeNumerically("<", 1e-9))
			}
		})

		It("converges to first order as dt shrinks", func() {
			final := func(dt float64) dynamo.Vec3 {
				steps := int(math.Round(1 / dt))
				h := mustNew(physics.FigureEight(dt, steps)).Run(steps, physics.MassDeltas{})
				return h[0][steps]
			}

			coarse := final(1e-3).Sub(final(5e-4)).Norm()
			fine := final(5e-4).Sub(final(2.5e-4)).Norm()

			Expect(fine).To(BeNumerically(">", 0))
			Expect(coarse / fine).To(BeNumerically("~", 2, 0.5))
		})

		It("replays bit for bit", func() {
			cfg := physics.FigureEight(1e-3, 2000)
			d := physics.MassDeltas{1e-4, 0, -1e-4}

			a := mustNew(cfg).Run(cfg.NumSteps, d)
			b := mustNew(cfg).Run(cfg.NumSteps, d)

			Expect(a).To(Equal(b))
		})

		It("returns histories the caller may modify freely", func() {
			sim := mustNew(physics.EarthMoon(360, 2))
			h := sim.Run(2, physics.MassDeltas{})
			h[0][0].X = 42

			Expect(sim.Histories()[0][0].X).To(Equal(0.0))
		})
	})

	Describe("PerturbMass", func() {
		It("stays inert through step round(9/3) and applies every step after", func() {
			sim := mustNew(physics.EarthMoon(360, 9))
			Expect(sim.PerturbationThreshold()).To(Equal(3))

			d := physics.MassDeltas{0, 0, 1}
			for step := 1; step <= 9; step++ {
				sim.Step()
				sim.PerturbMass(d)

				want := physics.SpacecraftMass
				if step > 3 {
					want += float64(step - 3)
				}
				Expect(sim.Bodies()[2].Mass).To(Equal(want), "after step %d", step)
			}
			Expect(sim.Bodies()[0].Mass).To(Equal(physics.EarthMass))
		})

		It("applies the same schedule through Run", func() {
			sim := mustNew(physics.EarthMoon(360, 9))
			sim.Run(9, physics.MassDeltas{0, 0, 30})

			b := sim.Bodies()
			Expect(b[0].Mass).To(Equal(physics.EarthMass))
			Expect(b[1].Mass).To(Equal(physics.MoonMass))
			Expect(b[2].Mass).To(Equal(physics.SpacecraftMass + 180))
		})

		DescribeTable("rounds NumSteps/3 to the nearest step",
			func(numSteps, threshold int) {
				sim := mustNew(physics.EarthMoon(1, numSteps))
				Expect(sim.PerturbationThreshold()).To(Equal(threshold))
			},
			Entry("0 steps", 0, 0),
			Entry("10 steps", 10, 3),
			Entry("11 steps", 11, 4),
			Entry("100 steps", 100, 33),
		)

		It("does nothing before any step when NumSteps is zero", func() {
			sim := mustNew(physics.EarthMoon(1, 0))
			sim.PerturbMass(physics.MassDeltas{1, 1, 1})
			Expect(sim.Bodies()[2].Mass).To(Equal(physics.SpacecraftMass))
		})
	})

	Describe("numerical hazards", func() {
		It("lets coincident bodies poison the state without failing", func() {
			cfg := physics.EarthMoon(60, 3)
			cfg.Bodies[2].Position = cfg.Bodies[0].Position

			sim := mustNew(cfg)
			Expect(func() { sim.Run(3, physics.MassDeltas{}) }).NotTo(Panic())

			b := sim.Bodies()
			Expect(b[0].Velocity.IsValid()).To(BeFalse())
			Expect(b[2].Velocity.IsValid()).To(BeFalse())

			h := sim.Histories()
			Expect(h[0]).To(HaveLen(4))
			Expect(h[0].IsValid()).To(BeFalse())
		})

		It("lets a mass reach zero and then go negative", func() {
			cfg := physics.EarthMoon(60, 3)
			sim := mustNew(cfg)
			Expect(sim.PerturbationThreshold()).To(Equal(1))

			h := sim.Run(3, physics.MassDeltas{0, 0, -physics.SpacecraftMass})

			// Step 3 divides by the zero mass left behind by step 2.
			Expect(sim.Bodies()[2].Mass).To(Equal(-physics.SpacecraftMass))
			Expect(h[2][2].IsValid()).To(BeTrue())
			Expect(h[2][3].IsValid()).To(BeFalse())
			Expect(h[0].IsValid()).To(BeTrue())
		})
	})
})
