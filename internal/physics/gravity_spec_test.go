package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
)

var _ = Describe("Gravity", func() {
	var g *physics.Gravity

	BeforeEach(func() {
		g = physics.NewGravity()
	})

	It("uses the documented defaults", func() {
		Expect(g.G).To(Equal(0.0006))
		Expect(g.MinDistance).To(Equal(1.0))
		Expect(g.Workers).To(Equal(1))
	})

	Describe("a two-body system", func() {
		var pop dynamo.Population

		BeforeEach(func() {
			pop = dynamo.Population{
				{Position: dynamo.Vec2{X: -30, Y: 10}, Mass: 2000},
				{Position: dynamo.Vec2{X: 45, Y: -25}, Mass: 7000},
			}
		})

		It("applies equal and opposite impulses", func() {
			g.Step(pop)

			p0 := pop[0].Velocity.Scale(pop[0].Mass)
			p1 := pop[1].Velocity.Scale(pop[1].Mass)
			Expect(p0.X).To(BeNumerically("~", -p1.X, 1e-9))
			Expect(p0.Y).To(BeNumerically("~", -p1.Y, 1e-9))
			Expect(p0.Len()).To(BeNumerically(">", 0))
		})

		It("pulls the bodies toward each other", func() {
			before := pop[1].Position.Sub(pop[0].Position).Len()
			g.Step(pop)
			after := pop[1].Position.Sub(pop[0].Position).Len()
			Expect(after).To(BeNumerically("<", before))
		})

		It("moves positions by the updated velocity", func() {
			p0 := pop[0].Position
			g.Step(pop)
			moved := pop[0].Position.Sub(p0)
			Expect(moved.X).To(BeNumerically("~", pop[0].Velocity.X, 1e-12))
			Expect(moved.Y).To(BeNumerically("~", pop[0].Velocity.Y, 1e-12))
		})
	})

	Describe("a many-body system", func() {
		It("keeps total momentum at zero when starting from rest", func() {
			pop := dynamo.Population{
				{Position: dynamo.Vec2{X: -200, Y: 50}, Mass: 1500},
				{Position: dynamo.Vec2{X: 120, Y: -80}, Mass: 8200},
				{Position: dynamo.Vec2{X: 10, Y: 300}, Mass: 4300},
				{Position: dynamo.Vec2{X: -90, Y: -310}, Mass: 6100},
			}
			for i := 0; i < 50; i++ {
				g.Step(pop)
			}
			Expect(g.Momentum(pop).Len()).To(BeNumerically("<", 1e-6))
		})

		It("lets non-positive mass propagate as non-finite values", func() {
			pop := dynamo.Population{
				{Position: dynamo.Vec2{X: 0, Y: 0}, Mass: 0},
				{Position: dynamo.Vec2{X: 10, Y: 0}, Mass: 1000},
			}
			g.Step(pop)
			Expect(pop.IsValid()).To(BeFalse())
			Expect(pop.Validate()).To(MatchError(dynamo.ErrNonPositiveMass))
		})
	})
})
