package lattice_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/latticesim/internal/compute"
	"github.com/san-kum/latticesim/internal/lattice"
)

func pairEnergy(s *lattice.Simulator[float64]) float64 {
	x0, y0 := s.Position(0, 0)
	x1, y1 := s.Position(0, 1)
	vx0, vy0 := s.Velocity(0, 0)
	vx1, vy1 := s.Velocity(0, 1)
	ke := 0.5 * (vx0*vx0 + vy0*vy0 + vx1*vx1 + vy1*vy1)
	dx, dy := x1-x0, y1-y0
	pe := 0.5 * s.Stiffness() * (dx*dx + dy*dy)
	return ke + pe
}

func newPair(order lattice.UpdateOrder) *lattice.Simulator[float64] {
	s, err := lattice.New[float64](1, 2, 1.0,
		lattice.WithBackend(compute.NewSerialBackend()),
		lattice.WithUpdateOrder(order))
	Expect(err).NotTo(HaveOccurred())
	return s
}

func maxDrift(order lattice.UpdateOrder, dt float64, steps int) float64 {
	s := newPair(order)
	s.SetVelocity(0, 0, -0.01, 0)
	s.SetVelocity(0, 1, 0.01, 0)
	e0 := pairEnergy(s)
	drift := 0.0
	for n := 0; n < steps; n++ {
		s.Advance(dt)
		drift = math.Max(drift, math.Abs(pairEnergy(s)-e0)/e0)
	}
	return drift
}

var _ = Describe("Simulator", func() {
	Context("on a 1x1 grid", func() {
		It("feels no force whatever the position", func() {
			s, err := lattice.New[float64](1, 1, 3.0)
			Expect(err).NotTo(HaveOccurred())
			s.SetPosition(0, 0, 4, -9)
			s.SyncAcceleration()
			Expect(s.Accelerations()).To(Equal([]float64{0, 0}))

			s.SetVelocity(0, 0, 1, 2)
			for n := 0; n < 10; n++ {
				s.Advance(0.5)
			}
			vx, vy := s.Velocity(0, 0)
			Expect(vx).To(Equal(1.0))
			Expect(vy).To(Equal(2.0))
		})
	})

	DescribeTable("two-body chain",
		func(order lattice.UpdateOrder) {
			k := 1.0
			omega := math.Sqrt(2 * k)
			dt := 1e-3

			s := newPair(order)
			s.SetVelocity(0, 0, -0.01, 0)
			s.SetVelocity(0, 1, 0.01, 0)

			var crossings []float64
			prev := 0.0
			for n := 1; n <= 23000; n++ {
				s.Advance(dt)
				x0, _ := s.Position(0, 0)
				x1, _ := s.Position(0, 1)
				u := x1 - x0
				if prev != 0 && (u > 0) != (prev > 0) {
					crossings = append(crossings, float64(n)*dt-dt*u/(u-prev))
				}
				prev = u
			}

			Expect(len(crossings)).To(BeNumerically(">=", 8))
			half := (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
			Expect(2 * half).To(BeNumerically("~", 2*math.Pi/omega, 1e-3))
		},
		Entry("pre-step order", lattice.PreStep),
		Entry("post-step order", lattice.PostStep),
	)

	It("moves a symmetric pair rigidly", func() {
		s := newPair(lattice.PreStep)
		s.SetVelocity(0, 0, 0.01, 0.02)
		s.SetVelocity(0, 1, 0.01, 0.02)
		for n := 0; n < 1000; n++ {
			s.Advance(1e-2)
		}
		x0, y0 := s.Position(0, 0)
		x1, y1 := s.Position(0, 1)
		Expect(x1 - x0).To(Equal(0.0))
		Expect(y1 - y0).To(Equal(0.0))
		Expect(x0).To(BeNumerically("~", 0.1, 1e-12))
		Expect(y0).To(BeNumerically("~", 0.2, 1e-12))
	})

	DescribeTable("energy drift",
		func(order lattice.UpdateOrder) {
			const steps = 2000
			coarse := maxDrift(order, 1e-3, steps)
			fine := maxDrift(order, 5e-4, steps)

			Expect(coarse).To(BeNumerically("<", 2e4*1e-3*1e-3))
			Expect(fine).To(BeNumerically("<", 2e4*5e-4*5e-4))
			Expect(fine).To(BeNumerically("<", coarse))
		},
		Entry("pre-step order", lattice.PreStep),
		Entry("post-step order", lattice.PostStep),
	)

	It("gives the same trajectory under both index strategies", func() {
		build := func(st lattice.Strategy) *lattice.Simulator[float64] {
			s, err := lattice.New[float64](6, 10, 0.8,
				lattice.WithStrategy(st), lattice.WithBackend(compute.NewSerialBackend()))
			Expect(err).NotTo(HaveOccurred())
			s.SetVelocity(2, 7, 0.3, -0.1)
			s.SetVelocity(5, 0, -0.2, 0.4)
			for n := 0; n < 300; n++ {
				s.Advance(0.02)
			}
			return s
		}
		a, b := build(lattice.RowMajorStrategy), build(lattice.MortonStrategy)
		fa, fb := lattice.NewFrame(6, 10), lattice.NewFrame(6, 10)
		a.Frame(fa)
		b.Frame(fb)
		Expect(fb.Pos).To(Equal(fa.Pos))
		Expect(fb.Vel).To(Equal(fa.Vel))
	})
})
