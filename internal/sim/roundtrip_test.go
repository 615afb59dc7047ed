package sim

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/physics"
)

var _ = Describe("System", func() {
	var s *System

	BeforeEach(func() {
		s = New(3600, integrators.NewRK4(4))
		Expect(s.InitializeStandard()).To(Succeed())
	})

	Describe("Update", func() {
		DescribeTable("only changes positions and velocities",
			func(integ integrators.Integrator) {
				s.SetIntegrator(integ)
				before := s.Bodies()
				for i := 0; i < 48; i++ {
					s.Update()
				}
				after := s.Bodies()

				Expect(after).To(HaveLen(len(before)))
				for i := range before {
					Expect(after[i].Name).To(Equal(before[i].Name))
					Expect(after[i].Kind).To(Equal(before[i].Kind))
					Expect(after[i].Mass).To(Equal(before[i].Mass))
					Expect(after[i].Radius).To(Equal(before[i].Radius))
					Expect(after[i].Color).To(Equal(before[i].Color))
					if after[i].Kind == body.Planet {
						Expect(after[i].Position).NotTo(Equal(before[i].Position))
						Expect(after[i].Velocity).NotTo(Equal(before[i].Velocity))
					}
				}
			},
			Entry("euler", integrators.NewEuler()),
			Entry("rk4", integrators.NewRK4(4)),
			Entry("rk4 single stage", integrators.NewRK4(1)),
			Entry("verlet", integrators.NewVerlet()),
		)

		It("keeps every body finite", func() {
			for i := 0; i < 240; i++ {
				s.Update()
			}
			for _, b := range s.Bodies() {
				Expect(b.Position.IsFinite()).To(BeTrue(), b.Name)
				Expect(b.Velocity.IsFinite()).To(BeTrue(), b.Name)
			}
		})

		It("conserves linear momentum", func() {
			p0 := physics.Momentum(s.State())
			for i := 0; i < 240; i++ {
				s.Update()
			}
			p1 := physics.Momentum(s.State())
			Expect(p1.Sub(p0).Magnitude()).To(BeNumerically("<", 1e-10*p0.Magnitude()))
		})
	})

	Describe("construction", func() {
		It("rejects a nil integrator", func() {
			Expect(func() { New(3600, nil) }).To(PanicWith(ErrNilIntegrator))
			Expect(func() { s.SetIntegrator(nil) }).To(PanicWith(ErrNilIntegrator))
			Expect(s.Integrator()).NotTo(BeNil())
		})
	})

	Describe("Run", func() {
		It("reports elapsed time as steps times timestep", func() {
			res, err := s.Run(context.Background(), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(10))
			Expect(res.Elapsed).To(BeNumerically("==", 36000))
			Expect(s.Elapsed()).To(BeNumerically("==", 36000))
		})

		It("honours a scaled timestep on the next tick", func() {
			s.ScaleTimestep(0.9)
			s.Update()
			Expect(s.Elapsed()).To(BeNumerically("~", 3240, 1e-9))
		})
	})
})
