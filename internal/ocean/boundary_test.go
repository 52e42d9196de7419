package ocean_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/swsim/internal/ocean"
)

func field(e *ocean.Engine, name string) *mat.Dense {
	for _, f := range e.Diagnostics() {
		if f.Name == name {
			return f.Data
		}
	}
	Fail("no field named " + name)
	return nil
}

func gyre(mutate func(*ocean.Params)) *ocean.Engine {
	p := ocean.DefaultParams()
	p.Perturbation = ocean.PerturbTower
	if mutate != nil {
		mutate(&p)
	}
	e, err := ocean.New(p)
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Boundary policy", func() {
	DescribeTable("keeps the meridional edges closed",
		func(interpolate, wrap bool) {
			e := gyre(func(p *ocean.Params) {
				p.InterpolateRotation = interpolate
				p.HorizontalWrap = wrap
			})
			for burst := 0; burst < 20; burst++ {
				e.Advance(7)
				v := field(e, "V")
				rows, cols := v.Dims()
				for j := 0; j < cols; j++ {
					Expect(v.At(0, j)).To(BeZero())
					Expect(v.At(rows-1, j)).To(BeZero())
				}
			}
		},
		Entry("simple, wrapped", false, true),
		Entry("simple, closed", false, false),
		Entry("interpolated, wrapped", true, true),
		Entry("interpolated, closed", true, false),
	)

	It("copies the seam column bit for bit when wrapping", func() {
		e := gyre(func(p *ocean.Params) {
			p.Perturbation = ocean.PerturbEWGradient
			p.Rows, p.Cols = 8, 12
		})
		for step := 0; step < 150; step++ {
			e.Advance(1)
			u, h := field(e, "U"), field(e, "H")
			for i := 0; i < 8; i++ {
				Expect(u.At(i, 12)).To(Equal(u.At(i, 0)))
				Expect(h.At(i, 12)).To(Equal(h.At(i, 0)))
			}
		}
	})

	It("zeroes both zonal edges of U when closed", func() {
		e := gyre(func(p *ocean.Params) {
			p.HorizontalWrap = false
			p.Wind = ocean.WindUniform
		})
		for step := 0; step < 150; step++ {
			e.Advance(1)
			u := field(e, "U")
			for i := 0; i < 10; i++ {
				Expect(u.At(i, 0)).To(BeZero())
				Expect(u.At(i, 10)).To(BeZero())
			}
		}
		Expect(e.Snapshot().KineticEnergy()).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Engine", func() {
	It("stays at rest without forcing", func() {
		e := gyre(func(p *ocean.Params) {
			p.Drag = 0
			p.Wind = ocean.WindCalm
			p.Perturbation = ocean.PerturbNone
		})
		e.Advance(500)
		for _, f := range e.Diagnostics() {
			rows, cols := f.Data.Dims()
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					Expect(f.Data.At(i, j)).To(BeNumerically("==", 0), "%s[%d,%d]", f.Name, i, j)
				}
			}
		}
		Expect(e.Time()).To(Equal(500 * ocean.DefaultDt))
	})

	It("degrades an unknown rotation name to zero rotation", func() {
		e := gyre(func(p *ocean.Params) {
			p.Rotation = ocean.ParseRotationScheme("Unknown")
		})
		Expect(e.RotationCoefficients()).To(HaveLen(10))
		for _, f := range e.RotationCoefficients() {
			Expect(f).To(BeZero())
		}
	})

	It("hands out copies of the per-row coefficients", func() {
		e := gyre(nil)
		rot := e.RotationCoefficients()
		rot[0] = 1
		Expect(e.RotationCoefficients()[0]).NotTo(Equal(1.0))

		wind := e.WindForcing()
		wind[0] = 1
		Expect(e.WindForcing()[0]).NotTo(Equal(1.0))
	})

	It("rejects an empty grid", func() {
		p := ocean.DefaultParams()
		p.Cols = 0
		_, err := ocean.New(p)
		Expect(err).To(MatchError(ocean.ErrInvalidGrid))
	})

	It("spins up a stable gyre over many bursts", func() {
		e := gyre(nil)
		for burst := 0; burst < 10; burst++ {
			e.Advance(1000)
			Expect(e.Snapshot().IsFinite()).To(BeTrue())
		}
		Expect(e.Steps()).To(Equal(10000))
	})
})
