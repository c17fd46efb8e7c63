package models_test

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/integrators"
	"github.com/san-kum/polsim/internal/models"
)

type countingSource struct{ draws int }

func (c *countingSource) NormFloat64() float64 {
	c.draws++
	return 0
}

func solve(sys dynamo.System, x0 dynamo.State, times []float64) *dynamo.Result {
	s := dynamo.NewSolver(sys, integrators.NewRK4())
	Expect(s.SetInitialCondition(x0)).To(Succeed())
	result, err := s.Solve(context.Background(), times)
	Expect(err).NotTo(HaveOccurred())
	return result
}

var _ = Describe("Deterministic", func() {
	base := models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02)
	x0 := dynamo.State{1000, 1000, 1000, 500, 500, 500}

	It("keeps the all-equal start symmetric", func() {
		uniform := dynamo.State{1000, 1000, 1000, 1000, 1000, 1000}
		result := solve(models.NewDeterministic(base), uniform, dynamo.Linspace(0, 200, 1001))
		Expect(result.StepsTaken).To(Equal(1000))
		for i, x := range result.States {
			Expect(x[models.B]).To(BeNumerically("~", x[models.C], 1e-9*x[models.B]), "step %d", i)
			Expect(x[models.D]).To(BeNumerically("~", x[models.E], 1e-9*x[models.D]), "step %d", i)
			Expect(x[models.B]).To(BeNumerically("~", x[models.D], 1e-9*x[models.B]), "step %d", i)
		}
	})

	It("keeps a symmetric start symmetric", func() {
		result := solve(models.NewDeterministic(base), x0, dynamo.Linspace(0, 200, 1001))
		for i, x := range result.States {
			Expect(x[models.B]).To(BeNumerically("~", x[models.C], 1e-9*x[models.B]), "step %d", i)
			Expect(x[models.D]).To(BeNumerically("~", x[models.E], 1e-9*x[models.D]), "step %d", i)
		}
	})

	It("conserves each country's total when all demographic rates match", func() {
		result := solve(models.NewDeterministic(base), x0, dynamo.Linspace(0, 200, 1001))
		for _, x := range result.States {
			n1 := x[models.V1] + x[models.B] + x[models.C]
			n2 := x[models.V2] + x[models.D] + x[models.E]
			Expect(n1).To(BeNumerically("~", 3000, 1e-6))
			Expect(n2).To(BeNumerically("~", 1500, 1e-6))
		}
	})

	It("lets the stronger party pull ahead", func() {
		p := base
		p.K1 = 0.4
		result := solve(models.NewDeterministic(p), x0, dynamo.Linspace(0, 200, 1001))
		final := result.Final()
		Expect(final[models.C]).To(BeNumerically(">", final[models.B]))
	})

	It("has no flow out of an all-unaffiliated country without partisans", func() {
		dx, err := models.NewDeterministic(base).Derive(dynamo.State{100, 0, 0, 100, 0, 0}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[models.B]).To(BeZero())
		Expect(dx[models.E]).To(BeZero())
	})

	It("rejects a five-component state", func() {
		_, err := models.NewDeterministic(base).Derive(dynamo.State{1, 1, 1, 1, 1}, 0)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("rejects an empty country", func() {
		_, err := models.NewDeterministic(base).Derive(dynamo.State{0, 0, 0, 1, 1, 1}, 0)
		Expect(err).To(MatchError(dynamo.ErrDegenerateState))

		_, err = models.NewDeterministic(base).Derive(dynamo.State{1, 1, 1, 0, 0, math.NaN()}, 0)
		Expect(err).To(MatchError(dynamo.ErrDegenerateState))
	})
})

var _ = Describe("Stochastic", func() {
	pre := models.Symmetric(0.017, 0.55, 0.15, 0.01, 0.05)
	post := pre
	post.Phi3 = 0.015
	post.Gamma1 = 0.015
	regimes := models.RegimeSet{Pre: pre, Post: post, Cutoff: 88}
	x := dynamo.State{34650000, 22000000, 16000000, 50000000, 50000000, 50000000}

	withGrowth := func(p models.Params, t float64) *models.Deterministic {
		r1, r2 := models.DefaultGrowth.Rates(t)
		p.Mu1 += r1
		p.Mu3 += r2
		return models.NewDeterministic(p)
	}

	DescribeTable("selects the regime by time",
		func(t float64, want models.Regime) {
			Expect(models.SelectRegime(t, 88)).To(Equal(want))
		},
		Entry("start", 0.0, models.PreCutoff),
		Entry("just before", 87.9999, models.PreCutoff),
		Entry("at cutoff", 88.0, models.PostCutoff),
		Entry("after", 120.0, models.PostCutoff),
	)

	It("reduces to the deterministic equations plus growth without noise", func() {
		m := models.NewStochastic(regimes, models.DefaultGrowth, 0.2, models.ZeroNoise{})
		for _, t := range []float64{0, 40, 87.999} {
			got, err := m.Derive(x, t)
			Expect(err).NotTo(HaveOccurred())
			want, _ := withGrowth(pre, t).Derive(x, t)
			Expect(got).To(Equal(want))
		}
		for _, t := range []float64{88, 100} {
			got, err := m.Derive(x, t)
			Expect(err).NotTo(HaveOccurred())
			want, _ := withGrowth(post, t).Derive(x, t)
			Expect(got).To(Equal(want))
		}
	})

	It("changes behavior exactly at the cutoff", func() {
		m := models.NewStochastic(regimes, models.DefaultGrowth, 0, nil)
		before, _ := m.Derive(x, 88-1e-9)
		at, _ := m.Derive(x, 88)
		Expect(before[models.B]).NotTo(BeNumerically("~", at[models.B], 1))
	})

	It("blends both regimes in the step that straddles the cutoff", func() {
		step := func(rs models.RegimeSet) dynamo.State {
			m := models.NewStochastic(rs, models.DefaultGrowth, 0.2, models.ZeroNoise{})
			next, err := integrators.NewRK4().Step(m, x, 87.9, 0.2)
			Expect(err).NotTo(HaveOccurred())
			return next
		}
		mixed := step(regimes)
		allPre := step(models.RegimeSet{Pre: pre, Post: pre, Cutoff: 88})
		allPost := step(models.RegimeSet{Pre: post, Post: post, Cutoff: 88})

		Expect(mixed[models.B]).NotTo(BeNumerically("~", allPre[models.B], 1))
		Expect(mixed[models.B]).NotTo(BeNumerically("~", allPost[models.B], 1))
		Expect(mixed[models.V1]).NotTo(BeNumerically("~", allPre[models.V1], 1))
		Expect(mixed[models.V1]).NotTo(BeNumerically("~", allPost[models.V1], 1))
	})

	It("draws one normal per flow term occurrence", func() {
		src := &countingSource{}
		m := models.NewStochastic(regimes, models.DefaultGrowth, 0.2, src)
		_, err := m.Derive(x, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(src.draws).To(Equal(40))
	})

	It("scales the noise variance linearly with the step", func() {
		variance := func(dt float64) float64 {
			m := models.NewStochastic(regimes, models.DefaultGrowth, dt, rand.New(rand.NewSource(7)))
			samples := make([]float64, 20000)
			for i := range samples {
				dx, err := m.Derive(x, 10)
				Expect(err).NotTo(HaveOccurred())
				samples[i] = dx[models.B]
			}
			return stat.Variance(samples, nil)
		}
		ratio := variance(0.2) / variance(0.05)
		Expect(ratio).To(BeNumerically("~", 4, 0.4))
	})

	It("is reproducible for a fixed seed", func() {
		run := func() dynamo.State {
			m := models.NewStochastic(regimes, models.DefaultGrowth, 0.2, rand.New(rand.NewSource(42)))
			grid, err := dynamo.UniformGrid(0, 20, 0.2)
			Expect(err).NotTo(HaveOccurred())
			return solve(m, x, grid).Final()
		}
		Expect(run()).To(Equal(run()))
	})

	It("rejects an empty country", func() {
		m := models.NewStochastic(regimes, models.DefaultGrowth, 0.2, models.ZeroNoise{})
		_, err := m.Derive(dynamo.State{1, 1, 1, 0, 0, 0}, 0)
		Expect(err).To(MatchError(dynamo.ErrDegenerateState))
	})
})

var _ = Describe("GrowthLaw", func() {
	It("declines linearly", func() {
		r1, r2 := models.DefaultGrowth.Rates(0)
		Expect(r1).To(BeNumerically("~", 0.018, 1e-15))
		Expect(r2).To(BeNumerically("~", 0.022, 1e-15))

		r1, r2 = models.DefaultGrowth.Rates(100)
		Expect(r1).To(BeNumerically("~", 0.008, 1e-12))
		Expect(r2).To(BeNumerically("~", 0.012, 1e-12))
	})
})

var _ = Describe("Params", func() {
	It("reads and writes by name", func() {
		p := models.Symmetric(0.01, 0.5, 0.1, 0.01, 0.02)
		Expect(p.SetParam("phi3", 0.03)).To(Succeed())
		v, ok := p.Get("phi3")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(0.03))
		Expect(p.Phi3).To(Equal(0.03))
		Expect(p.Names()).To(HaveLen(24))
	})

	It("rejects unknown names", func() {
		p := models.Params{}
		Expect(p.SetParam("omega", 1)).To(MatchError(models.ErrUnknownParam))
	})

	It("bounds rates and probabilities", func() {
		p := models.Symmetric(0.01, 0.5, 0.1, 0.01, 0.02)
		Expect(p.Validate()).To(Succeed())

		p.P2 = 1.5
		Expect(p.Validate()).To(MatchError(dynamo.ErrParameterBounds))

		p = models.Symmetric(0.01, 0.5, 0.1, 0.01, 0.02)
		p.Gamma4 = -0.1
		Expect(p.Validate()).To(MatchError(dynamo.ErrParameterBounds))
	})
})
