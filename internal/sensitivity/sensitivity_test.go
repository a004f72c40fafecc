package sensitivity_test

import (
	"context"
	"errors"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

var _ = ginkgo.Describe("Run", func() {
	ginkgo.It("sweeps the growth rate around its default", func() {
		r, err := sensitivity.Run(tokenomics.SystemParameters, "monthlyGrowthRate", 20)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())

		gomega.Expect(r.Metric).Should(gomega.Equal("totalCU"))
		gomega.Expect(r.Variations).Should(gomega.HaveLen(11))
		gomega.Expect(r.Variations[0].ParamValue).Should(gomega.BeNumerically("~", 0.064, 1e-12))
		gomega.Expect(r.Variations[10].ParamValue).Should(gomega.BeNumerically("~", 0.096, 1e-12))
		gomega.Expect(r.Baseline).Should(gomega.BeNumerically("~", 2518170.1168189803, 1e-3))

		for i := 1; i < len(r.Variations); i++ {
			gomega.Expect(r.Variations[i].ParamValue).Should(gomega.BeNumerically(">", r.Variations[i-1].ParamValue))
			gomega.Expect(r.Variations[i].Value).Should(gomega.BeNumerically(">", r.Variations[i-1].Value))
		}
		gomega.Expect(r.Impacts).Should(gomega.HaveLen(len(sensitivity.KeyMetrics)))
		gomega.Expect(r.Impacts["totalCU"]).Should(gomega.BeNumerically(">", 15))
		gomega.Expect(r.Impacts["totalCU"]).Should(gomega.BeNumerically("<", 25))
	})

	ginkgo.It("reports each point's full metrics", func() {
		r, err := sensitivity.Run(tokenomics.FeeStructure, "transactionFee", 50)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(r.Metric).Should(gomega.Equal("monthlyRevenue"))
		for _, p := range r.Variations {
			gomega.Expect(p.Metrics.MonthlyRevenue).Should(gomega.Equal(p.Value))
		}
	})

	ginkgo.It("tracks one metric per section", func() {
		gomega.Expect(sensitivity.TrackedMetric(tokenomics.MarketDynamics)).Should(gomega.Equal("sstbPrice"))
		gomega.Expect(sensitivity.TrackedMetric(tokenomics.ProviderEconomics)).Should(gomega.Equal("providerROI"))
	})

	ginkgo.It("produces identical points for a zero range", func() {
		r, err := sensitivity.Run(tokenomics.MarketDynamics, "priceSensitivity", 0)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		for _, p := range r.Variations {
			gomega.Expect(p.ParamValue).Should(gomega.Equal(1.2))
			gomega.Expect(p.Value).Should(gomega.Equal(r.Baseline))
		}
		for name, impact := range r.Impacts {
			gomega.Expect(impact).Should(gomega.BeZero(), name)
		}
	})

	ginkgo.It("treats a negative range like a positive one", func() {
		neg, err := sensitivity.Run(tokenomics.MarketDynamics, "collateralRatio", -30)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		pos, err := sensitivity.Run(tokenomics.MarketDynamics, "collateralRatio", 30)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(neg.Impacts).Should(gomega.Equal(pos.Impacts))
		gomega.Expect(neg.Variations[0].ParamValue).Should(gomega.BeNumerically("<", neg.Variations[10].ParamValue))
	})

	ginkgo.It("rounds the milestone month", func() {
		r, err := sensitivity.Run(tokenomics.SystemParameters, "milestone1Month", 50)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(r.Variations[0].ParamValue).Should(gomega.Equal(6.0))
		gomega.Expect(r.Variations[10].ParamValue).Should(gomega.Equal(18.0))
		for _, p := range r.Variations {
			gomega.Expect(p.ParamValue).Should(gomega.Equal(float64(int(p.ParamValue))))
		}
	})

	ginkgo.It("rejects unknown sections", func() {
		_, err := sensitivity.Run("tokenSupply", "total", 10)
		gomega.Expect(errors.Is(err, tokenomics.ErrUnknownCategory)).Should(gomega.BeTrue())
	})

	ginkgo.It("rejects non-numeric parameters", func() {
		_, err := sensitivity.Run(tokenomics.ProviderEconomics, "providerType", 10)
		gomega.Expect(errors.Is(err, tokenomics.ErrNonNumericParameter)).Should(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("Analyzer", func() {
	ginkgo.It("analyzes around custom parameters", func() {
		base := tokenomics.DefaultParameters()
		base.Provider.SetupCost = 20000
		a := sensitivity.Analyzer{Base: base, Months: 24, Steps: 4, Workers: 2}

		r, err := a.Analyze(context.Background(), tokenomics.ProviderEconomics, "setupCost", 10)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(r.Variations).Should(gomega.HaveLen(5))
		gomega.Expect(r.Variations[0].ParamValue).Should(gomega.BeNumerically("~", 18000, 1e-6))
		gomega.Expect(r.Baseline).Should(gomega.Equal(tokenomics.Calculate(base, 24).ProviderROI))

		// Higher setup cost means a lower return.
		gomega.Expect(r.Variations[0].Value).Should(gomega.BeNumerically(">", r.Variations[4].Value))
	})

	ginkgo.It("is deterministic across worker counts", func() {
		one := sensitivity.Analyzer{Base: tokenomics.DefaultParameters(), Workers: 1}
		many := sensitivity.Analyzer{Base: tokenomics.DefaultParameters(), Workers: 8}
		a, err := one.Analyze(context.Background(), tokenomics.MarketDynamics, "demandElasticity", 25)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		b, err := many.Analyze(context.Background(), tokenomics.MarketDynamics, "demandElasticity", 25)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(a).Should(gomega.Equal(b))
	})

	ginkgo.It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := sensitivity.Analyzer{Base: tokenomics.DefaultParameters()}
		_, err := a.Analyze(ctx, tokenomics.SystemParameters, "initialCUGrowth", 10)
		gomega.Expect(errors.Is(err, context.Canceled)).Should(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("Result", func() {
	ginkgo.It("picks the largest impact, first listed on ties", func() {
		r := &sensitivity.Result{Impacts: map[string]float64{
			"totalCU": 5, "sstbPrice": 9, "tvl": 9, "providerROI": 1, "monthlyRevenue": 0,
		}}
		gomega.Expect(r.MostSensitive()).Should(gomega.Equal("sstbPrice"))
	})
})

var _ = ginkgo.Describe("Grid", func() {
	ginkgo.It("includes both endpoints", func() {
		g := sensitivity.Grid(10, 20, 10)
		gomega.Expect(g).Should(gomega.HaveLen(11))
		gomega.Expect(g[0]).Should(gomega.BeNumerically("~", 8, 1e-12))
		gomega.Expect(g[10]).Should(gomega.BeNumerically("~", 12, 1e-12))
	})

	ginkgo.It("orders negative values ascending", func() {
		g := sensitivity.Grid(-0.1, 50, 2)
		gomega.Expect(g[0]).Should(gomega.BeNumerically("~", -0.15, 1e-12))
		gomega.Expect(g[2]).Should(gomega.BeNumerically("~", -0.05, 1e-12))
	})
})
