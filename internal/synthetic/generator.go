// internal/synthetic/generator.go
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/scanplan/backend/internal/domain"
)

// Generator produces plausible stand-in metrics where a real analytics
// feed would normally supply them: retail price, quantity discounts,
// retailer margin, loyalty dollars, and the 12-month trend curve derived
// from 52 weekly samples. All output is driven by a single seeded source
// so fixture runs are reproducible.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. A zero seed falls back to the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// RetailPrice returns a shelf price in the $14.99-$64.99 range, ending in .99.
func (g *Generator) RetailPrice() float64 {
	dollars := 14 + g.rng.Intn(51)
	return float64(dollars) + 0.99
}

// QuantityDiscount returns per-case quantity-discount dollars, 0-18.
func (g *Generator) QuantityDiscount() float64 {
	return round2(g.rng.Float64() * 18)
}

// RetailerMargin returns a margin percentage between 18 and 32.
func (g *Generator) RetailerMargin() float64 {
	return round1(18 + g.rng.Float64()*14)
}

// Loyalty returns loyalty program dollars per bottle, 0-3.
func (g *Generator) Loyalty() float64 {
	return round2(g.rng.Float64() * 3)
}

// WeeklySamples produces n weekly volume samples around a base level with
// mild noise, the raw input a Nielsen-style feed would deliver.
func (g *Generator) WeeklySamples(n int, base float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		noise := 0.8 + g.rng.Float64()*0.4
		samples[i] = base * noise
	}
	return samples
}

// TrendFromWeekly folds 52 weekly samples into a 12-month trend series.
// Week i lands in month i*12/52; each month's value is the sum of its
// weeks, rounded to one decimal.
func TrendFromWeekly(weekly []float64) []domain.TrendPoint {
	sums := make([]float64, 12)
	for i, v := range weekly {
		m := i * 12 / len(weekly)
		if m > 11 {
			m = 11
		}
		sums[m] += v
	}

	trend := make([]domain.TrendPoint, 12)
	for m, key := range domain.MonthKeys {
		trend[m] = domain.TrendPoint{Month: key, Value: round1(sums[m])}
	}
	return trend
}

// Trend generates a full 12-month trend series from 52 synthetic weekly
// samples around the given monthly base volume.
func (g *Generator) Trend(monthlyBase float64) []domain.TrendPoint {
	return TrendFromWeekly(g.WeeklySamples(52, monthlyBase/4.33))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
