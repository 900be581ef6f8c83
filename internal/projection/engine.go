// internal/projection/engine.go
package projection

import (
	"math"

	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/domain"
)

// maxLiftPct caps the simplified elasticity model: a scan can lift weekly
// volume by at most 10%.
const maxLiftPct = 0.10

// Result carries the derived metrics for one (product, week, scan) triple.
type Result struct {
	ProjectedMonthly float64
	ScanPerCase      float64 // scan dollars per 9L case equivalent
	ProjectedScan    float64
	ProjectedVolume  float64
	VolumeLift       float64
	VolumeLiftPct    float64
}

// Engine computes projected scan dollars and volume lift for scan events.
// It is stateless apart from the catalog lookups.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a projection engine backed by the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Project derives the scan metrics for one scan event. The caller must
// have ensured the entry's trend series is generated; an absent trend
// yields zero-valued projections rather than an error. The only failure
// mode is an unparseable week date.
func (e *Engine) Project(entry *domain.ProductEntry, week string, scanAmount float64) (Result, error) {
	date, err := domain.ParseWeek(week)
	if err != nil {
		return Result{}, err
	}

	trendValue := entry.TrendValue(date.Month())

	var res Result
	res.ProjectedMonthly = roundFloat(trendValue*(1+entry.GrowthRate), 1)
	res.ScanPerCase = scanAmount * e.catalog.CaseRatio(entry.Product)
	res.ProjectedScan = res.ProjectedMonthly * res.ScanPerCase

	baselineWeekly := trendValue / 4
	liftPct := math.Min(maxLiftPct, scanAmount/10)
	res.ProjectedVolume = math.Round(baselineWeekly * (1 + liftPct))
	res.VolumeLift = res.ProjectedVolume - baselineWeekly
	res.VolumeLiftPct = roundFloat(liftPct*100, 1)

	return res, nil
}

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
