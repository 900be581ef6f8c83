package store

import "github.com/scanplan/backend/internal/domain"

// trendMonthlyBase is the monthly case volume the synthetic trend curves
// move around while no real analytics feed is wired in.
const trendMonthlyBase = 420.0

// enrich fills the generate-once data on a cluster: each product's trend
// series (never regenerated once present, so projections stay stable
// across edits) and each scan's cached metrics. Placeholder metrics
// (retail price, QD, margin, loyalty) are randomized stand-ins drawn a
// single time per scan; projection outputs are cached so materialization
// can reuse them. Scans whose week does not parse keep Projected=false
// and are left for the materializer to skip.
func (s *ClusterStore) enrich(c *domain.Cluster) {
	for pi := range c.Products {
		entry := &c.Products[pi]
		if entry.Trend == nil {
			entry.Trend = s.gen.Trend(trendMonthlyBase)
		}

		for si := range entry.Scans {
			scan := &entry.Scans[si]
			if scan.Projected {
				continue
			}

			if scan.ProjectedRetail == 0 {
				scan.ProjectedRetail = s.gen.RetailPrice()
			}
			if scan.QD == 0 {
				scan.QD = s.gen.QuantityDiscount()
			}
			if scan.RetailerMargin == 0 {
				scan.RetailerMargin = s.gen.RetailerMargin()
			}
			if scan.Loyalty == 0 {
				scan.Loyalty = s.gen.Loyalty()
			}

			res, err := s.engine.Project(entry, scan.Week, scan.ScanAmount)
			if err != nil {
				continue
			}
			scan.ProjectedScan = res.ProjectedScan
			scan.ProjectedVolume = res.ProjectedVolume
			scan.VolumeLift = res.VolumeLift
			scan.VolumeLiftPct = res.VolumeLiftPct
			scan.Projected = true
		}
	}
}
