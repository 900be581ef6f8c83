// internal/planner/rows.go
package planner

import (
	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/projection"
)

// BuildRows flattens a cluster into one planner row per (product, scan)
// pair. Products with no scans and scans with unparseable week dates are
// skipped, not errors: a cluster under active edit legitimately carries
// incomplete entries. The walk is a pure read of the cluster; cached
// projection outputs are reused when present and computed on the fly
// otherwise, never written back.
func BuildRows(c domain.Cluster, eng *projection.Engine) []domain.PlannerRow {
	rows := make([]domain.PlannerRow, 0)

	for pi := range c.Products {
		entry := &c.Products[pi]
		if len(entry.Scans) == 0 {
			continue
		}

		for si, scan := range entry.Scans {
			date, err := domain.ParseWeek(scan.Week)
			if err != nil {
				continue
			}

			row := domain.PlannerRow{
				ID:        domain.RowID(c.ID, pi, si),
				ClusterID: c.ID,
				Market:    c.Market,
				Account:   c.Account,
				Product:   entry.Product,
				Brand:     domain.BrandOf(entry.Product),
				Month:     date.Month().String(),
				Week:      scan.Week,
				Status:    c.Status,

				ScanAmount:      scan.ScanAmount,
				ProjectedRetail: scan.ProjectedRetail,
				QD:              scan.QD,
				RetailerMargin:  scan.RetailerMargin,
				Loyalty:         scan.Loyalty,
			}

			if scan.Projected {
				row.ProjectedScan = scan.ProjectedScan
				row.ProjectedVolume = scan.ProjectedVolume
				row.VolumeLift = scan.VolumeLift
				row.VolumeLiftPct = scan.VolumeLiftPct
			} else if res, err := eng.Project(entry, scan.Week, scan.ScanAmount); err == nil {
				row.ProjectedScan = res.ProjectedScan
				row.ProjectedVolume = res.ProjectedVolume
				row.VolumeLift = res.VolumeLift
				row.VolumeLiftPct = res.VolumeLiftPct
			}

			rows = append(rows, row)
		}
	}

	return rows
}
