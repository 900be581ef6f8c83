// internal/summary/aggregate.go
package summary

import (
	"sort"
	"strings"

	"github.com/scanplan/backend/internal/domain"
)

// Aggregate reduces planner rows into market x brand rollups of projected
// scan dollars by month. Accumulation is keyed, never positional, so any
// permutation of the input produces the same rollups. Rows whose month
// does not map to a calendar bucket contribute nothing to the month sums.
func Aggregate(rows []domain.PlannerRow) []domain.SummaryRow {
	groups := make(map[string]*domain.SummaryRow)

	for _, row := range rows {
		key := row.Market + "|" + row.Brand
		group, ok := groups[key]
		if !ok {
			months := make(map[string]float64, 12)
			for _, mk := range domain.MonthKeys {
				months[mk] = 0
			}
			group = &domain.SummaryRow{
				ID:     key,
				Market: row.Market,
				Brand:  row.Brand,
				Months: months,
			}
			groups[key] = group
		}

		mk := monthBucket(row.Month)
		if mk == "" {
			continue
		}
		group.Months[mk] += row.ProjectedScan
	}

	out := make([]domain.SummaryRow, 0, len(groups))
	for _, group := range groups {
		for _, mk := range domain.MonthKeys {
			group.Total += group.Months[mk]
		}
		out = append(out, *group)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// monthBucket maps a month name to its three-letter bucket key,
// case-insensitively. Unknown names return "".
func monthBucket(month string) string {
	if len(month) < 3 {
		return ""
	}
	key := strings.ToLower(month[:3])
	for _, mk := range domain.MonthKeys {
		if key == mk {
			return mk
		}
	}
	return ""
}
