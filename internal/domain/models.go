// internal/domain/models.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekLayout is the wire format for scan week dates.
const WeekLayout = "2006-01-02"

// TrendPoint is one month of a cached 12-month reference sales curve.
type TrendPoint struct {
	Month string  `json:"month"` // three-letter key, jan..dec
	Value float64 `json:"value"`
}

// ScanEvent is a single retailer price-discount promotion: one week, one
// dollar amount per bottle, plus the derived metrics cached the first time
// the event passes through the projection engine.
type ScanEvent struct {
	Week       string  `json:"week"` // WeekLayout formatted
	ScanAmount float64 `json:"scan_amount"`

	ProjectedScan   float64 `json:"projected_scan"`
	ProjectedRetail float64 `json:"projected_retail"`
	QD              float64 `json:"qd"`
	RetailerMargin  float64 `json:"retailer_margin"`
	Loyalty         float64 `json:"loyalty"`
	ProjectedVolume float64 `json:"projected_volume"`
	VolumeLift      float64 `json:"volume_lift"`
	VolumeLiftPct   float64 `json:"volume_lift_pct"`

	// Projected marks the cached metrics as filled. Materialization reads
	// it to decide between reuse and a fresh projection.
	Projected bool `json:"projected,omitempty"`
}

// ProductEntry is a product inside a cluster: its scheduled scans, the
// growth rate applied to trend values, and the trend series itself. The
// trend is generated once and kept for the life of the entry so that
// projections stay stable across edits.
type ProductEntry struct {
	Product    string       `json:"product"`
	GrowthRate float64      `json:"growth_rate"`
	Trend      []TrendPoint `json:"trend,omitempty"` // nil until generated
	Scans      []ScanEvent  `json:"scans"`
}

// HasWeek reports whether a scan is already scheduled for the given week.
func (p *ProductEntry) HasWeek(week string) bool {
	for _, s := range p.Scans {
		if s.Week == week {
			return true
		}
	}
	return false
}

// TrendValue returns the cached trend value for a calendar month, or 0
// when the series is absent or has no bucket for that month.
func (p *ProductEntry) TrendValue(month time.Month) float64 {
	key := MonthKey(month)
	for _, tp := range p.Trend {
		if strings.EqualFold(tp.Month, key) {
			return tp.Value
		}
	}
	return 0
}

// Cluster groups one market and one account with the products promoted
// there. The cluster store owns these exclusively.
type Cluster struct {
	ID        string         `json:"id"`
	Market    string         `json:"market"`
	Account   string         `json:"account"`
	Products  []ProductEntry `json:"products"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PlannerRow is the flattened unit the dashboard and exports operate on:
// one row per (cluster, product, scan event).
type PlannerRow struct {
	ID        string `json:"id"` // {clusterID}|{productIdx}|{scanIdx}
	ClusterID string `json:"cluster_id"`
	Market    string `json:"market"`
	Account   string `json:"account"`
	Product   string `json:"product"`
	Brand     string `json:"brand"`
	Month     string `json:"month"` // full month name derived from the week
	Week      string `json:"week"`
	Status    Status `json:"status"`

	ScanAmount      float64 `json:"scan_amount"`
	ProjectedScan   float64 `json:"projected_scan"`
	ProjectedRetail float64 `json:"projected_retail"`
	QD              float64 `json:"qd"`
	RetailerMargin  float64 `json:"retailer_margin"`
	Loyalty         float64 `json:"loyalty"`
	ProjectedVolume float64 `json:"projected_volume"`
	VolumeLift      float64 `json:"volume_lift"`
	VolumeLiftPct   float64 `json:"volume_lift_pct"`
}

// SummaryRow is a market x brand rollup of projected scan dollars by month.
type SummaryRow struct {
	ID     string             `json:"id"` // {market}|{brand}
	Market string             `json:"market"`
	Brand  string             `json:"brand"`
	Months map[string]float64 `json:"months"` // jan..dec
	Total  float64            `json:"total"`
}

// MonthKeys lists the twelve summary bucket keys in calendar order.
var MonthKeys = [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// MonthKey returns the lowercase three-letter bucket key for a month.
func MonthKey(m time.Month) string {
	return MonthKeys[int(m)-1]
}

// RowID builds the planner row identity. It is stable only while the
// product/scan ordering of the cluster is unchanged.
func RowID(clusterID string, productIdx, scanIdx int) string {
	return fmt.Sprintf("%s|%d|%d", clusterID, productIdx, scanIdx)
}

// ParseWeek parses a scan week date string.
func ParseWeek(week string) (time.Time, error) {
	t, err := time.Parse(WeekLayout, week)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: week}
	}
	return t, nil
}

// BrandOf derives a best-effort brand from a product display name. Display
// names follow the "Supplier - Brand Expression" convention, so the brand
// is the token right after the first " - " separator. Names without the
// separator fall back to their first token.
func BrandOf(product string) string {
	name := product
	if _, tail, ok := strings.Cut(product, " - "); ok {
		name = tail
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return product
	}
	return fields[0]
}

// Clone returns a deep copy of the cluster so callers never hold
// store-owned slices.
func (c *Cluster) Clone() Cluster {
	out := *c
	out.Products = CloneProducts(c.Products)
	return out
}

// CloneProducts deep-copies a product entry list.
func CloneProducts(products []ProductEntry) []ProductEntry {
	if products == nil {
		return nil
	}
	out := make([]ProductEntry, len(products))
	for i, p := range products {
		cp := p
		if p.Trend != nil {
			cp.Trend = make([]TrendPoint, len(p.Trend))
			copy(cp.Trend, p.Trend)
		}
		if p.Scans != nil {
			cp.Scans = make([]ScanEvent, len(p.Scans))
			copy(cp.Scans, p.Scans)
		}
		out[i] = cp
	}
	return out
}
