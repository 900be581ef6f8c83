// internal/catalog/catalog.go
package catalog

import (
	"sort"
	"time"
)

// DefaultCaseRatio converts dollars per bottle to dollars per 9L case
// equivalent when a product has no pack spec on file (12x750ml standard).
const DefaultCaseRatio = 12.0

// PackSpec describes how a product's pack translates to 9L case equivalents.
type PackSpec struct {
	PackSize             string  `json:"pack_size" db:"pack_size"` // e.g. "6x750"
	PackBottles          int     `json:"pack_bottles" db:"pack_bottles"`
	CaseEquivalentFactor float64 `json:"case_equivalent_factor" db:"case_equivalent_factor"`
}

// Catalog is the read-only reference data the planner runs against.
type Catalog struct {
	products map[string]PackSpec
	markets  []string
	accounts []string
}

// New builds a catalog from already-loaded reference data.
func New(products map[string]PackSpec, markets, accounts []string) *Catalog {
	if products == nil {
		products = map[string]PackSpec{}
	}
	return &Catalog{
		products: products,
		markets:  markets,
		accounts: accounts,
	}
}

// CaseRatio returns bottles-per-pack divided by the case-equivalence factor
// for a product, looked up by exact display name. Unknown products fall
// back to DefaultCaseRatio rather than erroring.
func (c *Catalog) CaseRatio(product string) float64 {
	spec, ok := c.products[product]
	if !ok || spec.CaseEquivalentFactor == 0 {
		return DefaultCaseRatio
	}
	return float64(spec.PackBottles) / spec.CaseEquivalentFactor
}

// Lookup returns the pack spec for a product display name.
func (c *Catalog) Lookup(product string) (PackSpec, bool) {
	spec, ok := c.products[product]
	return spec, ok
}

// Products lists product display names in sorted order.
func (c *Catalog) Products() []string {
	names := make([]string, 0, len(c.products))
	for name := range c.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Markets lists the fixed market enumeration.
func (c *Catalog) Markets() []string {
	out := make([]string, len(c.markets))
	copy(out, c.markets)
	return out
}

// Accounts lists the known retailer accounts.
func (c *Catalog) Accounts() []string {
	out := make([]string, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// IsMarket reports whether the value is part of the market enumeration.
func (c *Catalog) IsMarket(market string) bool {
	for _, m := range c.markets {
		if m == market {
			return true
		}
	}
	return false
}

// Weeks returns the 52 weekly calendar buckets for a year, anchored on the
// first Monday.
func Weeks(year int) []time.Time {
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}

	weeks := make([]time.Time, 52)
	for i := range weeks {
		weeks[i] = day
		day = day.AddDate(0, 0, 7)
	}
	return weeks
}
