package synthetic

import (
	"math"
	"testing"

	"github.com/scanplan/backend/internal/domain"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		if a.RetailPrice() != b.RetailPrice() {
			t.Fatal("same seed produced different retail prices")
		}
		if a.QuantityDiscount() != b.QuantityDiscount() {
			t.Fatal("same seed produced different quantity discounts")
		}
	}
}

func TestRetailPriceRange(t *testing.T) {
	g := New(1)
	for i := 0; i < 200; i++ {
		p := g.RetailPrice()
		if p < 14.99 || p > 64.99 {
			t.Fatalf("RetailPrice %v outside $14.99-$64.99", p)
		}
		cents := math.Round(math.Mod(p, 1) * 100)
		if cents != 99 {
			t.Fatalf("RetailPrice %v does not end in .99", p)
		}
	}
}

func TestRetailerMarginRange(t *testing.T) {
	g := New(1)
	for i := 0; i < 200; i++ {
		m := g.RetailerMargin()
		if m < 18 || m > 32 {
			t.Fatalf("RetailerMargin %v outside 18-32", m)
		}
	}
}

func TestTrendShape(t *testing.T) {
	g := New(7)
	trend := g.Trend(420)

	if len(trend) != 12 {
		t.Fatalf("trend has %d points; want 12", len(trend))
	}
	for i, tp := range trend {
		if tp.Month != domain.MonthKeys[i] {
			t.Errorf("trend[%d].Month = %q; want %q", i, tp.Month, domain.MonthKeys[i])
		}
		if tp.Value <= 0 {
			t.Errorf("trend[%d].Value = %v; want positive", i, tp.Value)
		}
	}
}

func TestTrendFromWeeklyBuckets(t *testing.T) {
	// 52 weeks of exactly 1.0 fold into months of 4 or 5 weeks.
	weekly := make([]float64, 52)
	for i := range weekly {
		weekly[i] = 1
	}

	trend := TrendFromWeekly(weekly)
	var total float64
	for _, tp := range trend {
		if tp.Value != 4 && tp.Value != 5 {
			t.Errorf("month %s got %v weeks; want 4 or 5", tp.Month, tp.Value)
		}
		total += tp.Value
	}
	if total != 52 {
		t.Errorf("trend total = %v; want 52", total)
	}
}
