package summary

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/scanplan/backend/internal/domain"
)

func TestAggregateRollup(t *testing.T) {
	rows := []domain.PlannerRow{
		{Market: "New York", Brand: "Glenfiddich", Month: "March", ProjectedScan: 1260},
		{Market: "New York", Brand: "Glenfiddich", Month: "March", ProjectedScan: 300},
	}

	out := Aggregate(rows)
	if len(out) != 1 {
		t.Fatalf("Aggregate produced %d rows; want 1", len(out))
	}

	row := out[0]
	if row.ID != "New York|Glenfiddich" {
		t.Errorf("row.ID = %q; want New York|Glenfiddich", row.ID)
	}
	if row.Months["mar"] != 1560 {
		t.Errorf("months.mar = %v; want 1560", row.Months["mar"])
	}
	if row.Total != 1560 {
		t.Errorf("total = %v; want 1560", row.Total)
	}
}

func TestAggregateZeroMonthsPresent(t *testing.T) {
	out := Aggregate([]domain.PlannerRow{
		{Market: "New York", Brand: "Reyka", Month: "July", ProjectedScan: 10},
	})

	if len(out[0].Months) != 12 {
		t.Fatalf("summary row has %d month buckets; want 12", len(out[0].Months))
	}
	if out[0].Months["jan"] != 0 {
		t.Errorf("months.jan = %v; want 0", out[0].Months["jan"])
	}
}

func TestAggregateSplitsByMarketAndBrand(t *testing.T) {
	rows := []domain.PlannerRow{
		{Market: "New York", Brand: "Glenfiddich", Month: "March", ProjectedScan: 100},
		{Market: "New Jersey", Brand: "Glenfiddich", Month: "March", ProjectedScan: 200},
		{Market: "New York", Brand: "Hendricks", Month: "March", ProjectedScan: 300},
	}

	out := Aggregate(rows)
	if len(out) != 3 {
		t.Fatalf("Aggregate produced %d rows; want 3", len(out))
	}
	// sorted by id
	if out[0].ID != "New Jersey|Glenfiddich" || out[2].ID != "New York|Hendricks" {
		t.Errorf("unexpected ordering: %q, %q, %q", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	rows := []domain.PlannerRow{
		{Market: "New York", Brand: "Glenfiddich", Month: "January", ProjectedScan: 10},
		{Market: "New York", Brand: "Glenfiddich", Month: "February", ProjectedScan: 20},
		{Market: "New Jersey", Brand: "Reyka", Month: "March", ProjectedScan: 30},
		{Market: "Connecticut", Brand: "Hendricks", Month: "April", ProjectedScan: 40},
		{Market: "New York", Brand: "Reyka", Month: "May", ProjectedScan: 50},
	}

	want := Aggregate(rows)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.PlannerRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed the rollup:\ngot  %+v\nwant %+v", i, got, want)
		}
	}
}

func TestAggregateIgnoresUnknownMonths(t *testing.T) {
	out := Aggregate([]domain.PlannerRow{
		{Market: "New York", Brand: "Reyka", Month: "March", ProjectedScan: 100},
		{Market: "New York", Brand: "Reyka", Month: "", ProjectedScan: 999},
		{Market: "New York", Brand: "Reyka", Month: "Smarch", ProjectedScan: 999},
	})

	if out[0].Total != 100 {
		t.Errorf("total = %v; want 100 (unknown months ignored)", out[0].Total)
	}
}
