package domain

import (
	"errors"
	"testing"
	"time"
)

func TestBrandOf(t *testing.T) {
	cases := []struct {
		product string
		want    string
	}{
		{"William Grant - Glenfiddich 12yr", "Glenfiddich"},
		{"William Grant - Monkey Shoulder", "Monkey"},
		{"William Grant - Tullamore DEW Original", "Tullamore"},
		{"Hendricks Gin", "Hendricks"},
		{"Reyka", "Reyka"},
		{"", ""},
	}

	for _, c := range cases {
		if got := BrandOf(c.product); got != c.want {
			t.Errorf("BrandOf(%q) = %q; want %q", c.product, got, c.want)
		}
	}
}

func TestParseWeek(t *testing.T) {
	wk, err := ParseWeek("2026-03-02")
	if err != nil {
		t.Fatalf("ParseWeek returned error: %v", err)
	}
	if wk.Month() != time.March || wk.Day() != 2 {
		t.Errorf("ParseWeek = %v; want 2026-03-02", wk)
	}

	_, err = ParseWeek("03/02/2026")
	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("ParseWeek error = %T; want *InvalidDateError", err)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(time.January); got != "jan" {
		t.Errorf("MonthKey(January) = %q; want jan", got)
	}
	if got := MonthKey(time.December); got != "dec" {
		t.Errorf("MonthKey(December) = %q; want dec", got)
	}
}

func TestRowID(t *testing.T) {
	if got := RowID("abc", 1, 3); got != "abc|1|3" {
		t.Errorf("RowID = %q; want abc|1|3", got)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"draft", StatusDraft, true},
		{"Review", StatusReview, true},
		{" APPROVED ", StatusApproved, true},
		{"published", "", false},
	}

	for _, c := range cases {
		got, ok := ParseStatus(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseStatus(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusReview.Label(); got != "In Review" {
		t.Errorf("StatusReview.Label() = %q; want In Review", got)
	}
	if got := Status("bogus").Label(); got != "Draft" {
		t.Errorf("unknown status label = %q; want Draft", got)
	}
}

func TestParseRoleAndMode(t *testing.T) {
	if r, ok := ParseRole("Finance"); !ok || r != RoleFinance {
		t.Errorf("ParseRole(Finance) = (%q, %v)", r, ok)
	}
	if _, ok := ParseRole("auditor"); ok {
		t.Error("ParseRole(auditor) should fail")
	}
	if m, ok := ParseMode("FORECAST"); !ok || m != ModeForecast {
		t.Errorf("ParseMode(FORECAST) = (%q, %v)", m, ok)
	}
	if _, ok := ParseMode("plan"); ok {
		t.Error("ParseMode(plan) should fail")
	}
}

func TestHasWeek(t *testing.T) {
	entry := ProductEntry{Scans: []ScanEvent{{Week: "2026-03-02"}, {Week: "2026-03-09"}}}
	if !entry.HasWeek("2026-03-09") {
		t.Error("expected HasWeek to find scheduled week")
	}
	if entry.HasWeek("2026-03-16") {
		t.Error("expected HasWeek to miss unscheduled week")
	}
}

func TestTrendValue(t *testing.T) {
	entry := ProductEntry{Trend: []TrendPoint{{Month: "jan", Value: 10}, {Month: "Mar", Value: 33.5}}}
	if got := entry.TrendValue(time.March); got != 33.5 {
		t.Errorf("TrendValue(March) = %v; want 33.5", got)
	}
	if got := entry.TrendValue(time.July); got != 0 {
		t.Errorf("TrendValue(July) = %v; want 0", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := Cluster{
		ID: "c1",
		Products: []ProductEntry{{
			Product: "Acme - Foo",
			Trend:   []TrendPoint{{Month: "jan", Value: 1}},
			Scans:   []ScanEvent{{Week: "2026-01-05", ScanAmount: 1}},
		}},
	}

	clone := c.Clone()
	clone.Products[0].Scans[0].ScanAmount = 99
	clone.Products[0].Trend[0].Value = 99

	if c.Products[0].Scans[0].ScanAmount != 1 {
		t.Error("clone shares scan slice with original")
	}
	if c.Products[0].Trend[0].Value != 1 {
		t.Error("clone shares trend slice with original")
	}
}
