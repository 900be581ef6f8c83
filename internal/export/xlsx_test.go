package export

import (
	"testing"

	"github.com/scanplan/backend/internal/domain"
)

func exportRows() []domain.PlannerRow {
	return []domain.PlannerRow{
		{
			Market:        "New York",
			Product:       "William Grant - Glenfiddich 12yr",
			Brand:         "Glenfiddich",
			Month:         "March",
			Week:          "2026-03-02",
			Status:        domain.StatusDraft,
			ScanAmount:    2,
			ProjectedScan: 1260,
		},
		{
			Market:        "New York",
			Product:       "William Grant - Glenfiddich 12yr",
			Brand:         "Glenfiddich",
			Month:         "March",
			Week:          "2026-03-09",
			Status:        domain.StatusDraft,
			ScanAmount:    1,
			ProjectedScan: 300,
		},
		{
			Market:        "New Jersey",
			Product:       "William Grant - Reyka Vodka",
			Brand:         "Reyka",
			Month:         "June",
			Week:          "2026-06-01",
			Status:        domain.StatusDraft,
			ScanAmount:    3,
			ProjectedScan: 500,
		},
	}
}

func exportSummaries() []domain.SummaryRow {
	months := map[string]float64{}
	for _, mk := range domain.MonthKeys {
		months[mk] = 0
	}
	months["mar"] = 1560
	return []domain.SummaryRow{{
		ID:     "New York|Glenfiddich",
		Market: "New York",
		Brand:  "Glenfiddich",
		Months: months,
		Total:  1560,
	}}
}

func TestBuildWorkbookGrouped(t *testing.T) {
	wb, err := BuildWorkbook(exportRows(), exportSummaries(), nil, true)
	if err != nil {
		t.Fatalf("BuildWorkbook returned error: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	want := map[string]bool{"New York": true, "New Jersey": true, "Summary": true}
	if len(sheets) != len(want) {
		t.Fatalf("workbook has sheets %v; want New York, New Jersey, Summary", sheets)
	}
	for _, name := range sheets {
		if !want[name] {
			t.Errorf("unexpected sheet %q", name)
		}
	}
}

func TestBuildWorkbookUngrouped(t *testing.T) {
	wb, err := BuildWorkbook(exportRows(), exportSummaries(), nil, false)
	if err != nil {
		t.Fatalf("BuildWorkbook returned error: %v", err)
	}
	defer wb.Close()

	found := false
	for _, name := range wb.GetSheetList() {
		if name == "Scan Plan" {
			found = true
		}
		if name == "New York" {
			t.Error("market sheet present in ungrouped workbook")
		}
	}
	if !found {
		t.Fatal("missing Scan Plan sheet")
	}
}

func TestWorkbookCellContents(t *testing.T) {
	wb, err := BuildWorkbook(exportRows(), exportSummaries(), FieldsByKey([]string{"projected_scan"}), true)
	if err != nil {
		t.Fatalf("BuildWorkbook returned error: %v", err)
	}
	defer wb.Close()

	// row 1: month header; row 3: product label; row 4: the single metric
	if v, _ := wb.GetCellValue("New York", "D1"); v != "MAR" {
		t.Errorf("D1 = %q; want MAR", v)
	}
	if v, _ := wb.GetCellValue("New York", "A3"); v != "William Grant - Glenfiddich 12yr" {
		t.Errorf("A3 = %q; want product label", v)
	}
	if v, _ := wb.GetCellValue("New York", "A4"); v != "Projected Scan $" {
		t.Errorf("A4 = %q; want metric label", v)
	}
	// March scans sum: 1260 + 300
	if v, _ := wb.GetCellValue("New York", "D4"); v != "$1,560.00" && v != "1560" {
		t.Errorf("D4 = %q; want the March sum", v)
	}
	// no data in January -> empty cell, not zero
	if v, _ := wb.GetCellValue("New York", "B4"); v != "" {
		t.Errorf("B4 = %q; want empty", v)
	}
}

func TestWorkbookSummarySheet(t *testing.T) {
	wb, err := BuildWorkbook(exportRows(), exportSummaries(), nil, true)
	if err != nil {
		t.Fatalf("BuildWorkbook returned error: %v", err)
	}
	defer wb.Close()

	if v, _ := wb.GetCellValue("Summary", "A2"); v != "New York" {
		t.Errorf("Summary A2 = %q; want New York", v)
	}
	if v, _ := wb.GetCellValue("Summary", "B2"); v != "Glenfiddich" {
		t.Errorf("Summary B2 = %q; want Glenfiddich", v)
	}
}
