// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/scanplan/backend/internal/domain"
)

// RowCSVHeaders returns the header row for scan-level CSV exports.
func RowCSVHeaders() []string {
	return []string{
		"market",
		"account",
		"brand",
		"product",
		"week",
		"scan_amount",
		"projected_scan",
		"projected_retail",
		"qd",
		"retailer_margin",
		"loyalty",
		"status",
	}
}

// WriteRowsCSV streams planner rows as CSV. Quoting of fields that may
// contain commas is left to encoding/csv.
func WriteRowsCSV(w io.Writer, rows []domain.PlannerRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(RowCSVHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Market,
			row.Account,
			row.Brand,
			row.Product,
			row.Week,
			strconv.FormatFloat(row.ScanAmount, 'f', 2, 64),
			strconv.FormatFloat(row.ProjectedScan, 'f', 2, 64),
			strconv.FormatFloat(row.ProjectedRetail, 'f', 2, 64),
			strconv.FormatFloat(row.QD, 'f', 2, 64),
			strconv.FormatFloat(row.RetailerMargin, 'f', 1, 64),
			strconv.FormatFloat(row.Loyalty, 'f', 2, 64),
			string(row.Status),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV streams market x brand rollups as CSV.
func WriteSummaryCSV(w io.Writer, summaries []domain.SummaryRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append([]string{"market", "brand"}, domain.MonthKeys[:]...)
	header = append(header, "total")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write summary csv header: %w", err)
	}

	for _, s := range summaries {
		record := make([]string, 0, len(header))
		record = append(record, s.Market, s.Brand)
		for _, mk := range domain.MonthKeys {
			record = append(record, strconv.FormatFloat(s.Months[mk], 'f', 2, 64))
		}
		record = append(record, strconv.FormatFloat(s.Total, 'f', 2, 64))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write summary csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
