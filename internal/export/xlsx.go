// internal/export/xlsx.go
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/scanplan/backend/internal/domain"
)

const (
	currencyFmt = "$#,##0.00"
	percentFmt  = "0.0%"
)

// BuildWorkbook renders planner rows into a scan plan workbook: one
// worksheet per market when grouping is requested (a single "Scan Plan"
// sheet otherwise), each product as a labeled block with one row per
// selected metric and one column per calendar month. Months with no data
// stay empty rather than zero. A final Summary sheet carries the market x
// brand rollups.
func BuildWorkbook(rows []domain.PlannerRow, summaries []domain.SummaryRow, fields []Field, groupByMarket bool) (*excelize.File, error) {
	if len(fields) == 0 {
		fields = ScanFields
	}

	f := excelize.NewFile()

	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFmt)})
	if err != nil {
		return nil, fmt.Errorf("create currency style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(percentFmt)})
	if err != nil {
		return nil, fmt.Errorf("create percent style: %w", err)
	}

	sheets := groupRows(rows, groupByMarket)
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := writeMarketSheet(f, sheet, fields, currencyStyle, percentStyle); err != nil {
			return nil, err
		}
	}

	if err := writeSummarySheet(f, summaries, currencyStyle); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize starts with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	return f, nil
}

type marketSheet struct {
	name     string
	products []productBlock
}

type productBlock struct {
	product string
	// months maps jan..dec to the rows that land in that month.
	months map[string][]domain.PlannerRow
}

func groupRows(rows []domain.PlannerRow, groupByMarket bool) []marketSheet {
	byName := make(map[string]map[string]*productBlock)
	var order []string

	for _, row := range rows {
		name := "Scan Plan"
		if groupByMarket {
			name = row.Market
		}
		blocks, ok := byName[name]
		if !ok {
			blocks = make(map[string]*productBlock)
			byName[name] = blocks
			order = append(order, name)
		}

		block, ok := blocks[row.Product]
		if !ok {
			block = &productBlock{product: row.Product, months: make(map[string][]domain.PlannerRow)}
			blocks[row.Product] = block
		}
		mk := strings.ToLower(row.Month)
		if len(mk) >= 3 {
			mk = mk[:3]
		}
		block.months[mk] = append(block.months[mk], row)
	}

	sheets := make([]marketSheet, 0, len(order))
	for _, name := range order {
		blocks := byName[name]
		products := make([]productBlock, 0, len(blocks))
		for _, b := range blocks {
			products = append(products, *b)
		}
		sort.Slice(products, func(i, j int) bool { return products[i].product < products[j].product })
		sheets = append(sheets, marketSheet{name: name, products: products})
	}
	return sheets
}

func writeMarketSheet(f *excelize.File, sheet marketSheet, fields []Field, currencyStyle, percentStyle int) error {
	row := 1

	// Month header shared by every product block.
	for m, mk := range domain.MonthKeys {
		cell, _ := excelize.CoordinatesToCellName(m+2, row)
		if err := f.SetCellValue(sheet.name, cell, strings.ToUpper(mk)); err != nil {
			return fmt.Errorf("write month header: %w", err)
		}
	}
	row += 2

	for _, block := range sheet.products {
		label, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet.name, label, block.product); err != nil {
			return fmt.Errorf("write product label: %w", err)
		}
		row++

		for _, field := range fields {
			nameCell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet.name, nameCell, field.Label); err != nil {
				return fmt.Errorf("write metric label: %w", err)
			}

			for m, mk := range domain.MonthKeys {
				monthRows := block.months[mk]
				if len(monthRows) == 0 {
					continue // empty cell, not zero
				}
				cell, _ := excelize.CoordinatesToCellName(m+2, row)
				if err := writeMetricCell(f, sheet.name, cell, field, monthRows, currencyStyle, percentStyle); err != nil {
					return err
				}
			}
			row++
		}
		row++ // blank spacer between product blocks
	}
	return nil
}

// writeMetricCell renders one (metric, month) cell. Currency metrics sum
// across the month's scans; percent and text metrics take the last scan's
// value.
func writeMetricCell(f *excelize.File, sheet, cell string, field Field, monthRows []domain.PlannerRow, currencyStyle, percentStyle int) error {
	last := monthRows[len(monthRows)-1]

	switch field.Kind {
	case FieldText:
		if err := f.SetCellValue(sheet, cell, textValue(field.Key, last)); err != nil {
			return fmt.Errorf("write text cell: %w", err)
		}
	case FieldPercent:
		if err := f.SetCellValue(sheet, cell, numericValue(field.Key, last)/100); err != nil {
			return fmt.Errorf("write percent cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, percentStyle); err != nil {
			return fmt.Errorf("style percent cell: %w", err)
		}
	default:
		var sum float64
		for _, r := range monthRows {
			sum += numericValue(field.Key, r)
		}
		if err := f.SetCellValue(sheet, cell, sum); err != nil {
			return fmt.Errorf("write currency cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, currencyStyle); err != nil {
			return fmt.Errorf("style currency cell: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summaries []domain.SummaryRow, currencyStyle int) error {
	const name = "Summary"
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header := append([]string{"Market", "Brand"}, upperMonthKeys()...)
	header = append(header, "Total")
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
	}

	for i, s := range summaries {
		r := i + 2
		marketCell, _ := excelize.CoordinatesToCellName(1, r)
		brandCell, _ := excelize.CoordinatesToCellName(2, r)
		if err := f.SetCellValue(name, marketCell, s.Market); err != nil {
			return fmt.Errorf("write summary market: %w", err)
		}
		if err := f.SetCellValue(name, brandCell, s.Brand); err != nil {
			return fmt.Errorf("write summary brand: %w", err)
		}
		for m, mk := range domain.MonthKeys {
			cell, _ := excelize.CoordinatesToCellName(m+3, r)
			if err := f.SetCellValue(name, cell, s.Months[mk]); err != nil {
				return fmt.Errorf("write summary month: %w", err)
			}
			if err := f.SetCellStyle(name, cell, cell, currencyStyle); err != nil {
				return fmt.Errorf("style summary month: %w", err)
			}
		}
		totalCell, _ := excelize.CoordinatesToCellName(15, r)
		if err := f.SetCellValue(name, totalCell, s.Total); err != nil {
			return fmt.Errorf("write summary total: %w", err)
		}
		if err := f.SetCellStyle(name, totalCell, totalCell, currencyStyle); err != nil {
			return fmt.Errorf("style summary total: %w", err)
		}
	}
	return nil
}

func numericValue(key string, row domain.PlannerRow) float64 {
	switch key {
	case "scan_amount":
		return row.ScanAmount
	case "projected_scan":
		return row.ProjectedScan
	case "projected_retail":
		return row.ProjectedRetail
	case "qd":
		return row.QD
	case "retailer_margin":
		return row.RetailerMargin
	case "loyalty":
		return row.Loyalty
	case "projected_volume":
		return row.ProjectedVolume
	case "volume_lift":
		return row.VolumeLift
	case "volume_lift_pct":
		return row.VolumeLiftPct
	default:
		return 0
	}
}

func textValue(key string, row domain.PlannerRow) string {
	switch key {
	case "status":
		return row.Status.Label()
	case "week":
		return row.Week
	default:
		return ""
	}
}

func upperMonthKeys() []string {
	out := make([]string, 0, len(domain.MonthKeys))
	for _, mk := range domain.MonthKeys {
		out = append(out, strings.ToUpper(mk))
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
