// internal/export/fields.go
package export

// FieldKind drives the spreadsheet formatting for a metric.
type FieldKind int

const (
	FieldCurrency FieldKind = iota // $#,##0.00
	FieldPercent                   // stored value / 100 as 0.0%
	FieldText                      // literal string
)

// Field is one exportable planner row metric.
type Field struct {
	Key   string
	Label string
	Kind  FieldKind
}

// ScanFields is the default metric selection for scan-level exports.
var ScanFields = []Field{
	{Key: "scan_amount", Label: "Scan $/Bottle", Kind: FieldCurrency},
	{Key: "projected_scan", Label: "Projected Scan $", Kind: FieldCurrency},
	{Key: "projected_retail", Label: "Projected Retail", Kind: FieldCurrency},
	{Key: "qd", Label: "QD $", Kind: FieldCurrency},
	{Key: "retailer_margin", Label: "Retailer Margin", Kind: FieldPercent},
	{Key: "loyalty", Label: "Loyalty $", Kind: FieldCurrency},
	{Key: "status", Label: "Status", Kind: FieldText},
}

// FieldsByKey resolves a client field selection; unknown keys are dropped.
// An empty selection means all scan fields.
func FieldsByKey(keys []string) []Field {
	if len(keys) == 0 {
		return ScanFields
	}
	out := make([]Field, 0, len(keys))
	for _, key := range keys {
		for _, f := range ScanFields {
			if f.Key == key {
				out = append(out, f)
				break
			}
		}
	}
	if len(out) == 0 {
		return ScanFields
	}
	return out
}
