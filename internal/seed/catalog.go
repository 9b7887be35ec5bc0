package seed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/billing"
)

// catalogNamespace keys deterministic item IDs so re-running a seed updates
// rows instead of duplicating them.
var catalogNamespace = uuid.MustParse("6f1c2a8e-4b7d-5e39-9a51-0c3d7e2f8b14")

// CatalogScript is the seed layout of the catalog_items table.
var CatalogScript = Script{
	Table:   "catalog_items",
	Columns: []string{"id", "name", "hsn", "unit", "mrp", "purchase_price", "selling_price", "gst_label"},
	OnConflict: "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, hsn = EXCLUDED.hsn, unit = EXCLUDED.unit, " +
		"mrp = EXCLUDED.mrp, purchase_price = EXCLUDED.purchase_price, selling_price = EXCLUDED.selling_price, " +
		"gst_label = EXCLUDED.gst_label, updated_at = NOW()",
}

// CatalogRow is one parsed item-master row.
type CatalogRow struct {
	ID            uuid.UUID
	Name          string
	HSN           string
	Unit          string
	MRP           decimal.Decimal
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	GSTLabel      string
}

// Values renders the row in CatalogScript column order.
func (r CatalogRow) Values() []string {
	return []string{
		Quote(r.ID.String()),
		Quote(r.Name),
		Quote(r.HSN),
		Quote(r.Unit),
		Numeric(r.MRP),
		Numeric(r.PurchasePrice),
		Numeric(r.SellingPrice),
		Quote(r.GSTLabel),
	}
}

// catalogHeaders maps accepted header spellings to a column key.
var catalogHeaders = map[string]string{
	"name":           "name",
	"item":           "name",
	"item name":      "name",
	"hsn":            "hsn",
	"hsn code":       "hsn",
	"hsn/sac":        "hsn",
	"unit":           "unit",
	"uom":            "unit",
	"mrp":            "mrp",
	"purchase price": "purchase_price",
	"purchase rate":  "purchase_price",
	"selling price":  "selling_price",
	"sale price":     "selling_price",
	"sales rate":     "selling_price",
	"gst":            "gst",
	"gst rate":       "gst",
	"tax":            "gst",
}

// ParseCatalogRows reads an item master whose first row is a header. Columns
// are located by header name; "name" is required. Rows without a name are
// skipped, and a repeated name+HSN keeps the first occurrence.
func ParseCatalogRows(rows [][]string) ([]CatalogRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("item master is empty")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		key, ok := catalogHeaders[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("item master has no name column")
	}

	get := func(row []string, key string) string {
		idx, ok := cols[key]
		if !ok {
			return ""
		}
		return Cell(row, idx)
	}

	seen := make(map[string]bool)
	var out []CatalogRow
	for _, row := range rows[1:] {
		name := get(row, "name")
		if name == "" {
			continue
		}
		hsn := normalizeHSN(get(row, "hsn"))
		key := strings.ToLower(name) + "|" + hsn
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, CatalogRow{
			ID:            uuid.NewSHA1(catalogNamespace, []byte(key)),
			Name:          name,
			HSN:           hsn,
			Unit:          get(row, "unit"),
			MRP:           parseAmount(get(row, "mrp")),
			PurchasePrice: parseAmount(get(row, "purchase_price")),
			SellingPrice:  parseAmount(get(row, "selling_price")),
			GSTLabel:      NormalizeGSTLabel(get(row, "gst")),
		})
	}
	return out, nil
}

var plainRate = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// NormalizeGSTLabel maps the free-text tax column of an item master onto a
// picker label. Picker labels pass through unchanged; a bare number or any
// text carrying a rate is rendered with LabelForRate; blanks become "None".
func NormalizeGSTLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return billing.LabelNone
	case billing.IsKnownLabel(raw):
		return raw
	}

	switch strings.ToLower(raw) {
	case "none":
		return billing.LabelNone
	case "exempt", "exempted", "nil":
		return billing.LabelExempted
	}

	if plainRate.MatchString(raw) {
		return billing.LabelForRate(billing.Coerce(raw))
	}
	if rate := billing.ParseGSTPercent(raw); rate.IsPositive() {
		return billing.LabelForRate(rate)
	}
	return billing.LabelNone
}

func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "₹")
	d := billing.Coerce(s)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

// normalizeHSN returns the digits of an HSN cell, or "" when the cell is not
// a code. Cells stored as numbers may carry a trailing ".0".
func normalizeHSN(s string) string {
	s = strings.TrimSuffix(strings.ReplaceAll(s, " ", ""), ".0")
	if !IsDigits(s) {
		return ""
	}
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
