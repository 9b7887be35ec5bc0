package seed

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// HSNScript is the seed layout of the hsn_codes table.
var HSNScript = Script{
	Table:      "hsn_codes",
	Columns:    []string{"code", "description", "gst_rate", "effective_from"},
	OnConflict: "ON CONFLICT (code, gst_rate, effective_from) DO NOTHING",
}

// gstStart is the date GST rates came into force.
const gstStart = "2017-07-01"

// HSNRow is one code/rate pair of the HSN or SAC master.
type HSNRow struct {
	Code        string
	Description string
	GSTRate     decimal.Decimal
}

// Values renders the row in HSNScript column order.
func (r HSNRow) Values() []string {
	return []string{Quote(r.Code), Quote(r.Description), Numeric(r.GSTRate), Quote(gstStart)}
}

// HSNCollector accumulates rows across sheets, dropping repeated code/rate pairs.
type HSNCollector struct {
	seen map[string]bool
	Rows []HSNRow
}

// NewHSNCollector returns an empty collector.
func NewHSNCollector() *HSNCollector {
	return &HSNCollector{seen: make(map[string]bool)}
}

func (c *HSNCollector) add(code, description string, rate decimal.Decimal) {
	if !IsDigits(code) || len(code) > 8 {
		return
	}
	key := code + "|" + rate.StringFixed(2)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.Rows = append(c.Rows, HSNRow{Code: code, Description: description, GSTRate: rate})
}

// AddGoods reads the goods master. The 4-, 6- and 8-digit codes sit in
// columns F, I and K with descriptions in H, J and M; the rate is in N.
// Data starts at the sixth row. It returns the number of rows added.
func (c *HSNCollector) AddGoods(rows [][]string) int {
	before := len(c.Rows)
	for i := 5; i < len(rows); i++ {
		row := rows[i]
		rate, err := decimal.NewFromString(strings.TrimSuffix(Cell(row, 13), "%"))
		if err != nil {
			continue
		}
		c.add(Cell(row, 10), Cell(row, 12), rate)
		c.add(Cell(row, 8), Cell(row, 9), rate)
		c.add(Cell(row, 5), Cell(row, 7), rate)
	}
	return len(c.Rows) - before
}

// AddServices reads the SAC master: 4-digit code and description in A and B,
// 6-digit in C and D, free-text rate in E. Data starts at the fourth row.
func (c *HSNCollector) AddServices(rows [][]string) int {
	before := len(c.Rows)
	for i := 3; i < len(rows); i++ {
		row := rows[i]
		for _, rate := range ParseSACRate(Cell(row, 4)) {
			c.add(Cell(row, 2), Cell(row, 3), rate)
			c.add(Cell(row, 0), Cell(row, 1), rate)
		}
	}
	return len(c.Rows) - before
}

// Values renders every collected row.
func (c *HSNCollector) Values() [][]string {
	out := make([][]string, len(c.Rows))
	for i := range c.Rows {
		out[i] = c.Rows[i].Values()
	}
	return out
}

var sacRate = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// ParseSACRate extracts the distinct rates of a free-text SAC rate cell such
// as "18%", "Exempt", "12%-18%" or "1% (without ITC) or 5% (without ITC)".
func ParseSACRate(s string) []decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "exempt", "nil":
		return []decimal.Decimal{decimal.Zero}
	}

	var rates []decimal.Decimal
	seen := make(map[string]bool)
	for _, m := range sacRate.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		key := rate.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		rates = append(rates, rate)
	}
	return rates
}
