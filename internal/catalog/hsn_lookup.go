package catalog

import (
	"github.com/shopspring/decimal"

	"khata/internal/billing"
	"khata/internal/port"
)

// HSNLookup provides in-memory GST rate lookups by HSN/SAC code.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]decimal.Decimal
}

// NewHSNLookup builds an HSNLookup from entries loaded from the database.
// Duplicate rates for a code are collapsed.
func NewHSNLookup(entries []port.HSNEntry) *HSNLookup {
	m := make(map[string][]decimal.Decimal, len(entries))
	for idx := range entries {
		e := &entries[idx]
		if containsRate(m[e.Code], e.GSTRate) {
			continue
		}
		m[e.Code] = append(m[e.Code], e.GSTRate)
	}
	return &HSNLookup{byCode: m}
}

// Rates returns the GST rates for code, falling back from 8 to 6 to 4 digit
// prefixes when the exact code is unknown.
func (h *HSNLookup) Rates(code string) []decimal.Decimal {
	if h == nil || len(h.byCode) == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// SuggestLabel returns the GST label for code when the master lists exactly
// one rate for it. Codes with conditional (multiple) rates are ambiguous.
func (h *HSNLookup) SuggestLabel(code string) (string, bool) {
	rates := h.Rates(code)
	if len(rates) != 1 {
		return "", false
	}
	return billing.LabelForRate(rates[0]), true
}

func containsRate(rates []decimal.Decimal, rate decimal.Decimal) bool {
	for _, r := range rates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}
