package billing

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Tax-free labels. Matching is case-sensitive.
const (
	LabelNone     = "None"
	LabelExempted = "Exempted"
)

// GSTLabels is the closed set of labels offered by the line-item picker.
var GSTLabels = []string{
	LabelNone,
	LabelExempted,
	"GST @ 0%",
	"GST @ 0.1%",
	"GST @ 0.25%",
	"GST @ 1.5%",
	"GST @ 3%",
	"GST @ 5%",
	"GST @ 6%",
	"GST @ 12%",
	"GST @ 18%",
	"GST @ 28%",
	"GST @ 14% + cess @ 12%",
	"GST @ 28% + Cess @ 5%",
	"GST @ 28% + Cess @ 12%",
	"GST @ 28% + Cess @ 36%",
	"GST @ 28% + Cess @ 60%",
}

var knownLabels = func() map[string]bool {
	m := make(map[string]bool, len(GSTLabels))
	for _, l := range GSTLabels {
		m[l] = true
	}
	return m
}()

// rateToken matches a number preceded by "@" (spaces allowed) or a number
// immediately followed by "%". A token that satisfies both forms, as in
// "@ 18%", is matched once.
var rateToken = regexp.MustCompile(`@\s*(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)%`)

// ParseGSTPercent returns the effective tax percentage of a GST label.
// Base rate and cess components are added together. Labels without any rate
// token, including garbage, yield zero.
func ParseGSTPercent(label string) decimal.Decimal {
	if label == LabelNone || label == LabelExempted {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, m := range rateToken.FindAllStringSubmatch(label, -1) {
		token := m[1]
		if token == "" {
			token = m[2]
		}
		total = total.Add(Coerce(token))
	}
	return total
}

// IsKnownLabel reports whether label belongs to GSTLabels.
func IsKnownLabel(label string) bool {
	return knownLabels[label]
}

// LabelForRate renders a single GST rate as a picker label. A zero rate maps
// to "Exempted".
func LabelForRate(rate decimal.Decimal) string {
	if rate.IsZero() {
		return LabelExempted
	}
	return "GST @ " + rate.String() + "%"
}
