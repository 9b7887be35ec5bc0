package billing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DiscountMode selects how Header.OverallDiscountValue is applied.
type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountFixed      DiscountMode = "fixed"
)

// Party is the denormalized counterparty of a document.
type Party struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile,omitempty"`
	GSTIN  string `json:"gstin,omitempty"`
}

// Header holds the document-level fields and adjustments.
type Header struct {
	DocumentNo           string          `json:"document_no"`
	Date                 string          `json:"date"`
	Party                Party           `json:"party"`
	AdditionalCharges    decimal.Decimal `json:"additional_charges"`
	OverallDiscountValue decimal.Decimal `json:"overall_discount_value"`
	OverallDiscountMode  DiscountMode    `json:"overall_discount_mode"`
	AutoRoundOff         bool            `json:"auto_round_off"`
}

// UnmarshalJSON decodes the header, coercing malformed amounts to zero.
func (h *Header) UnmarshalJSON(data []byte) error {
	var aux struct {
		DocumentNo           string          `json:"document_no"`
		Date                 string          `json:"date"`
		Party                Party           `json:"party"`
		AdditionalCharges    json.RawMessage `json:"additional_charges"`
		OverallDiscountValue json.RawMessage `json:"overall_discount_value"`
		OverallDiscountMode  DiscountMode    `json:"overall_discount_mode"`
		AutoRoundOff         bool            `json:"auto_round_off"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*h = Header{
		DocumentNo:           aux.DocumentNo,
		Date:                 aux.Date,
		Party:                aux.Party,
		AdditionalCharges:    coerceJSON(aux.AdditionalCharges),
		OverallDiscountValue: coerceJSON(aux.OverallDiscountValue),
		OverallDiscountMode:  aux.OverallDiscountMode,
		AutoRoundOff:         aux.AutoRoundOff,
	}
	return nil
}

// Totals is the derived summary of a document.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	TotalBeforeRound decimal.Decimal `json:"total_before_round"`
	RoundedTotal     decimal.Decimal `json:"rounded_total"`
	RoundOffDelta    decimal.Decimal `json:"round_off"`
	TotalTax         decimal.Decimal `json:"total_tax"`
}

// ComputeTotals folds the lines and header adjustments into document totals.
// Line amounts are taken as already tax-inclusive, so additional charges and
// the overall discount are applied after line tax and never taxed again.
// Any header mode other than DiscountPercentage is treated as fixed.
func ComputeTotals(items []LineItem, header Header) Totals {
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].Amount)
		totalTax = totalTax.Add(items[i].TaxAmount)
	}

	taxable := subtotal.Add(header.AdditionalCharges)

	discount := header.OverallDiscountValue
	if header.OverallDiscountMode == DiscountPercentage {
		discount = percentOf(taxable, header.OverallDiscountValue)
	}

	beforeRound := taxable.Sub(discount)
	rounded := beforeRound
	if header.AutoRoundOff {
		rounded = roundHalfUp(beforeRound)
	}

	return Totals{
		Subtotal:         subtotal,
		TaxableAmount:    taxable,
		DiscountValue:    discount,
		TotalBeforeRound: beforeRound,
		RoundedTotal:     rounded,
		RoundOffDelta:    rounded.Sub(beforeRound).Round(2),
		TotalTax:         totalTax,
	}
}
