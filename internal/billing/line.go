package billing

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one entered row of a document. TaxAmount and Amount are derived
// from the other fields and are overwritten by Recompute.
type LineItem struct {
	ID              uuid.UUID       `json:"id"`
	ItemRef         *uuid.UUID      `json:"item_id"`
	Name            string          `json:"name"`
	HSN             string          `json:"hsn"`
	Qty             decimal.Decimal `json:"qty"`
	Unit            string          `json:"unit"`
	MRP             decimal.Decimal `json:"mrp"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount"`
	GSTLabel        string          `json:"gst_rate"`
	TaxAmount       decimal.Decimal `json:"gst_amount"`
	Amount          decimal.Decimal `json:"amount"`
}

// LineResult breaks a line computation into its intermediate amounts.
type LineResult struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	GSTPercent     decimal.Decimal `json:"gst_percent"`
	TaxAmount      decimal.Decimal `json:"gst_amount"`
	Amount         decimal.Decimal `json:"amount"`
}

// NewLineItem returns a blank line with a fresh identity and no tax.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.New(), GSTLabel: LabelNone}
}

// ComputeLine derives the taxable, tax and final amounts of a line.
// Discounts above 100% or negative quantities are not guarded and produce
// negative amounts.
func ComputeLine(item LineItem) LineResult {
	base := item.Qty.Mul(item.Rate)
	discount := percentOf(base, item.DiscountPercent)
	taxable := base.Sub(discount)
	gst := ParseGSTPercent(item.GSTLabel)
	tax := percentOf(taxable, gst)

	return LineResult{
		BaseAmount:     base,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		GSTPercent:     gst,
		TaxAmount:      tax,
		Amount:         taxable.Add(tax),
	}
}

// Recompute returns a copy of item with TaxAmount and Amount derived from its
// current fields. It is idempotent.
func Recompute(item LineItem) LineItem {
	r := ComputeLine(item)
	item.TaxAmount = r.TaxAmount
	item.Amount = r.Amount
	return item
}

// IsBlank reports whether the line carries nothing worth submitting.
func (l LineItem) IsBlank() bool {
	return l.ItemRef == nil && l.Name == "" && l.Amount.IsZero()
}

// UnmarshalJSON decodes a line leniently: numeric fields accept numbers or
// numeric strings and fall back to zero, text fields that are not strings
// read as empty, an unparseable item_id is dropped, a missing id gets a fresh
// one and the derived amounts are recomputed.
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID              json.RawMessage `json:"id"`
		ItemRef         json.RawMessage `json:"item_id"`
		Name            json.RawMessage `json:"name"`
		HSN             json.RawMessage `json:"hsn"`
		Qty             json.RawMessage `json:"qty"`
		Unit            json.RawMessage `json:"unit"`
		MRP             json.RawMessage `json:"mrp"`
		Rate            json.RawMessage `json:"rate"`
		DiscountPercent json.RawMessage `json:"discount"`
		GSTLabel        json.RawMessage `json:"gst_rate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	item := LineItem{
		Name:            stringJSON(aux.Name),
		HSN:             stringJSON(aux.HSN),
		Qty:             coerceJSON(aux.Qty),
		Unit:            stringJSON(aux.Unit),
		MRP:             coerceJSON(aux.MRP),
		Rate:            coerceJSON(aux.Rate),
		DiscountPercent: coerceJSON(aux.DiscountPercent),
		GSTLabel:        stringJSON(aux.GSTLabel),
	}
	if id, err := uuid.Parse(stringJSON(aux.ID)); err == nil {
		item.ID = id
	} else {
		item.ID = uuid.New()
	}
	if ref, err := uuid.Parse(stringJSON(aux.ItemRef)); err == nil {
		item.ItemRef = &ref
	}
	if item.GSTLabel == "" {
		item.GSTLabel = LabelNone
	}

	*l = Recompute(item)
	return nil
}
