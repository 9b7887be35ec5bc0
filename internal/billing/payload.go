package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayloadItem is the flattened form of a line sent for persistence.
type PayloadItem struct {
	ItemID    *uuid.UUID      `json:"item_id"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn"`
	Qty       decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit"`
	MRP       decimal.Decimal `json:"mrp"`
	Rate      decimal.Decimal `json:"rate"`
	Discount  decimal.Decimal `json:"discount"`
	GSTRate   string          `json:"gst_rate"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	Amount    decimal.Decimal `json:"amount"`
}

// Payload is the submission snapshot of a document: header fields, flattened
// lines and the totals computed at submit time.
type Payload struct {
	Header Header        `json:"header"`
	Items  []PayloadItem `json:"items"`
	Totals Totals        `json:"totals"`
}

// BuildPayload recomputes d and flattens it for submission. Blank lines are
// left out; they contribute nothing to the totals.
func BuildPayload(d Document) Payload {
	d = d.Recompute()

	items := make([]PayloadItem, 0, len(d.Items))
	for i := range d.Items {
		l := &d.Items[i]
		if l.IsBlank() {
			continue
		}
		items = append(items, PayloadItem{
			ItemID:    l.ItemRef,
			Name:      l.Name,
			HSN:       l.HSN,
			Qty:       l.Qty,
			Unit:      l.Unit,
			MRP:       l.MRP,
			Rate:      l.Rate,
			Discount:  l.DiscountPercent,
			GSTRate:   l.GSTLabel,
			GSTAmount: l.TaxAmount,
			Amount:    l.Amount,
		})
	}

	return Payload{Header: d.Header, Items: items, Totals: d.Totals()}
}

// Line converts a stored payload item back into an editable line with a new
// identity.
func (p PayloadItem) Line() LineItem {
	return Recompute(LineItem{
		ID:              uuid.New(),
		ItemRef:         p.ItemID,
		Name:            p.Name,
		HSN:             p.HSN,
		Qty:             p.Qty,
		Unit:            p.Unit,
		MRP:             p.MRP,
		Rate:            p.Rate,
		DiscountPercent: p.Discount,
		GSTLabel:        p.GSTRate,
	})
}

// FromPayload rebuilds an editable snapshot from a stored header and items.
func FromPayload(header Header, items []PayloadItem) Document {
	lines := make([]LineItem, len(items))
	for i := range items {
		lines[i] = items[i].Line()
	}
	return Document{Header: header, Items: lines}
}
