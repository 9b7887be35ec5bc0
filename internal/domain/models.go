package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/billing"
)

// Document is a submitted billing document. Header, Items and Totals hold the
// JSON submission snapshot; the scalar columns are denormalized from it for
// listing and export.
type Document struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	DocumentNo   string          `db:"document_no" json:"document_no"`
	DocumentDate time.Time       `db:"document_date" json:"document_date"`
	PartyID      string          `db:"party_id" json:"party_id"`
	PartyName    string          `db:"party_name" json:"party_name"`
	Header       json.RawMessage `db:"header" json:"header"`
	Items        json.RawMessage `db:"items" json:"items"`
	Totals       json.RawMessage `db:"totals" json:"totals"`
	ItemCount    int             `db:"item_count" json:"item_count"`
	RoundedTotal decimal.Decimal `db:"rounded_total" json:"rounded_total"`
	TotalTax     decimal.Decimal `db:"total_tax" json:"total_tax"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Payload decodes the stored submission snapshot.
func (d *Document) Payload() (billing.Payload, error) {
	var p billing.Payload
	if err := json.Unmarshal(d.Header, &p.Header); err != nil {
		return p, fmt.Errorf("decoding header: %w", err)
	}
	if len(d.Items) > 0 {
		if err := json.Unmarshal(d.Items, &p.Items); err != nil {
			return p, fmt.Errorf("decoding items: %w", err)
		}
	}
	if err := json.Unmarshal(d.Totals, &p.Totals); err != nil {
		return p, fmt.Errorf("decoding totals: %w", err)
	}
	return p, nil
}

// CatalogItem is an entry of the external item catalog that supplies line
// defaults when a line is bound to it.
type CatalogItem struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	HSN           string          `db:"hsn" json:"hsn"`
	Unit          string          `db:"unit" json:"unit"`
	MRP           decimal.Decimal `db:"mrp" json:"mrp"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	SellingPrice  decimal.Decimal `db:"selling_price" json:"selling_price"`
	GSTLabel      string          `db:"gst_label" json:"gst_label"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Price returns the item's price for the given basis.
func (c *CatalogItem) Price(basis PriceBasis) decimal.Decimal {
	if basis == PriceBasisPurchase {
		return c.PurchasePrice
	}
	return c.SellingPrice
}
