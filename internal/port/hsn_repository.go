package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// HSNEntry is one row of the HSN/SAC master with its GST rate.
type HSNEntry struct {
	Code        string          `db:"code"`
	Description string          `db:"description"`
	GSTRate     decimal.Decimal `db:"gst_rate"`
}

// HSNRepository provides the HSN master used to suggest GST labels.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]HSNEntry, error)
}
