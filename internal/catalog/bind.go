// Package catalog binds catalog items to document lines.
package catalog

import (
	"khata/internal/billing"
	"khata/internal/domain"
)

// Bind fills line with the defaults of item and recomputes it. The line keeps
// its identity, quantity and discount; the rate is the item's purchase price
// on purchase orders and its selling price on every other type. An item
// without a GST label takes the one suggested by hsn, if any, and "None"
// otherwise.
func Bind(line billing.LineItem, item *domain.CatalogItem, docType domain.DocumentType, hsn *HSNLookup) billing.LineItem {
	ref := item.ID
	line.ItemRef = &ref
	line.Name = item.Name
	line.HSN = item.HSN
	line.Unit = item.Unit
	line.MRP = item.MRP
	line.Rate = item.Price(domain.PriceBasisFor(docType))

	line.GSTLabel = item.GSTLabel
	if line.GSTLabel == "" {
		if label, ok := hsn.SuggestLabel(item.HSN); ok {
			line.GSTLabel = label
		} else {
			line.GSTLabel = billing.LabelNone
		}
	}

	return billing.Recompute(line)
}
