package domain

// DocumentType identifies which flow produced a billing document. All types
// share the same line-item and totals computation.
type DocumentType string

const (
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeSalesReturn   DocumentType = "sales_return"
	DocumentTypePayment       DocumentType = "payment"
	DocumentTypeInvoice       DocumentType = "invoice"
)

// ValidDocumentTypes is the set of accepted document types.
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypePurchaseOrder: true,
	DocumentTypeSalesReturn:   true,
	DocumentTypePayment:       true,
	DocumentTypeInvoice:       true,
}

// DocumentTypePaths maps each document type to its REST collection segment.
var DocumentTypePaths = map[DocumentType]string{
	DocumentTypePurchaseOrder: "purchase-orders",
	DocumentTypeSalesReturn:   "returns",
	DocumentTypePayment:       "payments",
	DocumentTypeInvoice:       "invoices",
}

// PriceBasis names the catalog price a document type bills at.
type PriceBasis string

const (
	PriceBasisPurchase PriceBasis = "purchase"
	PriceBasisSelling  PriceBasis = "selling"
)

// PriceBasisFor returns the catalog price used when binding an item to a line.
// Purchase orders buy at purchase price; every other type sells.
func PriceBasisFor(t DocumentType) PriceBasis {
	if t == DocumentTypePurchaseOrder {
		return PriceBasisPurchase
	}
	return PriceBasisSelling
}

// ExportFormat is a supported document export format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps an export format to its MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
