package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// GSTLabelRequest represents the GST label parse request body.
type GSTLabelRequest struct {
	Label string `json:"label" binding:"required" example:"GST @ 14% + cess @ 12%"`
}

// PartyRequest is the party block of a document header.
type PartyRequest struct {
	ID     string `json:"id" example:"party-0193"`
	Name   string `json:"name" example:"Sharma Traders"`
	Mobile string `json:"mobile" example:"9876543210"`
	GSTIN  string `json:"gstin" example:"29ABCDE1234F1Z5"`
}

// HeaderRequest is the document header. Amounts may be sent as numbers or strings.
type HeaderRequest struct {
	DocumentNo           string       `json:"document_no" example:"PO-0042"`
	Date                 string       `json:"date" example:"2024-04-01"`
	Party                PartyRequest `json:"party"`
	AdditionalCharges    string       `json:"additional_charges" example:"50"`
	OverallDiscountValue string       `json:"overall_discount_value" example:"5"`
	OverallDiscountMode  string       `json:"overall_discount_mode" example:"percentage" enums:"percentage,fixed"`
	AutoRoundOff         bool         `json:"auto_round_off" example:"true"`
}

// LineItemRequest is one document line. Malformed numbers are treated as 0;
// gst_amount and amount are always recomputed.
type LineItemRequest struct {
	ID       string `json:"id" example:"8d6f3c9e-2b1a-4f7d-9c3e-5a1b2c3d4e5f"`
	ItemID   string `json:"item_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name     string `json:"name" example:"Basmati Rice 5kg"`
	HSN      string `json:"hsn" example:"10063010"`
	Qty      string `json:"qty" example:"2"`
	Unit     string `json:"unit" example:"BAG"`
	MRP      string `json:"mrp" example:"650"`
	Rate     string `json:"rate" example:"100"`
	Discount string `json:"discount" example:"10"`
	GSTRate  string `json:"gst_rate" example:"GST @ 18%"`
}

// DocumentRequest represents a document snapshot request body.
type DocumentRequest struct {
	Header HeaderRequest     `json:"header"`
	Items  []LineItemRequest `json:"items"`
}

// BindLineRequest represents the bind-item request body.
type BindLineRequest struct {
	DocumentType string          `json:"document_type" binding:"required" example:"purchase_order"`
	ItemID       string          `json:"item_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Line         LineItemRequest `json:"line"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
