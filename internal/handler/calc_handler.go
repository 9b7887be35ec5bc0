package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/billing"
	"khata/internal/domain"
	"khata/internal/service"
)

// CalcHandler exposes the line and totals computations without persistence.
type CalcHandler struct {
	documentService service.DocumentService
	catalogService  service.CatalogService
}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler(documentService service.DocumentService, catalogService service.CatalogService) *CalcHandler {
	return &CalcHandler{documentService: documentService, catalogService: catalogService}
}

// GSTRate is the parsed form of a GST label.
type GSTRate struct {
	Label   string `json:"label"`
	Percent string `json:"percent"`
	Known   bool   `json:"known"`
}

// LineCalculation is a recomputed line with its intermediate amounts.
type LineCalculation struct {
	Item      billing.LineItem   `json:"item"`
	Breakdown billing.LineResult `json:"breakdown"`
}

// GST handles POST /api/v1/calc/gst
// @Summary Parse a GST label
// @Description Returns the combined percentage of a GST label; unrecognized labels yield 0
// @Tags calc
// @Accept json
// @Produce json
// @Param request body GSTLabelRequest true "GST label"
// @Success 200 {object} Response{data=GSTRate} "Parsed rate"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /calc/gst [post]
func (h *CalcHandler) GST(c *gin.Context) {
	var req GSTLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "label is required")
		return
	}
	RespondOK(c, GSTRate{
		Label:   req.Label,
		Percent: billing.ParseGSTPercent(req.Label).String(),
		Known:   billing.IsKnownLabel(req.Label),
	})
}

// Labels handles GET /api/v1/calc/gst-labels
// @Summary List GST labels
// @Tags calc
// @Produce json
// @Success 200 {object} Response{data=[]string} "Selectable GST labels"
// @Router /calc/gst-labels [get]
func (h *CalcHandler) Labels(c *gin.Context) {
	RespondOK(c, billing.GSTLabels)
}

// Line handles POST /api/v1/calc/line
// @Summary Recompute a line
// @Description Malformed numbers are treated as 0
// @Tags calc
// @Accept json
// @Produce json
// @Param request body LineItemRequest true "Line item"
// @Success 200 {object} Response{data=LineCalculation} "Recomputed line"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /calc/line [post]
func (h *CalcHandler) Line(c *gin.Context) {
	var item billing.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a line item object")
		return
	}
	RespondOK(c, LineCalculation{Item: billing.Recompute(item), Breakdown: billing.ComputeLine(item)})
}

// Totals handles POST /api/v1/calc/totals
// @Summary Compute document totals
// @Tags calc
// @Accept json
// @Produce json
// @Param request body DocumentRequest true "Header and lines"
// @Success 200 {object} Response{data=billing.Totals} "Totals"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /calc/totals [post]
func (h *CalcHandler) Totals(c *gin.Context) {
	var doc billing.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must contain header and items")
		return
	}
	RespondOK(c, billing.ComputeTotals(doc.Items, doc.Header))
}

// Document handles POST /api/v1/calc/document
// @Summary Recompute a full document snapshot
// @Tags calc
// @Accept json
// @Produce json
// @Param request body DocumentRequest true "Document snapshot"
// @Success 200 {object} Response{data=service.DocumentPreview} "Recomputed document"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /calc/document [post]
func (h *CalcHandler) Document(c *gin.Context) {
	var doc billing.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a document with header and items")
		return
	}
	RespondOK(c, h.documentService.Preview(doc))
}

// Bind handles POST /api/v1/calc/bind
// @Summary Bind a catalog item to a line
// @Description Fills the line from the item (purchase price on purchase orders, selling price otherwise) and recomputes it
// @Tags calc
// @Accept json
// @Produce json
// @Param request body BindLineRequest true "Line and item"
// @Success 200 {object} Response{data=billing.LineItem} "Bound line"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Router /calc/bind [post]
func (h *CalcHandler) Bind(c *gin.Context) {
	var req struct {
		DocumentType domain.DocumentType `json:"document_type" binding:"required"`
		ItemID       uuid.UUID           `json:"item_id" binding:"required"`
		Line         billing.LineItem    `json:"line"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_type and item_id are required")
		return
	}

	line, err := h.catalogService.BindLine(c.Request.Context(), &service.BindLineInput{
		DocumentType: req.DocumentType,
		ItemID:       req.ItemID,
		Line:         req.Line,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, line)
}

// NewDocument handles GET /api/v1/documents/new
// @Summary Start a new document of any type
// @Tags calc
// @Produce json
// @Param type query string true "Document type" Enums(purchase_order, sales_return, payment, invoice)
// @Success 200 {object} Response{data=service.DocumentPreview} "Blank document"
// @Failure 400 {object} ErrorResponseBody "Invalid document type"
// @Router /documents/new [get]
func (h *CalcHandler) NewDocument(c *gin.Context) {
	preview, err := h.documentService.New(domain.DocumentType(c.Query("type")))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, preview)
}
