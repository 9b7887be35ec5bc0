package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/billing"
	"khata/internal/domain"
	"khata/internal/middleware"
	"khata/internal/service"
)

// DocumentHandler serves the per-type document collections
// (/purchase-orders, /returns, /payments, /invoices). The document type comes
// from the route group.
type DocumentHandler struct {
	documentService service.DocumentService
	exportService   service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, exportService service.ExportService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, exportService: exportService}
}

func documentID(c *gin.Context) (uuid.UUID, bool) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return uuid.Nil, false
	}
	return docID, true
}

func bindDocument(c *gin.Context) (billing.Document, bool) {
	var doc billing.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a document with header and items")
		return doc, false
	}
	return doc, true
}

// New handles GET /api/v1/{type}/new
// @Summary Start a new document
// @Description Returns a blank snapshot with one empty line and configured header defaults
// @Tags documents
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Success 200 {object} Response{data=service.DocumentPreview} "Blank document"
// @Router /{type}/new [get]
func (h *DocumentHandler) New(c *gin.Context) {
	preview, err := h.documentService.New(middleware.GetDocumentType(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, preview)
}

// Preview handles POST /api/v1/{type}/preview
// @Summary Recompute a document
// @Description Recomputes every line and the document totals without saving
// @Tags documents
// @Accept json
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param request body DocumentRequest true "Document snapshot"
// @Success 200 {object} Response{data=service.DocumentPreview} "Recomputed document and totals"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /{type}/preview [post]
func (h *DocumentHandler) Preview(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	RespondOK(c, h.documentService.Preview(doc))
}

// Submit handles POST /api/v1/{type}
// @Summary Submit a document
// @Description Validates, recomputes and stores a document together with its totals snapshot
// @Tags documents
// @Accept json
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param request body DocumentRequest true "Document snapshot"
// @Success 201 {object} Response{data=domain.Document} "Document stored"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 409 {object} ErrorResponseBody "Document number already used"
// @Failure 422 {object} ErrorResponseBody "Submission checks failed"
// @Router /{type} [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	rec, err := h.documentService.Submit(c.Request.Context(), &service.SubmitDocumentInput{
		DocumentType: middleware.GetDocumentType(c),
		Document:     doc,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// GetByID handles GET /api/v1/{type}/:id
// @Summary Get a stored document
// @Tags documents
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Document"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /{type}/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	rec, err := h.documentService.GetByID(c.Request.Context(), middleware.GetDocumentType(c), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Edit handles GET /api/v1/{type}/:id/edit
// @Summary Load a stored document for editing
// @Description Rebuilds an editable snapshot (fresh line IDs) from the stored payload
// @Tags documents
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=service.DocumentPreview} "Editable document"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /{type}/{id}/edit [get]
func (h *DocumentHandler) Edit(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	preview, err := h.documentService.Edit(c.Request.Context(), middleware.GetDocumentType(c), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// List handles GET /api/v1/{type}
// @Summary List stored documents
// @Tags documents
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "Documents"
// @Router /{type} [get]
func (h *DocumentHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), middleware.GetDocumentType(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/{type}/:id
// @Summary Re-submit a stored document
// @Tags documents
// @Accept json
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param id path string true "Document ID (UUID)"
// @Param request body DocumentRequest true "Document snapshot"
// @Success 200 {object} Response{data=domain.Document} "Document updated"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document number already used"
// @Failure 422 {object} ErrorResponseBody "Submission checks failed"
// @Router /{type}/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	rec, err := h.documentService.Update(c.Request.Context(), &service.UpdateDocumentInput{
		DocumentType: middleware.GetDocumentType(c),
		DocumentID:   docID,
		Document:     doc,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Delete handles DELETE /api/v1/{type}/:id
// @Summary Delete a stored document
// @Tags documents
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /{type}/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), middleware.GetDocumentType(c), docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Export handles GET /api/v1/{type}/export
// @Summary Download documents as CSV or XLSX
// @Tags export
// @Produce octet-stream
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} binary "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Router /{type}/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	docType := middleware.GetDocumentType(c)
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		HandleError(c, domain.ErrUnsupportedExportFormat)
		return
	}

	var buf bytes.Buffer
	if _, err := h.exportService.Export(c.Request.Context(), docType, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := h.exportService.Filename(docType, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// UploadExport handles POST /api/v1/{type}/export
// @Summary Store an XLSX export and get a download link
// @Tags export
// @Produce json
// @Param type path string true "Collection" Enums(purchase-orders, returns, payments, invoices)
// @Success 201 {object} Response{data=service.ExportUpload} "Presigned download URL"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /{type}/export [post]
func (h *DocumentHandler) UploadExport(c *gin.Context) {
	out, err := h.exportService.Upload(c.Request.Context(), middleware.GetDocumentType(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, out)
}
