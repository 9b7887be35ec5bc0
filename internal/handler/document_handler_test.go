package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/billing"
	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/middleware"
	"khata/internal/service"
	"khata/internal/validator/submission"
	"khata/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDocumentHandler() (*handler.DocumentHandler, *mocks.MockDocumentService, *mocks.MockExportService) {
	docSvc := new(mocks.MockDocumentService)
	exportSvc := new(mocks.MockExportService)
	return handler.NewDocumentHandler(docSvc, exportSvc), docSvc, exportSvc
}

// newTypedContext builds a test context bound to docType, as the router does.
func newTypedContext(method, path string, body []byte, docType domain.DocumentType) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body != nil {
		c.Request, _ = http.NewRequest(method, path, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request, _ = http.NewRequest(method, path, http.NoBody)
	}
	c.Set(middleware.ContextKeyDocumentType, docType)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const documentBody = `{
	"header": {
		"document_no": "PO-0042",
		"date": "2024-04-01",
		"party": {"id": "p-1", "name": "Sharma Traders"},
		"additional_charges": 50,
		"overall_discount_value": "5",
		"overall_discount_mode": "percentage",
		"auto_round_off": true
	},
	"items": [
		{"item_id": "550e8400-e29b-41d4-a716-446655440000", "name": "Widget", "qty": "2", "rate": 100, "discount": 10, "gst_rate": "GST @ 18%"},
		{"qty": "abc", "rate": null}
	]
}`

func TestDocumentHandler_Submit_Success(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()

	rec := &domain.Document{ID: uuid.New(), DocumentType: domain.DocumentTypePurchaseOrder, DocumentNo: "PO-0042"}
	docSvc.On("Submit", mock.Anything, mock.MatchedBy(func(in *service.SubmitDocumentInput) bool {
		return in.DocumentType == domain.DocumentTypePurchaseOrder &&
			len(in.Document.Items) == 2 &&
			in.Document.Items[0].Amount.Equal(decimal.RequireFromString("212.4")) &&
			in.Document.Items[1].Qty.IsZero() &&
			in.Document.Header.AdditionalCharges.Equal(decimal.NewFromInt(50))
	})).Return(rec, nil)

	c, w := newTypedContext(http.MethodPost, "/api/v1/purchase-orders", []byte(documentBody), domain.DocumentTypePurchaseOrder)
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "PO-0042", data["document_no"])
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_Submit_InvalidBody(t *testing.T) {
	h, _, _ := newDocumentHandler()

	c, w := newTypedContext(http.MethodPost, "/api/v1/invoices", []byte(`not json`), domain.DocumentTypeInvoice)
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp["error"].(map[string]interface{})["code"])
}

func TestDocumentHandler_Submit_ValidationDetails(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()

	docSvc.On("Submit", mock.Anything, mock.Anything).Return(nil, &submission.ValidationError{
		Issues: []submission.FieldError{
			{Field: "header.party", Message: "a party must be selected"},
			{Field: "items", Message: "at least one line must reference a catalog item"},
		},
	})

	c, w := newTypedContext(http.MethodPost, "/api/v1/invoices", []byte(`{"header":{},"items":[]}`), domain.DocumentTypeInvoice)
	h.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	apiErr := resp["error"].(map[string]interface{})
	assert.Equal(t, "SUBMISSION_INVALID", apiErr["code"])
	details := apiErr["details"].([]interface{})
	require.Len(t, details, 2)
	assert.Equal(t, "header.party", details[0].(map[string]interface{})["field"])
}

func TestDocumentHandler_Submit_Duplicate(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docSvc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateDocumentNo)

	c, w := newTypedContext(http.MethodPost, "/api/v1/invoices", []byte(documentBody), domain.DocumentTypeInvoice)
	h.Submit(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDocumentHandler_Preview(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()

	docSvc.On("Preview", mock.AnythingOfType("billing.Document")).Return(&service.DocumentPreview{
		Totals: billing.Totals{RoundedTotal: decimal.NewFromInt(451)},
	})

	c, w := newTypedContext(http.MethodPost, "/api/v1/purchase-orders/preview", []byte(documentBody), domain.DocumentTypePurchaseOrder)
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	totals := resp["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "451", totals["rounded_total"])
}

func TestDocumentHandler_New(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docSvc.On("New", domain.DocumentTypePayment).Return(&service.DocumentPreview{
		Document: billing.NewDocument(billing.Header{AutoRoundOff: true}),
	}, nil)

	c, w := newTypedContext(http.MethodGet, "/api/v1/payments/new", nil, domain.DocumentTypePayment)
	h.New(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	doc := resp["data"].(map[string]interface{})["document"].(map[string]interface{})
	assert.Len(t, doc["items"], 1)
}

func TestDocumentHandler_GetByID(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docID := uuid.New()
	docSvc.On("GetByID", mock.Anything, domain.DocumentTypeSalesReturn, docID).
		Return(&domain.Document{ID: docID, DocumentNo: "SR-1"}, nil)

	c, w := newTypedContext(http.MethodGet, "/api/v1/returns/"+docID.String(), nil, domain.DocumentTypeSalesReturn)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "SR-1", resp["data"].(map[string]interface{})["document_no"])
}

func TestDocumentHandler_GetByID_InvalidID(t *testing.T) {
	h, _, _ := newDocumentHandler()

	c, w := newTypedContext(http.MethodGet, "/api/v1/returns/nope", nil, domain.DocumentTypeSalesReturn)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_GetByID_NotFound(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docID := uuid.New()
	docSvc.On("GetByID", mock.Anything, domain.DocumentTypeInvoice, docID).Return(nil, domain.ErrDocumentNotFound)

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices/"+docID.String(), nil, domain.DocumentTypeInvoice)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp["error"].(map[string]interface{})["code"])
}

func TestDocumentHandler_List(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docs := []domain.Document{{ID: uuid.New()}, {ID: uuid.New()}}
	docSvc.On("List", mock.Anything, domain.DocumentTypeInvoice, 10, 20).Return(docs, 12, nil)

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices?offset=10&limit=500", nil, domain.DocumentTypeInvoice)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, float64(12), meta["total"])
	assert.Equal(t, float64(20), meta["limit"], "limit above 100 falls back to 20")
}

func TestDocumentHandler_Update(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docID := uuid.New()
	docSvc.On("Update", mock.Anything, mock.MatchedBy(func(in *service.UpdateDocumentInput) bool {
		return in.DocumentID == docID && in.DocumentType == domain.DocumentTypeInvoice
	})).Return(&domain.Document{ID: docID}, nil)

	c, w := newTypedContext(http.MethodPut, "/api/v1/invoices/"+docID.String(), []byte(documentBody), domain.DocumentTypeInvoice)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_Edit(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docID := uuid.New()
	docSvc.On("Edit", mock.Anything, domain.DocumentTypeInvoice, docID).
		Return(&service.DocumentPreview{Document: billing.NewDocument(billing.Header{DocumentNo: "INV-3"})}, nil)

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices/"+docID.String()+"/edit", nil, domain.DocumentTypeInvoice)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	h.Edit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"INV-3"`)
}

func TestDocumentHandler_Delete(t *testing.T) {
	h, docSvc, _ := newDocumentHandler()
	docID := uuid.New()
	docSvc.On("Delete", mock.Anything, domain.DocumentTypePayment, docID).Return(nil)

	c, w := newTypedContext(http.MethodDelete, "/api/v1/payments/"+docID.String(), nil, domain.DocumentTypePayment)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentHandler_Export_CSV(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()
	exportSvc.ExportBody = []byte("\xEF\xBB\xBFDocument Type\n")
	exportSvc.On("Export", mock.Anything, domain.DocumentTypeInvoice, domain.ExportFormatCSV, mock.Anything).Return(0, nil)
	exportSvc.On("Filename", domain.DocumentTypeInvoice, domain.ExportFormatCSV).Return("invoice_2025-01-01.csv")

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices/export", nil, domain.DocumentTypeInvoice)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice_2025-01-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
}

func TestDocumentHandler_Export_XLSXContentType(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()
	exportSvc.On("Export", mock.Anything, domain.DocumentTypeSalesReturn, domain.ExportFormatXLSX, mock.Anything).Return(0, nil)
	exportSvc.On("Filename", domain.DocumentTypeSalesReturn, domain.ExportFormatXLSX).Return("sales_return_2025-01-01.xlsx")

	c, w := newTypedContext(http.MethodGet, "/api/v1/returns/export?format=xlsx", nil, domain.DocumentTypeSalesReturn)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ExportContentTypes[domain.ExportFormatXLSX], w.Header().Get("Content-Type"))
}

func TestDocumentHandler_Export_UnsupportedFormat(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices/export?format=pdf", nil, domain.DocumentTypeInvoice)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	exportSvc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Export_ServiceError(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()
	exportSvc.On("Export", mock.Anything, domain.DocumentTypeInvoice, domain.ExportFormatCSV, mock.Anything).
		Return(0, errors.New("db down"))

	c, w := newTypedContext(http.MethodGet, "/api/v1/invoices/export", nil, domain.DocumentTypeInvoice)
	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestDocumentHandler_UploadExport(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()
	exportSvc.On("Upload", mock.Anything, domain.DocumentTypePurchaseOrder).Return(&service.ExportUpload{
		Key: "exports/purchase_order/20250101T000000Z.xlsx",
		URL: "https://signed.example/x",
	}, nil)

	c, w := newTypedContext(http.MethodPost, "/api/v1/purchase-orders/export", nil, domain.DocumentTypePurchaseOrder)
	h.UploadExport(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "https://signed.example/x", resp["data"].(map[string]interface{})["url"])
}

func TestDocumentHandler_UploadExport_Failed(t *testing.T) {
	h, _, exportSvc := newDocumentHandler()
	exportSvc.On("Upload", mock.Anything, domain.DocumentTypeInvoice).Return(nil, domain.ErrUploadFailed)

	c, w := newTypedContext(http.MethodPost, "/api/v1/invoices/export", nil, domain.DocumentTypeInvoice)
	h.UploadExport(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UPLOAD_FAILED", resp["error"].(map[string]interface{})["code"])
}
