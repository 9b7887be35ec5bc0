package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/validator/submission"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []submission.FieldError `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrCatalogItemNotFound):
		return http.StatusNotFound, "ITEM_NOT_FOUND", "catalog item not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateDocumentNo):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_NO", "document number already exists for this document type"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type; allowed: purchase_order, sales_return, payment, invoice"
	case errors.Is(err, domain.ErrSubmissionInvalid):
		return http.StatusUnprocessableEntity, "SUBMISSION_INVALID", "document failed submission checks"
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "export upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Submission failures carry their per-field issues as details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}

	apiErr := &APIError{Code: code, Message: msg}
	var ve *submission.ValidationError
	if errors.As(err, &ve) {
		apiErr.Details = ve.Issues
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
