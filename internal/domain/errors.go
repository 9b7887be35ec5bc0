package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrCatalogItemNotFound     = errors.New("catalog item not found")
	ErrDuplicateDocumentNo     = errors.New("document number already exists for this document type")
	ErrInvalidDocumentType     = errors.New("invalid document type")
	ErrSubmissionInvalid       = errors.New("document failed submission checks")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUploadFailed            = errors.New("file upload to storage failed")
)
