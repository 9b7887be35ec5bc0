package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"khata/internal/config"
	"khata/internal/csvexport"
	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/xlsxexport"
)

// ExportUpload describes an export stored in object storage.
type ExportUpload struct {
	Key       string `json:"key"`
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
	Documents int    `json:"documents"`
}

// ExportService defines document export to CSV/XLSX.
type ExportService interface {
	Export(ctx context.Context, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) (int, error)
	Upload(ctx context.Context, docType domain.DocumentType) (*ExportUpload, error)
	Filename(docType domain.DocumentType, format domain.ExportFormat) string
}

type exportService struct {
	docRepo   port.DocumentRepository
	storage   port.ExportStore
	s3Cfg     *config.S3Config
	exportCfg *config.ExportConfig
	now       func() time.Time
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	docRepo port.DocumentRepository,
	storage port.ExportStore,
	s3Cfg *config.S3Config,
	exportCfg *config.ExportConfig,
) ExportService {
	return &exportService{
		docRepo:   docRepo,
		storage:   storage,
		s3Cfg:     s3Cfg,
		exportCfg: exportCfg,
		now:       time.Now,
	}
}

func (s *exportService) Filename(docType domain.DocumentType, format domain.ExportFormat) string {
	return csvexport.BuildFilename(string(docType), string(format), s.now())
}

// Export writes every document of docType to w and returns how many were written.
func (s *exportService) Export(ctx context.Context, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) (int, error) {
	if err := validateType(docType); err != nil {
		return 0, err
	}
	switch format {
	case domain.ExportFormatCSV:
		return s.writeCSV(ctx, docType, w)
	case domain.ExportFormatXLSX:
		return s.writeXLSX(ctx, docType, w)
	default:
		return 0, domain.ErrUnsupportedExportFormat
	}
}

// Upload renders an XLSX export, stores it and returns a presigned download URL.
func (s *exportService) Upload(ctx context.Context, docType domain.DocumentType) (*ExportUpload, error) {
	if err := validateType(docType); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	n, err := s.writeXLSX(ctx, docType, &buf)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s/%s/%s.xlsx", s.exportCfg.KeyPrefix, docType, now.Format("20060102T150405Z"))
	filename := s.Filename(docType, domain.ExportFormatXLSX)

	log.Printf("exportService.Upload: uploading %d %s documents to %s (%d bytes)", n, docType, key, buf.Len())

	if _, err := s.storage.Put(ctx, port.ExportObject{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: domain.ExportContentTypes[domain.ExportFormatXLSX],
		Filename:    filename,
	}); err != nil {
		log.Printf("exportService.Upload: upload failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	url, err := s.storage.DownloadURL(ctx, s.s3Cfg.Bucket, key, time.Duration(s.s3Cfg.PresignExpiry)*time.Second)
	if err != nil {
		if delErr := s.storage.Remove(ctx, s.s3Cfg.Bucket, key); delErr != nil {
			log.Printf("exportService.Upload: cleanup of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("presigning export: %w", err)
	}

	return &ExportUpload{
		Key:       key,
		Filename:  filename,
		URL:       url,
		ExpiresIn: s.s3Cfg.PresignExpiry,
		Documents: n,
	}, nil
}

// eachBatch pages through the documents of docType in export batch size.
func (s *exportService) eachBatch(ctx context.Context, docType domain.DocumentType, fn func([]domain.Document) error) (int, error) {
	count := 0
	for offset := 0; ; offset += s.exportCfg.BatchSize {
		docs, total, err := s.docRepo.ListByType(ctx, docType, offset, s.exportCfg.BatchSize)
		if err != nil {
			return count, err
		}
		if len(docs) == 0 {
			return count, nil
		}
		if err := fn(docs); err != nil {
			return count, err
		}
		count += len(docs)
		if count >= total || len(docs) < s.exportCfg.BatchSize {
			return count, nil
		}
	}
}

func (s *exportService) writeCSV(ctx context.Context, docType domain.DocumentType, w io.Writer) (int, error) {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return 0, fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return 0, fmt.Errorf("writing CSV header: %w", err)
	}

	n, err := s.eachBatch(ctx, docType, func(docs []domain.Document) error {
		if err := cw.WriteDocuments(docs); err != nil {
			return fmt.Errorf("writing CSV rows: %w", err)
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return n, err
	}
	cw.Flush()
	return n, cw.Error()
}

func (s *exportService) writeXLSX(ctx context.Context, docType domain.DocumentType, w io.Writer) (int, error) {
	wb, err := xlsxexport.NewWorkbook()
	if err != nil {
		return 0, err
	}
	defer func() { _ = wb.Close() }()

	n, err := s.eachBatch(ctx, docType, wb.AddDocuments)
	if err != nil {
		return n, err
	}
	if _, err := wb.WriteTo(w); err != nil {
		return n, fmt.Errorf("writing workbook: %w", err)
	}
	return n, nil
}
