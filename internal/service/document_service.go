package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"khata/internal/billing"
	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/validator/submission"
)

// SubmitDocumentInput is the DTO for submitting a new document.
type SubmitDocumentInput struct {
	DocumentType domain.DocumentType
	Document     billing.Document
}

// UpdateDocumentInput is the DTO for re-submitting an existing document.
type UpdateDocumentInput struct {
	DocumentType domain.DocumentType
	DocumentID   uuid.UUID
	Document     billing.Document
}

// DocumentPreview is a recomputed snapshot with its totals.
type DocumentPreview struct {
	Document billing.Document `json:"document"`
	Totals   billing.Totals   `json:"totals"`
}

// DocumentService defines the billing document contract shared by every
// document type.
type DocumentService interface {
	New(docType domain.DocumentType) (*DocumentPreview, error)
	Preview(doc billing.Document) *DocumentPreview
	Submit(ctx context.Context, input *SubmitDocumentInput) (*domain.Document, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error)
	Edit(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*DocumentPreview, error)
	List(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error)
	Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error
}

type documentService struct {
	docRepo     port.DocumentRepository
	emailSender port.EmailSender
	emailCfg    *config.EmailConfig
	billingCfg  *config.BillingConfig
	now         func() time.Time
}

// NewDocumentService creates a new DocumentService implementation.
// Submission notices are skipped when emailCfg.NotifyAddress is empty.
func NewDocumentService(
	docRepo port.DocumentRepository,
	emailSender port.EmailSender,
	emailCfg *config.EmailConfig,
	billingCfg *config.BillingConfig,
) DocumentService {
	return &documentService{
		docRepo:     docRepo,
		emailSender: emailSender,
		emailCfg:    emailCfg,
		billingCfg:  billingCfg,
		now:         time.Now,
	}
}

func validateType(docType domain.DocumentType) error {
	if !domain.ValidDocumentTypes[docType] {
		return domain.ErrInvalidDocumentType
	}
	return nil
}

func (s *documentService) New(docType domain.DocumentType) (*DocumentPreview, error) {
	if err := validateType(docType); err != nil {
		return nil, err
	}
	doc := billing.NewDocument(billing.Header{
		Date:                s.now().Format(submission.DateLayout),
		OverallDiscountMode: billing.DiscountMode(s.billingCfg.DefaultDiscountMode),
		AutoRoundOff:        s.billingCfg.DefaultAutoRoundOff,
	})
	return s.Preview(doc), nil
}

func (s *documentService) Preview(doc billing.Document) *DocumentPreview {
	doc = doc.Recompute()
	return &DocumentPreview{Document: doc, Totals: doc.Totals()}
}

func (s *documentService) Submit(ctx context.Context, input *SubmitDocumentInput) (*domain.Document, error) {
	if err := validateType(input.DocumentType); err != nil {
		return nil, err
	}

	rec, payload, err := s.buildRecord(input.DocumentType, input.Document)
	if err != nil {
		return nil, err
	}
	rec.ID = uuid.New()

	log.Printf("documentService.Submit: creating %s %s (%d lines, total %s)",
		rec.DocumentType, rec.DocumentNo, rec.ItemCount, rec.RoundedTotal.StringFixed(2))

	if err := s.docRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.notify(ctx, rec, &payload)
	return rec, nil
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error) {
	if err := validateType(input.DocumentType); err != nil {
		return nil, err
	}

	existing, err := s.docRepo.GetByID(ctx, input.DocumentType, input.DocumentID)
	if err != nil {
		return nil, err
	}

	rec, _, err := s.buildRecord(input.DocumentType, input.Document)
	if err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := s.docRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *documentService) GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error) {
	if err := validateType(docType); err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, docType, docID)
}

func (s *documentService) Edit(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*DocumentPreview, error) {
	rec, err := s.GetByID(ctx, docType, docID)
	if err != nil {
		return nil, err
	}
	payload, err := rec.Payload()
	if err != nil {
		return nil, fmt.Errorf("documentService.Edit: %w", err)
	}
	return s.Preview(billing.FromPayload(payload.Header, payload.Items)), nil
}

func (s *documentService) List(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	if err := validateType(docType); err != nil {
		return nil, 0, err
	}
	return s.docRepo.ListByType(ctx, docType, offset, limit)
}

func (s *documentService) Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error {
	if err := validateType(docType); err != nil {
		return err
	}
	return s.docRepo.Delete(ctx, docType, docID)
}

// buildRecord validates doc and turns its submission payload into a row.
func (s *documentService) buildRecord(docType domain.DocumentType, doc billing.Document) (*domain.Document, billing.Payload, error) {
	doc = doc.Recompute()
	if err := submission.Validate(doc); err != nil {
		return nil, billing.Payload{}, err
	}

	date, err := submission.ParseDate(doc.Header, s.now())
	if err != nil {
		return nil, billing.Payload{}, err
	}

	payload := billing.BuildPayload(doc)
	// Stored snapshots always carry the resolved date.
	payload.Header.Date = date.Format(submission.DateLayout)

	header, err := json.Marshal(payload.Header)
	if err != nil {
		return nil, payload, fmt.Errorf("documentService.buildRecord header: %w", err)
	}
	items, err := json.Marshal(payload.Items)
	if err != nil {
		return nil, payload, fmt.Errorf("documentService.buildRecord items: %w", err)
	}
	totals, err := json.Marshal(payload.Totals)
	if err != nil {
		return nil, payload, fmt.Errorf("documentService.buildRecord totals: %w", err)
	}

	return &domain.Document{
		DocumentType: docType,
		DocumentNo:   payload.Header.DocumentNo,
		DocumentDate: date,
		PartyID:      payload.Header.Party.ID,
		PartyName:    payload.Header.Party.Name,
		Header:       header,
		Items:        items,
		Totals:       totals,
		ItemCount:    len(payload.Items),
		RoundedTotal: payload.Totals.RoundedTotal,
		TotalTax:     payload.Totals.TotalTax,
	}, payload, nil
}

// notify emails a submission summary. Failures are logged only.
func (s *documentService) notify(ctx context.Context, rec *domain.Document, payload *billing.Payload) {
	if s.emailSender == nil || s.emailCfg.NotifyAddress == "" {
		return
	}
	notice := port.SubmissionNotice{
		DocumentType: string(rec.DocumentType),
		DocumentNo:   rec.DocumentNo,
		DocumentDate: rec.DocumentDate.Format(submission.DateLayout),
		PartyName:    rec.PartyName,
		ItemCount:    rec.ItemCount,
		RoundedTotal: payload.Totals.RoundedTotal.StringFixed(2),
		RoundOff:     payload.Totals.RoundOffDelta.StringFixed(2),
		TotalTax:     payload.Totals.TotalTax.StringFixed(2),
	}
	if err := s.emailSender.SendSubmissionNotice(ctx, s.emailCfg.NotifyAddress, notice); err != nil {
		log.Printf("documentService.notify: failed to send notice for %s %s: %v", rec.DocumentType, rec.DocumentNo, err)
	}
}
