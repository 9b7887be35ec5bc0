package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/billing"
	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
	"khata/internal/validator/submission"
	"khata/mocks"
)

func newDocumentService(notify string) (service.DocumentService, *mocks.MockDocumentRepo, *mocks.MockEmailSender) {
	repo := new(mocks.MockDocumentRepo)
	sender := new(mocks.MockEmailSender)
	emailCfg := config.EmailConfig{NotifyAddress: notify}
	billingCfg := config.BillingConfig{DefaultAutoRoundOff: true, DefaultDiscountMode: "percentage"}
	return service.NewDocumentService(repo, sender, &emailCfg, &billingCfg), repo, sender
}

func boundLine(qty, rate, disc int64, label string) billing.LineItem {
	ref := uuid.New()
	l := billing.NewLineItem()
	l.ItemRef = &ref
	l.Name = "Item"
	l.Qty = decimal.NewFromInt(qty)
	l.Rate = decimal.NewFromInt(rate)
	l.DiscountPercent = decimal.NewFromInt(disc)
	l.GSTLabel = label
	return l
}

// submittable is two 212.40 lines plus 50 charges less 5%: 451.06 -> 451.
func submittable() billing.Document {
	return billing.Document{
		Header: billing.Header{
			DocumentNo:           "PO-0042",
			Date:                 "2024-04-01",
			Party:                billing.Party{ID: "p-1", Name: "Sharma Traders", Mobile: "9876543210"},
			AdditionalCharges:    decimal.NewFromInt(50),
			OverallDiscountValue: decimal.NewFromInt(5),
			OverallDiscountMode:  billing.DiscountPercentage,
			AutoRoundOff:         true,
		},
		Items: []billing.LineItem{
			boundLine(2, 100, 10, "GST @ 18%"),
			boundLine(2, 100, 10, "GST @ 18%"),
			billing.NewLineItem(),
		},
	}
}

func TestDocumentService_New(t *testing.T) {
	svc, _, _ := newDocumentService("")

	preview, err := svc.New(domain.DocumentTypeSalesReturn)
	require.NoError(t, err)
	require.Len(t, preview.Document.Items, 1)
	assert.True(t, preview.Document.Items[0].IsBlank())
	assert.True(t, preview.Document.Header.AutoRoundOff)
	assert.Equal(t, billing.DiscountPercentage, preview.Document.Header.OverallDiscountMode)
	_, err = time.Parse(submission.DateLayout, preview.Document.Header.Date)
	assert.NoError(t, err)
	assert.True(t, preview.Totals.RoundedTotal.IsZero())
}

func TestDocumentService_New_InvalidType(t *testing.T) {
	svc, _, _ := newDocumentService("")
	_, err := svc.New("quotation")
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDocumentService_Preview(t *testing.T) {
	svc, _, _ := newDocumentService("")

	doc := submittable()
	doc.Items[0].Amount = decimal.NewFromInt(999999)

	preview := svc.Preview(doc)
	assert.True(t, preview.Document.Items[0].Amount.Equal(decimal.RequireFromString("212.4")))
	assert.True(t, preview.Totals.RoundedTotal.Equal(decimal.NewFromInt(451)))
	assert.True(t, preview.Totals.RoundOffDelta.Equal(decimal.RequireFromString("-0.06")))
}

func TestDocumentService_Submit_Success(t *testing.T) {
	svc, repo, sender := newDocumentService("owner@example.com")

	var saved *domain.Document
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Document) }).
		Return(nil)
	sender.On("SendSubmissionNotice", mock.Anything, "owner@example.com", mock.MatchedBy(func(n port.SubmissionNotice) bool {
		return n.DocumentNo == "PO-0042" && n.RoundedTotal == "451.00" && n.RoundOff == "-0.06" && n.ItemCount == 2
	})).Return(nil)

	rec, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypePurchaseOrder,
		Document:     submittable(),
	})
	require.NoError(t, err)
	require.Same(t, saved, rec)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, domain.DocumentTypePurchaseOrder, rec.DocumentType)
	assert.Equal(t, "PO-0042", rec.DocumentNo)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), rec.DocumentDate)
	assert.Equal(t, "p-1", rec.PartyID)
	assert.Equal(t, "Sharma Traders", rec.PartyName)
	assert.Equal(t, 2, rec.ItemCount, "blank lines are not stored")
	assert.True(t, rec.RoundedTotal.Equal(decimal.NewFromInt(451)))
	assert.True(t, rec.TotalTax.Equal(decimal.RequireFromString("64.8")))

	var items []billing.PayloadItem
	require.NoError(t, json.Unmarshal(rec.Items, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "GST @ 18%", items[0].GSTRate)
	assert.True(t, items[0].GSTAmount.Equal(decimal.RequireFromString("32.4")))

	var totals billing.Totals
	require.NoError(t, json.Unmarshal(rec.Totals, &totals))
	assert.True(t, totals.RoundOffDelta.Equal(decimal.RequireFromString("-0.06")))

	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestDocumentService_Submit_NoNotifyAddress(t *testing.T) {
	svc, repo, sender := newDocumentService("")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypeInvoice,
		Document:     submittable(),
	})
	require.NoError(t, err)
	sender.AssertNotCalled(t, "SendSubmissionNotice", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Submit_NotifyFailureIgnored(t *testing.T) {
	svc, repo, sender := newDocumentService("owner@example.com")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	sender.On("SendSubmissionNotice", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	rec, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypePayment,
		Document:     submittable(),
	})
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestDocumentService_Submit_ValidationFails(t *testing.T) {
	svc, repo, _ := newDocumentService("")

	doc := submittable()
	doc.Header.Party = billing.Party{}
	doc.Items = []billing.LineItem{billing.NewLineItem()}

	_, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypeInvoice,
		Document:     doc,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubmissionInvalid)

	var ve *submission.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Issues, 2)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentService_Submit_Duplicate(t *testing.T) {
	svc, repo, sender := newDocumentService("owner@example.com")
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateDocumentNo)

	_, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypeInvoice,
		Document:     submittable(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateDocumentNo)
	sender.AssertNotCalled(t, "SendSubmissionNotice", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Submit_InvalidType(t *testing.T) {
	svc, _, _ := newDocumentService("")
	_, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: "estimate",
		Document:     submittable(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDocumentService_Update(t *testing.T) {
	svc, repo, sender := newDocumentService("owner@example.com")

	docID := uuid.New()
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.On("GetByID", mock.Anything, domain.DocumentTypeInvoice, docID).
		Return(&domain.Document{ID: docID, DocumentType: domain.DocumentTypeInvoice, CreatedAt: created}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.ID == docID && d.CreatedAt.Equal(created) && d.DocumentNo == "INV-2"
	})).Return(nil)

	doc := submittable()
	doc.Header.DocumentNo = "INV-2"
	rec, err := svc.Update(context.Background(), &service.UpdateDocumentInput{
		DocumentType: domain.DocumentTypeInvoice,
		DocumentID:   docID,
		Document:     doc,
	})
	require.NoError(t, err)
	assert.Equal(t, docID, rec.ID)
	repo.AssertExpectations(t)
	sender.AssertNotCalled(t, "SendSubmissionNotice", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Update_NotFound(t *testing.T) {
	svc, repo, _ := newDocumentService("")
	docID := uuid.New()
	repo.On("GetByID", mock.Anything, domain.DocumentTypeInvoice, docID).Return(nil, domain.ErrDocumentNotFound)

	_, err := svc.Update(context.Background(), &service.UpdateDocumentInput{
		DocumentType: domain.DocumentTypeInvoice,
		DocumentID:   docID,
		Document:     submittable(),
	})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDocumentService_Edit(t *testing.T) {
	svc, repo, _ := newDocumentService("")

	var saved *domain.Document
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Document) }).
		Return(nil)
	_, err := svc.Submit(context.Background(), &service.SubmitDocumentInput{
		DocumentType: domain.DocumentTypeSalesReturn,
		Document:     submittable(),
	})
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, domain.DocumentTypeSalesReturn, saved.ID).Return(saved, nil)

	preview, err := svc.Edit(context.Background(), domain.DocumentTypeSalesReturn, saved.ID)
	require.NoError(t, err)
	assert.Len(t, preview.Document.Items, 2)
	assert.Equal(t, "PO-0042", preview.Document.Header.DocumentNo)
	assert.True(t, preview.Totals.RoundedTotal.Equal(decimal.NewFromInt(451)))
}

func TestDocumentService_ListAndDelete(t *testing.T) {
	svc, repo, _ := newDocumentService("")
	docs := []domain.Document{{ID: uuid.New()}, {ID: uuid.New()}}
	repo.On("ListByType", mock.Anything, domain.DocumentTypePayment, 20, 10).Return(docs, 22, nil)

	got, total, err := svc.List(context.Background(), domain.DocumentTypePayment, 20, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 22, total)

	docID := uuid.New()
	repo.On("Delete", mock.Anything, domain.DocumentTypePayment, docID).Return(domain.ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), domain.DocumentTypePayment, docID), domain.ErrDocumentNotFound)

	_, _, err = svc.List(context.Background(), "bogus", 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}
