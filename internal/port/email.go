package port

import "context"

// SubmissionNotice summarizes a submitted document for notification.
type SubmissionNotice struct {
	DocumentType string
	DocumentNo   string
	DocumentDate string
	PartyName    string
	ItemCount    int
	RoundedTotal string
	RoundOff     string
	TotalTax     string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendSubmissionNotice(ctx context.Context, toEmail string, notice SubmissionNotice) error
}
