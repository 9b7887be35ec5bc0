package noop

import (
	"context"
	"log"

	"khata/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs notices.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSubmissionNotice(_ context.Context, toEmail string, n port.SubmissionNotice) error {
	log.Printf("[NOOP EMAIL] Submission notice to %s: %s %s (%s) total %s, round off %s",
		toEmail, n.DocumentType, n.DocumentNo, n.PartyName, n.RoundedTotal, n.RoundOff)
	return nil
}
