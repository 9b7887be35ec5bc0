// Package submission checks the business rules a document must satisfy
// before it is persisted. The totals engine itself never rejects input.
package submission

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"khata/internal/billing"
	"khata/internal/domain"
)

// DateLayout is the accepted format of Header.Date.
const DateLayout = "2006-01-02"

var (
	gstinPattern  = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// FieldError is a single failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed check of a submission. It unwraps to
// domain.ErrSubmissionInvalid.
type ValidationError struct {
	Issues []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return fmt.Sprintf("%s: %s", domain.ErrSubmissionInvalid.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrSubmissionInvalid
}

// Validate returns a *ValidationError listing every failed check of d, or nil.
func Validate(d billing.Document) error {
	var issues []FieldError
	add := func(field, msg string) {
		issues = append(issues, FieldError{Field: field, Message: msg})
	}

	h := d.Header
	if strings.TrimSpace(h.DocumentNo) == "" {
		add("header.document_no", "document number is required")
	}
	if h.Date != "" {
		if _, err := time.Parse(DateLayout, h.Date); err != nil {
			add("header.date", "date must be in YYYY-MM-DD format")
		}
	}

	if strings.TrimSpace(h.Party.ID) == "" && strings.TrimSpace(h.Party.Name) == "" {
		add("header.party", "a party must be selected")
	}
	if h.Party.Mobile != "" && !mobilePattern.MatchString(h.Party.Mobile) {
		add("header.party.mobile", "mobile must be a 10-digit Indian number starting with 6-9")
	}
	if h.Party.GSTIN != "" && !gstinPattern.MatchString(strings.ToUpper(h.Party.GSTIN)) {
		add("header.party.gstin", "GSTIN format is invalid")
	}

	bound := 0
	for i := range d.Items {
		if d.Items[i].ItemRef != nil {
			bound++
		}
	}
	if bound == 0 {
		add("items", "at least one line must reference a catalog item")
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ParseDate returns the header date, or today when it is empty.
func ParseDate(h billing.Header, now time.Time) (time.Time, error) {
	if h.Date == "" {
		y, m, dd := now.Date()
		return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, h.Date)
}
