package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the document summary header row shared by the CSV and XLSX exports.
var Columns = []string{
	"Document Type",
	"Document No",
	"Date",
	"Party ID",
	"Party Name",
	"Party Mobile",
	"Party GSTIN",
	"Line Count",
	"Subtotal",
	"Additional Charges",
	"Discount Mode",
	"Discount",
	"Taxable Amount",
	"Total Before Round",
	"Round Off",
	"Rounded Total",
	"Total Tax",
	"Created At",
	"Updated At",
}

// Writer wraps csv.Writer for exporting documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(DocumentRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// DocumentRow converts a document to a row matching Columns. When the stored
// snapshot cannot be decoded only the indexed columns are filled.
func DocumentRow(doc *domain.Document) []string {
	row := make([]string, len(Columns))

	row[0] = string(doc.DocumentType)
	row[1] = doc.DocumentNo
	row[2] = doc.DocumentDate.Format("2006-01-02")
	row[3] = doc.PartyID
	row[4] = doc.PartyName
	row[7] = strconv.Itoa(doc.ItemCount)
	row[15] = FormatMoney(doc.RoundedTotal)
	row[16] = FormatMoney(doc.TotalTax)
	row[17] = doc.CreatedAt.Format(time.RFC3339)
	row[18] = doc.UpdatedAt.Format(time.RFC3339)

	p, err := doc.Payload()
	if err != nil {
		return row
	}

	row[5] = p.Header.Party.Mobile
	row[6] = p.Header.Party.GSTIN
	row[8] = FormatMoney(p.Totals.Subtotal)
	row[9] = FormatMoney(p.Header.AdditionalCharges)
	row[10] = string(p.Header.OverallDiscountMode)
	row[11] = FormatMoney(p.Totals.DiscountValue)
	row[12] = FormatMoney(p.Totals.TaxableAmount)
	row[13] = FormatMoney(p.Totals.TotalBeforeRound)
	row[14] = FormatMoney(p.Totals.RoundOffDelta)

	return row
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
