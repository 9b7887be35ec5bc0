// Package seed turns spreadsheet masters (item catalog, HSN/SAC codes) into
// batched SQL seed scripts.
package seed

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultBatchSize is the number of rows per multi-row INSERT.
const DefaultBatchSize = 500

// Script describes one seed file: a target table and its conflict clause.
// Rows passed to Write must already be rendered SQL literals, one per column.
type Script struct {
	Table      string
	Columns    []string
	OnConflict string
	BatchSize  int
	Comments   []string
}

// Write renders rows as a single transaction of batched INSERT statements.
func (s Script) Write(w io.Writer, rows [][]string) error {
	batch := s.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	var b strings.Builder
	for _, c := range s.Comments {
		fmt.Fprintf(&b, "-- %s\n", c)
	}
	fmt.Fprintf(&b, "-- %d rows in batches of %d.\nBEGIN;\n", len(rows), batch)

	for i := 0; i < len(rows); i += batch {
		end := i + batch
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.writeBatch(&b, rows[i:end]); err != nil {
			return fmt.Errorf("batch at offset %d: %w", i, err)
		}
	}

	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (s Script) writeBatch(b *strings.Builder, rows [][]string) error {
	fmt.Fprintf(b, "\nINSERT INTO %s (%s) VALUES\n", s.Table, strings.Join(s.Columns, ", "))
	for i, row := range rows {
		if len(row) != len(s.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(s.Columns))
		}
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(b, "  (%s)", strings.Join(row, ", "))
	}
	if s.OnConflict != "" {
		b.WriteString("\n" + s.OnConflict)
	}
	b.WriteString(";\n")
	return nil
}

// Quote renders s as a SQL string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Numeric renders d as a SQL numeric literal.
func Numeric(d decimal.Decimal) string {
	return d.String()
}

// Cell returns the trimmed value at idx, or "" when the row is short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
