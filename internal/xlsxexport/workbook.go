// Package xlsxexport renders billing documents as an Excel workbook with a
// document summary sheet and a line item sheet.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"khata/internal/csvexport"
	"khata/internal/domain"
)

const (
	DocumentsSheet = "Documents"
	LinesSheet     = "Line Items"
)

// LineColumns is the header row of the line item sheet.
var LineColumns = []string{
	"Document Type",
	"Document No",
	"Date",
	"Party Name",
	"Item ID",
	"Name",
	"HSN",
	"Qty",
	"Unit",
	"MRP",
	"Rate",
	"Discount %",
	"GST Rate",
	"GST Amount",
	"Amount",
}

// numericDocumentCols are the summary columns written as numbers rather than text.
var numericDocumentCols = map[int]bool{7: true, 8: true, 9: true, 11: true, 12: true, 13: true, 14: true, 15: true, 16: true}

// Workbook accumulates documents into an excelize file.
type Workbook struct {
	f        *excelize.File
	docRow   int
	lineRow  int
	docCount int
}

// NewWorkbook creates a workbook with both sheets and their header rows.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DocumentsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(LinesSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	wb := &Workbook{f: f, docRow: 1, lineRow: 1}
	if err := wb.writeHeader(DocumentsSheet, csvexport.Columns); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := wb.writeHeader(LinesSheet, LineColumns); err != nil {
		_ = f.Close()
		return nil, err
	}
	return wb, nil
}

func (wb *Workbook) writeHeader(sheet string, cols []string) error {
	style, err := wb.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := wb.setRow(sheet, 1, stringsToCells(cols)); err != nil {
		return err
	}
	if err := wb.f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("header style %s: %w", sheet, err)
	}
	last, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	return wb.f.SetColWidth(sheet, "A", last, 16)
}

// AddDocuments appends one summary row per document and one row per stored
// line. Lines of a document whose snapshot cannot be decoded are skipped.
func (wb *Workbook) AddDocuments(docs []domain.Document) error {
	for i := range docs {
		doc := &docs[i]

		wb.docRow++
		if err := wb.setRow(DocumentsSheet, wb.docRow, documentCells(doc)); err != nil {
			return err
		}
		wb.docCount++

		p, err := doc.Payload()
		if err != nil {
			continue
		}
		for j := range p.Items {
			it := &p.Items[j]
			itemID := ""
			if it.ItemID != nil {
				itemID = it.ItemID.String()
			}
			wb.lineRow++
			cells := []interface{}{
				string(doc.DocumentType),
				doc.DocumentNo,
				doc.DocumentDate.Format("2006-01-02"),
				doc.PartyName,
				itemID,
				it.Name,
				it.HSN,
				it.Qty.InexactFloat64(),
				it.Unit,
				it.MRP.InexactFloat64(),
				it.Rate.InexactFloat64(),
				it.Discount.InexactFloat64(),
				it.GSTRate,
				it.GSTAmount.Round(2).InexactFloat64(),
				it.Amount.Round(2).InexactFloat64(),
			}
			if err := wb.setRow(LinesSheet, wb.lineRow, cells); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocumentCount returns the number of summary rows written.
func (wb *Workbook) DocumentCount() int {
	return wb.docCount
}

// WriteTo writes the workbook as .xlsx to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	return wb.f.WriteTo(w)
}

// Close releases the workbook's resources.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

func (wb *Workbook) setRow(sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// documentCells reuses the CSV summary row, turning amount columns into numbers.
func documentCells(doc *domain.Document) []interface{} {
	row := csvexport.DocumentRow(doc)
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
		if !numericDocumentCols[i] || v == "" {
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
			cells[i] = f
		}
	}
	return cells
}

func stringsToCells(cols []string) []interface{} {
	cells := make([]interface{}, len(cols))
	for i, c := range cols {
		cells[i] = c
	}
	return cells
}
