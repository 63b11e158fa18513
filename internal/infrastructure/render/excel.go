package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fretor/internal/domain/reports"
)

// Excel renders the tabular view of a document as a single-sheet XLSX file.
type Excel struct{}

// NewExcel creates the excel renderer.
func NewExcel() Excel { return Excel{} }

func (Excel) Extension() string { return "xlsx" }

func (Excel) Render(w io.Writer, doc reports.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.SheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := doc.Headers()
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
	}
	if len(headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for i, row := range doc.TableRows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
