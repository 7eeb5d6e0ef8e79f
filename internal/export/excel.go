// Package export renders patient collections into spreadsheet files.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/careboard/careboard-api/internal/domain"
)

// SheetName is the worksheet holding the patient rows.
const SheetName = "Patients"

var headerRow = []string{
	"ID", "First Name", "Last Name", "Document Type", "Document Number",
	"Birth Date", "Phone", "Email", "Address", "City", "State",
	"Admission Date", "Active",
}

// ExcelExporter writes patients into an XLSX workbook.
type ExcelExporter struct{}

// NewExcelExporter creates an ExcelExporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export renders the patients as an XLSX workbook and returns its bytes.
func (e *ExcelExporter) Export(ctx context.Context, patients []domain.Patient) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, title := range headerRow {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range patients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := []interface{}{
			p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
			p.BirthDate.Format(domain.BirthDateLayout), p.Phone, p.Email,
			p.Address, p.City, p.State,
			p.AdmissionDate.Format("2006-01-02 15:04:05"), p.Active,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
