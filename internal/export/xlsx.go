package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	DataSheet    = "Audit Data"
	DetailsSheet = "Audit Details"
)

// WriteXLSX writes a workbook with the entry rows on DataSheet and the audit
// title page on DetailsSheet.
func WriteXLSX(w io.Writer, rows []Row, details []DetailRow) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	// A workbook cannot have zero sheets; reuse the default one.
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}
	if err := setRow(f, DataSheet, 1, Columns); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, DataSheet, i+2, r.values()); err != nil {
			return err
		}
	}
	widths := map[string]float64{"A": 26, "B": 60, "C": 60, "D": 10, "E": 20, "F": 40}
	for col, width := range widths {
		if err := f.SetColWidth(DataSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if _, err := f.NewSheet(DetailsSheet); err != nil {
		return fmt.Errorf("failed to create details sheet: %w", err)
	}
	for i, d := range details {
		if err := setRow(f, DetailsSheet, i+1, []string{d.Label, d.Value}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(DetailsSheet, "A", "B", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
