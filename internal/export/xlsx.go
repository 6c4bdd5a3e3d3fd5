package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"devonxona/internal/domain"
)

const registerSheet = "Reyestr"

// WriteXLSX renders the correspondence register as an xlsx workbook and
// writes it to w. Column layout matches the CSV register.
func WriteXLSX(w io.Writer, items []domain.Correspondence) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(registerSheet, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for rowIdx := range items {
		row := correspondenceToRow(&items[rowIdx])
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(registerSheet, cell, value); err != nil {
				return fmt.Errorf("writing row %d: %w", rowIdx+1, err)
			}
		}
	}

	if err := f.SetColWidth(registerSheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("setting column widths: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
