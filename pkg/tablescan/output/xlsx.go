package output

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

const (
	// TableSheet mirrors the image grid: the text of column c, row r lands in
	// spreadsheet column c, row r.
	TableSheet = "Table"
	// CellsSheet lists one cell per row with its rectangle.
	CellsSheet = "Cells"
)

var cellsHeader = []any{"Column", "Row", "X", "Y", "Width", "Height", "Text"}

// ToXLSX writes data as a workbook with a Table and a Cells sheet.
func ToXLSX(data *models.TableData, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TableSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CellsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(CellsSheet, "A1", &cellsHeader); err != nil {
		return err
	}
	for i, c := range data.Cells {
		name, err := excelize.CoordinatesToCellName(c.Column, c.Row)
		if err != nil {
			return fmt.Errorf("cell %d,%d: %w", c.Column, c.Row, err)
		}
		if c.Text != "" {
			if err := f.SetCellValue(TableSheet, name, cellValue(c.Text)); err != nil {
				return err
			}
		}

		row := []any{c.Column, c.Row, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, c.Text}
		anchor, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(CellsSheet, anchor, &row); err != nil {
			return err
		}
	}

	if err := setPrintArea(f, data); err != nil {
		return err
	}
	if len(data.Cells) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(cellsHeader), len(data.Cells)+1)
		if err := f.AddTable(CellsSheet, &excelize.Table{
			Range:     "A1:" + end,
			Name:      "CellList",
			StyleName: "TableStyleMedium2",
		}); err != nil {
			return fmt.Errorf("cells table: %w", err)
		}
	}

	return f.SaveAs(path)
}

// setPrintArea limits printing of the Table sheet to the detected grid.
func setPrintArea(f *excelize.File, data *models.TableData) error {
	if data.Columns == 0 || data.Rows == 0 {
		return nil
	}
	ref, err := gridRange(data.Columns, data.Rows)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!%s", TableSheet, ref),
		Scope:    TableSheet,
	})
}

// gridRange returns the absolute range covering columns x rows, e.g. $A$1:$D$3.
func gridRange(columns, rows int) (string, error) {
	start, err := excelize.CoordinatesToCellName(1, 1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(columns, rows, true)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// cellValue stores numeric text as a number so the sheet can compute with it.
func cellValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
