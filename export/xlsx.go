package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

const (
	papersSheet   = "Papers"
	sessionsSheet = "Sessions"
)

// exportXLSX writes a two-sheet workbook: one flat row per paper, plus a
// session summary sheet.
func (e *Exporter) exportXLSX(catalog *model.Catalog, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", papersSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return fmt.Errorf("creating sessions sheet: %w", err)
	}

	setCell := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{
		"Contribution ID", "Code", "Type", "Title",
		"Date/Time", "Abstract", "Footnotes", "Session Code", "Session",
	}
	for i, h := range headers {
		setCell(papersSheet, i+1, 1, h)
	}

	row := 2
	for _, s := range catalog.Sessions {
		for _, p := range s.Papers {
			setCell(papersSheet, 1, row, p.ContributionID)
			setCell(papersSheet, 2, row, p.ContributionCode)
			setCell(papersSheet, 3, row, p.Type)
			setCell(papersSheet, 4, row, p.Title)
			setCell(papersSheet, 5, row, p.DateTime)
			setCell(papersSheet, 6, row, p.Abstract)
			setCell(papersSheet, 7, row, p.Footnotes)
			setCell(papersSheet, 8, row, s.ID)
			setCell(papersSheet, 9, row, p.Session)
			row++
		}
	}

	for i, h := range []string{"Code", "Name", "Contributions"} {
		setCell(sessionsSheet, i+1, 1, h)
	}
	for i, s := range catalog.Sessions {
		setCell(sessionsSheet, 1, i+2, s.ID)
		setCell(sessionsSheet, 2, i+2, s.Name)
		setCell(sessionsSheet, 3, i+2, s.PaperCount())
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(papersSheet, "B", "C", 16)
	_ = f.SetColWidth(papersSheet, "D", "D", 48)
	_ = f.SetColWidth(papersSheet, "E", "E", 32)
	_ = f.SetColWidth(papersSheet, "F", "G", 60)
	_ = f.SetColWidth(papersSheet, "I", "I", 28)
	_ = f.SetColWidth(sessionsSheet, "B", "B", 36)

	index, err := f.GetSheetIndex(papersSheet)
	if err != nil {
		return fmt.Errorf("finding papers sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
