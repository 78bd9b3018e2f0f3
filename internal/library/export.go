package library

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"ID", "Title", "Authors", "Publish Year", "Status", "Origin", "Added",
}

// ExportXLSX writes the merged library to an xlsx workbook at path.
func ExportXLSX(snapshot *Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Library"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create library sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
	}

	for i, e := range snapshot.Entries {
		row := i + 2
		values := []interface{}{
			e.ID,
			e.Title,
			strings.Join(e.Authors, "; "),
			nil,
			e.Status,
			string(e.Origin),
			e.AddedDate.Format("2006-01-02"),
		}
		if e.PublishYear != nil {
			values[3] = *e.PublishYear
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write export row %d: %w", row, err)
			}
		}
	}

	return f.SaveAs(path)
}
