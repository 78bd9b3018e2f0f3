package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"ID", "Title", "Authors", "Publish Year", "Genre",
	"Description", "Status", "Created", "Updated",
}

// Export builds an xlsx workbook with all custom books, newest first.
func (s *BookService) Export(ctx context.Context) (*excelize.File, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Custom Books"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write export header: %w", err)
		}
	}

	for i, b := range books {
		row := i + 2
		values := []interface{}{
			b.ID,
			b.Title,
			strings.Join(b.Authors, "; "),
			nil,
			deref(b.Genre),
			deref(b.Description),
			b.Status,
			b.CreatedDate.Format("2006-01-02 15:04:05"),
			b.UpdatedDate.Format("2006-01-02 15:04:05"),
		}
		if b.PublishYear != nil {
			values[3] = *b.PublishYear
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write export row %d: %w", row, err)
			}
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
