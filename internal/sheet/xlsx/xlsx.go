// Package xlsx stores the worksheet in a local Excel workbook. It is meant for
// development and offline deployments where no Google spreadsheet is
// available.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/snakebite/internal/sheet"
)

type Worksheet struct {
	path string
	name string
}

func NewWorksheet(path, name string) *Worksheet {
	return &Worksheet{path: path, name: name}
}

func (w *Worksheet) GetAllRecords(_ context.Context) ([]map[string]any, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(w.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", w.name, err)
	}

	grid := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		grid[i] = cells
	}
	return sheet.RowsToRecords(grid), nil
}

func (w *Worksheet) Clear(_ context.Context) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	// Recreating the sheet drops every cell, including the header row.
	idx, err := f.NewSheet("_clear")
	if err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", w.name, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet(w.name); err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", w.name, err)
	}
	if err := f.SetSheetName("_clear", w.name); err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", w.name, err)
	}
	return w.save(f)
}

func (w *Worksheet) Update(_ context.Context, rows [][]string) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(w.name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return w.save(f)
}

// open returns the workbook, creating it and the named sheet on first use.
func (w *Worksheet) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", w.name); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	idx, err := f.GetSheetIndex(w.name)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to look up sheet %q: %w", w.name, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(w.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", w.name, err)
		}
	}
	return f, nil
}

func (w *Worksheet) save(f *excelize.File) error {
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
