package sheet

import "context"

// Worksheet is a single tab of a spreadsheet addressed as a grid of cells
// whose first row is the header.
type Worksheet interface {
	// GetAllRecords returns every data row keyed by its header cell. Cell
	// values keep whatever type the backend produced (string, float64, nil).
	GetAllRecords(ctx context.Context) ([]map[string]any, error)
	// Clear removes all content, header included.
	Clear(ctx context.Context) error
	// Update writes rows starting at the top-left cell.
	Update(ctx context.Context, rows [][]string) error
}

// RowsToRecords zips each data row with the header row. Short rows yield
// nil for the missing trailing cells; blank header cells are skipped.
func RowsToRecords(grid [][]any) []map[string]any {
	if len(grid) == 0 {
		return []map[string]any{}
	}
	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		if s, ok := h.(string); ok {
			header[i] = s
		}
	}

	records := make([]map[string]any, 0, len(grid)-1)
	for _, row := range grid[1:] {
		rec := make(map[string]any, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = nil
			}
		}
		records = append(records, rec)
	}
	return records
}
