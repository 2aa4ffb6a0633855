package gsheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/vbonduro/snakebite/internal/sheet"
)

var (
	spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	urlPunctuation       = regexp.MustCompile(`[/:?]`)
)

// SpreadsheetID extracts the key from a spreadsheet URL. A value that does not
// look like a URL is treated as a bare id.
func SpreadsheetID(locator string) (string, error) {
	if m := spreadsheetIDPattern.FindStringSubmatch(locator); m != nil {
		return m[1], nil
	}
	if locator == "" || urlPunctuation.MatchString(locator) {
		return "", fmt.Errorf("spreadsheet URL not recognised: %q", locator)
	}
	return locator, nil
}

// Worksheet addresses one tab of a Google spreadsheet through the values API.
type Worksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	name          string
}

func NewWorksheet(svc *sheets.Service, spreadsheetID, name string) *Worksheet {
	return &Worksheet{svc: svc, spreadsheetID: spreadsheetID, name: name}
}

func (w *Worksheet) GetAllRecords(ctx context.Context) ([]map[string]any, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, quoteSheetName(w.name)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.name, err)
	}

	return sheet.RowsToRecords(resp.Values), nil
}

func (w *Worksheet) Clear(ctx context.Context) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, quoteSheetName(w.name), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear worksheet %q: %w", w.name, err)
	}
	return nil
}

func (w *Worksheet) Update(ctx context.Context, rows [][]string) error {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		values[i] = cells
	}

	rng := quoteSheetName(w.name) + "!A1"
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, &sheets.ValueRange{
		Range:  rng,
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update worksheet %q: %w", w.name, err)
	}
	return nil
}

// quoteSheetName renders name as an A1-notation sheet reference, so tab names
// with spaces, '!' or quotes still parse.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
