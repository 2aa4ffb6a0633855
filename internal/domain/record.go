package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Fields is the fixed column order of the incident worksheet. The header row
// is rewritten from this list on every save.
var Fields = []string{
	"Name",
	"Age",
	"Sex",
	"Phone",
	"Address",
	"District",
	"Time",
	"Season",
	"Place",
	"Local symptoms",
	"Systematic symptoms",
	"Prediction",
	"Image URL",
	"Notes",
	"Clinical Snake",
	"Clinical Notes",
}

// Record is one snake-bite incident row keyed by field name.
type Record map[string]string

// NewRecord builds a Record holding every known field. Missing fields default
// to "" and keys outside Fields are dropped.
func NewRecord(input map[string]any) Record {
	rec := make(Record, len(Fields))
	for _, f := range Fields {
		rec[f] = Cell(input[f])
	}
	return rec
}

// Values returns the record's cells in Fields order.
func (r Record) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = r[f]
	}
	return out
}

// Cell renders a single worksheet value as a string. nil, NaN and ±Inf become
// the empty string.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		f, err := x.Float64()
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return ""
		}
		if err == nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return ""
		}
		return x.String()
	case []any, map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Snapshot is the full ordered set of rows read from a worksheet.
type Snapshot []Record

// SnapshotFromRows converts header-keyed rows into Records, sanitizing every
// cell and discarding columns outside Fields.
func SnapshotFromRows(rows []map[string]any) Snapshot {
	snap := make(Snapshot, 0, len(rows)+1)
	for _, row := range rows {
		snap = append(snap, NewRecord(row))
	}
	return snap
}

// Grid renders the snapshot as a header row followed by one row per record.
func (s Snapshot) Grid() [][]string {
	grid := make([][]string, 0, len(s)+1)
	header := make([]string, len(Fields))
	copy(header, Fields)
	grid = append(grid, header)
	for _, rec := range s {
		grid = append(grid, rec.Values())
	}
	return grid
}
