package toon

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
)

// FromCSV converts CSV bytes to a value tree: an array of objects, one
// per data row, keyed by the header row in column order. Cells are
// sniffed into null/bool/int/float, falling back to strings.
func FromCSV(data []byte) (*Value, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // short rows pad with empty cells below
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("toon: CSV parse error: %w", err)
	}
	if len(records) == 0 {
		return List(), nil
	}

	header := records[0]
	rows := make([]*Value, 0, len(records)-1)
	for _, rec := range records[1:] {
		entries := make([]MapEntry, 0, len(header))
		for i, key := range header {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			entries = append(entries, MapEntry{Key: key, Value: sniffCell(cell)})
		}
		rows = append(rows, Map(entries...))
	}
	return List(rows...), nil
}

// sniffCell classifies a CSV cell. CSV carries no types, so this is
// type classification only, not validation.
func sniffCell(cell string) *Value {
	switch cell {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return Int(i)
	}
	// ParseFloat accepts "inf"/"nan" spellings; those stay strings.
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Float(f)
	}
	return Str(cell)
}
