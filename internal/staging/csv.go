package staging

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/models"
)

// The staged blob is CSV with a header row. Nullability policy: a nil
// cell is written as an empty cell and an empty cell is read back as
// nil. This is applied exactly once in each direction; staging and load
// never re-interpret sentinels.

// EncodeTable serializes a table to its staged CSV form.
func EncodeTable(t models.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("encode %s header: %w", t.Name, err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("encode %s: row %d has %d cells, want %d", t.Name, i, len(row), len(t.Columns))
		}
		for j, cell := range row {
			s, err := encodeCell(cell)
			if err != nil {
				return nil, fmt.Errorf("encode %s row %d: %w", t.Name, i, err)
			}
			record[j] = s
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("encode %s row %d: %w", t.Name, i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

func encodeCell(cell any) (string, error) {
	switch v := cell.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case time.Time:
		return v.Format(models.DateOnly), nil
	default:
		return "", fmt.Errorf("unsupported cell type %T", cell)
	}
}

// DecodeTable parses a staged CSV blob back into a table. Every cell
// comes back as a string, except empty cells which become nil.
func DecodeTable(name string, data []byte) (models.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(records) == 0 {
		return models.Table{}, fmt.Errorf("decode %s: missing header", name)
	}

	t := models.Table{Name: name, Columns: records[0]}
	t.Rows = make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, cell := range record {
			if cell == "" {
				row[i] = nil
			} else {
				row[i] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
