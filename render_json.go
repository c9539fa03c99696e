package tabulate

import "encoding/json"

// jsonRenderer emits the table as an array of objects keyed by header name.
// Typed raw values are preserved where JSON can carry them; values JSON has
// no representation for (NaN, infinity, datetimes, IP addresses, ...) fall
// back to their canonical strings.
type jsonRenderer struct{}

func (jsonRenderer) render(w *Writer) error {
	enc := json.NewEncoder(w.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(tableRecords(w))
}

func tableRecords(w *Writer) []map[string]any {
	records := make([]map[string]any, len(w.typedMatrix))
	for r, row := range w.typedMatrix {
		rec := make(map[string]any, len(row))
		for c, v := range row {
			rec[w.columnKey(c)] = exportValue(v)
		}
		records[r] = rec
	}
	return records
}

func (w *Writer) columnKey(col int) string {
	if col < len(w.headers) {
		return w.headers[col]
	}
	return columnAlpha(col)
}

func exportValue(v CellValue) any {
	switch v.Type {
	case TypeNone:
		return nil
	case TypeBool, TypeInteger, TypeRealNumber:
		return v.Raw
	default:
		return v.Text
	}
}
