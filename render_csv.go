package tabulate

import "encoding/csv"

// csvRenderer serves both CSV and TSV; padding is disabled for both, so the
// preprocessed cell strings are the bare canonical values.
type csvRenderer struct {
	comma rune
}

func (r csvRenderer) render(w *Writer) error {
	cw := csv.NewWriter(w.out)
	cw.Comma = r.comma
	if w.writeHeader && len(w.headerStrings) > 0 {
		if err := cw.Write(w.headerStrings); err != nil {
			return err
		}
	}
	for _, row := range w.bodyStrings {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (csvRenderer) writeRowSeparator(*Writer) error { return nil }
