package tabulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FromCSV loads headers and rows from CSV data. The first record becomes
// the headers and the remaining records the value matrix; cell typing is
// left to the usual inference.
func (w *Writer) FromCSV(r io.Reader, delimiter rune) error {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: no csv records", ErrEmptyTableData)
	}

	w.SetHeaders(records[0])
	rows := make([][]any, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]any, len(rec))
		for j, field := range rec {
			row[j] = field
		}
		rows[i] = row
	}
	w.SetValueMatrix(rows)
	return nil
}

// FromCSVFile is FromCSV over a file. The table name is set to the file's
// base name without extension.
func (w *Writer) FromCSVFile(path string, delimiter rune) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.FromCSV(f, delimiter); err != nil {
		return err
	}
	base := filepath.Base(path)
	w.SetTableName(strings.TrimSuffix(base, filepath.Ext(base)))
	return nil
}

// FromTableData sets name, headers, and value matrix in one call.
func (w *Writer) FromTableData(name string, headers []string, rows [][]any) {
	w.SetTableName(name)
	w.SetHeaders(headers)
	w.SetValueMatrix(rows)
}

// FromWriter copies tabular configuration and cached preprocessing state
// from another writer, so a dataset prepared once can be re-rendered in a
// different format without re-typing it.
func (w *Writer) FromWriter(src *Writer, overwriteTableName bool) {
	w.clearPreprocess()

	if overwriteTableName {
		w.tableName = src.tableName
	}
	w.headers = slices.Clone(src.headers)
	w.rows = src.rows
	w.typeHints = slices.Clone(src.typeHints)
	w.defaultStyle = src.defaultStyle
	w.colStyles = slices.Clone(src.colStyles)
	w.filters = slices.Clone(src.filters)
	w.filterArgs = maps.Clone(src.filterArgs)
	w.margin = src.margin

	w.typedMatrix = src.typedMatrix
	w.colProps = src.colProps
	w.headerStrings = src.headerStrings
	w.bodyStrings = src.bodyStrings
	w.valid = src.valid
}
