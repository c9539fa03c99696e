package tabulate

import (
	"fmt"
	"strings"
)

// markdownRenderer emits a GitHub-flavored Markdown table: an optional
// heading from the table name, the header row, an alignment marker row, and
// the body rows.
type markdownRenderer struct{}

func (markdownRenderer) render(w *Writer) error {
	if w.writeHeader && w.tableName != "" {
		if _, err := fmt.Fprintf(w.out, "# %s\n", w.tableName); err != nil {
			return err
		}
	}
	if w.writeHeader && len(w.headerStrings) > 0 {
		if err := writeTextRow(w, w.headerStrings); err != nil {
			return err
		}
		if w.writeHeaderSepRow {
			if err := writeMarkdownMarkerRow(w); err != nil {
				return err
			}
		}
	}
	for _, row := range w.bodyStrings {
		if err := writeTextRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func (markdownRenderer) writeRowSeparator(*Writer) error { return nil }

func writeMarkdownMarkerRow(w *Writer) error {
	var sb strings.Builder
	sb.WriteString("|")
	for _, p := range w.colProps {
		sb.WriteString(markdownMarker(w.columnAlign(p.Index), p.Width()+2*w.margin))
		sb.WriteString("|")
	}
	_, err := fmt.Fprintln(w.out, sb.String())
	return err
}

// markdownMarker builds one alignment marker, at least 3 wide so ":--:" and
// friends always fit.
func markdownMarker(align Align, width int) string {
	if width < 3 {
		width = 3
	}
	switch align {
	case AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}
