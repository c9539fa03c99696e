package tabulate

import (
	"fmt"
	"strings"
)

// latexRenderer emits a LaTeX array environment with per-column alignment
// specifiers.
type latexRenderer struct{}

func (latexRenderer) render(w *Writer) error {
	out := w.out
	if w.writeOpeningRow {
		var cols strings.Builder
		for _, p := range w.colProps {
			switch w.columnAlign(p.Index) {
			case AlignRight:
				cols.WriteString("r")
			case AlignCenter:
				cols.WriteString("c")
			default:
				cols.WriteString("l")
			}
		}
		if _, err := fmt.Fprintf(out, "\\begin{array}{%s} \\hline\n", cols.String()); err != nil {
			return err
		}
	}

	if w.writeHeader && len(w.headerStrings) > 0 {
		if _, err := fmt.Fprintf(out, "    %s \\\\\n", strings.Join(w.headerStrings, " & ")); err != nil {
			return err
		}
		if w.writeHeaderSepRow {
			if _, err := fmt.Fprintln(out, "    \\hline"); err != nil {
				return err
			}
		}
	}
	for _, row := range w.bodyStrings {
		if _, err := fmt.Fprintf(out, "    %s \\\\\n", strings.Join(row, " & ")); err != nil {
			return err
		}
	}

	if w.writeClosingRow {
		if _, err := fmt.Fprintln(out, "    \\hline"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "\\end{array}"); err != nil {
			return err
		}
	}
	return nil
}
