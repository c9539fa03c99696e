package tabulate

import (
	"fmt"
	"strings"
)

// textRenderer draws an ASCII grid: optional top border, header row, header
// separator, body rows, optional bottom border. All cell strings arrive
// already styled and padded.
type textRenderer struct{}

func (textRenderer) render(w *Writer) error {
	if w.writeOpeningRow {
		if err := writeTextSeparator(w); err != nil {
			return err
		}
	}
	if w.writeHeader && len(w.headerStrings) > 0 {
		if err := writeTextRow(w, w.headerStrings); err != nil {
			return err
		}
		if w.writeHeaderSepRow {
			if err := writeTextSeparator(w); err != nil {
				return err
			}
		}
	}
	for i, row := range w.bodyStrings {
		if i > 0 && w.writeValueSepRow {
			if err := writeTextSeparator(w); err != nil {
				return err
			}
		}
		if err := writeTextRow(w, row); err != nil {
			return err
		}
	}
	if w.writeClosingRow {
		return writeTextSeparator(w)
	}
	return nil
}

func (textRenderer) writeRowSeparator(w *Writer) error {
	if !w.writeValueSepRow {
		return nil
	}
	return writeTextSeparator(w)
}

func writeTextSeparator(w *Writer) error {
	var sb strings.Builder
	sb.WriteString("+")
	for _, p := range w.colProps {
		sb.WriteString(strings.Repeat("-", p.Width()+2*w.margin))
		sb.WriteString("+")
	}
	_, err := fmt.Fprintln(w.out, sb.String())
	return err
}

func writeTextRow(w *Writer, cells []string) error {
	margin := strings.Repeat(" ", w.margin)
	var sb strings.Builder
	sb.WriteString(w.separatorChar(-1, 0))
	for i, cell := range cells {
		sb.WriteString(margin)
		sb.WriteString(cell)
		sb.WriteString(margin)
		right := i + 1
		if right >= len(cells) {
			right = -1
		}
		sb.WriteString(w.separatorChar(i, right))
	}
	_, err := fmt.Fprintln(w.out, sb.String())
	return err
}
