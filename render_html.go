package tabulate

import (
	"fmt"
	"html"
)

// htmlRenderer emits a plain <table> element. Alignment is carried as an
// inline text-align style instead of padding.
type htmlRenderer struct{}

func (htmlRenderer) render(w *Writer) error {
	out := w.out
	if _, err := fmt.Fprintln(out, "<table>"); err != nil {
		return err
	}
	if w.tableName != "" {
		if _, err := fmt.Fprintf(out, "  <caption>%s</caption>\n", html.EscapeString(w.tableName)); err != nil {
			return err
		}
	}

	if w.writeHeader && len(w.headerStrings) > 0 {
		if _, err := fmt.Fprintln(out, "  <thead>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "    <tr>"); err != nil {
			return err
		}
		for _, h := range w.headerStrings {
			if _, err := fmt.Fprintf(out, "      <th>%s</th>\n", html.EscapeString(h)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, "    </tr>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "  </thead>"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(out, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range w.bodyStrings {
		if _, err := fmt.Fprintln(out, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range row {
			if _, err := fmt.Fprintf(out, "      <td%s>%s</td>\n", htmlAlignAttr(w.columnAlign(i)), html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, "</table>")
	return err
}

func htmlAlignAttr(align Align) string {
	switch align {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
