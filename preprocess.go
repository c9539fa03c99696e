package tabulate

import (
	"math"
)

// validity tracks which preprocessing stages reflect the current
// configuration. The four stages form a strict dependency chain, but the
// flags are independent: invalidating an early stage does not re-validate a
// later one, and ensureRendered always walks the stages in order with each
// stage early-returning when already valid.
//
// Every configuration setter invalidates all four flags unconditionally.
// The coarseness is deliberate: precision is traded for the guarantee that
// no setter can forget a dependent stage.
type validity struct {
	typed    bool
	property bool
	header   bool
	body     bool
}

// clearPreprocessStatus invalidates all stages but keeps the computed data,
// so an iterative write can merge committed column widths into the next
// chunk's properties.
func (w *Writer) clearPreprocessStatus() {
	w.valid = validity{}
}

// clearPreprocess invalidates all stages and drops the computed data.
func (w *Writer) clearPreprocess() {
	w.clearPreprocessStatus()
	w.typedMatrix = nil
	w.colProps = nil
	w.headerStrings = nil
	w.bodyStrings = nil
}

// ensureRendered guarantees that the typed matrix, column properties,
// header strings, and body strings all reflect the writer's current
// configuration on return, computing only what is stale.
func (w *Writer) ensureRendered() {
	w.preprocessTypedMatrix()
	w.preprocessColumnProperties()
	w.preprocessHeader()
	w.preprocessBody()
}

// extractor builds the typing collaborator configuration from the writer.
func (w *Writer) extractor() *Extractor {
	seps := make([]ThousandSeparator, len(w.colStyles))
	for i := range w.colStyles {
		seps[i] = w.columnStyle(i).ThousandSeparator
	}
	return &Extractor{
		Headers:          w.headers,
		TypeHints:        w.typeHints,
		MaxPrecision:     w.maxPrecision,
		FormatFloat:      w.formatFloat,
		DefaultSeparator: w.defaultStyle.ThousandSeparator,
		ColumnSeparators: seps,
		TrimQuotes:       w.trimQuotes,
		QuotingFlags:     w.quoting,
		MaxWorkers:       w.maxWorkers,
	}
}

// preprocessTypedMatrix derives the typed value matrix and the column
// properties from the raw values. A typing failure for the whole matrix
// degrades to an empty typed matrix instead of failing the render, so a
// partial dataset still allows header-only output.
func (w *Writer) preprocessTypedMatrix() {
	if w.valid.typed {
		return
	}
	w.log.Debug().Msg("preprocess: typed matrix")

	if len(w.headers) == 0 && w.useDefaultHeader && len(w.rows) > 0 {
		w.headers = defaultHeaders(len(w.rows[0]))
	}

	ex := w.extractor()
	matrix, err := ex.Matrix(w.rows)
	if err != nil {
		w.log.Debug().Err(err).Msg("typed matrix extraction failed")
		matrix = nil
	}
	w.typedMatrix = matrix
	w.colProps = ex.ColumnProperties(matrix, w.colProps)
	w.valid.typed = true
}

// preprocessColumnProperties finalizes column widths. On the first chunk of
// an iterative write every width is widened by the widening factor, since a
// width committed to an already-emitted header can never shrink. Widths are
// then extended by the larger of the header and body decoration widths so
// both stay vertically aligned under structural decoration. Left invalid
// (not attempted) when there is no header row.
func (w *Writer) preprocessColumnProperties() {
	if w.valid.property {
		return
	}
	w.log.Debug().Msg("preprocess: column properties")

	if w.iterCount == 1 {
		for _, p := range w.colProps {
			p.ExtendWidth(int(math.Ceil(float64(p.Width()) * w.widenFactor)))
		}
	}

	headerValues := w.extractor().HeaderValues()
	if len(headerValues) == 0 {
		return
	}

	for _, p := range w.colProps {
		if p.Index >= len(headerValues) {
			continue
		}
		bodyWidth := w.styler.AdditionalCharWidth(w.columnStyle(p.Index))
		headerWidth := w.styler.AdditionalCharWidth(w.fetchStyle(HeaderRow, p.Index, headerValues[p.Index]))
		p.ExtendWidth(max(bodyWidth, headerWidth))
	}
	w.valid.property = true
}

// preprocessHeader materializes the header strings. Left invalid (not
// attempted) when there is no header row.
func (w *Writer) preprocessHeader() {
	if w.valid.header {
		return
	}
	headerValues := w.extractor().HeaderValues()
	if len(headerValues) == 0 {
		return
	}
	w.log.Debug().Msg("preprocess: header")

	items := make([]string, 0, len(headerValues))
	for i, hv := range headerValues {
		if i >= len(w.colProps) {
			break
		}
		items = append(items, w.toHeaderItem(i, hv))
	}
	w.headerStrings = items
	w.valid.header = true
}

// preprocessBody materializes every body cell string.
func (w *Writer) preprocessBody() {
	if w.valid.body {
		return
	}
	w.log.Debug().Int("rows", len(w.typedMatrix)).Msg("preprocess: body")

	rows := make([][]string, len(w.typedMatrix))
	for r, rowValues := range w.typedMatrix {
		row := make([]string, len(rowValues))
		for c, v := range rowValues {
			row[c] = w.toRowItem(r, c, v)
		}
		rows[r] = row
	}
	w.bodyStrings = rows
	w.valid.body = true
}

func (w *Writer) toHeaderItem(col int, v CellValue) string {
	style := w.fetchStyle(HeaderRow, col, v)
	s := w.styler.ApplyStyle(v.Text, style)
	s = w.styler.ApplyAlign(s, style)
	return w.styler.ApplyTerminalStyle(s, style)
}

func (w *Writer) toRowItem(row, col int, v CellValue) string {
	style := w.fetchStyle(row, col, v)
	s := w.styler.ApplyStyle(v.Text, style)
	s = w.styler.ApplyAlign(s, style)
	return w.styler.ApplyTerminalStyle(s, style)
}

// defaultHeaders returns spreadsheet-style column names: A..Z, AA, AB, ...
func defaultHeaders(n int) []string {
	headers := make([]string, n)
	for i := range n {
		headers[i] = columnAlpha(i)
	}
	return headers
}

func columnAlpha(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
