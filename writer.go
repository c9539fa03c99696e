package tabulate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultWidthWideningFactor is the fraction by which column widths are
// widened on the first chunk of an iterative write, as a safety margin for
// rows in later chunks. It is a tunable heuristic, not an invariant.
const DefaultWidthWideningFactor = 0.25

// WriteCallback reports iterative write progress. completed starts at 1 and
// total is the configured iteration length (-1 when unbounded).
type WriteCallback func(completed, total int)

// Writer renders an in-memory tabular dataset into one target format. It
// owns all configuration and a multi-stage preprocessing cache; every
// setter that changes rendering-relevant state invalidates the cache, and
// render entry points recompute only what is stale.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	format Format
	rend   renderer
	styler Styler
	log    zerolog.Logger

	out       io.Writer
	ownStream bool

	tableName    string
	headers      []string
	rows         [][]any
	typeHints    []Typecode
	defaultStyle Style
	colStyles    []*Style

	filters       []StyleFilterFunc
	sepFilters    []ColSeparatorStyleFilterFunc
	argCheckers   []func(args map[string]any) error
	filterArgs    map[string]any
	filterEnabled bool

	margin            int
	padding           bool
	writeHeader       bool
	writeHeaderSepRow bool
	writeValueSepRow  bool
	writeOpeningRow   bool
	writeClosingRow   bool
	colorize          bool
	ansiEscape        bool

	useDefaultHeader bool
	requireTableName bool
	requireHeader    bool

	formatFloat  bool
	maxPrecision int
	trimQuotes   bool
	quoting      map[Typecode]bool
	maxWorkers   int

	// WidthWideningFactor at construction; adjustable for callers that
	// know their chunk width distribution.
	widenFactor float64

	iterLen   int
	iterCount int
	callback  WriteCallback

	valid         validity
	typedMatrix   [][]CellValue
	colProps      []*ColumnProperty
	headerStrings []string
	bodyStrings   [][]string
}

// Option configures a Writer at construction time.
type Option func(*Writer)

// WithStream sets the output stream. The writer does not take ownership;
// Close leaves the stream open.
func WithStream(out io.Writer) Option {
	return func(w *Writer) { w.out = out; w.ownStream = false }
}

// WithOwnedStream sets an output stream the writer owns exclusively.
// Close closes it.
func WithOwnedStream(out io.WriteCloser) Option {
	return func(w *Writer) { w.out = out; w.ownStream = true }
}

// WithLogger sets the logger used for debug events. The default discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// WithRequiredTableName makes rendering fail with ErrEmptyTableName when no
// table name is set. No built-in format requires one; callers that key
// output on the name (file sinks, captioned documents) opt in.
func WithRequiredTableName() Option {
	return func(w *Writer) { w.requireTableName = true }
}

// NewWriter creates a writer for the given target format, writing to
// os.Stdout unless a stream option overrides it.
func NewWriter(format Format, opts ...Option) (*Writer, error) {
	w := &Writer{
		format:        format,
		log:           zerolog.Nop(),
		out:           os.Stdout,
		filters:       defaultStyleFilters(),
		filterEnabled: true,
		filterArgs:    map[string]any{},
		padding:       true,
		writeHeader:   true,
		colorize:      true,
		ansiEscape:    true,
		formatFloat:   true,
		maxPrecision:  DefaultMaxPrecision,
		trimQuotes:    true,
		maxWorkers:    1,
		widenFactor:   DefaultWidthWideningFactor,
		iterLen:       -1,
		callback:      func(int, int) {},
	}

	switch format {
	case Text:
		w.rend = textRenderer{}
		w.styler = textStyler{w}
		w.writeHeaderSepRow = true
		w.writeOpeningRow = true
		w.writeClosingRow = true
		w.margin = 1
	case Markdown:
		w.rend = markdownRenderer{}
		w.styler = markdownStyler{textStyler{w}}
		w.writeHeaderSepRow = true
		w.useDefaultHeader = true
		w.requireHeader = true
		w.margin = 1
	case CSV:
		w.rend = csvRenderer{comma: ','}
		w.styler = nullStyler{}
		w.padding = false
	case TSV:
		w.rend = csvRenderer{comma: '\t'}
		w.styler = nullStyler{}
		w.padding = false
	case HTML:
		w.rend = htmlRenderer{}
		w.styler = htmlStyler{}
		w.padding = false
	case LaTeX:
		w.rend = latexRenderer{}
		w.styler = latexStyler{}
		w.writeHeaderSepRow = true
		w.writeOpeningRow = true
		w.writeClosingRow = true
	case JSON:
		w.rend = jsonRenderer{}
		w.styler = nullStyler{}
		w.padding = false
	case YAML:
		w.rend = yamlRenderer{}
		w.styler = nullStyler{}
		w.padding = false
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for _, opt := range opts {
		opt(w)
	}
	w.clearPreprocess()
	return w, nil
}

// Format returns the writer's target format.
func (w *Writer) Format() Format { return w.format }

// TableName returns the configured table name.
func (w *Writer) TableName() string { return w.tableName }

// Headers returns the configured headers.
func (w *Writer) Headers() []string { return w.headers }

// SetTableName sets the table name.
func (w *Writer) SetTableName(name string) {
	if w.tableName == name {
		return
	}
	w.tableName = name
	w.clearPreprocess()
}

// SetHeaders sets the table headers.
func (w *Writer) SetHeaders(headers []string) {
	if slices.Equal(w.headers, headers) {
		return
	}
	w.headers = slices.Clone(headers)
	w.clearPreprocess()
}

// SetValueMatrix sets the raw value matrix, one inner slice per row.
func (w *Writer) SetValueMatrix(rows [][]any) {
	w.rows = rows
	w.clearPreprocess()
}

// SetTypeHints declares per-column types. TypeAuto entries keep inference.
func (w *Writer) SetTypeHints(hints []Typecode) {
	if slices.Equal(w.typeHints, hints) {
		return
	}
	w.typeHints = slices.Clone(hints)
	w.clearPreprocess()
}

// SetTypeHintNames is SetTypeHints for hint names such as "int" or "float".
func (w *Writer) SetTypeHintNames(names []string) error {
	hints := make([]Typecode, len(names))
	for i, name := range names {
		tc, err := ParseTypeHint(name)
		if err != nil {
			return err
		}
		hints[i] = tc
	}
	w.SetTypeHints(hints)
	return nil
}

// SetDefaultStyle sets the style used for every cell without a more
// specific column style or filter match.
func (w *Writer) SetDefaultStyle(style Style) {
	if w.defaultStyle == style {
		return
	}
	w.defaultStyle = style
	w.clearPreprocess()
}

// SetColumnStyles replaces all per-column styles. Nil entries fall back to
// the default style.
func (w *Writer) SetColumnStyles(styles []*Style) {
	w.colStyles = slices.Clone(styles)
	w.clearPreprocess()
}

// SetStyle sets the style of one column, addressed by index (int) or by
// header name (string). The per-column style list grows as needed.
func (w *Writer) SetStyle(column any, style *Style) error {
	for len(w.colStyles) < len(w.headers) {
		w.colStyles = append(w.colStyles, nil)
	}

	idx := -1
	switch c := column.(type) {
	case int:
		if c < 0 {
			return fmt.Errorf("%w: negative column index %d", ErrInvalidArgument, c)
		}
		idx = c
	case string:
		idx = slices.Index(w.headers, c)
		if idx < 0 {
			return fmt.Errorf("%w: no column named %q", ErrInvalidArgument, c)
		}
	default:
		return fmt.Errorf("%w: column must be an int or string, got %T", ErrInvalidArgument, column)
	}

	for len(w.colStyles) <= idx {
		w.colStyles = append(w.colStyles, nil)
	}
	w.colStyles[idx] = style
	w.clearPreprocess()
	return nil
}

// AddStyleFilter prepends a style filter to the chain. Filters run most
// recently added first; the first non-nil result wins.
func (w *Writer) AddStyleFilter(f StyleFilterFunc) {
	w.filters = append([]StyleFilterFunc{f}, w.filters...)
	w.clearPreprocess()
}

// AddColSeparatorStyleFilter prepends a column-separator style filter,
// honored by text-family formats.
func (w *Writer) AddColSeparatorStyleFilter(f ColSeparatorStyleFilterFunc) {
	w.sepFilters = append([]ColSeparatorStyleFilterFunc{f}, w.sepFilters...)
	w.clearPreprocess()
}

// ClearTheme removes all style filters, restoring the default chain.
func (w *Writer) ClearTheme() {
	w.filters = defaultStyleFilters()
	w.sepFilters = nil
	w.argCheckers = nil
	w.clearPreprocess()
}

// EnableStyleFilter enables style filter evaluation.
func (w *Writer) EnableStyleFilter() {
	if w.filterEnabled {
		return
	}
	w.filterEnabled = true
	w.clearPreprocess()
}

// DisableStyleFilter disables style filter evaluation. When clearFilters is
// true the chain is also reset.
func (w *Writer) DisableStyleFilter(clearFilters bool) {
	if clearFilters {
		w.ClearTheme()
		return
	}
	if !w.filterEnabled {
		return
	}
	w.filterEnabled = false
	w.clearPreprocess()
}

// SetTheme appends the named theme's filters to the writer and merges args
// into the shared filter-argument bag. An unknown theme is a warning, not
// an error: the writer is left unmodified.
func (w *Writer) SetTheme(name string, args map[string]any) {
	theme, ok := fetchTheme(strings.TrimSpace(name))
	if !ok {
		w.log.Warn().Str("theme", name).Msg("unknown theme")
		return
	}
	if theme.StyleFilter != nil {
		w.AddStyleFilter(theme.StyleFilter)
	}
	if theme.ColSeparatorStyleFilter != nil {
		w.AddColSeparatorStyleFilter(theme.ColSeparatorStyleFilter)
	}
	if theme.CheckArgs != nil {
		w.argCheckers = append(w.argCheckers, theme.CheckArgs)
	}
	maps.Copy(w.filterArgs, args)
}

// SetFilterArg sets one entry of the shared filter-argument bag.
func (w *Writer) SetFilterArg(key string, value any) {
	w.filterArgs[key] = value
	w.clearPreprocess()
}

// SetMargin sets the number of spaces padded inside each column separator
// of text-family formats.
func (w *Writer) SetMargin(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: margin must not be negative: %d", ErrInvalidArgument, n)
	}
	if w.margin == n {
		return nil
	}
	w.margin = n
	w.clearPreprocess()
	return nil
}

// SetPadding toggles cell padding.
func (w *Writer) SetPadding(enabled bool) {
	if w.padding == enabled {
		return
	}
	w.padding = enabled
	w.clearPreprocess()
}

// SetWriteHeader toggles the header row.
func (w *Writer) SetWriteHeader(enabled bool) {
	if w.writeHeader == enabled {
		return
	}
	w.writeHeader = enabled
	w.clearPreprocess()
}

// SetWriteValueSeparatorRow toggles separator rows between body rows in
// text-family formats.
func (w *Writer) SetWriteValueSeparatorRow(enabled bool) {
	if w.writeValueSepRow == enabled {
		return
	}
	w.writeValueSepRow = enabled
	w.clearPreprocess()
}

// SetColorize toggles terminal colorization of styled cells.
func (w *Writer) SetColorize(enabled bool) {
	if w.colorize == enabled {
		return
	}
	w.colorize = enabled
	w.clearPreprocess()
}

// SetANSIEscape toggles emission of ANSI escape sequences.
func (w *Writer) SetANSIEscape(enabled bool) {
	if w.ansiEscape == enabled {
		return
	}
	w.ansiEscape = enabled
	w.clearPreprocess()
}

// SetFloatFormatting toggles precision-limited real number formatting.
func (w *Writer) SetFloatFormatting(enabled bool) {
	if w.formatFloat == enabled {
		return
	}
	w.formatFloat = enabled
	w.clearPreprocess()
}

// SetMaxPrecision limits decimal places of formatted real numbers.
// Negative means unlimited.
func (w *Writer) SetMaxPrecision(n int) {
	if w.maxPrecision == n {
		return
	}
	w.maxPrecision = n
	w.clearPreprocess()
}

// SetTrimQuotes toggles stripping of one level of matching quotes from
// string values.
func (w *Writer) SetTrimQuotes(enabled bool) {
	if w.trimQuotes == enabled {
		return
	}
	w.trimQuotes = enabled
	w.clearPreprocess()
}

// SetQuotingFlags marks typecodes whose canonical strings are wrapped in
// double quotes.
func (w *Writer) SetQuotingFlags(flags map[Typecode]bool) {
	w.quoting = maps.Clone(flags)
	w.clearPreprocess()
}

// SetMaxWorkers bounds the goroutines used for typed-matrix extraction.
func (w *Writer) SetMaxWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: max workers must be >= 1: %d", ErrInvalidArgument, n)
	}
	w.maxWorkers = n
	return nil
}

// SetWidthWideningFactor sets the first-chunk width widening heuristic of
// iterative writes. Zero disables widening.
func (w *Writer) SetWidthWideningFactor(f float64) error {
	if f < 0 {
		return fmt.Errorf("%w: widening factor must not be negative: %v", ErrInvalidArgument, f)
	}
	w.widenFactor = f
	return nil
}

// SetIterationLength sets the number of chunks an iterative write emits.
// -1 means unbounded: the write stops when the source is exhausted.
func (w *Writer) SetIterationLength(n int) { w.iterLen = n }

// SetWriteCallback sets the progress callback invoked after each chunk of
// an iterative write. Nil restores the no-op default.
func (w *Writer) SetWriteCallback(cb WriteCallback) {
	if cb == nil {
		cb = func(int, int) {}
	}
	w.callback = cb
}

// SetStream replaces the output stream. owned declares whether the writer
// may close it.
func (w *Writer) SetStream(out io.Writer, owned bool) {
	w.out = out
	w.ownStream = owned
}

// WriteTable renders the table to the configured stream. A writer with
// nothing at all to render is a silent no-op, so callers can render
// "whatever is available" without special-casing emptiness; every other
// verification failure and any render error propagates.
func (w *Writer) WriteTable() error {
	if err := w.verify(); err != nil {
		if errors.Is(err, ErrEmptyTableData) {
			w.log.Debug().Msg("no tabular data found")
			return nil
		}
		return err
	}
	return w.renderOnce()
}

// Marshal renders the table and returns the bytes instead of writing them
// to the configured stream.
func (w *Writer) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	out, owned := w.out, w.ownStream
	w.out, w.ownStream = &buf, false
	err := w.WriteTable()
	w.out, w.ownStream = out, owned
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the output stream if and only if the writer owns it.
// Shared streams such as os.Stdout are left open.
func (w *Writer) Close() error {
	if !w.ownStream || w.out == nil {
		return nil
	}
	c, ok := w.out.(io.Closer)
	w.out = nil
	w.ownStream = false
	if !ok {
		return nil
	}
	return c.Close()
}

func (w *Writer) renderOnce() error {
	w.ensureRendered()
	return w.rend.render(w)
}

func (w *Writer) verify() error {
	if err := w.verifyFilterArgs(); err != nil {
		return err
	}
	if err := w.verifyTableName(); err != nil {
		return err
	}
	if err := w.verifyStream(); err != nil {
		return err
	}
	if w.tableName == "" && len(w.headers) == 0 && len(w.rows) == 0 && len(w.typedMatrix) == 0 {
		return ErrEmptyTableData
	}
	if err := w.verifyHeader(); err != nil {
		return err
	}
	if err := w.verifyValueMatrix(); err != nil {
		// Header-only output is allowed.
		w.log.Debug().Err(err).Msg("no value rows")
	}
	return nil
}

func (w *Writer) verifyFilterArgs() error {
	for _, check := range w.argCheckers {
		if err := check(w.filterArgs); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) verifyTableName() error {
	if w.requireTableName && strings.TrimSpace(w.tableName) == "" {
		return fmt.Errorf("%w: %s requires a table name", ErrEmptyTableName, w.format)
	}
	return nil
}

func (w *Writer) verifyStream() error {
	if w.out == nil {
		return ErrNilStream
	}
	return nil
}

func (w *Writer) verifyHeader() error {
	if w.requireHeader && !w.useDefaultHeader && len(w.headers) == 0 {
		return fmt.Errorf("%w: %s requires headers", ErrEmptyHeader, w.format)
	}
	return nil
}

func (w *Writer) verifyValueMatrix() error {
	if len(w.rows) == 0 && len(w.typedMatrix) == 0 {
		return ErrEmptyValue
	}
	return nil
}

// columnStyle resolves the configured style of a column: its explicit style
// if one is set, otherwise the writer's default style.
func (w *Writer) columnStyle(col int) Style {
	if col < len(w.colStyles) && w.colStyles[col] != nil {
		return *w.colStyles[col]
	}
	return w.defaultStyle
}

// columnAlign resolves the alignment a format should declare for a column:
// the explicit column style alignment when set, else the alignment derived
// from the column data.
func (w *Writer) columnAlign(col int) Align {
	if a := w.columnStyle(col).Align; a != AlignAuto {
		return a
	}
	if col < len(w.colProps) {
		return w.colProps[col].Align()
	}
	return AlignLeft
}

// fetchStyle resolves the effective style of one cell: the style cascade is
// filter result, then per-column style, then the writer default. The result
// is total: alignment and padding are always filled in.
func (w *Writer) fetchStyle(row, col int, v CellValue) Style {
	def := w.columnStyle(col)

	style := def
	if w.filterEnabled {
		w.filterArgs["writer"] = w
		cell := Cell{Row: row, Col: col, Value: v.Raw, DefaultStyle: def}
		for _, f := range w.filters {
			if s := f(cell, w.filterArgs); s != nil {
				style = *s
				break
			}
		}
	}

	if style.Align == AlignAuto {
		style.Align = w.alignFromData(col, v)
	}
	if style.Padding == 0 {
		style.Padding = w.paddingWidth(col)
	}
	return style
}

// alignFromData infers alignment for an auto-aligned cell. Inside a
// string-typed column, numeric-looking and ANSI-decorated values align as
// the value itself dictates; every other cell follows its column.
func (w *Writer) alignFromData(col int, v CellValue) Align {
	if col >= len(w.colProps) {
		return v.Type.align()
	}
	p := w.colProps[col]
	if p.Type == TypeString {
		switch {
		case v.Type == TypeInteger || v.Type == TypeRealNumber:
			return v.Type.align()
		case v.Type == TypeString && v.HasANSI():
			return v.Type.align()
		}
	}
	return p.Align()
}

func (w *Writer) paddingWidth(col int) int {
	if !w.padding {
		return 0
	}
	if col < len(w.colProps) {
		return w.colProps[col].Width()
	}
	return 0
}

// separatorChar returns the column separator for text formats, styled by
// the separator filter chain when one matches. left is -1 for the leading
// separator and right is -1 for the trailing one.
func (w *Writer) separatorChar(left, right int) string {
	const sep = "|"
	if !w.filterEnabled || len(w.sepFilters) == 0 {
		return sep
	}
	w.filterArgs["writer"] = w
	for _, f := range w.sepFilters {
		if style := f(left, right, w.filterArgs); style != nil {
			return w.styler.ApplyTerminalStyle(sep, *style)
		}
	}
	return sep
}
