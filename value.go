package tabulate

import (
	"fmt"
	"math"
	"net"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultMaxPrecision is the default number of decimal places kept when
// formatting real numbers.
const DefaultMaxPrecision = 15

// CellValue is a raw value annotated with its inferred or declared type and
// its canonical display string before styling.
type CellValue struct {
	Raw  any
	Type Typecode
	Text string

	hasANSI bool
}

// HasANSI reports whether the canonical string contains ANSI escapes.
func (v CellValue) HasANSI() bool { return v.hasANSI }

// DisplayWidth returns the visible width of the canonical string in
// character cells. ANSI escapes contribute nothing; wide characters count
// as two cells.
func (v CellValue) DisplayWidth() int { return displayWidth(v.Text) }

func displayWidth(s string) int {
	if strings.Contains(s, "\x1b[") {
		s = ansi.Strip(s)
	}
	return runewidth.StringWidth(s)
}

// Extractor converts a raw value matrix into typed cell values and
// per-column aggregate properties. It is configured by the writer before
// every typed-matrix extraction and is usable standalone for callers that
// want typing without rendering.
type Extractor struct {
	Headers   []string
	TypeHints []Typecode

	// MaxPrecision limits decimal places of formatted real numbers.
	// Negative means unlimited.
	MaxPrecision int
	FormatFloat  bool

	// DefaultSeparator applies to every column without an explicit entry in
	// ColumnSeparators.
	DefaultSeparator ThousandSeparator
	ColumnSeparators []ThousandSeparator

	// TrimQuotes strips one level of matching single or double quotes from
	// string values.
	TrimQuotes bool

	// QuotingFlags marks typecodes whose canonical strings are wrapped in
	// double quotes.
	QuotingFlags map[Typecode]bool

	// MaxWorkers bounds the goroutines used to type rows in parallel.
	MaxWorkers int
}

// NewExtractor returns an Extractor with the writer defaults.
func NewExtractor() *Extractor {
	return &Extractor{
		MaxPrecision: DefaultMaxPrecision,
		FormatFloat:  true,
		MaxWorkers:   1,
	}
}

// Matrix types every cell of rows. When headers are present the matrix is
// header-aligned: short rows are padded with nil cells and a row wider than
// the headers is an error. Rows are independent, so typing runs across
// MaxWorkers goroutines when more than one is allowed.
func (e *Extractor) Matrix(rows [][]any) ([][]CellValue, error) {
	cols := len(e.Headers)
	if cols == 0 {
		for _, row := range rows {
			if len(row) > cols {
				cols = len(row)
			}
		}
	} else {
		for i, row := range rows {
			if len(row) > cols {
				return nil, fmt.Errorf("row %d has %d values, want at most %d", i, len(row), cols)
			}
		}
	}

	matrix := make([][]CellValue, len(rows))
	convert := func(i int) {
		row := rows[i]
		out := make([]CellValue, cols)
		for c := range cols {
			var raw any
			if c < len(row) {
				raw = row[c]
			}
			out[c] = e.cell(c, raw)
		}
		matrix[i] = out
	}

	workers := e.MaxWorkers
	if workers <= 1 || len(rows) < 2 {
		for i := range rows {
			convert(i)
		}
		return matrix, nil
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	var wg sync.WaitGroup
	idx := make(chan int)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				convert(i)
			}
		}()
	}
	for i := range rows {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return matrix, nil
}

// HeaderValues returns the typed header row, or nil when no headers are set.
func (e *Extractor) HeaderValues() []CellValue {
	if len(e.Headers) == 0 {
		return nil
	}
	out := make([]CellValue, len(e.Headers))
	for i, h := range e.Headers {
		h = strings.Trim(h, `"`)
		out[i] = CellValue{Raw: h, Type: TypeString, Text: h, hasANSI: strings.Contains(h, "\x1b[")}
	}
	return out
}

func (e *Extractor) cell(col int, raw any) CellValue {
	v := e.infer(col, raw)
	if e.QuotingFlags[v.Type] {
		v.Text = `"` + v.Text + `"`
	}
	return v
}

func (e *Extractor) hint(col int) Typecode {
	if col < len(e.TypeHints) {
		return e.TypeHints[col]
	}
	return TypeAuto
}

func (e *Extractor) separator(col int) ThousandSeparator {
	if col < len(e.ColumnSeparators) && e.ColumnSeparators[col] != SeparatorNone {
		return e.ColumnSeparators[col]
	}
	return e.DefaultSeparator
}

func (e *Extractor) infer(col int, raw any) CellValue {
	if hint := e.hint(col); hint != TypeAuto {
		if v, ok := e.coerce(hint, col, raw); ok {
			return v
		}
	}
	return e.detect(col, raw)
}

func (e *Extractor) detect(col int, raw any) CellValue {
	switch v := raw.(type) {
	case nil:
		return CellValue{Type: TypeNone, Text: ""}
	case bool:
		return CellValue{Raw: v, Type: TypeBool, Text: strconv.FormatBool(v)}
	case int:
		return e.intCell(col, int64(v))
	case int8:
		return e.intCell(col, int64(v))
	case int16:
		return e.intCell(col, int64(v))
	case int32:
		return e.intCell(col, int64(v))
	case int64:
		return e.intCell(col, v)
	case uint:
		return e.intCell(col, int64(v))
	case uint8:
		return e.intCell(col, int64(v))
	case uint16:
		return e.intCell(col, int64(v))
	case uint32:
		return e.intCell(col, int64(v))
	case uint64:
		return e.intCell(col, int64(v))
	case float32:
		return e.floatCell(col, float64(v))
	case float64:
		return e.floatCell(col, v)
	case time.Time:
		return CellValue{Raw: v, Type: TypeDateTime, Text: v.Format(time.RFC3339)}
	case net.IP:
		return CellValue{Raw: v, Type: TypeIPAddress, Text: v.String()}
	case string:
		return e.stringCell(col, v)
	case fmt.Stringer:
		return e.stringCell(col, v.String())
	}

	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array:
		return CellValue{Raw: raw, Type: TypeList, Text: fmt.Sprint(raw)}
	case reflect.Map:
		return CellValue{Raw: raw, Type: TypeDict, Text: fmt.Sprint(raw)}
	default:
		return CellValue{Raw: raw, Type: TypeString, Text: fmt.Sprint(raw)}
	}
}

func (e *Extractor) stringCell(col int, s string) CellValue {
	if e.TrimQuotes && len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	if strings.TrimSpace(s) == "" {
		return CellValue{Raw: s, Type: TypeNullString, Text: s}
	}
	if strings.Contains(s, "\x1b[") {
		return CellValue{Raw: s, Type: TypeString, Text: s, hasANSI: true}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		v := e.intCell(col, n)
		v.Raw = s
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := e.floatCell(col, f)
		v.Raw = s
		return v
	}
	return CellValue{Raw: s, Type: TypeString, Text: s}
}

func (e *Extractor) coerce(hint Typecode, col int, raw any) (CellValue, bool) {
	switch hint {
	case TypeString:
		if raw == nil {
			return CellValue{Type: TypeString, Text: ""}, true
		}
		return CellValue{Raw: raw, Type: TypeString, Text: fmt.Sprint(raw)}, true
	case TypeInteger:
		switch v := raw.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return e.detect(col, raw), true
		case float32:
			return e.wholeFloat(col, float64(v), raw)
		case float64:
			return e.wholeFloat(col, v, raw)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				c := e.intCell(col, n)
				c.Raw = raw
				return c, true
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return e.wholeFloat(col, f, raw)
			}
		}
	case TypeRealNumber:
		switch v := raw.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			f := reflect.ValueOf(raw).Convert(reflect.TypeOf(float64(0))).Float()
			c := e.floatCell(col, f)
			c.Raw = raw
			return c, true
		case float32, float64:
			return e.detect(col, raw), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				c := e.floatCell(col, f)
				c.Raw = raw
				return c, true
			}
		}
	case TypeBool:
		switch v := raw.(type) {
		case bool:
			return e.detect(col, raw), true
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return CellValue{Raw: raw, Type: TypeBool, Text: strconv.FormatBool(b)}, true
			}
		}
	case TypeDateTime:
		switch v := raw.(type) {
		case time.Time:
			return e.detect(col, raw), true
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
					return CellValue{Raw: raw, Type: TypeDateTime, Text: t.Format(time.RFC3339)}, true
				}
			}
		}
	case TypeIPAddress:
		switch v := raw.(type) {
		case net.IP:
			return e.detect(col, raw), true
		case string:
			if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
				return CellValue{Raw: raw, Type: TypeIPAddress, Text: ip.String()}, true
			}
		}
	}
	return CellValue{}, false
}

func (e *Extractor) wholeFloat(col int, f float64, raw any) (CellValue, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return CellValue{}, false
	}
	c := e.intCell(col, int64(f))
	c.Raw = raw
	return c, true
}

func (e *Extractor) intCell(col int, n int64) CellValue {
	return CellValue{Raw: n, Type: TypeInteger, Text: e.formatInt(n, e.separator(col))}
}

func (e *Extractor) formatInt(n int64, sep ThousandSeparator) string {
	if sep == SeparatorNone {
		return strconv.FormatInt(n, 10)
	}
	s := message.NewPrinter(language.English).Sprintf("%d", n)
	switch sep {
	case SeparatorSpace:
		s = strings.ReplaceAll(s, ",", " ")
	case SeparatorUnderscore:
		s = strings.ReplaceAll(s, ",", "_")
	}
	return s
}

func (e *Extractor) floatCell(col int, f float64) CellValue {
	switch {
	case math.IsNaN(f):
		return CellValue{Raw: f, Type: TypeNaN, Text: "NaN"}
	case math.IsInf(f, 1):
		return CellValue{Raw: f, Type: TypeInfinity, Text: "Infinity"}
	case math.IsInf(f, -1):
		return CellValue{Raw: f, Type: TypeInfinity, Text: "-Infinity"}
	}

	if !e.FormatFloat {
		return CellValue{Raw: f, Type: TypeRealNumber, Text: strconv.FormatFloat(f, 'g', -1, 64)}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if e.MaxPrecision >= 0 {
		if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > e.MaxPrecision {
			s = strconv.FormatFloat(f, 'f', e.MaxPrecision, 64)
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
		}
	}
	if sep := e.separator(col); sep != SeparatorNone {
		s = groupFloatDigits(s, sep)
	}
	return CellValue{Raw: f, Type: TypeRealNumber, Text: s}
}

// groupFloatDigits applies digit grouping to the integer part of an already
// formatted decimal string.
func groupFloatDigits(s string, sep ThousandSeparator) string {
	var group string
	switch sep {
	case SeparatorComma:
		group = ","
	case SeparatorSpace:
		group = " "
	case SeparatorUnderscore:
		group = "_"
	default:
		return s
	}

	intPart, rest := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, rest = s[:dot], s[dot:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var b strings.Builder
	for i := range len(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteByte(intPart[i])
	}
	return sign + b.String() + rest
}
