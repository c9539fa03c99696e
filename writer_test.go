package tabulate_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bjaus/tabulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

func newBufferWriter(t *testing.T, format tabulate.Format) (*tabulate.Writer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w, err := tabulate.NewWriter(format, tabulate.WithStream(&buf))
	require.NoError(t, err)
	return w, &buf
}

// ============================================================
// Tests
// ============================================================

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    tabulate.Format
		wantErr require.ErrorAssertionFunc
	}{
		"text":     {input: "text", want: tabulate.Text, wantErr: require.NoError},
		"markdown": {input: "markdown", want: tabulate.Markdown, wantErr: require.NoError},
		"csv":      {input: "csv", want: tabulate.CSV, wantErr: require.NoError},
		"tsv":      {input: "tsv", want: tabulate.TSV, wantErr: require.NoError},
		"html":     {input: "html", want: tabulate.HTML, wantErr: require.NoError},
		"latex":    {input: "latex", want: tabulate.LaTeX, wantErr: require.NoError},
		"json":     {input: "json", want: tabulate.JSON, wantErr: require.NoError},
		"yaml":     {input: "yaml", want: tabulate.YAML, wantErr: require.NoError},
		"unknown":  {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tabulate.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := tabulate.Formats()
	assert.Equal(t, []tabulate.Format{
		tabulate.Text, tabulate.Markdown, tabulate.CSV, tabulate.TSV,
		tabulate.HTML, tabulate.LaTeX, tabulate.JSON, tabulate.YAML,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, tabulate.Text, tabulate.Formats()[0])
}

func TestNewWriterUnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := tabulate.NewWriter("xml")
	require.ErrorIs(t, err, tabulate.ErrUnsupportedFormat)
}

// --- Markdown ---

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}, {2, "bar"}, {3, "baz"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"| id | name |",
		"|---:|------|",
		"|  1 | foo  |",
		"|  2 | bar  |",
		"|  3 | baz  |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdownTableName(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.FromTableData("example", []string{"id", "name"}, [][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"# example",
		"| id | name |",
		"|---:|------|",
		"|  1 | foo  |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdownBoldColumn(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})
	require.NoError(t, w.SetStyle(0, &tabulate.Style{FontWeight: tabulate.FontWeightBold}))
	require.NoError(t, w.WriteTable())

	// The bold markers occupy visible width, so the column is widened up
	// front and every row stays vertically aligned.
	want := strings.Join([]string{
		"|   id   | name |",
		"|-------:|------|",
		"|  **1** | foo  |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdownTypedColumns(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"i", "f", "c"})
	w.SetTypeHints([]tabulate.Typecode{tabulate.TypeInteger, tabulate.TypeRealNumber, tabulate.TypeString})
	w.SetValueMatrix([][]any{{1, 1.1, "aa"}, {2, 2.2, "bbb"}})
	require.NoError(t, w.WriteTable())

	// Numeric columns align right and are exactly as wide as their widest
	// formatted value; the string column aligns left.
	want := strings.Join([]string{
		"| i |  f  |  c  |",
		"|--:|----:|-----|",
		"| 1 | 1.1 | aa  |",
		"| 2 | 2.2 | bbb |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTableIdempotent(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})

	require.NoError(t, w.WriteTable())
	first := buf.String()
	buf.Reset()
	require.NoError(t, w.WriteTable())
	assert.Equal(t, first, buf.String())
}

func TestWriteMarkdownDefaultHeaders(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetValueMatrix([][]any{{"x", "y", "z"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"| A | B | C |",
		"|---|---|---|",
		"| x | y | z |",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// --- Text ---

func TestWriteText(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Text)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}, {2, "bar"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"+----+------+",
		"| id | name |",
		"+----+------+",
		"|  1 | foo  |",
		"|  2 | bar  |",
		"+----+------+",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTextValueSeparatorRows(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Text)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{1}, {2}})
	w.SetWriteValueSeparatorRow(true)
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"+---+",
		"| a |",
		"+---+",
		"| 1 |",
		"+---+",
		"| 2 |",
		"+---+",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// --- CSV / TSV ---

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.CSV)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}, {2, "bar"}})
	require.NoError(t, w.WriteTable())
	assert.Equal(t, "id,name\n1,foo\n2,bar\n", buf.String())
}

func TestWriteTSV(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.TSV)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())
	assert.Equal(t, "id\tname\n1\tfoo\n", buf.String())
}

// --- HTML ---

func TestWriteHTML(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.HTML)
	w.FromTableData("stats", []string{"id", "name"}, [][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"<table>",
		"  <caption>stats</caption>",
		"  <thead>",
		"    <tr>",
		"      <th>id</th>",
		"      <th>name</th>",
		"    </tr>",
		"  </thead>",
		"  <tbody>",
		"    <tr>",
		`      <td style="text-align: right">1</td>`,
		"      <td>foo</td>",
		"    </tr>",
		"  </tbody>",
		"</table>",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// --- LaTeX ---

func TestWriteLaTeX(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.LaTeX)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		`\begin{array}{rl} \hline`,
		`    id & name \\`,
		`    \hline`,
		`     1 & foo  \\`,
		`    \hline`,
		`\end{array}`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// --- JSON / YAML ---

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.JSON)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())

	want := strings.Join([]string{
		"[",
		"  {",
		`    "id": 1,`,
		`    "name": "foo"`,
		"  }",
		"]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.YAML)
	w.SetHeaders([]string{"id", "name"})
	w.SetValueMatrix([][]any{{1, "foo"}})
	require.NoError(t, w.WriteTable())
	assert.Equal(t, "- id: 1\n  name: foo\n", buf.String())
}

// --- Empty data ---

func TestWriteTableEmptyIsNoop(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	require.NoError(t, w.WriteTable())
	assert.Empty(t, buf.String())
}

func TestWriteTableRequiredTableName(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w, err := tabulate.NewWriter(tabulate.Markdown,
		tabulate.WithStream(&buf), tabulate.WithRequiredTableName())
	require.NoError(t, err)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{1}})

	require.ErrorIs(t, w.WriteTable(), tabulate.ErrEmptyTableName)
	assert.Empty(t, buf.String())

	w.SetTableName("named")
	require.NoError(t, w.WriteTable())
	assert.Contains(t, buf.String(), "# named")
}

func TestWriteTableNilStream(t *testing.T) {
	t.Parallel()
	w, err := tabulate.NewWriter(tabulate.Markdown, tabulate.WithStream(nil))
	require.NoError(t, err)
	w.SetHeaders([]string{"a"})
	require.ErrorIs(t, w.WriteTable(), tabulate.ErrNilStream)
}

func TestWriteTableWriteFailure(t *testing.T) {
	t.Parallel()
	w, err := tabulate.NewWriter(tabulate.Markdown, tabulate.WithStream(&errWriter{}))
	require.NoError(t, err)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{1}})
	require.ErrorIs(t, w.WriteTable(), errWriteFailed)
}

// --- SetStyle ---

func TestSetStyle(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		column  any
		wantErr require.ErrorAssertionFunc
	}{
		"by index":        {column: 1, wantErr: require.NoError},
		"beyond headers":  {column: 5, wantErr: require.NoError},
		"by name":         {column: "name", wantErr: require.NoError},
		"unknown name":    {column: "nope", wantErr: require.Error},
		"negative index":  {column: -1, wantErr: require.Error},
		"unsupported key": {column: 1.5, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			w, _ := newBufferWriter(t, tabulate.Markdown)
			w.SetHeaders([]string{"id", "name"})
			err := w.SetStyle(tt.column, &tabulate.Style{Align: tabulate.AlignCenter})
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, tabulate.ErrInvalidArgument)
			}
		})
	}
}

func TestSetStyleByNameEqualsByIndex(t *testing.T) {
	t.Parallel()
	style := &tabulate.Style{Align: tabulate.AlignCenter}

	byName, nameBuf := newBufferWriter(t, tabulate.Markdown)
	byName.FromTableData("", []string{"id", "name"}, [][]any{{1, "foo"}})
	require.NoError(t, byName.SetStyle("name", style))
	require.NoError(t, byName.WriteTable())

	byIndex, indexBuf := newBufferWriter(t, tabulate.Markdown)
	byIndex.FromTableData("", []string{"id", "name"}, [][]any{{1, "foo"}})
	require.NoError(t, byIndex.SetStyle(1, style))
	require.NoError(t, byIndex.WriteTable())

	assert.Equal(t, nameBuf.String(), indexBuf.String())
}

// --- Themes ---

func TestSetThemeAltRow(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{"x"}, {"y"}})
	w.SetTheme("altrow", nil)
	require.NoError(t, w.WriteTable())

	// Row 1 is odd, so it gets the default cyan foreground.
	assert.Contains(t, buf.String(), "\x1b[36m")
}

func TestSetThemeUnknownIsNonFatal(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{"x"}})
	w.SetTheme("no-such-theme", nil)
	require.NoError(t, w.WriteTable())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestSetThemeBadArgsFailVerification(t *testing.T) {
	t.Parallel()
	w, _ := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{"x"}})
	w.SetTheme("altrow", map[string]any{"altrow-color": "cyan"})
	require.ErrorIs(t, w.WriteTable(), tabulate.ErrInvalidArgument)
}

func TestRegisterThemeDuplicate(t *testing.T) {
	t.Parallel()
	err := tabulate.RegisterTheme("altrow", tabulate.Theme{})
	require.ErrorIs(t, err, tabulate.ErrInvalidArgument)
}

func TestDisableStyleFilter(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.Markdown)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{"x"}, {"y"}})
	w.SetTheme("altrow", nil)
	w.DisableStyleFilter(false)
	require.NoError(t, w.WriteTable())
	assert.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	w.EnableStyleFilter()
	require.NoError(t, w.WriteTable())
	assert.Contains(t, buf.String(), "\x1b[36m")
}

// --- Marshal / Close / streams ---

func TestMarshal(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.CSV)
	w.SetHeaders([]string{"a"})
	w.SetValueMatrix([][]any{{1}})

	first, err := w.Marshal()
	require.NoError(t, err)
	second, err := w.Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a\n1\n", string(first))

	// Marshal must not touch the configured stream.
	assert.Empty(t, buf.String())
	require.NoError(t, w.WriteTable())
	assert.Equal(t, "a\n1\n", buf.String())
}

func TestCloseOwnedStream(t *testing.T) {
	t.Parallel()
	rec := &closeRecorder{}
	w, err := tabulate.NewWriter(tabulate.CSV, tabulate.WithOwnedStream(rec))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.True(t, rec.closed)
}

func TestCloseSharedStream(t *testing.T) {
	t.Parallel()
	rec := &closeRecorder{}
	w, err := tabulate.NewWriter(tabulate.CSV, tabulate.WithStream(rec))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.False(t, rec.closed)
}

// --- Loading ---

func TestFromCSV(t *testing.T) {
	t.Parallel()
	w, _ := newBufferWriter(t, tabulate.CSV)
	require.NoError(t, w.FromCSV(strings.NewReader("id,name\n1,foo\n"), 0))
	assert.Equal(t, []string{"id", "name"}, w.Headers())

	out, err := w.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,foo\n", string(out))
}

func TestFromCSVEmpty(t *testing.T) {
	t.Parallel()
	w, _ := newBufferWriter(t, tabulate.CSV)
	err := w.FromCSV(strings.NewReader(""), 0)
	require.ErrorIs(t, err, tabulate.ErrEmptyTableData)
}

func TestFromWriter(t *testing.T) {
	t.Parallel()
	src, _ := newBufferWriter(t, tabulate.Markdown)
	src.FromTableData("nums", []string{"id", "name"}, [][]any{{1, "foo"}, {2, "bar"}})

	dst, buf := newBufferWriter(t, tabulate.Text)
	dst.FromWriter(src, true)
	assert.Equal(t, "nums", dst.TableName())
	require.NoError(t, dst.WriteTable())

	want := strings.Join([]string{
		"+----+------+",
		"| id | name |",
		"+----+------+",
		"|  1 | foo  |",
		"|  2 | bar  |",
		"+----+------+",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// --- Chunked writes (external surface) ---

func TestWriteTableIterNotSupported(t *testing.T) {
	t.Parallel()
	for _, format := range []tabulate.Format{tabulate.HTML, tabulate.LaTeX, tabulate.JSON, tabulate.YAML} {
		w, _ := newBufferWriter(t, format)
		w.SetHeaders([]string{"a"})
		err := w.WriteTableIter(func(func([][]any) bool) {})
		require.ErrorIs(t, err, tabulate.ErrNotSupported, format)
	}
}

func TestWriteTableChan(t *testing.T) {
	t.Parallel()
	w, buf := newBufferWriter(t, tabulate.CSV)
	w.SetHeaders([]string{"a"})

	chunks := make(chan [][]any, 2)
	chunks <- [][]any{{1}}
	chunks <- [][]any{{2}}
	close(chunks)

	require.NoError(t, w.WriteTableChan(chunks))
	assert.Equal(t, "a\n1\n2\n", buf.String())
}
