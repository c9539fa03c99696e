// Package tabulate renders in-memory tabular data in multiple output
// formats.
//
// A [Writer] is created for one target format, configured with headers, a
// value matrix, optional per-column type hints and styles, and rendered
// with [Writer.WriteTable] or [Writer.Marshal]:
//
//	w, _ := tabulate.NewWriter(tabulate.Markdown)
//	w.SetHeaders([]string{"id", "name"})
//	w.SetValueMatrix([][]any{{1, "foo"}, {2, "bar"}})
//	w.WriteTable()
//
// Supported formats are Text, Markdown, CSV, TSV, HTML, LaTeX, JSON, and
// YAML. Use [ParseFormat] to convert a CLI flag string into a [Format].
//
// # Rendering pipeline
//
// Rendering runs a four-stage preprocessing pipeline: raw values are typed
// by an [Extractor], column widths and types are aggregated into
// [ColumnProperty] values, then header and body cells are materialized into
// styled, aligned, padded strings. Each stage is cached independently and
// recomputed only when a configuration setter invalidated it, so repeated
// renders of unchanged data are cheap.
//
// # Styling
//
// Every cell's effective [Style] is resolved through a cascade: style
// filters added with [Writer.AddStyleFilter] run most recently added first
// and the first non-nil result wins; otherwise the column's style applies,
// otherwise the writer default. Filters receive a [Cell] carrying the row
// index ([HeaderRow] for header cells), column index, raw value, and the
// would-be default style. Themes registered with [RegisterTheme] bundle
// filters under a name for [Writer.SetTheme].
//
// # Chunked writes
//
// Very large datasets can be rendered in bounded-size pieces with
// [Writer.WriteTableIter], which accepts an iter.Seq of row chunks. All
// chunks share one header and one set of committed column widths; widths
// never shrink once the header has been emitted.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling, including
// [ErrNotSupported] for chunked writes on whole-document formats and
// [ErrInvalidArgument] for malformed column specifiers. A writer with
// nothing at all to render treats [Writer.WriteTable] as a silent no-op.
package tabulate
