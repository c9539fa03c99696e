package tabulate

import (
	"fmt"
	"iter"
)

// WriteTableIter renders a dataset supplied as a sequence of row chunks,
// flushing each chunk as it is processed. All chunks share one header and
// one set of committed column widths; once a width is committed after the
// first chunk it never shrinks, even if later chunks only hold narrower
// values.
//
// The write stops after the configured iteration length when one is set
// (the final chunk gets the closing row), otherwise when the source is
// exhausted. The progress callback runs once per chunk. On every exit path,
// including failure, the writer's header/opening-row/closing-row flags are
// restored to their pre-call values so the writer can be reused.
//
// Formats that need the whole table to produce a document return
// ErrNotSupported. A nil source is treated as empty: without headers the
// call is a silent no-op, with headers it runs zero iterations.
func (w *Writer) WriteTableIter(chunks iter.Seq[[][]any]) error {
	cr, ok := w.rend.(chunkedRenderer)
	if !ok {
		return fmt.Errorf("%w: %s does not support chunked writes", ErrNotSupported, w.format)
	}
	if err := w.verifyFilterArgs(); err != nil {
		return err
	}
	if err := w.verifyTableName(); err != nil {
		return err
	}
	if err := w.verifyStream(); err != nil {
		return err
	}
	if chunks == nil {
		if len(w.headers) == 0 {
			w.log.Debug().Msg("no tabular data found")
			return nil
		}
		// Headers but no chunk source: a zero-iteration write.
		chunks = func(func([][]any) bool) {}
	}
	if err := w.verifyHeader(); err != nil {
		return err
	}

	w.log.Debug().Int("iteration_length", w.iterLen).Msg("iterative write")

	savedHeader := w.writeHeader
	savedOpening := w.writeOpeningRow
	savedClosing := w.writeClosingRow
	defer func() {
		w.writeHeader = savedHeader
		w.writeOpeningRow = savedOpening
		w.writeClosingRow = savedClosing
		w.iterCount = 0
	}()

	w.writeClosingRow = false
	w.iterCount = 1

	for chunk := range chunks {
		final := w.iterLen > 0 && w.iterCount >= w.iterLen
		if final {
			w.writeClosingRow = true
		}

		// Swap in the chunk and invalidate only the stage status: the
		// computed data stays so committed column widths carry over.
		w.rows = chunk
		w.clearPreprocessStatus()

		if err := w.renderOnce(); err != nil {
			return err
		}
		if !final {
			if err := cr.writeRowSeparator(w); err != nil {
				return err
			}
		}

		// The header and any opening row are emitted once.
		w.writeOpeningRow = false
		w.writeHeader = false

		w.callback(w.iterCount, w.iterLen)

		if final {
			break
		}
		w.iterCount++
	}
	return nil
}

// WriteTableChan is WriteTableIter over a channel of row chunks.
func (w *Writer) WriteTableChan(chunks <-chan [][]any) error {
	return w.WriteTableIter(func(yield func([][]any) bool) {
		for chunk := range chunks {
			if !yield(chunk) {
				return
			}
		}
	})
}
