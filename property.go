package tabulate

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnProperty is the per-column aggregate derived from every cell in the
// column: its inferred or declared type, its committed display width, and
// its default alignment. Properties are mutated only while the typed-matrix
// and column-property preprocessing stages run and are read-only afterwards.
type ColumnProperty struct {
	Index int
	Type  Typecode

	width int
	align Align
}

// Width returns the committed display width in character cells.
func (p *ColumnProperty) Width() int { return p.width }

// Align returns the column's default alignment: an explicit alignment when
// one was set, otherwise the conventional alignment for the column type.
func (p *ColumnProperty) Align() Align {
	if p.align != AlignAuto {
		return p.align
	}
	return p.Type.align()
}

// ExtendWidth widens the committed column width. Width never shrinks;
// non-positive amounts are ignored.
func (p *ColumnProperty) ExtendWidth(n int) {
	if n > 0 {
		p.width += n
	}
}

// ColumnProperties derives per-column aggregates from a typed matrix. A
// prior property list may be passed to carry committed state across chunks
// of an iterative write: widths merge monotonically and types widen, so a
// column never narrows after its header has been emitted.
func (e *Extractor) ColumnProperties(matrix [][]CellValue, prior []*ColumnProperty) []*ColumnProperty {
	cols := len(e.Headers)
	for _, row := range matrix {
		if len(row) > cols {
			cols = len(row)
		}
	}

	props := make([]*ColumnProperty, cols)
	for c := range cols {
		p := &ColumnProperty{Index: c, width: 1}
		if c < len(e.Headers) {
			if w := runewidth.StringWidth(strings.Trim(e.Headers[c], `"`)); w > p.width {
				p.width = w
			}
		}
		typ := TypeAuto
		for _, row := range matrix {
			if c >= len(row) {
				continue
			}
			if w := row[c].DisplayWidth(); w > p.width {
				p.width = w
			}
			typ = mergeTypecode(typ, row[c].Type)
		}
		if typ == TypeAuto || typ == TypeNone {
			typ = TypeString
		}
		p.Type = typ

		if c < len(prior) && prior[c] != nil {
			if prior[c].width > p.width {
				p.width = prior[c].width
			}
			p.Type = mergeTypecode(prior[c].Type, p.Type)
		}
		props[c] = p
	}
	return props
}

// mergeTypecode widens two cell typecodes into a common column typecode.
func mergeTypecode(a, b Typecode) Typecode {
	if a == b {
		return a
	}
	switch {
	case a == TypeAuto || a == TypeNone || a == TypeNullString:
		return b
	case b == TypeAuto || b == TypeNone || b == TypeNullString:
		return a
	case isNumericType(a) && isNumericType(b):
		return TypeRealNumber
	default:
		return TypeString
	}
}

func isNumericType(t Typecode) bool {
	switch t {
	case TypeInteger, TypeRealNumber, TypeInfinity, TypeNaN:
		return true
	default:
		return false
	}
}
