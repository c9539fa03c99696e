package tabulate

import "github.com/fatih/color"

// Align controls horizontal cell alignment. The zero value AlignAuto defers
// to data-driven alignment: numeric columns align right, everything else
// aligns left.
type Align int

const (
	AlignAuto Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "auto"
	}
}

// ThousandSeparator controls digit grouping for integer values.
type ThousandSeparator int

const (
	SeparatorNone ThousandSeparator = iota
	SeparatorComma
	SeparatorSpace
	SeparatorUnderscore
)

// FontWeight is the weight decoration of a cell.
type FontWeight int

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

// FontStyle is the slant decoration of a cell.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// Style is a set of optional visual attributes for a cell. The zero value
// leaves every attribute unset; the style resolver fills unset attributes
// before a style is applied, so stylers always see a fully-defaulted style.
//
// Padding is the total target width of the cell in character cells. Zero
// means "compute from the column width"; the resolver replaces it with the
// committed column width (or 0 when the writer has padding disabled).
type Style struct {
	Align             Align
	Padding           int
	ThousandSeparator ThousandSeparator
	FontWeight        FontWeight
	FontStyle         FontStyle
	FgColor           color.Attribute
	BgColor           color.Attribute
}

// HeaderRow is the sentinel row index style filters receive for header cells.
const HeaderRow = -1

// Cell describes one table cell as seen by a style filter.
type Cell struct {
	Row          int
	Col          int
	Value        any
	DefaultStyle Style
}

// IsHeaderRow reports whether the cell belongs to the header row.
func (c Cell) IsHeaderRow() bool { return c.Row < 0 }

// StyleFilterFunc inspects a cell and returns an override style, or nil when
// the filter does not apply. Filters added to a writer are evaluated most
// recently added first; the first non-nil result wins. The args map is the
// writer's shared filter-argument bag and always carries the writer itself
// under the "writer" key.
type StyleFilterFunc func(c Cell, args map[string]any) *Style

// ColSeparatorStyleFilterFunc styles the column separator between two
// adjacent columns in text formats. leftCol is -1 for the leading separator
// and rightCol is -1 for the trailing one.
type ColSeparatorStyleFilterFunc func(leftCol, rightCol int, args map[string]any) *Style

// headerStyleFilter centers header cells. It is installed on every writer by
// default and removed by ClearTheme only together with the rest of the chain.
func headerStyleFilter(c Cell, _ map[string]any) *Style {
	if c.IsHeaderRow() {
		return &Style{Align: AlignCenter}
	}
	return nil
}

func defaultStyleFilters() []StyleFilterFunc {
	return []StyleFilterFunc{headerStyleFilter}
}
