package tabulate

import (
	"strings"

	"github.com/fatih/color"
)

// Styler applies a resolved style to a cell string for one format family.
// The stages run in a fixed order: ApplyStyle adds structural markup (for
// example Markdown emphasis), ApplyAlign pads the possibly-decorated string
// to the style's padding width, and ApplyTerminalStyle adds terminal escape
// sequences, which have zero visible width.
type Styler interface {
	ApplyStyle(text string, style Style) string
	ApplyAlign(text string, style Style) string
	ApplyTerminalStyle(text string, style Style) string

	// AdditionalCharWidth reports the visible width ApplyStyle would add
	// for the style, so column widths can be extended up front and
	// decorated cells stay vertically aligned with undecorated ones.
	AdditionalCharWidth(style Style) int
}

func alignCell(s string, width int, align Align) string {
	pad := width - displayWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// nullStyler pads and aligns but never decorates. Used by formats that carry
// styling in their own syntax (CSV, JSON, YAML).
type nullStyler struct{}

func (nullStyler) ApplyStyle(text string, _ Style) string { return text }

func (nullStyler) ApplyAlign(text string, style Style) string {
	return alignCell(text, style.Padding, style.Align)
}

func (nullStyler) ApplyTerminalStyle(text string, _ Style) string { return text }

func (nullStyler) AdditionalCharWidth(Style) int { return 0 }

// textStyler renders decoration as ANSI escape sequences, gated by the
// writer's colorize and ANSI toggles.
type textStyler struct {
	w *Writer
}

func (textStyler) ApplyStyle(text string, _ Style) string { return text }

func (textStyler) ApplyAlign(text string, style Style) string {
	return alignCell(text, style.Padding, style.Align)
}

func (s textStyler) ApplyTerminalStyle(text string, style Style) string {
	if !s.w.colorize || !s.w.ansiEscape {
		return text
	}
	attrs := terminalAttributes(style)
	if len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (textStyler) AdditionalCharWidth(Style) int { return 0 }

func terminalAttributes(style Style) []color.Attribute {
	var attrs []color.Attribute
	if style.FgColor != 0 {
		attrs = append(attrs, style.FgColor)
	}
	if style.BgColor != 0 {
		attrs = append(attrs, style.BgColor)
	}
	if style.FontWeight == FontWeightBold {
		attrs = append(attrs, color.Bold)
	}
	if style.FontStyle == FontStyleItalic {
		attrs = append(attrs, color.Italic)
	}
	return attrs
}

// markdownStyler decorates with Markdown emphasis markers. Markers occupy
// visible width, so AdditionalCharWidth reports them for column widening.
// Terminal colorization still applies on top for terminals that render
// Markdown source.
type markdownStyler struct {
	textStyler
}

func (markdownStyler) ApplyStyle(text string, style Style) string {
	if style.FontStyle == FontStyleItalic {
		text = "*" + text + "*"
	}
	if style.FontWeight == FontWeightBold {
		text = "**" + text + "**"
	}
	return text
}

func (markdownStyler) AdditionalCharWidth(style Style) int {
	width := 0
	if style.FontStyle == FontStyleItalic {
		width += 2
	}
	if style.FontWeight == FontWeightBold {
		width += 4
	}
	return width
}

// latexStyler decorates with LaTeX text commands.
type latexStyler struct{}

func (latexStyler) ApplyStyle(text string, style Style) string {
	if style.FontStyle == FontStyleItalic {
		text = `\textit{` + text + `}`
	}
	if style.FontWeight == FontWeightBold {
		text = `\textbf{` + text + `}`
	}
	return text
}

func (latexStyler) ApplyAlign(text string, style Style) string {
	return alignCell(text, style.Padding, style.Align)
}

func (latexStyler) ApplyTerminalStyle(text string, _ Style) string { return text }

func (latexStyler) AdditionalCharWidth(style Style) int {
	width := 0
	if style.FontStyle == FontStyleItalic {
		width += len(`\textit{}`)
	}
	if style.FontWeight == FontWeightBold {
		width += len(`\textbf{}`)
	}
	return width
}

// htmlStyler leaves strings untouched; alignment and decoration are carried
// as markup attributes by the HTML renderer itself.
type htmlStyler struct{}

func (htmlStyler) ApplyStyle(text string, _ Style) string         { return text }
func (htmlStyler) ApplyAlign(text string, _ Style) string         { return text }
func (htmlStyler) ApplyTerminalStyle(text string, _ Style) string { return text }
func (htmlStyler) AdditionalCharWidth(Style) int                  { return 0 }
