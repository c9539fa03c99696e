package tabulate

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
)

// Theme bundles the style filters a named theme contributes to a writer.
type Theme struct {
	StyleFilter             StyleFilterFunc
	ColSeparatorStyleFilter ColSeparatorStyleFilterFunc

	// CheckArgs validates the writer's filter-argument bag before each
	// render. Optional.
	CheckArgs func(args map[string]any) error
}

var (
	themeMu sync.RWMutex
	themes  = map[string]Theme{
		"altrow": {
			StyleFilter: altRowStyleFilter,
			CheckArgs:   checkAltRowArgs,
		},
	}
)

// RegisterTheme makes a theme available to SetTheme under the given name.
// Registering an already-registered name is an error.
func RegisterTheme(name string, t Theme) error {
	themeMu.Lock()
	defer themeMu.Unlock()
	if _, ok := themes[name]; ok {
		return fmt.Errorf("%w: theme %q already registered", ErrInvalidArgument, name)
	}
	themes[name] = t
	return nil
}

func fetchTheme(name string) (Theme, bool) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	t, ok := themes[name]
	return t, ok
}

// altrow is a built-in theme that colors odd body rows, keeping the header
// and even rows on the default style. The color can be overridden with the
// "altrow-color" filter argument.
func altRowStyleFilter(c Cell, args map[string]any) *Style {
	if c.IsHeaderRow() || c.Row%2 == 0 {
		return nil
	}
	fg := color.FgCyan
	if v, ok := args["altrow-color"].(color.Attribute); ok {
		fg = v
	}
	style := c.DefaultStyle
	style.FgColor = fg
	return &style
}

func checkAltRowArgs(args map[string]any) error {
	if v, ok := args["altrow-color"]; ok {
		if _, ok := v.(color.Attribute); !ok {
			return fmt.Errorf("%w: altrow-color must be a color.Attribute, got %T", ErrInvalidArgument, v)
		}
	}
	return nil
}
