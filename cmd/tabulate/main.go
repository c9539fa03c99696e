// Command tabulate reads CSV data and re-renders it in another tabular
// format.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bjaus/tabulate"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabulate [file]",
	Short: "Render CSV data as a table in another format",
	Long: `Tabulate reads CSV data from a file or from stdin and writes it back
out in one of several tabular formats: ` + formatList() + `.`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              run,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.Flags().StringP("format", "f", string(tabulate.Markdown), "Output format ("+formatList()+")")
	rootCmd.Flags().StringP("delimiter", "d", ",", "Input field delimiter")
	rootCmd.Flags().StringP("name", "n", "", "Table name (defaults to the input file's base name)")
	rootCmd.Flags().StringP("theme", "t", "", "Style theme to apply (e.g. altrow)")
	rootCmd.Flags().StringSlice("type-hints", nil, "Per-column type hints (comma-separated, e.g. int,str,float)")
	rootCmd.Flags().Int("margin", -1, "Cell margin width (format default when negative)")
	rootCmd.Flags().Bool("no-color", false, "Disable ANSI color output")
	rootCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	name, _ := cmd.Flags().GetString("name")
	theme, _ := cmd.Flags().GetString("theme")
	typeHints, _ := cmd.Flags().GetStringSlice("type-hints")
	margin, _ := cmd.Flags().GetInt("margin")
	noColor, _ := cmd.Flags().GetBool("no-color")
	debug, _ := cmd.Flags().GetBool("debug")

	format, err := tabulate.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	var comma rune
	if delimiter != "" {
		comma = []rune(delimiter)[0]
	}

	opts := []tabulate.Option{tabulate.WithStream(cmd.OutOrStdout())}
	if debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts = append(opts, tabulate.WithLogger(logger))
	}

	w, err := tabulate.NewWriter(format, opts...)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := w.FromCSVFile(args[0], comma); err != nil {
			return err
		}
	} else if err := w.FromCSV(cmd.InOrStdin(), comma); err != nil {
		return err
	}

	if name != "" {
		w.SetTableName(name)
	}
	if len(typeHints) > 0 {
		if err := w.SetTypeHintNames(typeHints); err != nil {
			return err
		}
	}
	if margin >= 0 {
		if err := w.SetMargin(margin); err != nil {
			return err
		}
	}
	if noColor {
		w.SetColorize(false)
	}
	if theme != "" {
		w.SetTheme(theme, nil)
	}

	return w.WriteTable()
}

func formatList() string {
	formats := tabulate.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: "+err.Error()))
		os.Exit(1)
	}
}
