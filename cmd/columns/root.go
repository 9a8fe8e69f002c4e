package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JonMunkholm/tabular/internal/columns"
	"github.com/JonMunkholm/tabular/internal/config"
	"github.com/JonMunkholm/tabular/internal/headerio"
	"github.com/JonMunkholm/tabular/internal/logging"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	mappingPath string
	format      string
	delimiter   string
	maxWidth    int
	appends     []string
	deletes     []string
	logLevel    string
}

func newRootCmd(defaults config.ColumnsConfig, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "columns [file]",
		Short:         "Show the normalized column keys of a header line",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			err := run(opts, in, stdout, stderr)
			if err != nil {
				fmt.Fprintln(stderr, "error:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", defaults.ConfigPath, "YAML configuration table")
	flags.StringVarP(&opts.mappingPath, "mapping", "m", "", "YAML mapping whose names are the header (input file is ignored)")
	flags.StringVarP(&opts.format, "format", "f", defaults.DefaultFormat, "output format: table, space or tab")
	flags.StringVarP(&opts.delimiter, "delimiter", "d", ",", "input field delimiter")
	flags.IntVar(&opts.maxWidth, "max-width", 0, "truncate labels wider than this many cells in table output (0: no limit)")
	flags.StringArrayVar(&opts.appends, "append", nil, "append a column (repeatable)")
	flags.StringArrayVar(&opts.deletes, "delete", nil, "delete a column by key (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr diagnostics")

	return cmd
}

func run(opts *options, in io.Reader, stdout, stderr io.Writer) error {
	log := logging.New(stderr, opts.logLevel, "text")

	table := columns.ConfigTable{}
	if opts.configPath != "" {
		f, err := os.Open(opts.configPath)
		if err != nil {
			return err
		}
		table, err = columns.LoadConfigTable(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", opts.configPath, err)
		}
		log.Debug("configuration loaded", "path", opts.configPath, "entries", len(table))
	}

	cols, err := buildColumns(opts, in, table)
	if err != nil {
		return err
	}

	for _, label := range opts.appends {
		cols.Append(label)
	}
	for _, label := range opts.deletes {
		cols.Delete(label)
	}
	log.Debug("header built", "columns", cols.Len())

	switch strings.ToLower(opts.format) {
	case "", "table":
		writeTable(stdout, cols, opts.maxWidth)
	case "space":
		_, err = fmt.Fprintln(stdout, cols.SpaceDelimited())
	case "tab":
		_, err = fmt.Fprintln(stdout, cols.TabDelimited())
	default:
		err = fmt.Errorf("unknown format %q", opts.format)
	}
	return err
}

func buildColumns(opts *options, in io.Reader, table columns.ConfigTable) (*columns.Columns, error) {
	if opts.mappingPath != "" {
		f, err := os.Open(opts.mappingPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		entries, err := columns.LoadMapping(f)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.mappingPath, err)
		}
		return columns.NewFromMapping(entries, table)
	}

	delim, err := headerio.ParseDelimiter(opts.delimiter)
	if err != nil {
		return nil, err
	}
	header, err := headerio.ReadHeader(in, headerio.Options{Delimiter: delim})
	if err != nil {
		return nil, err
	}
	return columns.New(header, table), nil
}

func writeTable(w io.Writer, cols *columns.Columns, maxWidth int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Label", "Key", "Coercion", "Indexed"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, d := range cols.Describe() {
		table.Append([]string{
			strconv.Itoa(d.Position),
			truncate(d.Label, maxWidth),
			string(d.Key),
			string(d.Coercion),
			strconv.FormatBool(d.Indexed),
		})
	}
	table.Render()
}

// truncate shortens s to width display cells; East Asian wide runes
// count as two.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
