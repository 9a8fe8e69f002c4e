// Command columns prints the column model of a delimited file's header line.
//
//	columns people.csv
//	columns --config columns.yaml --append "Signed Up" --format tab < people.csv
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/tabular/internal/config"
)

func main() {
	// COLUMNS_CONFIG and COLUMNS_DEFAULT_FORMAT supply flag defaults
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg.Columns, os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
