package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeline/internal/diagfmt"
	"lifeline/internal/driver"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] export.lfr",
	Short: "Print a region table written by resolve --emit",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "", "output format (pretty|json)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cli.format(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	payload, err := driver.Import(args[0])
	if err != nil {
		return err
	}
	for i := range payload.Rows {
		if _, err := payload.Rows[i].Region(); err != nil {
			return fmt.Errorf("%s: row %d: %w", args[0], i, err)
		}
	}

	table := diagfmt.RegionTable{Path: payload.Source, Errors: payload.Errors, Rows: payload.Rows}
	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.RegionsJSON(out, []diagfmt.RegionTable{table})
	}
	if !cli.Quiet {
		fmt.Fprintf(out, "# %s  hash %s  prelude [%s]  errors %d\n",
			payload.Source, payload.ContentHash, strings.Join(payload.Prelude, " "), payload.Errors)
	}
	return diagfmt.RegionsPretty(out, table, diagfmt.RegionOpts{Color: cli.Color})
}
