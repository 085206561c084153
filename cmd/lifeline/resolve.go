package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lifeline/internal/diagfmt"
	"lifeline/internal/driver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <file|dir>",
	Short: "Resolve lifetime references and print the region table",
	Long: `resolve maps every lifetime reference to the region it denotes and prints
one line per reference. Diagnostics go to stderr; the exit status is 1 when
any error was reported`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("format", "", "table format (pretty|json)")
	resolveCmd.Flags().String("emit", "", "write the region table export (.lfr) for a single file")
	resolveCmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0=config or GOMAXPROCS)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, err := cli.format(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	emitPath, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	opts, err := cli.driverOptions(cmd)
	if err != nil {
		return err
	}

	r, err := collect(cmd.Context(), args[0], opts, false)
	if err != nil {
		return err
	}
	if emitPath != "" {
		if r.IsDir {
			return fmt.Errorf("--emit needs a single file, %s is a directory", args[0])
		}
		if err := driver.Export(emitPath, r.Files[0]); err != nil {
			return err
		}
	}

	if err := writeTables(cmd.OutOrStdout(), r.Files, format, cli.Color); err != nil {
		return err
	}
	if err := writeDiagnostics(cmd.ErrOrStderr(), r.Files, "pretty", cli.Color); err != nil {
		return err
	}
	if cli.Timings {
		printTimings(cmd.ErrOrStderr(), r.Timing)
	}
	if !cli.Quiet && emitPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", emitPath)
	}
	if r.hasErrors() {
		return errReported
	}
	return nil
}

func regionTables(files []*driver.FileResult) []diagfmt.RegionTable {
	tables := make([]diagfmt.RegionTable, 0, len(files))
	for _, f := range files {
		tables = append(tables, diagfmt.RegionTable{
			Path:   f.Path,
			Errors: countErrors(f.Bag),
			Rows:   driver.Rows(f),
		})
	}
	return tables
}

func writeTables(w io.Writer, files []*driver.FileResult, format string, useColor bool) error {
	tables := regionTables(files)
	switch format {
	case "json":
		return diagfmt.RegionsJSON(w, tables)
	case "pretty":
		for _, t := range tables {
			if err := diagfmt.RegionsPretty(w, t, diagfmt.RegionOpts{Color: useColor}); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
