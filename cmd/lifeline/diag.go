package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lifeline/internal/diagfmt"
	"lifeline/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|dir>",
	Short: "Report lifetime diagnostics",
	Long: `diag runs the full pipeline over a file or every *.lf file of a directory
and prints only the diagnostics`,
	Args: cobra.ExactArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0=config or GOMAXPROCS)")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	format, err := cli.format(cmd, "pretty", "json", "short")
	if err != nil {
		return err
	}
	opts, err := cli.driverOptions(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	r, err := collect(cmd.Context(), args[0], opts, shouldUseTUI(mode, cli.Quiet) && format != "json")
	if err != nil {
		return err
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), r.Files, format, cli.Color); err != nil {
		return err
	}
	if cli.Timings {
		printTimings(cmd.ErrOrStderr(), r.Timing)
	}
	if !cli.Quiet && format != "json" && r.IsDir {
		printSummary(cmd.ErrOrStderr(), r)
	}
	if r.hasErrors() {
		return errReported
	}
	return nil
}

// writeDiagnostics prints every file's bag. JSON output is one object keyed
// by path.
func writeDiagnostics(w io.Writer, files []*driver.FileResult, format string, useColor bool) error {
	switch format {
	case "pretty":
		for _, f := range files {
			diagfmt.Pretty(w, f.Bag, f.FileSet, diagfmt.PrettyOpts{
				Color:     useColor,
				Context:   1,
				PathMode:  diagfmt.PathModeAuto,
				ShowNotes: true,
			})
		}
	case "short":
		for _, f := range files {
			if err := diagfmt.Short(w, f.Bag, f.FileSet); err != nil {
				return err
			}
		}
	case "json":
		output := make(map[string]diagfmt.Report, len(files))
		for _, f := range files {
			output[f.Path] = diagfmt.BuildReport(f.Bag, f.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeRelative,
				IncludeNotes:     true,
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func printSummary(w io.Writer, r run) {
	failed, errs := 0, 0
	for _, f := range r.Files {
		if n := countErrors(f.Bag); n > 0 {
			failed++
			errs += n
		}
	}
	fmt.Fprintf(w, "%d files checked, %d with errors (%d errors)\n", len(r.Files), failed, errs)
}
