package main

import (
	"io"

	"github.com/spf13/cobra"

	"lifeline/internal/diagfmt"
	"lifeline/internal/driver"
	"lifeline/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lf",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := driver.Tokenize(args[0], cli.Config.Check.MaxDiagnostics)
		if err != nil {
			return err
		}
		return printFrontend(cmd, res.Frontend, frontendPrinters{
			"pretty": func(w io.Writer, fs *source.FileSet) error { return diagfmt.FormatTokensPretty(w, res.Tokens, fs) },
			"json":   func(w io.Writer, _ *source.FileSet) error { return diagfmt.FormatTokensJSON(w, res.Tokens) },
		})
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lf",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := driver.Parse(args[0], cli.Config.Check.MaxDiagnostics)
		if err != nil {
			return err
		}
		return printFrontend(cmd, res.Frontend, frontendPrinters{
			"pretty": func(w io.Writer, fs *source.FileSet) error { return diagfmt.FormatASTPretty(w, res.AST, fs) },
			"json":   func(w io.Writer, _ *source.FileSet) error { return diagfmt.FormatASTJSON(w, res.AST) },
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{tokenizeCmd, parseCmd} {
		c.Flags().String("format", "pretty", "output format (pretty|json)")
	}
}

type frontendPrinters map[string]func(w io.Writer, fs *source.FileSet) error

// printFrontend writes diagnostics to stderr and the listing to stdout.
// Errors in the file make the command fail after the listing is printed.
func printFrontend(cmd *cobra.Command, fe driver.Frontend, printers frontendPrinters) error {
	format, err := cli.format(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	if fe.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), fe.Bag, fe.FileSet, diagfmt.PrettyOpts{
			Color:     cli.Color,
			Context:   1,
			ShowNotes: true,
		})
	}
	if err := printers[format](cmd.OutOrStdout(), fe.FileSet); err != nil {
		return err
	}
	if fe.Bag.HasErrors() {
		return errReported
	}
	return nil
}
