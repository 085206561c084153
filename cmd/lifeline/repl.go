package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lifeline/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Resolve snippets interactively",
	Long: `repl reads lines until a blank line, resolves them as one file and prints
the region table and diagnostics. Type :quit or press Ctrl-D to leave`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().String("history", "", "history file (default: ~/.lifeline_history)")
}

func runREPL(cmd *cobra.Command, _ []string) error {
	history, err := cmd.Flags().GetString("history")
	if err != nil {
		return err
	}
	if history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, ".lifeline_history")
		}
	}
	opts, err := cli.driverOptions(cmd)
	if err != nil {
		return err
	}
	return repl.REPL(repl.Config{
		Options:     opts,
		Color:       cli.Color,
		HistoryFile: history,
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
	})
}
