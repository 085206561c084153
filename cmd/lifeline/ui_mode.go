package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui flag of diag on a directory.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	m := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI reports whether a directory run shows the progress view.
// In auto mode it needs a terminal on stdout and no --quiet.
func shouldUseTUI(mode uiMode, quiet bool) bool {
	if mode == uiModeAuto {
		return !quiet && isTerminal(os.Stdout)
	}
	return mode == uiModeOn
}
