package main

import (
	"fmt"
	"io"

	"lifeline/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	_, printErr := fmt.Fprint(out, report.Summary())
	if printErr != nil {
		panic(printErr)
	}
}
