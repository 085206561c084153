package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lifeline/internal/driver"
	"lifeline/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// resolveDirWithUI runs ResolveDir while a progress view consumes its events.
func resolveDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*driver.DirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ResolveDir(ctx, dir, opts)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// если UI упал, не даём воркерам застрять на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
