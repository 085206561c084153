// Package repl provides a read/resolve/print loop for lifetime resolution.
//
// It supports readline-style command editing and interrupts through
// Control-C.
//
// Lines are collected until a blank line; the collected chunk is then
// resolved as a complete file and its region table and diagnostics are
// printed. Nothing carries over from one chunk to the next. A chunk
// consisting of ":quit" ends the loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"

	"lifeline/internal/diagfmt"
	"lifeline/internal/driver"
)

var interrupted = make(chan os.Signal, 1)

// Config controls the loop. Out and Err default to os.Stdout and os.Stderr.
type Config struct {
	Options     driver.Options
	Color       bool
	HistoryFile string
	Out         io.Writer
	Err         io.Writer
}

func (c *Config) defaults() {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}
}

// lineReader is the part of *readline.Instance the loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

const (
	prompt     = "lf> "
	contPrompt = "... "
)

// REPL runs the loop on the terminal until EOF or ":quit".
func REPL(cfg Config) error {
	cfg.defaults()
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: cfg.HistoryFile,
		Stdout:      cfg.Out,
		Stderr:      cfg.Err,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	loop(rl, cfg)
	fmt.Fprintln(cfg.Out)
	return nil
}

func loop(rl lineReader, cfg Config) {
	for n := 1; ; n++ {
		if err := rep(rl, cfg, n); err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(cfg.Out, err)
				continue
			}
			return
		}
	}
}

// rep reads, resolves and prints one chunk. It returns an error only when
// reading failed or the user asked to quit; resolution problems are printed.
func rep(rl lineReader, cfg Config, n int) error {
	// каждый чанк получает свой контекст, отменяемый по SIGINT
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()

	src, err := readChunk(rl)
	if err != nil && (src == "" || !errors.Is(err, io.EOF)) {
		return err
	}
	switch strings.TrimSpace(src) {
	case "":
		return err
	case ":quit", ":q":
		return io.EOF
	}

	name := fmt.Sprintf("<repl-%d>", n)
	if perr := Eval(ctx, cfg, name, src); perr != nil {
		fmt.Fprintln(cfg.Err, perr)
	}
	return err
}

// readChunk collects lines up to the first blank line. On EOF the lines
// read so far are returned together with io.EOF.
func readChunk(rl lineReader) (string, error) {
	var sb strings.Builder
	rl.SetPrompt(prompt)
	for {
		line, err := rl.Readline()
		if err != nil {
			return sb.String(), err
		}
		if strings.TrimSpace(line) == "" {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
		rl.SetPrompt(contPrompt)
	}
}

// Eval resolves src as a file named name and prints its region table to
// cfg.Out and its diagnostics to cfg.Err.
func Eval(ctx context.Context, cfg Config, name, src string) error {
	cfg.defaults()
	res, err := driver.ResolveSource(ctx, name, []byte(src), cfg.Options)
	if err != nil {
		return err
	}
	table := diagfmt.RegionTable{Path: name, Rows: driver.Rows(res)}
	if err := diagfmt.RegionsPretty(cfg.Out, table, diagfmt.RegionOpts{Color: cfg.Color}); err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(cfg.Err, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     cfg.Color,
			PathMode:  diagfmt.PathModeBasename,
			ShowNotes: true,
		})
	}
	return nil
}
