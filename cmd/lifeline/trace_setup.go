package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeline/internal/trace"
)

func addTraceFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring buffer")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval, 0 disables")
}

// traceConfig resolves the --trace-* flags against lifeline.toml.
// [trace].level applies when --trace-level is not given, and --trace
// with nothing else turns on the phase level.
func traceConfig(cmd *cobra.Command) (trace.Config, error) {
	pf := cmd.Root().PersistentFlags()
	var errs []error
	str := func(name string) string {
		v, err := pf.GetString(name)
		errs = append(errs, err)
		return v
	}

	cfg := trace.Config{OutputPath: str("trace")}
	level, mode := str("trace-level"), str("trace-mode")
	var err error
	cfg.RingSize, err = pf.GetInt("trace-ring-size")
	errs = append(errs, err)
	cfg.Heartbeat, err = pf.GetDuration("trace-heartbeat")
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}

	if !pf.Changed("trace-level") && cli.Config.Trace.Level != "" {
		level = cli.Config.Trace.Level
	}
	if cfg.Level, err = trace.ParseLevel(level); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && cfg.OutputPath != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing installs the tracer into the command context and returns the
// cleanup that stops the heartbeat and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("trace flags: %w", err)
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, err
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	if !tracer.Enabled() {
		return func() {}, nil
	}
	// panic dump in main reads the tracer from the root context
	cmd.Root().SetContext(ctx)

	hb := trace.StartHeartbeat(tracer, cfg.Heartbeat)
	started := time.Now()
	trace.Point(tracer, trace.ScopeDriver, "command", cmd.CommandPath(), 0)

	return func() {
		hb.Stop()
		trace.Point(tracer, trace.ScopeDriver, "exit", time.Since(started).String(), 0)
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
