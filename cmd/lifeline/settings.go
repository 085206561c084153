package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lifeline/internal/driver"
	"lifeline/internal/project"
)

// settings is the merged view of defaults, lifeline.toml and flags.
type settings struct {
	Config     project.Config
	ConfigPath string
	Color      bool
	Quiet      bool
	Timings    bool
}

// cli is filled by the root PersistentPreRunE before any RunE.
var cli settings

func loadSettings(cmd *cobra.Command, args []string) error {
	st, err := readSettings(cmd, args)
	if err != nil {
		return err
	}
	cli = st
	return nil
}

func readSettings(cmd *cobra.Command, args []string) (settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var st settings
	if configPath != "" {
		st.Config, err = project.LoadConfig(configPath)
		st.ConfigPath = configPath
	} else {
		start := "."
		if len(args) > 0 {
			start = args[0]
		}
		st.Config, st.ConfigPath, err = project.Discover(start)
	}
	if err != nil {
		return settings{}, err
	}

	if flags.Changed("max-diagnostics") {
		st.Config.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics")
		if err != nil {
			return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		st.Color = true
	case "off":
		st.Color = false
	case "auto", "":
		st.Color = isTerminal(os.Stderr)
	default:
		return settings{}, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if st.Quiet, err = flags.GetBool("quiet"); err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.Timings, err = flags.GetBool("timings"); err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return st, nil
}

// driverOptions builds driver options, letting a --jobs flag on cmd win
// over [check].jobs.
func (s settings) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.Config.Check.MaxDiagnostics,
		Jobs:           s.Config.Check.Jobs,
		PreludeTraits:  s.Config.Traits.Prelude,
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return opts, fmt.Errorf("--jobs must not be negative")
		}
		opts.Jobs = jobs
	}
	return opts, nil
}

// format returns --format when given, else [output].format when allowed is
// one of its values, else the first allowed value.
func (s settings) format(cmd *cobra.Command, allowed ...string) (string, error) {
	value, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		value = allowed[0]
		for _, a := range allowed {
			if a == s.Config.Output.Format {
				value = a
			}
		}
		return value, nil
	}
	for _, a := range allowed {
		if a == value {
			return value, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", value, strings.Join(allowed, "|"))
}
