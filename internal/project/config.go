package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors lifeline.toml. Zero values mean "use the default".
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Traits TraitsConfig `toml:"traits"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
}

type CheckConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Jobs limits parallel files in directory mode; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

type TraitsConfig struct {
	// Prelude names the traits visible in every file. nil keeps the
	// built-in list; an empty list disables the prelude.
	Prelude []string `toml:"prelude"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type TraceConfig struct {
	Level string `toml:"level"`
}

// Output formats accepted in [output].format and by --format.
var Formats = []string{"pretty", "json", "short"}

// Default returns the configuration used when no lifeline.toml exists.
func Default() Config {
	return Config{
		Check:  CheckConfig{MaxDiagnostics: 100},
		Output: OutputConfig{Format: "pretty"},
		Trace:  TraceConfig{Level: "off"},
	}
}

// LoadConfig decodes path over the defaults. Unknown keys are errors so
// that a typo does not silently fall back to a default.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("traits", "prelude") && cfg.Traits.Prelude == nil {
		cfg.Traits.Prelude = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds the lifeline.toml governing start and loads it. When none
// exists it returns the defaults and an empty path.
func Discover(start string) (Config, string, error) {
	path, ok, err := FindConfig(start)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func (c Config) Validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative")
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative")
	}
	if c.Output.Format != "" && !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("[output].format must be one of %s, got %q", strings.Join(Formats, "|"), c.Output.Format)
	}
	for _, name := range c.Traits.Prelude {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("[traits].prelude contains an empty name")
		}
	}
	switch c.Trace.Level {
	case "", "off", "error", "phase", "detail", "debug":
	default:
		return fmt.Errorf("[trace].level must be off|error|phase|detail|debug, got %q", c.Trace.Level)
	}
	return nil
}
