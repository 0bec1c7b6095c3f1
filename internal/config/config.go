// Package config holds grammarc's CLI configuration: diagnostic format
// selection, the warnings-as-errors promotion toggle, and output file paths
// for the serialized ATN / vocab / interpreter-dump artifacts spec.md §6
// names. It is loaded the way the teacher loads its own TOML-backed world
// metadata (internal/tqw/tqw.go's toml.Unmarshal over a tqw info block),
// generalized from one fixed struct to grammarc's own fields.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/grammarc/internal/issues"
)

// Config is the full set of CLI-level knobs. Every field has a usable zero
// value so a Config can be built directly by flag parsing without going
// through a config file at all.
type Config struct {
	// DiagnosticFormat selects the location-prefix style issues are printed
	// with: "antlr" (default), "gnu", or "vs2005".
	DiagnosticFormat string `toml:"diagnostic_format"`

	// WarningsAreErrors promotes every Warning/WarningOneOff diagnostic to
	// also raise the pipeline's error count, per spec.md §7.
	WarningsAreErrors bool `toml:"warnings_as_errors"`

	// TokensOut, InterpOut, and ATNOut are output file paths for the
	// `.tokens` vocab file, the interpreter dump, and the raw serialized-ATN
	// integer stream, respectively. An empty path means the artifact is
	// written to stdout.
	TokensOut string `toml:"tokens_out"`
	InterpOut string `toml:"interp_out"`
	ATNOut    string `toml:"atn_out"`
}

// Default returns the configuration grammarc starts from before any config
// file or flag is applied.
func Default() Config {
	return Config{
		DiagnosticFormat: "antlr",
	}
}

// Load reads a TOML config file at path into a Config seeded with Default
// values, so a config file only needs to name the fields it overrides. An
// empty path is not an error; it returns the defaults unchanged, matching
// grammarc's "config file is optional" CLI contract.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// Format resolves the configured diagnostic format name to an issues.Format,
// defaulting to FormatANTLR for an empty or unrecognized value.
func (c Config) Format() issues.Format {
	return issues.ParseFormat(c.DiagnosticFormat)
}
