/*
Grammarc runs a grammar file through the transform, semantic, ATN, and
analysis pipeline and reports diagnostics. It is a thin harness over the
internal/pipeline library, not a feature of the library itself.

Usage:

	grammarc <subcommand> [flags] FILE

Subcommands:

	compile   run the full pipeline and print a rule/decision summary
	tokens    write the .tokens vocab file
	interp    write the plaintext interpreter dump
	atn       write the raw serialized-ATN integer stream

The persistent flags are:

	-c, --config FILE
		Optional TOML config file (internal/config.Config fields).

	-f, --format antlr|gnu|vs2005
		Diagnostic location-prefix format. Overrides the config file.

	-W, --warnings-as-errors
		Promote warnings to errors for the purposes of the pipeline's
		stage-abort error count.

	-v, --version
		Print the grammarc version and exit.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dekarrin/grammarc/internal/config"
	"github.com/dekarrin/grammarc/internal/version"
)

// Exit codes, mirroring the teacher's cmd/tqi numeric-constant convention.
const (
	ExitSuccess = iota
	ExitUsageError
	ExitPipelineErrors
)

var returnCode = ExitSuccess

var (
	flagConfig            string
	flagFormat            string
	flagWarningsAreErrors bool
	flagVersion           bool
)

var rootCmd = &cobra.Command{
	Use:           "grammarc",
	Short:         "Compile a grammar file through the ATN front end and report diagnostics",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			fmt.Printf("grammarc %s\n", version.Current)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "optional TOML config file")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "diagnostic format: antlr, gnu, or vs2005 (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&flagWarningsAreErrors, "warnings-as-errors", "W", false, "promote warnings to errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "print the grammarc version and exit")
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
	}
}

// loadConfig merges the --config file with the --format/--warnings-as-errors
// flag overrides; flags win over the file, the same precedence the teacher's
// plain-pflag CLIs give their own flags over any persisted state.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config %s: %w", flagConfig, err)
	}
	if flagFormat != "" {
		cfg.DiagnosticFormat = flagFormat
	}
	if flagWarningsAreErrors {
		cfg.WarningsAreErrors = true
	}
	return cfg, nil
}
