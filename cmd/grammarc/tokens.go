package main

import (
	"github.com/spf13/cobra"

	"github.com/dekarrin/grammarc/internal/serialize"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Write the .tokens vocab file for a grammar",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := readGrammarFile(args[0])
	if err != nil {
		return err
	}

	cr := newCompileRun(cfg)
	cr.compile(g)
	if cr.mgr.ErrorCount() > 0 {
		returnCode = ExitPipelineErrors
		return nil
	}

	return writeArtifact(cfg.TokensOut, serialize.WriteVocab(g))
}
