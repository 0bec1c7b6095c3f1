package main

import (
	"github.com/spf13/cobra"

	"github.com/dekarrin/grammarc/internal/serialize"
)

func init() {
	cmd := &cobra.Command{
		Use:   "interp FILE",
		Short: "Write the plaintext interpreter dump for a grammar's ATN",
		Args:  cobra.ExactArgs(1),
		RunE:  runInterp,
	}
	rootCmd.AddCommand(cmd)
}

func runInterp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := readGrammarFile(args[0])
	if err != nil {
		return err
	}

	cr := newCompileRun(cfg)
	result := cr.compile(g)
	if cr.mgr.ErrorCount() > 0 {
		returnCode = ExitPipelineErrors
		return nil
	}

	if err := writeArtifact(cfg.InterpOut, serialize.WriteInterpreterDump(g, result.ATN, cr.mgr)); err != nil {
		return err
	}

	// A split-off implicit lexer has its own ATN and therefore its own
	// interpreter dump; only emit it when writing to a file, since stdout
	// only has room for one dump at a time.
	if result.ImplicitLexer != nil && cfg.InterpOut != "" {
		lexDump := serialize.WriteInterpreterDump(result.ImplicitLexer, result.ImplicitLexerATN, cr.mgr)
		return writeArtifact(cfg.InterpOut+".lexer", lexDump)
	}

	return nil
}
