package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dekarrin/grammarc/internal/serialize"
	"github.com/dekarrin/grammarc/internal/util"
)

func init() {
	cmd := &cobra.Command{
		Use:   "atn FILE",
		Short: "Write the raw serialized-ATN integer stream for a grammar",
		Args:  cobra.ExactArgs(1),
		RunE:  runATN,
	}
	rootCmd.AddCommand(cmd)
}

func runATN(cmd *cobra.Command, args []string) error {
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

	vals := serialize.EncodeInts(serialize.SerializeATN(g, result.ATN), cr.mgr)

	var sb util.UndoableStringBuilder
	for _, v := range vals {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('\n')
	}

	return writeArtifact(cfg.ATNOut, sb.String())
}
