package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/pipeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Run the full transform/semantic/ATN/analysis pipeline and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
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

	printSummaryTree(g, result)

	if cr.mgr.ErrorCount() > 0 {
		returnCode = ExitPipelineErrors
	}
	return nil
}

// printSummaryTree renders the rule table (and, for a split combined
// grammar, the extracted implicit lexer's own rule table) the way
// npillmayer-gorgo's trepl REPL renders its own parse trees with
// pterm.DefaultTree, and flags any decision analysis found not to be
// LL(1).
func printSummaryTree(g *grammar.Grammar, result *pipeline.Result) {
	root := pterm.TreeNode{Text: fmt.Sprintf("%s (%s)", g.Name, g.Type)}
	for _, r := range g.Rules() {
		root.Children = append(root.Children, pterm.TreeNode{Text: r.Name})
	}

	if result.ImplicitLexer != nil {
		lexNode := pterm.TreeNode{Text: fmt.Sprintf("implicit lexer: %s", result.ImplicitLexer.Name)}
		for _, r := range result.ImplicitLexer.Rules() {
			lexNode.Children = append(lexNode.Children, pterm.TreeNode{Text: r.Name})
		}
		root.Children = append(root.Children, lexNode)
	}

	pterm.DefaultTree.WithRoot(root).Render()

	nonLL1 := countNonLL1(g)
	if result.ImplicitLexer != nil {
		nonLL1 += countNonLL1(result.ImplicitLexer)
	}
	if nonLL1 > 0 {
		pterm.Warning.Println(fmt.Sprintf("%d decision(s) are not LL(1); left for adaptive prediction at runtime", nonLL1))
	}
}

func countNonLL1(g *grammar.Grammar) int {
	n := 0
	for _, d := range g.Decisions() {
		if !g.IsLL1(d) {
			n++
		}
	}
	return n
}
