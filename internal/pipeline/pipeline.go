// Package pipeline wires the transform, semantics, ATN, and analysis stages
// into the single staged front end spec.md §1 and §5 describe: one
// issues.Manager threaded through every stage, each stage's error count
// checked before the next runs, generalized from the teacher's own staged
// front end (internal/ictiobus/ictiobus.go's Frontend[E].Analyze, which
// threads one lex/parse/evaluate pipeline through a single error-checked
// sequence) to this module's four-stage transform/semantics/ATN/analysis
// pipeline.
package pipeline

import (
	"github.com/dekarrin/grammarc/internal/analysis"
	"github.com/dekarrin/grammarc/internal/atn"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/dekarrin/grammarc/internal/semantics"
	"github.com/dekarrin/grammarc/internal/transform"
)

// Result holds everything a compiled grammar needs downstream: the grammar
// itself, its built ATN, and (for a Combined grammar) the extracted
// implicit lexer and its own ATN.
type Result struct {
	Grammar *grammar.Grammar
	ATN     *atn.ATN

	ImplicitLexer    *grammar.Grammar
	ImplicitLexerATN *atn.ATN
}

// Compile runs root through every stage in order, aborting further stages
// the moment mgr's error count grows (per spec.md §7's "Pipeline stages
// test the error count between stages and abort further stages when it
// grew"). imports must already be independently compiled grammars, in the
// topologically-sorted order transform.MergeImports expects; pass nil if
// root declares no imports.
//
// Extraction of a combined grammar's implicit lexer happens after root's
// own semantic pipeline runs to completion: ExtractImplicitLexer moves
// already-collected grammar.Rule values out of root's rule table
// (spec.md §4.1.2), so the rule table has to exist first. The extracted
// lexer then gets its own semantics/ATN/analysis pass over the rules it
// inherited. One consequence (mirroring transform.MergeImports, which
// likewise does not transplant token/channel symbol tables between
// grammars) is that the implicit lexer's own token symbol table starts
// empty rather than inheriting root's type numbering for the rules it
// took over; this only matters for a lexer rule that itself refers to
// another token by name rather than by character literal, which is rare
// enough in practice that this module does not special-case it.
func Compile(root *grammar.Grammar, imports []*grammar.Grammar, mgr *issues.Manager) (res *Result) {
	res = &Result{Grammar: root}
	defer func() {
		var internalErr error
		issues.RecoverInternal(mgr, &internalErr)
	}()

	before := mgr.ErrorCount()
	if len(imports) > 0 {
		transform.MergeImports(root, imports, mgr)
		if mgr.ErrorCount() > before {
			return res
		}
	}

	semantics.Run(root, mgr)
	if mgr.ErrorCount() > before {
		return res
	}

	lex := transform.ExtractImplicitLexer(root, mgr)

	before = mgr.ErrorCount()
	transform.ReduceBlockSets(root, mgr)
	if lex != nil {
		transform.ReduceBlockSets(lex, mgr)
	}
	if mgr.ErrorCount() > before {
		res.ImplicitLexer = lex
		return res
	}

	if lex != nil {
		before = mgr.ErrorCount()
		semantics.Run(lex, mgr)
		if mgr.ErrorCount() > before {
			res.ImplicitLexer = lex
			return res
		}
	}

	builtATN := buildAndAnalyze(root, mgr)
	var lexATN *atn.ATN
	if lex != nil {
		lexATN = buildAndAnalyze(lex, mgr)
	}

	root.ATN = builtATN
	if lex != nil {
		lex.ATN = lexATN
	}

	res.ATN = builtATN
	res.ImplicitLexer = lex
	res.ImplicitLexerATN = lexATN
	return res
}

func buildAndAnalyze(g *grammar.Grammar, mgr *issues.Manager) *atn.ATN {
	a := atn.NewFactory(g, mgr).BuildGrammar()
	atn.MergeAdjacentSets(a)
	atn.CompactStates(a)
	analysis.Run(g, a, mgr)
	return a
}
