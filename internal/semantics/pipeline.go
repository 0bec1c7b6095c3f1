// Package semantics implements the twelve-pass Semantic Pipeline of
// spec.md §4.2: it turns a parsed GrammarAST into a fully populated
// grammar.Grammar (rule table, token/string/channel symbol tables) and
// reports every semantic diagnostic the front end raises before ATN
// construction runs. Passes execute in a fixed order; the pipeline aborts
// further passes the moment one raises the issues.Manager's error count,
// while still letting every diagnostic that pass itself produced through —
// the same short-circuit-on-error-count discipline internal/pipeline uses
// between stages, scaled down to apply within this one stage.
//
// Conventions assumed about the incoming AST (produced by the external
// grammar lexer/parser per spec.md §1, which this module does not build):
// a grammar's root is a KindGrammarRoot node; its KindRule children carry
// the rule name in Text, an "args"/"returns"/"locals" option holding a
// comma-separated "name:type" list, an "fragment"/"start" boolean option
// where applicable, and KindAlt children directly (no enclosing KindBlock)
// representing the rule's top-level alternatives in declaration order.
// Labels attach to an element via "label" (the label text) and "labelType"
// ("token", "tokenList", "rule", or "ruleList") options; list-labels prefix
// neither the option key nor value beyond that tag.
package semantics

import (
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/dekarrin/grammarc/internal/transform"
)

// Run executes all twelve passes against g in declaration order, pushing
// diagnostics to mgr, stopping early after any pass that raised mgr's error
// count.
func Run(g *grammar.Grammar, mgr *issues.Manager) {
	passes := []func(*grammar.Grammar, *issues.Manager){
		collectRules,
		basicChecks,
		func(g *grammar.Grammar, mgr *issues.Manager) { transform.EliminateLeftRecursion(g, mgr) },
		collectSymbols,
		checkSymbols,
		assignTokenTypes,
		assignChannels,
		checkModeConflicts,
		checkUnreachableTokens,
		checkCaseInsensitiveOption,
		checkRangeNotImplied,
		checkAttributeExpressions,
	}

	for _, pass := range passes {
		before := mgr.ErrorCount()
		pass(g, mgr)
		if mgr.ErrorCount() > before {
			return
		}
	}
}
