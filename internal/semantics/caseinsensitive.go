package semantics

import (
	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// checkCaseInsensitiveOption is pass 10: the caseInsensitive option's value
// must be "true" or "false", it is only meaningful on lexer rules, and a
// rule-level value equal to the grammar-wide value is redundant.
func checkCaseInsensitiveOption(g *grammar.Grammar, mgr *issues.Manager) {
	globalVal, hasGlobal := globalCaseInsensitive(g)

	for _, r := range g.Rules() {
		if r.AST == nil {
			continue
		}
		val, ok := r.AST.Option("caseInsensitive")
		if !ok {
			continue
		}
		if val != "true" && val != "false" {
			mgr.Add(issues.New(issues.CodeIllegalOption, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"caseInsensitive option on rule %q must be true or false, got %q", r.Name, val))
			continue
		}
		if !isLexerRuleName(r.Name) && g.Type != grammar.Lexer {
			mgr.Add(issues.New(issues.CodeIllegalOption, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"caseInsensitive option is only valid on lexer rules, not %q", r.Name))
			continue
		}
		if hasGlobal && val == globalVal {
			mgr.Add(issues.New(issues.CodeRedundantCaseInsensitiveOption, issues.Warning,
				issues.Location{File: g.FileName}, nil,
				"rule %q's caseInsensitive option repeats the grammar-wide value", r.Name))
		}
	}
}

func globalCaseInsensitive(g *grammar.Grammar) (string, bool) {
	if g.Root == nil {
		return "", false
	}
	for _, c := range g.Root.Children {
		if c.Kind != ast.KindOptionsBlock {
			continue
		}
		if v, ok := c.Options["caseInsensitive"]; ok {
			return v, true
		}
	}
	return "", false
}
