package semantics

import (
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// checkModeConflicts is pass 8, lexer grammars only: a mode name may not
// collide with a token name or a common constant (spec.md §4.2 pass 8).
func checkModeConflicts(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Type != grammar.Lexer {
		return
	}
	for _, mode := range g.ModeNames() {
		if mode == "DEFAULT_MODE" {
			continue
		}
		if commonConstants[mode] {
			mgr.Add(issues.New(issues.CodeModeConflictsWithCommonConstants, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"mode %q conflicts with a reserved constant name", mode))
			continue
		}
		if _, ok := g.TokenType(mode); ok {
			mgr.Add(issues.New(issues.CodeModeConflictsWithCommonConstants, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"mode %q conflicts with a token of the same name", mode))
		}
	}
}
