package semantics

import (
	"unicode"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// allowedOptions is the set of option keys accepted in an options{} block,
// used by basicChecks' illegal-option check.
var allowedOptions = map[string]bool{
	"superClass":        true,
	"TokenLabelType":    true,
	"tokenVocab":        true,
	"language":          true,
	"contextSuperClass": true,
	"exportMacro":       true,
	"caseInsensitive":   true,
}

// reservedRuleNames may not be used as rule names, since they are grammar
// file keywords.
var reservedRuleNames = map[string]bool{
	"rule": true, "parser": true, "lexer": true, "grammar": true,
	"options": true, "tokens": true, "channels": true, "import": true,
	"fragment": true, "returns": true, "locals": true, "throws": true,
	"catch": true, "finally": true, "mode": true,
}

// basicChecks is pass 2: prequel-section repetition, illegal options,
// reserved rule names, token-name capitalization, non-empty lexer modes,
// epsilon lexer rules, and lexer-command compatibility.
func basicChecks(g *grammar.Grammar, mgr *issues.Manager) {
	checkRepeatedPrequel(g, mgr)
	checkIllegalOptions(g, mgr)

	for _, r := range g.Rules() {
		if reservedRuleNames[r.Name] {
			mgr.Add(issues.New(issues.CodeReservedRuleName, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"rule %q uses a reserved name", r.Name))
		}
		checkSymbolicTokenCapitalization(g, r, mgr)
		if g.Type == grammar.Lexer || isLexerRuleName(r.Name) {
			checkEpsilonAlt(g, r, mgr)
			checkLexerCommands(g, r, mgr)
		}
	}

	checkModesHaveRules(g, mgr)
}

func checkRepeatedPrequel(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root == nil {
		return
	}
	seen := map[ast.Kind]bool{}
	for _, c := range g.Root.Children {
		switch c.Kind {
		case ast.KindOptionsBlock, ast.KindTokensBlock, ast.KindChannelsBlock:
			if seen[c.Kind] {
				mgr.Add(issues.New(issues.CodeRepeatedPrequel, issues.Error,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "%s section repeated", c.Kind))
			}
			seen[c.Kind] = true
		}
	}
}

func checkIllegalOptions(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root == nil {
		return
	}
	for _, c := range g.Root.Children {
		if c.Kind != ast.KindOptionsBlock {
			continue
		}
		for key := range c.Options {
			if !allowedOptions[key] {
				mgr.Add(issues.New(issues.CodeIllegalOption, issues.Warning,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "unrecognized option %q", key))
			}
		}
	}
}

// checkSymbolicTokenCapitalization reports every symbolic (non-literal,
// non-rule-ref) terminal reference whose name doesn't start uppercase.
func checkSymbolicTokenCapitalization(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	for i := 1; i < len(r.Alts); i++ {
		r.Alts[i].Walk(func(n *ast.Node) {
			if n.Kind != ast.KindTerminalRef || isQuotedLiteral(n.Text) || n.Text == "" {
				return
			}
			first := []rune(n.Text)[0]
			if !unicode.IsUpper(first) {
				mgr.Add(issues.New(issues.CodeTokenNamesMustStartUpper, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "token name %q must start with an uppercase letter", n.Text))
			}
		})
	}
}

// checkModesHaveRules reports CodeModeWithoutRules for every declared mode
// (other than DEFAULT_MODE) that no lexer rule's AST claims membership in
// via its "mode" option.
func checkModesHaveRules(g *grammar.Grammar, mgr *issues.Manager) {
	used := map[string]bool{}
	for _, r := range g.Rules() {
		if r.AST == nil {
			continue
		}
		if mode, ok := r.AST.Option("mode"); ok {
			used[mode] = true
		}
	}
	for _, mode := range g.ModeNames() {
		if mode == "DEFAULT_MODE" || used[mode] {
			continue
		}
		mgr.Add(issues.New(issues.CodeModeWithoutRules, issues.Warning,
			issues.Location{File: g.FileName}, nil,
			"mode %q has no rules", mode))
	}
}

// checkEpsilonAlt reports a lexer rule alternative with no elements at all,
// which would match the empty string.
func checkEpsilonAlt(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	for i := 1; i < len(r.Alts); i++ {
		if len(r.Alts[i].Children) == 0 {
			mgr.Add(issues.New(issues.CodeEpsilonToken, issues.Warning,
				issues.Location{File: g.FileName}, nil,
				"rule %q has an alternative that matches the empty string", r.Name))
		}
	}
}

func checkLexerCommands(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	for i := 1; i < len(r.Alts); i++ {
		seen := map[string]bool{}
		var hasSkip, hasMore bool
		for _, c := range r.Alts[i].Children {
			if c.Kind != ast.KindLexerCommand {
				continue
			}
			name := c.Text
			if seen[name] {
				mgr.Add(issues.New(issues.CodeLexerCommandDuplicated, issues.Warning,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "lexer command %q duplicated in rule %q", name, r.Name))
			}
			seen[name] = true
			if name == "skip" {
				hasSkip = true
			}
			if name == "more" {
				hasMore = true
			}
		}
		if hasSkip && hasMore {
			mgr.Add(issues.New(issues.CodeLexerCommandIncompatible, issues.Error,
				issues.Location{File: g.FileName}, nil,
				"rule %q combines incompatible lexer commands skip and more", r.Name))
		}
	}
}
