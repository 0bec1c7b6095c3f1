package semantics

import (
	"strings"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// collectSymbols is pass 4: record the grammar's named actions (merging
// same-scope bodies found on g.Root's KindNamedAction children into
// g.NamedActions) and register every mode a rule's AST claims membership in,
// so the later mode-conflict check (pass 8) sees a complete mode table;
// basicChecks' non-empty-mode check (pass 2) runs before this pass. Token/string/rule-ref/predicate/label collection
// happens lazily, inline in the pass-5/6/12 checks that consume them,
// rather than being materialized into an intermediate table here.
func collectSymbols(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root != nil {
		for _, c := range g.Root.Children {
			if c.Kind != ast.KindNamedAction {
				continue
			}
			scope, _ := c.Option("scope")
			key := c.Text
			if scope != "" {
				key = scope + "::" + c.Text
			}
			g.NamedActions[key] = c.Token.Text
		}
	}
	for _, r := range g.Rules() {
		if r.AST == nil {
			continue
		}
		if mode, ok := r.AST.Option("mode"); ok {
			g.DefineMode(mode)
		}
	}
}

// checkSymbols is pass 5: label conflicts, action redefinition, rule-
// argument-count mismatch at call sites, and qualified rule-reference
// resolution into imported grammars. (Reserved-rule-name checking is also
// listed under this pass in spec.md's prose, but is reported once, from
// basicChecks, to avoid a duplicate diagnostic for the same rule.)
func checkSymbols(g *grammar.Grammar, mgr *issues.Manager) {
	checkActionRedefinition(g, mgr)
	for _, r := range g.Rules() {
		checkLabelConflicts(g, r, mgr)
		checkRuleArgUsage(g, r, mgr)
		checkQualifiedRuleRefs(g, r, mgr)
	}
}

func checkActionRedefinition(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root == nil {
		return
	}
	bodies := map[string][]string{}
	for _, c := range g.Root.Children {
		if c.Kind != ast.KindNamedAction {
			continue
		}
		scope, _ := c.Option("scope")
		key := c.Text
		if scope != "" {
			key = scope + "::" + c.Text
		}
		bodies[key] = append(bodies[key], c.Token.Text)
	}
	for key, texts := range bodies {
		if len(texts) < 2 {
			continue
		}
		for i := 1; i < len(texts); i++ {
			if texts[i] != texts[0] {
				mgr.Add(issues.New(issues.CodeActionRedefinition, issues.Error,
					issues.Location{File: g.FileName}, nil,
					"named action %q redefined with different content", key))
				break
			}
		}
	}
}

// checkLabelConflicts reports a label that shares its name with one of r's
// declared attributes, with r itself, or with an earlier label of a different
// label type in the same scope: the rule name, or "rule#altLabel" for an
// alternative with an alt label.
func checkLabelConflicts(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	type seenLabel struct {
		kind string
		node *ast.Node
	}
	scopes := map[string]map[string]seenLabel{}

	for i := 1; i < len(r.Alts); i++ {
		altLabel, _ := r.Alts[i].Option("altLabel")
		scopeKey := r.Name
		if altLabel != "" {
			scopeKey = r.Name + "#" + altLabel
		}
		if scopes[scopeKey] == nil {
			scopes[scopeKey] = map[string]seenLabel{}
		}
		scope := scopes[scopeKey]

		r.Alts[i].Walk(func(n *ast.Node) {
			label, ok := n.Option("label")
			if !ok || label == "" {
				return
			}
			kind, _ := n.Option("labelType")

			if attrKind, isAttr := r.HasAttribute(label); isAttr {
				mgr.Add(issues.New(issues.CodeLabelConflict, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "label %q in rule %q conflicts with %s of the same name", label, r.Name, attrKind))
				return
			}
			if r.Name == label {
				mgr.Add(issues.New(issues.CodeLabelConflict, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "label %q conflicts with its own rule name", label))
				return
			}
			if prior, ok := scope[label]; ok && prior.kind != kind {
				mgr.Add(issues.New(issues.CodeLabelConflict, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "label %q reused with a different label type in rule %q (was %s, now %s)",
					label, r.Name, prior.kind, kind))
				return
			}
			scope[label] = seenLabel{kind: kind, node: n}
		})
	}
}

// checkRuleArgUsage reports a rule reference that passes arguments to a rule
// with no declared Args (CodeRuleHasNoArgs) or omits arguments for a rule
// that declares some (CodeMissingRuleArgs). Call-site argument lists are
// recorded on a KindRuleRef node's "args" option (a comma-separated
// expression list; presence alone is what matters here, not its contents).
func checkRuleArgUsage(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	for i := 1; i < len(r.Alts); i++ {
		r.Alts[i].Walk(func(n *ast.Node) {
			if n.Kind != ast.KindRuleRef {
				return
			}
			target := g.Rule(n.Text)
			if target == nil {
				return
			}
			argsText, hasArgs := n.Option("args")
			passesArgs := hasArgs && strings.TrimSpace(argsText) != ""

			if passesArgs && len(target.Args) == 0 {
				mgr.Add(issues.New(issues.CodeRuleHasNoArgs, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "call to rule %q passes arguments but it declares none", n.Text))
			}
			if !passesArgs && len(target.Args) > 0 {
				mgr.Add(issues.New(issues.CodeMissingRuleArgs, issues.Error,
					issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
					nil, "call to rule %q omits required arguments", n.Text))
			}
		})
	}
}

// checkQualifiedRuleRefs resolves a "grammarName::ruleName" reference into
// the import tree rooted at g, reporting CodeUnresolvedQualifiedRuleRef when
// no import by that name declares the named rule.
func checkQualifiedRuleRefs(g *grammar.Grammar, r *grammar.Rule, mgr *issues.Manager) {
	for i := 1; i < len(r.Alts); i++ {
		r.Alts[i].Walk(func(n *ast.Node) {
			if n.Kind != ast.KindRuleRef || !strings.Contains(n.Text, "::") {
				return
			}
			parts := strings.SplitN(n.Text, "::", 2)
			importName, ruleName := parts[0], parts[1]
			for _, imp := range g.Imports {
				if imp.Name == importName && imp.HasRule(ruleName) {
					return
				}
			}
			mgr.Add(issues.New(issues.CodeUnresolvedQualifiedRuleRef, issues.Warning,
				issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
				nil, "qualified rule reference %q does not resolve to any imported grammar", n.Text))
		})
	}
}
