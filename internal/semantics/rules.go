package semantics

import (
	"strings"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// collectRules is pass 1: build the rule table and per-alt structures from
// g.Root. A Grammar assembled directly through the grammar package's own API
// (every unit test in this module, plus any caller that already has a
// populated rule table) has no Root and this pass is a no-op, which is what
// lets transform-package tests build grammars without going through an AST.
func collectRules(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root == nil {
		return
	}
	for _, child := range g.Root.Children {
		if child.Kind != ast.KindRule {
			continue
		}
		r := ruleFromAST(child)
		if g.HasRule(r.Name) {
			continue
		}
		g.AddRule(r)
	}
	if len(g.Rules()) > 0 && g.Rule(g.StartRuleName()) != nil {
		g.Rule(g.StartRuleName()).IsStartRule = true
	}
}

func ruleFromAST(n *ast.Node) *grammar.Rule {
	r := grammar.NewRule(n.Text)
	r.AST = n

	if v, ok := n.Option("fragment"); ok && v == "true" {
		r.IsFragment = true
	}
	r.Args = parseAttributes(n, "args")
	r.Returns = parseAttributes(n, "returns")
	r.Locals = parseAttributes(n, "locals")

	for _, c := range n.Children {
		if c.Kind == ast.KindAlt {
			r.AddAlt(c)
		}
	}
	return r
}

// parseAttributes reads a comma-separated "name:type" list from the option
// named key, e.g. n.Option("args") == "x:int,y:string".
func parseAttributes(n *ast.Node, key string) []grammar.Attribute {
	v, ok := n.Option(key)
	if !ok || v == "" {
		return nil
	}
	var attrs []grammar.Attribute
	for _, part := range strings.Split(v, ",") {
		nameType := strings.SplitN(part, ":", 2)
		a := grammar.Attribute{Name: strings.TrimSpace(nameType[0])}
		if len(nameType) == 2 {
			a.Type = strings.TrimSpace(nameType[1])
		}
		attrs = append(attrs, a)
	}
	return attrs
}
