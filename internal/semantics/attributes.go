package semantics

import (
	"regexp"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// attrRefPattern matches a `$label`, `$label.attr`, or `$token.text`-style
// attribute expression embedded in an action's source text.
var attrRefPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)(?:\.[A-Za-z_][A-Za-z0-9_]*)?`)

// implicitAttrNames are always valid regardless of the enclosing rule's
// declared attributes and labels: $text/$start/$stop refer to the current
// rule invocation itself, and $ctx to its generated context object.
var implicitAttrNames = map[string]bool{
	"text": true, "start": true, "stop": true, "ctx": true,
}

// checkAttributeExpressions is pass 12: every `$name` or `$name.attr`
// reference inside an action or predicate must resolve to a label declared
// somewhere in the enclosing rule's alternative, one of its args/returns/
// locals, or one of the implicit per-invocation names.
func checkAttributeExpressions(g *grammar.Grammar, mgr *issues.Manager) {
	for _, r := range g.Rules() {
		for i := 1; i < len(r.Alts); i++ {
			labels := collectAltLabels(r.Alts[i])
			r.Alts[i].Walk(func(n *ast.Node) {
				if n.Kind != ast.KindAction && n.Kind != ast.KindPredicate {
					return
				}
				for _, m := range attrRefPattern.FindAllStringSubmatch(n.Text, -1) {
					name := m[1]
					if implicitAttrNames[name] || labels[name] {
						continue
					}
					if _, ok := r.HasAttribute(name); ok {
						continue
					}
					mgr.Add(issues.New(issues.CodeUnknownAttributeReference, issues.Error,
						issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
						nil, "$%s does not refer to any label, argument, return value, or local in rule %q",
						name, r.Name))
				}
			})
		}
	}
}

func collectAltLabels(alt *ast.Node) map[string]bool {
	labels := map[string]bool{}
	alt.Walk(func(n *ast.Node) {
		if label, ok := n.Option("label"); ok && label != "" {
			labels[label] = true
		}
	})
	return labels
}
