// Package transform implements the Grammar Transform Pipeline of spec.md
// §4.1: import integration, implicit-lexer extraction, block-set reduction,
// and direct left-recursion elimination. Every pass takes a *grammar.Grammar
// plus an *issues.Manager, mutates the grammar in place, and reports
// diagnostics rather than returning an error for anything recoverable — the
// same discipline the teacher's own Grammar transforms
// (internal/tunascript/grammar.go) use, generalized from whole-grammar
// value-returning CFG rewrites to AST-level in-place rewrites that also
// report issues.
package transform

import (
	"strings"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// leadingRuleRef returns the name referenced by alt's first element if it is
// a rule reference, or "" otherwise. Per spec.md §4.1.4, direct left
// recursion is detected by a leading (or trailing) self-reference; this
// module, like the teacher's own RemoveLeftRecursion, handles the leading
// ("prefix") form, which is what the purple dragon book's Algorithm 4.19
// targets.
func leadingRuleRef(alt *ast.Node) string {
	if len(alt.Children) == 0 {
		return ""
	}
	first := alt.Children[0]
	if first.Kind != ast.KindRuleRef {
		return ""
	}
	return first.Text
}

// EliminateLeftRecursion implements spec.md §4.1.4: for every rule whose
// alternatives reference themselves in leading position, rewrite into an
// equivalent primary/operator-alternative split suitable for
// precedence-climbing, recording per-op-alt metadata. Rules that are only
// indirectly (mutually) left-recursive cannot be resolved by this pass;
// those are reported as CodeLeftRecursionCycles and left unchanged.
func EliminateLeftRecursion(g *grammar.Grammar, mgr *issues.Manager) {
	cycles := detectIndirectCycles(g)
	for _, cyc := range cycles {
		mgr.Add(issues.New(issues.CodeLeftRecursionCycles, issues.Error, issues.Location{File: g.FileName},
			nil, "left-recursion cycle cannot be eliminated: %s", strings.Join(cyc, " -> ")))
	}
	inCycle := map[string]bool{}
	for _, cyc := range cycles {
		for _, name := range cyc {
			inCycle[name] = true
		}
	}

	for _, r := range g.Rules() {
		if inCycle[r.Name] {
			continue
		}
		if !hasDirectLeftRecursion(r) {
			continue
		}
		rewriteDirectLeftRecursion(g, r)
	}
}

func hasDirectLeftRecursion(r *grammar.Rule) bool {
	for i := 1; i < len(r.Alts); i++ {
		if leadingRuleRef(r.Alts[i]) == r.Name {
			return true
		}
	}
	return false
}

// detectIndirectCycles finds rules that are mutually (indirectly) left
// recursive: A's alt leads with B, B's alt leads with A (or a longer cycle).
// Direct self-recursion (A leads with A) is not a cycle in this sense; it is
// exactly what rewriteDirectLeftRecursion resolves.
func detectIndirectCycles(g *grammar.Grammar) [][]string {
	var cycles [][]string
	visited := map[string]bool{}

	var visit func(start, cur string, path []string, onPath map[string]bool)
	visit = func(start, cur string, path []string, onPath map[string]bool) {
		r := g.Rule(cur)
		if r == nil {
			return
		}
		for i := 1; i < len(r.Alts); i++ {
			next := leadingRuleRef(r.Alts[i])
			if next == "" {
				continue
			}
			if next == start && len(path) > 1 {
				cyc := append(append([]string{}, path...), next)
				cycles = append(cycles, cyc)
				for _, name := range path {
					visited[name] = true
				}
				continue
			}
			if next == cur || onPath[next] {
				continue
			}
			onPath[next] = true
			visit(start, next, append(path, next), onPath)
			delete(onPath, next)
		}
	}

	for _, r := range g.Rules() {
		if visited[r.Name] {
			continue
		}
		onPath := map[string]bool{r.Name: true}
		visit(r.Name, r.Name, []string{r.Name}, onPath)
	}
	return cycles
}

// rewriteDirectLeftRecursion performs the Algorithm-4.19-style split
// described in spec.md §4.1.4, mirroring the teacher's
// Grammar.RemoveLeftRecursion immediate-left-recursion step
// (internal/tunascript/grammar.go) at the AST level: group r's alts into
// primary alts (don't start with r) and op alts (do), recording each op
// alt's precedence (alts are numbered so the first-declared op alt binds
// tightest, matching ANTLR convention), associativity, list-label flag, and
// the label discarded from the removed leading self-reference.
func rewriteDirectLeftRecursion(g *grammar.Grammar, r *grammar.Rule) {
	lr := grammar.ToLeftRecursive(r)

	numOpAlts := 0
	for i := 1; i < len(r.Alts); i++ {
		alt := r.Alts[i]
		if leadingRuleRef(alt) != r.Name {
			lr.PrimaryAlts = append(lr.PrimaryAlts, alt)
			continue
		}

		leading := alt.Children[0]
		assoc := grammar.AssocLeft
		if v, ok := alt.Option("assoc"); ok && v == "right" {
			assoc = grammar.AssocRight
		}
		label, _ := leading.Option("label")
		isList := false
		if v, ok := leading.Option("labelType"); ok && v == "ruleList" {
			isList = true
		}

		numOpAlts++
		lr.OpAlts = append(lr.OpAlts, grammar.OpAlt{
			Alt:            alt,
			Precedence:     numOpAlts,
			Assoc:          assoc,
			IsListLabel:    isList,
			DiscardedLabel: label,
		})
	}

	// re-number so precedence falls with declaration order: the
	// first-declared op alt (tightest binding, the ANTLR convention) gets
	// the highest value and the last-declared op alt the lowest.
	for i := range lr.OpAlts {
		lr.OpAlts[i].Precedence = len(lr.OpAlts) - i
	}

	replaceRuleWithLeftRecursive(g, lr)
}

func replaceRuleWithLeftRecursive(g *grammar.Grammar, lr *grammar.LeftRecursiveRule) {
	g.ReplaceRuleAt(lr.Index, &lr.Rule)
	g.SetLeftRecursive(lr.Name, lr)
}
