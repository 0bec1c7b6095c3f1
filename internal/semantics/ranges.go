package semantics

import (
	"unicode"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// checkRangeNotImplied is pass 11: a character range whose bounds mix case,
// such as 'A'..'g', almost never means what it looks like it means (it spans
// the punctuation/digit code points between 'Z' and 'a' too), so it is
// always worth a warning.
func checkRangeNotImplied(g *grammar.Grammar, mgr *issues.Manager) {
	for _, r := range g.Rules() {
		for i := 1; i < len(r.Alts); i++ {
			r.Alts[i].Walk(func(n *ast.Node) {
				if n.Kind != ast.KindCharRange {
					return
				}
				from, okFrom := n.Option("from")
				to, okTo := n.Option("to")
				if !okFrom || !okTo || len(from) == 0 || len(to) == 0 {
					return
				}
				lo, hi := []rune(from)[0], []rune(to)[0]
				if mixedCase(lo, hi) {
					mgr.Add(issues.New(issues.CodeRangeProbablyNotImplied, issues.Warning,
						issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
						nil, "character range '%c'..'%c' spans both upper and lower case and probably doesn't mean what it looks like", lo, hi))
				}
			})
		}
	}
}

func mixedCase(lo, hi rune) bool {
	return (unicode.IsUpper(lo) && unicode.IsLower(hi)) || (unicode.IsLower(lo) && unicode.IsUpper(hi))
}
