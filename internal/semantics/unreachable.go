package semantics

import (
	"strings"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// checkUnreachableTokens is pass 9, lexer grammars only. For each mode, in
// rule declaration order (which is lexer-rule match priority), it collects
// the simple concatenated-literal string each alternative matches — only
// alternatives made up entirely of literal terminal references, ignoring
// any alt containing a rule ref, set, char range, or quantifier, since only
// those are unambiguous about exactly what string they match. The first
// rule/alt to match a given literal wins; any later rule (or later alt of
// the same rule) matching that same literal can never fire and is reported
// as CodeTokenUnreachable, pointing at the earlier definition that shadows
// it.
func checkUnreachableTokens(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Type != grammar.Lexer {
		return
	}

	firstOwner := map[string]map[string]string{} // mode -> literal -> owning rule name

	for _, r := range g.Rules() {
		if r.IsFragment {
			continue
		}
		mode := "DEFAULT_MODE"
		if r.AST != nil {
			if m, ok := r.AST.Option("mode"); ok {
				mode = m
			}
		}
		if firstOwner[mode] == nil {
			firstOwner[mode] = map[string]string{}
		}
		owners := firstOwner[mode]

		for i := 1; i < len(r.Alts); i++ {
			lit, ok := simpleLiteralConcat(r.Alts[i])
			if !ok {
				continue
			}
			if owner, taken := owners[lit]; taken {
				mgr.Add(issues.New(issues.CodeTokenUnreachable, issues.Warning,
					issues.Location{File: g.FileName}, nil,
					"rule %q can never match: %q already matches the same input, defined earlier in rule %q",
					r.Name, lit, owner))
				continue
			}
			owners[lit] = r.Name
		}
	}
}

// simpleLiteralConcat reports the literal string alt matches if every
// element of alt is a quoted-literal terminal reference or character
// literal, concatenating their unquoted bodies; ok is false if alt contains
// anything else (rule refs, ranges, sets, optional/star/plus, wildcard).
func simpleLiteralConcat(alt *ast.Node) (string, bool) {
	var sb strings.Builder
	for _, c := range alt.Children {
		switch c.Kind {
		case ast.KindTerminalRef, ast.KindCharLiteral:
			if !isQuotedLiteral(c.Text) {
				return "", false
			}
			sb.WriteString(c.Text[1 : len(c.Text)-1])
		default:
			return "", false
		}
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}
