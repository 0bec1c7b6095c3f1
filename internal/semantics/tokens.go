package semantics

import (
	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// assignTokenTypes is pass 6. For a Lexer grammar it defines a token name
// for every non-fragment rule that lacks a type(...)/more lexer command, and
// aliases every `X : 'literal' ;`-shaped rule's literal to X's type,
// detecting the same literal aliased by two different rules. For a Parser
// or Combined grammar it processes the tokens{} declarations, then defines
// every referenced-but-undeclared symbolic token with a
// CodeImplicitTokenDefinition warning; an unresolved string literal gets a
// synthetic T__<n> token in a combined grammar and a
// CodeImplicitStringDefinition error in a standalone parser grammar.
func assignTokenTypes(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Type == grammar.Lexer {
		assignLexerTokenTypes(g, mgr)
		return
	}
	assignParserTokenTypes(g, mgr)
}

func assignLexerTokenTypes(g *grammar.Grammar, mgr *issues.Manager) {
	literalOwner := map[string]string{}

	for _, r := range g.Rules() {
		if r.IsFragment {
			continue
		}
		if hasTypeOrMoreCommand(r) {
			continue
		}
		tokType := g.DefineTokenName(r.Name)

		if lit, ok := singleLiteralBody(r); ok {
			if owner, already := literalOwner[lit]; already && owner != r.Name {
				g.RemoveStringLiteralAlias(lit)
				mgr.Add(issues.New(issues.CodeTokenNameReassignment, issues.Warning,
					issues.Location{File: g.FileName}, nil,
					"literal %s is aliased by both %q and %q; alias removed", lit, owner, r.Name))
				continue
			}
			literalOwner[lit] = r.Name
			g.DefineStringLiteral(lit, tokType)
		}
	}
}

func hasTypeOrMoreCommand(r *grammar.Rule) bool {
	for i := 1; i < len(r.Alts); i++ {
		for _, c := range r.Alts[i].Children {
			if c.Kind == ast.KindLexerCommand && (c.Text == "type" || c.Text == "more") {
				return true
			}
		}
	}
	return false
}

// singleLiteralBody reports the literal text aliased by r, if r has exactly
// one alternative consisting of exactly one quoted-literal terminal
// reference (the shape `X : 'literal' ;`).
func singleLiteralBody(r *grammar.Rule) (string, bool) {
	if r.NumAlts() != 1 {
		return "", false
	}
	alt := r.Alts[1]
	if len(alt.Children) != 1 {
		return "", false
	}
	leaf := alt.Children[0]
	if leaf.Kind != ast.KindTerminalRef || !isQuotedLiteral(leaf.Text) {
		return "", false
	}
	return leaf.Text, true
}

func assignParserTokenTypes(g *grammar.Grammar, mgr *issues.Manager) {
	declared := map[string]bool{}
	if g.Root != nil {
		for _, c := range g.Root.Children {
			if c.Kind != ast.KindTokensBlock {
				continue
			}
			for name := range c.Options {
				if declared[name] {
					mgr.Add(issues.New(issues.CodeTokenNameReassignment, issues.Warning,
						issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
						nil, "token %q redeclared in tokens{} block", name))
					continue
				}
				declared[name] = true
				g.DefineTokenName(name)
			}
		}
	}

	for _, r := range g.Rules() {
		for i := 1; i < len(r.Alts); i++ {
			r.Alts[i].Walk(func(n *ast.Node) {
				if n.Kind != ast.KindTerminalRef {
					return
				}
				if isQuotedLiteral(n.Text) {
					if _, ok := g.StringLiteralType(n.Text); !ok {
						if g.Type == grammar.Combined {
							t := g.DefineTokenName(g.NextSyntheticTokenName())
							g.DefineStringLiteral(n.Text, t)
						} else {
							mgr.Add(issues.New(issues.CodeImplicitStringDefinition, issues.Error,
								issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
								nil, "string literal %s has no corresponding token in this parser grammar", n.Text))
						}
					}
					return
				}
				if _, ok := g.TokenType(n.Text); !ok {
					g.DefineTokenName(n.Text)
					mgr.Add(issues.New(issues.CodeImplicitTokenDefinition, issues.Warning,
						issues.Location{File: g.FileName, Line: n.Token.Line, Column: n.Token.Column},
						nil, "token %q referenced but never declared", n.Text))
				}
			})
		}
	}
}

// commonConstants are channel/mode names that collide with built-in meaning
// and so may never be (re)declared by the user as channels or modes, per
// spec.md §4.2 passes 7-8.
var commonConstants = map[string]bool{
	"HIDDEN": true, "SKIP": true, "MORE": true, "DEFAULT_TOKEN_CHANNEL": true,
	"DEFAULT_MODE": true, "EOF": true, "MAX_CHAR_VALUE": true, "MIN_CHAR_VALUE": true,
}

// assignChannels is pass 7: walk a channels{} block (if present), rejecting
// names that collide with a common constant, an existing token name, or an
// existing mode name, and otherwise assigning the next channel value.
func assignChannels(g *grammar.Grammar, mgr *issues.Manager) {
	if g.Root == nil {
		return
	}
	for _, c := range g.Root.Children {
		if c.Kind != ast.KindChannelsBlock {
			continue
		}
		for name := range c.Options {
			if commonConstants[name] {
				mgr.Add(issues.New(issues.CodeChannelConflictsWithCommonConstants, issues.Error,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "channel %q conflicts with a reserved constant name", name))
				continue
			}
			if _, ok := g.TokenType(name); ok {
				mgr.Add(issues.New(issues.CodeChannelConflictsWithCommonConstants, issues.Error,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "channel %q conflicts with a token of the same name", name))
				continue
			}
			if g.HasMode(name) {
				mgr.Add(issues.New(issues.CodeChannelConflictsWithCommonConstants, issues.Error,
					issues.Location{File: g.FileName, Line: c.Token.Line, Column: c.Token.Column},
					nil, "channel %q conflicts with a mode of the same name", name))
				continue
			}
			g.DefineChannel(name)
		}
	}
}
