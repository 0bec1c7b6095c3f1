package transform

import (
	"strings"
	"unicode"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// lexerOptionBlacklist are global options that do not propagate down to a
// synthesized implicit lexer, per spec.md §4.1.2.
var lexerOptionBlacklist = map[string]bool{
	"superClass":     true,
	"TokenLabelType": true,
	"tokenVocab":     true,
}

// isLexerRuleName reports whether name would be parsed as a lexer rule (first
// character uppercase), the convention spec.md §4.1.2 and §4.1.3's combined-
// grammar description both use to distinguish lexer rules from parser rules
// sharing one rule table.
func isLexerRuleName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// ExtractImplicitLexer implements spec.md §4.1.2. For a Combined grammar it
// builds a new Lexer Grammar named "<Name>Lexer" out of root's uppercase
// rules, a copy of root's named actions (lexer-scoped ones are moved rather
// than copied), and a synthesized T__<n> rule for every
// string literal referenced from a parser rule that no existing lexer rule
// already aliases. root is left holding only its parser rules. Returns nil
// (and leaves root untouched) if root is not Combined, or if the resulting
// lexer would have no rules at all.
//
// This is the AST-level generalization of the teacher's approach to keeping
// lexical and syntactic concerns in separate Grammar values
// (internal/tunascript/grammar.go splits token scanning from the parser
// Grammar); ANTLR itself performs this same rule-table split when a .g4 file
// declares `grammar` rather than `lexer grammar`/`parser grammar`.
func ExtractImplicitLexer(root *grammar.Grammar, mgr *issues.Manager) *grammar.Grammar {
	if root.Type != grammar.Combined {
		return nil
	}

	lex := grammar.New(root.Name+"Lexer", grammar.Lexer, root.FileName)
	propagateOptions(root, lex)

	var moved []*grammar.Rule
	for _, r := range root.Rules() {
		if isLexerRuleName(r.Name) {
			moved = append(moved, r)
		}
	}
	for _, r := range moved {
		root.RemoveRule(r.Name)
		r.Index = 0
		r.Owner = nil
		lex.AddRule(r)
	}

	synthesizeLiteralTokens(root, lex)

	if len(lex.Rules()) == 0 {
		return nil
	}

	for key, text := range root.NamedActions {
		lex.NamedActions[key] = text
		if isLexerScopedAction(key) {
			delete(root.NamedActions, key)
		}
	}

	root.ImplicitLexer = lex
	return lex
}

// isLexerScopedAction reports whether a "scope::name" NamedActions key is
// scoped to "lexer", the only scope spec.md §4.1.2 says is moved rather than
// merely copied.
func isLexerScopedAction(key string) bool {
	return strings.HasPrefix(key, "lexer::")
}

// synthesizeLiteralTokens adds a single-alt T__<n> rule to lex for every
// quoted string literal referenced from one of root's (now purely parser)
// rules, skipping literals that an existing lexer rule already aliases.
func synthesizeLiteralTokens(root, lex *grammar.Grammar) {
	aliased := map[string]bool{}
	for _, r := range lex.Rules() {
		if lit, ok := singleLiteralBody(r); ok {
			aliased[lit] = true
		}
	}

	for _, r := range root.Rules() {
		for i := 1; i < len(r.Alts); i++ {
			r.Alts[i].Walk(func(n *ast.Node) {
				if n.Kind != ast.KindTerminalRef {
					return
				}
				lit := n.Text
				if !isQuotedLiteral(lit) || aliased[lit] {
					return
				}
				aliased[lit] = true
				name := lex.NextSyntheticTokenName()
				synth := grammar.NewRule(name)
				leaf := ast.New(ast.KindTerminalRef, n.Token)
				leaf.Text = lit
				synth.AddAlt(wrapAlt(leaf))
				lex.AddRule(synth)
			})
		}
	}
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

func isQuotedLiteral(text string) bool {
	return len(text) >= 2 && text[0] == '\''
}

// propagateOptions copies root's grammar-level options onto lex, minus the
// blacklist spec.md §4.1.2 names (superClass, TokenLabelType, tokenVocab).
// root's options live on an optional KindOptionsBlock child of its Root node.
func propagateOptions(root, lex *grammar.Grammar) {
	if root.Root == nil {
		return
	}
	var opts *ast.Node
	for _, c := range root.Root.Children {
		if c.Kind == ast.KindOptionsBlock {
			opts = c
			break
		}
	}
	if opts == nil || len(opts.Options) == 0 {
		return
	}

	filtered := map[string]string{}
	for k, v := range opts.Options {
		if !lexerOptionBlacklist[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return
	}

	lexOpts := ast.New(ast.KindOptionsBlock, ast.Token{})
	for k, v := range filtered {
		lexOpts.SetOption(k, v)
	}
	if lex.Root == nil {
		lex.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	}
	lex.Root.AddChild(lexOpts)
}

func wrapAlt(elems ...*ast.Node) *ast.Node {
	a := ast.New(ast.KindAlt, ast.Token{})
	for _, e := range elems {
		a.AddChild(e)
	}
	return a
}
