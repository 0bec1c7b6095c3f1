package transform

import (
	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// MergeImports implements spec.md §4.1.1: fold each already-loaded imported
// grammar into root, root always winning on conflict. imports must already
// be in the topologically-sorted, cycle-broken order the external loader
// produces (depth-first over tokenVocab dependencies); this pass does not
// itself resolve the import graph.
func MergeImports(root *grammar.Grammar, imports []*grammar.Grammar, mgr *issues.Manager) {
	for _, imp := range imports {
		mergeOne(root, imp, mgr)
		root.Imports = append(root.Imports, imp)
		imp.Parent = root
	}
}

func mergeOne(root, imp *grammar.Grammar, mgr *issues.Manager) {
	mergeTokens(root, imp)
	mergeChannels(root, imp)
	mergeRules(root, imp, mgr)
	mergeNamedActions(root, imp, mgr)
	checkOptionsInDelegate(root, imp, mgr)
}

// optionsBlock returns g's KindOptionsBlock child of Root, if any.
func optionsBlock(g *grammar.Grammar) *ast.Node {
	if g.Root == nil {
		return nil
	}
	for _, c := range g.Root.Children {
		if c.Kind == ast.KindOptionsBlock {
			return c
		}
	}
	return nil
}

// tokensBlock returns g's KindTokensBlock child of Root, if any.
func tokensBlock(g *grammar.Grammar) *ast.Node {
	if g.Root == nil {
		return nil
	}
	for _, c := range g.Root.Children {
		if c.Kind == ast.KindTokensBlock {
			return c
		}
	}
	return nil
}

// mergeTokens concatenates imp's tokens{} block entries into root's, per
// spec.md §4.1.1 ("tokens: concatenation into a single tokens block"). Names
// already declared on root are left alone; root always wins on conflict, the
// same rule mergeRules and mergeNamedActions follow.
func mergeTokens(root, imp *grammar.Grammar) {
	impTokens := tokensBlock(imp)
	if impTokens == nil || len(impTokens.Options) == 0 {
		return
	}

	rootTokens := tokensBlock(root)
	if rootTokens == nil {
		if root.Root == nil {
			root.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
		}
		rootTokens = ast.New(ast.KindTokensBlock, ast.Token{})
		root.Root.AddChild(rootTokens)
	}

	for name, val := range impTokens.Options {
		if _, ok := rootTokens.Option(name); ok {
			continue
		}
		rootTokens.SetOption(name, val)
	}
}

// mergeChannels adds to root's channel table every channel name in imp's
// table that root lacks. No channels{} block node is added to root's AST.
func mergeChannels(root, imp *grammar.Grammar) {
	for _, name := range imp.ChannelNames() {
		if _, ok := root.ChannelValue(name); !ok {
			root.DefineChannel(name)
		}
	}
}

// mergeRules adds a rule from imp only if root doesn't already declare a
// rule of the same name, per spec.md §4.1.1 ("add a rule... only if the
// root does not already declare the same name"). Modes are a property of
// lexer rules in this model (recorded on the rule's AST node's mode
// option), so "within a mode, rules already present in the root are
// skipped" falls out of the same per-name check; there's no empty-mode
// case to special-case here because a rule table has no notion of empty
// mode containers distinct from "no rules named for that mode."
func mergeRules(root, imp *grammar.Grammar, mgr *issues.Manager) {
	for _, r := range imp.Rules() {
		if root.HasRule(r.Name) {
			continue
		}
		cp := *r
		root.AddRule(&cp)
	}
}

// mergeNamedActions copies imp's named actions into root; when root already
// has an action of the same scoped name with a different body, imp's body is
// concatenated textually after root's. It reports nothing: each grammar's
// NamedActions holds one body per name, so the two bodies it combines always
// come from different grammars. Duplicate definitions inside root's own AST
// are reported by the semantic pipeline's checkActionRedefinition.
func mergeNamedActions(root, imp *grammar.Grammar, mgr *issues.Manager) {
	for key, text := range imp.NamedActions {
		existing, ok := root.NamedActions[key]
		if !ok {
			root.NamedActions[key] = text
			continue
		}
		if existing == text {
			continue
		}
		root.NamedActions[key] = existing + "\n" + text
	}
}

// CheckOptionsInDelegate warns when imp declares an option whose value
// differs from root's for the same key, per spec.md §4.1.1.
func CheckOptionsInDelegate(root, imp *grammar.Grammar, rootOpts, impOpts map[string]string, mgr *issues.Manager) {
	for key, impVal := range impOpts {
		if rootVal, ok := rootOpts[key]; ok && rootVal != impVal {
			mgr.Add(issues.New(issues.CodeOptionsInDelegate, issues.Warning,
				issues.Location{File: imp.FileName}, nil,
				"option %s redefined in imported grammar %s (%s) differs from root (%s)",
				key, imp.Name, impVal, rootVal))
		}
	}
}

// checkOptionsInDelegate extracts root's and imp's options{} blocks from
// their AST roots and runs CheckOptionsInDelegate over them; a grammar
// without an options{} block simply contributes an empty map.
func checkOptionsInDelegate(root, imp *grammar.Grammar, mgr *issues.Manager) {
	rootOpts := map[string]string{}
	if b := optionsBlock(root); b != nil {
		rootOpts = b.Options
	}
	impOpts := map[string]string{}
	if b := optionsBlock(imp); b != nil {
		impOpts = b.Options
	}
	CheckOptionsInDelegate(root, imp, rootOpts, impOpts, mgr)
}
