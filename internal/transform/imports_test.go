package transform

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func Test_MergeImports_ConcatenatesTokensBlocks(t *testing.T) {
	assert := assert.New(t)

	root := grammar.New("Root", grammar.Combined, "Root.g4")
	root.Root = ast.New(ast.KindGrammarRoot, ast.Token{})

	imp := grammar.New("Base", grammar.Combined, "Base.g4")
	imp.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	impTokens := ast.New(ast.KindTokensBlock, ast.Token{})
	impTokens.SetOption("FOO", "")
	imp.Root.AddChild(impTokens)

	mgr := issues.NewManager()
	MergeImports(root, []*grammar.Grammar{imp}, mgr)

	rt := tokensBlock(root)
	assert.NotNil(rt)
	_, ok := rt.Option("FOO")
	assert.True(ok)
}

func Test_MergeImports_RootTokensWinOnConflict(t *testing.T) {
	assert := assert.New(t)

	root := grammar.New("Root", grammar.Combined, "Root.g4")
	root.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	rootTokens := ast.New(ast.KindTokensBlock, ast.Token{})
	rootTokens.SetOption("FOO", "root-value")
	root.Root.AddChild(rootTokens)

	imp := grammar.New("Base", grammar.Combined, "Base.g4")
	imp.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	impTokens := ast.New(ast.KindTokensBlock, ast.Token{})
	impTokens.SetOption("FOO", "imp-value")
	imp.Root.AddChild(impTokens)

	mgr := issues.NewManager()
	MergeImports(root, []*grammar.Grammar{imp}, mgr)

	rt := tokensBlock(root)
	v, ok := rt.Option("FOO")
	assert.True(ok)
	assert.Equal("root-value", v)
}

func Test_MergeImports_WarnsOnConflictingDelegateOptions(t *testing.T) {
	assert := assert.New(t)

	root := grammar.New("Root", grammar.Combined, "Root.g4")
	root.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	rootOpts := ast.New(ast.KindOptionsBlock, ast.Token{})
	rootOpts.SetOption("language", "Go")
	root.Root.AddChild(rootOpts)

	imp := grammar.New("Base", grammar.Combined, "Base.g4")
	imp.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	impOpts := ast.New(ast.KindOptionsBlock, ast.Token{})
	impOpts.SetOption("language", "Java")
	imp.Root.AddChild(impOpts)

	mgr := issues.NewManager()
	MergeImports(root, []*grammar.Grammar{imp}, mgr)

	all := mgr.All()
	assert.Len(all, 1)
	assert.Equal(issues.CodeOptionsInDelegate, all[0].Code)
}

func Test_MergeImports_NoWarningWhenDelegateOptionsAgree(t *testing.T) {
	assert := assert.New(t)

	root := grammar.New("Root", grammar.Combined, "Root.g4")
	root.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	rootOpts := ast.New(ast.KindOptionsBlock, ast.Token{})
	rootOpts.SetOption("language", "Go")
	root.Root.AddChild(rootOpts)

	imp := grammar.New("Base", grammar.Combined, "Base.g4")
	imp.Root = ast.New(ast.KindGrammarRoot, ast.Token{})
	impOpts := ast.New(ast.KindOptionsBlock, ast.Token{})
	impOpts.SetOption("language", "Go")
	imp.Root.AddChild(impOpts)

	mgr := issues.NewManager()
	MergeImports(root, []*grammar.Grammar{imp}, mgr)

	assert.Empty(mgr.All())
}
