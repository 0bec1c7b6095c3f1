package pipeline

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func termRef(name string) *ast.Node {
	n := ast.New(ast.KindTerminalRef, ast.Token{Text: name})
	n.Text = name
	return n
}

func ruleNode(name string, alts ...*ast.Node) *ast.Node {
	n := ast.New(ast.KindRule, ast.Token{Text: name})
	n.Text = name
	for _, a := range alts {
		n.AddChild(a)
	}
	return n
}

func altNode(elems ...*ast.Node) *ast.Node {
	a := ast.New(ast.KindAlt, ast.Token{})
	for _, e := range elems {
		a.AddChild(e)
	}
	return a
}

func Test_Compile_ParserOnlyGrammarBuildsATNAndAnalysis(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	root := ast.New(ast.KindGrammarRoot, ast.Token{})
	root.AddChild(ruleNode("expr", altNode(termRef("ID")), altNode(termRef("NUM"))))
	g.Root = root
	g.DefineTokenName("ID")
	g.DefineTokenName("NUM")

	mgr := issues.NewManager()
	result := Compile(g, nil, mgr)

	assert.NotNil(result.ATN)
	assert.Nil(result.ImplicitLexer)
	assert.True(g.HasRule("expr"))
}

func Test_Compile_CombinedGrammarSplitsImplicitLexer(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Combined, "T.g4")
	root := ast.New(ast.KindGrammarRoot, ast.Token{})
	root.AddChild(ruleNode("stmt", altNode(termRef("'if'"))))
	root.AddChild(ruleNode("IF", altNode(termRef("'if'"))))
	g.Root = root

	mgr := issues.NewManager()
	result := Compile(g, nil, mgr)

	assert.NotNil(result.ImplicitLexer)
	assert.True(result.ImplicitLexer.HasRule("IF"))
	assert.False(g.HasRule("IF"))
	assert.NotNil(result.ImplicitLexerATN)
}

func Test_Compile_AbortsAfterSemanticErrors(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	root := ast.New(ast.KindGrammarRoot, ast.Token{})
	root.AddChild(ruleNode("grammar", altNode(termRef("ID"))))
	g.Root = root
	g.DefineTokenName("ID")

	mgr := issues.NewManager()
	result := Compile(g, nil, mgr)

	assert.Nil(result.ATN)
}
