package main

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/dekarrin/grammarc/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

func Test_LoadGrammar_ParserOnlyHeader(t *testing.T) {
	assert := assert.New(t)

	g, err := loadGrammar("parser grammar Expr;\nexpr : ID | NUM ;\n", "Expr.g4")
	assert.NoError(err)
	assert.Equal(grammar.Parser, g.Type)
	assert.Equal("Expr", g.Name)
	assert.NotNil(g.Root)
	assert.Len(g.Root.Children, 1)

	rule := g.Root.Children[0]
	assert.Equal(ast.KindRule, rule.Kind)
	assert.Equal("expr", rule.Text)
	assert.Len(rule.Children, 2)
	assert.Equal(ast.KindAlt, rule.Children[0].Kind)
}

func Test_LoadGrammar_CombinedGrammarDefaultsWhenHeaderOmitsKind(t *testing.T) {
	assert := assert.New(t)

	g, err := loadGrammar("grammar Stmt;\nstmt : IF expr ;\n", "Stmt.g4")
	assert.NoError(err)
	assert.Equal(grammar.Combined, g.Type)
}

func Test_LoadGrammar_LiteralAndRuleRefElements(t *testing.T) {
	assert := assert.New(t)

	g, err := loadGrammar("grammar T;\nstmt : 'if' cond ;\n", "T.g4")
	assert.NoError(err)

	rule := g.Root.Children[0]
	alt := rule.Children[0]
	assert.Equal(ast.KindTerminalRef, alt.Children[0].Kind)
	assert.Equal("'if'", alt.Children[0].Text)
	assert.Equal(ast.KindRuleRef, alt.Children[1].Kind)
	assert.Equal("cond", alt.Children[1].Text)
}

func Test_LoadGrammar_SuffixOperators(t *testing.T) {
	assert := assert.New(t)

	g, err := loadGrammar("grammar T;\nstmt : ID+ NUM* ';'? ;\n", "T.g4")
	assert.NoError(err)

	alt := g.Root.Children[0].Children[0]
	assert.Equal(ast.KindPlus, alt.Children[0].Kind)
	assert.Equal(ast.KindStar, alt.Children[1].Kind)
	assert.Equal(ast.KindOptional, alt.Children[2].Kind)
}

func Test_LoadGrammar_FragmentRule(t *testing.T) {
	assert := assert.New(t)

	g, err := loadGrammar("lexer grammar L;\nfragment DIGIT : '0' ;\n", "L.g4")
	assert.NoError(err)
	assert.Equal(grammar.Lexer, g.Type)

	rule := g.Root.Children[0]
	v, ok := rule.Option("fragment")
	assert.True(ok)
	assert.Equal("true", v)
}

func Test_LoadGrammar_MissingSemicolonIsAnError(t *testing.T) {
	assert := assert.New(t)

	_, err := loadGrammar("grammar T;\nstmt : ID\n", "T.g4")
	assert.Error(err)
}

func Test_LoadGrammar_FeedsPipelineCompile(t *testing.T) {
	assert := assert.New(t)

	src := "grammar Calc;\nstmt : IF ;\nIF : 'if' ;\n"
	g, err := loadGrammar(src, "Calc.g4")
	assert.NoError(err)

	mgr := issues.NewManager()
	result := pipeline.Compile(g, nil, mgr)

	assert.NotNil(result.ATN)
	assert.NotNil(result.ImplicitLexer)
	assert.True(result.ImplicitLexer.HasRule("IF"))
}
