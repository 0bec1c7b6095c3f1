package transform

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func buildCombinedGrammar() *grammar.Grammar {
	g := grammar.New("Calc", grammar.Combined, "Calc.g4")

	ifRule := grammar.NewRule("IF")
	ifRule.AddAlt(wrapAlt(termRef("'if'")))
	g.AddRule(ifRule)

	idRule := grammar.NewRule("ID")
	idRule.AddAlt(wrapAlt(termRef("LETTER")))
	g.AddRule(idRule)

	stmt := grammar.NewRule("stmt")
	stmt.AddAlt(wrapAlt(termRef("'if'"), ruleRef("expr")))
	stmt.AddAlt(wrapAlt(termRef("'else'"), ruleRef("expr")))
	g.AddRule(stmt)

	expr := grammar.NewRule("expr")
	expr.AddAlt(wrapAlt(termRef("ID")))
	g.AddRule(expr)

	return g
}

func Test_ExtractImplicitLexer_MovesUppercaseRules(t *testing.T) {
	assert := assert.New(t)

	g := buildCombinedGrammar()
	mgr := issues.NewManager()

	lex := ExtractImplicitLexer(g, mgr)

	if assert.NotNil(lex) {
		assert.True(lex.HasRule("IF"))
		assert.True(lex.HasRule("ID"))
	}
	assert.False(g.HasRule("IF"))
	assert.False(g.HasRule("ID"))
	assert.True(g.HasRule("stmt"))
	assert.True(g.HasRule("expr"))
}

func Test_ExtractImplicitLexer_SynthesizesUnaliasedLiteral(t *testing.T) {
	assert := assert.New(t)

	g := buildCombinedGrammar()
	mgr := issues.NewManager()

	lex := ExtractImplicitLexer(g, mgr)

	if assert.NotNil(lex) {
		found := false
		for _, r := range lex.Rules() {
			if lit, ok := singleLiteralBody(r); ok && lit == "'else'" {
				found = true
			}
		}
		assert.True(found, "expected a synthesized rule aliasing 'else'")

		for _, r := range lex.Rules() {
			if lit, ok := singleLiteralBody(r); ok {
				assert.NotEqual("'if'", lit, "'if' is already aliased by IF and should not be re-synthesized")
			}
		}
	}
}

func Test_ExtractImplicitLexer_NonCombinedReturnsNil(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("P", grammar.Parser, "P.g4")
	mgr := issues.NewManager()

	assert.Nil(ExtractImplicitLexer(g, mgr))
}

func Test_ExtractImplicitLexer_EmptyResultReturnsNil(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("P", grammar.Combined, "P.g4")
	r := grammar.NewRule("stmt")
	r.AddAlt(wrapAlt(ruleRef("expr")))
	g.AddRule(r)
	mgr := issues.NewManager()

	assert.Nil(ExtractImplicitLexer(g, mgr))
}

func Test_ExtractImplicitLexer_MovesLexerScopedActionsCopiesRest(t *testing.T) {
	assert := assert.New(t)

	g := buildCombinedGrammar()
	g.NamedActions["lexer::members"] = "int x;"
	g.NamedActions["header"] = "package foo;"
	mgr := issues.NewManager()

	lex := ExtractImplicitLexer(g, mgr)

	if assert.NotNil(lex) {
		assert.Equal("int x;", lex.NamedActions["lexer::members"])
		assert.Equal("package foo;", lex.NamedActions["header"])
	}
	_, stillPresent := g.NamedActions["lexer::members"]
	assert.False(stillPresent)
	assert.Equal("package foo;", g.NamedActions["header"])
}
