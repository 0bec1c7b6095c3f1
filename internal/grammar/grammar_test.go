package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_New_SeedsReservedTokenTypes(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")

	eofType, ok := g.TokenType("EOF")
	assert.True(ok)
	assert.Equal(TokenEOF, eofType)

	assert.Equal(MinUserTokenType, g.NextTokenType())
}

func Test_Grammar_AddRule_AssignsIndexInOrder(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")
	assert.NoError(g.AddRule(NewRule("a")))
	assert.NoError(g.AddRule(NewRule("b")))
	assert.NoError(g.AddRule(NewRule("c")))

	assert.Equal(0, g.Rule("a").Index)
	assert.Equal(1, g.Rule("b").Index)
	assert.Equal(2, g.Rule("c").Index)
}

func Test_Grammar_AddRule_RejectsDuplicateName(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")
	assert.NoError(g.AddRule(NewRule("a")))
	assert.Error(g.AddRule(NewRule("a")))
}

func Test_Grammar_RemoveRule_RenumbersLaterRules(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")
	g.AddRule(NewRule("a"))
	g.AddRule(NewRule("b"))
	g.AddRule(NewRule("c"))

	g.RemoveRule("b")

	assert.False(g.HasRule("b"))
	assert.Equal(0, g.Rule("a").Index)
	assert.Equal(1, g.Rule("c").Index)
	assert.Len(g.Rules(), 2)
}

func Test_Grammar_InsertRuleAfter(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")
	g.AddRule(NewRule("a"))
	g.AddRule(NewRule("c"))

	g.InsertRuleAfter(0, NewRule("b"))

	names := g.NonTerminals()
	assert.Equal([]string{"a", "b", "c"}, names)
	assert.Equal(1, g.Rule("b").Index)
	assert.Equal(2, g.Rule("c").Index)
}

func Test_Grammar_GenerateUniqueName(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Parser, "T.g4")
	g.AddRule(NewRule("expr"))

	first := g.GenerateUniqueName("expr")
	assert.Equal("expr'", first)

	g.AddRule(NewRule(first))
	second := g.GenerateUniqueName("expr")
	assert.Equal("expr2", second)
}

func Test_Grammar_DefineTokenName_IsIdempotent(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Lexer, "T.g4")
	t1 := g.DefineTokenName("ID")
	t2 := g.DefineTokenName("ID")
	assert.Equal(t1, t2)
	assert.Equal("ID", g.TypeToTokenList()[t1])
}

func Test_Grammar_DefineStringLiteral_AliasesExistingType(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Lexer, "T.g4")
	idType := g.DefineTokenName("IF")
	litType := g.DefineStringLiteral("'if'", idType)

	assert.Equal(idType, litType)
	assert.Equal("'if'", g.TypeToStringLiteralList()[litType])
}

func Test_Grammar_DefineChannel_StartsAfterPredefined(t *testing.T) {
	assert := assert.New(t)

	g := New("T", Lexer, "T.g4")
	v := g.DefineChannel("COMMENTS")
	assert.Equal(ChannelHidden+1, v)
}
