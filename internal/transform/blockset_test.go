package transform

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func charRange(from, to string) *ast.Node {
	n := ast.New(ast.KindCharRange, ast.Token{})
	n.SetOption("from", from)
	n.SetOption("to", to)
	n.Text = "'" + from + "'..'" + to + "'"
	return n
}

func charLit(text string) *ast.Node {
	n := ast.New(ast.KindCharLiteral, ast.Token{})
	n.Text = text
	return n
}

func block(alts ...*ast.Node) *ast.Node {
	b := ast.New(ast.KindBlock, ast.Token{})
	for _, a := range alts {
		b.AddChild(a)
	}
	return b
}

func Test_ReduceBlockSets_CollapsesSingleTerminalBlock(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	r := grammar.NewRule("DIGIT")
	blk := block(wrapAlt(charLit("'0'")), wrapAlt(charLit("'1'")), wrapAlt(charLit("'2'")))
	top := wrapAlt(blk)
	r.AddAlt(top)
	g.AddRule(r)

	mgr := issues.NewManager()
	ReduceBlockSets(g, mgr)

	assert.Equal(ast.KindSet, top.Children[0].Kind)
	assert.Len(top.Children[0].Children, 3)
}

func Test_ReduceBlockSets_LeavesMixedBlockAlone(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("stmt")
	blk := block(wrapAlt(ruleRef("expr")), wrapAlt(termRef("ID")))
	top := wrapAlt(blk)
	r.AddAlt(top)
	g.AddRule(r)

	mgr := issues.NewManager()
	ReduceBlockSets(g, mgr)

	assert.Equal(ast.KindBlock, top.Children[0].Kind)
}

func Test_ReduceBlockSets_ReportsOverlappingRanges(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	r := grammar.NewRule("LETTER")
	blk := block(wrapAlt(charRange("a", "m")), wrapAlt(charRange("g", "z")))
	top := wrapAlt(blk)
	r.AddAlt(top)
	g.AddRule(r)

	mgr := issues.NewManager()
	ReduceBlockSets(g, mgr)

	assert.Equal(ast.KindSet, top.Children[0].Kind)

	found := false
	for _, iss := range mgr.All() {
		if iss.Code == issues.CodeCharactersCollisionInSet {
			found = true
		}
	}
	assert.True(found)
}
