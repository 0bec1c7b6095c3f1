package transform

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

// ruleRef builds a KindRuleRef leaf referencing name.
func ruleRef(name string) *ast.Node {
	n := ast.New(ast.KindRuleRef, ast.Token{Text: name})
	n.Text = name
	return n
}

func termRef(name string) *ast.Node {
	n := ast.New(ast.KindTerminalRef, ast.Token{Text: name})
	n.Text = name
	return n
}

func alt(elems ...*ast.Node) *ast.Node {
	a := ast.New(ast.KindAlt, ast.Token{})
	for _, e := range elems {
		a.AddChild(e)
	}
	return a
}

// buildExprGrammar constructs the classic left-recursive expression rule:
//
//	expr : expr '*' expr
//	     | expr '+' expr
//	     | INT
//	     ;
func buildExprGrammar() *grammar.Grammar {
	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("expr")

	mulAlt := alt(ruleRef("expr"), termRef("'*'"), ruleRef("expr"))
	addAlt := alt(ruleRef("expr"), termRef("'+'"), ruleRef("expr"))
	primAlt := alt(termRef("INT"))

	r.AddAlt(mulAlt)
	r.AddAlt(addAlt)
	r.AddAlt(primAlt)

	g.AddRule(r)
	return g
}

func Test_EliminateLeftRecursion_SplitsPrimaryAndOpAlts(t *testing.T) {
	assert := assert.New(t)

	g := buildExprGrammar()
	mgr := issues.NewManager()

	EliminateLeftRecursion(g, mgr)

	assert.Equal(0, mgr.ErrorCount())

	lr := g.LeftRecursive("expr")
	if assert.NotNil(lr) {
		assert.Len(lr.PrimaryAlts, 1)
		assert.Len(lr.OpAlts, 2)
		// first-declared op alt (mul) binds tighter -> higher precedence
		assert.Greater(lr.OpAlts[0].Precedence, lr.OpAlts[1].Precedence)
	}
}

func Test_EliminateLeftRecursion_LeavesNonRecursiveRulesAlone(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("stmt")
	r.AddAlt(alt(termRef("ID")))
	g.AddRule(r)

	mgr := issues.NewManager()
	EliminateLeftRecursion(g, mgr)

	assert.Nil(g.LeftRecursive("stmt"))
	assert.Equal(0, mgr.ErrorCount())
}

func Test_EliminateLeftRecursion_ReportsIndirectCycle(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	a := grammar.NewRule("a")
	a.AddAlt(alt(ruleRef("b")))
	b := grammar.NewRule("b")
	b.AddAlt(alt(ruleRef("a")))
	g.AddRule(a)
	g.AddRule(b)

	mgr := issues.NewManager()
	EliminateLeftRecursion(g, mgr)

	found := false
	for _, iss := range mgr.All() {
		if iss.Code == issues.CodeLeftRecursionCycles {
			found = true
		}
	}
	assert.True(found)
}
