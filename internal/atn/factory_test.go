package atn

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

func wrapAlt(elems ...*ast.Node) *ast.Node {
	a := ast.New(ast.KindAlt, ast.Token{})
	for _, e := range elems {
		a.AddChild(e)
	}
	return a
}

func Test_BuildGrammar_SimpleRuleHasStartAndStopLinkedByEpsilonChain(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	g.DefineTokenName("ID")
	r := grammar.NewRule("expr")
	r.AddAlt(wrapAlt(termRef("ID")))
	g.AddRule(r)

	mgr := issues.NewManager()
	a := NewFactory(g, mgr).BuildGrammar()

	start, ok := a.RuleToStartState["expr"]
	assert.True(ok)
	stop, ok := a.RuleToStopState["expr"]
	assert.True(ok)

	startState := a.State(start)
	assert.Equal(KindRuleStart, startState.Kind)
	stopState := a.State(stop)
	assert.Equal(KindRuleStop, stopState.Kind)
}

func Test_BuildGrammar_AlternationCreatesDecision(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	g.DefineTokenName("A")
	g.DefineTokenName("B")
	r := grammar.NewRule("choice")
	r.AddAlt(wrapAlt(termRef("A")))
	r.AddAlt(wrapAlt(termRef("B")))
	g.AddRule(r)

	mgr := issues.NewManager()
	a := NewFactory(g, mgr).BuildGrammar()

	assert.Len(a.DecisionToState, 1)
	decisionState := a.State(a.DecisionToState[0])
	assert.Equal(KindDecision, decisionState.Kind)
	assert.Len(decisionState.Transitions, 2)
}

func Test_BuildGrammar_RuleRefProducesRuleTransitionWithFollowState(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	callee := grammar.NewRule("callee")
	g.DefineTokenName("X")
	callee.AddAlt(wrapAlt(termRef("X")))
	g.AddRule(callee)

	caller := grammar.NewRule("caller")
	n := ast.New(ast.KindRuleRef, ast.Token{})
	n.Text = "callee"
	caller.AddAlt(wrapAlt(n))
	g.AddRule(caller)

	mgr := issues.NewManager()
	a := NewFactory(g, mgr).BuildGrammar()

	callerStart := a.RuleToStartState["caller"]
	startState := a.State(callerStart)

	// follow the epsilon chain to find the rule transition
	var found *Transition
	visited := map[StateID]bool{}
	var walk func(id StateID)
	walk = func(id StateID) {
		if visited[id] {
			return
		}
		visited[id] = true
		s := a.State(id)
		for _, tr := range s.Transitions {
			if tr.Kind == TransRule {
				found = tr
			}
			walk(tr.Target)
		}
	}
	walk(startState.ID)

	if assert.NotNil(found) {
		assert.Equal(a.RuleToStartState["callee"], found.Target)
		assert.NotEqual(NoState, found.FollowState)
	}
}

func Test_BuildGrammar_StarLoopCreatesDecisionAndLoopback(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	star := ast.New(ast.KindStar, ast.Token{})
	star.AddChild(charLitForTest("'a'"))

	r := grammar.NewRule("AS")
	r.AddAlt(wrapAlt(star))
	g.AddRule(r)

	mgr := issues.NewManager()
	a := NewFactory(g, mgr).BuildGrammar()

	foundEntry := false
	foundLoopback := false
	for _, s := range a.States() {
		if s.Kind == KindStarLoopEntry {
			foundEntry = true
		}
		if s.Kind == KindStarLoopback {
			foundLoopback = true
		}
	}
	assert.True(foundEntry)
	assert.True(foundLoopback)
}

func charLitForTest(text string) *ast.Node {
	n := ast.New(ast.KindCharLiteral, ast.Token{})
	n.Text = text
	return n
}

func Test_IntervalSet_AddReportsCollision(t *testing.T) {
	assert := assert.New(t)

	s := NewIntervalSet()
	assert.False(s.Add(1, 10))
	assert.True(s.Add(5, 15))
}
