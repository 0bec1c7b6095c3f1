package atn

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func Test_MergeAdjacentSets_CollapsesAtomAlternationToOneSet(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	r := grammar.NewRule("DIGIT")
	r.AddAlt(wrapAlt(charLitForTest("'0'")))
	r.AddAlt(wrapAlt(charLitForTest("'1'")))
	g.AddRule(r)

	mgr := issues.NewManager()
	a := NewFactory(g, mgr).BuildGrammar()

	before := len(a.DecisionToState)
	assert.Equal(1, before)

	MergeAdjacentSets(a)

	decisionID := a.DecisionToState[0]
	s := a.State(decisionID)
	assert.Equal(KindBasic, s.Kind)
	if assert.Len(s.Transitions, 1) {
		assert.Equal(TransSet, s.Transitions[0].Kind)
	}
}

func Test_CompactStates_DropsUnreachableStates(t *testing.T) {
	assert := assert.New(t)

	a := New("T")
	start := a.NewState(KindRuleStart, 0)
	stop := a.NewState(KindRuleStop, 0)
	orphan := a.NewState(KindBasic, 0)
	a.AddEpsilon(start, stop)
	a.RuleToStartState["r"] = start
	a.RuleToStopState["r"] = stop

	_ = orphan
	assert.Len(a.States(), 3)

	CompactStates(a)

	assert.Len(a.States(), 2)
}
