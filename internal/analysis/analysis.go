// Package analysis implements the LL(1) lookahead analysis of spec.md §4.4:
// for every ATN decision state, compute LOOK(alt) for each outgoing
// alternative by epsilon-closure and transition-reachability bounded to one
// token of lookahead, then test whether the alternatives are pairwise
// disjoint. The result is recorded on the grammar via
// grammar.Grammar.SetDecisionLookahead so the (external) code generator can
// choose between an inline LL(1) test and the general adaptive-prediction
// call path, the same consumer relationship the teacher's LL(1) FIRST/FOLLOW
// tables (internal/ictiobus/grammar/grammar.go's Grammar.ALL_FIRST_SETS) have
// with its parse-table construction.
package analysis

import (
	"github.com/dekarrin/grammarc/internal/atn"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// Run computes and records LOOK(alt) for every decision in a, and marks
// decisions that fail the disjoint check as non-LL(1) on g.
func Run(g *grammar.Grammar, a *atn.ATN, mgr *issues.Manager) {
	if a == nil {
		return
	}
	for decisionIdx, stateID := range a.DecisionToState {
		decision := a.State(stateID)
		if decision == nil {
			continue
		}

		sets := make([]*grammar.LookaheadSet, len(decision.Transitions))
		for altIdx, t := range decision.Transitions {
			closure := newClosure(a)
			sets[altIdx] = closure.firstSet(t.Target)
			g.SetDecisionLookahead(decisionIdx, altIdx, sets[altIdx])
		}

		if !disjoint(sets) {
			g.MarkNonLL1(decisionIdx)
		}
	}
}

// disjoint implements spec.md §4.4's predicate: a decision is LL(1) when the
// pairwise intersection of its alt-sets is empty.
func disjoint(sets []*grammar.LookaheadSet) bool {
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if sets[i].Overlaps(sets[j]) {
				return false
			}
		}
	}
	return true
}

// closure carries the visited-state guard a single firstSet computation
// needs to survive recursive rule references, per spec.md §4.4's "cycle
// detection during closure prevents non-termination."
type closure struct {
	a       *atn.ATN
	visited map[atn.StateID]bool
}

func newClosure(a *atn.ATN) *closure {
	return &closure{a: a, visited: map[atn.StateID]bool{}}
}

// firstSet returns the set of token types / code points reachable as the
// first non-epsilon transition taken starting from start, following
// epsilon edges and, for rule-call transitions, descending into the
// callee's start state and (if the callee can match the empty string)
// continuing at the caller's follow state.
func (c *closure) firstSet(start atn.StateID) *grammar.LookaheadSet {
	look := grammar.NewLookaheadSet()
	c.visit(start, look)
	return look
}

func (c *closure) visit(id atn.StateID, look *grammar.LookaheadSet) {
	if c.visited[id] {
		return
	}
	c.visited[id] = true

	s := c.a.State(id)
	if s == nil {
		return
	}

	for _, t := range s.Transitions {
		switch t.Kind {
		case atn.TransEpsilon:
			c.visit(t.Target, look)
		case atn.TransAtom:
			look.Add(t.Label, t.Label)
		case atn.TransRange:
			look.Add(t.Lo, t.Hi)
		case atn.TransSet, atn.TransWildcard:
			if t.Set != nil {
				for _, iv := range t.Set.Intervals() {
					look.Add(iv.Lo, iv.Hi)
				}
			}
		case atn.TransRule:
			c.visit(t.Target, look)
			if c.nullable(t.Target, t.RuleIndex) {
				c.visit(t.FollowState, look)
			}
		case atn.TransPredicate, atn.TransAction:
			c.visit(t.Target, look)
		}
	}
}

// nullable reports whether the rule started at start can reach its stop
// state via epsilon transitions alone (i.e. it can match the empty
// string), used to decide whether a rule-call transition's follow state
// also contributes to the caller's LOOK set.
func (c *closure) nullable(start atn.StateID, ruleIndex int) bool {
	visited := map[atn.StateID]bool{}
	var stop atn.StateID = atn.NoState
	for name, id := range c.a.RuleToStartState {
		if id == start {
			stop = c.a.RuleToStopState[name]
			break
		}
	}
	if stop == atn.NoState {
		return false
	}

	var walk func(id atn.StateID) bool
	walk = func(id atn.StateID) bool {
		if id == stop {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		s := c.a.State(id)
		if s == nil {
			return false
		}
		for _, t := range s.Transitions {
			if t.Kind != atn.TransEpsilon {
				continue
			}
			if walk(t.Target) {
				return true
			}
		}
		return false
	}
	return walk(start)
}
