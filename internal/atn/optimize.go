package atn

import "github.com/emirpasic/gods/lists/arraylist"

// MergeAdjacentSets implements the set-merge optimization of spec.md §4.3:
// when a decision's alternatives are each a single-transition chain on an
// atom, range, or set reaching the same state (directly, or through one
// epsilon edge such as an alt's own end state feeding the block end), fold
// them into one set transition. This mirrors ReduceBlockSets
// (internal/transform/blockset.go) one level down the pipeline, operating
// on already-built ATN decisions instead of AST blocks. Only KindDecision
// states are examined; star/plus loop decisions are left as they are.
//
// The work list of decision states to examine is kept in a
// `arraylist.List`, the same append-and-drain container the teacher's LR(0)
// collection builder uses for its edge list (internal/ictiobus/../lr/tables.go).
func MergeAdjacentSets(a *ATN) {
	work := arraylist.New()
	for _, s := range a.States() {
		if s.Kind == KindDecision {
			work.Add(s.ID)
		}
	}

	work.Each(func(_ int, v interface{}) {
		mergeDecision(a, v.(StateID))
	})
}

func mergeDecision(a *ATN, decisionID StateID) {
	decision := a.State(decisionID)
	if decision == nil || len(decision.Transitions) < 2 {
		return
	}

	type candidate struct {
		transIdx int
		target   StateID
	}
	var mergeable []candidate
	commonTarget := NoState

	for i, outer := range decision.Transitions {
		if outer.Kind != TransEpsilon {
			return
		}
		alt := a.State(outer.Target)
		if alt == nil || len(alt.Transitions) != 1 {
			return
		}
		inner := alt.Transitions[0]
		switch inner.Kind {
		case TransAtom, TransRange, TransSet:
		default:
			return
		}
		target := inner.Target
		if ts := a.State(target); ts != nil && len(ts.Transitions) == 1 && ts.Transitions[0].Kind == TransEpsilon {
			target = ts.Transitions[0].Target
		}
		if commonTarget == NoState {
			commonTarget = target
		} else if target != commonTarget {
			return
		}
		mergeable = append(mergeable, candidate{transIdx: i, target: target})
	}

	if len(mergeable) != len(decision.Transitions) {
		return
	}

	merged := NewIntervalSet()
	for _, outer := range decision.Transitions {
		alt := a.State(outer.Target)
		inner := alt.Transitions[0]
		switch inner.Kind {
		case TransAtom:
			merged.Add(inner.Label, inner.Label)
		case TransRange:
			merged.Add(inner.Lo, inner.Hi)
		case TransSet:
			for _, iv := range inner.Set.Intervals() {
				merged.Add(iv.Lo, iv.Hi)
			}
		}
	}

	decision.Kind = KindBasic
	decision.DecisionIndex = -1
	decision.Transitions = []*Transition{{Kind: TransSet, Set: merged, Target: commonTarget}}
}

// CompactStates renumbers a's state array to remove holes left by removed
// states, returning the old-ID-to-new-ID mapping it applied. This
// implementation's states are never physically removed (MergeAdjacentSets
// only repurposes decision states in place, leaving their now-unused
// fan-out alt states orphaned but still present), so CompactStates performs
// reachability-based compaction: states unreachable from any rule's start
// state are the "holes" spec.md §4.3 means, and are dropped.
func CompactStates(a *ATN) map[StateID]StateID {
	reachable := map[StateID]bool{}
	var visit func(id StateID)
	visit = func(id StateID) {
		if reachable[id] {
			return
		}
		reachable[id] = true
		s := a.State(id)
		if s == nil {
			return
		}
		for _, t := range s.Transitions {
			visit(t.Target)
			if t.Kind == TransRule {
				visit(t.FollowState)
			}
		}
	}
	for _, start := range a.RuleToStartState {
		visit(start)
	}

	remap := map[StateID]StateID{}
	var kept []*State
	for _, s := range a.states {
		if !reachable[s.ID] {
			continue
		}
		newID := StateID(len(kept))
		remap[s.ID] = newID
		kept = append(kept, s)
	}

	for _, s := range kept {
		s.ID = remap[s.ID]
		for _, t := range s.Transitions {
			t.Target = remap[t.Target]
			if t.Kind == TransRule {
				t.FollowState = remap[t.FollowState]
			}
		}
	}
	a.states = kept

	for name, id := range a.RuleToStartState {
		a.RuleToStartState[name] = remap[id]
	}
	for name, id := range a.RuleToStopState {
		a.RuleToStopState[name] = remap[id]
	}
	for i, id := range a.DecisionToState {
		a.DecisionToState[i] = remap[id]
	}

	return remap
}
