package atn

// ATN is the complete state/transition graph for one grammar.Grammar,
// parallel to the teacher's automaton.NFAState graph but holding every
// rule's states in one flat array the way ANTLR's own ATN does, rather than
// one automaton per lexical token.
type ATN struct {
	GrammarName string

	states []*State

	RuleToStartState map[string]StateID
	RuleToStopState  map[string]StateID

	DecisionToState []StateID
}

// New returns an empty ATN for the grammar named name.
func New(name string) *ATN {
	return &ATN{
		GrammarName:      name,
		RuleToStartState: map[string]StateID{},
		RuleToStopState:  map[string]StateID{},
	}
}

// NewState appends a fresh state of the given kind and (for rule-scoped
// states) rule index, returning its ID.
func (a *ATN) NewState(kind StateKind, ruleIndex int) StateID {
	id := StateID(len(a.states))
	a.states = append(a.states, &State{ID: id, Kind: kind, RuleIndex: ruleIndex, DecisionIndex: -1})
	return id
}

// State returns the state with the given ID, or nil if out of range.
func (a *ATN) State(id StateID) *State {
	if int(id) < 0 || int(id) >= len(a.states) {
		return nil
	}
	return a.states[id]
}

// States returns every state in ID order. Callers must not mutate the
// returned slice.
func (a *ATN) States() []*State {
	return a.states
}

// AddTransition appends t as an outgoing edge of the state named from.
func (a *ATN) AddTransition(from StateID, t *Transition) {
	s := a.State(from)
	if s == nil {
		return
	}
	s.Transitions = append(s.Transitions, t)
}

// AddEpsilon is shorthand for the common case of an unlabeled transition.
func (a *ATN) AddEpsilon(from, to StateID) {
	a.AddTransition(from, &Transition{Kind: TransEpsilon, Target: to})
}

// NextDecision allocates the next decision index and registers state as its
// owner in DecisionToState, setting state.DecisionIndex.
func (a *ATN) NextDecision(state StateID) int {
	idx := len(a.DecisionToState)
	a.DecisionToState = append(a.DecisionToState, state)
	if s := a.State(state); s != nil {
		s.DecisionIndex = idx
	}
	return idx
}
