package atn

import "fmt"

// TransitionKind enumerates the transition shapes named in spec.md §4.3.
type TransitionKind int

const (
	TransEpsilon TransitionKind = iota
	TransAtom
	TransRange
	TransSet
	TransRule
	TransPredicate
	TransAction
	TransWildcard
)

func (k TransitionKind) String() string {
	names := [...]string{
		"Epsilon", "Atom", "Range", "Set", "Rule", "Predicate", "Action", "Wildcard",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
	return names[k]
}

// Transition is a single edge out of a State. Which fields are meaningful
// depends on Kind:
//
//   - TransAtom: Label holds the single token type (parser) or code point
//     (lexer) matched.
//   - TransRange: Lo/Hi hold the inclusive code-point bounds.
//   - TransSet: Set holds the full interval set matched.
//   - TransRule: Target is the callee's rule-start state, RuleIndex its
//     rule index, FollowState the state to resume at in the caller after
//     the callee returns.
//   - TransPredicate/TransAction: Index is the node's index in the owning
//     grammar's sempreds/lexerActions map.
//   - TransWildcard: Set holds the full token set (parser) or full
//     character range (lexer) it stands in for.
type Transition struct {
	Kind TransitionKind

	Target StateID

	Label int // TransAtom
	Lo    int // TransRange
	Hi    int // TransRange

	Set *IntervalSet // TransSet, TransWildcard

	FollowState StateID // TransRule
	RuleIndex   int     // TransRule

	Index int // TransPredicate, TransAction
}

func (t *Transition) String() string {
	switch t.Kind {
	case TransEpsilon:
		return fmt.Sprintf("=(ε)=> s%d", t.Target)
	case TransAtom:
		return fmt.Sprintf("=(%d)=> s%d", t.Label, t.Target)
	case TransRange:
		return fmt.Sprintf("=([%d..%d])=> s%d", t.Lo, t.Hi, t.Target)
	case TransSet:
		return fmt.Sprintf("=(%s)=> s%d", t.Set, t.Target)
	case TransRule:
		return fmt.Sprintf("=(rule %d)=> s%d (follow s%d)", t.RuleIndex, t.Target, t.FollowState)
	case TransPredicate:
		return fmt.Sprintf("=(pred %d)=> s%d", t.Index, t.Target)
	case TransAction:
		return fmt.Sprintf("=(action %d)=> s%d", t.Index, t.Target)
	case TransWildcard:
		return fmt.Sprintf("=(.)=> s%d", t.Target)
	default:
		return fmt.Sprintf("=(?)=> s%d", t.Target)
	}
}
