// Package serialize implements the external-interface contracts of spec.md
// §6: the serialized-ATN integer encoding consumed by the (external) code
// generator, the `.tokens` vocab file, and the interpreter-dump plaintext
// file. Unlike every upstream pipeline stage, this package's output format
// is a fixed wire contract rather than a design choice, so the encoding
// itself follows spec.md §6 literally instead of any teacher idiom; the
// plaintext writers reuse the teacher's own conventions
// (internal/util/sb.go's UndoableStringBuilder, the line-oriented `String()`
// style internal/tunascript/grammar.go uses for its own table dumps).
package serialize

import (
	"fmt"

	"github.com/dekarrin/grammarc/internal/atn"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// MaxPayloadValue is the largest value the 31-bit two-word encoding can
// carry, per spec.md §6: "Maximum allowed payload value: 0x7FFF_FFFF —
// overflow is a fatal CANNOT_WRITE_FILE-class error."
const MaxPayloadValue = 0x7FFF_FFFF

const (
	directMax  = 0x7FFF
	highBit    = 0x8000
	sentinelLo = 0xFFFF
)

// EncodeValue appends the wire words for v to dst, per spec.md §6's
// bit-packing contract: a direct 15-bit value, a two-word big-endian 31-bit
// value when the high bit would otherwise be set, or the 0xFFFF 0xFFFF
// sentinel for -1. Reports CodeCannotWriteFile and leaves dst unchanged if v
// overflows the 31-bit payload.
func EncodeValue(dst []int, v int, mgr *issues.Manager) []int {
	switch {
	case v == -1:
		return append(dst, sentinelLo, sentinelLo)
	case v >= 0 && v <= directMax:
		return append(dst, v)
	case v > MaxPayloadValue || v < 0:
		mgr.Add(issues.New(issues.CodeCannotWriteFile, issues.Fatal, issues.Location{},
			nil, "serialized ATN value %d exceeds maximum payload 0x7FFFFFFF", v))
		return dst
	default:
		hi := highBit | ((v >> 16) & 0x7FFF)
		lo := v & 0xFFFF
		return append(dst, hi, lo)
	}
}

// DecodeValue reads one encoded value starting at words[pos], returning the
// decoded value and the number of words consumed (1 or 2).
func DecodeValue(words []int, pos int) (value int, consumed int, err error) {
	if pos >= len(words) {
		return 0, 0, fmt.Errorf("serialize: truncated stream at position %d", pos)
	}
	w := words[pos]
	if w&highBit == 0 {
		return w, 1, nil
	}
	if pos+1 >= len(words) {
		return 0, 0, fmt.Errorf("serialize: truncated two-word value at position %d", pos)
	}
	lo := words[pos+1]
	if w == sentinelLo && lo == sentinelLo {
		return -1, 2, nil
	}
	hi := w &^ highBit
	return (hi << 16) | lo, 2, nil
}

// EncodeInts bit-packs every raw value in vals in order, per EncodeValue.
func EncodeInts(vals []int, mgr *issues.Manager) []int {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		out = EncodeValue(out, v, mgr)
	}
	return out
}

// DecodeInts reverses EncodeInts, yielding the same raw values that were
// encoded (spec.md §8's round-trip law: "Serialize(ATN) then Deserialize
// yields a structurally identical ATN").
func DecodeInts(words []int) ([]int, error) {
	var out []int
	pos := 0
	for pos < len(words) {
		v, n, err := DecodeValue(words, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		pos += n
	}
	return out, nil
}

// SerializeATN flattens a's states, transitions, rule start/stop pairs, and decision
// list into the raw integer sequence EncodeInts bit-packs. g supplies rule
// declaration order so the rule start/stop section can be rebuilt
// deterministically by DeserializeATN.
func SerializeATN(g *grammar.Grammar, a *atn.ATN) []int {
	var vals []int

	states := a.States()
	vals = append(vals, len(states))
	for _, s := range states {
		vals = append(vals, int(s.Kind), s.RuleIndex, s.DecisionIndex, len(s.Transitions))
		for _, t := range s.Transitions {
			vals = append(vals, int(t.Kind), int(t.Target))
			switch t.Kind {
			case atn.TransAtom:
				vals = append(vals, t.Label)
			case atn.TransRange:
				vals = append(vals, t.Lo, t.Hi)
			case atn.TransSet, atn.TransWildcard:
				ivs := t.Set.Intervals()
				vals = append(vals, len(ivs))
				for _, iv := range ivs {
					vals = append(vals, iv.Lo, iv.Hi)
				}
			case atn.TransRule:
				vals = append(vals, int(t.FollowState), t.RuleIndex)
			case atn.TransPredicate, atn.TransAction:
				vals = append(vals, t.Index)
			}
		}
	}

	rules := g.Rules()
	vals = append(vals, len(rules))
	for _, r := range rules {
		start := a.RuleToStartState[r.Name]
		stop := a.RuleToStopState[r.Name]
		vals = append(vals, int(start), int(stop))
	}

	vals = append(vals, len(a.DecisionToState))
	for _, id := range a.DecisionToState {
		vals = append(vals, int(id))
	}

	return vals
}

// DeserializeATN rebuilds an *atn.ATN from vals, the raw (pre-encoding)
// sequence SerializeATN produces. g must be the same grammar (or one with
// an identical rule table in the same order) used to serialize.
func DeserializeATN(g *grammar.Grammar, vals []int) (*atn.ATN, error) {
	pos := 0
	next := func() (int, error) {
		if pos >= len(vals) {
			return 0, fmt.Errorf("serialize: truncated ATN payload")
		}
		v := vals[pos]
		pos++
		return v, nil
	}

	a := atn.New(g.Name)

	stateCount, err := next()
	if err != nil {
		return nil, err
	}

	for i := 0; i < stateCount; i++ {
		kind, err := next()
		if err != nil {
			return nil, err
		}
		ruleIndex, err := next()
		if err != nil {
			return nil, err
		}
		decisionIndex, err := next()
		if err != nil {
			return nil, err
		}
		transCount, err := next()
		if err != nil {
			return nil, err
		}

		id := a.NewState(atn.StateKind(kind), ruleIndex)
		s := a.State(id)
		s.DecisionIndex = decisionIndex

		for j := 0; j < transCount; j++ {
			tKind, err := next()
			if err != nil {
				return nil, err
			}
			target, err := next()
			if err != nil {
				return nil, err
			}
			tr := &atn.Transition{Kind: atn.TransitionKind(tKind), Target: atn.StateID(target)}

			switch tr.Kind {
			case atn.TransAtom:
				tr.Label, err = next()
			case atn.TransRange:
				tr.Lo, err = next()
				if err == nil {
					tr.Hi, err = next()
				}
			case atn.TransSet, atn.TransWildcard:
				var n int
				n, err = next()
				if err == nil {
					set := atn.NewIntervalSet()
					for k := 0; k < n && err == nil; k++ {
						var lo, hi int
						lo, err = next()
						if err == nil {
							hi, err = next()
						}
						if err == nil {
							set.Add(lo, hi)
						}
					}
					tr.Set = set
				}
			case atn.TransRule:
				var follow int
				follow, err = next()
				if err == nil {
					tr.FollowState = atn.StateID(follow)
					tr.RuleIndex, err = next()
				}
			case atn.TransPredicate, atn.TransAction:
				tr.Index, err = next()
			}
			if err != nil {
				return nil, err
			}
			a.AddTransition(id, tr)
		}
	}

	ruleCount, err := next()
	if err != nil {
		return nil, err
	}
	rules := g.Rules()
	for i := 0; i < ruleCount && i < len(rules); i++ {
		start, err := next()
		if err != nil {
			return nil, err
		}
		stop, err := next()
		if err != nil {
			return nil, err
		}
		a.RuleToStartState[rules[i].Name] = atn.StateID(start)
		a.RuleToStopState[rules[i].Name] = atn.StateID(stop)
	}

	decisionCount, err := next()
	if err != nil {
		return nil, err
	}
	for i := 0; i < decisionCount; i++ {
		id, err := next()
		if err != nil {
			return nil, err
		}
		a.DecisionToState = append(a.DecisionToState, atn.StateID(id))
	}

	return a, nil
}
