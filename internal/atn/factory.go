package atn

import (
	"unicode"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Factory builds an ATN from a single grammar.Grammar's rule table, per
// spec.md §4.3. Construction is bottom-up: BuildGrammar walks every rule,
// each rule's alternatives are built as a top-level decision (or a bare
// chain, for a single-alt rule), and each alt's elements are built
// recursively by buildElement.
type Factory struct {
	atn     *ATN
	g       *grammar.Grammar
	mgr     *issues.Manager
	upperer cases.Caser
	lowerer cases.Caser
}

// NewFactory returns a Factory ready to build g's ATN, reporting
// diagnostics discovered during construction (set collisions) to mgr.
func NewFactory(g *grammar.Grammar, mgr *issues.Manager) *Factory {
	return &Factory{
		g:       g,
		mgr:     mgr,
		upperer: cases.Upper(language.Und),
		lowerer: cases.Lower(language.Und),
	}
}

// BuildGrammar constructs and returns the complete ATN for the factory's
// grammar.
func (f *Factory) BuildGrammar() *ATN {
	f.atn = New(f.g.Name)
	for _, r := range f.g.Rules() {
		f.buildRule(r)
	}
	return f.atn
}

func (f *Factory) buildRule(r *grammar.Rule) {
	start := f.atn.NewState(KindRuleStart, r.Index)
	stop := f.atn.NewState(KindRuleStop, r.Index)
	f.atn.RuleToStartState[r.Name] = start
	f.atn.RuleToStopState[r.Name] = stop

	if r.NumAlts() == 0 {
		f.atn.AddEpsilon(start, stop)
		return
	}

	bodyStart, bodyEnd := f.buildAltList(r.Index, r.Alts[1:])
	f.atn.AddEpsilon(start, bodyStart)
	f.atn.AddEpsilon(bodyEnd, stop)
}

// buildAltList builds the alternation over alts, returning a decision state
// (or, for a single alt, that alt's own start) and a shared block-end state
// every alt reaches by epsilon.
func (f *Factory) buildAltList(ruleIndex int, alts []*ast.Node) (start, end StateID) {
	if len(alts) == 1 {
		return f.buildAlt(ruleIndex, alts[0])
	}

	decision := f.atn.NewState(KindDecision, ruleIndex)
	blockEnd := f.atn.NewState(KindBlockEnd, ruleIndex)
	f.atn.NextDecision(decision)

	for _, alt := range alts {
		altStart, altEnd := f.buildAlt(ruleIndex, alt)
		f.atn.AddEpsilon(decision, altStart)
		f.atn.AddEpsilon(altEnd, blockEnd)
	}
	return decision, blockEnd
}

// buildAlt builds a KindAlt node as a concatenation of its elements.
func (f *Factory) buildAlt(ruleIndex int, alt *ast.Node) (start, end StateID) {
	if len(alt.Children) == 0 {
		s := f.atn.NewState(KindBasic, ruleIndex)
		return s, s
	}

	var chainStart, chainEnd StateID
	for i, elem := range alt.Children {
		elemStart, elemEnd := f.buildElement(ruleIndex, elem)
		if i == 0 {
			chainStart = elemStart
		} else {
			f.atn.AddEpsilon(chainEnd, elemStart)
		}
		chainEnd = elemEnd
	}
	return chainStart, chainEnd
}

// buildElement dispatches on n.Kind, implementing the per-element-kind
// rules of spec.md §4.3.
func (f *Factory) buildElement(ruleIndex int, n *ast.Node) (start, end StateID) {
	switch n.Kind {
	case ast.KindBlock:
		return f.buildAltList(ruleIndex, n.Children)
	case ast.KindAlt:
		return f.buildAlt(ruleIndex, n)
	case ast.KindTerminalRef:
		return f.buildTerminalRef(ruleIndex, n)
	case ast.KindRuleRef:
		return f.buildRuleRef(ruleIndex, n)
	case ast.KindCharLiteral:
		return f.buildCharLiteral(ruleIndex, n)
	case ast.KindCharRange:
		return f.buildCharRange(ruleIndex, n)
	case ast.KindSet:
		return f.buildSet(ruleIndex, n)
	case ast.KindAction:
		return f.buildAction(ruleIndex, n)
	case ast.KindPredicate:
		return f.buildPredicate(ruleIndex, n)
	case ast.KindWildcard:
		return f.buildWildcard(ruleIndex, n)
	case ast.KindOptional:
		return f.buildOptional(ruleIndex, n)
	case ast.KindStar:
		return f.buildStar(ruleIndex, n)
	case ast.KindPlus:
		return f.buildPlus(ruleIndex, n)
	default:
		s := f.atn.NewState(KindBasic, ruleIndex)
		return s, s
	}
}

func (f *Factory) buildTerminalRef(ruleIndex int, n *ast.Node) (StateID, StateID) {
	if f.g.Type == grammar.Lexer && isQuotedLiteral(n.Text) {
		return f.buildLiteralString(ruleIndex, n, n.Text[1:len(n.Text)-1])
	}

	tokType, ok := f.tokenTypeOf(n.Text)
	if !ok {
		s1 := f.atn.NewState(KindBasic, ruleIndex)
		s2 := f.atn.NewState(KindBasic, ruleIndex)
		f.atn.AddEpsilon(s1, s2)
		return s1, s2
	}
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	f.atn.AddTransition(s1, &Transition{Kind: TransAtom, Label: tokType, Target: s2})
	return s1, s2
}

func (f *Factory) tokenTypeOf(text string) (int, bool) {
	if isQuotedLiteral(text) {
		return f.g.StringLiteralType(text)
	}
	return f.g.TokenType(text)
}

// buildLiteralString chains one per-character atom transition (with
// case-insensitive set expansion, per the rule's or grammar's
// caseInsensitive option) for each rune of literal.
func (f *Factory) buildLiteralString(ruleIndex int, n *ast.Node, literal string) (StateID, StateID) {
	caseInsensitive := f.isCaseInsensitive(n)

	runes := []rune(literal)
	if len(runes) == 0 {
		s := f.atn.NewState(KindBasic, ruleIndex)
		return s, s
	}

	var chainStart, chainEnd StateID
	for i, r := range runes {
		s1 := f.atn.NewState(KindBasic, ruleIndex)
		s2 := f.atn.NewState(KindBasic, ruleIndex)
		f.addCharTransition(s1, s2, r, caseInsensitive)
		if i == 0 {
			chainStart = s1
		} else {
			f.atn.AddEpsilon(chainEnd, s1)
		}
		chainEnd = s2
	}
	return chainStart, chainEnd
}

// addCharTransition adds either a plain atom transition for r, or (when
// caseInsensitive and the upper/lower mappings are each exactly one rune) a
// two-element set transition covering both cases. Per spec.md §4.3, a
// case-mapping that doesn't round-trip to a single rune is skipped entirely
// rather than only partially expanded.
func (f *Factory) addCharTransition(from, to StateID, r rune, caseInsensitive bool) {
	if !caseInsensitive {
		f.atn.AddTransition(from, &Transition{Kind: TransAtom, Label: int(r), Target: to})
		return
	}
	upper, okUpper := f.singleRuneCaseMap(r, true)
	lower, okLower := f.singleRuneCaseMap(r, false)
	if !okUpper || !okLower {
		f.atn.AddTransition(from, &Transition{Kind: TransAtom, Label: int(r), Target: to})
		return
	}
	set := NewIntervalSet()
	set.Add(int(upper), int(upper))
	set.Add(int(lower), int(lower))
	f.atn.AddTransition(from, &Transition{Kind: TransSet, Set: set, Target: to})
}

// singleRuneCaseMap returns r's upper- or lower-cased form, succeeding only
// when the mapping is itself exactly one rune (the precondition spec.md's
// "skip the entire range if the case-mapped lengths differ" clause checks).
func (f *Factory) singleRuneCaseMap(r rune, upper bool) (rune, bool) {
	var mapped string
	if upper {
		mapped = f.upperer.String(string(r))
	} else {
		mapped = f.lowerer.String(string(r))
	}
	runes := []rune(mapped)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

func (f *Factory) isCaseInsensitive(n *ast.Node) bool {
	if v, ok := n.Option("caseInsensitive"); ok {
		return v == "true"
	}
	if f.g.Root != nil {
		for _, c := range f.g.Root.Children {
			if c.Kind == ast.KindOptionsBlock {
				if v, ok := c.Options["caseInsensitive"]; ok {
					return v == "true"
				}
			}
		}
	}
	return false
}

func (f *Factory) buildRuleRef(ruleIndex int, n *ast.Node) (StateID, StateID) {
	calleeStart, ok := f.atn.RuleToStartState[n.Text]
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	if !ok {
		f.atn.AddEpsilon(s1, s2)
		return s1, s2
	}
	calleeRule := f.g.Rule(n.Text)
	calleeIdx := -1
	if calleeRule != nil {
		calleeIdx = calleeRule.Index
	}
	f.atn.AddTransition(s1, &Transition{Kind: TransRule, Target: calleeStart, FollowState: s2, RuleIndex: calleeIdx})
	return s1, s2
}

func (f *Factory) buildCharLiteral(ruleIndex int, n *ast.Node) (StateID, StateID) {
	text := n.Text
	if isQuotedLiteral(text) {
		text = text[1 : len(text)-1]
	}
	runes := []rune(text)
	if len(runes) == 0 {
		s := f.atn.NewState(KindBasic, ruleIndex)
		return s, s
	}
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	f.addCharTransition(s1, s2, runes[0], f.isCaseInsensitive(n))
	return s1, s2
}

func (f *Factory) buildCharRange(ruleIndex int, n *ast.Node) (StateID, StateID) {
	from, _ := n.Option("from")
	to, _ := n.Option("to")
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	if len(from) == 0 || len(to) == 0 {
		f.atn.AddEpsilon(s1, s2)
		return s1, s2
	}
	lo, hi := []rune(from)[0], []rune(to)[0]

	set := NewIntervalSet()
	set.Add(int(lo), int(hi))
	if f.isCaseInsensitive(n) {
		f.unionMirrorRange(set, lo, hi)
	}
	f.atn.AddTransition(s1, &Transition{Kind: TransSet, Set: set, Target: s2})
	return s1, s2
}

// unionMirrorRange adds the case-swapped mirror of [lo, hi] into set, one
// rune at a time (ranges are typically short, e.g. 'a'..'z'), consistent
// with spec.md §4.3's "union with the mirror range" for a case-insensitive
// character range.
func (f *Factory) unionMirrorRange(set *IntervalSet, lo, hi rune) {
	for r := lo; r <= hi; r++ {
		mapped, ok := f.singleRuneCaseMap(r, unicode.IsLower(r))
		if ok && mapped != r {
			set.Add(int(mapped), int(mapped))
		}
		if r == unicode.MaxRune {
			break
		}
	}
}

func (f *Factory) buildSet(ruleIndex int, n *ast.Node) (StateID, StateID) {
	set := NewIntervalSet()
	for _, c := range n.Children {
		lo, hi, ok := f.codePointOrTokenSpan(c)
		if !ok {
			continue
		}
		if set.Add(lo, hi) {
			f.mgr.Add(issues.New(issues.CodeCharactersCollisionInSet, issues.Warning,
				issues.Location{File: f.g.FileName}, nil,
				"overlapping element merged into set at rule index %d", ruleIndex))
		}
	}
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	f.atn.AddTransition(s1, &Transition{Kind: TransSet, Set: set, Target: s2})
	return s1, s2
}

func (f *Factory) codePointOrTokenSpan(n *ast.Node) (lo, hi int, ok bool) {
	switch n.Kind {
	case ast.KindCharRange:
		from, okFrom := n.Option("from")
		to, okTo := n.Option("to")
		if !okFrom || !okTo || len(from) == 0 || len(to) == 0 {
			return 0, 0, false
		}
		return int([]rune(from)[0]), int([]rune(to)[0]), true
	case ast.KindCharLiteral:
		text := n.Text
		if isQuotedLiteral(text) {
			text = text[1 : len(text)-1]
		}
		runes := []rune(text)
		if len(runes) != 1 {
			return 0, 0, false
		}
		return int(runes[0]), int(runes[0]), true
	case ast.KindTerminalRef:
		t, ok := f.tokenTypeOf(n.Text)
		if !ok {
			return 0, 0, false
		}
		return t, t, true
	default:
		return 0, 0, false
	}
}

func (f *Factory) buildAction(ruleIndex int, n *ast.Node) (StateID, StateID) {
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	idx := f.g.LexerActionIndex(n)
	f.atn.AddTransition(s1, &Transition{Kind: TransAction, Index: idx, Target: s2})
	return s1, s2
}

func (f *Factory) buildPredicate(ruleIndex int, n *ast.Node) (StateID, StateID) {
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	idx := f.g.SempredIndex(n)
	f.atn.AddTransition(s1, &Transition{Kind: TransPredicate, Index: idx, Target: s2})
	return s1, s2
}

func (f *Factory) buildWildcard(ruleIndex int, n *ast.Node) (StateID, StateID) {
	set := NewIntervalSet()
	if f.g.Type == grammar.Lexer {
		set.Add(0, unicode.MaxRune)
	} else {
		set.Add(grammar.MinUserTokenType, f.g.MaxTokenType())
	}
	s1 := f.atn.NewState(KindBasic, ruleIndex)
	s2 := f.atn.NewState(KindBasic, ruleIndex)
	f.atn.AddTransition(s1, &Transition{Kind: TransWildcard, Set: set, Target: s2})
	return s1, s2
}

// buildOptional implements `X?`: a decision between the body and a direct
// epsilon skip, both reaching a shared end state.
func (f *Factory) buildOptional(ruleIndex int, n *ast.Node) (StateID, StateID) {
	body := n.Children[0]
	decision := f.atn.NewState(KindDecision, ruleIndex)
	end := f.atn.NewState(KindBlockEnd, ruleIndex)
	f.atn.NextDecision(decision)

	bodyStart, bodyEnd := f.buildElement(ruleIndex, body)
	f.atn.AddEpsilon(decision, bodyStart)
	f.atn.AddEpsilon(bodyEnd, end)
	f.atn.AddEpsilon(decision, end)
	return decision, end
}

// buildStar implements `X*`: a StarLoopEntry decision between entering the
// body (looping back via a StarLoopback state) and the exit edge.
func (f *Factory) buildStar(ruleIndex int, n *ast.Node) (StateID, StateID) {
	body := n.Children[0]
	entry := f.atn.NewState(KindStarLoopEntry, ruleIndex)
	loopback := f.atn.NewState(KindStarLoopback, ruleIndex)
	end := f.atn.NewState(KindLoopEnd, ruleIndex)
	f.atn.NextDecision(entry)

	bodyStart, bodyEnd := f.buildElement(ruleIndex, body)
	f.atn.AddEpsilon(entry, bodyStart)
	f.atn.AddEpsilon(entry, end)
	f.atn.AddEpsilon(bodyEnd, loopback)
	f.atn.AddEpsilon(loopback, entry)
	return entry, end
}

// buildPlus implements `X+`: a PlusBlockStart that unconditionally enters
// the body once, then a PlusLoopback decision between repeating and exiting.
func (f *Factory) buildPlus(ruleIndex int, n *ast.Node) (StateID, StateID) {
	body := n.Children[0]
	blockStart := f.atn.NewState(KindPlusBlockStart, ruleIndex)
	loopback := f.atn.NewState(KindPlusLoopback, ruleIndex)
	end := f.atn.NewState(KindLoopEnd, ruleIndex)
	f.atn.NextDecision(loopback)

	bodyStart, bodyEnd := f.buildElement(ruleIndex, body)
	f.atn.AddEpsilon(blockStart, bodyStart)
	f.atn.AddEpsilon(bodyEnd, loopback)
	f.atn.AddEpsilon(loopback, bodyStart)
	f.atn.AddEpsilon(loopback, end)
	return blockStart, end
}

func isQuotedLiteral(text string) bool {
	return len(text) >= 2 && text[0] == '\''
}
