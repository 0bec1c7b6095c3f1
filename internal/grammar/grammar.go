// Package grammar holds the Grammar object and its Rule table: the
// generalization of the teacher's flat internal/tunascript.Grammar
// (internal/tunascript/grammar.go) into the richer per-grammar bookkeeping
// named in spec.md §3 — token/string/channel symbol tables with their
// reverse arrays, named actions, semantic-predicate/lexer-action indices,
// an optional implicit lexer, and an import parent pointer.
package grammar

import (
	"fmt"
	"sort"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/util"
)

// Type is the kind of grammar declared by the source file's header.
type Type int

const (
	Lexer Type = iota
	Parser
	Combined
)

func (t Type) String() string {
	switch t {
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	case Combined:
		return "combined"
	default:
		return "unknown"
	}
}

// Reserved token-type values, per spec.md §3's invariant: "Token type 0 is
// reserved 'invalid'; user types start at a fixed MIN_USER_TOKEN_TYPE" and
// "The EOF token is pre-registered with a sentinel type."
const (
	TokenInvalid     = 0
	TokenEOF         = -1
	MinUserTokenType = 2
)

// DefaultChannels are the predefined channels every grammar starts with,
// before any user channel declarations are assigned (spec.md §4.2 pass 7).
const (
	ChannelDefault = 0
	ChannelHidden  = 1
)

// Grammar holds everything spec.md §3 names: the AST, rule table, symbol
// tables, imports, and (once built) the ATN. The Grammar's ATN field is
// declared as `any` here to avoid an import cycle with package atn (package
// atn imports this package to build from a Grammar); the pipeline
// orchestrator is responsible for the type assertion back to *atn.ATN.
type Grammar struct {
	Name     string
	Type     Type
	FileName string
	Root     *ast.Node

	rules       []*Rule
	rulesByName map[string]int

	tokenNameToType      map[string]int
	stringLiteralToType  map[string]int
	typeToTokenList      []string // index 0 unused (TokenInvalid)
	typeToStringLiteral  []string
	nextTokenType        int

	channelNameToValue map[string]int
	channelValueToName []string
	nextChannelValue   int

	modes map[string]bool

	NamedActions map[string]string // "scope::name" -> brace-block text

	sempreds     map[*ast.Node]int
	lexerActions map[*ast.Node]int

	ImplicitLexer *Grammar
	Parent        *Grammar
	Imports       []*Grammar

	leftRecursive map[string]*LeftRecursiveRule
	synthCounter  int

	ATN any

	decisionLookahead map[int]map[int]*LookaheadSet
	nonLL1Decisions   map[int]bool
}

// LookaheadSet is the LOOK(alt) result spec.md §4.4 says analysis stores at
// grammar.decisionLookahead[decision][alt]: a set of token types (parser
// decisions) or code points (lexer decisions), kept as raw closed intervals
// rather than individually enumerated members so that a wildcard or a wide
// Unicode range doesn't force materializing millions of entries. It is the
// same interval-collection idiom atn.IntervalSet uses one layer down, kept
// separate so this package never needs to import atn.
type LookaheadSet struct {
	intervals [][2]int
}

// NewLookaheadSet returns an empty set.
func NewLookaheadSet() *LookaheadSet {
	return &LookaheadSet{}
}

// Add unions in the closed interval [lo, hi].
func (ls *LookaheadSet) Add(lo, hi int) {
	ls.intervals = append(ls.intervals, [2]int{lo, hi})
}

// Intervals returns the set's raw intervals, in insertion order.
func (ls *LookaheadSet) Intervals() [][2]int {
	return ls.intervals
}

// Contains reports whether v falls within any interval of the set.
func (ls *LookaheadSet) Contains(v int) bool {
	for _, iv := range ls.intervals {
		if v >= iv[0] && v <= iv[1] {
			return true
		}
	}
	return false
}

// Overlaps reports whether ls and other share any member, the test
// spec.md §4.4's disjoint predicate is built from.
func (ls *LookaheadSet) Overlaps(other *LookaheadSet) bool {
	if ls == nil || other == nil {
		return false
	}
	for _, a := range ls.intervals {
		for _, b := range other.intervals {
			if a[0] <= b[1] && b[0] <= a[1] {
				return true
			}
		}
	}
	return false
}

// SetDecisionLookahead records the LOOK(alt) set computed for alternative
// alt of the decision at decisionIndex, per spec.md §4.4's
// "grammar.decisionLookahead[decision][alt]".
func (g *Grammar) SetDecisionLookahead(decisionIndex, alt int, look *LookaheadSet) {
	if g.decisionLookahead == nil {
		g.decisionLookahead = map[int]map[int]*LookaheadSet{}
	}
	if g.decisionLookahead[decisionIndex] == nil {
		g.decisionLookahead[decisionIndex] = map[int]*LookaheadSet{}
	}
	g.decisionLookahead[decisionIndex][alt] = look
}

// DecisionLookahead returns the previously recorded LOOK(alt) set for the
// given decision/alt pair, and whether one was recorded.
func (g *Grammar) DecisionLookahead(decisionIndex, alt int) (*LookaheadSet, bool) {
	byAlt, ok := g.decisionLookahead[decisionIndex]
	if !ok {
		return nil, false
	}
	look, ok := byAlt[alt]
	return look, ok
}

// DecisionAltCount returns how many alternatives have recorded lookahead for
// decisionIndex, 0 if the decision was never analyzed.
func (g *Grammar) DecisionAltCount(decisionIndex int) int {
	return len(g.decisionLookahead[decisionIndex])
}

// Decisions returns every decision index that has recorded lookahead, in
// ascending order.
func (g *Grammar) Decisions() []int {
	out := make([]int, 0, len(g.decisionLookahead))
	for idx := range g.decisionLookahead {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// MarkNonLL1 records that the decision at decisionIndex failed the disjoint
// check, per spec.md §4.4: "Decisions that are not LL(1) are left for
// adaptive prediction at runtime; the analysis still records the sets for
// diagnostics."
func (g *Grammar) MarkNonLL1(decisionIndex int) {
	if g.nonLL1Decisions == nil {
		g.nonLL1Decisions = map[int]bool{}
	}
	g.nonLL1Decisions[decisionIndex] = true
}

// IsLL1 reports whether the decision at decisionIndex passed the disjoint
// check. Decisions never analyzed report true (vacuously LL(1)).
func (g *Grammar) IsLL1(decisionIndex int) bool {
	return !g.nonLL1Decisions[decisionIndex]
}

// NextSyntheticTokenName returns the next name in the T__<n> sequence used
// for lexer rules synthesized from string literals during implicit-lexer
// extraction (spec.md §4.1.2), monotonic per grammar.
func (g *Grammar) NextSyntheticTokenName() string {
	n := g.synthCounter
	g.synthCounter++
	return fmt.Sprintf("T__%d", n)
}

// New returns an empty Grammar of the given type and name, with its token
// symbol tables pre-seeded the way spec.md §3 requires (type 0 invalid, EOF
// pre-registered, first user type at MinUserTokenType).
func New(name string, typ Type, fileName string) *Grammar {
	g := &Grammar{
		Name:                name,
		Type:                typ,
		FileName:            fileName,
		rulesByName:         map[string]int{},
		tokenNameToType:     map[string]int{},
		stringLiteralToType: map[string]int{},
		typeToTokenList:     []string{""}, // index 0 is TokenInvalid, unnamed
		typeToStringLiteral: []string{""},
		nextTokenType:       MinUserTokenType,
		channelNameToValue: map[string]int{
			"DEFAULT_TOKEN_CHANNEL": ChannelDefault,
			"HIDDEN":                ChannelHidden,
		},
		channelValueToName: []string{"DEFAULT_TOKEN_CHANNEL", "HIDDEN"},
		nextChannelValue:   ChannelHidden + 1,
		modes:              map[string]bool{"DEFAULT_MODE": true},
		NamedActions:       map[string]string{},
		sempreds:           map[*ast.Node]int{},
		lexerActions:       map[*ast.Node]int{},
	}
	g.tokenNameToType["EOF"] = TokenEOF
	return g
}

// GrammarName implements ast.GrammarRef, satisfying the "n.g == grammar" /
// "n.Grammar.GrammarName() == grammar.Name" back-pointer invariant checked
// against AST nodes in spec.md §8.
func (g *Grammar) GrammarName() string {
	if g == nil {
		return ""
	}
	return g.Name
}

// StartRuleName returns the name of the grammar's first declared rule (the
// implicit start symbol used by analysis and by "S is used by default, don't
// check that one" style checks).
func (g *Grammar) StartRuleName() string {
	if len(g.rules) == 0 {
		return ""
	}
	return g.rules[0].Name
}

// Rules returns the rule table in declaration order. Callers must not
// mutate the returned slice; use AddRule/RemoveRule.
func (g *Grammar) Rules() []*Rule {
	cp := make([]*Rule, len(g.rules))
	copy(cp, g.rules)
	return cp
}

// Rule looks up a rule by name, returning nil if undefined.
func (g *Grammar) Rule(name string) *Rule {
	idx, ok := g.rulesByName[name]
	if !ok {
		return nil
	}
	return g.rules[idx]
}

// HasRule reports whether name is defined.
func (g *Grammar) HasRule(name string) bool {
	_, ok := g.rulesByName[name]
	return ok
}

// AddRule appends r to the rule table, assigning r.Index to its position,
// per spec.md §3's invariant "grammar.rules[r.name].index == r.index". It is
// an error to add a rule whose name is already defined (callers performing
// merges must check HasRule themselves to decide redefinition policy, since
// different callers - import-merge vs. plain redefinition-check - handle a
// collision differently).
func (g *Grammar) AddRule(r *Rule) error {
	if g.HasRule(r.Name) {
		return fmt.Errorf("rule %q already defined", r.Name)
	}
	r.Index = len(g.rules)
	r.Owner = g
	g.rules = append(g.rules, r)
	g.rulesByName[r.Name] = r.Index
	return nil
}

// InsertRuleAfter inserts r immediately after the rule at index idx,
// renumbering every later rule. This is the AST-level generalization of the
// teacher's Grammar.insertRule (internal/tunascript/grammar.go), used by
// left-recursion elimination to splice in a generated A' helper rule right
// after A by convention.
func (g *Grammar) InsertRuleAfter(idx int, r *Rule) {
	post := make([]*Rule, len(g.rules)-(idx+1))
	copy(post, g.rules[idx+1:])

	g.rules = append(g.rules[:idx+1], r)
	g.rules = append(g.rules, post...)

	r.Owner = g
	for i := idx + 1; i < len(g.rules); i++ {
		g.rules[i].Index = i
		g.rulesByName[g.rules[i].Name] = i
	}
}

// RemoveRule deletes the rule named name, renumbering later rules and
// decrementing their indices, per spec.md §3's "removing a rule renumbers
// later rules and decrements the counter."
func (g *Grammar) RemoveRule(name string) {
	idx, ok := g.rulesByName[name]
	if !ok {
		return
	}
	delete(g.rulesByName, name)
	g.rules = append(g.rules[:idx], g.rules[idx+1:]...)
	for i := idx; i < len(g.rules); i++ {
		g.rules[i].Index = i
		g.rulesByName[g.rules[i].Name] = i
	}
}

// ReplaceRuleAt overwrites the rule at index idx with r, keeping r at the
// same position (and under its own name, which may differ from the rule it
// replaces). Used by left-recursion elimination to swap a plain Rule for its
// LeftRecursiveRule.Rule view in place.
func (g *Grammar) ReplaceRuleAt(idx int, r *Rule) {
	old := g.rules[idx]
	if old != nil && old.Name != r.Name {
		delete(g.rulesByName, old.Name)
	}
	r.Index = idx
	r.Owner = g
	g.rules[idx] = r
	g.rulesByName[r.Name] = idx
}

// SetLeftRecursive records lr as the left-recursion-elimination result for
// its rule name, retrievable later by analysis/ATN construction to recover
// operator precedence/associativity metadata.
func (g *Grammar) SetLeftRecursive(name string, lr *LeftRecursiveRule) {
	if g.leftRecursive == nil {
		g.leftRecursive = map[string]*LeftRecursiveRule{}
	}
	g.leftRecursive[name] = lr
}

// LeftRecursive returns the LeftRecursiveRule metadata for name, or nil if
// that rule was never rewritten by left-recursion elimination.
func (g *Grammar) LeftRecursive(name string) *LeftRecursiveRule {
	return g.leftRecursive[name]
}

// GenerateUniqueName returns a name derived from original that is not
// already in use as a rule name, appending "'" (then "2", "3", ... if that's
// also taken) the way the teacher's Grammar.GenerateUniqueName does for its
// left-recursion-elimination helper non-terminals.
func (g *Grammar) GenerateUniqueName(original string) string {
	candidate := original + "'"
	for n := 2; g.HasRule(candidate); n++ {
		candidate = fmt.Sprintf("%s%d", original, n)
	}
	return candidate
}

// NonTerminals returns every rule name in declaration order.
func (g *Grammar) NonTerminals() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.Name
	}
	return names
}

// SempredIndex returns (and assigns, if new) the index of a predicate AST
// node in this grammar's sempreds map, used by atn.Factory when building a
// predicate transition (spec.md §4.3: "Predicates... carry their index in
// the grammar's sempreds... maps").
func (g *Grammar) SempredIndex(n *ast.Node) int {
	if idx, ok := g.sempreds[n]; ok {
		return idx
	}
	idx := len(g.sempreds)
	g.sempreds[n] = idx
	return idx
}

// LexerActionIndex is SempredIndex's counterpart for lexer action nodes.
func (g *Grammar) LexerActionIndex(n *ast.Node) int {
	if idx, ok := g.lexerActions[n]; ok {
		return idx
	}
	idx := len(g.lexerActions)
	g.lexerActions[n] = idx
	return idx
}

// ModeNames returns every lexer mode name declared in this grammar,
// including the always-present DEFAULT_MODE, in an arbitrary but stable
// order (sorted) suitable for deterministic diagnostic output.
func (g *Grammar) ModeNames() []string {
	return util.OrderedKeys(g.modes, func(a, b string) bool { return a < b })
}

// DefineMode registers name as a lexer mode. A no-op if already defined.
func (g *Grammar) DefineMode(name string) {
	if g.modes == nil {
		g.modes = map[string]bool{}
	}
	g.modes[name] = true
}

// HasMode reports whether name has been declared as a mode.
func (g *Grammar) HasMode(name string) bool {
	return g.modes[name]
}
