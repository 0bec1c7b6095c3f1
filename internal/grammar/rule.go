package grammar

import "github.com/dekarrin/grammarc/internal/ast"

// Attribute is a single named, typed declaration in a rule's args/returns/
// locals dictionary (`ruleName[int x] returns [int y] locals [int z]`).
type Attribute struct {
	Name string
	Type string // the declared type text, e.g. "int"; opaque to this module
}

// Rule generalizes the teacher's flat tunascript.Rule (NonTerminal plus a
// slice of Productions) into the attribute-carrying, AST-backed Rule named
// in spec.md §3.
type Rule struct {
	Name  string
	Index int

	Args    []Attribute
	Returns []Attribute
	Locals  []Attribute

	// Alts are the rule's alternatives, 1-indexed per spec.md §3 ("named
	// arguments/returns/locals... alternatives (1-indexed)"); Alts[0] is
	// always nil as a result.
	Alts []*ast.Node

	Actions []*ast.Node

	IsFragment  bool
	IsStartRule bool

	AST   *ast.Node
	Owner *Grammar
}

// NewRule creates an empty rule named name. Callers append alternatives with
// AddAlt, which maintains the 1-indexing convention.
func NewRule(name string) *Rule {
	return &Rule{Name: name, Alts: []*ast.Node{nil}}
}

// AddAlt appends alt as the rule's next alternative, returning its 1-based
// alt number.
func (r *Rule) AddAlt(alt *ast.Node) int {
	r.Alts = append(r.Alts, alt)
	return len(r.Alts) - 1
}

// NumAlts returns how many alternatives the rule has.
func (r *Rule) NumAlts() int {
	return len(r.Alts) - 1
}

// HasAttribute reports whether name is declared as an arg, return, or local
// on this rule, used by the label-conflict checks in spec.md §4.2 pass 5.
func (r *Rule) HasAttribute(name string) (kind string, ok bool) {
	for _, a := range r.Args {
		if a.Name == name {
			return "argument", true
		}
	}
	for _, a := range r.Returns {
		if a.Name == name {
			return "return value", true
		}
	}
	for _, a := range r.Locals {
		if a.Name == name {
			return "local", true
		}
	}
	return "", false
}

// OpAltAssoc is the operator associativity recorded for a left-recursive
// rule's operator alternative.
type OpAltAssoc int

const (
	AssocLeft OpAltAssoc = iota
	AssocRight
)

// OpAlt records one operator-alternative's precedence-climbing metadata,
// computed by the left-recursion elimination transform (spec.md §4.1.4).
type OpAlt struct {
	Alt            *ast.Node
	Precedence     int
	Assoc          OpAltAssoc
	IsListLabel    bool
	DiscardedLabel string
}

// LeftRecursiveRule extends Rule with the primary/op-alt split produced by
// direct-left-recursion elimination, per spec.md §3/§4.1.4.
type LeftRecursiveRule struct {
	Rule

	PrimaryAlts []*ast.Node
	OpAlts      []OpAlt
}

// ToLeftRecursive promotes r into a LeftRecursiveRule, used by the transform
// package once it has classified r's alternatives into primary/op groups.
func ToLeftRecursive(r *Rule) *LeftRecursiveRule {
	return &LeftRecursiveRule{Rule: *r}
}
