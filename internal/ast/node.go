// Package ast holds the GrammarAST node model: a single tagged-variant
// struct type generalized from the teacher's ParseTree
// (internal/ictiobus/types/tree.go), replacing the deep class hierarchy of
// AST kinds named as a redesign flag in spec.md §9 with one enum of node
// kinds plus a kind-specific payload.
package ast

import "fmt"

// Kind is the fixed enumeration of GrammarAST node kinds named in spec.md §3.
type Kind int

const (
	KindGrammarRoot Kind = iota
	KindRule
	KindBlock
	KindAlt
	KindTerminalRef
	KindRuleRef
	KindSet
	KindCharRange
	KindCharLiteral
	KindAction
	KindPredicate
	KindOptional  // X?
	KindStar      // X*
	KindPlus      // X+
	KindLexerCommand
	KindElementOptions
	KindOptionsBlock
	KindTokensBlock
	KindChannelsBlock
	KindImport
	KindNamedAction
	KindWildcard
)

func (k Kind) String() string {
	names := [...]string{
		"GrammarRoot", "Rule", "Block", "Alt", "TerminalRef", "RuleRef",
		"Set", "CharRange", "CharLiteral", "Action", "Predicate",
		"Optional", "Star", "Plus", "LexerCommand", "ElementOptions",
		"OptionsBlock", "TokensBlock", "ChannelsBlock", "Import",
		"NamedAction", "Wildcard",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Token is the originating lexical token of a Node, carried for diagnostic
// location reporting.
type Token struct {
	Line        int
	Column      int
	Text        string
	StreamIndex int
}

// ATNStateRef is an opaque handle into an atn.ATN's state array, filled in
// during ATN construction (spec.md §3: "an optional ATNState association").
// It is declared here rather than imported from package atn to avoid a
// dependency cycle (atn.Factory walks *Node); atn.StateID is defined as this
// same underlying type.
type ATNStateRef int

// NoATNState is the zero value meaning "no state has been associated yet".
const NoATNState ATNStateRef = -1

// GrammarRef is a minimal handle back to the owning Grammar, kept as an
// interface here (rather than importing package grammar) to avoid the same
// import cycle: package grammar imports package ast to build its tree, so
// ast cannot import grammar back. The grammar package's *Grammar type
// satisfies this trivially.
type GrammarRef interface {
	// GrammarName returns the declared name of the owning grammar, used only
	// for the invariant check in TestableProperties §8 ("n.g == grammar").
	GrammarName() string
}

// Node is the single tagged-variant struct used for every AST node, per the
// redesign flag in spec.md §9.
type Node struct {
	Kind     Kind
	Token    Token
	Children []*Node
	Parent   *Node
	Grammar  GrammarRef
	ATNState ATNStateRef

	// Options holds <key=value> element options and options{} block entries
	// attached to this node.
	Options map[string]string

	// Text is the node's own literal text when it is not simply the
	// concatenation of its children (terminal names, literal bodies, action
	// source, predicate source).
	Text string
}

// New creates a detached node of the given kind with its originating token.
func New(kind Kind, tok Token) *Node {
	return &Node{Kind: kind, Token: tok, ATNState: NoATNState}
}

// AddChild appends child to n's children and fixes up child's Parent link.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// ChildIndex returns the index of child within n.Children, or -1 if child is
// not a direct child of n.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetOption sets a single element/options-block option on n.
func (n *Node) SetOption(key, value string) {
	if n.Options == nil {
		n.Options = map[string]string{}
	}
	n.Options[key] = value
}

// Option retrieves an option by key; ok is false if it was never set.
func (n *Node) Option(key string) (value string, ok bool) {
	if n.Options == nil {
		return "", false
	}
	value, ok = n.Options[key]
	return
}

// Root walks Parent links up to the grammar-root node.
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Walk performs a pre-order traversal of the subtree rooted at n, calling fn
// on each node including n itself.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Copy returns a deep, detached copy of the subtree rooted at n (Parent is
// nil on the returned root, matching the teacher's ParseTree.Copy
// semantics).
func (n *Node) Copy() *Node {
	cp := &Node{
		Kind:     n.Kind,
		Token:    n.Token,
		Grammar:  n.Grammar,
		ATNState: n.ATNState,
		Text:     n.Text,
	}
	if n.Options != nil {
		cp.Options = make(map[string]string, len(n.Options))
		for k, v := range n.Options {
			cp.Options[k] = v
		}
	}
	cp.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		childCopy := c.Copy()
		childCopy.Parent = cp
		cp.Children[i] = childCopy
	}
	return cp
}

// SanityCheck walks the subtree rooted at n and repairs any Parent back-
// reference or child-index inconsistency introduced by a structural edit
// that didn't go through AddChild, per the "sanity-check parent/child
// indices" helper named in spec.md §9.
func (n *Node) SanityCheck() {
	for _, c := range n.Children {
		c.Parent = n
		c.SanityCheck()
	}
}

// String gives a compact, single-line description of the node (its kind,
// plus its text when set) for debug output and error messages. Children are
// not included.
func (n *Node) String() string {
	if n.Text != "" {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Text)
	}
	return n.Kind.String()
}
