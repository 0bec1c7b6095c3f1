package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Node_AddChild_FixesParent(t *testing.T) {
	assert := assert.New(t)

	root := New(KindGrammarRoot, Token{Text: "grammar"})
	rule := New(KindRule, Token{Text: "a"})

	root.AddChild(rule)

	assert.Same(root, rule.Parent)
	assert.Equal(0, root.ChildIndex(rule))
}

func Test_Node_Copy_IsDetachedAndDeep(t *testing.T) {
	assert := assert.New(t)

	root := New(KindGrammarRoot, Token{Text: "grammar"})
	rule := New(KindRule, Token{Text: "a"})
	rule.SetOption("foo", "bar")
	root.AddChild(rule)

	cp := root.Copy()

	assert.Nil(cp.Parent)
	assert.Len(cp.Children, 1)
	assert.Same(cp, cp.Children[0].Parent)
	assert.NotSame(rule, cp.Children[0])

	val, ok := cp.Children[0].Option("foo")
	assert.True(ok)
	assert.Equal("bar", val)

	// mutating the copy's option map must not affect the original
	cp.Children[0].SetOption("foo", "baz")
	origVal, _ := rule.Option("foo")
	assert.Equal("bar", origVal)
}

func Test_Node_SanityCheck_RepairsParentLinks(t *testing.T) {
	assert := assert.New(t)

	root := New(KindGrammarRoot, Token{})
	a := New(KindRule, Token{Text: "a"})
	b := New(KindRule, Token{Text: "b"})

	// simulate a structural edit that bypassed AddChild
	root.Children = []*Node{a, b}

	root.SanityCheck()

	assert.Same(root, a.Parent)
	assert.Same(root, b.Parent)
}

func Test_Node_Walk_VisitsAllInPreOrder(t *testing.T) {
	assert := assert.New(t)

	root := New(KindGrammarRoot, Token{})
	a := New(KindRule, Token{Text: "a"})
	b := New(KindRule, Token{Text: "b"})
	root.AddChild(a)
	root.AddChild(b)

	var visited []Kind
	root.Walk(func(n *Node) {
		visited = append(visited, n.Kind)
	})

	assert.Equal([]Kind{KindGrammarRoot, KindRule, KindRule}, visited)
}

func Test_Kind_String_UnknownValue(t *testing.T) {
	assert := assert.New(t)
	assert.Contains(Kind(999).String(), "Kind(999)")
}
