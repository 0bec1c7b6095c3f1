package transform

import (
	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
)

// ReduceBlockSets implements spec.md §4.1.3: walk every rule's alternatives
// looking for a Block whose alternatives are each a single terminal
// reference, character literal, or character range, and collapse the block
// in place into one KindSet node holding all of those elements as children.
// This is the AST-level stand-in for "walk decisions... targeting the same
// block-end state" — at this stage of the pipeline no ATN decision states
// exist yet, so the rewrite operates on the block structure that will
// eventually drive one decision's worth of ATN states, the same way the
// teacher's Grammar.RemoveEpsilons/LeftFactor rewrite the CFG in place ahead
// of any automaton construction (internal/tunascript/grammar.go).
//
// Overlapping character ranges merged into the same set are reported as
// CodeCharactersCollisionInSet; the block is still collapsed (the set just
// ends up with a redundant/ambiguous range), matching spec.md's "preserve the
// decision's semantic outcome" directive — reporting is diagnostic, not
// fatal.
func ReduceBlockSets(g *grammar.Grammar, mgr *issues.Manager) {
	for _, r := range g.Rules() {
		for i := 1; i < len(r.Alts); i++ {
			reduceBlocksIn(r.Alts[i], g, mgr)
		}
	}
}

func reduceBlocksIn(n *ast.Node, g *grammar.Grammar, mgr *issues.Manager) {
	for _, c := range n.Children {
		reduceBlocksIn(c, g, mgr)
	}
	if n.Kind != ast.KindBlock {
		return
	}
	elems, ok := collectSetElements(n)
	if !ok {
		return
	}
	checkCollisions(elems, g, mgr)

	set := ast.New(ast.KindSet, n.Token)
	for _, e := range elems {
		set.AddChild(e)
	}
	replaceNode(n, set)
}

// collectSetElements reports the single element of each of block's
// alternatives, if every alternative is shaped that way (exactly one child,
// which is a terminal reference, character literal, or character range).
func collectSetElements(block *ast.Node) ([]*ast.Node, bool) {
	if len(block.Children) == 0 {
		return nil, false
	}
	var elems []*ast.Node
	for _, alt := range block.Children {
		if alt.Kind != ast.KindAlt || len(alt.Children) != 1 {
			return nil, false
		}
		leaf := alt.Children[0]
		switch leaf.Kind {
		case ast.KindTerminalRef, ast.KindCharLiteral, ast.KindCharRange:
			elems = append(elems, leaf)
		default:
			return nil, false
		}
	}
	return elems, true
}

// checkCollisions reports CodeCharactersCollisionInSet once for every pair of
// merged character ranges/literals whose code-point spans overlap.
func checkCollisions(elems []*ast.Node, g *grammar.Grammar, mgr *issues.Manager) {
	type span struct {
		lo, hi rune
		node   *ast.Node
	}
	var spans []span
	for _, e := range elems {
		lo, hi, ok := codePointSpan(e)
		if !ok {
			continue
		}
		spans = append(spans, span{lo, hi, e})
	}
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.lo <= b.hi && b.lo <= a.hi {
				mgr.Add(issues.New(issues.CodeCharactersCollisionInSet, issues.Warning,
					issues.Location{File: g.FileName, Line: a.node.Token.Line, Column: a.node.Token.Column},
					nil, "character range %s overlaps %s in the same set",
					a.node.String(), b.node.String()))
			}
		}
	}
}

// codePointSpan returns the inclusive code-point range an element covers: a
// single rune for a character literal or bare terminal whose text is a
// single-quoted single character, or the From/To option pair for a character
// range.
func codePointSpan(n *ast.Node) (lo, hi rune, ok bool) {
	switch n.Kind {
	case ast.KindCharRange:
		from, okFrom := n.Option("from")
		to, okTo := n.Option("to")
		if !okFrom || !okTo || len(from) == 0 || len(to) == 0 {
			return 0, 0, false
		}
		return []rune(from)[0], []rune(to)[0], true
	case ast.KindCharLiteral, ast.KindTerminalRef:
		text := n.Text
		if len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\'' {
			inner := []rune(text[1 : len(text)-1])
			if len(inner) == 1 {
				return inner[0], inner[0], true
			}
		}
		return 0, 0, false
	default:
		return 0, 0, false
	}
}

// replaceNode swaps old for replacement in old's parent's child list,
// repointing replacement.Parent. old must have a parent (the grammar root
// itself is never a Block, so this always holds for block nodes).
func replaceNode(old, replacement *ast.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	idx := parent.ChildIndex(old)
	if idx < 0 {
		return
	}
	replacement.Parent = parent
	parent.Children[idx] = replacement
}
