package semantics

import (
	"testing"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func ruleRef(name string) *ast.Node {
	n := ast.New(ast.KindRuleRef, ast.Token{Text: name})
	n.Text = name
	return n
}

func termRef(name string) *ast.Node {
	n := ast.New(ast.KindTerminalRef, ast.Token{Text: name})
	n.Text = name
	return n
}

func wrapAlt(elems ...*ast.Node) *ast.Node {
	a := ast.New(ast.KindAlt, ast.Token{})
	for _, e := range elems {
		a.AddChild(e)
	}
	return a
}

func hasCode(mgr *issues.Manager, code issues.Code) bool {
	for _, iss := range mgr.All() {
		if iss.Code == code {
			return true
		}
	}
	return false
}

func Test_AssignLexerTokenTypes_AliasesLiteralAndDetectsAmbiguity(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	ifRule := grammar.NewRule("IF")
	ifRule.AddAlt(wrapAlt(termRef("'if'")))
	g.AddRule(ifRule)

	ifRule2 := grammar.NewRule("KEYWORD_IF")
	ifRule2.AddAlt(wrapAlt(termRef("'if'")))
	g.AddRule(ifRule2)

	mgr := issues.NewManager()
	assignLexerTokenTypes(g, mgr)

	_, ifType := g.TokenType("IF")
	assert.True(ifType)
	assert.True(hasCode(mgr, issues.CodeTokenNameReassignment))
}

func Test_CheckLabelConflicts_DetectsRuleNameCollision(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("expr")
	labeled := termRef("ID")
	labeled.SetOption("label", "expr")
	r.AddAlt(wrapAlt(labeled))
	g.AddRule(r)

	mgr := issues.NewManager()
	checkLabelConflicts(g, r, mgr)

	assert.True(hasCode(mgr, issues.CodeLabelConflict))
}

func Test_CheckLabelConflicts_DifferentLabelTypeSameName(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("stmt")

	a := termRef("ID")
	a.SetOption("label", "x")
	a.SetOption("labelType", "token")

	b := ruleRef("expr")
	b.SetOption("label", "x")
	b.SetOption("labelType", "rule")

	r.AddAlt(wrapAlt(a, b))
	g.AddRule(r)

	mgr := issues.NewManager()
	checkLabelConflicts(g, r, mgr)

	assert.True(hasCode(mgr, issues.CodeLabelConflict))
}

func Test_CheckRuleArgUsage_FlagsArgsOnArglessRule(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	target := grammar.NewRule("expr")
	target.AddAlt(wrapAlt(termRef("ID")))
	g.AddRule(target)

	caller := grammar.NewRule("stmt")
	call := ruleRef("expr")
	call.SetOption("args", "1")
	caller.AddAlt(wrapAlt(call))
	g.AddRule(caller)

	mgr := issues.NewManager()
	checkRuleArgUsage(g, caller, mgr)

	assert.True(hasCode(mgr, issues.CodeRuleHasNoArgs))
}

func Test_CheckUnreachableTokens_LaterRuleShadowed(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	ifRule := grammar.NewRule("IF")
	ifRule.AddAlt(wrapAlt(termRef("'if'")))
	g.AddRule(ifRule)

	idRule := grammar.NewRule("ID")
	idRule.AddAlt(wrapAlt(termRef("'if'")))
	g.AddRule(idRule)

	mgr := issues.NewManager()
	checkUnreachableTokens(g, mgr)

	assert.True(hasCode(mgr, issues.CodeTokenUnreachable))
}

func Test_CheckRangeNotImplied_WarnsOnMixedCaseRange(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Lexer, "T.g4")
	r := grammar.NewRule("LETTER")
	rangeNode := ast.New(ast.KindCharRange, ast.Token{})
	rangeNode.SetOption("from", "A")
	rangeNode.SetOption("to", "g")
	r.AddAlt(wrapAlt(rangeNode))
	g.AddRule(r)

	mgr := issues.NewManager()
	checkRangeNotImplied(g, mgr)

	assert.True(hasCode(mgr, issues.CodeRangeProbablyNotImplied))
}

func Test_CheckAttributeExpressions_FlagsUnknownLabel(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("expr")
	action := ast.New(ast.KindAction, ast.Token{})
	action.Text = "doSomething($bogus)"
	r.AddAlt(wrapAlt(termRef("ID"), action))
	g.AddRule(r)

	mgr := issues.NewManager()
	checkAttributeExpressions(g, mgr)

	assert.True(hasCode(mgr, issues.CodeUnknownAttributeReference))
}

func Test_Run_StopsAfterErrorPass(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New("T", grammar.Parser, "T.g4")
	r := grammar.NewRule("rule") // reserved name -> error in basicChecks
	r.AddAlt(wrapAlt(termRef("ID")))
	g.AddRule(r)

	mgr := issues.NewManager()
	Run(g, mgr)

	assert.True(hasCode(mgr, issues.CodeReservedRuleName))
	// pass 6 would report the undeclared ID token had the pipeline gone on
	assert.False(hasCode(mgr, issues.CodeImplicitTokenDefinition))
}
