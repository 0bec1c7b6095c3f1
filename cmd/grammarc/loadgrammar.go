package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dekarrin/grammarc/internal/ast"
	"github.com/dekarrin/grammarc/internal/grammar"
)

// loadGrammar is grammarc's own front end: a deliberately small
// recursive-descent reader for a reduced ANTLR-style grammar syntax,
// exactly the subset needed to build the ast.Node trees the transform and
// semantic pipelines consume. spec.md §1 names "the grammar lexer/parser
// producing the initial parse tree" as an external collaborator; this is a
// stand-in for that collaborator so the CLI has something to point at the
// library with, not an attempt at a full ANTLR grammar grammar.
//
// Supported syntax:
//
//	grammar Name;
//	lexer grammar Name;
//	parser grammar Name;
//
//	ruleName
//	    : ALT1A ALT1B
//	    | ALT2A
//	    ;
//
//	fragment HELPER : 'x' ;
//
// Elements are bare identifiers (uppercase-leading is a token ref,
// lowercase-leading is a rule ref), quoted string literals, or `.` for a
// wildcard. Every identifier token used but never DefineTokenName'd as a
// lexer rule is implicitly declared, mirroring the teacher's own permissive
// "undeclared token becomes an implicit token definition" convention.
func loadGrammar(src string, fileName string) (*grammar.Grammar, error) {
	toks := tokenizeGrammarSource(src)
	p := &grammarParser{toks: toks, fileName: fileName}
	return p.parse()
}

type grammarToken struct {
	text string
	line int
}

func tokenizeGrammarSource(src string) []grammarToken {
	var toks []grammarToken
	line := 1
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\n':
			line++
			i++
		case unicode.IsSpace(r):
			i++
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '\'':
			start := i
			i++
			for i < len(runes) && runes[i] != '\'' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			i++ // closing quote
			toks = append(toks, grammarToken{text: string(runes[start:i]), line: line})
		case strings.ContainsRune(";:|()?*+.", r):
			toks = append(toks, grammarToken{text: string(r), line: line})
			i++
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !strings.ContainsRune(";:|()?*+.'", runes[i]) {
				i++
			}
			toks = append(toks, grammarToken{text: string(runes[start:i]), line: line})
		}
	}
	return toks
}

type grammarParser struct {
	toks     []grammarToken
	pos      int
	fileName string
}

func (p *grammarParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos].text
}

func (p *grammarParser) line() int {
	if p.pos >= len(p.toks) {
		return 0
	}
	return p.toks[p.pos].line
}

func (p *grammarParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *grammarParser) expect(text string) error {
	if p.peek() != text {
		return fmt.Errorf("%s:%d: expected %q, found %q", p.fileName, p.line(), text, p.peek())
	}
	p.pos++
	return nil
}

func (p *grammarParser) parse() (*grammar.Grammar, error) {
	typ := grammar.Combined
	if p.peek() == "lexer" {
		p.next()
		typ = grammar.Lexer
	} else if p.peek() == "parser" {
		p.next()
		typ = grammar.Parser
	}
	if err := p.expect("grammar"); err != nil {
		return nil, err
	}
	name := p.next()
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	g := grammar.New(name, typ, p.fileName)
	root := ast.New(ast.KindGrammarRoot, ast.Token{Text: name})
	g.Root = root

	for p.peek() != "" {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		root.AddChild(r)
	}

	return g, nil
}

func (p *grammarParser) parseRule() (*ast.Node, error) {
	fragment := false
	if p.peek() == "fragment" {
		p.next()
		fragment = true
	}

	name := p.next()
	if name == "" {
		return nil, fmt.Errorf("%s:%d: expected rule name, found end of input", p.fileName, p.line())
	}
	n := ast.New(ast.KindRule, ast.Token{Text: name, Line: p.line()})
	n.Text = name
	if fragment {
		n.SetOption("fragment", "true")
	}

	if err := p.expect(":"); err != nil {
		return nil, err
	}

	alt, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	n.AddChild(alt)

	for p.peek() == "|" {
		p.next()
		alt, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		n.AddChild(alt)
	}

	if err := p.expect(";"); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *grammarParser) parseAlt() (*ast.Node, error) {
	alt := ast.New(ast.KindAlt, ast.Token{Line: p.line()})
	for p.peek() != "" && p.peek() != "|" && p.peek() != ";" {
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		alt.AddChild(elem)
	}
	return alt, nil
}

func (p *grammarParser) parseElement() (*ast.Node, error) {
	tok := p.next()
	if tok == "" {
		return nil, fmt.Errorf("%s:%d: unexpected end of input in alternative", p.fileName, p.line())
	}

	if tok == "." {
		return ast.New(ast.KindWildcard, ast.Token{Text: tok, Line: p.line()}), nil
	}

	if strings.HasPrefix(tok, "'") {
		n := ast.New(ast.KindTerminalRef, ast.Token{Text: tok, Line: p.line()})
		n.Text = tok
		return p.parseSuffix(n)
	}

	r := []rune(tok)
	kind := ast.KindRuleRef
	if unicode.IsUpper(r[0]) {
		kind = ast.KindTerminalRef
	}
	n := ast.New(kind, ast.Token{Text: tok, Line: p.line()})
	n.Text = tok
	return p.parseSuffix(n)
}

// parseSuffix wraps n in Optional/Star/Plus if immediately followed by
// `?`/`*`/`+`, per the element-suffix grammar spec.md §3's AST model names.
func (p *grammarParser) parseSuffix(n *ast.Node) (*ast.Node, error) {
	switch p.peek() {
	case "?":
		p.next()
		wrap := ast.New(ast.KindOptional, ast.Token{Line: p.line()})
		wrap.AddChild(n)
		return wrap, nil
	case "*":
		p.next()
		wrap := ast.New(ast.KindStar, ast.Token{Line: p.line()})
		wrap.AddChild(n)
		return wrap, nil
	case "+":
		p.next()
		wrap := ast.New(ast.KindPlus, ast.Token{Line: p.line()})
		wrap.AddChild(n)
		return wrap, nil
	default:
		return n, nil
	}
}
