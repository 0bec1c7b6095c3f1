package grammar

// This file holds the token-type and channel symbol-table operations used by
// the semantic pipeline's token-type-assignment and channel-assignment
// passes (spec.md §4.2 passes 6-7), generalized from the teacher's single
// flat `terminals map[string]tokenClass` (internal/tunascript/grammar.go)
// into the richer name<->type and literal<->type bidirectional tables named
// in spec.md §3.

// TokenType returns the type assigned to a symbolic token name, or
// (TokenInvalid, false) if undefined.
func (g *Grammar) TokenType(name string) (int, bool) {
	t, ok := g.tokenNameToType[name]
	return t, ok
}

// StringLiteralType returns the type assigned to a quoted string literal
// (e.g. `'if'`), or (TokenInvalid, false) if no token aliases it.
func (g *Grammar) StringLiteralType(literal string) (int, bool) {
	t, ok := g.stringLiteralToType[literal]
	return t, ok
}

// DefineTokenName assigns the next available user token type to name if it
// is not already defined, and returns the type either way. This is the
// "implicitly define tokens referenced but not declared" / `tokens{}`
// declaration path of §4.2 pass 6.
func (g *Grammar) DefineTokenName(name string) int {
	if t, ok := g.tokenNameToType[name]; ok {
		return t
	}
	t := g.allocateTokenType()
	g.tokenNameToType[name] = t
	g.growTypeToTokenList(t)
	g.typeToTokenList[t] = name
	return t
}

// DefineStringLiteral assigns a token type to a quoted literal if it's not
// already aliased to one, aliasing it to the same type as aliasType when
// non-zero (the "a literal may map to the same type as a symbolic token"
// case from `X : 'literal' ;`), or allocating a fresh type otherwise.
func (g *Grammar) DefineStringLiteral(literal string, aliasType int) int {
	if t, ok := g.stringLiteralToType[literal]; ok {
		return t
	}
	t := aliasType
	if t == 0 {
		t = g.allocateTokenType()
	}
	g.stringLiteralToType[literal] = t
	g.growTypeToStringLiteralList(t)
	g.typeToStringLiteral[t] = literal
	return t
}

// RemoveStringLiteralAlias undoes a DefineStringLiteral call, used when
// token-type assignment (§4.2 pass 6) discovers the same literal was
// independently aliased to two different rules and must "remove the alias
// and record the ambiguity."
func (g *Grammar) RemoveStringLiteralAlias(literal string) {
	if t, ok := g.stringLiteralToType[literal]; ok && t >= 0 && t < len(g.typeToStringLiteral) && g.typeToStringLiteral[t] == literal {
		g.typeToStringLiteral[t] = ""
	}
	delete(g.stringLiteralToType, literal)
}

// allocateTokenType returns the next unused user token type, a plain
// monotonically increasing value with no upper bound. No caller checks the
// result against an overflow ceiling, and CodeTokenTypeOverflow is never
// reported.
func (g *Grammar) allocateTokenType() int {
	t := g.nextTokenType
	g.nextTokenType++
	return t
}

// NextTokenType previews the type that the next allocateTokenType call would
// return.
func (g *Grammar) NextTokenType() int {
	return g.nextTokenType
}

func (g *Grammar) growTypeToTokenList(upTo int) {
	for len(g.typeToTokenList) <= upTo {
		g.typeToTokenList = append(g.typeToTokenList, "")
	}
}

func (g *Grammar) growTypeToStringLiteralList(upTo int) {
	for len(g.typeToStringLiteral) <= upTo {
		g.typeToStringLiteral = append(g.typeToStringLiteral, "")
	}
}

// TypeToTokenList returns the reverse array from spec.md §3:
// typeToTokenList[t] names the symbolic token with type t, or "" if t has no
// symbolic name (pure literal alias).
func (g *Grammar) TypeToTokenList() []string {
	cp := make([]string, len(g.typeToTokenList))
	copy(cp, g.typeToTokenList)
	return cp
}

// TypeToStringLiteralList mirrors TypeToTokenList for literal aliases.
func (g *Grammar) TypeToStringLiteralList() []string {
	cp := make([]string, len(g.typeToStringLiteral))
	copy(cp, g.typeToStringLiteral)
	return cp
}

// MaxTokenType returns the highest allocated token type, i.e. the bound used
// by the §8 invariant "for every token type t in [1, maxTokenType]...".
func (g *Grammar) MaxTokenType() int {
	return g.nextTokenType - 1
}

// DefineChannel assigns the next available channel value to name if it is
// not already defined (predefined DEFAULT_TOKEN_CHANNEL/HIDDEN included),
// and returns the value either way. Collision checks against common
// constants/tokens/modes are the semantic pipeline's job (§4.2 pass 7); this
// method only manages the table itself.
func (g *Grammar) DefineChannel(name string) int {
	if v, ok := g.channelNameToValue[name]; ok {
		return v
	}
	v := g.nextChannelValue
	g.nextChannelValue++
	g.channelNameToValue[name] = v
	g.channelValueToName = append(g.channelValueToName, name)
	return v
}

// ChannelValue looks up a channel by name.
func (g *Grammar) ChannelValue(name string) (int, bool) {
	v, ok := g.channelNameToValue[name]
	return v, ok
}

// ChannelNames returns every defined channel name, predefined channels
// first, in assignment order.
func (g *Grammar) ChannelNames() []string {
	cp := make([]string, len(g.channelValueToName))
	copy(cp, g.channelValueToName)
	return cp
}
